// Package decode implements instruction fetch and decode (spec.md C4/C5
// boundary): turning the byte stream at a frame's PC into a fully resolved
// Instruction, advancing the PC past the opcode, its operands, and its
// optional store/branch trailers. Grounded on the teacher's
// zmachine/opcode.go ParseOpcode/parseVariableOperands and the
// handleBranch helper in zmachine/zmachine.go.
package decode

import "zvm/opcode"

// Operand is one decoded instruction argument. Kind determines how Value
// is interpreted: a small or large constant carries its literal value
// directly, while a variable operand carries the variable number in Value
// and must be resolved against the variable engine before use.
type Operand struct {
	Kind  opcode.OperandKind
	Value uint16
}

// Branch is the decoded trailer for an opcode with DoesBranch set, per
// spec.md §4.5's branch encoding.
type Branch struct {
	// OnTrue reports which way the instruction's Boolean result must
	// compare for the branch to be taken.
	OnTrue bool
	// Offset is the raw signed branch offset as encoded in the story
	// file. A value of 0 or 1 is the special "return false"/"return
	// true" convention rather than a jump target; callers should check
	// IsReturn before treating Offset as a PC delta.
	Offset int32
}

// IsReturn reports whether this branch encodes an implicit routine return
// (offset 0 or 1) rather than a jump.
func (b Branch) IsReturn() bool { return b.Offset == 0 || b.Offset == 1 }

// ReturnValue is valid only when IsReturn is true.
func (b Branch) ReturnValue() uint16 {
	if b.Offset == 1 {
		return 1
	}
	return 0
}

// Instruction is one fully decoded opcode, ready for dispatch.
type Instruction struct {
	Addr     uint32
	Meta     *opcode.Metadata
	Operands []Operand
	StoreVar uint8
	Branch   *Branch
	// NextPC is the address immediately following the decoded
	// instruction, including any store and branch trailers. It does not
	// cover the inline string that print and print_ret carry: their
	// handlers decode that string and advance the frame's PC past it,
	// matching how the teacher treats those two opcodes as a special case
	// rather than part of generic decode.
	NextPC uint32
}
