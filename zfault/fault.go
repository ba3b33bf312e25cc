// Package zfault defines the single structured fault taxonomy used across
// the execution core (spec.md §7). Every fallible core operation returns a
// *Fault rather than panicking, carrying enough operand context for a host
// to report or log the failing instruction.
package zfault

// Kind names one of the fault taxonomy's members.
type Kind string

const (
	MemoryFault      Kind = "MemoryFault"      // address out of range
	ReadOnlyFault    Kind = "ReadOnlyFault"    // write to static/high memory or a read-only header byte
	BadLocal         Kind = "BadLocal"         // local index exceeds current frame's declared locals
	StackUnderflow   Kind = "StackUnderflow"   // pop or variable-0 read with empty stack
	PropertyNotFound Kind = "PropertyNotFound" // put_prop target missing
	BadPropertySize  Kind = "BadPropertySize"  // property length not 1 or 2 where one is required
	UndefinedOpcode  Kind = "UndefinedOpcode"  // no metadata for (form, opcode, version)
	VersionMismatch  Kind = "VersionMismatch"  // opcode defined but outside [min_v, max_v]
	DivideByZero     Kind = "DivideByZero"     // div/mod with a zero divisor
)

// Fault is the concrete error type returned for every member of Kind. PC
// and the offending operand value are attached by the caller that detects
// the fault, not synthesized here, so the context is always accurate.
type Fault struct {
	Kind    Kind
	PC      uint32
	Operand uint32
	Detail  string
}

func (f *Fault) Error() string {
	return string(f.Kind) + ": " + f.Detail
}

// New builds a Fault with the given kind and detail; PC/Operand default to
// zero and are filled in by WithPC/WithOperand when the caller has that
// context available.
func New(kind Kind, detail string) *Fault {
	return &Fault{Kind: kind, Detail: detail}
}

// WithPC returns a copy of the fault annotated with the program counter of
// the instruction that triggered it.
func (f *Fault) WithPC(pc uint32) *Fault {
	cp := *f
	cp.PC = pc
	return &cp
}

// WithOperand returns a copy of the fault annotated with the operand value
// involved (an address, variable number, or similar).
func (f *Fault) WithOperand(operand uint32) *Fault {
	cp := *f
	cp.Operand = operand
	return &cp
}
