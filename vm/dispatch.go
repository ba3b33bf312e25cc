package vm

import (
	"zvm/decode"
	"zvm/opcode"
	"zvm/variables"
	"zvm/zfault"
)

// DispatchContext carries the optional store/branch callbacks spec.md §4.5
// describes: populated by the fetch loop exactly when the opcode's metadata
// flags call for them, left nil otherwise. Handlers call Store and Branch
// without checking for nil, so a handler invoked directly, outside the
// fetch loop, needs every callback its opcode's metadata flags call for;
// the call family tests Store for nil only to decide whether the routine's
// result is stored.
type DispatchContext struct {
	// Store, when non-nil, writes the handler's result to the destination
	// variable the fetch loop decoded. Masking to 16 bits is the caller's
	// responsibility; Store does not mask again.
	Store func(v uint16) error
	// StoreVar is the raw destination variable number Store closes over,
	// valid whenever Store is non-nil. The call family of opcodes needs
	// this directly rather than through Store: their result is written
	// only when the called routine eventually returns, at which point the
	// destination variable is stashed on the callee's frame
	// (variables.Frame.ReturnDestVar) instead of invoked through a
	// closure captured at call time.
	StoreVar uint8
	// Branch, when non-nil, resolves the branch specifier against cond and
	// performs the resulting jump, implicit return, or fallthrough.
	Branch func(cond bool) error
}

// Handler implements one opcode's side effects: it reads operands (already
// resolved to concrete 16-bit values per spec.md's operand kinds) and the
// active frame, and calls ctx.Store/ctx.Branch as its metadata demands.
type Handler func(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error

var (
	handlers0OP [16]Handler
	handlers1OP [16]Handler
	handlers2OP [32]Handler
	handlersVAR [32]Handler
	handlersEXT [32]Handler
)

func tableForDispatch(form opcode.Form) ([]Handler, error) {
	switch form {
	case opcode.Form0OP:
		return handlers0OP[:], nil
	case opcode.Form1OP:
		return handlers1OP[:], nil
	case opcode.Form2OP:
		return handlers2OP[:], nil
	case opcode.FormVAR:
		return handlersVAR[:], nil
	case opcode.FormEXT:
		return handlersEXT[:], nil
	default:
		return nil, zfault.New(zfault.UndefinedOpcode, "unknown instruction form")
	}
}

// lookupHandler returns the handler registered for (form, opcodeNumber). A
// nil result here would mean the opcode package defines metadata this
// package never implements, which is a bug in this package rather than a
// story-file fault, so it panics instead of returning UndefinedOpcode.
func lookupHandler(form opcode.Form, opcodeNumber uint8) (Handler, error) {
	table, err := tableForDispatch(form)
	if err != nil {
		return nil, err
	}
	if int(opcodeNumber) >= len(table) || table[opcodeNumber] == nil {
		panic("no handler registered for an opcode the opcode package defines")
	}
	return table[opcodeNumber], nil
}

// resolveOperand turns a decoded Operand into its concrete 16-bit value:
// small/large constants carry their value directly, a variable operand
// reads through the variable engine (non-indirect: this is the single
// generic resolution spec.md's operand kinds describe, not the special
// in-place peek the seven indirect-variable opcodes use on their own first
// operand after this resolution has already handed them a variable
// number).
func (vm *VM) resolveOperand(op decode.Operand) (uint16, error) {
	if op.Kind == opcode.KindVar {
		return vm.Vars.ReadVar(uint8(op.Value), false)
	}
	return op.Value, nil
}

// applyBranch implements spec.md §4.5's branch composition: the handler
// supplies cond, and this combines it with the branch specifier's polarity
// to decide whether to take the branch, and if so whether that means an
// implicit routine return or a PC-relative jump.
func (vm *VM) applyBranch(branch *decode.Branch, cond bool) error {
	if cond != branch.OnTrue {
		return nil
	}
	if branch.IsReturn() {
		return vm.Return(branch.ReturnValue())
	}
	frame, err := vm.Stack.Current()
	if err != nil {
		return err
	}
	frame.PC = uint32(int64(frame.PC) + int64(branch.Offset) - 2)
	return nil
}
