package vm

import (
	"zvm/screen"
	"zvm/variables"
	"zvm/zvmsave"
	"zvm/ztext"
)

func init() {
	handlersEXT[0x02] = hLogShift
	handlersEXT[0x03] = hArtShift
	handlersEXT[0x04] = hSetFont
	handlersEXT[0x09] = hSaveUndo
	handlersEXT[0x0A] = hRestoreUndo
	handlersEXT[0x0B] = hPrintUnicode
	handlersEXT[0x0C] = hCheckUnicode
}

// hLogShift implements a logical (unsigned) shift: a positive places count
// shifts left, negative shifts right.
func hLogShift(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	places := int16(operands[1])
	if places >= 0 {
		return ctx.Store(operands[0] << uint16(places))
	}
	return ctx.Store(operands[0] >> uint16(-places))
}

// hArtShift implements an arithmetic (sign-preserving) shift of a signed
// operand.
func hArtShift(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	num := int16(operands[0])
	places := int16(operands[1])
	if places >= 0 {
		return ctx.Store(uint16(num << uint16(places)))
	}
	return ctx.Store(uint16(num >> uint16(-places)))
}

// hSetFont switches the active font, returning the previous one, or 0 if
// the requested font isn't supported. This interpreter has no picture font
// (font 2): it supports normal, character-graphics, and fixed-pitch.
func hSetFont(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	font := screen.Font(operands[0])
	switch font {
	case screen.FontNormal, screen.FontCharGraphs, screen.FontFixedPitch:
		prev := vm.Screen.CurrentFont
		vm.Screen.CurrentFont = font
		return ctx.Store(uint16(prev))
	default:
		return ctx.Store(0)
	}
}

func hSaveUndo(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	state, err := zvmsave.Capture(vm.Mem, vm.Header.StaticMemBase, vm.Stack)
	if err != nil {
		return err
	}
	vm.UndoStates.Push(state)
	vm.undoDestVars = append(vm.undoDestVars, ctx.StoreVar)
	return ctx.Store(1)
}

// hRestoreUndo pops the most recent undo point and replaces the VM's
// memory and call stack with it. On success, it writes 2 into the
// destination variable of the save_undo call that produced the snapshot
// (not this restore_undo instruction's own destination, which is never
// reached: execution resumes at save_undo's return point instead).
func hRestoreUndo(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	state, ok := vm.UndoStates.Pop()
	if !ok {
		return ctx.Store(0)
	}
	destVar := vm.undoDestVars[len(vm.undoDestVars)-1]
	vm.undoDestVars = vm.undoDestVars[:len(vm.undoDestVars)-1]

	newStack, err := zvmsave.Apply(vm.Mem, vm.Header.StaticMemBase, state)
	if err != nil {
		return err
	}
	vm.Stack = newStack
	return vm.Vars.WriteVar(destVar, 2, false)
}

func hPrintUnicode(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	return vm.Print(string(rune(operands[0])))
}

// hCheckUnicode reports whether a Unicode code point can be both printed
// and read by this interpreter: bit 0 for printable, bit 1 for
// read_char-able. This implementation's output and input paths share the
// same ZSCII translation table, so the two always agree.
func hCheckUnicode(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	r := rune(operands[0])
	if r >= 32 && r <= 126 {
		return ctx.Store(0b11)
	}
	if _, ok := ztext.UnicodeToZscii(r); ok {
		return ctx.Store(0b11)
	}
	return ctx.Store(0)
}
