package vm

import "zvm/variables"

func init() {
	handlers1OP[0x00] = hJz
	handlers1OP[0x01] = hGetSibling
	handlers1OP[0x02] = hGetChild
	handlers1OP[0x03] = hGetParent
	handlers1OP[0x04] = hGetPropLen
	handlers1OP[0x05] = hInc
	handlers1OP[0x06] = hDec
	handlers1OP[0x07] = hPrintAddr
	handlers1OP[0x08] = hCall1s
	handlers1OP[0x09] = hRemoveObj
	handlers1OP[0x0A] = hPrintObj
	handlers1OP[0x0B] = hRet
	handlers1OP[0x0C] = hJump
	handlers1OP[0x0D] = hPrintPaddr
	handlers1OP[0x0E] = hLoad
	handlers1OP[0x0F] = hNot1OP
}

func hJz(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	return ctx.Branch(operands[0] == 0)
}

func hGetSibling(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	obj, err := vm.Objects.Decode(operands[0])
	if err != nil {
		return err
	}
	if err := ctx.Store(obj.Sibling); err != nil {
		return err
	}
	return ctx.Branch(obj.Sibling != 0)
}

func hGetChild(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	obj, err := vm.Objects.Decode(operands[0])
	if err != nil {
		return err
	}
	if err := ctx.Store(obj.Child); err != nil {
		return err
	}
	return ctx.Branch(obj.Child != 0)
}

func hGetParent(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	obj, err := vm.Objects.Decode(operands[0])
	if err != nil {
		return err
	}
	return ctx.Store(obj.Parent)
}

func hGetPropLen(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	l, err := vm.Objects.GetPropLen(uint32(operands[0]))
	if err != nil {
		return err
	}
	return ctx.Store(l)
}

// hInc and hDec resolve operands[0] (already a non-indirect read, which for
// a Var-kind operand hands back a variable number here rather than a
// value) and then perform the real, indirect read-modify-write on that
// variable.
func hInc(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	n := uint8(operands[0])
	v, err := vm.Vars.ReadVar(n, true)
	if err != nil {
		return err
	}
	return vm.Vars.WriteVar(n, v+1, true)
}

func hDec(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	n := uint8(operands[0])
	v, err := vm.Vars.ReadVar(n, true)
	if err != nil {
		return err
	}
	return vm.Vars.WriteVar(n, v-1, true)
}

func hPrintAddr(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	text, _, err := vm.Text.Decode(uint32(operands[0]))
	if err != nil {
		return err
	}
	return vm.Print(text)
}

func hCall1s(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	addr := vm.PackedAddress(uint32(operands[0]), false)
	return vm.Call(addr, nil, ctx.Store != nil, ctx.StoreVar)
}

func hRemoveObj(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	return vm.Objects.Remove(operands[0])
}

func hPrintObj(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	obj, err := vm.Objects.Decode(operands[0])
	if err != nil {
		return err
	}
	if obj.PropertyAddress == 0 {
		return nil
	}
	text, _, err := vm.Text.Decode(obj.PropertyAddress + 1)
	if err != nil {
		return err
	}
	return vm.Print(text)
}

func hRet(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	return vm.Return(operands[0])
}

func hJump(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	offset := int32(int16(operands[0]))
	frame.PC = uint32(int64(frame.PC) + int64(offset) - 2)
	return nil
}

func hPrintPaddr(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	addr := vm.PackedAddress(uint32(operands[0]), true)
	text, _, err := vm.Text.Decode(addr)
	if err != nil {
		return err
	}
	return vm.Print(text)
}

func hLoad(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	v, err := vm.Vars.ReadVar(uint8(operands[0]), true)
	if err != nil {
		return err
	}
	return ctx.Store(v)
}

func hNot1OP(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	return ctx.Store(^operands[0])
}
