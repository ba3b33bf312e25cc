package vm

import "zvm/variables"

func init() {
	handlers2OP[0x01] = hJe
	handlers2OP[0x02] = hJl
	handlers2OP[0x03] = hJg
	handlers2OP[0x04] = hDecChk
	handlers2OP[0x05] = hIncChk
	handlers2OP[0x06] = hJin
	handlers2OP[0x07] = hTest
	handlers2OP[0x08] = hOr
	handlers2OP[0x09] = hAnd
	handlers2OP[0x0A] = hTestAttr
	handlers2OP[0x0B] = hSetAttr
	handlers2OP[0x0C] = hClearAttr
	handlers2OP[0x0D] = hStore2OP
	handlers2OP[0x0E] = hInsertObj
	handlers2OP[0x0F] = hLoadw
	handlers2OP[0x10] = hLoadb
	handlers2OP[0x11] = hGetProp
	handlers2OP[0x12] = hGetPropAddr
	handlers2OP[0x13] = hGetNextProp
	handlers2OP[0x14] = hAdd
	handlers2OP[0x15] = hSub
	handlers2OP[0x16] = hMul
	handlers2OP[0x17] = hDiv
	handlers2OP[0x18] = hMod
	handlers2OP[0x19] = hCall2s
	handlers2OP[0x1A] = hCall2n
	handlers2OP[0x1B] = hSetColour
	handlers2OP[0x1C] = hThrow
}

func hJe(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	for _, v := range operands[1:] {
		if operands[0] == v {
			return ctx.Branch(true)
		}
	}
	return ctx.Branch(false)
}

func hJl(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	return ctx.Branch(int16(operands[0]) < int16(operands[1]))
}

func hJg(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	return ctx.Branch(int16(operands[0]) > int16(operands[1]))
}

func hDecChk(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	n := uint8(operands[0])
	v, err := vm.Vars.ReadVar(n, true)
	if err != nil {
		return err
	}
	v--
	if err := vm.Vars.WriteVar(n, v, true); err != nil {
		return err
	}
	return ctx.Branch(int16(v) < int16(operands[1]))
}

func hIncChk(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	n := uint8(operands[0])
	v, err := vm.Vars.ReadVar(n, true)
	if err != nil {
		return err
	}
	v++
	if err := vm.Vars.WriteVar(n, v, true); err != nil {
		return err
	}
	return ctx.Branch(int16(v) > int16(operands[1]))
}

func hJin(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	obj, err := vm.Objects.Decode(operands[0])
	if err != nil {
		return err
	}
	return ctx.Branch(obj.Parent == operands[1])
}

func hTest(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	return ctx.Branch(operands[0]&operands[1] == operands[1])
}

func hOr(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	return ctx.Store(operands[0] | operands[1])
}

func hAnd(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	return ctx.Store(operands[0] & operands[1])
}

func hTestAttr(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	obj, err := vm.Objects.Decode(operands[0])
	if err != nil {
		return err
	}
	return ctx.Branch(vm.Objects.TestAttribute(obj, operands[1]))
}

func hSetAttr(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	obj, err := vm.Objects.Decode(operands[0])
	if err != nil {
		return err
	}
	if obj.ID == 0 {
		return nil
	}
	return vm.Objects.SetAttribute(&obj, operands[1])
}

func hClearAttr(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	obj, err := vm.Objects.Decode(operands[0])
	if err != nil {
		return err
	}
	if obj.ID == 0 {
		return nil
	}
	return vm.Objects.ClearAttribute(&obj, operands[1])
}

func hStore2OP(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	return vm.Vars.WriteVar(uint8(operands[0]), operands[1], true)
}

func hInsertObj(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	if operands[0] == 0 || operands[1] == 0 {
		return nil
	}
	return vm.Objects.Insert(operands[0], operands[1])
}

func hLoadw(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	v, err := vm.Mem.ReadU16(uint32(operands[0]) + 2*uint32(operands[1]))
	if err != nil {
		return err
	}
	return ctx.Store(v)
}

func hLoadb(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	v, err := vm.Mem.ReadU8(uint32(operands[0]) + uint32(operands[1]))
	if err != nil {
		return err
	}
	return ctx.Store(uint16(v))
}

func hGetProp(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	v, err := vm.Objects.GetProp(operands[0], uint8(operands[1]))
	if err != nil {
		return err
	}
	return ctx.Store(v)
}

func hGetPropAddr(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	v, err := vm.Objects.GetPropAddr(operands[0], uint8(operands[1]))
	if err != nil {
		return err
	}
	return ctx.Store(v)
}

func hGetNextProp(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	v, err := vm.Objects.NextProperty(operands[0], uint8(operands[1]))
	if err != nil {
		return err
	}
	return ctx.Store(uint16(v))
}

func hAdd(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	return ctx.Store(uint16(int16(operands[0]) + int16(operands[1])))
}

func hSub(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	return ctx.Store(uint16(int16(operands[0]) - int16(operands[1])))
}

func hMul(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	return ctx.Store(uint16(int16(operands[0]) * int16(operands[1])))
}

func hDiv(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	if operands[1] == 0 {
		return zfaultDivideByZero(operands[1])
	}
	return ctx.Store(uint16(int16(operands[0]) / int16(operands[1])))
}

func hMod(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	if operands[1] == 0 {
		return zfaultDivideByZero(operands[1])
	}
	return ctx.Store(uint16(int16(operands[0]) % int16(operands[1])))
}

func hCall2s(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	addr := vm.PackedAddress(uint32(operands[0]), false)
	return vm.Call(addr, operands[1:2], ctx.Store != nil, ctx.StoreVar)
}

func hCall2n(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	addr := vm.PackedAddress(uint32(operands[0]), false)
	return vm.Call(addr, operands[1:2], false, 0)
}

func hSetColour(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	vm.Screen.SetColor(operands[0], operands[1])
	return nil
}

// hThrow unwinds the call stack to the frame at the given depth (obtained
// from an earlier catch) and returns value from it, as if by ret. The
// opcode table carries throw for completeness; nothing in this core's
// opcode set currently produces a catch value, so it is exercised only by
// stories that assume the standard catch/throw pairing.
func hThrow(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	target := int(operands[1])
	for vm.Stack.Depth() > target {
		if _, err := vm.Stack.Pop(); err != nil {
			return err
		}
	}
	return vm.Return(operands[0])
}
