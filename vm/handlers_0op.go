package vm

import "zvm/variables"

func init() {
	handlers0OP[0x00] = hRtrue
	handlers0OP[0x01] = hRfalse
	handlers0OP[0x02] = hPrint
	handlers0OP[0x03] = hPrintRet
	handlers0OP[0x04] = hNop
	handlers0OP[0x08] = hRetPopped
	handlers0OP[0x09] = hPop0OP
	handlers0OP[0x0A] = hQuit
	handlers0OP[0x0B] = hNewLine
	handlers0OP[0x0C] = hShowStatus
	handlers0OP[0x0D] = hVerify
	handlers0OP[0x0F] = hPiracy
}

func hRtrue(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	return vm.Return(1)
}

func hRfalse(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	return vm.Return(0)
}

func hPrint(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	text, n, err := vm.Text.Decode(frame.PC)
	if err != nil {
		return err
	}
	frame.PC += n
	return vm.Print(text)
}

func hPrintRet(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	text, n, err := vm.Text.Decode(frame.PC)
	if err != nil {
		return err
	}
	frame.PC += n
	if err := vm.Print(text); err != nil {
		return err
	}
	if err := vm.Print("\n"); err != nil {
		return err
	}
	return vm.Return(1)
}

func hNop(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	return nil
}

func hRetPopped(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	v, err := vm.Vars.ReadVar(0, false)
	if err != nil {
		return err
	}
	return vm.Return(v)
}

func hPop0OP(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	_, err := vm.Vars.ReadVar(0, false)
	return err
}

func hQuit(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	vm.Quit = true
	return nil
}

func hNewLine(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	return vm.Print("\n")
}

// hShowStatus redraws the status bar in versions 1-3. The status bar's
// content (location name, score/moves or time) is a rendering concern the
// front end owns, so this is a no-op here; a terminal front end recomputes
// it from globals 1-2 itself on every frame instead of being driven by
// this opcode.
func hShowStatus(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	return nil
}

// hVerify checksums the story file's bytes from offset 0x40 to the header's
// declared file length and compares against the header's stored checksum.
func hVerify(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	var sum uint16
	end := vm.Header.FileLength
	if end == 0 || end > vm.Mem.Len() {
		end = vm.Mem.Len()
	}
	for addr := uint32(0x40); addr < end; addr++ {
		b, err := vm.Mem.ReadU8(addr)
		if err != nil {
			return err
		}
		sum += uint16(b)
	}
	return ctx.Branch(sum == vm.Header.Checksum)
}

// hPiracy always reports a genuine copy: this interpreter implements no
// copy-protection check.
func hPiracy(vm *VM, frame *variables.Frame, operands []uint16, ctx *DispatchContext) error {
	return ctx.Branch(true)
}
