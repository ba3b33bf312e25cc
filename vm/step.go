package vm

import "zvm/decode"

// Step executes exactly one instruction: fetch/decode (spec.md C4/C5
// boundary, delegated to the decode package), operand resolution, handler
// dispatch, and store/branch side effects. It returns false once the quit
// opcode (or a prior Step) has set vm.Quit, per spec.md §5's cancellation
// model; every side effect of the executed instruction is committed before
// Step returns, so there is nothing left in flight for the caller to
// observe mid-step.
//
// sread and read_char are the suspension points spec.md §5 names. This
// implementation calls straight through to host.TextInput/host.CharInput,
// which block the calling goroutine until input arrives rather than
// returning an "awaiting input" status for a separate resume call — the
// host collaborator interfaces already express the suspend/resume contract
// as an ordinary blocking method call, so Step itself needs no extra
// awaiting-state machinery on top of that.
func (vm *VM) Step() (bool, error) {
	if vm.Quit {
		return false, nil
	}

	frame, err := vm.CurrentFrame()
	if err != nil {
		return false, err
	}

	instr, err := decode.Decode(vm.Mem, frame.PC, vm.Header.Version)
	if err != nil {
		return false, err
	}
	frame.PC = instr.NextPC

	operands := make([]uint16, len(instr.Operands))
	for i, op := range instr.Operands {
		v, err := vm.resolveOperand(op)
		if err != nil {
			return false, err
		}
		operands[i] = v
	}

	ctx := &DispatchContext{}
	if instr.Meta.DoesStore {
		destVar := instr.StoreVar
		ctx.StoreVar = destVar
		ctx.Store = func(v uint16) error {
			return vm.Vars.WriteVar(destVar, v&0xFFFF, false)
		}
	}
	if instr.Meta.DoesBranch {
		branch := instr.Branch
		ctx.Branch = func(cond bool) error {
			return vm.applyBranch(branch, cond)
		}
	}

	handler, err := lookupHandler(instr.Meta.Form, instr.Meta.Opcode)
	if err != nil {
		return false, err
	}

	if err := handler(vm, frame, operands, ctx); err != nil {
		return false, err
	}

	return !vm.Quit, nil
}

// Run steps the machine until it quits or faults.
func (vm *VM) Run() error {
	for {
		cont, err := vm.Step()
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
}
