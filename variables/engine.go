package variables

import (
	"zvm/memory"
	"zvm/zfault"
)

// Engine resolves variable numbers 0-255 against the active call frame and
// global memory, per spec.md §4.3: 0 is the user stack, 1-15 are the
// current frame's locals, 16-255 are globals.
type Engine struct {
	mem                    *memory.Memory
	globalVariablesAddress uint32
	stack                  *CallStack
}

// NewEngine binds a variable engine to the memory image, the header's
// global_variables_address, and the call stack whose current frame
// supplies locals and the user stack.
func NewEngine(mem *memory.Memory, globalVariablesAddress uint32, stack *CallStack) *Engine {
	return &Engine{mem: mem, globalVariablesAddress: globalVariablesAddress, stack: stack}
}

// ReadVar implements read_var. indirect selects the special case used by
// the seven opcodes that take indirect variable references (inc, dec,
// inc_chk, dec_chk, load, store, pull): an indirect reference to the stack
// pointer peeks rather than pops.
func (e *Engine) ReadVar(n uint8, indirect bool) (uint16, error) {
	frame, err := e.stack.Current()
	if err != nil {
		return 0, err
	}

	switch {
	case n == 0:
		var v uint16
		var ok bool
		if indirect {
			v, ok = frame.Peek()
		} else {
			v, ok = frame.Pop()
		}
		if !ok {
			return 0, zfault.New(zfault.StackUnderflow, "read from empty user stack")
		}
		return v, nil

	case n < 16:
		idx := int(n - 1)
		if idx >= len(frame.Locals) {
			return 0, zfault.New(zfault.BadLocal, "local index exceeds current frame's declared locals").WithOperand(uint32(n))
		}
		return frame.Locals[idx], nil

	default:
		return e.mem.ReadU16(e.globalVariableAddr(n))
	}
}

// WriteVar implements write_var, masking nothing itself (callers are
// expected to have already masked to 16 bits per spec.md's invariant).
func (e *Engine) WriteVar(n uint8, v uint16, indirect bool) error {
	frame, err := e.stack.Current()
	if err != nil {
		return err
	}

	switch {
	case n == 0:
		if indirect {
			if _, ok := frame.Pop(); !ok {
				return zfault.New(zfault.StackUnderflow, "indirect write to empty user stack")
			}
		}
		frame.Push(v)
		return nil

	case n < 16:
		idx := int(n - 1)
		if idx >= len(frame.Locals) {
			return zfault.New(zfault.BadLocal, "local index exceeds current frame's declared locals").WithOperand(uint32(n))
		}
		frame.Locals[idx] = v
		return nil

	default:
		return e.mem.WriteU16(e.globalVariableAddr(n), v)
	}
}

func (e *Engine) globalVariableAddr(n uint8) uint32 {
	return e.globalVariablesAddress + 2*uint32(n-16)
}
