// Package zvmsave implements save/restore (spec.md's supplemented
// persistence layer): an in-memory undo stack for save_undo/restore_undo,
// and a serialized snapshot format for full save/restore through a
// host.SaveStore. Grounded on the teacher's zmachine/savestates.go
// capture/apply/serialize design, adapted to the variables package's
// CallStack/Frame types instead of the teacher's CallStackFrame.
package zvmsave

import (
	"zvm/memory"
	"zvm/variables"
	"zvm/zfault"
)

// State is a captured snapshot of dynamic memory and the call stack,
// sufficient to resume execution exactly where it was taken. Static and
// high memory are never captured since the story file guarantees they
// never change.
type State struct {
	dynamicMemory []uint8
	callStack     variables.CallStack
}

// Capture snapshots dynamic memory (everything below the header's
// static_mem_base) and the current call stack.
func Capture(mem *memory.Memory, staticBase uint32, stack variables.CallStack) (State, error) {
	dyn, err := mem.Slice(0, staticBase)
	if err != nil {
		return State{}, err
	}
	cp := make([]uint8, len(dyn))
	copy(cp, dyn)
	return State{dynamicMemory: cp, callStack: stack.Clone()}, nil
}

// Apply writes a captured snapshot's dynamic memory back into mem and
// returns its call stack, ready to replace the VM's own. It writes through
// RawBytes rather than WriteU8: a restore is a host-level replacement of the
// whole dynamic region, including header bytes that story code itself could
// never write (version, object table base, ...), so the per-write
// ReadOnlyFault checks story code is subject to do not apply here.
func Apply(mem *memory.Memory, staticBase uint32, s State) (variables.CallStack, error) {
	if uint32(len(s.dynamicMemory)) != staticBase {
		return variables.CallStack{}, zfault.New(zfault.MemoryFault, "save state's dynamic memory size does not match this story")
	}
	copy(mem.RawBytes(), s.dynamicMemory)
	return s.callStack.Clone(), nil
}

// UndoStack is the save_undo/restore_undo in-memory history, kept
// entirely separate from host-backed save/restore.
type UndoStack struct {
	states []State
}

// Push records a new undo point.
func (u *UndoStack) Push(s State) {
	u.states = append(u.states, s)
}

// Pop returns and removes the most recent undo point, or false if none
// exists.
func (u *UndoStack) Pop() (State, bool) {
	if len(u.states) == 0 {
		return State{}, false
	}
	s := u.states[len(u.states)-1]
	u.states = u.states[:len(u.states)-1]
	return s, true
}
