package variables

import "zvm/zfault"

// CallStack owns every active routine's Frame. It is never shared: only the
// VM that owns it may push, pop, or peek it (spec.md §5).
type CallStack struct {
	frames []Frame
}

// Push starts a new routine activation.
func (s *CallStack) Push(f Frame) {
	s.frames = append(s.frames, f)
}

// Pop ends the current routine activation and returns it.
func (s *CallStack) Pop() (Frame, error) {
	if len(s.frames) == 0 {
		return Frame{}, zfault.New(zfault.StackUnderflow, "call stack empty on pop")
	}
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return f, nil
}

// Current returns a pointer to the active frame so the fetch loop and
// handlers can advance its PC and touch its stack in place.
func (s *CallStack) Current() (*Frame, error) {
	if len(s.frames) == 0 {
		return nil, zfault.New(zfault.StackUnderflow, "call stack empty on peek")
	}
	return &s.frames[len(s.frames)-1], nil
}

// Depth reports how many frames are active (1 after the initial routine
// has been pushed at load).
func (s *CallStack) Depth() int { return len(s.frames) }

// Frames returns a copy of the active frame list, oldest first, for
// persistence.
func (s CallStack) Frames() []Frame {
	return append([]Frame(nil), s.frames...)
}

// FromFrames rebuilds a CallStack from a previously persisted frame list.
func FromFrames(frames []Frame) CallStack {
	return CallStack{frames: frames}
}

// Clone deep-copies the whole call stack for save/undo snapshotting.
func (s CallStack) Clone() CallStack {
	cp := CallStack{frames: make([]Frame, len(s.frames))}
	for i, f := range s.frames {
		cp.frames[i] = f.Clone()
	}
	return cp
}
