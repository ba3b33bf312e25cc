package zvmsave_test

import (
	"testing"

	"zvm/memory"
	"zvm/variables"
	"zvm/zvmsave"
)

func buildStack() variables.CallStack {
	var stack variables.CallStack
	frame := variables.NewFrame(0x100, []uint16{1, 2, 3}, true, 2)
	frame.Push(42)
	frame.Push(99)
	stack.Push(frame)
	return stack
}

func TestCaptureApplyRoundTrip(t *testing.T) {
	mem := memory.New([]uint8{1, 2, 3, 4}, 4)
	stack := buildStack()

	state, err := zvmsave.Capture(mem, 4, stack)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mem2 := memory.New([]uint8{0, 0, 0, 0}, 4)
	restoredStack, err := zvmsave.Apply(mem2, 4, state)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw := mem2.RawBytes()
	if raw[0] != 1 || raw[3] != 4 {
		t.Errorf("expected dynamic memory restored, got %v", raw)
	}
	if restoredStack.Depth() != 1 {
		t.Errorf("expected 1 frame restored, got %d", restoredStack.Depth())
	}
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	mem := memory.New([]uint8{9, 8, 7}, 3)
	stack := buildStack()

	state, err := zvmsave.Capture(mem, 3, stack)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data := state.Serialize()
	restored, ok := zvmsave.Deserialize(data)
	if !ok {
		t.Fatal("expected deserialize to succeed")
	}

	mem2 := memory.New([]uint8{0, 0, 0}, 3)
	restoredStack, err := zvmsave.Apply(mem2, 3, restored)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw := mem2.RawBytes()
	if raw[0] != 9 || raw[1] != 8 || raw[2] != 7 {
		t.Errorf("expected round-tripped dynamic memory, got %v", raw)
	}
	if restoredStack.Depth() != 1 {
		t.Fatalf("expected 1 frame, got %d", restoredStack.Depth())
	}
}

func TestDeserializeRejectsGarbage(t *testing.T) {
	if _, ok := zvmsave.Deserialize([]byte("not a save")); ok {
		t.Error("expected deserialize of garbage data to fail")
	}
}

func TestUndoStackPushPop(t *testing.T) {
	var undo zvmsave.UndoStack
	mem := memory.New([]uint8{1}, 1)
	s1, _ := zvmsave.Capture(mem, 1, buildStack())
	undo.Push(s1)

	if _, ok := undo.Pop(); !ok {
		t.Fatal("expected a state to pop")
	}
	if _, ok := undo.Pop(); ok {
		t.Error("expected undo stack to be empty")
	}
}
