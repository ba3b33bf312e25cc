package variables_test

import (
	"testing"

	"zvm/memory"
	"zvm/variables"
	"zvm/zfault"
)

func newEngine(t *testing.T, localCount int) (*variables.Engine, *variables.CallStack) {
	t.Helper()
	// Globals sit above the 64-byte header, whose bytes are read-only.
	mem := memory.New(make([]uint8, 128), 128)
	stack := &variables.CallStack{}
	stack.Push(variables.NewFrame(0, make([]uint16, localCount), true, 0))
	return variables.NewEngine(mem, 64, stack), stack
}

func TestGlobalReadWrite(t *testing.T) {
	e, _ := newEngine(t, 0)

	if err := e.WriteVar(16, 0x1234, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := e.ReadVar(16, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 0x1234 {
		t.Errorf("expected 0x1234, got 0x%04x", v)
	}
}

func TestLocalReadWrite(t *testing.T) {
	e, _ := newEngine(t, 3)

	if err := e.WriteVar(2, 42, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := e.ReadVar(2, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 42 {
		t.Errorf("expected 42, got %d", v)
	}
}

func TestBadLocalFaults(t *testing.T) {
	e, _ := newEngine(t, 1)

	_, err := e.ReadVar(5, false)
	if err == nil {
		t.Fatal("expected BadLocal fault")
	}
	if f, ok := err.(*zfault.Fault); !ok || f.Kind != zfault.BadLocal {
		t.Errorf("expected BadLocal, got %v", err)
	}
}

func TestStackPushPop(t *testing.T) {
	e, _ := newEngine(t, 0)

	if err := e.WriteVar(0, 7, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := e.WriteVar(0, 8, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v, err := e.ReadVar(0, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 8 {
		t.Errorf("expected LIFO pop of 8, got %d", v)
	}
}

func TestStackUnderflow(t *testing.T) {
	e, _ := newEngine(t, 0)

	_, err := e.ReadVar(0, false)
	if err == nil {
		t.Fatal("expected StackUnderflow fault")
	}
	if f, ok := err.(*zfault.Fault); !ok || f.Kind != zfault.StackUnderflow {
		t.Errorf("expected StackUnderflow, got %v", err)
	}
}

func TestIndirectStackReferenceReadsInPlace(t *testing.T) {
	e, _ := newEngine(t, 0)

	if err := e.WriteVar(0, 99, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Indirect read (inc/dec style) must not pop.
	v, err := e.ReadVar(0, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 99 {
		t.Errorf("expected 99, got %d", v)
	}

	// The value must still be there for a normal pop.
	v2, err := e.ReadVar(0, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v2 != 99 {
		t.Errorf("expected indirect peek to leave 99 on stack, got %d", v2)
	}
}

func TestIndirectStackWriteReplacesTop(t *testing.T) {
	e, _ := newEngine(t, 0)

	if err := e.WriteVar(0, 1, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Indirect write (store-style) replaces top in place rather than
	// pushing a second value.
	if err := e.WriteVar(0, 2, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v, err := e.ReadVar(0, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 2 {
		t.Errorf("expected top replaced with 2, got %d", v)
	}
}
