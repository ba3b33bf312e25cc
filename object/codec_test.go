package object

import (
	"testing"

	"zvm/memory"
)

func TestCodecV3PropertyHeader(t *testing.T) {
	// spec.md §8 scenario 7: size byte 0x5A means property number 0x1A,
	// data length (0x5A>>5)+1 = 3.
	mem := memory.New([]uint8{0x5A, 0, 0, 0}, 4)

	number, headerLen, length, err := codecV3{}.decodePropertyHeader(mem, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if number != 0x1A {
		t.Errorf("expected property number 0x1A, got 0x%x", number)
	}
	if length != 3 {
		t.Errorf("expected length 3, got %d", length)
	}
	if headerLen != 1 {
		t.Errorf("expected header length 1, got %d", headerLen)
	}
}

func TestCodecV4PlusTwoByteHeaderLength64(t *testing.T) {
	// spec.md §8 scenario 8: size byte 0x94 (bit 7 set, number 0x14), next
	// byte 0x00 -> length 64.
	mem := memory.New([]uint8{0x94, 0x00, 0, 0}, 4)

	number, headerLen, length, err := codecV4Plus{}.decodePropertyHeader(mem, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if number != 0x14 {
		t.Errorf("expected property number 0x14, got 0x%x", number)
	}
	if length != 64 {
		t.Errorf("expected length 64, got %d", length)
	}
	if headerLen != 2 {
		t.Errorf("expected header length 2, got %d", headerLen)
	}
}

func TestCodecV4PlusOneByteHeaderLength2(t *testing.T) {
	// size byte 0x4B (bit 7 clear, bit 6 set, number 0x0B) -> length 2.
	mem := memory.New([]uint8{0x4B, 0, 0, 0}, 4)

	number, headerLen, length, err := codecV4Plus{}.decodePropertyHeader(mem, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if number != 0x0B {
		t.Errorf("expected property number 0x0B, got 0x%x", number)
	}
	if length != 2 {
		t.Errorf("expected length 2, got %d", length)
	}
	if headerLen != 1 {
		t.Errorf("expected header length 1, got %d", headerLen)
	}
}

func TestCodecV4PlusTerminator(t *testing.T) {
	mem := memory.New([]uint8{0x00}, 1)

	_, headerLen, _, err := codecV4Plus{}.decodePropertyHeader(mem, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if headerLen != 0 {
		t.Errorf("expected terminating size byte to report headerLen 0, got %d", headerLen)
	}
}
