package object_test

import (
	"testing"

	"zvm/memory"
	"zvm/object"
	"zvm/zfault"
)

// buildV3Story lays out a minimal v1-3 object table by hand:
//   - defaults table: 31 words at objectTableAddress
//   - object 1 at objectTableAddress+62, property table at 150
//   - property 5 (length 2, value 0x1234), property 3 (length 1, value 0x77)
func buildV3Story(t *testing.T) (*memory.Memory, *object.Decoder) {
	t.Helper()
	const objectTableAddress = 64

	buf := make([]uint8, 200)
	mem := memory.New(buf, 200)

	// Default for property 2 = 0xABCD.
	if err := mem.WriteU16(objectTableAddress+2, 0xABCD); err != nil {
		t.Fatalf("setup: %v", err)
	}

	entryBase := uint32(objectTableAddress + 62)
	// attributes all zero, parent/sibling/child zero, property pointer 150.
	for i := uint32(0); i < 7; i++ {
		if err := mem.WriteU8(entryBase+i, 0); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	if err := mem.WriteU16(entryBase+7, 150); err != nil {
		t.Fatalf("setup: %v", err)
	}

	// Property table at 150: no short name, then prop 5 (len 2), prop 3
	// (len 1), terminator.
	if err := mem.WriteU8(150, 0); err != nil {
		t.Fatalf("setup: %v", err)
	}
	propBytes := []struct {
		addr uint32
		v    uint8
	}{
		{151, 0x25}, {152, 0x12}, {153, 0x34},
		{154, 0x03}, {155, 0x77},
		{156, 0x00},
	}
	for _, pb := range propBytes {
		if err := mem.WriteU8(pb.addr, pb.v); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}

	return mem, object.NewDecoder(mem, objectTableAddress, 3)
}

func TestGetPropReadsLengthOneAndTwo(t *testing.T) {
	_, d := buildV3Story(t)

	v5, err := d.GetProp(1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v5 != 0x1234 {
		t.Errorf("expected 0x1234, got 0x%04x", v5)
	}

	v3, err := d.GetProp(1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v3 != 0x77 {
		t.Errorf("expected 0x77, got 0x%02x", v3)
	}
}

func TestGetPropAbsenceReturnsDefault(t *testing.T) {
	_, d := buildV3Story(t)

	v, err := d.GetProp(1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 0xABCD {
		t.Errorf("expected default 0xABCD, got 0x%04x", v)
	}
}

func TestGetPropAddrMatchAndAbsence(t *testing.T) {
	_, d := buildV3Story(t)

	addr, err := d.GetPropAddr(1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr != 152 {
		t.Errorf("expected data address 152, got %d", addr)
	}

	absent, err := d.GetPropAddr(1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if absent != 0 {
		t.Errorf("expected 0 for absent property, got %d", absent)
	}
}

func TestGetPropLenZeroAddress(t *testing.T) {
	_, d := buildV3Story(t)

	length, err := d.GetPropLen(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if length != 0 {
		t.Errorf("expected 0, got %d", length)
	}
}

func TestGetPropLenFromDataAddress(t *testing.T) {
	_, d := buildV3Story(t)

	length, err := d.GetPropLen(152) // data address of property 5
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if length != 2 {
		t.Errorf("expected length 2, got %d", length)
	}
}

func TestPutPropWritesBackAndFaultsOnMissing(t *testing.T) {
	mem, d := buildV3Story(t)

	if err := d.PutProp(1, 5, 0xBEEF); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, _ := mem.ReadU16(152)
	if v != 0xBEEF {
		t.Errorf("expected memory updated to 0xBEEF, got 0x%04x", v)
	}

	err := d.PutProp(1, 2, 1)
	if err == nil {
		t.Fatal("expected PropertyNotFound for absent property")
	}
	if f, ok := err.(*zfault.Fault); !ok || f.Kind != zfault.PropertyNotFound {
		t.Errorf("expected PropertyNotFound, got %v", err)
	}
}

func TestObjectZeroYieldsZeroResult(t *testing.T) {
	_, d := buildV3Story(t)

	obj, err := d.Decode(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obj != (object.Object{}) {
		t.Errorf("expected zero object for id 0, got %+v", obj)
	}
}

func TestAttributesSetAndClear(t *testing.T) {
	_, d := buildV3Story(t)

	obj, err := d.Decode(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.TestAttribute(obj, 10) {
		t.Fatal("attribute 10 should start clear")
	}

	if err := d.SetAttribute(&obj, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.TestAttribute(obj, 10) {
		t.Error("expected attribute 10 to be set")
	}

	if err := d.ClearAttribute(&obj, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.TestAttribute(obj, 10) {
		t.Error("expected attribute 10 to be cleared")
	}
}
