package zvmtable_test

import (
	"testing"

	"zvm/memory"
	"zvm/zvmtable"
)

func TestScanTableByteField(t *testing.T) {
	mem := memory.New([]uint8{10, 20, 30, 40}, 4)
	addr, err := zvmtable.ScanTable(mem, 30, 0, 4, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr != 2 {
		t.Errorf("expected address 2, got %d", addr)
	}
}

func TestScanTableNotFound(t *testing.T) {
	mem := memory.New([]uint8{10, 20, 30, 40}, 4)
	addr, err := zvmtable.ScanTable(mem, 99, 0, 4, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr != 0 {
		t.Errorf("expected 0 for not found, got %d", addr)
	}
}

func TestScanTableWordField(t *testing.T) {
	mem := memory.New([]uint8{0x00, 0x01, 0x02, 0x34}, 4)
	addr, err := zvmtable.ScanTable(mem, 0x0234, 0, 2, 0b1000_0010)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr != 2 {
		t.Errorf("expected address 2, got %d", addr)
	}
}

func TestCopyTablePositiveSize(t *testing.T) {
	// Tables sit above the 64-byte header, whose bytes are read-only.
	buf := make([]uint8, 70)
	copy(buf[64:], []uint8{1, 2, 3})
	mem := memory.New(buf, 70)
	if err := zvmtable.CopyTable(mem, 64, 67, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw := mem.RawBytes()
	if raw[67] != 1 || raw[68] != 2 || raw[69] != 3 {
		t.Errorf("unexpected copy result: %v", raw)
	}
}

func TestCopyTableZeroSecondZeroesSource(t *testing.T) {
	buf := make([]uint8, 67)
	copy(buf[64:], []uint8{1, 2, 3})
	mem := memory.New(buf, 67)
	if err := zvmtable.CopyTable(mem, 64, 0, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw := mem.RawBytes()
	if raw[64] != 0 || raw[65] != 0 || raw[66] != 0 {
		t.Errorf("expected table zeroed, got %v", raw)
	}
}

func TestPrintTableGrid(t *testing.T) {
	mem := memory.New([]uint8{'a', 'b', 'x', 'c', 'd', 'y'}, 6)
	text, err := zvmtable.PrintTable(mem, 0, 2, 2, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "ab\ncd" {
		t.Errorf("expected ab\\ncd, got %q", text)
	}
}
