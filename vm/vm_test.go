package vm_test

import (
	"testing"

	"zvm/host"
	"zvm/vm"
)

// recorder is a minimal set of host collaborators that satisfies every
// interface the VM needs but records nothing except printed text, the same
// shape as the teacher's test doubles for zmachine.ZMachine.
type recorder struct {
	output string
}

func (r *recorder) WriteString(s string) error  { r.output += s; return nil }
func (r *recorder) ReadLine() (string, error)   { return "", nil }
func (r *recorder) ReadChar() (rune, error)     { return 0, nil }
func (r *recorder) Seed(int64)                  {}
func (r *recorder) SeedFromClock()              {}
func (r *recorder) Int31n(n int32) int32        { return 0 }
func (r *recorder) Save(string, []byte) error   { return nil }
func (r *recorder) Load(string) ([]byte, error) { return nil, nil }

var _ host.TextOutput = (*recorder)(nil)
var _ host.TextInput = (*recorder)(nil)
var _ host.CharInput = (*recorder)(nil)
var _ host.RNG = (*recorder)(nil)
var _ host.SaveStore = (*recorder)(nil)

const (
	globalVarsAddr = 0x0040
	objectTblAddr  = 0x0300
	staticMemBase  = 0x0400
	imageSize      = 0x0600
)

// newTestImage builds a minimal version-3 story file with the header
// fields the VM needs to boot, and copies code into it starting at
// initialPC. Globals, the dictionary and the object table are left empty:
// only the instructions under test ever touch memory.
func newTestImage(t *testing.T, initialPC uint16, code []byte) []byte {
	t.Helper()
	img := make([]byte, imageSize)

	img[0x00] = 3 // version
	img[0x01] = 0 // flags1
	putU16(img, 0x06, initialPC)
	putU16(img, 0x08, 0) // dictionary address: none
	putU16(img, 0x0a, objectTblAddr)
	putU16(img, 0x0c, globalVarsAddr)
	putU16(img, 0x0e, staticMemBase)
	putU16(img, 0x18, 0) // abbreviations table: none
	putU16(img, 0x1a, uint16(imageSize/2))
	putU16(img, 0x1c, 0) // checksum

	copy(img[initialPC:], code)
	return img
}

func putU16(img []byte, offset uint16, v uint16) {
	img[offset] = byte(v >> 8)
	img[offset+1] = byte(v)
}

// TestAddPrintQuit exercises the fetch-decode-dispatch loop end to end:
// add (2OP, stores), print_num (VAR, reads a global), quit (0OP).
func TestAddPrintQuit(t *testing.T) {
	code := []byte{
		0x14, 0x02, 0x03, 0x10, // add 2 3 -> global16 (var 0x10)
		0xE6, 0xBF, 0x10, // print_num global16
		0xBA, // quit
	}
	img := newTestImage(t, 0x0500, code)

	rec := &recorder{}
	machine, err := vm.New(img, rec, rec, rec, rec, rec)
	if err != nil {
		t.Fatalf("vm.New: %v", err)
	}
	if err := machine.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rec.output != "5" {
		t.Errorf("expected output %q, got %q", "5", rec.output)
	}
}

// TestCallReturnPrintQuit exercises call/return bookkeeping: the main
// routine calls a subroutine that returns a literal via ret, and the
// caller prints the stored result.
func TestCallReturnPrintQuit(t *testing.T) {
	const routineAddr = 0x0540 // even, so packed = routineAddr/2 for v3
	packed := uint16(routineAddr / 2)

	code := []byte{
		0xE0, 0x3F, byte(packed >> 8), byte(packed), 0x10, // call routine -> global16
		0xE6, 0xBF, 0x10, // print_num global16
		0xBA, // quit
	}
	img := newTestImage(t, 0x0500, code)

	routine := []byte{
		0x00,       // 0 locals
		0x9B, 0x07, // ret 7
	}
	copy(img[routineAddr:], routine)

	rec := &recorder{}
	machine, err := vm.New(img, rec, rec, rec, rec, rec)
	if err != nil {
		t.Fatalf("vm.New: %v", err)
	}
	if err := machine.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rec.output != "7" {
		t.Errorf("expected output %q, got %q", "7", rec.output)
	}
}

// TestQuitStopsTheLoop checks Step itself reports termination on the quit
// opcode rather than relying on Run's wrapping loop.
func TestQuitStopsTheLoop(t *testing.T) {
	img := newTestImage(t, 0x0500, []byte{0xBA})
	rec := &recorder{}
	machine, err := vm.New(img, rec, rec, rec, rec, rec)
	if err != nil {
		t.Fatalf("vm.New: %v", err)
	}
	cont, err := machine.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if cont {
		t.Error("expected Step to report termination after quit")
	}
	if !machine.Quit {
		t.Error("expected Quit to be set")
	}
}
