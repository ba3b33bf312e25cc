package ztext_test

import (
	"testing"

	"zvm/memory"
	"zvm/ztext"
)

func newMem(bytes []uint8) *memory.Memory {
	return memory.New(bytes, uint32(len(bytes)))
}

func TestDecodeThreeAlphabetString(t *testing.T) {
	bytes := []uint8{
		11, 45, 42, 234, 1, 216, 0, 192, 98, 70, 70, 32, 72, 206, 68, 244,
		116, 13, 42, 234, 142, 37, 11, 45, 42, 234, 1, 216,
	}
	mem := newMem(bytes)
	d := ztext.NewDecoder(mem, 1, ztext.DefaultAlphabets(1), 0)

	text, bytesRead, err := d.Decode(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "There is a small mailbox here." {
		t.Errorf("unexpected text: %q", text)
	}
	if bytesRead != 22 {
		t.Errorf("expected 22 bytes read, got %d", bytesRead)
	}
}

func TestDecodeZsciiEscape(t *testing.T) {
	bytes := []uint8{12, 193, 248, 165}
	mem := newMem(bytes)
	d := ztext.NewDecoder(mem, 1, ztext.DefaultAlphabets(1), 0)

	text, bytesRead, err := d.Decode(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != ">" {
		t.Errorf("expected >, got %q", text)
	}
	if bytesRead != 4 {
		t.Errorf("expected 4 bytes read, got %d", bytesRead)
	}
}

func TestEncodeRoundTripsZsciiEscape(t *testing.T) {
	out := ztext.Encode(">", ztext.DefaultAlphabets(1), 6)
	want := []byte{12, 193, 248, 165}
	if len(out) != len(want) {
		t.Fatalf("expected %d bytes, got %d (%v)", len(want), len(out), out)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("byte %d: expected %d, got %d", i, want[i], out[i])
		}
	}
}

func TestDecodeAbbreviation(t *testing.T) {
	// Abbreviation table with a single entry (table 1, index 0) pointing
	// at a word address that itself decodes to "hi".
	//
	// Layout of storyMem: [0,2) the Z-character stream below
	//                    [2,4) abbrev table entry -> word address 3 (byte addr 6)
	//                    [6,10) the string "hi" encoded into 2 words.
	hi := ztext.Encode("hi", ztext.DefaultAlphabets(3), 6)
	bytes := make([]uint8, 4+len(hi))
	bytes[0], bytes[1] = 0, 3 // word address 3 -> byte address 6 (absolute, within storyMem below)
	copy(bytes[4:], hi)

	// Z-character stream: zchar 1 (abbreviation table 1) followed by
	// zchar 0 (index 0 within table 1) and the filler zchar 5, packed as
	// the sole word with the stop bit set: (1<<10)|(0<<5)|5, stop bit set.
	storyBytes := make([]uint8, 2)
	word := uint16(1)<<10 | 5 | 1<<15
	storyBytes[0], storyBytes[1] = byte(word>>8), byte(word)
	storyMem := memory.New(append(storyBytes, bytes...), 0)

	d := ztext.NewDecoder(storyMem, 3, ztext.DefaultAlphabets(3), 2)
	text, _, err := d.Decode(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "hi" {
		t.Errorf("expected abbreviation to expand to hi, got %q", text)
	}
}
