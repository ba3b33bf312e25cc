// Package ztext implements the ZSCII/Z-character text codec (spec.md's
// supplemented text layer): decoding and encoding the packed 5-bit
// character stream used by print opcodes, object short names, dictionary
// entries, and abbreviations. Grounded on the teacher's zstring package
// (alphabet tables and per-version shift/lock rules) and its unicode.go
// translation table, completed here to actually decode abbreviations and
// the ZSCII escape rather than stopping at a TODO.
package ztext

import "zvm/memory"

type alphabetIndex int

const (
	alphabetA0 alphabetIndex = iota
	alphabetA1
	alphabetA2
)

var a0Default = [26]byte{'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm', 'n', 'o', 'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z'}
var a1Default = [26]byte{'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z'}
var a2V1 = [25]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', '.', ',', '!', '?', '_', '#', '\'', '"', '/', '\\', '<', '-', ':', '(', ')'}
var a2Default = [25]byte{'\n', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9', '.', ',', '!', '?', '_', '#', '\'', '"', '/', '\\', '-', ':', '(', ')'}

// Alphabets holds the three character tables (26-entry A0 lower case and
// A1 upper case, 25-entry A2 punctuation starting at zchar 7) in effect for
// a story, selected once at
// header-parse time the way the teacher's codec strategy selects a
// property layout once per story rather than branching on version
// everywhere.
type Alphabets struct {
	Version uint8
	A0      [26]byte
	A1      [26]byte
	A2      [25]byte
}

// DefaultAlphabets returns the standard alphabet set for version.
func DefaultAlphabets(version uint8) *Alphabets {
	a := &Alphabets{Version: version, A0: a0Default, A1: a1Default}
	if version == 1 {
		a.A2 = a2V1
	} else {
		a.A2 = a2Default
	}
	return a
}

// LoadAlphabets returns the story's alphabet set, reading the optional
// custom alphabet table (version 5+ header field 0x34) when present.
func LoadAlphabets(mem *memory.Memory, version uint8, customTableAddr uint32) (*Alphabets, error) {
	a := DefaultAlphabets(version)
	if version < 5 || customTableAddr == 0 {
		return a, nil
	}

	read := func(offset uint32, dst []byte) error {
		for i := range dst {
			b, err := mem.ReadU8(customTableAddr + offset + uint32(i))
			if err != nil {
				return err
			}
			dst[i] = b
		}
		return nil
	}
	if err := read(0, a.A0[:]); err != nil {
		return nil, err
	}
	if err := read(26, a.A1[:]); err != nil {
		return nil, err
	}
	// The on-disk custom A2 table has 26 bytes starting at zchar 6, whose
	// slot is the ZSCII escape the decoder handles itself; the in-memory
	// table starts at zchar 7 (A2[0]), so we read all 26 and drop the
	// first byte to keep the in-memory table at 25 entries like the
	// default tables.
	var a2full [26]byte
	if err := read(52, a2full[:]); err != nil {
		return nil, err
	}
	copy(a.A2[:], a2full[1:])
	return a, nil
}
