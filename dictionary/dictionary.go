// Package dictionary implements the Z-machine's word dictionary (spec.md's
// supplemented tokeniser/dictionary layer), grounded on the teacher's
// dictionary/dictionary.go: a header naming the story's word separators,
// the length and count of entries, and a sorted table of encoded words
// each paired with a fixed block of dictionary data.
package dictionary

import (
	"bytes"

	"zvm/memory"
	"zvm/ztext"
)

// Entry is one dictionary word: its address in story memory, the encoded
// Z-characters used for matching, and the data bytes following them
// (verb/object numbers the game logic consults directly; the VM treats
// them as opaque).
type Entry struct {
	Address     uint16
	EncodedWord []uint8
	DecodedWord string
	Data        []uint8
}

// Dictionary is the parsed word table plus the separator set used to
// split raw input into tokens.
type Dictionary struct {
	Separators         []uint8
	EntryLength        uint8
	entries            []Entry
	encodedWordLength  int
}

// Parse reads the dictionary located at baseAddress, per spec.md's
// dictionary layout: a separator-count byte, that many separator
// characters, an entry-length byte, a signed entry count (negative means
// "not alphabetically sorted", which this implementation doesn't rely on
// since it always scans linearly), then that many fixed-length entries.
func Parse(mem *memory.Memory, baseAddress uint32, version uint8, decoder *ztext.Decoder) (*Dictionary, error) {
	numSeparators, err := mem.ReadU8(baseAddress)
	if err != nil {
		return nil, err
	}

	separators := make([]uint8, numSeparators)
	for i := range separators {
		b, err := mem.ReadU8(baseAddress + 1 + uint32(i))
		if err != nil {
			return nil, err
		}
		separators[i] = b
	}

	entryLength, err := mem.ReadU8(baseAddress + 1 + uint32(numSeparators))
	if err != nil {
		return nil, err
	}
	countHi, err := mem.ReadU8(baseAddress + 2 + uint32(numSeparators))
	if err != nil {
		return nil, err
	}
	countLo, err := mem.ReadU8(baseAddress + 3 + uint32(numSeparators))
	if err != nil {
		return nil, err
	}
	count := int16(uint16(countHi)<<8 | uint16(countLo))
	if count < 0 {
		count = -count
	}

	encodedWordLength := 4
	if version > 3 {
		encodedWordLength = 6
	}

	entryPtr := baseAddress + 4 + uint32(numSeparators)
	entries := make([]Entry, count)
	for i := 0; i < int(count); i++ {
		encodedWord := make([]uint8, encodedWordLength)
		for j := range encodedWord {
			b, err := mem.ReadU8(entryPtr + uint32(j))
			if err != nil {
				return nil, err
			}
			encodedWord[j] = b
		}

		decodedWord, _, err := decoder.Decode(entryPtr)
		if err != nil {
			return nil, err
		}

		data := make([]uint8, int(entryLength)-encodedWordLength)
		for j := range data {
			b, err := mem.ReadU8(entryPtr + uint32(encodedWordLength) + uint32(j))
			if err != nil {
				return nil, err
			}
			data[j] = b
		}

		entries[i] = Entry{
			Address:     uint16(entryPtr),
			EncodedWord: encodedWord,
			DecodedWord: decodedWord,
			Data:        data,
		}
		entryPtr += uint32(entryLength)
	}

	return &Dictionary{
		Separators:        separators,
		EntryLength:       entryLength,
		entries:           entries,
		encodedWordLength: encodedWordLength,
	}, nil
}

// Lookup finds the dictionary entry whose encoded word matches exactly,
// returning its story-memory address or 0 if the word is unrecognized.
func (d *Dictionary) Lookup(encodedWord []uint8) uint16 {
	for _, e := range d.entries {
		if bytes.Equal(e.EncodedWord, encodedWord) {
			return e.Address
		}
	}
	return 0
}

// IsSeparator reports whether b is one of the dictionary's word-separator
// characters (used to split input into tokens alongside plain spaces).
func (d *Dictionary) IsSeparator(b uint8) bool {
	for _, s := range d.Separators {
		if s == b {
			return true
		}
	}
	return false
}

// EncodedWordLength is the byte length of an entry's encoded word (4 bytes,
// i.e. 6 Z-characters, for version 1-3; 6 bytes, i.e. 9 Z-characters, for
// version 4+) used when matching a typed token against dictionary entries.
func (d *Dictionary) EncodedWordLength() int { return d.encodedWordLength }
