package ztext

import "zvm/memory"

// Decoder turns packed Z-character streams into text, given a story's
// alphabet set and abbreviation table location.
type Decoder struct {
	mem            *memory.Memory
	version        uint8
	alphabets      *Alphabets
	abbrevTableAddr uint32
}

// NewDecoder binds a decoder to the story's memory image, version,
// alphabet set, and abbreviations table base address (0 if the story has
// none, or when decoding an abbreviation string itself, since
// abbreviations may not recursively contain further abbreviations).
func NewDecoder(mem *memory.Memory, version uint8, alphabets *Alphabets, abbrevTableAddr uint32) *Decoder {
	return &Decoder{mem: mem, version: version, alphabets: alphabets, abbrevTableAddr: abbrevTableAddr}
}

// Decode reads the Z-string starting at addr and returns its text along
// with the number of bytes consumed (always a multiple of 2, since
// Z-strings are packed three Z-characters per 16-bit word and the final
// word is marked by its top bit).
func (d *Decoder) Decode(addr uint32) (string, uint32, error) {
	zchars, bytesRead, err := d.readZCharacters(addr)
	if err != nil {
		return "", 0, err
	}

	var out []rune
	baseAlphabet := alphabetA0
	currentAlphabet := alphabetA0
	nextAlphabet := alphabetA0

	for i := 0; i < len(zchars); i++ {
		zchr := zchars[i]
		currentAlphabet = nextAlphabet
		nextAlphabet = baseAlphabet

		switch zchr {
		case 0:
			out = append(out, ' ')
			continue

		case 1:
			if d.version == 1 {
				out = append(out, '\n')
				continue
			}
			i++
			if i >= len(zchars) {
				continue
			}
			s, err := d.expandAbbreviation(1, zchars[i])
			if err != nil {
				return "", 0, err
			}
			out = append(out, []rune(s)...)
			continue

		case 2, 3:
			if d.version >= 3 {
				i++
				if i >= len(zchars) {
					continue
				}
				s, err := d.expandAbbreviation(zchr, zchars[i])
				if err != nil {
					return "", 0, err
				}
				out = append(out, []rune(s)...)
				continue
			}
			if zchr == 2 {
				nextAlphabet = (nextAlphabet + 1) % 3
			} else {
				nextAlphabet = (nextAlphabet + 2) % 3
			}
			continue

		case 4, 5:
			shift := alphabetIndex(1)
			if zchr == 5 {
				shift = 2
			}
			if d.version >= 3 {
				nextAlphabet = (nextAlphabet + shift) % 3
			} else {
				baseAlphabet = (baseAlphabet + shift) % 3
				nextAlphabet = baseAlphabet
			}
			continue
		}

		if currentAlphabet == alphabetA2 && zchr == 6 {
			if i+2 >= len(zchars) {
				continue
			}
			code := zchars[i+1]<<5 | zchars[i+2]
			i += 2
			out = append(out, ZsciiToUnicode(code))
			continue
		}

		switch currentAlphabet {
		case alphabetA0:
			out = append(out, rune(d.alphabets.A0[zchr-6]))
		case alphabetA1:
			out = append(out, rune(d.alphabets.A1[zchr-6]))
		case alphabetA2:
			out = append(out, rune(d.alphabets.A2[zchr-7]))
		}
	}

	return string(out), bytesRead, nil
}

func (d *Decoder) expandAbbreviation(code uint8, x uint8) (string, error) {
	if d.abbrevTableAddr == 0 {
		return "", nil
	}
	abbrIx := uint32(32*(code-1)) + uint32(x)
	entryAddr := d.abbrevTableAddr + 2*abbrIx
	wordAddr, err := d.mem.ReadU16(entryAddr)
	if err != nil {
		return "", err
	}
	nested := NewDecoder(d.mem, d.version, d.alphabets, 0)
	s, _, err := nested.Decode(uint32(wordAddr) * 2)
	return s, err
}

// readZCharacters unpacks the 16-bit words starting at addr into 5-bit
// Z-characters, stopping at the word whose top bit marks the end of the
// string.
func (d *Decoder) readZCharacters(addr uint32) ([]uint8, uint32, error) {
	var zchars []uint8
	var bytesRead uint32
	for {
		w, err := d.mem.ReadU16(addr + bytesRead)
		if err != nil {
			return nil, 0, err
		}
		bytesRead += 2
		zchars = append(zchars,
			uint8((w>>10)&0b11111),
			uint8((w>>5)&0b11111),
			uint8(w&0b11111),
		)
		if w>>15 == 1 {
			break
		}
	}
	return zchars, bytesRead, nil
}
