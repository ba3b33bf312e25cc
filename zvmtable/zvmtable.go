// Package zvmtable implements the Z-machine's generic table opcodes
// (spec.md's supplemented table layer: scan_table, copy_table,
// print_table), adapted from the teacher's ztable/ztable.go to operate
// through the bounds-checked memory package instead of a raw byte slice.
package zvmtable

import "zvm/memory"

// ScanTable searches length entries of fieldSize bytes each (fieldSize is
// the low 7 bits of form; bit 7 of form selects word rather than byte
// comparison) starting at baseAddr for one equal to test, returning its
// address or 0 if not found.
func ScanTable(mem *memory.Memory, test uint16, baseAddr uint32, length uint16, form uint16) (uint32, error) {
	fieldSize := form & 0b0111_1111
	checkWord := form&0b1000_0000 != 0
	if fieldSize == 0 {
		return 0, nil
	}

	ptr := baseAddr
	for i := uint16(0); i < length; i++ {
		if checkWord {
			v, err := mem.ReadU16(ptr)
			if err != nil {
				return 0, err
			}
			if v == test {
				return ptr, nil
			}
		} else {
			v, err := mem.ReadU8(ptr)
			if err != nil {
				return 0, err
			}
			if uint16(v) == test {
				return ptr, nil
			}
		}
		ptr += uint32(fieldSize)
	}
	return 0, nil
}

// CopyTable copies |size| bytes from first to second, per spec.md's
// copy_table semantics: a zero second address zeroes the source table
// instead of copying, a positive size copies via an intermediate buffer
// so overlapping regions see only the original source values, and a
// negative size allows direct forward copying even when that corrupts the
// source mid-copy (the story file is explicitly allowed to ask for this).
func CopyTable(mem *memory.Memory, first, second uint32, size int16) error {
	sizeAbs := uint32(size)
	if size < 0 {
		sizeAbs = uint32(-int32(size))
	}

	switch {
	case second == 0:
		for i := uint32(0); i < sizeAbs; i++ {
			if err := mem.WriteU8(first+i, 0); err != nil {
				return err
			}
		}

	case size >= 0:
		tmp := make([]uint8, sizeAbs)
		for i := range tmp {
			b, err := mem.ReadU8(first + uint32(i))
			if err != nil {
				return err
			}
			tmp[i] = b
		}
		for i, b := range tmp {
			if err := mem.WriteU8(second+uint32(i), b); err != nil {
				return err
			}
		}

	default:
		for i := uint32(0); i < sizeAbs; i++ {
			b, err := mem.ReadU8(first + i)
			if err != nil {
				return err
			}
			if err := mem.WriteU8(second+i, b); err != nil {
				return err
			}
		}
	}
	return nil
}

// PrintTable renders a width x height grid of bytes starting at baseAddr,
// skip bytes further along memory between rows, as the text the
// print_table opcode emits.
func PrintTable(mem *memory.Memory, baseAddr uint32, width, height, skip uint16) (string, error) {
	var out []byte
	for row := uint16(0); row < height; row++ {
		if row != 0 {
			out = append(out, '\n')
		}
		for col := uint16(0); col < width; col++ {
			addr := baseAddr + uint32(row)*(uint32(width)+uint32(skip)) + uint32(col)
			b, err := mem.ReadU8(addr)
			if err != nil {
				return "", err
			}
			out = append(out, b)
		}
	}
	return string(out), nil
}
