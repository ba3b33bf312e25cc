package object

import "zvm/memory"

// codecV4Plus implements the v4+ object entry (48 attribute flags + 2-byte
// parent/sibling/child) and the two-shape property encoding (1- or 2-byte
// header depending on bit 7 of the size byte), grounded on
// zobject/property.go's GetPropertyByAddress.
type codecV4Plus struct{}

func (codecV4Plus) entrySize() uint32        { return 14 }
func (codecV4Plus) defaultCount() uint32     { return 63 }
func (codecV4Plus) attributeBits() uint      { return 48 }
func (codecV4Plus) maxPropertyNumber() uint8 { return 63 }

func (codecV4Plus) decodeFields(mem *memory.Memory, base uint32) (attributes uint64, parent, sibling, child uint16, propPtr uint16, err error) {
	hi, err := mem.ReadU16(base)
	if err != nil {
		return
	}
	mid, err := mem.ReadU16(base + 2)
	if err != nil {
		return
	}
	lo, err := mem.ReadU16(base + 4)
	if err != nil {
		return
	}
	attributes = uint64(hi)<<48 | uint64(mid)<<32 | uint64(lo)<<16

	parent, err = mem.ReadU16(base + 6)
	if err != nil {
		return
	}
	sibling, err = mem.ReadU16(base + 8)
	if err != nil {
		return
	}
	child, err = mem.ReadU16(base + 10)
	if err != nil {
		return
	}
	propPtr, err = mem.ReadU16(base + 12)
	if err != nil {
		return
	}
	return attributes, parent, sibling, child, propPtr, nil
}

func (codecV4Plus) writeParent(mem *memory.Memory, base uint32, v uint16) error {
	return mem.WriteU16(base+6, v)
}
func (codecV4Plus) writeSibling(mem *memory.Memory, base uint32, v uint16) error {
	return mem.WriteU16(base+8, v)
}
func (codecV4Plus) writeChild(mem *memory.Memory, base uint32, v uint16) error {
	return mem.WriteU16(base+10, v)
}
func (codecV4Plus) writeAttributes(mem *memory.Memory, base uint32, attributes uint64) error {
	if err := mem.WriteU16(base, uint16(attributes>>48)); err != nil {
		return err
	}
	if err := mem.WriteU16(base+2, uint16(attributes>>32)); err != nil {
		return err
	}
	return mem.WriteU16(base+4, uint16(attributes>>16))
}

func (codecV4Plus) decodePropertyHeader(mem *memory.Memory, addr uint32) (number uint8, headerLen uint32, length uint32, err error) {
	sizeByte, err := mem.ReadU8(addr)
	if err != nil {
		return
	}
	if sizeByte == 0 {
		return 0, 0, 0, nil
	}

	if sizeByte&0b1000_0000 != 0 {
		number = sizeByte & 0b0011_1111
		lenByte, lerr := mem.ReadU8(addr + 1)
		if lerr != nil {
			return 0, 0, 0, lerr
		}
		length = uint32(lenByte & 0b0011_1111)
		if length == 0 {
			length = 64
		}
		return number, 2, length, nil
	}

	number = sizeByte & 0b0011_1111
	if sizeByte&0b0100_0000 != 0 {
		length = 2
	} else {
		length = 1
	}
	return number, 1, length, nil
}
