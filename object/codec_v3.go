package object

import "zvm/memory"

// codecV3 implements the v1-3 object entry (32 attribute flags + 1-byte
// parent/sibling/child) and the single-size-byte property encoding,
// grounded on the teacher's zmachine/objects.go getObject/getPropertyByAddress
// (the pre-refactor version that worked directly off a version flag rather
// than a strategy object).
type codecV3 struct{}

func (codecV3) entrySize() uint32        { return 9 }
func (codecV3) defaultCount() uint32     { return 31 }
func (codecV3) attributeBits() uint      { return 32 }
func (codecV3) maxPropertyNumber() uint8 { return 31 }

func (codecV3) decodeFields(mem *memory.Memory, base uint32) (attributes uint64, parent, sibling, child uint16, propPtr uint16, err error) {
	a0, err := mem.ReadU8(base)
	if err != nil {
		return
	}
	a1, err := mem.ReadU8(base + 1)
	if err != nil {
		return
	}
	a2, err := mem.ReadU8(base + 2)
	if err != nil {
		return
	}
	a3, err := mem.ReadU8(base + 3)
	if err != nil {
		return
	}
	attributes = uint64(a0)<<56 | uint64(a1)<<48 | uint64(a2)<<40 | uint64(a3)<<32

	p, err := mem.ReadU8(base + 4)
	if err != nil {
		return
	}
	s, err := mem.ReadU8(base + 5)
	if err != nil {
		return
	}
	c, err := mem.ReadU8(base + 6)
	if err != nil {
		return
	}
	pp, err := mem.ReadU16(base + 7)
	if err != nil {
		return
	}
	return attributes, uint16(p), uint16(s), uint16(c), pp, nil
}

func (codecV3) writeParent(mem *memory.Memory, base uint32, v uint16) error {
	return mem.WriteU8(base+4, uint8(v))
}
func (codecV3) writeSibling(mem *memory.Memory, base uint32, v uint16) error {
	return mem.WriteU8(base+5, uint8(v))
}
func (codecV3) writeChild(mem *memory.Memory, base uint32, v uint16) error {
	return mem.WriteU8(base+6, uint8(v))
}
func (codecV3) writeAttributes(mem *memory.Memory, base uint32, attributes uint64) error {
	for i := uint32(0); i < 4; i++ {
		if err := mem.WriteU8(base+i, uint8(attributes>>(56-8*i))); err != nil {
			return err
		}
	}
	return nil
}

func (codecV3) decodePropertyHeader(mem *memory.Memory, addr uint32) (number uint8, headerLen uint32, length uint32, err error) {
	sizeByte, err := mem.ReadU8(addr)
	if err != nil {
		return
	}
	if sizeByte == 0 {
		return 0, 0, 0, nil
	}
	length = uint32(sizeByte>>5) + 1
	number = sizeByte & 0b0001_1111
	return number, 1, length, nil
}
