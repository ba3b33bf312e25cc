package object

import "zvm/memory"

// propertyCodec isolates every version-dependent bit layout behind a
// uniform interface, selected once when the header is parsed (spec.md §9's
// "version branching in decoders" design note), instead of branching on
// version inside every call site.
type propertyCodec interface {
	// entrySize is the fixed object-entry size: 9 bytes (v1-3) or 14 (v4+).
	entrySize() uint32
	// defaultCount is the number of words in the property defaults table
	// that precedes the object entries: 31 (v1-3) or 63 (v4+).
	defaultCount() uint32
	// attributeBits is how many attribute flags the entry carries.
	attributeBits() uint
	// maxPropertyNumber is the largest legal property number for this
	// version (31 for v1-3, 63 for v4+), per spec.md §9 Open Question (c).
	maxPropertyNumber() uint8

	// decodeFields reads attributes/parent/sibling/child/propertyPointer
	// out of an object entry at base.
	decodeFields(mem *memory.Memory, base uint32) (attributes uint64, parent, sibling, child uint16, propPtr uint16, err error)

	writeParent(mem *memory.Memory, base uint32, v uint16) error
	writeSibling(mem *memory.Memory, base uint32, v uint16) error
	writeChild(mem *memory.Memory, base uint32, v uint16) error
	writeAttributes(mem *memory.Memory, base uint32, attributes uint64) error

	// decodePropertyHeader reads the 1- or 2-byte property-entry header at
	// addr and returns the property number, the header's width, and the
	// data length. A zero-width return (headerLen==0) signals the
	// terminating size byte of 0.
	decodePropertyHeader(mem *memory.Memory, addr uint32) (number uint8, headerLen uint32, length uint32, err error)
}

func codecForVersion(version uint8) propertyCodec {
	if version >= 4 {
		return codecV4Plus{}
	}
	return codecV3{}
}
