// Package object implements the Z-machine's object/property decoder
// (spec.md C2): object-entry and property-entry decoding under the two
// incompatible version encodings, plus the property accessor handlers
// get_prop/get_prop_addr/get_prop_len/put_prop.
package object

import (
	"zvm/memory"
	"zvm/zfault"
)

// Object is a decoded object entry snapshot. It is a value, not a handle:
// callers that mutate parent/sibling/child/attributes must write through
// the Decoder, which keeps the Object's cached fields and the backing
// memory in lock-step.
type Object struct {
	ID              uint16
	BaseAddress     uint32
	Attributes      uint64 // left-aligned: bit 63 is attribute 0, bit (63-n) is attribute n
	Parent          uint16
	Sibling         uint16
	Child           uint16
	PropertyAddress uint32
}

// PropertyEntry is one decoded (number, data_address, length) triple from a
// property table walk.
type PropertyEntry struct {
	Number      uint8
	DataAddress uint32
	Length      uint32
}

// Decoder exposes the object/property operations of spec.md §4.2 against a
// loaded story image. It holds no mutable state of its own beyond the
// version-selected codec strategy.
type Decoder struct {
	mem                *memory.Memory
	objectTableAddress uint32
	version            uint8
	codec              propertyCodec
}

// NewDecoder selects the property/object codec once, per the version
// recorded in the header, rather than branching on version at every call.
func NewDecoder(mem *memory.Memory, objectTableAddress uint32, version uint8) *Decoder {
	return &Decoder{
		mem:                mem,
		objectTableAddress: objectTableAddress,
		version:            version,
		codec:              codecForVersion(version),
	}
}

// ObjectAddress computes object_table_address + 2*default_count +
// (id-1)*entry_size. Object id 0 is invalid and yields ok=false rather than
// an error: handlers receiving id 0 return a zero result per spec.md §4.2.
func (d *Decoder) ObjectAddress(id uint16) (addr uint32, ok bool) {
	if id == 0 {
		return 0, false
	}
	base := d.objectTableAddress + 2*d.codec.defaultCount() + uint32(id-1)*d.codec.entrySize()
	return base, true
}

// Decode reads a full object entry.
func (d *Decoder) Decode(id uint16) (Object, error) {
	base, ok := d.ObjectAddress(id)
	if !ok {
		return Object{}, nil
	}

	attrs, parent, sibling, child, propPtr, err := d.codec.decodeFields(d.mem, base)
	if err != nil {
		return Object{}, err
	}

	return Object{
		ID:              id,
		BaseAddress:     base,
		Attributes:      attrs,
		Parent:          parent,
		Sibling:         sibling,
		Child:           child,
		PropertyAddress: uint32(propPtr),
	}, nil
}

// PropertyTableAddress returns the object's property table address (the
// raw pointer stored in its entry).
func (d *Decoder) PropertyTableAddress(id uint16) (uint32, error) {
	obj, err := d.Decode(id)
	if err != nil {
		return 0, err
	}
	return obj.PropertyAddress, nil
}

// FirstPropertyAddress returns the address of the first property entry,
// skipping the 1-byte text-length prefix and the short name it introduces.
func (d *Decoder) FirstPropertyAddress(id uint16) (uint32, error) {
	obj, err := d.Decode(id)
	if err != nil {
		return 0, err
	}
	if obj.PropertyAddress == 0 {
		return 0, nil
	}
	nameLenWords, err := d.mem.ReadU8(obj.PropertyAddress)
	if err != nil {
		return 0, err
	}
	return obj.PropertyAddress + 1 + uint32(nameLenWords)*2, nil
}

// IterateProperties walks the property table in descending-property-number
// order, invoking fn for each entry until fn returns false or the table's
// terminating zero size byte is reached.
func (d *Decoder) IterateProperties(id uint16, fn func(PropertyEntry) (cont bool, err error)) error {
	addr, err := d.FirstPropertyAddress(id)
	if err != nil || addr == 0 {
		return err
	}

	for {
		number, headerLen, length, err := d.codec.decodePropertyHeader(d.mem, addr)
		if err != nil {
			return err
		}
		if headerLen == 0 { // terminating size byte
			return nil
		}

		dataAddr := addr + headerLen
		cont, err := fn(PropertyEntry{Number: number, DataAddress: dataAddr, Length: length})
		if err != nil || !cont {
			return err
		}

		addr = dataAddr + length
	}
}

// DefaultProperty reads the 16-bit default value for property p from the
// defaults table prefixing the object table.
func (d *Decoder) DefaultProperty(p uint8) (uint16, error) {
	addr := d.objectTableAddress + uint32(p-1)*2
	return d.mem.ReadU16(addr)
}

func (d *Decoder) validatePropertyNumber(p uint8) error {
	if p == 0 || p > d.codec.maxPropertyNumber() {
		return zfault.New(zfault.BadPropertySize, "property number out of range for story version").WithOperand(uint32(p))
	}
	return nil
}

func (d *Decoder) findProperty(id uint16, prop uint8) (PropertyEntry, bool, error) {
	var found PropertyEntry
	hit := false
	err := d.IterateProperties(id, func(e PropertyEntry) (bool, error) {
		if e.Number == prop {
			found = e
			hit = true
			return false, nil
		}
		return true, nil
	})
	return found, hit, err
}

// GetProp implements get_prop: iterate until match; length 1 reads one
// zero-extended byte, length 2 reads one word, length >=3 faults with
// BadPropertySize (spec.md §9 Open Question (b)); absence returns the
// 16-bit default.
func (d *Decoder) GetProp(id uint16, prop uint8) (uint16, error) {
	if id == 0 {
		return 0, nil
	}
	if err := d.validatePropertyNumber(prop); err != nil {
		return 0, err
	}

	entry, found, err := d.findProperty(id, prop)
	if err != nil {
		return 0, err
	}
	if !found {
		return d.DefaultProperty(prop)
	}

	switch entry.Length {
	case 1:
		v, err := d.mem.ReadU8(entry.DataAddress)
		return uint16(v), err
	case 2:
		return d.mem.ReadU16(entry.DataAddress)
	default:
		return 0, zfault.New(zfault.BadPropertySize, "get_prop on property with length >= 3").WithOperand(uint32(prop))
	}
}

// GetPropAddr implements get_prop_addr: the data address on match, 0 on
// absence.
func (d *Decoder) GetPropAddr(id uint16, prop uint8) (uint16, error) {
	if err := d.validatePropertyNumber(prop); err != nil {
		return 0, err
	}
	entry, found, err := d.findProperty(id, prop)
	if err != nil || !found {
		return 0, err
	}
	return uint16(entry.DataAddress), nil
}

// GetPropLen implements get_prop_len, taking a *data* address: the size
// header precedes it. addr==0 returns 0 (spec.md §8 scenario 6).
func (d *Decoder) GetPropLen(dataAddr uint32) (uint16, error) {
	if dataAddr == 0 {
		return 0, nil
	}

	prevByte, err := d.mem.ReadU8(dataAddr - 1)
	if err != nil {
		return 0, err
	}

	if d.version <= 3 {
		return uint16(prevByte>>5) + 1, nil
	}

	if prevByte&0b1000_0000 != 0 {
		lenByte, err := d.mem.ReadU8(dataAddr - 2)
		if err != nil {
			return 0, err
		}
		length := lenByte & 0b0011_1111
		if length == 0 {
			return 64, nil
		}
		return uint16(length), nil
	}

	if prevByte&0b0100_0000 != 0 {
		return 2, nil
	}
	return 1, nil
}

// PutProp implements put_prop: length 1 writes value&0xFF, length 2 writes
// the full word, length >=3 faults with BadPropertySize, absence faults
// with PropertyNotFound.
func (d *Decoder) PutProp(id uint16, prop uint8, value uint16) error {
	if id == 0 {
		return nil
	}
	if err := d.validatePropertyNumber(prop); err != nil {
		return err
	}

	entry, found, err := d.findProperty(id, prop)
	if err != nil {
		return err
	}
	if !found {
		return zfault.New(zfault.PropertyNotFound, "put_prop target missing on object").WithOperand(uint32(prop))
	}

	switch entry.Length {
	case 1:
		return d.mem.WriteU8(entry.DataAddress, uint8(value))
	case 2:
		return d.mem.WriteU16(entry.DataAddress, value)
	default:
		return zfault.New(zfault.BadPropertySize, "put_prop on property with length >= 3").WithOperand(uint32(prop))
	}
}

// NextProperty implements get_next_property: propertyId==0 means "first
// property"; otherwise return the property number following propertyId.
func (d *Decoder) NextProperty(id uint16, prop uint8) (uint8, error) {
	if id == 0 {
		return 0, nil
	}
	addr, err := d.FirstPropertyAddress(id)
	if err != nil {
		return 0, err
	}
	if prop == 0 {
		if addr == 0 {
			return 0, nil
		}
		number, headerLen, _, err := d.codec.decodePropertyHeader(d.mem, addr)
		if err != nil || headerLen == 0 {
			return 0, err
		}
		return number, nil
	}

	entry, found, err := d.findProperty(id, prop)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, zfault.New(zfault.PropertyNotFound, "get_next_property on missing property").WithOperand(uint32(prop))
	}

	nextAddr := entry.DataAddress + entry.Length
	number, headerLen, _, err := d.codec.decodePropertyHeader(d.mem, nextAddr)
	if err != nil || headerLen == 0 {
		return 0, err
	}
	return number, nil
}
