package memory

// Header holds the 64-byte story-file header, parsed once at load. Field
// names follow the Z-machine standard's terminology rather than the literal
// byte offsets, per spec.md §3.
type Header struct {
	Version                  uint8
	Flags1                   uint8
	ObjectTableAddress       uint32
	GlobalVariablesAddress   uint32
	StaticMemBase            uint32
	HighMemBase              uint32
	InitialPC                uint32
	DictionaryAddress        uint32
	AbbreviationsTable       uint32
	FileLength               uint32
	Checksum                 uint16
	RoutinesOffset           uint16 // v6,v7 packed-address routine offset
	StringsOffset            uint16 // v6,v7 packed-address string offset
	TerminatingCharTableBase uint32
	StatusBarTimeBased       bool
	AlphabetTableAddress     uint32 // v5+ custom alphabet table, 0 if the story uses the defaults
	ExtensionTableAddress    uint32 // v5+ header extension table (carries the unicode translation table address)
}

// ParseHeader reads the fixed header fields out of a loaded story-file
// image. It does not mutate the image; any host-side fixups (interpreter
// number, screen dimensions) belong to the loader, not this core.
func ParseHeader(mem *Memory) (Header, error) {
	read8 := func(addr uint32) (uint8, error) { return mem.ReadU8(addr) }
	read16 := func(addr uint32) (uint16, error) { return mem.ReadU16(addr) }

	version, err := read8(0x00)
	if err != nil {
		return Header{}, err
	}
	flags1, err := read8(0x01)
	if err != nil {
		return Header{}, err
	}
	highMemBase, err := read16(0x04)
	if err != nil {
		return Header{}, err
	}
	firstInstruction, err := read16(0x06)
	if err != nil {
		return Header{}, err
	}
	dictionaryBase, err := read16(0x08)
	if err != nil {
		return Header{}, err
	}
	objectTableBase, err := read16(0x0a)
	if err != nil {
		return Header{}, err
	}
	globalVarBase, err := read16(0x0c)
	if err != nil {
		return Header{}, err
	}
	staticMemBase, err := read16(0x0e)
	if err != nil {
		return Header{}, err
	}
	fileLengthField, err := read16(0x1a)
	if err != nil {
		return Header{}, err
	}
	checksum, err := read16(0x1c)
	if err != nil {
		return Header{}, err
	}
	abbreviationsTable, err := read16(0x18)
	if err != nil {
		return Header{}, err
	}
	routinesOffset, err := read16(0x28)
	if err != nil {
		return Header{}, err
	}
	stringsOffset, err := read16(0x2a)
	if err != nil {
		return Header{}, err
	}
	terminatingCharTableBase, err := read16(0x2e)
	if err != nil {
		return Header{}, err
	}

	var alphabetTable, extensionTable uint16
	if version >= 5 {
		alphabetTable, err = read16(0x34)
		if err != nil {
			return Header{}, err
		}
		extensionTable, err = read16(0x36)
		if err != nil {
			return Header{}, err
		}
	}

	var divisor uint32
	switch {
	case version <= 3:
		divisor = 2
	case version <= 5:
		divisor = 4
	default:
		divisor = 8
	}

	return Header{
		Version:                  version,
		Flags1:                   flags1,
		ObjectTableAddress:       uint32(objectTableBase),
		GlobalVariablesAddress:   uint32(globalVarBase),
		StaticMemBase:            uint32(staticMemBase),
		HighMemBase:              uint32(highMemBase),
		InitialPC:                uint32(firstInstruction),
		DictionaryAddress:        uint32(dictionaryBase),
		AbbreviationsTable:       uint32(abbreviationsTable),
		FileLength:               uint32(fileLengthField) * divisor,
		Checksum:                 checksum,
		RoutinesOffset:           routinesOffset,
		StringsOffset:            stringsOffset,
		TerminatingCharTableBase: uint32(terminatingCharTableBase),
		StatusBarTimeBased:       flags1&0b0000_0010 != 0,
		AlphabetTableAddress:     uint32(alphabetTable),
		ExtensionTableAddress:    uint32(extensionTable),
	}, nil
}

// PackedAddress expands a packed routine or string address to a byte
// address: 2x for v1-3, 4x for v4-5, 4x plus 8x the routines or strings
// offset for v6-7, 8x for v8.
func (h Header) PackedAddress(packed uint32, isString bool) uint32 {
	switch {
	case h.Version < 4:
		return 2 * packed
	case h.Version < 6:
		return 4 * packed
	case h.Version < 8:
		offset := uint32(h.RoutinesOffset)
		if isString {
			offset = uint32(h.StringsOffset)
		}
		return 4*packed + 8*offset
	default: // v8
		return 8 * packed
	}
}
