// Package memory implements the Z-machine's byte-addressable store: a
// big-endian byte array with typed reads/writes and the bounds and
// read-only checks the story-file format requires.
package memory

import "zvm/zfault"

// headerMutableOffsets holds the header byte offsets that are writable by
// story code after load. Everything else in the first 64 bytes is set once
// by the host loader and is read-only to the running program even though it
// sits below StaticBase.
var headerMutableOffsets = map[uint32]bool{
	0x10: true, // Flags 2, high byte
	0x11: true, // Flags 2, low byte (transcript/fixed-pitch/sound request bits)
}

// Memory is a contiguous big-endian byte array of at most 512 KiB.
type Memory struct {
	bytes      []uint8
	staticBase uint32
}

// New wraps a loaded story-file image. staticBase is the header's
// static_mem_base field: memory at or above it is read-only.
func New(bytes []uint8, staticBase uint32) *Memory {
	return &Memory{bytes: bytes, staticBase: staticBase}
}

// Len returns the size of the backing image in bytes.
func (m *Memory) Len() uint32 { return uint32(len(m.bytes)) }

func (m *Memory) checkRead(addr uint32, width uint32) error {
	if addr+width > m.Len() {
		return zfault.New(zfault.MemoryFault, "read out of range").WithOperand(addr)
	}
	return nil
}

// ReadU8 reads a single byte at an absolute address.
func (m *Memory) ReadU8(addr uint32) (uint8, error) {
	if err := m.checkRead(addr, 1); err != nil {
		return 0, err
	}
	return m.bytes[addr], nil
}

// ReadU16 reads a big-endian 16-bit word: (mem[a]<<8)|mem[a+1].
func (m *Memory) ReadU16(addr uint32) (uint16, error) {
	if err := m.checkRead(addr, 2); err != nil {
		return 0, err
	}
	return uint16(m.bytes[addr])<<8 | uint16(m.bytes[addr+1]), nil
}

func (m *Memory) checkWrite(addr uint32, width uint32) error {
	if addr+width > m.Len() {
		return zfault.New(zfault.MemoryFault, "write out of range").WithOperand(addr)
	}
	if addr < 64 {
		if !headerMutableOffsets[addr] {
			return zfault.New(zfault.ReadOnlyFault, "header byte is not dynamically mutable").WithOperand(addr)
		}
		return nil
	}
	if addr >= m.staticBase {
		return zfault.New(zfault.ReadOnlyFault, "write to static or high memory").WithOperand(addr)
	}
	return nil
}

// WriteU8 writes a single byte, rejecting writes into static/high memory or
// immutable header bytes.
func (m *Memory) WriteU8(addr uint32, v uint8) error {
	if err := m.checkWrite(addr, 1); err != nil {
		return err
	}
	m.bytes[addr] = v
	return nil
}

// WriteU16 writes a big-endian word: first (v>>8)&0xFF, then v&0xFF.
func (m *Memory) WriteU16(addr uint32, v uint16) error {
	if err := m.checkWrite(addr, 2); err != nil {
		return err
	}
	m.bytes[addr] = uint8(v >> 8)
	m.bytes[addr+1] = uint8(v)
	return nil
}

// Slice returns a read-only view of [start, end) for consumers (text codec,
// table opcodes) that need to scan a run of bytes without one call per byte.
// The returned slice aliases the backing array; callers must not retain it
// across a write that could reallocate (Memory never reallocates, so this is
// safe for the lifetime of the VM).
func (m *Memory) Slice(start, end uint32) ([]uint8, error) {
	if end < start || end > m.Len() {
		return nil, zfault.New(zfault.MemoryFault, "slice out of range").WithOperand(start)
	}
	return m.bytes[start:end], nil
}

// RawBytes exposes the whole backing array for save/restore snapshotting.
// Only zvmsave should use this; core handlers must go through the typed
// accessors so bounds/read-only checks stay centralized.
func (m *Memory) RawBytes() []uint8 { return m.bytes }
