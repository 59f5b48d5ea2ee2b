// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// The Memory interface presents an interface to the CPU through which all
// memory accesses occur. A concrete implementation (see package membank)
// is responsible for banking RAM, ROM and I/O regions into the flat
// 16-bit address space the CPU sees.
type Memory interface {
	// LoadByte loads a single byte from the address and returns it.
	LoadByte(addr uint16) byte

	// LoadBytes loads multiple bytes from the address and stores them into
	// the buffer 'b'.
	LoadBytes(addr uint16, b []byte)

	// LoadAddress loads a 16-bit address value from the requested address
	// and returns it. When the address spans 2 pages (i.e. ends in $FF),
	// the high byte wraps to the start of the same page, reproducing the
	// NMOS 6502 indirect-addressing page-boundary bug.
	LoadAddress(addr uint16) uint16

	// StoreByte stores a byte to the requested address.
	StoreByte(addr uint16, v byte)

	// StoreBytes stores multiple bytes to the requested address.
	StoreBytes(addr uint16, b []byte)
}

// FlatMemory is a minimal, unbanked 64K Memory implementation, useful for
// CPU-only tests that don't need the full C64 memory map.
type FlatMemory struct {
	b [64 * 1024]byte
}

// NewFlatMemory creates a new unbanked 64K memory space.
func NewFlatMemory() *FlatMemory {
	return &FlatMemory{}
}

// LoadByte loads a single byte from the address and returns it.
func (m *FlatMemory) LoadByte(addr uint16) byte {
	return m.b[addr]
}

// LoadBytes loads multiple bytes starting at the address into 'b'.
func (m *FlatMemory) LoadBytes(addr uint16, b []byte) {
	if int(addr)+len(b) <= len(m.b) {
		copy(b, m.b[addr:])
		return
	}
	r0 := len(m.b) - int(addr)
	copy(b, m.b[addr:])
	for i := r0; i < len(b); i++ {
		b[i] = 0
	}
}

// LoadAddress loads a 16-bit address value, reproducing the NMOS
// indirect-addressing page-boundary bug when addr ends in $FF.
func (m *FlatMemory) LoadAddress(addr uint16) uint16 {
	if (addr & 0xff) == 0xff {
		return uint16(m.b[addr]) | uint16(m.b[addr-0xff])<<8
	}
	return uint16(m.b[addr]) | uint16(m.b[addr+1])<<8
}

// StoreByte stores a byte at the requested address.
func (m *FlatMemory) StoreByte(addr uint16, v byte) {
	m.b[addr] = v
}

// StoreBytes stores multiple bytes starting at the requested address.
func (m *FlatMemory) StoreBytes(addr uint16, b []byte) {
	copy(m.b[addr:], b)
}

// Return the offset address 'addr' + 'offset', wrapping at 64K.
func offsetAddress(addr uint16, offset byte) uint16 {
	return addr + uint16(offset)
}

// Offset a zero-page address 'addr' by 'offset'. If the address exceeds
// the zero-page address space, wrap it.
func offsetZeroPage(addr uint16, offset byte) uint16 {
	addr += uint16(offset)
	if addr >= 0x100 {
		addr -= 0x100
	}
	return addr
}

// Convert a 1- or 2-byte operand into an address.
func operandToAddress(operand []byte) uint16 {
	switch len(operand) {
	case 1:
		return uint16(operand[0])
	case 2:
		return uint16(operand[0]) | uint16(operand[1])<<8
	}
	return 0
}

// Given a 1-byte stack pointer register, return the corresponding stack
// memory address.
func stackAddress(offset byte) uint16 {
	return uint16(0x100) + uint16(offset)
}

// signExtend interprets 'v' as a signed 8-bit relative branch offset and
// returns its 16-bit sign-extended equivalent.
func signExtend(v byte) uint16 {
	if v < 0x80 {
		return uint16(v)
	}
	return uint16(v) | 0xff00
}
