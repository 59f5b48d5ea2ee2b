// Package membank implements the banked 64 KiB memory subsystem of a
// Commodore 64: flat RAM overlaid by the BASIC, KERNAL and character
// ROM images, switched in and out by the processor-port register at
// $0001.
package membank

import (
	"fmt"
	"io"
	"os"
)

// Region names the source a memory page is currently dispatched to.
type Region byte

// The five regions a page can resolve to.
const (
	RegionRAM Region = iota
	RegionBASIC
	RegionKERNAL
	RegionCHAR
	RegionIO
)

const (
	basicROMSize  = 8192
	kernalROMSize = 8192
	charROMSize   = 4096
)

// Address ranges banked by the processor port.
const (
	basicBase  = 0xa000
	basicTop   = 0xbfff
	ioBase     = 0xd000
	ioTop      = 0xdfff
	kernalBase = 0xe000
	kernalTop  = 0xffff
)

// Bank is the banked C64 memory subsystem: a flat 64 KiB RAM array
// overlaid by BASIC, KERNAL and character ROM images, switched by the
// low three bits of the processor-port register at $0001. It implements
// cpu.Memory.
type Bank struct {
	ram       [65536]byte
	basicROM  [basicROMSize]byte
	kernalROM [kernalROMSize]byte
	charROM   [charROMSize]byte

	basicEnabled  bool
	kernalEnabled bool
	charEnabled   bool
	ioEnabled     bool

	pages [256]Region
}

// NewBank creates a banked memory subsystem and initializes it to its
// power-on state.
func NewBank() *Bank {
	b := &Bank{}
	b.Init()
	return b
}

// Init zeroes RAM, preloads the ROMs with their default contents,
// installs the initial processor-port byte, enables all four banks,
// and builds the page dispatch table.
func (b *Bank) Init() {
	b.ram = [65536]byte{}
	b.loadDefaultROMs()
	b.ram[0x0000] = 0x2f
	b.ram[0x0001] = 0x37
	b.basicEnabled = true
	b.kernalEnabled = true
	b.charEnabled = true
	b.ioEnabled = true
	b.rebuildPages()
}

// loadDefaultROMs fills BASIC and KERNAL with NOP ($EA), zeroes the
// character ROM, and installs the default KERNAL vector triplet.
func (b *Bank) loadDefaultROMs() {
	for i := range b.basicROM {
		b.basicROM[i] = 0xea
	}
	for i := range b.kernalROM {
		b.kernalROM[i] = 0xea
	}
	for i := range b.charROM {
		b.charROM[i] = 0
	}
	b.installDefaultVectors()
}

// Offsets of the vector triplet within the KERNAL ROM image, matching
// CPU addresses $FFFA-$FFFF when the KERNAL is banked in.
const (
	nmiVectorOffset   = 0x1ffa
	resetVectorOffset = 0x1ffc
	irqVectorOffset   = 0x1ffe
)

func (b *Bank) installDefaultVectors() {
	putVector := func(offset int, addr uint16) {
		b.kernalROM[offset] = byte(addr)
		b.kernalROM[offset+1] = byte(addr >> 8)
	}
	putVector(nmiVectorOffset, 0xfe43)
	putVector(resetVectorOffset, 0xe000)
	putVector(irqVectorOffset, 0xff48)
}

// applyBanking recomputes the four banking flags from the low three
// bits of v, the byte just stored to $0001. The decode preserves the
// source mapping where bits 0 and 1 both enable BASIC.
func (b *Bank) applyBanking(v byte) {
	lo := v & 0x07
	b.kernalEnabled = lo&0x02 != 0
	b.basicEnabled = lo&0x03 != 0
	b.ioEnabled = lo&0x04 != 0
	b.charEnabled = lo&0x04 == 0 && lo&0x03 != 0
}

// rebuildPages recomputes the page dispatch table from the current
// banking flags. It is a derived cache; the flags remain the source of
// truth.
func (b *Bank) rebuildPages() {
	for page := 0; page < 256; page++ {
		switch {
		case page >= 0xd0 && page <= 0xdf && b.ioEnabled:
			b.pages[page] = RegionIO
		case page >= 0xa0 && page <= 0xbf && b.basicEnabled:
			b.pages[page] = RegionBASIC
		case page >= 0xe0 && page <= 0xff && b.kernalEnabled:
			b.pages[page] = RegionKERNAL
		case page >= 0xd0 && page <= 0xdf && !b.ioEnabled && b.charEnabled:
			b.pages[page] = RegionCHAR
		default:
			b.pages[page] = RegionRAM
		}
	}
}

// LoadByte loads a single byte from addr according to the current
// banking state.
func (b *Bank) LoadByte(addr uint16) byte {
	switch b.pages[addr>>8] {
	case RegionBASIC:
		return b.basicROM[addr-basicBase]
	case RegionKERNAL:
		return b.kernalROM[addr-kernalBase]
	case RegionCHAR:
		return b.charROM[addr-ioBase]
	default: // RegionRAM, RegionIO
		return b.ram[addr]
	}
}

// LoadBytes loads len(buf) bytes starting at addr into buf.
func (b *Bank) LoadBytes(addr uint16, buf []byte) {
	for i := range buf {
		buf[i] = b.LoadByte(addr + uint16(i))
	}
}

// LoadAddress loads a 16-bit address value from addr, reproducing the
// NMOS indirect-addressing page-boundary bug when addr ends in $FF.
func (b *Bank) LoadAddress(addr uint16) uint16 {
	if addr&0xff == 0xff {
		return uint16(b.LoadByte(addr)) | uint16(b.LoadByte(addr-0xff))<<8
	}
	return uint16(b.LoadByte(addr)) | uint16(b.LoadByte(addr+1))<<8
}

// StoreByte stores v at addr. Writes into an enabled ROM region are
// discarded. A write to $0001 stores the byte in RAM, then updates the
// banking flags and rebuilds the page dispatch table.
func (b *Bank) StoreByte(addr uint16, v byte) {
	switch {
	case addr >= basicBase && addr <= basicTop && b.basicEnabled:
		// discarded: BASIC ROM is read-only while banked in
	case addr >= kernalBase && addr <= kernalTop && b.kernalEnabled:
		// discarded: KERNAL ROM is read-only while banked in
	case addr >= ioBase && addr <= ioTop:
		switch {
		case b.ioEnabled:
			b.ram[addr] = v
		case b.charEnabled:
			// discarded: character ROM is read-only while banked in
		default:
			b.ram[addr] = v
		}
	case addr == 0x0001:
		b.ram[addr] = v
		b.applyBanking(v)
		b.rebuildPages()
	default:
		b.ram[addr] = v
	}
}

// StoreBytes stores buf starting at addr.
func (b *Bank) StoreBytes(addr uint16, buf []byte) {
	for i, v := range buf {
		b.StoreByte(addr+uint16(i), v)
	}
}

// Load copies data into RAM starting at addr, truncating if it would
// overrun the 64 KiB address space.
func (b *Bank) Load(addr uint16, data []byte) {
	max := 65536 - int(addr)
	n := len(data)
	if n > max {
		fmt.Fprintf(os.Stderr, "membank: load at $%04X overruns 64K; truncating %d bytes to %d\n", addr, n, max)
		n = max
	}
	copy(b.ram[addr:], data[:n])
}

// loadROM reads path into dst, padding implicitly on a short read and
// truncating on a long one. It always reports a file-open failure and
// leaves dst untouched in that case.
func (b *Bank) loadROM(name, path string, dst []byte) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "membank: failed to load %s ROM %q: %v\n", name, path, err)
		return false
	}
	n := copy(dst, data)
	switch {
	case len(data) > len(dst):
		fmt.Fprintf(os.Stderr, "membank: %s ROM %q is %d bytes, expected %d; truncated\n", name, path, len(data), len(dst))
	case n < len(dst):
		fmt.Fprintf(os.Stderr, "membank: %s ROM %q is %d bytes, expected %d; remaining bytes unchanged\n", name, path, n, len(dst))
	}
	b.rebuildPages()
	return true
}

// LoadBasicROM loads an 8 KiB BASIC ROM image from path.
func (b *Bank) LoadBasicROM(path string) bool {
	return b.loadROM("BASIC", path, b.basicROM[:])
}

// LoadKernalROM loads an 8 KiB KERNAL ROM image from path.
func (b *Bank) LoadKernalROM(path string) bool {
	return b.loadROM("KERNAL", path, b.kernalROM[:])
}

// LoadCharROM loads a 4 KiB character ROM image from path.
func (b *Bank) LoadCharROM(path string) bool {
	return b.loadROM("character", path, b.charROM[:])
}

// Dump writes a formatted hex dump of length bytes starting at addr to
// w, 16 bytes per line in "$AAAA: HH HH ..." format.
func (b *Bank) Dump(addr uint16, length int, w io.Writer) {
	for i := 0; i < length; i += 16 {
		lineAddr := addr + uint16(i)
		fmt.Fprintf(w, "$%04X:", lineAddr)
		for j := 0; j < 16 && i+j < length; j++ {
			fmt.Fprintf(w, " %02X", b.LoadByte(lineAddr+uint16(j)))
		}
		fmt.Fprintln(w)
	}
}
