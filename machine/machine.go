// Package machine composes the CPU interpreter and the banked memory
// subsystem into a single owned handle, replacing the file-scope
// globals a direct port would otherwise carry forward.
package machine

import (
	"io"
	"os"

	"github.com/c64go/c64core/cpu"
	"github.com/c64go/c64core/membank"
)

// defaultProgramAddr is where LoadProgram places a program file when
// the caller does not specify an address, per spec.md's program-file
// binary format.
const defaultProgramAddr = 0x0800

// Machine is a fully owned Commodore 64 core: a 6510 CPU bound to a
// banked 64 KiB memory subsystem. Every method forwards to the CPU or
// the memory bank; Machine itself carries no independent semantics.
type Machine struct {
	*cpu.CPU
	Bank *membank.Bank
}

// New creates a Machine with its memory initialized to power-on
// defaults and its CPU reset from the vector that default state
// provides.
func New() *Machine {
	bank := membank.NewBank()
	c := cpu.NewCPU(bank)
	c.Reset()
	return &Machine{CPU: c, Bank: bank}
}

// Reset reinitializes the memory subsystem to its power-on state and
// reloads the CPU's program counter from the reset vector. Unlike a bare
// CPU reset, this also clears RAM and restores the default ROM images and
// banking flags, discarding any ROM or program loaded earlier, matching the
// combined init()+reset() sequence spec.md's external interface names
// for a fresh session.
func (m *Machine) Reset() {
	m.Bank.Init()
	m.CPU.Reset()
}

// LoadROMs loads the BASIC, KERNAL and character ROM images from the
// given paths. A path left empty skips that ROM, leaving its current
// contents (default or previously loaded) untouched.
func (m *Machine) LoadROMs(basic, kernal, char string) error {
	if basic != "" {
		m.Bank.LoadBasicROM(basic)
	}
	if kernal != "" {
		m.Bank.LoadKernalROM(kernal)
	}
	if char != "" {
		m.Bank.LoadCharROM(char)
	}
	return nil
}

// LoadProgram reads a raw machine-code file from path and loads it
// verbatim at addr. If addr is 0, the default program address
// ($0800) is used.
func (m *Machine) LoadProgram(path string, addr uint16) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if addr == 0 {
		addr = defaultProgramAddr
	}
	m.Bank.Load(addr, data)
	return nil
}

// Dump writes a formatted hex dump of length bytes starting at addr to
// w.
func (m *Machine) Dump(addr uint16, length int, w io.Writer) {
	m.Bank.Dump(addr, length, w)
}

// PrintState writes a single-line summary of the CPU's register file
// to w.
func (m *Machine) PrintState(w io.Writer) {
	m.CPU.PrintState(w)
}
