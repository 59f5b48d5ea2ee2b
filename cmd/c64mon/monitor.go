// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command c64mon is a minimal command-driven front end for the C64
// core. It is not the PETSCII BASIC shell the core explicitly excludes;
// it exists to give the CPU's KERNAL-trap hook a concrete collaborator
// and to exercise ROM/program loading from the command line.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/beevik/cmd"

	"github.com/c64go/c64core/disasm"
	"github.com/c64go/c64core/machine"
)

// Monitor wires a Machine to a terminal session: command dispatch via
// beevik/cmd, and character I/O via the CPU's KernalTrap hook.
type Monitor struct {
	m    *machine.Machine
	out  io.Writer
	in   *bufio.Reader
	quit bool
}

var cmds *cmd.Tree

func init() {
	cmds = cmd.NewTree("c64mon", []cmd.Command{
		{
			Name:     "help",
			Shortcut: "?",
			Brief:    "Display help",
			Data:     (*Monitor).cmdHelp,
		},
		{
			Name:        "load-basic",
			Brief:       "Load a BASIC ROM image",
			Description: "Load an 8 KiB BASIC ROM image from a file.",
			HelpText:    "load-basic <path>",
			Data:        (*Monitor).cmdLoadBasic,
		},
		{
			Name:        "load-kernal",
			Brief:       "Load a KERNAL ROM image",
			Description: "Load an 8 KiB KERNAL ROM image from a file.",
			HelpText:    "load-kernal <path>",
			Data:        (*Monitor).cmdLoadKernal,
		},
		{
			Name:        "load-char",
			Brief:       "Load a character ROM image",
			Description: "Load a 4 KiB character ROM image from a file.",
			HelpText:    "load-char <path>",
			Data:        (*Monitor).cmdLoadChar,
		},
		{
			Name:        "load",
			Brief:       "Load a program file",
			Description: "Load a raw machine-code file at an address (default $0800).",
			HelpText:    "load <path> [address]",
			Data:        (*Monitor).cmdLoad,
		},
		{
			Name:        "reset",
			Brief:       "Reset the machine",
			Description: "Reinitialize memory (clearing RAM and restoring the default ROMs and banking) and reload the program counter from the reset vector.",
			HelpText:    "reset",
			Data:        (*Monitor).cmdReset,
		},
		{
			Name:        "step",
			Shortcut:    "s",
			Brief:       "Step the CPU",
			Description: "Execute one or more instructions, disassembling each as it runs.",
			HelpText:    "step [count]",
			Data:        (*Monitor).cmdStep,
		},
		{
			Name:        "run",
			Shortcut:    "r",
			Brief:       "Run for a number of cycles",
			Description: "Execute instructions until at least the requested number of cycles have elapsed.",
			HelpText:    "run <cycles>",
			Data:        (*Monitor).cmdRun,
		},
		{
			Name:        "dump",
			Shortcut:    "d",
			Brief:       "Dump memory",
			Description: "Display a hex dump of memory starting at an address.",
			HelpText:    "dump <address> [length]",
			Data:        (*Monitor).cmdDump,
		},
		{
			Name:        "state",
			Brief:       "Display CPU state",
			Description: "Display the CPU's registers and flags.",
			HelpText:    "state",
			Data:        (*Monitor).cmdState,
		},
		{
			Name:     "quit",
			Shortcut: "q",
			Brief:    "Quit the monitor",
			Data:     (*Monitor).cmdQuit,
		},
	})
}

// NewMonitor creates a Monitor bound to a fresh Machine, reading
// commands from in and writing output (including CHROUT bytes) to out.
func NewMonitor(in io.Reader, out io.Writer) *Monitor {
	mon := &Monitor{
		m:   machine.New(),
		out: out,
		in:  bufio.NewReader(in),
	}
	mon.m.CPU.AttachKernalTrap(mon)
	return mon
}

// CHROUT implements cpu.KernalTrap. It writes the byte verbatim to the
// monitor's output stream; no PETSCII-to-terminal translation is
// performed.
func (mon *Monitor) CHROUT(v byte) {
	mon.out.Write([]byte{v})
}

// CHRIN implements cpu.KernalTrap, reading one byte from the input
// stream, waiting until one arrives. If the stream is exhausted or a
// read fails it returns 0.
func (mon *Monitor) CHRIN() byte {
	b, err := mon.in.ReadByte()
	if err != nil {
		return 0
	}
	return b
}

// GETIN implements cpu.KernalTrap. Unlike CHRIN it never blocks: if the
// buffered reader has nothing ready, it returns 0 immediately.
func (mon *Monitor) GETIN() byte {
	if mon.in.Buffered() == 0 {
		return 0
	}
	return mon.CHRIN()
}

// Run reads and dispatches command lines from the monitor's input
// stream until a quit command is issued or the stream is exhausted.
// Command text and KERNAL-trap character I/O share the same reader, so
// a running program's CHRIN/GETIN calls consume from the same queue a
// human would be typing into.
func (mon *Monitor) Run() {
	for !mon.quit {
		line, err := mon.in.ReadString('\n')
		line = strings.TrimSpace(line)
		if line != "" {
			mon.dispatch(line)
		}
		if err != nil {
			return
		}
	}
}

func (mon *Monitor) dispatch(line string) {
	s, err := cmds.Lookup(line)
	if err != nil {
		fmt.Fprintf(mon.out, "c64mon: %v\n", err)
		return
	}
	fn := s.Command.Data.(func(*Monitor, cmd.Selection) error)
	if err := fn(mon, s); err != nil {
		fmt.Fprintf(mon.out, "c64mon: %v\n", err)
	}
}

var helpLines = []string{
	"help         Display help",
	"load-basic   Load a BASIC ROM image",
	"load-kernal  Load a KERNAL ROM image",
	"load-char    Load a character ROM image",
	"load         Load a program file",
	"reset        Reset the machine",
	"step         Step the CPU",
	"run          Run for a number of cycles",
	"dump         Dump memory",
	"state        Display CPU state",
	"quit         Quit the monitor",
}

func (mon *Monitor) cmdHelp(s cmd.Selection) error {
	for _, line := range helpLines {
		fmt.Fprintf(mon.out, "  %s\n", line)
	}
	return nil
}

func (mon *Monitor) cmdLoadBasic(s cmd.Selection) error {
	if len(s.Args) != 1 {
		return fmt.Errorf("usage: load-basic <path>")
	}
	mon.m.Bank.LoadBasicROM(s.Args[0])
	return nil
}

func (mon *Monitor) cmdLoadKernal(s cmd.Selection) error {
	if len(s.Args) != 1 {
		return fmt.Errorf("usage: load-kernal <path>")
	}
	mon.m.Bank.LoadKernalROM(s.Args[0])
	return nil
}

func (mon *Monitor) cmdLoadChar(s cmd.Selection) error {
	if len(s.Args) != 1 {
		return fmt.Errorf("usage: load-char <path>")
	}
	mon.m.Bank.LoadCharROM(s.Args[0])
	return nil
}

func (mon *Monitor) cmdLoad(s cmd.Selection) error {
	if len(s.Args) < 1 || len(s.Args) > 2 {
		return fmt.Errorf("usage: load <path> [address]")
	}
	var addr uint16
	if len(s.Args) == 2 {
		v, err := strconv.ParseUint(strings.TrimPrefix(s.Args[1], "$"), 16, 16)
		if err != nil {
			return fmt.Errorf("invalid address %q", s.Args[1])
		}
		addr = uint16(v)
	}
	return mon.m.LoadProgram(s.Args[0], addr)
}

func (mon *Monitor) cmdReset(s cmd.Selection) error {
	mon.m.Reset()
	return nil
}

func (mon *Monitor) cmdStep(s cmd.Selection) error {
	count := 1
	if len(s.Args) == 1 {
		n, err := strconv.Atoi(s.Args[0])
		if err != nil {
			return fmt.Errorf("invalid step count %q", s.Args[0])
		}
		count = n
	}
	for i := 0; i < count; i++ {
		text, _ := disasm.Instruction(mon.m.Bank, mon.m.Reg.PC)
		fmt.Fprintf(mon.out, "$%04X  %s\n", mon.m.Reg.PC, text)
		mon.m.Step()
	}
	return nil
}

func (mon *Monitor) cmdRun(s cmd.Selection) error {
	if len(s.Args) != 1 {
		return fmt.Errorf("usage: run <cycles>")
	}
	n, err := strconv.ParseUint(s.Args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid cycle count %q", s.Args[0])
	}
	mon.m.RunCycles(n)
	return nil
}

func (mon *Monitor) cmdDump(s cmd.Selection) error {
	if len(s.Args) < 1 || len(s.Args) > 2 {
		return fmt.Errorf("usage: dump <address> [length]")
	}
	addrV, err := strconv.ParseUint(strings.TrimPrefix(s.Args[0], "$"), 16, 16)
	if err != nil {
		return fmt.Errorf("invalid address %q", s.Args[0])
	}
	length := 64
	if len(s.Args) == 2 {
		n, err := strconv.Atoi(s.Args[1])
		if err != nil {
			return fmt.Errorf("invalid length %q", s.Args[1])
		}
		length = n
	}
	mon.m.Dump(uint16(addrV), length, mon.out)
	return nil
}

func (mon *Monitor) cmdState(s cmd.Selection) error {
	mon.m.PrintState(mon.out)
	return nil
}

func (mon *Monitor) cmdQuit(s cmd.Selection) error {
	mon.quit = true
	return nil
}

// exitOnError reports a fatal startup error the way the rest of the
// package reports runtime ones, then exits.
func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "c64mon: %v\n", err)
		os.Exit(1)
	}
}
