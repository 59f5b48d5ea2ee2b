// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cpu implements a MOS 6510 instruction-set interpreter: the CPU
// found in the Commodore 64. It emulates the documented instruction set,
// the 13 addressing modes, and interrupt entry, but does not model
// cycle-exact bus timing, undocumented opcodes, or decimal-mode
// arithmetic.
package cpu

import (
	"fmt"
	"io"
)

// KernalTrap lets a host intercept JSR calls into the KERNAL's call
// vector range ($FF00-$FFFF) instead of executing the ROM routine at
// that address. This is how a monitor or REPL front-end supplies
// character I/O (CHROUT, CHRIN, GETIN) without shipping a real KERNAL
// ROM image.
type KernalTrap interface {
	// CHROUT is invoked in place of JSR $FFD2. It should output v.
	CHROUT(v byte)

	// CHRIN is invoked in place of JSR $FFCF. It returns the next input
	// character.
	CHRIN() byte

	// GETIN is invoked in place of JSR $FFE4. It returns the next
	// character in the keyboard buffer, or 0 if none is available.
	GETIN() byte
}

// CPU represents a single MOS 6510 CPU bound to a 16-bit memory space.
type CPU struct {
	Reg     Registers       // CPU registers
	Mem     Memory          // assigned memory
	Cycles  uint64          // total executed CPU cycles
	LastPC  uint16          // program counter of the most recently executed instruction
	InstSet *InstructionSet // instruction set used by the CPU

	debugger  *Debugger
	trap      KernalTrap
	storeByte func(cpu *CPU, addr uint16, v byte)
}

// Interrupt vectors.
const (
	vectorNMI   = 0xfffa
	vectorReset = 0xfffc
	vectorIRQ   = 0xfffe
	vectorBRK   = 0xfffe
)

// kernalTrapBase is the first address of the KERNAL call-vector range
// that a KernalTrap may intercept.
const kernalTrapBase = 0xff00

// NewCPU creates an emulated 6510 CPU bound to the specified memory.
func NewCPU(m Memory) *CPU {
	cpu := &CPU{
		Mem:       m,
		InstSet:   GetInstructionSet(),
		storeByte: (*CPU).storeByteNormal,
	}
	cpu.Init()
	return cpu
}

// Init sets the CPU to its power-on register state: all general
// registers zeroed, the stack pointer at $FF, and interrupts disabled.
// It does not touch memory; callers load the reset vector by calling
// Reset afterward.
func (cpu *CPU) Init() {
	cpu.Reg = Registers{}
	cpu.Reg.SP = 0xff
	cpu.Reg.InterruptDisable = true
	cpu.Cycles = 0
}

// Reset loads the program counter from the reset vector, as a real 6510
// does when the RESET line is asserted.
func (cpu *CPU) Reset() {
	cpu.Reg.PC = cpu.Mem.LoadAddress(vectorReset)
}

// SetPC updates the CPU program counter to 'addr'.
func (cpu *CPU) SetPC(addr uint16) {
	cpu.Reg.PC = addr
}

// GetInstruction returns the instruction opcode at the requested address.
func (cpu *CPU) GetInstruction(addr uint16) *Instruction {
	opcode := cpu.Mem.LoadByte(addr)
	return cpu.InstSet.Lookup(opcode)
}

// NextAddr returns the address of the instruction following the
// instruction at addr.
func (cpu *CPU) NextAddr(addr uint16) uint16 {
	opcode := cpu.Mem.LoadByte(addr)
	inst := cpu.InstSet.Lookup(opcode)
	return addr + uint16(inst.Length)
}

// AttachKernalTrap installs a handler for JSR calls that target the
// KERNAL call-vector range ($FF00-$FFFF).
func (cpu *CPU) AttachKernalTrap(trap KernalTrap) {
	cpu.trap = trap
}

// Step executes a single instruction at the current program counter and
// returns the number of cycles it took.
func (cpu *CPU) Step() uint64 {
	opcode := cpu.Mem.LoadByte(cpu.Reg.PC)
	inst := cpu.InstSet.Lookup(opcode)

	if inst.Name == unknownName {
		emitUnknownOpcode(cpu.Reg.PC, opcode)
	}

	var buf [2]byte
	operand := buf[:inst.Length-1]
	cpu.Mem.LoadBytes(cpu.Reg.PC+1, operand)
	cpu.LastPC = cpu.Reg.PC
	cpu.Reg.PC += uint16(inst.Length)

	before := cpu.Cycles
	cpu.Cycles += uint64(inst.Cycles)
	inst.fn(cpu, inst, operand)

	if cpu.debugger != nil {
		cpu.debugger.onUpdatePC(cpu, cpu.Reg.PC)
	}

	return cpu.Cycles - before
}

// RunCycles steps the CPU until at least n cycles have been executed,
// returning the total number of cycles actually consumed (which may
// exceed n, since instructions are not sub-divided).
func (cpu *CPU) RunCycles(n uint64) uint64 {
	var executed uint64
	for executed < n {
		executed += cpu.Step()
	}
	return executed
}

// Interrupt signals an interrupt request to the CPU. If nmi is true, a
// non-maskable interrupt is delivered unconditionally. Otherwise a
// maskable IRQ is delivered only if the InterruptDisable flag is clear.
// Interrupt returns true if the interrupt was honored.
func (cpu *CPU) Interrupt(nmi bool) bool {
	if nmi {
		cpu.handleInterrupt(false, vectorNMI)
		return true
	}
	if !cpu.Reg.InterruptDisable {
		cpu.handleInterrupt(false, vectorIRQ)
		return true
	}
	return false
}

// GetStatus returns the packed processor status byte.
func (cpu *CPU) GetStatus() byte {
	return cpu.Reg.Pack()
}

// SetStatus unpacks a processor status byte into the CPU's flags.
func (cpu *CPU) SetStatus(ps byte) {
	cpu.Reg.Unpack(ps)
}

// PrintState writes a single-line summary of the CPU's register file to
// w: the accumulator, index registers, stack pointer, program counter,
// and a flag string in NV-BDIZC order, with '.' standing in for a
// cleared flag.
func (cpu *CPU) PrintState(w io.Writer) {
	fmt.Fprintf(w, "A=%02X X=%02X Y=%02X SP=%02X PC=%04X P=%s\n",
		cpu.Reg.A, cpu.Reg.X, cpu.Reg.Y, cpu.Reg.SP, cpu.Reg.PC, cpu.flagString())
}

func (cpu *CPU) flagString() string {
	flags := [8]byte{'N', 'V', '.', 'B', 'D', 'I', 'Z', 'C'}
	set := [8]bool{
		cpu.Reg.Sign, cpu.Reg.Overflow, false, cpu.Reg.Break,
		cpu.Reg.Decimal, cpu.Reg.InterruptDisable, cpu.Reg.Zero, cpu.Reg.Carry,
	}
	var buf [8]byte
	for i, c := range flags {
		if i == 2 {
			buf[i] = '.'
			continue
		}
		if set[i] {
			buf[i] = c
		} else {
			buf[i] = '.'
		}
	}
	return string(buf[:])
}

// AttachDebugger attaches a debugger to the CPU. The debugger receives
// notifications whenever the CPU executes an instruction or stores a
// byte to memory.
func (cpu *CPU) AttachDebugger(debugger *Debugger) {
	cpu.debugger = debugger
	cpu.storeByte = (*CPU).storeByteDebugger
}

// DetachDebugger detaches the currently attached debugger from the CPU.
func (cpu *CPU) DetachDebugger() {
	cpu.debugger = nil
	cpu.storeByte = (*CPU).storeByteNormal
}

// Load a byte value using the requested addressing mode and the operand
// to determine where to load it from.
func (cpu *CPU) load(mode Mode, operand []byte) byte {
	switch mode {
	case IMM:
		return operand[0]
	case ZPG:
		zpaddr := operandToAddress(operand)
		return cpu.Mem.LoadByte(zpaddr)
	case ZPX:
		zpaddr := operandToAddress(operand)
		zpaddr = offsetZeroPage(zpaddr, cpu.Reg.X)
		return cpu.Mem.LoadByte(zpaddr)
	case ZPY:
		zpaddr := operandToAddress(operand)
		zpaddr = offsetZeroPage(zpaddr, cpu.Reg.Y)
		return cpu.Mem.LoadByte(zpaddr)
	case ABS:
		addr := operandToAddress(operand)
		return cpu.Mem.LoadByte(addr)
	case ABX:
		addr := offsetAddress(operandToAddress(operand), cpu.Reg.X)
		return cpu.Mem.LoadByte(addr)
	case ABY:
		addr := offsetAddress(operandToAddress(operand), cpu.Reg.Y)
		return cpu.Mem.LoadByte(addr)
	case IDX:
		zpaddr := operandToAddress(operand)
		zpaddr = offsetZeroPage(zpaddr, cpu.Reg.X)
		addr := cpu.Mem.LoadAddress(zpaddr)
		return cpu.Mem.LoadByte(addr)
	case IDY:
		zpaddr := operandToAddress(operand)
		addr := cpu.Mem.LoadAddress(zpaddr)
		addr = offsetAddress(addr, cpu.Reg.Y)
		return cpu.Mem.LoadByte(addr)
	case ACC:
		return cpu.Reg.A
	default:
		panic("invalid addressing mode")
	}
}

// Load a 16-bit address value from memory using the requested addressing
// mode and the instruction's operand bytes.
func (cpu *CPU) loadAddress(mode Mode, operand []byte) uint16 {
	switch mode {
	case ABS:
		return operandToAddress(operand)
	case IND:
		addr := operandToAddress(operand)
		return cpu.Mem.LoadAddress(addr)
	default:
		panic("invalid addressing mode")
	}
}

// Store a byte value using the specified addressing mode and the
// variable-sized instruction operand to determine where to store it.
func (cpu *CPU) store(mode Mode, operand []byte, v byte) {
	switch mode {
	case ZPG:
		zpaddr := operandToAddress(operand)
		cpu.storeByte(cpu, zpaddr, v)
	case ZPX:
		zpaddr := operandToAddress(operand)
		zpaddr = offsetZeroPage(zpaddr, cpu.Reg.X)
		cpu.storeByte(cpu, zpaddr, v)
	case ZPY:
		zpaddr := operandToAddress(operand)
		zpaddr = offsetZeroPage(zpaddr, cpu.Reg.Y)
		cpu.storeByte(cpu, zpaddr, v)
	case ABS:
		addr := operandToAddress(operand)
		cpu.storeByte(cpu, addr, v)
	case ABX:
		addr := offsetAddress(operandToAddress(operand), cpu.Reg.X)
		cpu.storeByte(cpu, addr, v)
	case ABY:
		addr := offsetAddress(operandToAddress(operand), cpu.Reg.Y)
		cpu.storeByte(cpu, addr, v)
	case IDX:
		zpaddr := operandToAddress(operand)
		zpaddr = offsetZeroPage(zpaddr, cpu.Reg.X)
		addr := cpu.Mem.LoadAddress(zpaddr)
		cpu.storeByte(cpu, addr, v)
	case IDY:
		zpaddr := operandToAddress(operand)
		addr := cpu.Mem.LoadAddress(zpaddr)
		addr = offsetAddress(addr, cpu.Reg.Y)
		cpu.storeByte(cpu, addr, v)
	case ACC:
		cpu.Reg.A = v
	default:
		panic("invalid addressing mode")
	}
}

// Execute a branch using the instruction's relative operand.
func (cpu *CPU) branch(operand []byte) {
	offset := signExtend(operand[0])
	cpu.Reg.PC += offset
}

// storeByteNormal stores v at addr with no side effects beyond the
// memory write itself.
func (cpu *CPU) storeByteNormal(addr uint16, v byte) {
	cpu.Mem.StoreByte(addr, v)
}

// storeByteDebugger stores v at addr, first notifying the attached
// debugger so it can evaluate data breakpoints.
func (cpu *CPU) storeByteDebugger(addr uint16, v byte) {
	cpu.debugger.onDataStore(cpu, addr, v)
	cpu.Mem.StoreByte(addr, v)
}

// Push a value onto the stack.
func (cpu *CPU) push(v byte) {
	cpu.storeByte(cpu, stackAddress(cpu.Reg.SP), v)
	cpu.Reg.SP--
}

// Push a 16-bit address onto the stack, high byte first.
func (cpu *CPU) pushAddress(addr uint16) {
	cpu.push(byte(addr >> 8))
	cpu.push(byte(addr))
}

// Pop a value off the stack and return it.
func (cpu *CPU) pop() byte {
	cpu.Reg.SP++
	return cpu.Mem.LoadByte(stackAddress(cpu.Reg.SP))
}

// Pop a 16-bit address off the stack.
func (cpu *CPU) popAddress() uint16 {
	lo := cpu.pop()
	hi := cpu.pop()
	return uint16(lo) | (uint16(hi) << 8)
}

// Update the Zero and Sign (negative) flags based on the value of v.
func (cpu *CPU) updateNZ(v byte) {
	cpu.Reg.Zero = (v == 0)
	cpu.Reg.Sign = ((v & 0x80) != 0)
}

// handleInterrupt pushes the program counter and status flags onto the
// stack, with the Break flag set to brk, then loads the program counter
// from the interrupt vector at addr.
func (cpu *CPU) handleInterrupt(brk bool, addr uint16) {
	cpu.pushAddress(cpu.Reg.PC)

	savedBreak := cpu.Reg.Break
	cpu.Reg.Break = brk
	cpu.push(cpu.Reg.Pack())
	cpu.Reg.Break = savedBreak

	cpu.Reg.InterruptDisable = true
	cpu.Reg.PC = cpu.Mem.LoadAddress(addr)
	cpu.Cycles += 7
}

// Add with carry. Decimal-mode arithmetic is not modeled; the Decimal
// flag can be set and read but never alters the result.
func (cpu *CPU) adc(inst *Instruction, operand []byte) {
	acc := uint32(cpu.Reg.A)
	add := uint32(cpu.load(inst.Mode, operand))
	carry := boolToUint32(cpu.Reg.Carry)

	v := acc + add + carry
	cpu.Reg.Carry = (v >= 0x100)
	cpu.Reg.Overflow = (((acc & 0x80) == (add & 0x80)) && ((acc & 0x80) != (v & 0x80)))

	cpu.Reg.A = byte(v)
	cpu.updateNZ(cpu.Reg.A)
}

// Boolean AND
func (cpu *CPU) and(inst *Instruction, operand []byte) {
	cpu.Reg.A &= cpu.load(inst.Mode, operand)
	cpu.updateNZ(cpu.Reg.A)
}

// Arithmetic Shift Left
func (cpu *CPU) asl(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand)
	cpu.Reg.Carry = ((v & 0x80) == 0x80)
	v = v << 1
	cpu.updateNZ(v)
	cpu.store(inst.Mode, operand, v)
}

// Branch if Carry Clear
func (cpu *CPU) bcc(inst *Instruction, operand []byte) {
	if !cpu.Reg.Carry {
		cpu.branch(operand)
	}
}

// Branch if Carry Set
func (cpu *CPU) bcs(inst *Instruction, operand []byte) {
	if cpu.Reg.Carry {
		cpu.branch(operand)
	}
}

// Branch if EQual (to zero)
func (cpu *CPU) beq(inst *Instruction, operand []byte) {
	if cpu.Reg.Zero {
		cpu.branch(operand)
	}
}

// Bit Test
func (cpu *CPU) bit(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand)
	cpu.Reg.Zero = ((v & cpu.Reg.A) == 0)
	cpu.Reg.Sign = ((v & 0x80) != 0)
	cpu.Reg.Overflow = ((v & 0x40) != 0)
}

// Branch if MInus (negative)
func (cpu *CPU) bmi(inst *Instruction, operand []byte) {
	if cpu.Reg.Sign {
		cpu.branch(operand)
	}
}

// Branch if Not Equal (not zero)
func (cpu *CPU) bne(inst *Instruction, operand []byte) {
	if !cpu.Reg.Zero {
		cpu.branch(operand)
	}
}

// Branch if PLus (positive)
func (cpu *CPU) bpl(inst *Instruction, operand []byte) {
	if !cpu.Reg.Sign {
		cpu.branch(operand)
	}
}

// Break. Treated as a software interrupt: the return address pushed is
// PC+2 (the byte following the padding byte), with the Break flag set
// in the pushed status so a handler can distinguish BRK from a real IRQ.
func (cpu *CPU) brk(inst *Instruction, operand []byte) {
	cpu.Reg.PC++
	cpu.handleInterrupt(true, vectorBRK)
}

// Branch if oVerflow Clear
func (cpu *CPU) bvc(inst *Instruction, operand []byte) {
	if !cpu.Reg.Overflow {
		cpu.branch(operand)
	}
}

// Branch if oVerflow Set
func (cpu *CPU) bvs(inst *Instruction, operand []byte) {
	if cpu.Reg.Overflow {
		cpu.branch(operand)
	}
}

// Clear Carry flag
func (cpu *CPU) clc(inst *Instruction, operand []byte) {
	cpu.Reg.Carry = false
}

// Clear Decimal flag
func (cpu *CPU) cld(inst *Instruction, operand []byte) {
	cpu.Reg.Decimal = false
}

// Clear InterruptDisable flag
func (cpu *CPU) cli(inst *Instruction, operand []byte) {
	cpu.Reg.InterruptDisable = false
}

// Clear oVerflow flag
func (cpu *CPU) clv(inst *Instruction, operand []byte) {
	cpu.Reg.Overflow = false
}

// Compare to accumulator
func (cpu *CPU) cmp(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand)
	cpu.Reg.Carry = (cpu.Reg.A >= v)
	cpu.updateNZ(cpu.Reg.A - v)
}

// Compare to X register
func (cpu *CPU) cpx(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand)
	cpu.Reg.Carry = (cpu.Reg.X >= v)
	cpu.updateNZ(cpu.Reg.X - v)
}

// Compare to Y register
func (cpu *CPU) cpy(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand)
	cpu.Reg.Carry = (cpu.Reg.Y >= v)
	cpu.updateNZ(cpu.Reg.Y - v)
}

// Decrement memory value
func (cpu *CPU) dec(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand) - 1
	cpu.updateNZ(v)
	cpu.store(inst.Mode, operand, v)
}

// Decrement X register
func (cpu *CPU) dex(inst *Instruction, operand []byte) {
	cpu.Reg.X--
	cpu.updateNZ(cpu.Reg.X)
}

// Decrement Y register
func (cpu *CPU) dey(inst *Instruction, operand []byte) {
	cpu.Reg.Y--
	cpu.updateNZ(cpu.Reg.Y)
}

// Boolean XOR
func (cpu *CPU) eor(inst *Instruction, operand []byte) {
	cpu.Reg.A ^= cpu.load(inst.Mode, operand)
	cpu.updateNZ(cpu.Reg.A)
}

// Increment memory value
func (cpu *CPU) inc(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand) + 1
	cpu.updateNZ(v)
	cpu.store(inst.Mode, operand, v)
}

// Increment X register
func (cpu *CPU) inx(inst *Instruction, operand []byte) {
	cpu.Reg.X++
	cpu.updateNZ(cpu.Reg.X)
}

// Increment Y register
func (cpu *CPU) iny(inst *Instruction, operand []byte) {
	cpu.Reg.Y++
	cpu.updateNZ(cpu.Reg.Y)
}

// Jump to memory address. Reproduces the NMOS 6502 indirect-addressing
// page-boundary bug via Memory.LoadAddress.
func (cpu *CPU) jmp(inst *Instruction, operand []byte) {
	cpu.Reg.PC = cpu.loadAddress(inst.Mode, operand)
}

// Jump to subroutine. Targets in the KERNAL call-vector range are
// diverted to the attached KernalTrap, if any, instead of jumping into
// ROM; the trap runs and control returns as if RTS had been executed.
func (cpu *CPU) jsr(inst *Instruction, operand []byte) {
	addr := cpu.loadAddress(inst.Mode, operand)

	if addr >= kernalTrapBase && cpu.trap != nil {
		cpu.dispatchKernalTrap(addr)
		return
	}

	cpu.pushAddress(cpu.Reg.PC - 1)
	cpu.Reg.PC = addr
}

// dispatchKernalTrap invokes the host's KernalTrap for the well-known
// CHROUT/CHRIN/GETIN entry points and falls through as a no-op RTS for
// any other trapped address, so control always returns to the caller.
func (cpu *CPU) dispatchKernalTrap(addr uint16) {
	const (
		chrout = 0xffd2
		chrin  = 0xffcf
		getin  = 0xffe4
	)

	switch addr {
	case chrout:
		cpu.trap.CHROUT(cpu.Reg.A)
	case chrin:
		cpu.Reg.A = cpu.trap.CHRIN()
	case getin:
		cpu.Reg.A = cpu.trap.GETIN()
	}
}

// load Accumulator
func (cpu *CPU) lda(inst *Instruction, operand []byte) {
	cpu.Reg.A = cpu.load(inst.Mode, operand)
	cpu.updateNZ(cpu.Reg.A)
}

// load the X register
func (cpu *CPU) ldx(inst *Instruction, operand []byte) {
	cpu.Reg.X = cpu.load(inst.Mode, operand)
	cpu.updateNZ(cpu.Reg.X)
}

// load the Y register
func (cpu *CPU) ldy(inst *Instruction, operand []byte) {
	cpu.Reg.Y = cpu.load(inst.Mode, operand)
	cpu.updateNZ(cpu.Reg.Y)
}

// Logical Shift Right
func (cpu *CPU) lsr(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand)
	cpu.Reg.Carry = ((v & 1) == 1)
	v = v >> 1
	cpu.updateNZ(v)
	cpu.store(inst.Mode, operand, v)
}

// No operation
func (cpu *CPU) nop(inst *Instruction, operand []byte) {
}

// Boolean OR
func (cpu *CPU) ora(inst *Instruction, operand []byte) {
	cpu.Reg.A |= cpu.load(inst.Mode, operand)
	cpu.updateNZ(cpu.Reg.A)
}

// Push Accumulator
func (cpu *CPU) pha(inst *Instruction, operand []byte) {
	cpu.push(cpu.Reg.A)
}

// Push Processor status. The pushed byte always has the Break bit set,
// without altering the stored flag.
func (cpu *CPU) php(inst *Instruction, operand []byte) {
	savedBreak := cpu.Reg.Break
	cpu.Reg.Break = true
	cpu.push(cpu.Reg.Pack())
	cpu.Reg.Break = savedBreak
}

// Pull (pop) Accumulator
func (cpu *CPU) pla(inst *Instruction, operand []byte) {
	cpu.Reg.A = cpu.pop()
	cpu.updateNZ(cpu.Reg.A)
}

// Pull (pop) Processor status
func (cpu *CPU) plp(inst *Instruction, operand []byte) {
	cpu.Reg.Unpack(cpu.pop())
}

// Rotate Left
func (cpu *CPU) rol(inst *Instruction, operand []byte) {
	tmp := cpu.load(inst.Mode, operand)
	v := (tmp << 1) | boolToByte(cpu.Reg.Carry)
	cpu.Reg.Carry = ((tmp & 0x80) != 0)
	cpu.updateNZ(v)
	cpu.store(inst.Mode, operand, v)
}

// Rotate Right
func (cpu *CPU) ror(inst *Instruction, operand []byte) {
	tmp := cpu.load(inst.Mode, operand)
	v := (tmp >> 1) | (boolToByte(cpu.Reg.Carry) << 7)
	cpu.Reg.Carry = ((tmp & 1) != 0)
	cpu.updateNZ(v)
	cpu.store(inst.Mode, operand, v)
}

// Return from Interrupt
func (cpu *CPU) rti(inst *Instruction, operand []byte) {
	cpu.Reg.Unpack(cpu.pop())
	cpu.Reg.PC = cpu.popAddress()
}

// Return from Subroutine
func (cpu *CPU) rts(inst *Instruction, operand []byte) {
	cpu.Reg.PC = cpu.popAddress() + 1
}

// Subtract with carry. Decimal-mode arithmetic is not modeled; the
// Decimal flag can be set and read but never alters the result.
func (cpu *CPU) sbc(inst *Instruction, operand []byte) {
	acc := uint32(cpu.Reg.A)
	sub := uint32(cpu.load(inst.Mode, operand))
	carry := boolToUint32(cpu.Reg.Carry)

	v := 0xff + acc - sub + carry
	cpu.Reg.Carry = (v >= 0x100)
	cpu.Reg.Overflow = (((acc & 0x80) != (sub & 0x80)) && ((acc & 0x80) != (v & 0x80)))

	cpu.Reg.A = byte(v)
	cpu.updateNZ(cpu.Reg.A)
}

// Set Carry flag
func (cpu *CPU) sec(inst *Instruction, operand []byte) {
	cpu.Reg.Carry = true
}

// Set Decimal flag
func (cpu *CPU) sed(inst *Instruction, operand []byte) {
	cpu.Reg.Decimal = true
}

// Set InterruptDisable flag
func (cpu *CPU) sei(inst *Instruction, operand []byte) {
	cpu.Reg.InterruptDisable = true
}

// Store Accumulator
func (cpu *CPU) sta(inst *Instruction, operand []byte) {
	cpu.store(inst.Mode, operand, cpu.Reg.A)
}

// Store X register
func (cpu *CPU) stx(inst *Instruction, operand []byte) {
	cpu.store(inst.Mode, operand, cpu.Reg.X)
}

// Store Y register
func (cpu *CPU) sty(inst *Instruction, operand []byte) {
	cpu.store(inst.Mode, operand, cpu.Reg.Y)
}

// Transfer Accumulator to X register
func (cpu *CPU) tax(inst *Instruction, operand []byte) {
	cpu.Reg.X = cpu.Reg.A
	cpu.updateNZ(cpu.Reg.X)
}

// Transfer Accumulator to Y register
func (cpu *CPU) tay(inst *Instruction, operand []byte) {
	cpu.Reg.Y = cpu.Reg.A
	cpu.updateNZ(cpu.Reg.Y)
}

// Transfer stack pointer to X register
func (cpu *CPU) tsx(inst *Instruction, operand []byte) {
	cpu.Reg.X = cpu.Reg.SP
	cpu.updateNZ(cpu.Reg.X)
}

// Transfer X register to Accumulator
func (cpu *CPU) txa(inst *Instruction, operand []byte) {
	cpu.Reg.A = cpu.Reg.X
	cpu.updateNZ(cpu.Reg.A)
}

// Transfer X register to the stack pointer
func (cpu *CPU) txs(inst *Instruction, operand []byte) {
	cpu.Reg.SP = cpu.Reg.X
}

// Transfer Y register to the Accumulator
func (cpu *CPU) tya(inst *Instruction, operand []byte) {
	cpu.Reg.A = cpu.Reg.Y
	cpu.updateNZ(cpu.Reg.A)
}

// unknown handles any opcode with no defined instruction. It behaves as
// a one-byte, two-cycle no-op beyond the diagnostic already emitted by Step, so
// the CPU always makes forward progress instead of hanging.
func (cpu *CPU) unknown(inst *Instruction, operand []byte) {
}
