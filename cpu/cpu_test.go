package cpu_test

import (
	"testing"

	"github.com/c64go/c64core/cpu"
)

func loadCPU(code []byte, origin uint16) *cpu.CPU {
	mem := cpu.NewFlatMemory()
	mem.StoreBytes(origin, code)
	c := cpu.NewCPU(mem)
	c.SetPC(origin)
	return c
}

func stepCPU(c *cpu.CPU, steps int) {
	for i := 0; i < steps; i++ {
		c.Step()
	}
}

func runCPU(code []byte, origin uint16, steps int) *cpu.CPU {
	c := loadCPU(code, origin)
	stepCPU(c, steps)
	return c
}

func expectPC(t *testing.T, c *cpu.CPU, pc uint16) {
	t.Helper()
	if c.Reg.PC != pc {
		t.Errorf("PC incorrect. exp: $%04X, got: $%04X", pc, c.Reg.PC)
	}
}

func expectCycles(t *testing.T, c *cpu.CPU, cycles uint64) {
	t.Helper()
	if c.Cycles != cycles {
		t.Errorf("Cycles incorrect. exp: %d, got: %d", cycles, c.Cycles)
	}
}

func expectACC(t *testing.T, c *cpu.CPU, acc byte) {
	t.Helper()
	if c.Reg.A != acc {
		t.Errorf("Accumulator incorrect. exp: $%02X, got: $%02X", acc, c.Reg.A)
	}
}

func expectSP(t *testing.T, c *cpu.CPU, sp byte) {
	t.Helper()
	if c.Reg.SP != sp {
		t.Errorf("stack pointer incorrect. exp: $%02X, got: $%02X", sp, c.Reg.SP)
	}
}

func expectMem(t *testing.T, c *cpu.CPU, addr uint16, v byte) {
	t.Helper()
	got := c.Mem.LoadByte(addr)
	if got != v {
		t.Errorf("Memory at $%04X incorrect. exp: $%02X, got: $%02X", addr, v, got)
	}
}

// TestAccumulator covers LDA #imm / STA zpg / STA abs.
func TestAccumulator(t *testing.T) {
	code := []byte{
		0xa9, 0x5e, // LDA #$5E
		0x85, 0x15, // STA $15
		0x8d, 0x00, 0x15, // STA $1500
	}

	c := runCPU(code, 0x1000, 3)

	expectPC(t, c, 0x1007)
	expectCycles(t, c, 9)
	expectACC(t, c, 0x5e)
	expectMem(t, c, 0x15, 0x5e)
	expectMem(t, c, 0x1500, 0x5e)
}

// TestStack covers PHA/PLA and the push/pull order of the stack in page 1.
func TestStack(t *testing.T) {
	code := []byte{
		0xa9, 0x11, // LDA #$11
		0x48,       // PHA
		0xa9, 0x12, // LDA #$12
		0x48,       // PHA
		0xa9, 0x13, // LDA #$13
		0x48, // PHA

		0x68,             // PLA
		0x8d, 0x00, 0x20, // STA $2000
		0x68,             // PLA
		0x8d, 0x01, 0x20, // STA $2001
		0x68,             // PLA
		0x8d, 0x02, 0x20, // STA $2002
	}

	c := loadCPU(code, 0x1000)
	stepCPU(c, 6)

	expectSP(t, c, 0xfc)
	expectACC(t, c, 0x13)
	expectMem(t, c, 0x1ff, 0x11)
	expectMem(t, c, 0x1fe, 0x12)
	expectMem(t, c, 0x1fd, 0x13)

	stepCPU(c, 6)
	expectACC(t, c, 0x11)
	expectSP(t, c, 0xff)
	expectMem(t, c, 0x2000, 0x13)
	expectMem(t, c, 0x2001, 0x12)
	expectMem(t, c, 0x2002, 0x11)
}

// TestIndexedIndirect covers absolute,X / absolute,Y and the two
// zero-page-indirect addressing modes: (zp,X) and (zp),Y.
func TestIndexedIndirect(t *testing.T) {
	code := []byte{
		0xa2, 0x80, // LDX #$80
		0xa0, 0x40, // LDY #$40
		0xa9, 0xee, // LDA #$EE
		0x9d, 0x00, 0x20, // STA $2000,X
		0x99, 0x00, 0x20, // STA $2000,Y

		0xa9, 0x11, // LDA #$11
		0x85, 0x06, // STA $06
		0xa9, 0x05, // LDA #$05
		0x85, 0x07, // STA $07
		0xa2, 0x01, // LDX #$01
		0xa0, 0x01, // LDY #$01
		0xa9, 0xbb, // LDA #$BB
		0x81, 0x05, // STA ($05,X)
		0x91, 0x06, // STA ($06),Y
	}

	c := runCPU(code, 0x1000, 14)
	expectMem(t, c, 0x2080, 0xee)
	expectMem(t, c, 0x2040, 0xee)
	expectMem(t, c, 0x0511, 0xbb)
	expectMem(t, c, 0x0512, 0xbb)
}

// TestBranchAndFlags covers BEQ/BNE and carry propagation through
// CMP, exercising invariant 2 (Zero flag) and invariant 1 (Carry flag).
func TestBranchAndFlags(t *testing.T) {
	code := []byte{
		0xa9, 0x10, // LDA #$10
		0xc9, 0x10, // CMP #$10  (equal -> Zero set, Carry set)
		0xf0, 0x02, // BEQ +2 (skip next instruction)
		0xa9, 0xff, // LDA #$FF (skipped)
		0xa9, 0x01, // LDA #$01
	}

	c := runCPU(code, 0x1000, 3)
	if !c.Reg.Zero {
		t.Errorf("expected Zero flag set after equal comparison")
	}
	if !c.Reg.Carry {
		t.Errorf("expected Carry flag set after A >= operand comparison")
	}
	expectPC(t, c, 0x1008)

	stepCPU(c, 1)
	expectACC(t, c, 0x01)
}

// TestJsrRts covers subroutine call/return and the stacked return
// address convention (PC-1 is pushed, RTS adds 1 back).
func TestJsrRts(t *testing.T) {
	code := []byte{
		0x20, 0x06, 0x10, // JSR $1006
		0xa9, 0x99, // LDA #$99 (subroutine returns here; not executed)
		0xea,       // NOP
		0xa9, 0x42, // LDA #$42
		0x60, // RTS
	}

	c := runCPU(code, 0x1000, 3)
	expectPC(t, c, 0x1003)
	expectACC(t, c, 0x42)
}

// TestIndirectJumpPageBoundaryBug reproduces the NMOS 6502/6510
// indirect-JMP page-boundary bug: JMP ($20FF) must read its high byte
// from $2000, not $2100.
func TestIndirectJumpPageBoundaryBug(t *testing.T) {
	code := []byte{
		0x6c, 0xff, 0x20, // JMP ($20FF)
	}

	c := loadCPU(code, 0x1000)
	c.Mem.StoreByte(0x20ff, 0x34)
	c.Mem.StoreByte(0x2100, 0x12) // must NOT be used
	c.Mem.StoreByte(0x2000, 0x56) // must be used instead

	c.Step()
	expectPC(t, c, 0x5634)
}

// TestBrkPushesBreakFlag confirms BRK enters through the IRQ/BRK
// vector with the Break flag set in the pushed status byte, and that
// interrupts are disabled afterward.
func TestBrkPushesBreakFlag(t *testing.T) {
	mem := cpu.NewFlatMemory()
	mem.StoreByte(0xfffe, 0x00)
	mem.StoreByte(0xffff, 0x20) // BRK/IRQ vector -> $2000

	c := cpu.NewCPU(mem)
	c.SetPC(0x1000)
	mem.StoreByte(0x1000, 0x00) // BRK

	c.Step()

	expectPC(t, c, 0x2000)
	if !c.Reg.InterruptDisable {
		t.Errorf("expected InterruptDisable set after BRK")
	}

	// $01FF/$01FE hold the return address; the status byte follows it.
	pushedStatus := mem.LoadByte(0x01fd)
	if pushedStatus&cpu.BreakBit == 0 {
		t.Errorf("expected Break flag set in status byte pushed by BRK")
	}
}

// TestKernalTrap confirms JSR into the trapped call-vector range invokes
// the attached KernalTrap instead of executing a real subroutine, and
// that control falls through to the instruction after the JSR.
type recordingTrap struct {
	out []byte
}

func (r *recordingTrap) CHROUT(v byte) { r.out = append(r.out, v) }
func (r *recordingTrap) CHRIN() byte   { return 0 }
func (r *recordingTrap) GETIN() byte   { return 0 }

func TestKernalTrap(t *testing.T) {
	code := []byte{
		0xa9, 0x41, // LDA #'A'
		0x20, 0xd2, 0xff, // JSR $FFD2 (CHROUT)
		0xa9, 0x42, // LDA #'B'
	}

	c := loadCPU(code, 0x1000)
	trap := &recordingTrap{}
	c.AttachKernalTrap(trap)

	stepCPU(c, 3)

	if len(trap.out) != 1 || trap.out[0] != 0x41 {
		t.Fatalf("expected CHROUT to receive $41, got %v", trap.out)
	}
	expectACC(t, c, 0x42)
	expectPC(t, c, 0x1007)
}

// TestStatusRoundTrip exercises the Pack/Unpack round-trip law: every
// flag combination packed and unpacked must be preserved exactly,
// except for the reserved bit, which always reads back set.
func TestStatusRoundTrip(t *testing.T) {
	c := loadCPU(nil, 0x1000)
	for ps := 0; ps < 256; ps++ {
		c.SetStatus(byte(ps))
		got := c.GetStatus()
		want := byte(ps) | cpu.ReservedBit
		if got != want {
			t.Fatalf("round-trip mismatch for $%02X: got $%02X, want $%02X", ps, got, want)
		}
	}
}

// TestUnknownOpcodeAdvances confirms an undecodable opcode does not
// hang the CPU: it still advances the program counter.
func TestUnknownOpcodeAdvances(t *testing.T) {
	code := []byte{0x02} // not a defined 6510 opcode
	c := loadCPU(code, 0x1000)
	c.Step()
	expectPC(t, c, 0x1001)
}
