package machine_test

import (
	"testing"

	"github.com/c64go/c64core/machine"
)

// TestE2E1ImmediateLoadAndCompare matches spec.md's E2E-1 scenario.
func TestE2E1ImmediateLoadAndCompare(t *testing.T) {
	m := machine.New()
	m.Bank.Load(0x0800, []byte{0xa9, 0x42, 0xc9, 0x42, 0xf0, 0x02, 0x00, 0x00, 0xea})
	m.SetPC(0x0800)

	// LDA, CMP and the taken BEQ leave PC on the NOP at $0808.
	for i := 0; i < 3; i++ {
		m.Step()
	}

	if m.Reg.A != 0x42 {
		t.Errorf("A = $%02X, want $42", m.Reg.A)
	}
	if !m.Reg.Zero {
		t.Errorf("expected Zero flag set")
	}
	if !m.Reg.Carry {
		t.Errorf("expected Carry flag set")
	}
	if m.Reg.Sign {
		t.Errorf("expected Sign flag clear")
	}
	if m.Reg.PC != 0x0808 {
		t.Errorf("PC = $%04X, want $0808", m.Reg.PC)
	}
}

// TestE2E2StackRoundTripViaJSRRTS matches spec.md's E2E-2 scenario.
func TestE2E2StackRoundTripViaJSRRTS(t *testing.T) {
	m := machine.New()
	m.Bank.Load(0xc000, []byte{0x20, 0x10, 0xc0, 0xea})
	m.Bank.Load(0xc010, []byte{0x60})
	m.SetPC(0xc000)
	initialSP := m.Reg.SP

	m.Step() // JSR $C010

	if got := m.Bank.LoadByte(0x0100 | uint16(m.Reg.SP+2)); got != 0xc0 {
		t.Errorf("stacked return address high byte = $%02X, want $C0", got)
	}
	if got := m.Bank.LoadByte(0x0100 | uint16(m.Reg.SP+1)); got != 0x02 {
		t.Errorf("stacked return address low byte = $%02X, want $02", got)
	}

	m.Step() // RTS

	if m.Reg.SP != initialSP {
		t.Errorf("SP = $%02X after RTS, want restored $%02X", m.Reg.SP, initialSP)
	}
	if m.Reg.PC != 0xc003 {
		t.Errorf("PC = $%04X after RTS, want $C003", m.Reg.PC)
	}

	m.Step() // NOP at $C003
	if m.Reg.PC != 0xc004 {
		t.Errorf("PC = $%04X after final NOP, want $C004", m.Reg.PC)
	}
}

// TestE2E5BranchForwardAndBackward matches spec.md's E2E-5 scenario.
func TestE2E5BranchForwardAndBackward(t *testing.T) {
	m := machine.New()
	m.Bank.Load(0x1000, []byte{0xd0, 0x02}) // BNE +2
	m.SetPC(0x1000)
	m.Reg.Zero = false

	m.Step()
	if m.Reg.PC != 0x1004 {
		t.Errorf("forward branch: PC = $%04X, want $1004", m.Reg.PC)
	}

	m.Bank.Load(0x2000, []byte{0xd0, 0xfe}) // BNE -2
	m.SetPC(0x2000)
	m.Reg.Zero = false

	m.Step()
	if m.Reg.PC != 0x2000 {
		t.Errorf("backward branch: PC = $%04X, want $2000 (tight loop)", m.Reg.PC)
	}
}

// TestE2E6IndirectIndexedWrap matches spec.md's E2E-6 scenario.
func TestE2E6IndirectIndexedWrap(t *testing.T) {
	m := machine.New()
	m.Bank.StoreByte(0x00ff, 0x10)
	m.Bank.StoreByte(0x0000, 0x20)
	m.Bank.StoreByte(0x2015, 0x77)

	m.Bank.Load(0x0800, []byte{0xb1, 0xff}) // LDA ($FF),Y
	m.SetPC(0x0800)
	m.Reg.Y = 0x05

	m.Step()

	if m.Reg.A != 0x77 {
		t.Errorf("A = $%02X, want $77 (loaded from $2015)", m.Reg.A)
	}
}

// TestResetRestoresBankingAndVector confirms Machine.Reset rebuilds the
// default memory banking and reloads the CPU from the reset vector.
func TestResetRestoresBankingAndVector(t *testing.T) {
	m := machine.New()
	m.Bank.StoreByte(0x0001, 0x00) // disable all banks

	m.Reset()

	if got := m.Bank.LoadByte(0xa000); got != 0xea {
		t.Errorf("after Reset, BASIC ROM should be banked back in; got $%02X", got)
	}
	if m.Reg.PC != 0xe000 {
		t.Errorf("PC after Reset = $%04X, want $E000 (default RESET vector)", m.Reg.PC)
	}
}
