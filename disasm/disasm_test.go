package disasm_test

import (
	"testing"

	"github.com/c64go/c64core/cpu"
	"github.com/c64go/c64core/disasm"
)

func disassemble(t *testing.T, code []byte, addr uint16) (string, uint16) {
	t.Helper()
	mem := cpu.NewFlatMemory()
	mem.StoreBytes(addr, code)
	text, next := disasm.Instruction(mem, addr)
	return text, next
}

func TestInstructionImmediate(t *testing.T) {
	text, next := disassemble(t, []byte{0xa9, 0x42}, 0x0800)
	if text != "LDA #$42" {
		t.Errorf("got %q, want %q", text, "LDA #$42")
	}
	if next != 0x0802 {
		t.Errorf("next = $%04X, want $0802", next)
	}
}

func TestInstructionImplied(t *testing.T) {
	text, _ := disassemble(t, []byte{0xea}, 0x0800)
	if text != "NOP " {
		t.Errorf("got %q, want %q", text, "NOP ")
	}
}

func TestInstructionZeroPage(t *testing.T) {
	text, _ := disassemble(t, []byte{0xa5, 0x10}, 0x0800)
	if text != "LDA $10" {
		t.Errorf("got %q, want %q", text, "LDA $10")
	}
}

func TestInstructionZeroPageX(t *testing.T) {
	text, _ := disassemble(t, []byte{0xb5, 0x10}, 0x0800)
	if text != "LDA $10,X" {
		t.Errorf("got %q, want %q", text, "LDA $10,X")
	}
}

func TestInstructionZeroPageY(t *testing.T) {
	text, _ := disassemble(t, []byte{0xb6, 0x10}, 0x0800)
	if text != "LDX $10,Y" {
		t.Errorf("got %q, want %q", text, "LDX $10,Y")
	}
}

func TestInstructionAbsolute(t *testing.T) {
	text, next := disassemble(t, []byte{0xad, 0x34, 0x12}, 0x0800)
	if text != "LDA $1234" {
		t.Errorf("got %q, want %q", text, "LDA $1234")
	}
	if next != 0x0803 {
		t.Errorf("next = $%04X, want $0803", next)
	}
}

func TestInstructionAbsoluteX(t *testing.T) {
	text, _ := disassemble(t, []byte{0xbd, 0x34, 0x12}, 0x0800)
	if text != "LDA $1234,X" {
		t.Errorf("got %q, want %q", text, "LDA $1234,X")
	}
}

func TestInstructionAbsoluteY(t *testing.T) {
	text, _ := disassemble(t, []byte{0xb9, 0x34, 0x12}, 0x0800)
	if text != "LDA $1234,Y" {
		t.Errorf("got %q, want %q", text, "LDA $1234,Y")
	}
}

func TestInstructionIndirect(t *testing.T) {
	text, _ := disassemble(t, []byte{0x6c, 0x34, 0x12}, 0x0800)
	if text != "JMP ($1234)" {
		t.Errorf("got %q, want %q", text, "JMP ($1234)")
	}
}

func TestInstructionIndexedIndirect(t *testing.T) {
	text, _ := disassemble(t, []byte{0xa1, 0x10}, 0x0800)
	if text != "LDA ($10,X)" {
		t.Errorf("got %q, want %q", text, "LDA ($10,X)")
	}
}

func TestInstructionIndirectIndexed(t *testing.T) {
	text, _ := disassemble(t, []byte{0xb1, 0x10}, 0x0800)
	if text != "LDA ($10),Y" {
		t.Errorf("got %q, want %q", text, "LDA ($10),Y")
	}
}

func TestInstructionAccumulator(t *testing.T) {
	text, _ := disassemble(t, []byte{0x0a}, 0x0800)
	if text != "ASL " {
		t.Errorf("got %q, want %q", text, "ASL ")
	}
}

func TestInstructionRelativeForward(t *testing.T) {
	text, next := disassemble(t, []byte{0xd0, 0x02}, 0x0800)
	if text != "BNE $0804" {
		t.Errorf("got %q, want %q", text, "BNE $0804")
	}
	if next != 0x0802 {
		t.Errorf("next = $%04X, want $0802", next)
	}
}

func TestInstructionRelativeBackward(t *testing.T) {
	text, _ := disassemble(t, []byte{0xd0, 0xfe}, 0x0800)
	if text != "BNE $0800" {
		t.Errorf("got %q, want %q", text, "BNE $0800")
	}
}

func TestInstructionUnknownOpcode(t *testing.T) {
	text, next := disassemble(t, []byte{0x02}, 0x0800)
	if text != "??? " {
		t.Errorf("got %q, want %q", text, "??? ")
	}
	if next != 0x0801 {
		t.Errorf("next = $%04X, want $0801", next)
	}
}
