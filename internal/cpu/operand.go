package cpu

import (
	"fmt"

	"pdp11/internal/bits"
)

// AddressingMode is the 3-bit mode field attached to a register in an
// operand specifier. This is the PDP-11 analogue of the teacher
// repo's 6502 cpu.AddressingMode, except here the mode always pairs
// with an explicit register rather than being implied by the opcode.
type AddressingMode uint8

const (
	ModeRegister AddressingMode = iota
	ModeRegisterDeferred
	ModeAutoincrement
	ModeAutoincrementDeferred
	ModeAutodecrement
	ModeAutodecrementDeferred
	ModeIndex
	ModeIndexDeferred
)

func (m AddressingMode) String() string {
	return [...]string{
		"register",
		"register-deferred",
		"autoincrement",
		"autoincrement-deferred",
		"autodecrement",
		"autodecrement-deferred",
		"index",
		"index-deferred",
	}[m]
}

// Operand is a decoded 6-bit operand specifier: a mode and the
// register it modifies. PC mode 2 (autoincrement) is immediate mode;
// PC mode 3 is absolute mode; callers render these specially in
// String but the evaluator treats them uniformly with every other
// register.
type Operand struct {
	Mode     AddressingMode
	Register Register
}

// FromBits0_5 decodes the low 6 bits of a word (register in bits 0-2,
// mode in bits 3-5), the destination/sole operand field of every
// instruction in this machine's subset.
func FromBits0_5(w uint16) Operand {
	return Operand{
		Mode:     AddressingMode(bits.Field(w, 3, 3)),
		Register: Register(bits.Field(w, 0, 3)),
	}
}

// FromBits6_11 decodes bits 6-11 of a word (register in bits 6-8, mode
// in bits 9-11), the source field of a double-operand instruction.
func FromBits6_11(w uint16) Operand {
	return Operand{
		Mode:     AddressingMode(bits.Field(w, 9, 3)),
		Register: Register(bits.Field(w, 6, 3)),
	}
}

// pcOperand is the operand describing "the word at PC, then advance
// PC by 2": the mechanism behind both opcode fetch and the extension
// word read by index-mode operands.
var pcOperand = Operand{Mode: ModeAutoincrement, Register: PC}

func (o Operand) String() string {
	switch o.Mode {
	case ModeRegister:
		return o.Register.String()
	case ModeRegisterDeferred:
		return fmt.Sprintf("(%s)", o.Register)
	case ModeAutoincrement:
		if o.Register == PC {
			return "#imm"
		}
		return fmt.Sprintf("(%s)+", o.Register)
	case ModeAutoincrementDeferred:
		if o.Register == PC {
			return "@#addr"
		}
		return fmt.Sprintf("@(%s)+", o.Register)
	case ModeAutodecrement:
		return fmt.Sprintf("-(%s)", o.Register)
	case ModeAutodecrementDeferred:
		return fmt.Sprintf("@-(%s)", o.Register)
	case ModeIndex:
		if o.Register == PC {
			return "addr"
		}
		return fmt.Sprintf("X(%s)", o.Register)
	case ModeIndexDeferred:
		return fmt.Sprintf("@X(%s)", o.Register)
	default:
		return "?"
	}
}
