package cpu

import (
	"errors"

	"pdp11/internal/word"
)

// ErrIllegalAddressing is returned when JMP is given a register-direct
// operand, which has no memory address to jump to.
var ErrIllegalAddressing = errors.New("cpu: register-direct operand is not a valid JMP target")

func (c *Cpu) halt() {
	c.Halted = true
}

func (c *Cpu) wait() {
	// No interrupts are implemented (see SPEC_FULL.md's Non-goals), so
	// there is nothing that will ever wake the machine back up; WAIT
	// behaves like HALT.
	c.Halted = true
}

func (c *Cpu) clr(dst Operand) error {
	r, err := c.resolve(dst, word.AccessWord)
	if err != nil {
		return err
	}
	if err := c.WriteWord(r, 0); err != nil {
		return err
	}
	c.PSW.Zero = true
	c.PSW.Negative = false
	c.PSW.Overflow = false
	c.PSW.Carry = false
	return nil
}

func (c *Cpu) swab(dst Operand) error {
	r, err := c.resolve(dst, word.AccessWord)
	if err != nil {
		return err
	}
	w, err := c.ReadWord(r)
	if err != nil {
		return err
	}
	swapped := w.Swab()
	if err := c.WriteWord(r, swapped); err != nil {
		return err
	}
	// N and Z are set from the new low byte, per the documented (and,
	// per original_source, actually implemented) SWAB behavior: the
	// byte that ends up in the low position is the one condition codes
	// describe.
	low := swapped.Lo()
	c.PSW.Negative = low.IsNegative()
	c.PSW.Zero = low.IsZero()
	c.PSW.Overflow = false
	c.PSW.Carry = false
	return nil
}

func (c *Cpu) asl(dst Operand) error {
	r, err := c.resolve(dst, word.AccessWord)
	if err != nil {
		return err
	}
	w, err := c.ReadWord(r)
	if err != nil {
		return err
	}
	return c.WriteWord(r, word.Word(uint16(w)<<1))
	// Condition codes are deliberately left untouched: the reference
	// implementation this machine is modeled on never wired N/Z/V/C
	// for ASL either (see DESIGN.md on the open question of ASL's
	// flags).
}

func (c *Cpu) jmp(dst Operand) error {
	if dst.Mode == ModeRegister {
		return ErrIllegalAddressing
	}
	r, err := c.resolve(dst, word.AccessWord)
	if err != nil {
		return err
	}
	c.Registers.Set(PC, word.Word(r.Addr.Value))
	return nil
}

func (c *Cpu) tst(src Operand) error {
	r, err := c.resolve(src, word.AccessWord)
	if err != nil {
		return err
	}
	w, err := c.ReadWord(r)
	if err != nil {
		return err
	}
	c.PSW.Negative = w.IsNegative()
	c.PSW.Zero = w.IsZero()
	c.PSW.Overflow = false
	c.PSW.Carry = false
	return nil
}

func (c *Cpu) tstb(src Operand) error {
	r, err := c.resolve(src, word.AccessByte)
	if err != nil {
		return err
	}
	b, err := c.ReadByte(r)
	if err != nil {
		return err
	}
	c.PSW.Negative = b.IsNegative()
	c.PSW.Zero = b.IsZero()
	c.PSW.Overflow = false
	c.PSW.Carry = false
	return nil
}

func (c *Cpu) mov(src, dst Operand) error {
	rs, err := c.resolve(src, word.AccessWord)
	if err != nil {
		return err
	}
	v, err := c.ReadWord(rs)
	if err != nil {
		return err
	}
	rd, err := c.resolve(dst, word.AccessWord)
	if err != nil {
		return err
	}
	if err := c.WriteWord(rd, v); err != nil {
		return err
	}
	c.PSW.Negative = v.IsNegative()
	c.PSW.Zero = v.IsZero()
	c.PSW.Overflow = false
	return nil
}

func (c *Cpu) cmp(src, dst Operand) error {
	rs, err := c.resolve(src, word.AccessWord)
	if err != nil {
		return err
	}
	s, err := c.ReadWord(rs)
	if err != nil {
		return err
	}
	rd, err := c.resolve(dst, word.AccessWord)
	if err != nil {
		return err
	}
	d, err := c.ReadWord(rd)
	if err != nil {
		return err
	}

	diff := s.Sub(d)
	c.PSW.Negative = diff.IsNegative()
	c.PSW.Zero = diff.IsZero()
	// C is set when the subtraction borrows, i.e. d > s as unsigned
	// 16-bit values -- the corrected semantics from SPEC_FULL.md's
	// Design Notes (original_source left this a todo!()).
	c.PSW.Carry = uint16(d) > uint16(s)
	// V is set when the operands' signs differ and the result's sign
	// doesn't match the minuend's -- standard two's-complement
	// subtraction overflow.
	sNeg, dNeg, diffNeg := s.IsNegative(), d.IsNegative(), diff.IsNegative()
	c.PSW.Overflow = sNeg != dNeg && diffNeg != sNeg
	return nil
}

func (c *Cpu) bit(src, dst Operand) error {
	rs, err := c.resolve(src, word.AccessWord)
	if err != nil {
		return err
	}
	s, err := c.ReadWord(rs)
	if err != nil {
		return err
	}
	rd, err := c.resolve(dst, word.AccessWord)
	if err != nil {
		return err
	}
	d, err := c.ReadWord(rd)
	if err != nil {
		return err
	}

	result := s.And(d)
	c.PSW.Negative = result.IsNegative()
	c.PSW.Zero = result.IsZero()
	c.PSW.Overflow = false
	return nil
}

func (c *Cpu) bpl(offset int8) error {
	if !c.PSW.Negative {
		pc := c.Registers.Get(PC)
		delta := int32(offset) * 2
		c.Registers.Set(PC, word.Word(uint16(int32(pc)+delta)))
	}
	return nil
}
