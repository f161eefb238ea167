package cpu

import (
	"context"

	"pdp11/internal/word"
)

// Step fetches, decodes and executes a single instruction. It is a
// no-op once the machine is halted, so callers can call Step in a loop
// without checking Halted themselves.
func (c *Cpu) Step() error {
	if c.Halted {
		return nil
	}

	r, err := c.resolve(pcOperand, word.AccessWord)
	if err != nil {
		return c.fault(err)
	}
	raw, err := c.ReadWord(r)
	if err != nil {
		return c.fault(err)
	}

	instr := Decode(uint16(raw))
	c.trace(instr)

	if instr.Op == OpInvalid {
		c.logf("invalid opcode %s at %s, ignoring", raw, c.Registers.Get(PC)-2)
		return nil
	}

	if err := c.execute(instr); err != nil {
		return c.fault(err)
	}
	return nil
}

func (c *Cpu) execute(instr Instruction) error {
	switch instr.Op {
	case OpHalt:
		c.halt()
		return nil
	case OpWait:
		c.wait()
		return nil
	case OpReset:
		c.Reset()
		return nil
	case OpJmp:
		return c.jmp(instr.Dst)
	case OpSwab:
		return c.swab(instr.Dst)
	case OpClr:
		return c.clr(instr.Dst)
	case OpTst:
		return c.tst(instr.Dst)
	case OpAsl:
		return c.asl(instr.Dst)
	case OpMov:
		return c.mov(instr.Src, instr.Dst)
	case OpCmp:
		return c.cmp(instr.Src, instr.Dst)
	case OpBit:
		return c.bit(instr.Src, instr.Dst)
	case OpBpl:
		return c.bpl(instr.Offset)
	case OpTstb:
		return c.tstb(instr.Dst)
	default:
		return nil
	}
}

// fault logs a diagnostic and halts the machine; it always returns the
// error it was given, so callers can write "return c.fault(err)".
func (c *Cpu) fault(err error) error {
	c.logf("fault: %v (halting at PC=%s)", err, c.Registers.Get(PC))
	c.halt()
	return err
}

// Run steps the machine until it halts or ctx is cancelled.
func (c *Cpu) Run(ctx context.Context) error {
	for !c.Halted {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}

// PowerOn resets the machine (installing the boot ROM) and runs it to
// completion, mirroring original_source's Cpu::poweron.
func (c *Cpu) PowerOn(ctx context.Context) error {
	c.Reset()
	return c.Run(ctx)
}
