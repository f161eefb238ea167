package cpu

import "pdp11/internal/word"

// Resolved is the outcome of evaluating an Operand: either a register
// reference (read/written directly, no RAM involved) or a memory
// reference at a concrete address and access width. Keeping the two
// cases in one struct, rather than an interface, mirrors how the
// teacher repo's decode() collapses every addressing mode down to a
// single c.AbsAddress field before execute() runs.
type Resolved struct {
	IsRegister bool
	Register   Register
	Addr       word.Address
}

// resolve evaluates op at the given access width, applying whatever
// register side effects (autoincrement/autodecrement, PC advance for
// an extension word) the mode requires, and returns where the
// instruction should actually read or write.
//
// This is also how instruction fetch and index-mode's extension-word
// fetch are implemented: both simply resolve pcOperand at word width,
// which is exactly the Autoincrement-on-PC case below, guaranteeing
// fetch advances PC by the same machinery as any other autoincrement
// reference.
func (c *Cpu) resolve(op Operand, access word.Access) (Resolved, error) {
	size := access.Size()
	if op.Register == PC {
		size = 2 // PC always advances by a full word, even for byte ops.
	}

	switch op.Mode {
	case ModeRegister:
		return Resolved{IsRegister: true, Register: op.Register}, nil

	case ModeRegisterDeferred:
		addr := c.Registers.Get(op.Register)
		return c.memRef(addr, access)

	case ModeAutoincrement:
		addr := c.Registers.Get(op.Register)
		c.Registers.Set(op.Register, addr+word.Word(size))
		return c.memRef(addr, access)

	case ModeAutoincrementDeferred:
		ptrAddr := c.Registers.Get(op.Register)
		c.Registers.Set(op.Register, ptrAddr+2)
		ptr, err := c.Ram.ReadWord(uint16(ptrAddr))
		if err != nil {
			return Resolved{}, err
		}
		return c.memRef(ptr, access)

	case ModeAutodecrement:
		addr := c.Registers.Get(op.Register) - word.Word(size)
		c.Registers.Set(op.Register, addr)
		return c.memRef(addr, access)

	case ModeAutodecrementDeferred:
		ptrAddr := c.Registers.Get(op.Register) - 2
		c.Registers.Set(op.Register, ptrAddr)
		ptr, err := c.Ram.ReadWord(uint16(ptrAddr))
		if err != nil {
			return Resolved{}, err
		}
		return c.memRef(ptr, access)

	case ModeIndex:
		offset, err := c.fetchExtensionWord()
		if err != nil {
			return Resolved{}, err
		}
		base := c.Registers.Get(op.Register)
		return c.memRef(base+offset, access)

	case ModeIndexDeferred:
		offset, err := c.fetchExtensionWord()
		if err != nil {
			return Resolved{}, err
		}
		base := c.Registers.Get(op.Register)
		ptr, err := c.Ram.ReadWord(uint16(base + offset))
		if err != nil {
			return Resolved{}, err
		}
		return c.memRef(ptr, access)

	default:
		return Resolved{}, nil
	}
}

// memRef builds a Resolved memory reference, rejecting odd addresses
// for word-wide access.
func (c *Cpu) memRef(addr word.Word, access word.Access) (Resolved, error) {
	if access == word.AccessWord && addr%2 != 0 {
		return Resolved{}, word.ErrOddAddress
	}
	return Resolved{Addr: word.Address{Value: uint16(addr), Access: access}}, nil
}

// fetchExtensionWord reads the word at PC and advances PC by 2, using
// the same autoincrement-on-PC path instruction fetch uses.
func (c *Cpu) fetchExtensionWord() (word.Word, error) {
	r, err := c.resolve(pcOperand, word.AccessWord)
	if err != nil {
		return 0, err
	}
	return c.ReadWord(r)
}

// ReadWord reads the word at a Resolved reference.
func (c *Cpu) ReadWord(r Resolved) (word.Word, error) {
	if r.IsRegister {
		return c.Registers.Get(r.Register), nil
	}
	return c.Ram.ReadWord(r.Addr.Value)
}

// WriteWord writes v to a Resolved reference.
func (c *Cpu) WriteWord(r Resolved, v word.Word) error {
	if r.IsRegister {
		c.Registers.Set(r.Register, v)
		return nil
	}
	return c.Ram.WriteWord(r.Addr.Value, v)
}

// ReadByte reads the byte at a Resolved reference; for a register
// reference this is the register's low byte.
func (c *Cpu) ReadByte(r Resolved) (word.Byte, error) {
	if r.IsRegister {
		return c.Registers.Get(r.Register).Lo(), nil
	}
	return c.Ram.ReadByte(r.Addr.Value), nil
}

// WriteByte writes b to a Resolved reference; for a register reference
// this replaces only the register's low byte.
func (c *Cpu) WriteByte(r Resolved, b word.Byte) error {
	if r.IsRegister {
		c.Registers.Set(r.Register, c.Registers.Get(r.Register).WithLo(b))
		return nil
	}
	c.Ram.WriteByte(r.Addr.Value, b)
	return nil
}
