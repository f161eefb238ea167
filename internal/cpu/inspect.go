package cpu

import "github.com/davecgh/go-spew/spew"

// Dump renders the register file, PSW and RK11 controller state as a
// structured dump, the PDP-11 analogue of the teacher repo's debugger
// using spew.Sdump(Opcodes[...]) to inspect decoded state.
func (c *Cpu) Dump() string {
	return spew.Sdump(c.Registers, c.PSW, c.RK)
}

// DumpInstruction renders a single decoded Instruction. Neither the
// -trace output nor the -debug TUI calls it.
func DumpInstruction(instr Instruction) string {
	return spew.Sdump(instr)
}
