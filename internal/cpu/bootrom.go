package cpu

import "pdp11/internal/word"

// bootROMStart is the address the boot ROM is installed at and, after
// the "KD" signature word is skipped, where execution resumes.
const bootROMStart uint16 = 0o2000

// bootROM is the 29-word PAL-11 bootstrap, carried byte-for-byte from
// original_source's literal BOOTROM table (itself transcribed from the
// PDP-11 Peripherals Handbook's RK11 bootstrap listing). It reads
// block 0 of drive 0 into address 0 and jumps to it. The first word is
// the "KD" signature original_source's bootrom() writes but never
// executes; installBootROM sets PC past it the same way.
var bootROM = [...]uint16{
	0o042113, // "KD"
	0o012706, 0o002000, // MOV #boot_start, SP
	0o012700, 0o000000, // MOV #unit, R0
	0o010003,           // MOV R0, R3
	0o000303,           // SWAB R3
	0o006303,           // ASL R3
	0o006303,           // ASL R3
	0o006303,           // ASL R3
	0o006303,           // ASL R3
	0o006303,           // ASL R3
	0o012701, 0o177412, // MOV #RKDA, R1
	0o010311,           // MOV R3, (R1)
	0o005041,           // CLR -(R1)
	0o012741, 0o177000, // MOV #-256.*2, -(R1)
	0o012741, 0o000005, // MOV #READ+GO, -(R1)
	0o005002,           // CLR R2
	0o005003,           // CLR R3
	0o012704, 0o002020, // MOV #start+20, R4
	0o005005,           // CLR R5
	0o105711,           // TSTB (R1)
	0o100376,           // BPL .-2
	0o105011,           // CLRB (R1) -- ack RKCS ready bit before jumping
	0o005007,           // CLR PC
}

// installBootROM writes the boot ROM into RAM starting at
// bootROMStart, using the same PC-autoincrement machinery that
// instruction fetch uses (Operand.pc() in original_source plays the
// identical role), then leaves PC one word past the "KD" signature so
// the first instruction Step() executes is the real bootstrap code.
func (c *Cpu) installBootROM() {
	c.Registers.Set(PC, word.Word(bootROMStart))
	for _, w := range bootROM {
		r, err := c.resolve(pcOperand, word.AccessWord)
		if err != nil {
			// Installing at a fixed, even, in-range address never
			// faults; a failure here means bootROMStart itself is
			// misconfigured.
			panic(err)
		}
		_ = c.WriteWord(r, word.Word(w))
	}
	c.Registers.Set(PC, word.Word(bootROMStart+2))
}
