// Package cpu implements the processor core: registers, the processor
// status word, the addressing-mode evaluator, the instruction decoder
// and the fetch/decode/execute loop. It is the PDP-11 reworking of the
// teacher repo's gone/cpu package (itself a 6502 core): the struct
// shapes, the fetch-then-decode-then-execute Step, and the Opcode/
// Instruction split are all kept, generalized from a byte-oriented
// 8-bit machine to this one's word-oriented 16-bit instruction set.
package cpu

import (
	"fmt"
	"log"
	"os"

	"pdp11/internal/mem"
	"pdp11/internal/rk11"
)

// Cpu is the whole machine: registers, flags, the unified address
// space, and the one attached RK11 controller.
type Cpu struct {
	Registers Registers
	PSW       ProcessorStatusWord
	Ram       *mem.Ram
	RK        *rk11.Controller
	Halted    bool

	// Trace, when true, logs every decoded instruction via Logger.
	// Off by default; cmd/pdp11 turns it on with -trace.
	Trace bool
	// Logger receives fault and trace output. Defaults to a
	// log.Logger on stderr, matching the teacher repo's plain
	// fmt.Println/log.Println diagnostics rather than a structured
	// logging library.
	Logger *log.Logger
}

// New constructs a machine with an RK11 controller loaded from
// imagePath and attached to RAM's device window, then resets it (which
// installs the boot ROM). A missing or unreadable image is returned as
// an error rather than causing a later fault, since spec.md treats a
// bad disk image as a startup-time condition.
func New(imagePath string) (*Cpu, error) {
	rk, err := rk11.New(imagePath)
	if err != nil {
		return nil, fmt.Errorf("cpu: %w", err)
	}

	ram := mem.New()
	rk.Attach(ram)
	ram.AttachDevice(rk, rk11.RegisterAddresses)

	c := &Cpu{
		Ram:    ram,
		RK:     rk,
		Logger: log.New(os.Stderr, "pdp11: ", 0),
	}
	c.Reset()
	return c, nil
}

// Reset reinitializes the machine to its power-up state: registers and
// PSW cleared, RAM zeroed, the RK11 controller's registers cleared
// except for RKCS's ready bit, and
// the boot ROM reinstalled with PC pointed at its entry point.
func (c *Cpu) Reset() {
	c.Halted = false
	c.Registers.Reset()
	c.PSW.Reset()
	c.Ram.Reset()
	c.RK.Reset()
	c.installBootROM()
}

func (c *Cpu) logf(format string, args ...any) {
	if c.Logger != nil {
		c.Logger.Printf(format, args...)
	}
}

func (c *Cpu) trace(instr Instruction) {
	if !c.Trace {
		return
	}
	c.logf("%-5s src=%-14s dst=%-14s psw=%s", instr.Op, instr.Src, instr.Dst, c.PSW)
}
