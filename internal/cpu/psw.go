package cpu

import "fmt"

// ProcessorStatusWord holds the four condition codes every
// instruction's semantics are defined in terms of, plus the trap and
// interrupt-priority fields original_source carries but this emulator
// never sets (no traps or interrupts are implemented; see
// SPEC_FULL.md's Non-goals).
type ProcessorStatusWord struct {
	Negative bool
	Zero     bool
	Overflow bool
	Carry    bool
	Trap     bool
	IPL      uint8
}

// Reset clears every flag, matching the machine's power-up state.
func (p *ProcessorStatusWord) Reset() {
	*p = ProcessorStatusWord{}
}

func (p ProcessorStatusWord) String() string {
	bit := func(set bool, c string) string {
		if set {
			return c
		}
		return "-"
	}
	return fmt.Sprintf("%s%s%s%s", bit(p.Negative, "N"), bit(p.Zero, "Z"), bit(p.Overflow, "V"), bit(p.Carry, "C"))
}
