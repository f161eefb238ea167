package cpu

import (
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdp11/internal/mem"
	"pdp11/internal/word"
)

// newBareCpu builds a Cpu with plain RAM and no RK11 controller, for
// tests that exercise the instruction set directly rather than the
// boot sequence. Reset is not called, so RAM starts zeroed and PC at
// zero; tests set PC and load instructions themselves.
func newBareCpu() *Cpu {
	return &Cpu{
		Ram:    mem.New(),
		Logger: log.New(io.Discard, "", 0),
	}
}

func loadAt(t *testing.T, c *Cpu, addr uint16, words ...uint16) {
	t.Helper()
	for i, w := range words {
		require.NoError(t, c.Ram.WriteWord(addr+uint16(i*2), word.Word(w)))
	}
}

func TestImmediateMov(t *testing.T) {
	// MOV #123., R1
	c := newBareCpu()
	loadAt(t, c, 0, 0o012701, 0o000173)
	c.Registers.Set(PC, 0)

	require.NoError(t, c.Step())
	assert.Equal(t, word.Word(0o173), c.Registers.Get(R1))
	assert.Equal(t, word.Word(4), c.Registers.Get(PC))
	assert.False(t, c.PSW.Zero)
	assert.False(t, c.PSW.Negative)
}

func TestAutoincrementChainCopiesThreeWords(t *testing.T) {
	// MOV (R1)+, (R2)+ executed three times copies RAM[0o1000:0o1006)
	// to RAM[0o2000:0o2006) and leaves both registers three words on.
	c := newBareCpu()
	loadAt(t, c, 0, 0o012122, 0o012122, 0o012122)
	loadAt(t, c, 0o1000, 1, 2, 3)
	c.Registers.Set(PC, 0)
	c.Registers.Set(R1, 0o1000)
	c.Registers.Set(R2, 0o2000)

	for i := 0; i < 3; i++ {
		require.NoError(t, c.Step())
	}

	assert.Equal(t, word.Word(0o1006), c.Registers.Get(R1))
	assert.Equal(t, word.Word(0o2006), c.Registers.Get(R2))
	for i, want := range []word.Word{1, 2, 3} {
		got, err := c.Ram.ReadWord(0o2000 + uint16(i*2))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestSwabSetsFlagsFromLowByte(t *testing.T) {
	// SWAB R0, with R0 = 0x01FF before: low byte becomes 0x01 (not
	// zero, not negative); with R0 = 0xFF00: low byte becomes 0xFF
	// (negative).
	c := newBareCpu()
	loadAt(t, c, 0, 0o000300)
	c.Registers.Set(PC, 0)
	c.Registers.Set(R0, 0x01ff)

	require.NoError(t, c.Step())
	assert.Equal(t, word.Word(0xff01), c.Registers.Get(R0))
	assert.False(t, c.PSW.Zero)
	assert.False(t, c.PSW.Negative)

	c.Registers.Set(PC, 0)
	c.Registers.Set(R0, 0xff00)
	require.NoError(t, c.Step())
	assert.Equal(t, word.Word(0x00ff), c.Registers.Get(R0))
	assert.True(t, c.PSW.Negative)
	assert.False(t, c.PSW.Zero)
}

func TestBitThenBplLoopsUntilBitSet(t *testing.T) {
	// BIT #1, R0 ; BPL .-4 -- loops while bit 0 of R0 is clear. Flags
	// come only from the AND result, which is never negative for a
	// #1 mask, so this tests that BPL's branch-taken path is driven
	// purely by N as BIT last set it, not by the value tested.
	c := newBareCpu()
	loadAt(t, c, 0, 0o032700, 0o000001, 0o100375)
	c.Registers.Set(PC, 0)
	c.Registers.Set(R0, 0)

	require.NoError(t, c.Step()) // BIT #1, R0 -> Z=1, N=0
	assert.True(t, c.PSW.Zero)
	assert.False(t, c.PSW.Negative)
	require.NoError(t, c.Step()) // BPL .-4, N clear so branch taken
	assert.Equal(t, word.Word(0), c.Registers.Get(PC))
}

func TestInvalidOpcodeIsToleratedNotFatal(t *testing.T) {
	c := newBareCpu()
	loadAt(t, c, 0, 0o000002) // not a defined opcode in this subset
	c.Registers.Set(PC, 0)

	require.NoError(t, c.Step())
	assert.False(t, c.Halted)
	assert.Equal(t, word.Word(2), c.Registers.Get(PC))
}

func TestHaltStopsExecution(t *testing.T) {
	c := newBareCpu()
	loadAt(t, c, 0, 0o000000)
	c.Registers.Set(PC, 0)

	require.NoError(t, c.Step())
	assert.True(t, c.Halted)

	require.NoError(t, c.Step()) // Step is a no-op once halted
	assert.Equal(t, word.Word(2), c.Registers.Get(PC))
}

func TestJmpWithRegisterDirectOperandFaults(t *testing.T) {
	// JMP R1 -- register-direct has no address to jump to.
	c := newBareCpu()
	loadAt(t, c, 0, 0o000101)
	c.Registers.Set(PC, 0)

	err := c.Step()
	assert.ErrorIs(t, err, ErrIllegalAddressing)
	assert.True(t, c.Halted)
}
