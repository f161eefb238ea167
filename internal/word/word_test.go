package word

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordSignAndZero(t *testing.T) {
	assert.True(t, Word(0).IsZero())
	assert.False(t, Word(1).IsZero())
	assert.True(t, Word(0x8000).IsNegative())
	assert.False(t, Word(0x7fff).IsNegative())
}

func TestWordSwabIsInvolution(t *testing.T) {
	w := Word(0o123456)
	assert.Equal(t, w, w.Swab().Swab())
	assert.Equal(t, Word(0x3412), Word(0x1234).Swab())
}

func TestWordLoHiRoundTrip(t *testing.T) {
	w := Word(0x1234)
	assert.Equal(t, Byte(0x34), w.Lo())
	assert.Equal(t, Byte(0x12), w.Hi())
	assert.Equal(t, Word(0x1299), w.WithLo(0x99))
	assert.Equal(t, Word(0x9934), w.WithHi(0x99))
}

func TestWordStringIsOctal(t *testing.T) {
	assert.Equal(t, "002000", Word(0o2000).String())
}

func TestByteSignExtend(t *testing.T) {
	assert.Equal(t, Word(0xffff), Byte(0xff).SignExtend())
	assert.Equal(t, Word(0x007f), Byte(0x7f).SignExtend())
}

func TestByteIsZeroAndIsNegative(t *testing.T) {
	assert.True(t, Byte(0).IsZero())
	assert.True(t, Byte(0x80).IsNegative())
}
