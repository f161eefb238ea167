package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pdp11/internal/word"
)

func TestWordReadWriteRoundTrip(t *testing.T) {
	r := New()
	assert.NoError(t, r.WriteWord(0o2000, word.Word(0x1234)))
	w, err := r.ReadWord(0o2000)
	assert.NoError(t, err)
	assert.Equal(t, word.Word(0x1234), w)
}

func TestOddWordAccessFaults(t *testing.T) {
	r := New()
	_, err := r.ReadWord(1)
	assert.ErrorIs(t, err, ErrOddAddress)
	assert.ErrorIs(t, r.WriteWord(1, 0), ErrOddAddress)
}

func TestByteAccessLeavesSiblingByteAlone(t *testing.T) {
	r := New()
	assert.NoError(t, r.WriteWord(0, word.Word(0xbeef)))
	r.WriteByte(0, 0x11)
	w, _ := r.ReadWord(0)
	assert.Equal(t, word.Word(0xbe11), w)
	r.WriteByte(1, 0x22)
	w, _ = r.ReadWord(0)
	assert.Equal(t, word.Word(0x2211), w)
}

type fakeDevice struct {
	reads, writes []uint16
}

func (f *fakeDevice) ReadWord(addr uint16) word.Word { f.reads = append(f.reads, addr); return 0o123 }
func (f *fakeDevice) WriteWord(addr uint16, w word.Word) {
	f.writes = append(f.writes, addr)
}
func (f *fakeDevice) ReadByte(addr uint16) word.Byte     { return 0 }
func (f *fakeDevice) WriteByte(addr uint16, b word.Byte) {}

func TestAttachedDeviceInterceptsWindowAddresses(t *testing.T) {
	r := New()
	dev := &fakeDevice{}
	r.AttachDevice(dev, []uint16{0o177400})

	w, err := r.ReadWord(0o177400)
	assert.NoError(t, err)
	assert.Equal(t, word.Word(0o123), w)
	assert.Equal(t, []uint16{0o177400}, dev.reads)

	assert.NoError(t, r.WriteWord(0o177400, 7))
	assert.Equal(t, []uint16{0o177400}, dev.writes)

	// An address outside the window still hits ordinary RAM.
	assert.NoError(t, r.WriteWord(0o1000, 42))
	ordinary, _ := r.ReadWord(0o1000)
	assert.Equal(t, word.Word(42), ordinary)
}
