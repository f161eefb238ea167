// Package mem implements the unified address space: a 32Ki-word flat
// array backing ordinary RAM, with a small fixed window of addresses
// routed to an attached Device instead. This generalizes the teacher
// repo's gone/mem.Bus (a bare 64KiB byte array with no dispatch) the
// way smoynes/elsie's Memory routes IO-page addresses to MMIO
// registers instead of physical cells.
package mem

import (
	"pdp11/internal/word"
)

// ErrOddAddress re-exports word.ErrOddAddress for callers that only
// import mem.
var ErrOddAddress = word.ErrOddAddress

const cellCount = 1 << 15 // 32Ki words = 64KiB

// Ram is the CPU's unified address space: ordinary storage plus,
// optionally, one Device mapped over a fixed set of addresses.
type Ram struct {
	cells  [cellCount]word.Word
	device Device
	window map[uint16]struct{}
}

// New returns an empty, zeroed address space with no device attached.
func New() *Ram {
	return &Ram{}
}

// AttachDevice routes the given addresses (which must be even, one per
// device register) to dev instead of the backing array. Called once
// during CPU construction, never at runtime.
func (r *Ram) AttachDevice(dev Device, addrs []uint16) {
	r.device = dev
	r.window = make(map[uint16]struct{}, len(addrs))
	for _, a := range addrs {
		r.window[a] = struct{}{}
	}
}

// Reset zeroes every RAM cell. It does not touch the attached device;
// callers that need to reset the device do so separately.
func (r *Ram) Reset() {
	for i := range r.cells {
		r.cells[i] = 0
	}
}

func (r *Ram) routed(addr uint16) bool {
	if r.device == nil {
		return false
	}
	_, ok := r.window[addr&^1]
	return ok
}

// ReadWord reads the word at addr. addr must be even; ErrOddAddress is
// returned otherwise so the CPU can fault and halt.
func (r *Ram) ReadWord(addr uint16) (word.Word, error) {
	if addr%2 != 0 {
		return 0, ErrOddAddress
	}
	if r.routed(addr) {
		return r.device.ReadWord(addr), nil
	}
	return r.cells[addr>>1], nil
}

// WriteWord writes w at addr, subject to the same even-address
// requirement as ReadWord.
func (r *Ram) WriteWord(addr uint16, w word.Word) error {
	if addr%2 != 0 {
		return ErrOddAddress
	}
	if r.routed(addr) {
		r.device.WriteWord(addr, w)
		return nil
	}
	r.cells[addr>>1] = w
	return nil
}

// ReadByte reads the byte at addr. Byte access is permitted at odd
// addresses.
func (r *Ram) ReadByte(addr uint16) word.Byte {
	if r.routed(addr) {
		return r.device.ReadByte(addr)
	}
	cell := r.cells[addr>>1]
	if addr&1 == 0 {
		return cell.Lo()
	}
	return cell.Hi()
}

// WriteByte writes b at addr, leaving the other byte of the containing
// word cell untouched.
func (r *Ram) WriteByte(addr uint16, b word.Byte) {
	if r.routed(addr) {
		r.device.WriteByte(addr, b)
		return
	}
	idx := addr >> 1
	if addr&1 == 0 {
		r.cells[idx] = r.cells[idx].WithLo(b)
	} else {
		r.cells[idx] = r.cells[idx].WithHi(b)
	}
}
