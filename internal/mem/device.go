package mem

import "pdp11/internal/word"

// Device is a memory-mapped peripheral that intercepts reads and
// writes to a fixed set of addresses inside the unified address space,
// in place of Ram's own backing array. The RK11 disk controller is the
// only Device this module implements, but the interface is written
// generically so a future controller can be attached the same way.
type Device interface {
	ReadWord(addr uint16) word.Word
	WriteWord(addr uint16, w word.Word)
	ReadByte(addr uint16) word.Byte
	WriteByte(addr uint16, b word.Byte)
}
