// Package rk11 implements the RK11 disk controller: a six-register
// memory-mapped window plus a synchronous DMA engine that copies the
// words named by RKWC from the loaded image into RAM (READ is the only
// function implemented). It is grounded on
// original_source/src/cpu/rk.rs (the Rk struct and its image field)
// and, for the memory-mapped-register idiom, on smoynes-elsie's
// internal/cpu Memory/MMIO split, generalized to a single attachable
// Device rather than a map of per-address registers.
package rk11

import (
	"fmt"
	"os"

	"pdp11/internal/word"
)

// Register addresses, in the conventional I/O page window. These are
// the six addresses mem.Ram routes to a Controller.
const (
	RKDS uint16 = 0o177400 // drive status
	RKER uint16 = 0o177402 // error
	RKCS uint16 = 0o177404 // control/status
	RKWC uint16 = 0o177406 // word count (negative, two's complement)
	RKBA uint16 = 0o177410 // bus address (DMA target)
	RKDA uint16 = 0o177412 // disk address (cylinder/surface/sector)
)

// RegisterAddresses lists the window Controller occupies, for passing
// to mem.Ram.AttachDevice.
var RegisterAddresses = []uint16{RKDS, RKER, RKCS, RKWC, RKBA, RKDA}

// Control/status bits.
const (
	csGo      = 1 << 0 // GO: start the function named by bits 1-3
	csReady   = 1 << 7 // CRDY: controller ready (set when a function completes)
	fnRead    = 2 << 1 // function code for READ, as placed in bits 1-3
	fnMask    = 0o16
	sectorsPerTrack = 12
	bytesPerSector  = 512
)

// ramWriter is the narrow slice of *mem.Ram that Controller needs for
// its DMA transfers; declared locally to avoid rk11 importing mem just
// for this one method (mem already imports rk11's sibling package
// word, and importing mem here would still be cycle-free, but this
// keeps the dependency direction explicit: rk11 only needs "a place to
// write words").
type ramWriter interface {
	WriteWord(addr uint16, w word.Word) error
}

// Controller is the RK11 disk controller attached to a single drive
// image.
type Controller struct {
	imagePath string
	image     []byte

	ram ramWriter

	rkds, rker, rkcs, rkwc, rkba, rkda word.Word
}

// New loads the drive image at path and returns a Controller ready to
// be attached to a Ram via AttachDevice. An unreadable image is a
// startup error, not a runtime fault.
func New(path string) (*Controller, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rk11: loading image %s: %w", path, err)
	}
	return &Controller{imagePath: path, image: data}, nil
}

// Attach records the Ram that DMA transfers write into. Called once,
// after both the Controller and the Ram exist.
func (c *Controller) Attach(ram ramWriter) {
	c.ram = ram
}

// ImagePath returns the path the controller's image was loaded from,
// for diagnostics and trace output.
func (c *Controller) ImagePath() string {
	return c.imagePath
}

// Reset restores the controller's registers to power-up state: ready,
// no error, no pending function. The backing image is untouched.
func (c *Controller) Reset() {
	c.rkds = 0
	c.rker = 0
	c.rkcs = csReady
	c.rkwc = 0
	c.rkba = 0
	c.rkda = 0
}

func (c *Controller) ReadWord(addr uint16) word.Word {
	switch addr {
	case RKDS:
		return c.rkds
	case RKER:
		return c.rker
	case RKCS:
		return c.rkcs
	case RKWC:
		return c.rkwc
	case RKBA:
		return c.rkba
	case RKDA:
		return c.rkda
	default:
		return 0
	}
}

func (c *Controller) WriteWord(addr uint16, w word.Word) {
	switch addr {
	case RKDS:
		c.rkds = w
	case RKER:
		c.rker = w
	case RKCS:
		c.rkcs = w
		if w&csGo != 0 {
			c.runFunction()
		}
	case RKWC:
		c.rkwc = w
	case RKBA:
		c.rkba = w
	case RKDA:
		c.rkda = w
	}
}

func (c *Controller) ReadByte(addr uint16) word.Byte {
	w := c.ReadWord(addr &^ 1)
	if addr&1 == 0 {
		return w.Lo()
	}
	return w.Hi()
}

func (c *Controller) WriteByte(addr uint16, b word.Byte) {
	base := addr &^ 1
	w := c.ReadWord(base)
	if addr&1 == 0 {
		w = w.WithLo(b)
	} else {
		w = w.WithHi(b)
	}
	// Route back through WriteWord so a byte write to RKCS's low byte
	// (as the boot ROM's CLRB does) still participates in GO dispatch
	// the same way a word write would. CLRB clears bit 0 along with
	// the rest of the byte, so it never itself triggers a function.
	c.WriteWord(base, w)
}

// runFunction dispatches on the function field of RKCS. Only READ is
// implemented; the boot ROM never issues anything else.
func (c *Controller) runFunction() {
	fn := uint16(c.rkcs) & fnMask
	switch fn {
	case fnRead:
		c.readBlock()
	default:
		// Unimplemented function: report ready with no transfer, the
		// same as original_source's read_word todo!() would have
		// panicked on, but tolerated here rather than crashing the
		// emulator.
	}
	c.rkcs |= csReady
	c.rkcs &^= csGo
}

// readBlock copies the word count named by RKWC (stored as its two's
// complement negation) from the image, starting at the block selected
// by RKDA, to RAM starting at RKBA.
func (c *Controller) readBlock() {
	count := int(-int16(c.rkwc))
	if count <= 0 {
		return
	}
	block := diskBlock(uint16(c.rkda))
	base := block * bytesPerSector
	dest := uint16(c.rkba)

	for i := 0; i < count; i++ {
		off := base + i*2
		var lo, hi byte
		if off < len(c.image) {
			lo = c.image[off]
		}
		if off+1 < len(c.image) {
			hi = c.image[off+1]
		}
		w := word.Word(uint16(lo) | uint16(hi)<<8)
		if c.ram != nil {
			// A full disk exceeding the 64KiB address space is out of
			// scope; dest wraps like any other word-wide RAM address
			// would on real hardware.
			_ = c.ram.WriteWord(dest, w)
		}
		dest += 2
	}
	c.rkwc = 0
}

// diskBlock unpacks RKDA's cylinder/surface/sector fields into a flat
// block index into the image file, following the standard RK05
// geometry (12 sectors/track, 2 surfaces/cylinder) referenced by the
// PDP-11 Peripherals Handbook.
func diskBlock(rkda uint16) int {
	sector := int(rkda & 0o17)
	surface := int((rkda >> 4) & 1)
	cylinder := int(rkda >> 5)
	return (cylinder*2+surface)*sectorsPerTrack + sector
}
