//go:build baremetal

package vga

import (
	"unsafe"

	"github.com/dshills/oxconsole/internal/hal"
)

const (
	// TextBufferAddr is the physical address of the colour text buffer.
	TextBufferAddr uintptr = 0xB8000

	crtcIndexPort uint16 = 0x3D4
	crtcDataPort  uint16 = 0x3D5
)

// MMIO is a Target backed by the memory-mapped text buffer.
type MMIO struct {
	mem *[DefaultRows * DefaultColumns]uint16
}

// NewMMIO maps the text buffer at addr.
func NewMMIO(addr uintptr) *MMIO {
	return &MMIO{mem: (*[DefaultRows * DefaultColumns]uint16)(unsafe.Pointer(addr))}
}

func (m *MMIO) Size() (int, int) {
	return DefaultColumns, DefaultRows
}

func (m *MMIO) SetCell(col, row int, c Cell) {
	if col < 0 || col >= DefaultColumns || row < 0 || row >= DefaultRows {
		return
	}
	m.mem[row*DefaultColumns+col] = c.Word()
}

func (m *MMIO) CellAt(col, row int) Cell {
	if col < 0 || col >= DefaultColumns || row < 0 || row >= DefaultRows {
		return Blank(DefaultAttribute)
	}
	return CellFromWord(m.mem[row*DefaultColumns+col])
}

// SetCursor programs the CRTC cursor location registers.
func (m *MMIO) SetCursor(col, row int) {
	pos := uint16(row*DefaultColumns + col)

	hal.Outb(crtcIndexPort, 0x0F)
	hal.Outb(crtcDataPort, byte(pos&0xFF))

	hal.Outb(crtcIndexPort, 0x0E)
	hal.Outb(crtcDataPort, byte((pos>>8)&0xFF))
}
