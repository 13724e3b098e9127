package backend

import "github.com/dshills/oxconsole/internal/vga"

// Source is a character grid that can be presented.
// *vga.Buffer satisfies it.
type Source interface {
	Size() (columns, rows int)
	CellAt(col, row int) vga.Cell
	Cursor() (col, row int)
}

// Frame presents a Source on a Backend, sending only cells that changed
// since the previous Present.
type Frame struct {
	backend    Backend
	front      []vga.Cell
	columns    int
	rows       int
	fullRedraw bool
}

// NewFrame creates a frame drawing to b.
func NewFrame(b Backend) *Frame {
	return &Frame{backend: b, fullRedraw: true}
}

// Invalidate forces the next Present to redraw every cell.
func (f *Frame) Invalidate() {
	f.fullRedraw = true
}

// Present draws src at the top-left corner of the backend and returns the
// number of cells sent.
func (f *Frame) Present(src Source) int {
	cols, rows := src.Size()
	if cols != f.columns || rows != f.rows {
		f.columns, f.rows = cols, rows
		f.front = make([]vga.Cell, cols*rows)
		f.fullRedraw = true
	}
	if f.fullRedraw {
		f.backend.Clear()
	}

	sent := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell := src.CellAt(c, r)
			i := r*cols + c
			if !f.fullRedraw && f.front[i] == cell {
				continue
			}
			f.front[i] = cell
			f.backend.SetCell(c, r, cell)
			sent++
		}
	}
	f.fullRedraw = false

	col, row := src.Cursor()
	if col >= 0 && col < cols && row >= 0 && row < rows {
		f.backend.ShowCursor(col, row)
	} else {
		f.backend.HideCursor()
	}
	f.backend.Show()
	return sent
}

// Fits reports whether a grid of the given size fits the backend.
func (f *Frame) Fits(columns, rows int) bool {
	w, h := f.backend.Size()
	return columns <= w && rows <= h
}
