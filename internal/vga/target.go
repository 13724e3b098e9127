package vga

// Standard text-mode dimensions.
const (
	DefaultColumns = 80
	DefaultRows    = 25
)

// Target is the grid-write sink behind a Surface.
// Implementations do no bounds policy of their own beyond ignoring
// out-of-range positions; the Surface never produces them.
type Target interface {
	// Size returns the grid dimensions in cells.
	Size() (columns, rows int)

	// SetCell replaces the cell at (col, row).
	SetCell(col, row int, c Cell)

	// CellAt returns the cell at (col, row).
	CellAt(col, row int) Cell

	// SetCursor moves the visible cursor.
	SetCursor(col, row int)
}

// Buffer is an in-memory Target.
type Buffer struct {
	columns, rows int
	cells         []Cell
	cursorCol     int
	cursorRow     int
}

// NewBuffer creates a blank buffer. Non-positive dimensions fall back to 80x25.
func NewBuffer(columns, rows int) *Buffer {
	if columns <= 0 {
		columns = DefaultColumns
	}
	if rows <= 0 {
		rows = DefaultRows
	}
	b := &Buffer{
		columns: columns,
		rows:    rows,
		cells:   make([]Cell, columns*rows),
	}
	for i := range b.cells {
		b.cells[i] = Blank(DefaultAttribute)
	}
	return b
}

func (b *Buffer) Size() (int, int) {
	return b.columns, b.rows
}

func (b *Buffer) SetCell(col, row int, c Cell) {
	if b.inBounds(col, row) {
		b.cells[row*b.columns+col] = c
	}
}

func (b *Buffer) CellAt(col, row int) Cell {
	if b.inBounds(col, row) {
		return b.cells[row*b.columns+col]
	}
	return Blank(DefaultAttribute)
}

func (b *Buffer) SetCursor(col, row int) {
	b.cursorCol = col
	b.cursorRow = row
}

// Cursor returns the last cursor position set by the Surface.
func (b *Buffer) Cursor() (col, row int) {
	return b.cursorCol, b.cursorRow
}

// Snapshot returns a copy of the grid, row-major.
func (b *Buffer) Snapshot() [][]Cell {
	out := make([][]Cell, b.rows)
	for r := range out {
		out[r] = make([]Cell, b.columns)
		copy(out[r], b.cells[r*b.columns:(r+1)*b.columns])
	}
	return out
}

func (b *Buffer) inBounds(col, row int) bool {
	return col >= 0 && col < b.columns && row >= 0 && row < b.rows
}
