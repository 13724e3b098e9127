package vga

import "strings"

// Surface owns the character grid and the write cursor.
//
// Invariant: the cursor is always within [0, columns) x [0, rows).
// Writing past the last column wraps; wrapping or a newline on the last
// row scrolls the grid up one row and blanks the new bottom row.
//
// All operations are total and synchronous. Surface is not safe for
// concurrent use; the console serializes access.
type Surface struct {
	target  Target
	columns int
	rows    int
	col     int
	row     int
	attr    Attribute
}

// SurfaceOption configures a Surface.
type SurfaceOption func(*Surface)

// WithAttribute sets the attribute used for new cells and blanks.
func WithAttribute(attr Attribute) SurfaceOption {
	return func(s *Surface) {
		s.attr = attr
	}
}

// NewSurface creates a surface over target and clears it.
func NewSurface(target Target, opts ...SurfaceOption) *Surface {
	cols, rows := target.Size()
	s := &Surface{
		target:  target,
		columns: cols,
		rows:    rows,
		attr:    DefaultAttribute,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Clear()
	return s
}

// Size returns the grid dimensions.
func (s *Surface) Size() (columns, rows int) {
	return s.columns, s.rows
}

// Cursor returns the cursor position.
func (s *Surface) Cursor() (col, row int) {
	return s.col, s.row
}

// Attribute returns the current write attribute.
func (s *Surface) Attribute() Attribute {
	return s.attr
}

// SetAttribute changes the attribute for subsequent writes.
// Existing cells keep their colors.
func (s *Surface) SetAttribute(attr Attribute) {
	s.attr = attr
}

// Recolor sets the write attribute and repaints every existing cell with it,
// keeping the characters.
func (s *Surface) Recolor(attr Attribute) {
	s.attr = attr
	for r := 0; r < s.rows; r++ {
		for c := 0; c < s.columns; c++ {
			cell := s.target.CellAt(c, r)
			cell.Attr = attr
			s.target.SetCell(c, r, cell)
		}
	}
}

// WriteChar writes c at the cursor and advances it.
// '\n' moves to column 0 of the next row and '\r' to column 0 of the
// current row, neither writing a cell. Other control bytes are dropped.
func (s *Surface) WriteChar(c byte) {
	switch {
	case c == '\n':
		s.newline()
	case c == '\r':
		s.col = 0
	case c < 0x20 || c == 0x7F:
		return
	default:
		s.target.SetCell(s.col, s.row, Cell{Char: c, Attr: s.attr})
		s.col++
		if s.col >= s.columns {
			s.newline()
		}
	}
	s.syncCursor()
}

// WriteString writes every byte of str.
func (s *Surface) WriteString(str string) {
	for i := 0; i < len(str); i++ {
		s.WriteChar(str[i])
	}
}

// EraseLast blanks the cell left of the cursor and moves onto it.
// At column 0 it does nothing.
func (s *Surface) EraseLast() {
	if s.col == 0 {
		return
	}
	s.col--
	s.target.SetCell(s.col, s.row, Blank(s.attr))
	s.syncCursor()
}

// Clear blanks every cell and homes the cursor.
func (s *Surface) Clear() {
	blank := Blank(s.attr)
	for r := 0; r < s.rows; r++ {
		for c := 0; c < s.columns; c++ {
			s.target.SetCell(c, r, blank)
		}
	}
	s.col = 0
	s.row = 0
	s.syncCursor()
}

// CellAt returns the cell at (col, row).
func (s *Surface) CellAt(col, row int) Cell {
	return s.target.CellAt(col, row)
}

// Row returns the text of row r with trailing blanks trimmed.
func (s *Surface) Row(r int) string {
	if r < 0 || r >= s.rows {
		return ""
	}
	var sb strings.Builder
	sb.Grow(s.columns)
	for c := 0; c < s.columns; c++ {
		ch := s.target.CellAt(c, r).Char
		if ch == 0 {
			ch = ' '
		}
		sb.WriteByte(ch)
	}
	return strings.TrimRight(sb.String(), " ")
}

// Text returns all rows joined by newlines, trailing blank rows dropped.
func (s *Surface) Text() string {
	lines := make([]string, s.rows)
	last := -1
	for r := 0; r < s.rows; r++ {
		lines[r] = s.Row(r)
		if lines[r] != "" {
			last = r
		}
	}
	return strings.Join(lines[:last+1], "\n")
}

func (s *Surface) newline() {
	s.col = 0
	s.row++
	if s.row >= s.rows {
		s.scroll()
		s.row = s.rows - 1
	}
}

func (s *Surface) scroll() {
	for r := 1; r < s.rows; r++ {
		for c := 0; c < s.columns; c++ {
			s.target.SetCell(c, r-1, s.target.CellAt(c, r))
		}
	}
	blank := Blank(s.attr)
	last := s.rows - 1
	for c := 0; c < s.columns; c++ {
		s.target.SetCell(c, last, blank)
	}
}

func (s *Surface) syncCursor() {
	s.target.SetCursor(s.col, s.row)
}
