package vga

// Cell is one character position of the grid.
// Cells are values; writing or scrolling replaces them wholesale.
type Cell struct {
	Char byte
	Attr Attribute
}

// Blank returns an empty cell in the given attribute.
func Blank(attr Attribute) Cell {
	return Cell{Char: ' ', Attr: attr}
}

// IsBlank reports whether the cell shows no glyph.
func (c Cell) IsBlank() bool {
	return c.Char == ' ' || c.Char == 0
}

// Word returns the 16-bit little-endian word stored in video memory.
func (c Cell) Word() uint16 {
	return uint16(c.Attr)<<8 | uint16(c.Char)
}

// CellFromWord decodes a video memory word.
func CellFromWord(w uint16) Cell {
	return Cell{Char: byte(w), Attr: Attribute(w >> 8)}
}
