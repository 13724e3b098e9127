package vga

import (
	"fmt"
	"strings"
)

// Color is one of the 16 VGA text-mode palette entries.
type Color uint8

// VGA palette.
const (
	Black Color = iota
	Blue
	Green
	Cyan
	Red
	Magenta
	Brown
	LightGrey
	DarkGrey
	LightBlue
	LightGreen
	LightCyan
	LightRed
	Pink
	Yellow
	White
)

var colorNames = [...]string{
	"black", "blue", "green", "cyan", "red", "magenta", "brown", "lightgrey",
	"darkgrey", "lightblue", "lightgreen", "lightcyan", "lightred", "pink", "yellow", "white",
}

// String returns the lowercase palette name.
func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

// Valid reports whether c is a palette entry.
func (c Color) Valid() bool {
	return c <= White
}

// ParseColor parses a palette name (case-insensitive, "gray" spellings accepted).
func ParseColor(name string) (Color, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "gray", "grey")
	n = strings.ReplaceAll(n, "_", "")
	n = strings.ReplaceAll(n, "-", "")
	for i, cn := range colorNames {
		if cn == n {
			return Color(i), nil
		}
	}
	return Black, fmt.Errorf("unknown color %q", name)
}

// RGB returns the conventional VGA DAC value for the color.
func (c Color) RGB() (r, g, b uint8) {
	switch c {
	case Black:
		return 0x00, 0x00, 0x00
	case Blue:
		return 0x00, 0x00, 0xAA
	case Green:
		return 0x00, 0xAA, 0x00
	case Cyan:
		return 0x00, 0xAA, 0xAA
	case Red:
		return 0xAA, 0x00, 0x00
	case Magenta:
		return 0xAA, 0x00, 0xAA
	case Brown:
		return 0xAA, 0x55, 0x00
	case LightGrey:
		return 0xAA, 0xAA, 0xAA
	case DarkGrey:
		return 0x55, 0x55, 0x55
	case LightBlue:
		return 0x55, 0x55, 0xFF
	case LightGreen:
		return 0x55, 0xFF, 0x55
	case LightCyan:
		return 0x55, 0xFF, 0xFF
	case LightRed:
		return 0xFF, 0x55, 0x55
	case Pink:
		return 0xFF, 0x55, 0xFF
	case Yellow:
		return 0xFF, 0xFF, 0x55
	default:
		return 0xFF, 0xFF, 0xFF
	}
}

// Attribute is the VGA attribute byte: foreground in the low nibble,
// background in the high nibble.
type Attribute uint8

// DefaultAttribute is light grey on black.
const DefaultAttribute = Attribute(LightGrey) | Attribute(Black)<<4

// MakeAttribute packs a foreground and background color.
func MakeAttribute(fg, bg Color) Attribute {
	return Attribute(fg&0x0F) | Attribute(bg&0x0F)<<4
}

// Foreground returns the foreground color.
func (a Attribute) Foreground() Color {
	return Color(a & 0x0F)
}

// Background returns the background color.
func (a Attribute) Background() Color {
	return Color(a >> 4)
}
