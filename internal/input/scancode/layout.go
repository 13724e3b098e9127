package scancode

// Layout maps set 1 make codes to characters.
type Layout struct {
	// Name identifies the layout.
	Name string

	normal  [0x80]byte
	shifted [0x80]byte
}

// Lookup returns the character for code under the given shift and
// Caps Lock state, or 0 if the key does not produce one. Caps Lock only
// affects letters and inverts Shift for them.
func (l *Layout) Lookup(code byte, shift, caps bool) byte {
	if int(code) >= len(l.normal) {
		return 0
	}
	c := l.normal[code]
	if c == 0 {
		return 0
	}
	if caps && c >= 'a' && c <= 'z' {
		shift = !shift
	}
	if shift {
		return l.shifted[code]
	}
	return c
}

// newLayout builds a layout from parallel unshifted/shifted strings
// starting at make code first. A zero byte leaves the slot unmapped.
func newLayout(name string, rows ...layoutRow) *Layout {
	l := &Layout{Name: name}
	for _, r := range rows {
		for i := 0; i < len(r.normal); i++ {
			code := int(r.first) + i
			l.normal[code] = r.normal[i]
			l.shifted[code] = r.shifted[i]
		}
	}
	return l
}

type layoutRow struct {
	first   byte
	normal  string
	shifted string
}

// US is the US QWERTY layout.
var US = newLayout("us",
	layoutRow{0x02, "1234567890-=", "!@#$%^&*()_+"},
	layoutRow{0x10, "qwertyuiop[]", "QWERTYUIOP{}"},
	layoutRow{0x1E, "asdfghjkl;'`", "ASDFGHJKL:\"~"},
	layoutRow{0x2B, "\\zxcvbnm,./", "|ZXCVBNM<>?"},
	layoutRow{0x37, "*", "*"},
	layoutRow{0x39, " ", " "},
	layoutRow{0x4A, "-", "-"},
	layoutRow{0x4E, "+", "+"},
)

// Layouts lists the available layouts by name.
var Layouts = map[string]*Layout{
	US.Name: US,
}
