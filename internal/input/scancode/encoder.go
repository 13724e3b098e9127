package scancode

import "strings"

type stroke struct {
	code  byte
	shift bool
}

// Encoder synthesizes set 1 make/break sequences for characters.
type Encoder struct {
	strokes map[byte]stroke
}

// NewEncoder builds an encoder for layout. Unshifted mappings win when a
// character is reachable both ways.
func NewEncoder(l *Layout) *Encoder {
	if l == nil {
		l = US
	}
	e := &Encoder{strokes: make(map[byte]stroke)}
	for code := range l.normal {
		if c := l.normal[code]; c != 0 {
			if _, ok := e.strokes[c]; !ok {
				e.strokes[c] = stroke{code: byte(code)}
			}
		}
	}
	for code := range l.shifted {
		if c := l.shifted[code]; c != 0 {
			if _, ok := e.strokes[c]; !ok {
				e.strokes[c] = stroke{code: byte(code), shift: true}
			}
		}
	}
	return e
}

// Control characters the encoder understands.
const (
	CtrlL byte = 0x0C
	CtrlU byte = 0x15
)

// AppendChar appends the scancodes that type c. Newline and carriage
// return become Enter, backspace and DEL become Backspace, and the
// Ctrl+L / Ctrl+U control bytes become their chords. It reports false,
// leaving dst unchanged, when c cannot be typed.
func (e *Encoder) AppendChar(dst []byte, c byte) ([]byte, bool) {
	switch c {
	case '\n', '\r':
		return appendTap(dst, CodeEnter), true
	case '\b', 0x7F:
		return appendTap(dst, CodeBackspace), true
	case CtrlL:
		return appendChord(dst, CodeLeftCtrl, CodeL), true
	case CtrlU:
		return appendChord(dst, CodeLeftCtrl, CodeU), true
	}

	s, ok := e.strokes[c]
	if !ok {
		return dst, false
	}
	if s.shift {
		return appendChord(dst, CodeLeftShift, s.code), true
	}
	return appendTap(dst, s.code), true
}

// EncodeString returns the scancodes that type s, skipping characters
// that cannot be typed.
func (e *Encoder) EncodeString(s string) []byte {
	out := make([]byte, 0, len(s)*2)
	for i := 0; i < len(s); i++ {
		out, _ = e.AppendChar(out, s[i])
	}
	return out
}

var namedKeys = map[string]byte{
	"enter":     '\n',
	"return":    '\n',
	"backspace": '\b',
	"bs":        '\b',
	"space":     ' ',
	"ctrl+l":    CtrlL,
	"ctrl+u":    CtrlU,
}

// EncodeKey returns the scancodes for a named key such as "enter",
// "backspace", "space", "ctrl+l" or "ctrl+u" (case-insensitive), or for a
// single character.
func (e *Encoder) EncodeKey(name string) ([]byte, bool) {
	if c, ok := namedKeys[strings.ToLower(strings.TrimSpace(name))]; ok {
		return e.AppendChar(nil, c)
	}
	if len(name) == 1 {
		out, ok := e.AppendChar(nil, name[0])
		return out, ok
	}
	return nil, false
}

func appendTap(dst []byte, code byte) []byte {
	return append(dst, code, Break(code))
}

func appendChord(dst []byte, mod, code byte) []byte {
	return append(dst, mod, code, Break(code), Break(mod))
}
