package backend

import "github.com/dshills/oxconsole/internal/input/scancode"

// Scancodes translates a host key event into the set-1 make/break bytes a
// PC keyboard would have produced. Keys with no console meaning yield nil.
func Scancodes(enc *scancode.Encoder, ev Event) []byte {
	if ev.Type != EventKey {
		return nil
	}

	var c byte
	switch ev.Key {
	case KeyRune:
		if ev.Rune < 0x20 || ev.Rune > 0x7E {
			return nil
		}
		c = byte(ev.Rune)
	case KeyEnter:
		c = '\n'
	case KeyBackspace:
		c = '\b'
	case KeyCtrlL:
		c = scancode.CtrlL
	case KeyCtrlU:
		c = scancode.CtrlU
	default:
		return nil
	}

	out, ok := enc.AppendChar(nil, c)
	if !ok {
		return nil
	}
	return out
}

// IsQuit reports whether ev asks the simulator to exit.
func IsQuit(ev Event) bool {
	if ev.Type == EventClosed {
		return true
	}
	return ev.Type == EventKey && (ev.Key == KeyCtrlC || ev.Key == KeyCtrlQ)
}
