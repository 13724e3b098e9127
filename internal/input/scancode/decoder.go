package scancode

import "github.com/dshills/oxconsole/internal/input/key"

// State is the decoder's prefix state.
type State uint8

const (
	// StateIdle expects a plain code or a prefix.
	StateIdle State = iota

	// StateExtendedPending has consumed 0xE0 and expects the extended code.
	StateExtendedPending

	// StatePausePending is discarding the tail of the Pause sequence.
	StatePausePending
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateExtendedPending:
		return "ExtendedPending"
	case StatePausePending:
		return "PausePending"
	default:
		return "Unknown"
	}
}

// Decoder translates set 1 scancodes into key events.
// It is not safe for concurrent use.
type Decoder struct {
	layout *Layout
	state  State
	skip   int
	mods   key.Modifier
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithLayout selects the character layout. The default is US.
func WithLayout(l *Layout) DecoderOption {
	return func(d *Decoder) {
		if l != nil {
			d.layout = l
		}
	}
}

// NewDecoder creates a decoder in the Idle state with no modifiers held.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{layout: US}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// State returns the prefix state.
func (d *Decoder) State() State {
	return d.state
}

// Modifiers returns the modifier state.
func (d *Decoder) Modifiers() key.Modifier {
	return d.mods
}

// Reset returns to Idle and releases every held modifier.
// The Caps Lock latch is kept.
func (d *Decoder) Reset() {
	d.state = StateIdle
	d.skip = 0
	d.mods = d.mods.Released()
}

// Feed consumes one scancode byte. It returns the decoded event and true,
// or a zero event and false when the byte produces no event.
func (d *Decoder) Feed(code byte) (key.Event, bool) {
	if code == KeyError || code == Overrun {
		// The controller lost bytes; any release we were waiting for, or
		// the rest of a prefixed sequence, may be among them.
		d.Reset()
		return key.Event{}, false
	}

	switch d.state {
	case StateExtendedPending:
		d.state = StateIdle
		return d.extended(code)
	case StatePausePending:
		d.skip--
		if d.skip <= 0 {
			d.state = StateIdle
		}
		return key.Event{}, false
	}

	switch code {
	case PrefixExtended:
		d.state = StateExtendedPending
		return key.Event{}, false
	case PrefixPause:
		d.state = StatePausePending
		d.skip = pauseTail
		return key.Event{}, false
	}

	pressed := !IsBreak(code)
	base := Make(code)

	switch base {
	case CodeLeftShift:
		d.track(key.ModLeftShift, pressed)
		return key.Event{}, false
	case CodeRightShift:
		d.track(key.ModRightShift, pressed)
		return key.Event{}, false
	case CodeLeftCtrl:
		d.track(key.ModLeftCtrl, pressed)
		return key.Event{}, false
	case CodeCapsLock:
		if pressed {
			d.mods = d.mods.Toggle(key.ModCapsLock)
		}
		return key.Event{}, false
	}

	// Releases of ordinary keys only end typematic repeat.
	if !pressed {
		return key.Event{}, false
	}

	switch base {
	case CodeEnter:
		return key.Submit, true
	case CodeBackspace:
		return key.Erase, true
	}

	if d.mods.Ctrl() {
		return d.chord(base)
	}

	c := d.layout.Lookup(base, d.mods.Shift(), d.mods.CapsLock())
	if c == 0 {
		return key.Event{}, false
	}
	return key.Printable(c), true
}

// extended handles the byte following 0xE0.
func (d *Decoder) extended(code byte) (key.Event, bool) {
	pressed := !IsBreak(code)

	switch Make(code) {
	case CodeLeftShift, CodeRightShift:
		// Fake shifts wrapped around navigation keys; never real modifiers.
		return key.Event{}, false
	case CodeLeftCtrl:
		d.track(key.ModRightCtrl, pressed)
		return key.Event{}, false
	case CodeEnter:
		if pressed {
			return key.Submit, true
		}
	case CodeSlash:
		if pressed && !d.mods.Ctrl() {
			return key.Printable('/'), true
		}
	}
	return key.Event{}, false
}

// chord maps Ctrl+key presses.
func (d *Decoder) chord(base byte) (key.Event, bool) {
	switch base {
	case CodeL:
		return key.ClearScreen, true
	case CodeU:
		return key.KillLine, true
	}
	return key.Event{}, false
}

func (d *Decoder) track(mod key.Modifier, pressed bool) {
	if pressed {
		d.mods = d.mods.With(mod)
	} else {
		d.mods = d.mods.Without(mod)
	}
}
