package scancode

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/oxconsole/internal/input/key"
)

// feed runs codes through d and collects the emitted events.
func feed(d *Decoder, codes ...byte) []key.Event {
	var out []key.Event
	for _, c := range codes {
		if ev, ok := d.Feed(c); ok {
			out = append(out, ev)
		}
	}
	return out
}

func TestDecoderLetters(t *testing.T) {
	d := NewDecoder()

	got := feed(d, 0x23, 0xA3, 0x17, 0x97) // h, i
	want := []key.Event{key.Printable('h'), key.Printable('i')}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestDecoderRepeatedKeyWithoutRelease(t *testing.T) {
	d := NewDecoder()

	// Two makes of 'a' with no break between them, as typematic repeat sends.
	got := feed(d, 0x1E, 0x1E)
	want := []key.Event{key.Printable('a'), key.Printable('a')}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestDecoderRepeatedKeyWithRelease(t *testing.T) {
	d := NewDecoder()

	got := feed(d, 0x1E, 0x9E, 0x1E, 0x9E)
	want := []key.Event{key.Printable('a'), key.Printable('a')}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestDecoderSpaceIsPrintable(t *testing.T) {
	d := NewDecoder()

	got := feed(d, CodeSpace, Break(CodeSpace), CodeSpace)
	want := []key.Event{key.Printable(' '), key.Printable(' ')}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestDecoderEnterAndBackspace(t *testing.T) {
	tests := []struct {
		name  string
		codes []byte
		want  []key.Event
	}{
		{"enter", []byte{CodeEnter, Break(CodeEnter)}, []key.Event{key.Submit}},
		{"backspace", []byte{CodeBackspace, Break(CodeBackspace)}, []key.Event{key.Erase}},
		{"backspace twice", []byte{CodeBackspace, CodeBackspace}, []key.Event{key.Erase, key.Erase}},
		{"shifted enter", []byte{CodeLeftShift, CodeEnter}, []key.Event{key.Submit}},
		{"shifted backspace", []byte{CodeRightShift, CodeBackspace}, []key.Event{key.Erase}},
		{"keypad enter", []byte{PrefixExtended, CodeEnter, PrefixExtended, Break(CodeEnter)}, []key.Event{key.Submit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := feed(NewDecoder(), tt.codes...)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("events mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecoderShift(t *testing.T) {
	d := NewDecoder()

	// Shift+a, release shift, a.
	got := feed(d, CodeLeftShift, 0x1E, 0x9E, Break(CodeLeftShift), 0x1E, 0x9E)
	want := []key.Event{key.Printable('A'), key.Printable('a')}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if d.Modifiers().Shift() {
		t.Error("shift still held after release")
	}
}

func TestDecoderShiftedSymbols(t *testing.T) {
	tests := []struct {
		code byte
		want byte
	}{
		{0x02, '!'},
		{0x03, '@'},
		{0x0C, '_'},
		{0x0D, '+'},
		{0x1A, '{'},
		{0x27, ':'},
		{0x28, '"'},
		{0x29, '~'},
		{0x2B, '|'},
		{0x33, '<'},
		{0x35, '?'},
	}

	for _, tt := range tests {
		got := feed(NewDecoder(), CodeRightShift, tt.code)
		if len(got) != 1 || got[0] != key.Printable(tt.want) {
			t.Errorf("shift+%#x = %v, want %q", tt.code, got, tt.want)
		}
	}
}

func TestDecoderShiftSidesIndependent(t *testing.T) {
	d := NewDecoder()

	got := feed(d,
		CodeLeftShift, CodeRightShift,
		Break(CodeLeftShift), 0x30, // right still held: B
		Break(CodeRightShift), 0x30, // none held: b
	)
	want := []key.Event{key.Printable('B'), key.Printable('b')}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestDecoderCapsLock(t *testing.T) {
	d := NewDecoder()

	got := feed(d,
		CodeCapsLock, Break(CodeCapsLock),
		0x1E,                // A
		0x02,                // 1, caps does not touch digits
		CodeLeftShift, 0x1E, // shift inverts caps: a
		Break(CodeLeftShift),
		CodeCapsLock, Break(CodeCapsLock),
		0x1E, // a
	)
	want := []key.Event{
		key.Printable('A'),
		key.Printable('1'),
		key.Printable('a'),
		key.Printable('a'),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestDecoderBreakCodesEmitNothing(t *testing.T) {
	d := NewDecoder()

	for code := byte(0x81); code < 0xE0; code++ {
		if ev, ok := d.Feed(code); ok {
			t.Errorf("break %#x emitted %v", code, ev)
		}
	}
}

func TestDecoderUnmappedCodes(t *testing.T) {
	d := NewDecoder()

	for _, code := range []byte{CodeEscape, CodeTab, CodeLeftAlt, 0x3B, 0x58} {
		if ev, ok := d.Feed(code); ok {
			t.Errorf("code %#x emitted %v", code, ev)
		}
	}
}

func TestDecoderExtended(t *testing.T) {
	d := NewDecoder()

	// Arrow up (E0 48) must not become '8' on a keypad-less layout, and
	// keypad '/' (E0 35) stays '/' even with shift held.
	got := feed(d,
		PrefixExtended, 0x48, PrefixExtended, 0xC8,
		CodeLeftShift, PrefixExtended, CodeSlash, Break(CodeLeftShift),
	)
	want := []key.Event{key.Printable('/')}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if d.State() != StateIdle {
		t.Errorf("State() = %v, want Idle", d.State())
	}
}

func TestDecoderFakeShiftIgnored(t *testing.T) {
	d := NewDecoder()

	// Home with num lock on: E0 2A E0 47 E0 C7 E0 AA.
	feed(d, PrefixExtended, 0x2A, PrefixExtended, 0x47, PrefixExtended, 0xC7, PrefixExtended, 0xAA)
	if d.Modifiers().Shift() {
		t.Fatal("fake shift set shift state")
	}

	// A fake shift release must not clear a real one.
	d.Feed(CodeLeftShift)
	feed(d, PrefixExtended, 0xAA)
	if !d.Modifiers().Shift() {
		t.Error("fake shift release cleared real shift")
	}
}

func TestDecoderCtrlChords(t *testing.T) {
	tests := []struct {
		name  string
		codes []byte
		want  []key.Event
	}{
		{"ctrl+l", []byte{CodeLeftCtrl, CodeL, Break(CodeL), Break(CodeLeftCtrl)}, []key.Event{key.ClearScreen}},
		{"ctrl+u", []byte{CodeLeftCtrl, CodeU}, []key.Event{key.KillLine}},
		{"right ctrl+l", []byte{PrefixExtended, CodeLeftCtrl, CodeL}, []key.Event{key.ClearScreen}},
		{"ctrl+a discarded", []byte{CodeLeftCtrl, 0x1E}, nil},
		{"ctrl released", []byte{CodeLeftCtrl, Break(CodeLeftCtrl), CodeL}, []key.Event{key.Printable('l')}},
		{"right ctrl released", []byte{PrefixExtended, CodeLeftCtrl, PrefixExtended, Break(CodeLeftCtrl), CodeU}, []key.Event{key.Printable('u')}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := feed(NewDecoder(), tt.codes...)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("events mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecoderPauseSequence(t *testing.T) {
	d := NewDecoder()

	got := feed(d, 0xE1, 0x1D, 0x45, 0xE1, 0x9D, 0xC5, 0x1E)
	want := []key.Event{key.Printable('a')}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if d.Modifiers().Ctrl() {
		t.Error("pause sequence left ctrl held")
	}
}

func TestDecoderOverrunReleasesModifiers(t *testing.T) {
	for _, errByte := range []byte{KeyError, Overrun} {
		d := NewDecoder()
		feed(d, CodeCapsLock, CodeLeftShift, CodeLeftCtrl)

		// The shift and ctrl releases were lost in the overrun.
		feed(d, errByte)

		mods := d.Modifiers()
		if mods.Shift() || mods.Ctrl() {
			t.Errorf("after %#x modifiers = %v, want only Caps", errByte, mods)
		}
		if !mods.CapsLock() {
			t.Errorf("after %#x caps lock latch was lost", errByte)
		}
		got := feed(d, 0x1E)
		if len(got) != 1 || got[0] != key.Printable('A') {
			t.Errorf("after %#x typed %v, want A", errByte, got)
		}
	}
}

func TestDecoderOverrunAfterPrefix(t *testing.T) {
	tests := []struct {
		name   string
		prefix []byte
	}{
		{"extended", []byte{PrefixExtended}},
		{"pause", []byte{PrefixPause, 0x1D}},
	}

	for _, tt := range tests {
		for _, errByte := range []byte{KeyError, Overrun} {
			d := NewDecoder()
			feed(d, CodeLeftShift, CodeLeftCtrl)
			feed(d, tt.prefix...)

			feed(d, errByte)

			if d.State() != StateIdle {
				t.Errorf("%s: after %#x State() = %v, want Idle", tt.name, errByte, d.State())
			}
			if mods := d.Modifiers(); mods.Shift() || mods.Ctrl() {
				t.Errorf("%s: after %#x modifiers = %v, want none", tt.name, errByte, mods)
			}
			got := feed(d, 0x1E)
			if len(got) != 1 || got[0] != key.Printable('a') {
				t.Errorf("%s: after %#x typed %v, want a", tt.name, errByte, got)
			}
		}
	}
}

func TestDecoderReset(t *testing.T) {
	d := NewDecoder()
	feed(d, CodeLeftShift, PrefixExtended)

	d.Reset()

	if d.State() != StateIdle {
		t.Errorf("State() = %v, want Idle", d.State())
	}
	if d.Modifiers().Shift() {
		t.Error("Reset() left shift held")
	}
}

func TestDecoderEveryLayoutKey(t *testing.T) {
	d := NewDecoder()

	const want = "1234567890-=qwertyuiop[]asdfghjkl;'`\\zxcvbnm,./* -+"
	var got []byte
	for code := byte(0x01); code < 0x59; code++ {
		if code == CodeLeftCtrl || code == CodeCapsLock {
			continue
		}
		if ev, ok := d.Feed(code); ok && ev.IsPrintable() {
			got = append(got, ev.Char)
		}
		d.Feed(Break(code))
	}
	if string(got) != want {
		t.Errorf("typed %q, want %q", got, want)
	}
}
