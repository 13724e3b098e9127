package key

import "fmt"

// Event is a decoded key event.
type Event struct {
	// Kind identifies the variant.
	Kind Kind

	// Char is the character for KindPrintable events; zero otherwise.
	Char byte
}

// Printable returns a Printable event for c.
func Printable(c byte) Event {
	return Event{Kind: KindPrintable, Char: c}
}

// Common control events.
var (
	Submit      = Event{Kind: KindSubmit}
	Erase       = Event{Kind: KindErase}
	ClearScreen = Event{Kind: KindClearScreen}
	KillLine    = Event{Kind: KindKillLine}
)

// IsPrintable reports whether e carries a character.
func (e Event) IsPrintable() bool {
	return e.Kind == KindPrintable
}

// String returns a canonical representation like Printable('a') or Submit.
func (e Event) String() string {
	if e.Kind == KindPrintable {
		return fmt.Sprintf("Printable(%q)", rune(e.Char))
	}
	return e.Kind.String()
}
