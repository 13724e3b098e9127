package key

import "fmt"

// Kind tags the variant of an Event.
type Kind uint8

const (
	// KindNone is the zero Kind; no event.
	KindNone Kind = iota

	// KindPrintable carries a character in Event.Char.
	KindPrintable

	// KindSubmit ends the pending line.
	KindSubmit

	// KindErase removes the character before the cursor.
	KindErase

	// KindClearScreen clears the display.
	KindClearScreen

	// KindKillLine discards the pending line.
	KindKillLine
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindPrintable:
		return "Printable"
	case KindSubmit:
		return "Submit"
	case KindErase:
		return "Erase"
	case KindClearScreen:
		return "ClearScreen"
	case KindKillLine:
		return "KillLine"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}
