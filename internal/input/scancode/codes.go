package scancode

// Set 1 make codes used by the decoder. The break code of a key is its
// make code with BreakBit set.
const (
	CodeEscape     byte = 0x01
	CodeBackspace  byte = 0x0E
	CodeTab        byte = 0x0F
	CodeU          byte = 0x16
	CodeEnter      byte = 0x1C
	CodeLeftCtrl   byte = 0x1D
	CodeL          byte = 0x26
	CodeLeftShift  byte = 0x2A
	CodeSlash      byte = 0x35
	CodeRightShift byte = 0x36
	CodeLeftAlt    byte = 0x38
	CodeSpace      byte = 0x39
	CodeCapsLock   byte = 0x3A
)

// Protocol bytes.
const (
	// BreakBit marks a release.
	BreakBit byte = 0x80

	// PrefixExtended introduces a two-byte extended code.
	PrefixExtended byte = 0xE0

	// PrefixPause introduces the six-byte Pause sequence.
	PrefixPause byte = 0xE1

	// KeyError is sent on key detection error or internal buffer overrun.
	KeyError byte = 0x00

	// Overrun is KeyError in the alternate encoding.
	Overrun byte = 0xFF
)

// pauseTail is the number of bytes following PrefixPause.
const pauseTail = 5

// IsBreak reports whether code is a release.
func IsBreak(code byte) bool {
	return code&BreakBit != 0
}

// Make strips the break bit.
func Make(code byte) byte {
	return code &^ BreakBit
}

// Break returns the release code for a make code.
func Break(code byte) byte {
	return code | BreakBit
}
