package key

import "strings"

// Modifier is the set of held modifier keys plus the Caps Lock latch.
// Left and right keys are tracked separately so releasing one side
// never clears a key still held on the other.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModLeftShift is the left Shift key.
	ModLeftShift Modifier = 1 << iota

	// ModRightShift is the right Shift key.
	ModRightShift

	// ModLeftCtrl is the left Control key.
	ModLeftCtrl

	// ModRightCtrl is the right Control key.
	ModRightCtrl

	// ModCapsLock is the Caps Lock latch. It toggles on press.
	ModCapsLock
)

// held is every modifier that is tracked by press/release edges.
const held = ModLeftShift | ModRightShift | ModLeftCtrl | ModRightCtrl

// Has returns true if m contains any bit of mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// Shift returns true if either Shift key is held.
func (m Modifier) Shift() bool {
	return m.Has(ModLeftShift | ModRightShift)
}

// Ctrl returns true if either Control key is held.
func (m Modifier) Ctrl() bool {
	return m.Has(ModLeftCtrl | ModRightCtrl)
}

// CapsLock returns true if the Caps Lock latch is on.
func (m Modifier) CapsLock() bool {
	return m.Has(ModCapsLock)
}

// With returns a new Modifier with mod added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with mod removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// Toggle returns a new Modifier with mod flipped.
func (m Modifier) Toggle(mod Modifier) Modifier {
	return m ^ mod
}

// Released returns m with every held key released. Latches survive.
func (m Modifier) Released() Modifier {
	return m &^ held
}

// String returns a representation like "LShift+RCtrl+Caps".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.Has(ModLeftShift) {
		parts = append(parts, "LShift")
	}
	if m.Has(ModRightShift) {
		parts = append(parts, "RShift")
	}
	if m.Has(ModLeftCtrl) {
		parts = append(parts, "LCtrl")
	}
	if m.Has(ModRightCtrl) {
		parts = append(parts, "RCtrl")
	}
	if m.Has(ModCapsLock) {
		parts = append(parts, "Caps")
	}
	return strings.Join(parts, "+")
}
