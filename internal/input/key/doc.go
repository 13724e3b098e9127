// Package key defines the logical key events that flow from the scancode
// decoder to the line editor, and the modifier state the decoder tracks.
//
// An Event is one of:
//
//   - Printable: a single character to insert
//   - Submit: the line is complete (Enter)
//   - Erase: delete the character before the cursor (Backspace)
//   - ClearScreen: clear the display and redraw the pending line (Ctrl+L)
//   - KillLine: discard the pending line (Ctrl+U)
//
// Events carry no state and are consumed exactly once.
package key
