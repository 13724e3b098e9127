// Package scancode decodes PC keyboard scancode set 1 into key events.
//
// The Decoder is driven one byte per keyboard interrupt. It remembers
// nothing between bytes except the modifier state and whether an 0xE0
// (or 0xE1) prefix is pending; in particular it never compares a code
// with the previous one, so typematic repeats and back-to-back presses
// of the same key each produce one event.
//
// The Encoder goes the other way. Hosts that deliver characters rather
// than raw scancodes (terminals, scripts) use it to synthesize the
// make/break sequence a real keyboard would send.
package scancode
