// Package console wires the scancode decoder, line editor, dispatcher and
// display surface into one owned subsystem.
//
// A Console is built once at startup and handed to whatever delivers
// keyboard bytes: the IRQ1 handler on bare metal, the terminal loop or a
// script in the hosted simulator. HandleScancode is the single entry
// point; it runs decode, edit, dispatch and render synchronously and in
// arrival order.
//
// Data flows one way:
//
//	scancode -> Decoder -> Editor -> (submit) -> Dispatcher -> Surface
//
// with the Editor also echoing straight to the Surface.
package console
