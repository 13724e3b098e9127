//go:build baremetal

// Package hal exposes the handful of x86 instructions the console needs
// on bare metal: port I/O and interrupt gating.
package hal

// Inb reads a byte from an I/O port.
func Inb(port uint16) byte

// Outb writes a byte to an I/O port.
func Outb(port uint16, value byte)

// DisableInterrupts clears the interrupt flag.
func DisableInterrupts()

// EnableInterrupts sets the interrupt flag.
func EnableInterrupts()

// InterruptsEnabled reports whether the interrupt flag is set.
func InterruptsEnabled() bool

// Halt stops the CPU until the next interrupt.
func Halt()
