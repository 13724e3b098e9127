// Package kernel connects the console to the PC keyboard controller.
//
// The port and CPU operations are interfaces so the controller logic runs
// unchanged under test; the baremetal build supplies the real ones.
package kernel

import "github.com/dshills/oxconsole/internal/console"

// i8042 keyboard controller and 8259 PIC ports.
const (
	DataPort   uint16 = 0x60
	StatusPort uint16 = 0x64
	PICCommand uint16 = 0x20

	statusOutputFull byte = 0x01
	picEOI           byte = 0x20
)

// Ports performs port I/O.
type Ports interface {
	Inb(port uint16) byte
	Outb(port uint16, value byte)
}

// CPU gates interrupts and idles the processor.
type CPU interface {
	DisableInterrupts()
	EnableInterrupts()
	InterruptsEnabled() bool
	Halt()
}

// Keyboard feeds scancodes from the controller into a console.
type Keyboard struct {
	ports   Ports
	cpu     CPU
	console *console.Console
}

// NewKeyboard creates a keyboard driver for con.
func NewKeyboard(ports Ports, cpu CPU, con *console.Console) *Keyboard {
	return &Keyboard{ports: ports, cpu: cpu, console: con}
}

// IRQ handles one keyboard interrupt: it reads the pending byte, hands it
// to the console and acknowledges the PIC.
func (k *Keyboard) IRQ() {
	code := k.ports.Inb(DataPort)
	k.console.HandleScancode(code)
	k.ports.Outb(PICCommand, picEOI)
}

// Poll reads one byte if the controller has one. The status check and the
// read happen with interrupts disabled so an IRQ handler cannot steal the
// byte in between; the caller's interrupt flag is restored afterwards.
// It reports whether a byte was handled.
func (k *Keyboard) Poll() bool {
	enabled := k.cpu.InterruptsEnabled()
	k.cpu.DisableInterrupts()
	var code byte
	ready := k.ports.Inb(StatusPort)&statusOutputFull != 0
	if ready {
		code = k.ports.Inb(DataPort)
	}
	if enabled {
		k.cpu.EnableInterrupts()
	}

	if !ready {
		return false
	}
	k.console.HandleScancode(code)
	return true
}

// Run polls forever, halting until the next interrupt whenever the
// controller is empty. done is checked once per iteration; nil means never.
func (k *Keyboard) Run(done func() bool) {
	for done == nil || !done() {
		if !k.Poll() {
			k.cpu.Halt()
		}
	}
}
