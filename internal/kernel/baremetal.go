//go:build baremetal

package kernel

import (
	"github.com/dshills/oxconsole/internal/console"
	"github.com/dshills/oxconsole/internal/hal"
	"github.com/dshills/oxconsole/internal/vga"
)

type hardware struct{}

func (hardware) Inb(port uint16) byte         { return hal.Inb(port) }
func (hardware) Outb(port uint16, value byte) { hal.Outb(port, value) }
func (hardware) DisableInterrupts()           { hal.DisableInterrupts() }
func (hardware) EnableInterrupts()            { hal.EnableInterrupts() }
func (hardware) InterruptsEnabled() bool      { return hal.InterruptsEnabled() }
func (hardware) Halt()                        { hal.Halt() }

var keyboard *Keyboard

// Init builds the console on the VGA text buffer and prints the banner and
// first prompt. Call it once, with interrupts disabled, before enabling
// the keyboard IRQ.
func Init() *console.Console {
	surface := vga.NewSurface(vga.NewMMIO(vga.TextBufferAddr))
	con := console.New(surface, console.WithLogo(true))
	keyboard = NewKeyboard(hardware{}, hardware{}, con)
	con.Start()
	return con
}

// KeyboardIRQ is the body of the IRQ1 handler.
func KeyboardIRQ() {
	if keyboard == nil {
		hal.Inb(DataPort)
		hal.Outb(PICCommand, picEOI)
		return
	}
	keyboard.IRQ()
}

// Run services the keyboard by polling and never returns.
func Run() {
	keyboard.Run(nil)
}
