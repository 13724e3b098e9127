package config

import (
	"fmt"
	"strings"

	"github.com/dshills/oxconsole/internal/input/scancode"
	"github.com/dshills/oxconsole/internal/vga"
)

// Config is the simulator configuration.
type Config struct {
	Display DisplayConfig `toml:"display" yaml:"display"`
	Console ConsoleConfig `toml:"console" yaml:"console"`
	Log     LogConfig     `toml:"log" yaml:"log"`
}

// DisplayConfig sizes and colors the character grid.
type DisplayConfig struct {
	Columns    int    `toml:"columns" yaml:"columns"`
	Rows       int    `toml:"rows" yaml:"rows"`
	Foreground string `toml:"foreground" yaml:"foreground"`
	Background string `toml:"background" yaml:"background"`
}

// ConsoleConfig controls the line editor and command surface.
type ConsoleConfig struct {
	Prompt  string `toml:"prompt" yaml:"prompt"`
	Banner  string `toml:"banner" yaml:"banner"`
	Logo    bool   `toml:"logo" yaml:"logo"`
	MaxLine int    `toml:"max_line" yaml:"max_line"`
	Layout  string `toml:"layout" yaml:"layout"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file" yaml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Display: DisplayConfig{
			Columns:    vga.DefaultColumns,
			Rows:       vga.DefaultRows,
			Foreground: vga.LightGrey.String(),
			Background: vga.Black.String(),
		},
		Console: ConsoleConfig{
			Prompt: "> ",
			Banner: "OxOS Command Line",
			Layout: scancode.US.Name,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Limits on the grid size.
const (
	MinColumns = 20
	MaxColumns = 250
	MinRows    = 2
	MaxRows    = 100
)

// Validate checks every field and returns all problems at once.
func (c Config) Validate() error {
	var errs ValidationErrors

	if c.Display.Columns < MinColumns || c.Display.Columns > MaxColumns {
		errs = append(errs, &ValidationError{
			Field:   "display.columns",
			Value:   c.Display.Columns,
			Message: fmt.Sprintf("must be between %d and %d", MinColumns, MaxColumns),
		})
	}
	if c.Display.Rows < MinRows || c.Display.Rows > MaxRows {
		errs = append(errs, &ValidationError{
			Field:   "display.rows",
			Value:   c.Display.Rows,
			Message: fmt.Sprintf("must be between %d and %d", MinRows, MaxRows),
		})
	}
	if _, err := vga.ParseColor(c.Display.Foreground); err != nil {
		errs = append(errs, &ValidationError{Field: "display.foreground", Value: c.Display.Foreground, Message: err.Error()})
	}
	if _, err := vga.ParseColor(c.Display.Background); err != nil {
		errs = append(errs, &ValidationError{Field: "display.background", Value: c.Display.Background, Message: err.Error()})
	}
	if len(c.Console.Prompt) >= c.Display.Columns/2 {
		errs = append(errs, &ValidationError{
			Field:   "console.prompt",
			Value:   c.Console.Prompt,
			Message: "must be shorter than half the display width",
		})
	}
	if !printable(c.Console.Prompt) {
		errs = append(errs, &ValidationError{Field: "console.prompt", Value: c.Console.Prompt, Message: "must be printable ASCII"})
	}
	if c.Console.MaxLine < 0 {
		errs = append(errs, &ValidationError{Field: "console.max_line", Value: c.Console.MaxLine, Message: "must not be negative"})
	}
	if _, ok := scancode.Layouts[strings.ToLower(c.Console.Layout)]; !ok {
		errs = append(errs, &ValidationError{Field: "console.layout", Value: c.Console.Layout, Message: "unknown layout"})
	}
	if !ValidLogLevel(c.Log.Level) {
		errs = append(errs, &ValidationError{
			Field:   "log.level",
			Value:   c.Log.Level,
			Message: "must be debug, info, warn, or error",
		})
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Attribute returns the VGA attribute for the configured colors.
// It assumes the configuration has been validated.
func (c Config) Attribute() vga.Attribute {
	fg, err := vga.ParseColor(c.Display.Foreground)
	if err != nil {
		fg = vga.LightGrey
	}
	bg, err := vga.ParseColor(c.Display.Background)
	if err != nil {
		bg = vga.Black
	}
	return vga.MakeAttribute(fg, bg)
}

// Layout returns the configured keyboard layout, defaulting to US.
func (c Config) Layout() *scancode.Layout {
	if l, ok := scancode.Layouts[strings.ToLower(c.Console.Layout)]; ok {
		return l
	}
	return scancode.US
}

// ValidLogLevel reports whether s names a log level. Case is ignored and
// "warning" is accepted as a spelling of "warn".
func ValidLogLevel(s string) bool {
	switch strings.ToLower(s) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

func printable(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7E {
			return false
		}
	}
	return true
}
