package config

import (
	"errors"
	"testing"

	"github.com/dshills/oxconsole/internal/input/scancode"
	"github.com/dshills/oxconsole/internal/vga"
)

func TestValidLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  bool
	}{
		{"debug", true},
		{"INFO", true},
		{"Warn", true},
		{"warning", true},
		{"ERROR", true},
		{"", false},
		{"trace", false},
	}

	for _, tt := range tests {
		if got := ValidLogLevel(tt.level); got != tt.want {
			t.Errorf("ValidLogLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		fields []string
	}{
		{"narrow", func(c *Config) { c.Display.Columns = 5 }, []string{"display.columns", "console.prompt"}},
		{"narrow without prompt", func(c *Config) {
			c.Display.Columns = 5
			c.Console.Prompt = ""
		}, []string{"display.columns"}},
		{"tall", func(c *Config) { c.Display.Rows = 500 }, []string{"display.rows"}},
		{"bad colors", func(c *Config) {
			c.Display.Foreground = "mauve"
			c.Display.Background = ""
		}, []string{"display.foreground", "display.background"}},
		{"long prompt", func(c *Config) { c.Console.Prompt = "this prompt is far too long for the screen width >" }, []string{"console.prompt"}},
		{"control in prompt", func(c *Config) { c.Console.Prompt = "\t>" }, []string{"console.prompt"}},
		{"negative max line", func(c *Config) { c.Console.MaxLine = -1 }, []string{"console.max_line"}},
		{"layout", func(c *Config) { c.Console.Layout = "dvorak-klingon" }, []string{"console.layout"}},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, []string{"log.level"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("Validate() = %v, want ErrValidationFailed", err)
			}
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Validate() error type %T, want ValidationErrors", err)
			}
			if len(verrs) != len(tt.fields) {
				t.Fatalf("got %d errors (%v), want %d", len(verrs), err, len(tt.fields))
			}
			for i, f := range tt.fields {
				if verrs[i].Field != f {
					t.Errorf("error %d field = %q, want %q", i, verrs[i].Field, f)
				}
			}
		})
	}
}

func TestAttribute(t *testing.T) {
	cfg := Default()
	if got := cfg.Attribute(); got != vga.DefaultAttribute {
		t.Errorf("default Attribute() = %#x, want %#x", got, vga.DefaultAttribute)
	}

	cfg.Display.Foreground = "Yellow"
	cfg.Display.Background = "blue"
	if got, want := cfg.Attribute(), vga.MakeAttribute(vga.Yellow, vga.Blue); got != want {
		t.Errorf("Attribute() = %#x, want %#x", got, want)
	}
}

func TestLayout(t *testing.T) {
	cfg := Default()
	if cfg.Layout() != scancode.US {
		t.Errorf("Layout() = %v, want US", cfg.Layout().Name)
	}
	cfg.Console.Layout = "nonsense"
	if cfg.Layout() != scancode.US {
		t.Error("unknown layout should fall back to US")
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	one := ValidationErrors{{Field: "a", Value: 1, Message: "bad"}}
	if got, want := one.Error(), "a: bad (got 1)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	two := append(one, &ValidationError{Field: "b", Value: "x", Message: "worse"})
	if got, want := two.Error(), "2 validation errors: a: bad (got 1); b: worse (got x)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestParseErrorMessage(t *testing.T) {
	tests := []struct {
		err  *ParseError
		want string
	}{
		{&ParseError{Path: "c.toml", Line: 3, Column: 7, Message: "x"}, "parse error in c.toml at line 3, column 7: x"},
		{&ParseError{Path: "c.toml", Line: 3, Message: "x"}, "parse error in c.toml at line 3: x"},
		{&ParseError{Path: "c.yaml", Message: "x"}, "parse error in c.yaml: x"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}

	inner := errors.New("inner")
	if !errors.Is(&ParseError{Err: inner}, inner) {
		t.Error("ParseError should unwrap to its cause")
	}
}
