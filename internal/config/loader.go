package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "OXCONSOLE_"

// Loader reads configuration from a file and the environment.
type Loader struct {
	readFile func(string) ([]byte, error)
	lookup   func(string) (string, bool)
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithReadFile replaces the file reader, for tests.
func WithReadFile(fn func(string) ([]byte, error)) LoaderOption {
	return func(l *Loader) {
		l.readFile = fn
	}
}

// WithLookupEnv replaces the environment lookup, for tests.
func WithLookupEnv(fn func(string) (string, bool)) LoaderOption {
	return func(l *Loader) {
		l.lookup = fn
	}
}

// NewLoader creates a loader reading the real file system and environment.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		readFile: os.ReadFile,
		lookup:   os.LookupEnv,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load builds the configuration. An empty path skips the file layer.
func (l *Loader) Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := l.readFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := Decode(path, data, &cfg); err != nil {
			return cfg, err
		}
	}

	if err := l.applyEnv(&cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Load builds the configuration with the default loader.
func Load(path string) (Config, error) {
	return NewLoader().Load(path)
}

// Decode parses data into cfg, choosing the format from the extension of
// path. Keys missing from data keep their current values.
func Decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", "":
		return decodeTOML(path, data, cfg)
	case ".yaml", ".yml":
		return decodeYAML(path, data, cfg)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func decodeTOML(path string, data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		perr := &ParseError{Path: path, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	return nil
}

func decodeYAML(path string, data []byte, cfg *Config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return nil
}

// envBinding maps an environment variable suffix to a setter.
type envBinding struct {
	name string
	set  func(cfg *Config, val string) error
}

var envBindings = []envBinding{
	{"COLUMNS", intSetter(func(c *Config) *int { return &c.Display.Columns })},
	{"ROWS", intSetter(func(c *Config) *int { return &c.Display.Rows })},
	{"FOREGROUND", stringSetter(func(c *Config) *string { return &c.Display.Foreground })},
	{"BACKGROUND", stringSetter(func(c *Config) *string { return &c.Display.Background })},
	{"PROMPT", stringSetter(func(c *Config) *string { return &c.Console.Prompt })},
	{"BANNER", stringSetter(func(c *Config) *string { return &c.Console.Banner })},
	{"LOGO", boolSetter(func(c *Config) *bool { return &c.Console.Logo })},
	{"MAX_LINE", intSetter(func(c *Config) *int { return &c.Console.MaxLine })},
	{"LAYOUT", stringSetter(func(c *Config) *string { return &c.Console.Layout })},
	{"LOG_LEVEL", stringSetter(func(c *Config) *string { return &c.Log.Level })},
	{"LOG_FILE", stringSetter(func(c *Config) *string { return &c.Log.File })},
}

// applyEnv overrides cfg from OXCONSOLE_* variables. Empty values are
// valid values, not unset.
func (l *Loader) applyEnv(cfg *Config) error {
	for _, b := range envBindings {
		val, ok := l.lookup(EnvPrefix + b.name)
		if !ok {
			continue
		}
		if err := b.set(cfg, val); err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, b.name, err)
		}
	}
	return nil
}

func intSetter(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, val string) error {
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func boolSetter(field func(*Config) *bool) func(*Config, string) error {
	return func(c *Config, val string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}

func stringSetter(field func(*Config) *string) func(*Config, string) error {
	return func(c *Config, val string) error {
		*field(c) = val
		return nil
	}
}
