package config

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(data), nil
}

type env map[string]string

func (e env) Lookup(key string) (string, bool) {
	v, ok := e[key]
	return v, ok
}

func newTestLoader(files memFS, vars env) *Loader {
	return NewLoader(WithReadFile(files.ReadFile), WithLookupEnv(vars.Lookup))
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := newTestLoader(memFS{}, env{}).Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load(\"\") mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadTOML(t *testing.T) {
	files := memFS{"/etc/ox.toml": `
[display]
columns = 60
foreground = "white"

[console]
prompt = "$ "
logo = true
`}
	cfg, err := newTestLoader(files, env{}).Load("/etc/ox.toml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Default()
	want.Display.Columns = 60
	want.Display.Foreground = "white"
	want.Console.Prompt = "$ "
	want.Console.Logo = true
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadYAML(t *testing.T) {
	files := memFS{"ox.yml": `
display:
  rows: 30
  background: blue
log:
  level: debug
`}
	cfg, err := newTestLoader(files, env{}).Load("ox.yml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Default()
	want.Display.Rows = 30
	want.Display.Background = "blue"
	want.Log.Level = "debug"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEmptyYAML(t *testing.T) {
	cfg, err := newTestLoader(memFS{"empty.yaml": "\n"}, env{}).Load("empty.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	files := memFS{"ox.toml": "[console]\nprompt = \"$ \"\n"}
	vars := env{
		"OXCONSOLE_PROMPT":    "# ",
		"OXCONSOLE_COLUMNS":   " 100 ",
		"OXCONSOLE_MAX_LINE":  "12",
		"OXCONSOLE_LOG_LEVEL": "warn",
		"OXCONSOLE_BANNER":    "",
		"OXCONSOLE_LOGO":      "true",
		"UNRELATED":           "x",
	}
	cfg, err := newTestLoader(files, vars).Load("ox.toml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Default()
	want.Console.Prompt = "# "
	want.Display.Columns = 100
	want.Console.MaxLine = 12
	want.Log.Level = "warn"
	want.Console.Banner = ""
	want.Console.Logo = true
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	files := memFS{
		"bad.toml":     "[display\ncolumns = 3",
		"unknown.toml": "[display]\nshade = 3\n",
		"bad.yaml":     "display: [1, 2",
		"small.toml":   "[display]\ncolumns = 3\n",
		"conf.ini":     "columns=80",
	}

	tests := []struct {
		name   string
		path   string
		vars   env
		target error
		parse  bool
	}{
		{"missing file", "nope.toml", env{}, fs.ErrNotExist, false},
		{"toml syntax", "bad.toml", env{}, nil, true},
		{"toml unknown key", "unknown.toml", env{}, nil, true},
		{"yaml syntax", "bad.yaml", env{}, nil, true},
		{"invalid value", "small.toml", env{}, ErrValidationFailed, false},
		{"unsupported", "conf.ini", env{}, ErrUnsupportedFormat, false},
		{"bad env int", "", env{"OXCONSOLE_ROWS": "many"}, nil, false},
		{"bad env bool", "", env{"OXCONSOLE_LOGO": "sometimes"}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestLoader(files, tt.vars).Load(tt.path)
			if err == nil {
				t.Fatal("Load succeeded, want error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("Load error = %v, want %v", err, tt.target)
			}
			var perr *ParseError
			if got := errors.As(err, &perr); got != tt.parse {
				t.Errorf("errors.As(ParseError) = %v, want %v (err %v)", got, tt.parse, err)
			}
		})
	}
}

func TestTOMLParseErrorPosition(t *testing.T) {
	cfg := Default()
	err := Decode("x.toml", []byte("[display]\ncolumns = = 3\n"), &cfg)

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Decode error = %v, want ParseError", err)
	}
	if perr.Line != 2 {
		t.Errorf("Line = %d, want 2", perr.Line)
	}
	if perr.Path != "x.toml" {
		t.Errorf("Path = %q, want x.toml", perr.Path)
	}
}
