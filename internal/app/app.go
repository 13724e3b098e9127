// Package app runs the console on a host. The console draws into an
// in-memory VGA buffer and is driven from a terminal or a Lua script.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/oxconsole/internal/config"
	"github.com/dshills/oxconsole/internal/console"
	"github.com/dshills/oxconsole/internal/input/scancode"
	"github.com/dshills/oxconsole/internal/renderer/backend"
	"github.com/dshills/oxconsole/internal/script"
	"github.com/dshills/oxconsole/internal/vga"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the path to a TOML or YAML configuration file.
	// Empty means built-in defaults plus environment overrides.
	ConfigPath string

	// LogLevel overrides the configured log level when set.
	LogLevel string

	// ScriptPath is a Lua script to run against the console.
	ScriptPath string

	// Watch reloads the configuration file when it changes.
	Watch bool

	// LogOutput overrides the configured log destination.
	LogOutput io.Writer

	// QuietStderr discards logs that would go to stderr, for runs where
	// stderr is the terminal being drawn on. A configured log file still
	// receives them.
	QuietStderr bool

	// LookupEnv overrides environment lookup for configuration.
	LookupEnv func(string) (string, bool)
}

// Application owns one simulated machine: the VGA buffer, the console
// attached to it, and the host-side plumbing around them.
type Application struct {
	mu sync.Mutex

	opts      Options
	cfg       config.Config
	loader    *config.Loader
	logger    *Logger
	logFile   io.Closer
	sessionID string

	buffer  *vga.Buffer
	surface *vga.Surface
	console *console.Console
	encoder *scancode.Encoder

	backend backend.Backend
	frame   *backend.Frame
	watcher *config.Watcher
	metrics *Metrics

	pending *config.Config
	started bool
	running atomic.Bool
}

// New loads configuration and builds the console.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:      opts,
		sessionID: uuid.NewString(),
		metrics:   NewMetrics(),
	}

	var loaderOpts []config.LoaderOption
	if opts.LookupEnv != nil {
		loaderOpts = append(loaderOpts, config.WithLookupEnv(opts.LookupEnv))
	}
	app.loader = config.NewLoader(loaderOpts...)

	cfg, err := app.loader.Load(opts.ConfigPath)
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	app.cfg = cfg

	if err := app.initLogger(); err != nil {
		return nil, &InitError{Component: "logger", Err: err}
	}

	app.buffer = vga.NewBuffer(cfg.Display.Columns, cfg.Display.Rows)
	app.surface = vga.NewSurface(app.buffer, vga.WithAttribute(cfg.Attribute()))
	app.encoder = scancode.NewEncoder(cfg.Layout())
	app.console = console.New(app.surface,
		console.WithPrompt(cfg.Console.Prompt),
		console.WithBanner(cfg.Console.Banner),
		console.WithLogo(cfg.Console.Logo),
		console.WithMaxLine(cfg.Console.MaxLine),
		console.WithLayout(cfg.Layout()),
		console.WithLogger(app.logger.WithComponent("console")),
	)

	app.logger.Debug("console %dx%d, layout %s, prompt %q",
		cfg.Display.Columns, cfg.Display.Rows, cfg.Layout().Name, cfg.Console.Prompt)
	return app, nil
}

func (app *Application) initLogger() error {
	out := app.opts.LogOutput
	if out == nil && app.cfg.Log.File != "" {
		f, err := os.OpenFile(app.cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		app.logFile = f
		out = f
	}
	if out == nil && app.opts.QuietStderr {
		out = io.Discard
	}

	level := app.cfg.Log.Level
	if app.opts.LogLevel != "" {
		level = app.opts.LogLevel
	}

	cfg := DefaultLoggerConfig()
	cfg.Level = ParseLogLevel(level)
	if out != nil {
		cfg.Output = out
	}
	app.logger = NewLogger(cfg).WithField("session", app.sessionID)
	return nil
}

// SetBackend sets the terminal backend.
// Must be called before Run.
func (app *Application) SetBackend(b backend.Backend) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	app.frame = backend.NewFrame(b)
	return nil
}

// start writes the banner and first prompt once.
func (app *Application) start() {
	if app.started {
		return
	}
	app.started = true
	app.console.Start()
}

// RunScript runs the Lua script at path against the console without a
// terminal. The console is started first if it has not been.
func (app *Application) RunScript(ctx context.Context, path string) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.start()
	return app.runScript(ctx, path, nil)
}

func (app *Application) runScript(ctx context.Context, path string, step func()) error {
	log := app.logger.WithComponent("script")
	runner := script.NewRunner(app.console,
		script.WithLayout(app.cfg.Layout()),
		script.WithLogger(log),
		script.WithStepHook(step),
	)
	defer runner.Close()

	log.Info("running %s", path)
	if err := runner.RunFile(ctx, path); err != nil {
		return NewOperationError("run script", path, err)
	}
	log.Info("%s passed %d checks", path, runner.Checks())
	return nil
}

// Close releases the watcher and log file.
func (app *Application) Close() error {
	var errs ErrorList

	app.mu.Lock()
	w := app.watcher
	app.watcher = nil
	app.mu.Unlock()

	if w != nil {
		errs.Add(w.Close())
	}

	s := app.console.Stats()
	m := app.metrics.Snapshot()
	app.logger.Info("session ended: %d lines, %d scancodes, %d dropped, %d frames",
		s.Lines, s.Scancodes, s.Dropped, m.Frames)

	if app.logFile != nil {
		errs.Add(app.logFile.Close())
		app.logFile = nil
	}
	return errs.AsError()
}

// Config returns the active configuration.
func (app *Application) Config() config.Config {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.cfg
}

// Console returns the console.
func (app *Application) Console() *console.Console {
	return app.console
}

// Screen returns the display text, one line per row.
func (app *Application) Screen() string {
	return app.surface.Text()
}

// SessionID returns the identifier attached to every log line.
func (app *Application) SessionID() string {
	return app.sessionID
}

// Logger returns the application's logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Metrics returns the host-side metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// String describes the simulated machine.
func (app *Application) String() string {
	return fmt.Sprintf("%s %s (%dx%d)", console.SystemName, console.SystemVersion,
		app.cfg.Display.Columns, app.cfg.Display.Rows)
}
