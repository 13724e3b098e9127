package app

import (
	"context"
	"errors"
	"runtime/debug"

	"github.com/dshills/oxconsole/internal/config"
	"github.com/dshills/oxconsole/internal/renderer/backend"
)

// Run presents the console on the backend and feeds it host keys until
// the user quits or ctx is canceled. If a script is
// configured it is replayed first, drawing after every input.
func (app *Application) Run(ctx context.Context) (err error) {
	if app.backend == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	defer func() {
		if r := recover(); r != nil {
			err = &RecoveredPanicError{Value: r, Stack: string(debug.Stack())}
		}
	}()

	app.checkFit()
	app.start()
	app.present()

	if app.opts.Watch && app.opts.ConfigPath != "" {
		if err := app.startWatcher(); err != nil {
			app.logger.Warn("config watch disabled: %v", err)
		}
	}

	stop := context.AfterFunc(ctx, func() {
		app.backend.PostEvent(backend.Event{Type: backend.EventWake})
	})
	defer stop()

	if app.opts.ScriptPath != "" {
		if err := app.runScript(ctx, app.opts.ScriptPath, app.present); err != nil {
			return err
		}
	}

	for {
		ev := app.backend.PollEvent()
		if ctx.Err() != nil {
			return nil
		}
		if err := app.handleEvent(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
	}
}

// handleEvent processes one backend event.
// Returns ErrQuit if the application should exit.
func (app *Application) handleEvent(ev backend.Event) error {
	if backend.IsQuit(ev) {
		return ErrQuit
	}

	switch ev.Type {
	case backend.EventKey:
		codes := backend.Scancodes(app.encoder, ev)
		app.metrics.RecordKey(len(codes))
		if len(codes) == 0 {
			return nil
		}
		rejected := app.console.Stats().Rejected
		app.console.Feed(codes)
		if app.console.Stats().Rejected > rejected {
			app.backend.Beep()
		}
		app.present()

	case backend.EventResize:
		app.frame.Invalidate()
		app.checkFit()
		app.present()

	case backend.EventWake:
		if app.applyPending() {
			app.present()
		}
	}
	return nil
}

func (app *Application) present() {
	timer := StartTimer()
	cells := app.frame.Present(app.buffer)
	app.metrics.RecordFrame(timer.Elapsed(), cells)
}

func (app *Application) checkFit() {
	cols, rows := app.buffer.Size()
	if !app.frame.Fits(cols, rows) {
		w, h := app.backend.Size()
		app.logger.Warn("%v: need %dx%d, have %dx%d", ErrScreenTooSmall, cols, rows, w, h)
	}
}

func (app *Application) startWatcher() error {
	log := app.logger.WithComponent("config")
	w, err := config.NewWatcher(app.loader, app.opts.ConfigPath,
		func(cfg config.Config) {
			app.metrics.RecordReload(nil)
			app.mu.Lock()
			app.pending = &cfg
			app.mu.Unlock()
			app.backend.PostEvent(backend.Event{Type: backend.EventWake})
		},
		func(err error) {
			app.metrics.RecordReload(err)
			log.Warn("reload failed: %v", err)
		},
	)
	if err != nil {
		return err
	}

	app.mu.Lock()
	app.watcher = w
	app.mu.Unlock()
	log.Debug("watching %s", app.opts.ConfigPath)
	return nil
}

// applyPending applies a reloaded configuration on the event loop
// goroutine. Only colors and the log level change live.
func (app *Application) applyPending() bool {
	app.mu.Lock()
	cfg := app.pending
	app.pending = nil
	if cfg != nil {
		app.cfg.Display.Foreground = cfg.Display.Foreground
		app.cfg.Display.Background = cfg.Display.Background
		app.cfg.Log.Level = cfg.Log.Level
	}
	app.mu.Unlock()

	if cfg == nil {
		return false
	}

	app.surface.Recolor(cfg.Attribute())
	if app.opts.LogLevel == "" {
		app.logger.SetLevel(ParseLogLevel(cfg.Log.Level))
	}
	if cfg.Display.Columns != app.cfg.Display.Columns || cfg.Display.Rows != app.cfg.Display.Rows ||
		cfg.Console.Prompt != app.cfg.Console.Prompt || cfg.Console.Layout != app.cfg.Console.Layout {
		app.logger.Warn("config reloaded; console geometry changes need a restart")
	} else {
		app.logger.Info("config reloaded")
	}
	app.frame.Invalidate()
	return true
}
