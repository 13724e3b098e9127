// Package main is the entry point for the OxOS console simulator.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/dshills/oxconsole/internal/app"
	"github.com/dshills/oxconsole/internal/config"
	"github.com/dshills/oxconsole/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type flags struct {
	opts     app.Options
	headless bool
}

func main() {
	os.Exit(run())
}

func run() int {
	f := parseFlags()

	interactive := !f.headless && isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stdin.Fd())
	if !interactive && f.opts.ScriptPath == "" {
		fmt.Fprintln(os.Stderr, "Error: not a terminal; pass -script to run headless")
		return 2
	}
	f.opts.QuietStderr = interactive && isatty.IsTerminal(os.Stderr.Fd())

	application, err := app.New(f.opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer func() {
		if err := application.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !interactive {
		err := application.RunScript(ctx, f.opts.ScriptPath)
		fmt.Println(application.Screen())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	if err := application.Run(ctx); err != nil && !errors.Is(err, app.ErrQuit) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() flags {
	var f flags
	var showVersion bool

	flag.StringVar(&f.opts.ConfigPath, "config", "", "Path to a TOML or YAML configuration file")
	flag.StringVar(&f.opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&f.opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config")
	flag.StringVar(&f.opts.ScriptPath, "script", "", "Lua script to run against the console")
	flag.StringVar(&f.opts.ScriptPath, "s", "", "Lua script (shorthand)")
	flag.BoolVar(&f.opts.Watch, "watch", false, "Reload colors when the config file changes")
	flag.BoolVar(&f.headless, "headless", false, "Run the script without a terminal and print the final screen")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "oxconsole - OxOS text console simulator\n\n")
		fmt.Fprintf(os.Stderr, "Usage: oxconsole [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys: Ctrl+L clears the screen, Ctrl+U kills the line, Ctrl+C or Ctrl+Q quits.\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  oxconsole                          Interactive console\n")
		fmt.Fprintf(os.Stderr, "  oxconsole -c ox.toml -watch        Live-reload colors\n")
		fmt.Fprintf(os.Stderr, "  oxconsole -headless -s smoke.lua   Scripted run, print the screen\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("oxconsole %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if f.opts.LogLevel != "" && !config.ValidLogLevel(f.opts.LogLevel) {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", f.opts.LogLevel)
		os.Exit(2)
	}

	if f.headless && f.opts.ScriptPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -headless requires -script")
		os.Exit(2)
	}

	return f
}
