package script

import (
	"context"
	"fmt"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/oxconsole/internal/input/scancode"
	"github.com/dshills/oxconsole/internal/vga"
)

// Target is the console a script drives. *console.Console satisfies it.
type Target interface {
	Feed(codes []byte)
	Surface() *vga.Surface
	Line() string
}

// Logger receives script print output and step tracing.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
}

// Runner executes scripts against a Target.
type Runner struct {
	state   *State
	target  Target
	encoder *scancode.Encoder
	logger  Logger
	step    func()

	checks  int
	failure *ExpectationError
}

// RunnerOption configures a Runner.
type RunnerOption func(*runnerConfig)

type runnerConfig struct {
	layout  *scancode.Layout
	logger  Logger
	step    func()
	timeout time.Duration
}

// WithLayout selects the layout used to turn text into scancodes.
func WithLayout(l *scancode.Layout) RunnerOption {
	return func(c *runnerConfig) {
		c.layout = l
	}
}

// WithLogger sets the logger for print output.
func WithLogger(l Logger) RunnerOption {
	return func(c *runnerConfig) {
		c.logger = l
	}
}

// WithStepHook registers fn to run after every input the script delivers,
// for example to present the display.
func WithStepHook(fn func()) RunnerOption {
	return func(c *runnerConfig) {
		c.step = fn
	}
}

// WithRunTimeout bounds each script run.
func WithRunTimeout(d time.Duration) RunnerOption {
	return func(c *runnerConfig) {
		c.timeout = d
	}
}

// NewRunner creates a runner bound to target.
func NewRunner(target Target, opts ...RunnerOption) *Runner {
	cfg := runnerConfig{
		layout:  scancode.US,
		logger:  nopLogger{},
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Runner{
		state:   NewState(WithTimeout(cfg.timeout)),
		target:  target,
		encoder: scancode.NewEncoder(cfg.layout),
		logger:  cfg.logger,
		step:    cfg.step,
	}
	r.register()
	return r
}

// RunFile executes the script at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	r.failure = nil
	err := r.state.DoFile(ctx, path)
	return r.result(err)
}

// RunString executes a script held in memory.
func (r *Runner) RunString(ctx context.Context, code string) error {
	r.failure = nil
	err := r.state.DoString(ctx, code)
	return r.result(err)
}

// result prefers the recorded expectation over the Lua error wrapping it.
func (r *Runner) result(err error) error {
	if err == nil {
		return nil
	}
	if r.failure != nil {
		return r.failure
	}
	return err
}

// Checks returns the number of expectations that passed.
func (r *Runner) Checks() int {
	return r.checks
}

// Close releases the Lua state.
func (r *Runner) Close() error {
	return r.state.Close()
}

func (r *Runner) register() {
	funcs := map[string]lua.LGFunction{
		"type":        r.luaType,
		"key":         r.luaKey,
		"scancode":    r.luaScancode,
		"row":         r.luaRow,
		"cursor":      r.luaCursor,
		"line":        r.luaLine,
		"screen":      r.luaScreen,
		"expect_row":  r.luaExpectRow,
		"expect_line": r.luaExpectLine,
		"wait":        r.luaWait,
		"print":       r.luaPrint,
	}
	for name, fn := range funcs {
		r.state.RegisterFunc(name, fn)
	}
}

func (r *Runner) feed(codes []byte) {
	if len(codes) == 0 {
		return
	}
	r.target.Feed(codes)
	if r.step != nil {
		r.step()
	}
}

// type(text)
func (r *Runner) luaType(L *lua.LState) int {
	text := L.CheckString(1)
	r.logger.Debug("type %q", text)
	for i := 0; i < len(text); i++ {
		codes, ok := r.encoder.AppendChar(nil, text[i])
		if !ok {
			L.ArgError(1, fmt.Sprintf("cannot type %q", text[i]))
			return 0
		}
		r.feed(codes)
	}
	return 0
}

// key(name)
func (r *Runner) luaKey(L *lua.LState) int {
	name := L.CheckString(1)
	codes, ok := r.encoder.EncodeKey(name)
	if !ok {
		L.ArgError(1, fmt.Sprintf("unknown key %q", name))
		return 0
	}
	r.logger.Debug("key %s", name)
	r.feed(codes)
	return 0
}

// scancode(b, ...)
func (r *Runner) luaScancode(L *lua.LState) int {
	n := L.GetTop()
	if n == 0 {
		L.ArgError(1, "at least one scancode expected")
		return 0
	}
	codes := make([]byte, 0, n)
	for i := 1; i <= n; i++ {
		v := L.CheckInt(i)
		if v < 0 || v > 0xFF {
			L.ArgError(i, "scancode out of range")
			return 0
		}
		codes = append(codes, byte(v))
	}
	r.feed(codes)
	return 0
}

// row(n) -> string
func (r *Runner) luaRow(L *lua.LState) int {
	n := r.checkRow(L, 1)
	L.Push(lua.LString(r.target.Surface().Row(n)))
	return 1
}

// cursor() -> col, row
func (r *Runner) luaCursor(L *lua.LState) int {
	col, row := r.target.Surface().Cursor()
	L.Push(lua.LNumber(col))
	L.Push(lua.LNumber(row))
	return 2
}

// line() -> string
func (r *Runner) luaLine(L *lua.LState) int {
	L.Push(lua.LString(r.target.Line()))
	return 1
}

// screen() -> string
func (r *Runner) luaScreen(L *lua.LState) int {
	L.Push(lua.LString(r.target.Surface().Text()))
	return 1
}

// expect_row(n, s)
func (r *Runner) luaExpectRow(L *lua.LState) int {
	n := r.checkRow(L, 1)
	want := L.CheckString(2)
	got := r.target.Surface().Row(n)
	r.expect(L, fmt.Sprintf("row %d", n), got, want)
	return 0
}

// expect_line(s)
func (r *Runner) luaExpectLine(L *lua.LState) int {
	want := L.CheckString(1)
	r.expect(L, "line", r.target.Line(), want)
	return 0
}

func (r *Runner) expect(L *lua.LState, check, got, want string) {
	if got == want {
		r.checks++
		return
	}
	r.failure = &ExpectationError{Check: check, Got: got, Want: want}
	L.RaiseError("%s", r.failure.Error())
}

// wait(ms)
func (r *Runner) luaWait(L *lua.LState) int {
	ms := L.CheckInt(1)
	if ms <= 0 {
		return 0
	}
	ctx := L.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	t := time.NewTimer(time.Duration(ms) * time.Millisecond)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
		L.RaiseError("wait interrupted: %v", ctx.Err())
	}
	return 0
}

// print(...)
func (r *Runner) luaPrint(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	r.logger.Info("script: %s", strings.Join(parts, "\t"))
	return 0
}

func (r *Runner) checkRow(L *lua.LState, idx int) int {
	n := L.CheckInt(idx)
	_, rows := r.target.Surface().Size()
	if n < 0 || n >= rows {
		L.ArgError(idx, fmt.Sprintf("row %d out of range [0, %d)", n, rows))
	}
	return n
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
