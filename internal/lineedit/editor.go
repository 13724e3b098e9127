// Package lineedit accumulates key events into a single pending command
// line and echoes every edit to the display.
package lineedit

import "github.com/dshills/oxconsole/internal/input/key"

// DefaultPrompt is written before every pending line.
const DefaultPrompt = "> "

// Display is the part of the display surface the editor echoes to.
type Display interface {
	WriteChar(c byte)
	WriteString(s string)
	EraseLast()
	Clear()
	Size() (columns, rows int)
}

// SubmitFunc receives each submitted line.
type SubmitFunc func(line string)

// Editor owns the pending line and its cursor index.
//
// The pending line never grows past Capacity, which is bounded so that
// prompt plus line always fit on one display row. The display therefore
// never wraps while echoing and EraseLast never needs to cross a row.
type Editor struct {
	out      Display
	submit   SubmitFunc
	prompt   string
	capacity int

	buf    []byte
	cursor int
}

// Option configures an Editor.
type Option func(*Editor)

// WithPrompt sets the prompt. An empty prompt is allowed.
func WithPrompt(p string) Option {
	return func(e *Editor) {
		e.prompt = p
	}
}

// WithCapacity limits the pending line length. Values that would let the
// line wrap are clamped; non-positive values select the maximum.
func WithCapacity(n int) Option {
	return func(e *Editor) {
		e.capacity = n
	}
}

// New creates an editor echoing to out and passing submitted lines to
// submit, which may be nil.
func New(out Display, submit SubmitFunc, opts ...Option) *Editor {
	e := &Editor{
		out:    out,
		submit: submit,
		prompt: DefaultPrompt,
	}
	for _, opt := range opts {
		opt(e)
	}

	cols, _ := out.Size()
	limit := cols - len(e.prompt) - 1
	if limit < 0 {
		limit = 0
	}
	if e.capacity <= 0 || e.capacity > limit {
		e.capacity = limit
	}
	e.buf = make([]byte, 0, e.capacity)
	return e
}

// Prompt returns the prompt string.
func (e *Editor) Prompt() string {
	return e.prompt
}

// Capacity returns the maximum pending line length.
func (e *Editor) Capacity() int {
	return e.capacity
}

// Line returns a snapshot of the pending line.
func (e *Editor) Line() string {
	return string(e.buf)
}

// Cursor returns the cursor index, 0..len(Line()).
func (e *Editor) Cursor() int {
	return e.cursor
}

// Start writes the prompt.
func (e *Editor) Start() {
	e.out.WriteString(e.prompt)
}

// Redraw writes the prompt followed by the pending line.
func (e *Editor) Redraw() {
	e.out.WriteString(e.prompt)
	for _, c := range e.buf {
		e.out.WriteChar(c)
	}
}

// Handle applies one key event. It returns false when the event was
// discarded: a printable character on a full line, a control byte, or an
// erase with nothing to erase.
func (e *Editor) Handle(ev key.Event) bool {
	switch ev.Kind {
	case key.KindPrintable:
		return e.insert(ev.Char)
	case key.KindErase:
		return e.erase()
	case key.KindSubmit:
		e.enter()
	case key.KindClearScreen:
		e.out.Clear()
		e.Redraw()
	case key.KindKillLine:
		e.kill()
	default:
		return false
	}
	return true
}

// Full reports whether the pending line is at capacity.
func (e *Editor) Full() bool {
	return len(e.buf) >= e.capacity
}

func (e *Editor) insert(c byte) bool {
	if c < 0x20 || c == 0x7F {
		return false
	}
	if e.Full() {
		return false
	}

	e.buf = append(e.buf, 0)
	copy(e.buf[e.cursor+1:], e.buf[e.cursor:])
	e.buf[e.cursor] = c
	e.cursor++

	e.out.WriteChar(c)
	return true
}

func (e *Editor) erase() bool {
	if e.cursor == 0 {
		return false
	}

	copy(e.buf[e.cursor-1:], e.buf[e.cursor:])
	e.buf = e.buf[:len(e.buf)-1]
	e.cursor--

	e.out.EraseLast()
	return true
}

func (e *Editor) enter() {
	e.out.WriteChar('\n')

	line := string(e.buf)
	if e.submit != nil {
		e.submit(line)
	}

	e.buf = e.buf[:0]
	e.cursor = 0

	e.out.WriteString(e.prompt)
}

func (e *Editor) kill() {
	for range e.buf {
		e.out.EraseLast()
	}
	e.buf = e.buf[:0]
	e.cursor = 0
}
