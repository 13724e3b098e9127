// Package backend presents a character grid on a host terminal and
// reports host input events.
package backend

import (
	"sync"

	"github.com/dshills/oxconsole/internal/vga"
)

// EventType identifies the type of host event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	// EventWake is posted by other goroutines to wake the event loop.
	EventWake
	// EventClosed is returned once the backend has shut down.
	EventClosed
)

// Event represents a host event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Resize event fields
	Width, Height int
}

// Key represents a host keyboard key.
type Key int

// Keys the console can act on. Everything else is KeyOther.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEnter
	KeyBackspace
	KeyTab
	KeyEscape
	KeyCtrlC
	KeyCtrlL
	KeyCtrlQ
	KeyCtrlU
	KeyOther
)

var keyNames = map[Key]string{
	KeyNone:      "None",
	KeyRune:      "Rune",
	KeyEnter:     "Enter",
	KeyBackspace: "Backspace",
	KeyTab:       "Tab",
	KeyEscape:    "Escape",
	KeyCtrlC:     "Ctrl+C",
	KeyCtrlL:     "Ctrl+L",
	KeyCtrlQ:     "Ctrl+Q",
	KeyCtrlU:     "Ctrl+U",
	KeyOther:     "Other",
}

func (k Key) String() string {
	if s, ok := keyNames[k]; ok {
		return s
	}
	return "Unknown"
}

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// Backend is a host display surface for a character grid.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// Size returns the current host dimensions in cells.
	Size() (width, height int)

	// SetCell draws a single VGA cell at the given position.
	// Positions outside the host screen are silently ignored.
	SetCell(x, y int, cell vga.Cell)

	// Clear blanks the host screen.
	Clear()

	// Show flushes pending changes to the host screen.
	Show()

	// ShowCursor positions and displays the cursor.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// PollEvent waits for and returns the next host event.
	// This is a blocking call.
	PollEvent() Event

	// PostEvent posts a synthetic event to the event queue.
	// It is safe to call from any goroutine.
	PostEvent(event Event)

	// Beep produces an audible or visual bell.
	Beep()
}

// NullBackend is an in-memory backend for tests and headless runs.
type NullBackend struct {
	mu            sync.Mutex
	width, height int
	cells         []vga.Cell
	cursorX       int
	cursorY       int
	cursorVisible bool
	shows         int
	beeps         int
	closed        bool
	events        chan Event
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
	}
}

func (b *NullBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cells = make([]vga.Cell, b.width*b.height)
	b.clear()
	return nil
}

func (b *NullBackend) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.closed {
		b.closed = true
		close(b.events)
	}
}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.width, b.height
}

func (b *NullBackend) SetCell(x, y int, cell vga.Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y*b.width+x] = cell
	}
}

// Cell returns the cell drawn at the given position.
func (b *NullBackend) Cell(x, y int) vga.Cell {
	b.mu.Lock()
	defer b.mu.Unlock()

	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y*b.width+x]
	}
	return vga.Blank(vga.DefaultAttribute)
}

func (b *NullBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.clear()
}

func (b *NullBackend) clear() {
	for i := range b.cells {
		b.cells[i] = vga.Blank(vga.DefaultAttribute)
	}
}

func (b *NullBackend) Show() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.shows++
}

func (b *NullBackend) ShowCursor(x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cursorX = x
	b.cursorY = y
	b.cursorVisible = true
}

func (b *NullBackend) HideCursor() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cursorVisible = false
}

// PollEvent returns the next posted event, or EventClosed after Shutdown.
func (b *NullBackend) PollEvent() Event {
	ev, ok := <-b.events
	if !ok {
		return Event{Type: EventClosed}
	}
	return ev
}

func (b *NullBackend) PostEvent(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	select {
	case b.events <- event:
	default:
		// Event dropped if queue is full (non-blocking for testing)
	}
}

// Beep counts the bell.
func (b *NullBackend) Beep() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.beeps++
}

// CursorPosition returns the current cursor position for testing.
func (b *NullBackend) CursorPosition() (x, y int, visible bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.cursorX, b.cursorY, b.cursorVisible
}

// Shows returns how many times Show was called.
func (b *NullBackend) Shows() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.shows
}

// Beeps returns how many times Beep was called.
func (b *NullBackend) Beeps() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.beeps
}

// Resize simulates a host resize for testing.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width = width
	b.height = height
	b.cells = make([]vga.Cell, width*height)
	b.clear()
	b.mu.Unlock()

	b.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}
