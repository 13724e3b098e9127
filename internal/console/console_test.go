package console

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/oxconsole/internal/input/scancode"
	"github.com/dshills/oxconsole/internal/vga"
)

var encoder = scancode.NewEncoder(scancode.US)

func newTestConsole(opts ...Option) *Console {
	c := New(vga.NewSurface(vga.NewBuffer(vga.DefaultColumns, vga.DefaultRows)), opts...)
	c.Start()
	return c
}

func typeText(c *Console, s string) {
	c.Feed(encoder.EncodeString(s))
}

func rows(c *Console, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = c.Surface().Row(i)
	}
	return out
}

func TestConsoleStart(t *testing.T) {
	c := newTestConsole()

	want := []string{"OxOS Command Line", ">"}
	if diff := cmp.Diff(want, rows(c, 2)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestConsoleStartWithLogo(t *testing.T) {
	c := newTestConsole(WithLogo(true))

	want := []string{
		"   ____        ____",
		"  / __ \\__  _/ __ \\",
		" / / / / / / / / / /",
		"/ /_/ / /_/ / /_/ /",
		"\\____/\\__,_/\\____/",
		"      OxOS",
		"",
		"OxOS Command Line",
		">",
	}
	if diff := cmp.Diff(want, rows(c, len(want))); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestConsoleStartNoBanner(t *testing.T) {
	c := newTestConsole(WithBanner(""), WithPrompt("$ "))

	if got := c.Surface().Text(); got != "$" {
		t.Errorf("Text() = %q, want %q", got, "$")
	}
}

func TestConsoleBannerWithoutNewline(t *testing.T) {
	c := newTestConsole(WithBanner("hi"))

	want := []string{"hi", ">"}
	if diff := cmp.Diff(want, rows(c, 2)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestConsoleEcho(t *testing.T) {
	c := newTestConsole(WithBanner(""))

	typeText(c, "echo hello world\n")

	want := []string{"> echo hello world", "hello world", ">"}
	if diff := cmp.Diff(want, rows(c, 3)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if got := c.Line(); got != "" {
		t.Errorf("Line() = %q, want empty", got)
	}
}

func TestConsoleEchoNoArgs(t *testing.T) {
	c := newTestConsole(WithBanner(""))

	typeText(c, "echo\n")

	want := []string{"> echo", ">", ""}
	if diff := cmp.Diff(want, rows(c, 3)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestConsoleEmptySubmit(t *testing.T) {
	c := newTestConsole(WithBanner(""))

	typeText(c, "\n")

	want := []string{">", ">", ""}
	if diff := cmp.Diff(want, rows(c, 3)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if st := c.Stats(); st.Lines != 1 || st.Unknown != 0 {
		t.Errorf("Stats() = %+v, want one line, no unknown", st)
	}
}

func TestConsoleUnknownCommand(t *testing.T) {
	c := newTestConsole(WithBanner(""))

	typeText(c, "ls\n")

	want := []string{"> ls", "Unknown command: ls", ">"}
	if diff := cmp.Diff(want, rows(c, 3)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if st := c.Stats(); st.Unknown != 1 {
		t.Errorf("Stats().Unknown = %d, want 1", st.Unknown)
	}

	// Still responsive.
	typeText(c, "echo ok\n")
	want = []string{"> ls", "Unknown command: ls", "> echo ok", "ok", ">"}
	if diff := cmp.Diff(want, rows(c, 5)); diff != "" {
		t.Errorf("rows after echo mismatch (-want +got):\n%s", diff)
	}
}

func TestConsoleClear(t *testing.T) {
	c := newTestConsole()

	typeText(c, "echo one\necho two\nclear\n")

	if got := c.Surface().Text(); got != ">" {
		t.Errorf("Text() = %q, want %q", got, ">")
	}
	col, row := c.Surface().Cursor()
	if col != 2 || row != 0 {
		t.Errorf("Cursor() = (%d, %d), want (2, 0)", col, row)
	}
}

func TestConsoleClearWithoutPrompt(t *testing.T) {
	c := newTestConsole(WithPrompt(""))

	typeText(c, "echo x\nclear\n")

	col, row := c.Surface().Cursor()
	if col != 0 || row != 0 {
		t.Errorf("Cursor() = (%d, %d), want (0, 0)", col, row)
	}
	if got := c.Surface().Text(); got != "" {
		t.Errorf("Text() = %q, want empty", got)
	}
}

func TestConsoleDoubleLetter(t *testing.T) {
	c := newTestConsole(WithBanner(""))

	// "letter" has a doubled t; "aa" is two makes with no break at all.
	typeText(c, "letter")
	c.Feed([]byte{0x1E, 0x1E})

	if got := c.Line(); got != "letteraa" {
		t.Errorf("Line() = %q, want %q", got, "letteraa")
	}
}

func TestConsoleSpaceAndBackspace(t *testing.T) {
	c := newTestConsole(WithBanner(""))

	typeText(c, "a b")
	if got := c.Line(); got != "a b" {
		t.Fatalf("Line() = %q, want %q", got, "a b")
	}

	typeText(c, "\b\b")
	if got := c.Line(); got != "a" {
		t.Errorf("Line() = %q, want %q", got, "a")
	}
	if got := c.Surface().Row(0); got != "> a" {
		t.Errorf("Row(0) = %q, want %q", got, "> a")
	}
	if got := c.Cursor(); got != 1 {
		t.Errorf("Cursor() = %d, want 1", got)
	}
}

func TestConsoleShiftMidLine(t *testing.T) {
	c := newTestConsole(WithBanner(""))

	// h, Shift down, e l, Shift up, l o.
	c.Feed([]byte{0x23, 0xA3})
	c.Feed([]byte{scancode.CodeLeftShift, 0x12, 0x92, 0x26, 0xA6, scancode.Break(scancode.CodeLeftShift)})
	c.Feed([]byte{0x26, 0xA6, 0x18, 0x98})

	if got := c.Line(); got != "hELlo" {
		t.Errorf("Line() = %q, want %q", got, "hELlo")
	}
	if c.Modifiers().Shift() {
		t.Error("shift held after release")
	}
}

func TestConsoleCtrlChords(t *testing.T) {
	c := newTestConsole(WithBanner(""))

	typeText(c, "echo a\nabc")
	typeText(c, string(scancode.CtrlU))
	if got := c.Line(); got != "" {
		t.Fatalf("Line() after Ctrl+U = %q, want empty", got)
	}

	typeText(c, "xy")
	typeText(c, string(scancode.CtrlL))
	if got := c.Surface().Text(); got != "> xy" {
		t.Errorf("Text() after Ctrl+L = %q, want %q", got, "> xy")
	}
}

func TestConsoleLineLengthBound(t *testing.T) {
	c := newTestConsole(WithBanner(""))

	typeText(c, strings.Repeat("x", 200))

	if got := len(c.Line()); got != vga.DefaultColumns-3 {
		t.Errorf("len(Line()) = %d, want %d", got, vga.DefaultColumns-3)
	}
	_, row := c.Surface().Cursor()
	if row != 0 {
		t.Errorf("echo wrapped to row %d", row)
	}
	if got, want := c.Stats().Rejected, uint64(200-(vga.DefaultColumns-3)); got != want {
		t.Errorf("Stats().Rejected = %d, want %d", got, want)
	}
}

func TestConsoleScrollsAtBottom(t *testing.T) {
	c := newTestConsole(WithBanner(""))

	for i := 0; i < 30; i++ {
		typeText(c, fmt.Sprintf("echo %d\n", i))
	}

	s := c.Surface()
	_, rowsN := s.Size()
	if got := s.Row(rowsN - 1); got != ">" {
		t.Errorf("bottom row = %q, want prompt", got)
	}
	if got := s.Row(rowsN - 2); got != "29" {
		t.Errorf("second to last row = %q, want %q", got, "29")
	}
}

func TestConsoleHelp(t *testing.T) {
	c := newTestConsole(WithBanner(""))

	typeText(c, "help\n")

	if got := c.Surface().Row(1); got != "Commands: echo clear help about" {
		t.Errorf("Row(1) = %q", got)
	}
	if diff := cmp.Diff([]string{"echo", "clear", "help", "about"}, c.Commands()); diff != "" {
		t.Errorf("Commands() mismatch (-want +got):\n%s", diff)
	}
}

// reentrantLogger feeds bytes back into the console from inside a call,
// the way a nested keyboard interrupt would.
type reentrantLogger struct {
	c      *Console
	inject []byte
	done   bool
}

func (l *reentrantLogger) Debug(string, ...any) {
	if l.done {
		return
	}
	l.done = true
	for _, b := range l.inject {
		l.c.HandleScancode(b)
	}
}

func TestConsoleReentrantCallsAreQueued(t *testing.T) {
	logger := &reentrantLogger{}
	c := New(vga.NewSurface(vga.NewBuffer(40, 5)), WithBanner(""), WithLogger(logger))
	logger.c = c
	logger.inject = encoder.EncodeString("bc")
	c.Start()

	// 'a' is decoded; while it is being handled "bc" arrives.
	c.Feed(encoder.EncodeString("a"))

	if got := c.Line(); got != "abc" {
		t.Errorf("Line() = %q, want %q", got, "abc")
	}
	if got := c.Surface().Row(0); got != "> abc" {
		t.Errorf("Row(0) = %q, want %q", got, "> abc")
	}
}

func TestConsoleReentryQueueOverflow(t *testing.T) {
	logger := &reentrantLogger{}
	c := New(vga.NewSurface(vga.NewBuffer(40, 5)), WithBanner(""), WithLogger(logger))
	logger.c = c
	// 20 taps is 40 bytes, more than the queue holds.
	logger.inject = encoder.EncodeString(strings.Repeat("z", 20))
	c.Start()

	c.Feed(encoder.EncodeString("a"))

	st := c.Stats()
	if st.Dropped != 40-queueSize {
		t.Errorf("Stats().Dropped = %d, want %d", st.Dropped, 40-queueSize)
	}
	if got := c.Line(); got != "a"+strings.Repeat("z", queueSize/2) {
		t.Errorf("Line() = %q", got)
	}
}

func TestConsoleStats(t *testing.T) {
	c := newTestConsole()

	typeText(c, "ab\n")

	st := c.Stats()
	if st.Scancodes != 6 {
		t.Errorf("Scancodes = %d, want 6", st.Scancodes)
	}
	if st.Events != 3 {
		t.Errorf("Events = %d, want 3", st.Events)
	}
	if st.Lines != 1 {
		t.Errorf("Lines = %d, want 1", st.Lines)
	}
}
