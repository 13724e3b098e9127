package console

import (
	"sync/atomic"

	"github.com/dshills/oxconsole/internal/dispatcher"
	"github.com/dshills/oxconsole/internal/input/key"
	"github.com/dshills/oxconsole/internal/input/scancode"
	"github.com/dshills/oxconsole/internal/lineedit"
	"github.com/dshills/oxconsole/internal/vga"
)

// System identification shown by the about command.
const (
	SystemName    = "OxOS"
	SystemVersion = "0.1.0"
)

// DefaultBanner is written once by Start.
const DefaultBanner = SystemName + " Command Line\n"

// Logo is the boot logo Start writes above the banner when enabled.
const Logo = `   ____        ____
  / __ \__  _/ __ \
 / / / / / / / / / /
/ /_/ / /_/ / /_/ /
\____/\__,_/\____/
      ` + SystemName + `

`

// Logger receives trace output. The app's leveled logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
}

// Stats counts pipeline activity.
type Stats struct {
	// Scancodes is the number of bytes processed.
	Scancodes uint64

	// Events is the number of key events the decoder emitted.
	Events uint64

	// Lines is the number of submitted lines.
	Lines uint64

	// Unknown is the number of lines naming no command.
	Unknown uint64

	// Rejected is the number of characters discarded on a full line.
	Rejected uint64

	// Dropped is the number of bytes lost because the re-entry queue was full.
	Dropped uint64
}

// Console is the interactive console subsystem.
// Create it with New; the zero value is not usable.
type Console struct {
	surface    *vga.Surface
	decoder    *scancode.Decoder
	editor     *lineedit.Editor
	dispatcher *dispatcher.Dispatcher

	banner string
	logo   bool
	logger Logger

	busy    atomic.Bool
	pending queue
	stats   Stats
}

// Option configures a Console.
type Option func(*config)

type config struct {
	prompt  string
	banner  string
	logo    bool
	maxLine int
	layout  *scancode.Layout
	info    dispatcher.Info
	logger  Logger
}

// WithPrompt sets the prompt written before each line.
func WithPrompt(p string) Option {
	return func(c *config) {
		c.prompt = p
	}
}

// WithBanner sets the text written by Start. Empty disables it.
func WithBanner(b string) Option {
	return func(c *config) {
		c.banner = b
	}
}

// WithLogo makes Start write the boot logo before the banner.
func WithLogo(enabled bool) Option {
	return func(c *config) {
		c.logo = enabled
	}
}

// WithMaxLine caps the pending line length. See lineedit.WithCapacity.
func WithMaxLine(n int) Option {
	return func(c *config) {
		c.maxLine = n
	}
}

// WithLayout selects the keyboard layout.
func WithLayout(l *scancode.Layout) Option {
	return func(c *config) {
		c.layout = l
	}
}

// WithInfo sets the identification printed by about.
func WithInfo(info dispatcher.Info) Option {
	return func(c *config) {
		c.info = info
	}
}

// WithLogger enables trace output.
func WithLogger(l Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// New builds a console rendering to surface.
func New(surface *vga.Surface, opts ...Option) *Console {
	cfg := config{
		prompt: lineedit.DefaultPrompt,
		banner: DefaultBanner,
		layout: scancode.US,
		info:   dispatcher.Info{Name: SystemName, Version: SystemVersion},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Console{
		surface:    surface,
		decoder:    scancode.NewDecoder(scancode.WithLayout(cfg.layout)),
		dispatcher: dispatcher.New(dispatcher.DefaultTable(cfg.info), surface),
		banner:     cfg.banner,
		logo:       cfg.logo,
		logger:     cfg.logger,
	}
	c.editor = lineedit.New(surface, c.submit,
		lineedit.WithPrompt(cfg.prompt),
		lineedit.WithCapacity(cfg.maxLine),
	)
	return c
}

// Start writes the logo, the banner and the first prompt.
func (c *Console) Start() {
	if c.logo {
		c.surface.WriteString(Logo)
	}
	if c.banner != "" {
		c.surface.WriteString(c.banner)
		if c.banner[len(c.banner)-1] != '\n' {
			c.surface.WriteChar('\n')
		}
	}
	c.editor.Start()
}

// HandleScancode processes one keyboard byte.
//
// A call made while another is still running (a nested interrupt) only
// queues the byte; the running call processes it before returning, so
// partial state is never observed and arrival order is kept.
func (c *Console) HandleScancode(code byte) {
	if !c.busy.CompareAndSwap(false, true) {
		if !c.pending.push(code) {
			c.stats.Dropped++
		}
		return
	}

	c.process(code)
	for {
		for {
			b, ok := c.pending.pop()
			if !ok {
				break
			}
			c.process(b)
		}
		c.busy.Store(false)

		// A byte may have been queued between the last pop and the store.
		if c.pending.empty() || !c.busy.CompareAndSwap(false, true) {
			return
		}
	}
}

// Feed processes a sequence of bytes in order.
func (c *Console) Feed(codes []byte) {
	for _, b := range codes {
		c.HandleScancode(b)
	}
}

// Reset drops decoder state after the keyboard controller was reset.
func (c *Console) Reset() {
	c.decoder.Reset()
}

// Surface returns the display surface.
func (c *Console) Surface() *vga.Surface {
	return c.surface
}

// Line returns the pending line.
func (c *Console) Line() string {
	return c.editor.Line()
}

// Cursor returns the cursor index within the pending line.
func (c *Console) Cursor() int {
	return c.editor.Cursor()
}

// Modifiers returns the decoder's modifier state.
func (c *Console) Modifiers() key.Modifier {
	return c.decoder.Modifiers()
}

// Commands returns the command names.
func (c *Console) Commands() []string {
	return c.dispatcher.Table().Names()
}

// Stats returns a copy of the counters.
func (c *Console) Stats() Stats {
	return c.stats
}

func (c *Console) process(code byte) {
	c.stats.Scancodes++

	ev, ok := c.decoder.Feed(code)
	if !ok {
		return
	}
	c.stats.Events++
	if c.logger != nil {
		c.logger.Debug("scancode %#02x: %s", code, ev)
	}

	if !c.editor.Handle(ev) && ev.Kind == key.KindPrintable && c.editor.Full() {
		c.stats.Rejected++
	}
}

func (c *Console) submit(line string) {
	c.stats.Lines++

	status := c.dispatcher.Dispatch(line)
	if status == dispatcher.StatusUnknown {
		c.stats.Unknown++
	}
	if c.logger != nil {
		c.logger.Debug("line %q: %s", line, status)
	}
}
