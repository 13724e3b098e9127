package dispatcher

// Output is the display capability handlers write to.
type Output interface {
	WriteChar(c byte)
	WriteString(s string)
	Clear()
	Cursor() (col, row int)
}

// Handler runs a command.
type Handler interface {
	// Handle executes the command with the argument text.
	Handle(args string, out Output)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(args string, out Output)

// Handle implements Handler.
func (f HandlerFunc) Handle(args string, out Output) {
	f(args, out)
}

// Command binds a name to its handler.
type Command struct {
	// Name is matched exactly against the first token of a line.
	Name string

	// Summary is a one-line description.
	Summary string

	// Handler runs the command.
	Handler Handler
}

// Info identifies the system for the about command.
type Info struct {
	Name    string
	Version string
}

// echoHandler prints its arguments followed by a newline.
type echoHandler struct{}

func (echoHandler) Handle(args string, out Output) {
	if args == "" {
		return
	}
	out.WriteString(args)
	out.WriteChar('\n')
}

// clearHandler clears the display and ignores its arguments.
type clearHandler struct{}

func (clearHandler) Handle(_ string, out Output) {
	out.Clear()
}

// helpHandler lists the commands of its table in table order.
type helpHandler struct {
	table *Table
}

func (h helpHandler) Handle(_ string, out Output) {
	out.WriteString("Commands:")
	for _, c := range h.table.commands {
		out.WriteChar(' ')
		out.WriteString(c.Name)
	}
	out.WriteChar('\n')
}

// aboutHandler prints the system identification.
type aboutHandler struct {
	info Info
}

func (h aboutHandler) Handle(_ string, out Output) {
	out.WriteString(h.info.Name)
	if h.info.Version != "" {
		out.WriteChar(' ')
		out.WriteString(h.info.Version)
	}
	out.WriteString(": interactive text console\n")
	out.WriteString("Type 'help' for a list of commands.\n")
}
