package dispatcher

// Status reports how a line was handled.
type Status uint8

const (
	// StatusEmpty means the line held no command.
	StatusEmpty Status = iota

	// StatusOK means a command ran to completion.
	StatusOK

	// StatusUnknown means no command matched.
	StatusUnknown

	// StatusPanicked means the handler panicked and was recovered.
	StatusPanicked
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusOK:
		return "ok"
	case StatusUnknown:
		return "unknown"
	case StatusPanicked:
		return "panicked"
	default:
		return "invalid"
	}
}

// Dispatcher runs submitted lines against a Table.
type Dispatcher struct {
	table *Table
	out   Output
}

// New creates a dispatcher writing to out.
func New(table *Table, out Output) *Dispatcher {
	return &Dispatcher{table: table, out: out}
}

// Table returns the command table.
func (d *Dispatcher) Table() *Table {
	return d.table
}

// Dispatch parses line and runs the matching command.
func (d *Dispatcher) Dispatch(line string) Status {
	name, args := Split(line)
	if name == "" {
		return StatusEmpty
	}

	cmd, ok := d.table.Lookup(name)
	if !ok {
		d.out.WriteString("Unknown command: ")
		d.out.WriteString(name)
		endLine(d.out)
		return StatusUnknown
	}

	return d.run(cmd, args)
}

func (d *Dispatcher) run(cmd Command, args string) (status Status) {
	defer func() {
		if r := recover(); r != nil {
			d.out.WriteString(cmd.Name)
			d.out.WriteString(": internal error")
			endLine(d.out)
			status = StatusPanicked
		}
	}()

	cmd.Handler.Handle(args, d.out)
	return StatusOK
}

// Split separates the command token from the argument text. Leading
// whitespace and the whitespace run after the token are dropped; the
// rest of the line is returned unchanged.
func Split(line string) (name, args string) {
	i := 0
	for i < len(line) && isSpace(line[i]) {
		i++
	}
	start := i
	for i < len(line) && !isSpace(line[i]) {
		i++
	}
	name = line[start:i]
	for i < len(line) && isSpace(line[i]) {
		i++
	}
	return name, line[i:]
}

// endLine finishes a notice. A notice that filled its last row has
// already wrapped to column 0 and needs no newline.
func endLine(out Output) {
	if col, _ := out.Cursor(); col != 0 {
		out.WriteChar('\n')
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}
