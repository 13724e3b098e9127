package dispatcher

// Table is an immutable set of commands. Commands can only be added
// while the table is being built.
type Table struct {
	commands []Command
	index    map[string]int
}

// NewTable builds a table from cmds. Commands with an empty name or a
// nil handler are skipped, and the first command of a given name wins.
func NewTable(cmds ...Command) *Table {
	t := &Table{index: make(map[string]int, len(cmds))}
	for _, c := range cmds {
		t.add(c)
	}
	return t
}

// DefaultTable builds the built-in command table.
func DefaultTable(info Info) *Table {
	t := &Table{index: make(map[string]int, 4)}
	t.add(Command{Name: "echo", Summary: "print the arguments", Handler: echoHandler{}})
	t.add(Command{Name: "clear", Summary: "clear the screen", Handler: clearHandler{}})
	t.add(Command{Name: "help", Summary: "list commands", Handler: helpHandler{table: t}})
	t.add(Command{Name: "about", Summary: "show system information", Handler: aboutHandler{info: info}})
	return t
}

func (t *Table) add(c Command) {
	if c.Name == "" || c.Handler == nil {
		return
	}
	if _, exists := t.index[c.Name]; exists {
		return
	}
	t.index[c.Name] = len(t.commands)
	t.commands = append(t.commands, c)
}

// Lookup returns the command with exactly the given name.
func (t *Table) Lookup(name string) (Command, bool) {
	i, ok := t.index[name]
	if !ok {
		return Command{}, false
	}
	return t.commands[i], true
}

// Names returns the command names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.commands))
	for i, c := range t.commands {
		names[i] = c.Name
	}
	return names
}

// Len returns the number of commands.
func (t *Table) Len() int {
	return len(t.commands)
}
