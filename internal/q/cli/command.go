package cli

// RunFunc handles a selected command.
type RunFunc func(c *Context) error

// ArgsFunc checks the positional args before Run is called. Mistakes the user can fix should come back as a UsageError.
type ArgsFunc func(args []string) error

// Command is a node in a command tree. The root is the program itself; children are subcommands selected by the first positional token.
type Command struct {
	Name    string   // token that selects the command; for the root, the program name shown in help
	Aliases []string // other tokens that select it

	// Use names the positional args in the usage line, e.g. "OLD NEW". Empty means "[args]" when the command runs, nothing otherwise.
	Use string

	Short   string // one line, shown in the parent's command list
	Long    string
	Example string

	Args ArgsFunc // nil accepts anything
	Run  RunFunc  // nil makes a subcommand required

	parent          *Command
	children        []*Command
	localFlags      *FlagSet
	persistentFlags *FlagSet
}

// AddCommand attaches children to c. It panics on a nil child, a child that already has a parent, or a child without a name.
func (c *Command) AddCommand(children ...*Command) {
	for _, child := range children {
		switch {
		case child == nil:
			panic("cli: AddCommand: nil command")
		case child.parent != nil:
			panic("cli: AddCommand: " + child.Name + " already has a parent")
		case child.Name == "":
			panic("cli: AddCommand: command without a name")
		}
		child.parent = c
		c.children = append(c.children, child)
	}
}

// Commands returns a copy of c's children in the order they were added.
func (c *Command) Commands() []*Command {
	return append([]*Command(nil), c.children...)
}

// Flags returns the flags that only c accepts.
func (c *Command) Flags() *FlagSet {
	if c.localFlags == nil {
		c.localFlags = newFlagSet()
	}
	return c.localFlags
}

// PersistentFlags returns the flags c shares with all of its descendants.
func (c *Command) PersistentFlags() *FlagSet {
	if c.persistentFlags == nil {
		c.persistentFlags = newFlagSet()
	}
	return c.persistentFlags
}

func (c *Command) childByToken(token string) *Command {
	for _, child := range c.children {
		if child.selectedBy(token) {
			return child
		}
	}
	return nil
}

func (c *Command) selectedBy(token string) bool {
	if c.Name == token {
		return true
	}
	for _, alias := range c.Aliases {
		if alias == token {
			return true
		}
	}
	return false
}

// pathFromRoot returns the commands from the root down to c.
func (c *Command) pathFromRoot() []*Command {
	depth := 0
	for cur := c; cur != nil; cur = cur.parent {
		depth++
	}
	path := make([]*Command, depth)
	for cur := c; cur != nil; cur = cur.parent {
		depth--
		path[depth] = cur
	}
	return path
}
