package domain

// Command is an external process invocation.
type Command struct {
	// Name is the executable.
	Name string
	// Args are passed after the executable.
	Args []string
	// Env holds extra "KEY=VALUE" pairs added to the inherited environment.
	Env []string
	// Dir is the working directory. Empty means the current one.
	Dir string
}

// Argv returns the executable followed by its arguments.
func (c Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}
