package complete

// Completer ties a Machine to the directory depth it was compiled for,
// so the caller can reuse the automaton across keystrokes and only
// rebuild when typing moves into a different directory.
type Completer struct {
	depth   int
	machine *Machine
}

// NewCompleter returns a Completer with no compiled automaton; the
// first Stale check always reports true.
func NewCompleter() *Completer {
	return &Completer{depth: -1}
}

// Stale reports whether the automaton must be recompiled before it can
// extend the given trailing segment: there is no automaton yet, the
// edited path's directory depth changed, or the segment is empty
// (typing just crossed a separator).
func (c *Completer) Stale(depth int, segment string) bool {
	return c.machine == nil || depth != c.depth || segment == ""
}

// Rebuild compiles a fresh automaton over names for the given depth.
func (c *Completer) Rebuild(depth int, names []string) {
	c.depth = depth
	c.machine = Compile(names)
}

// Extend returns the unambiguous continuation of segment. The second
// return is false when segment matches none of the compiled names or no
// automaton has been built.
func (c *Completer) Extend(segment string) (string, bool) {
	if c.machine == nil {
		return "", false
	}
	return c.machine.Complete(segment)
}
