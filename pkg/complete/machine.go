// Package complete implements filename completion over a prefix
// automaton. The automaton is compiled from the sibling names of the
// directory being typed into and answers a single question: given the
// bytes typed so far, what is the unambiguous continuation?
package complete

// Machine is a byte-level prefix automaton over a fixed set of names.
// States are node indices; state 0 is the root.
type Machine struct {
	nodes []node
}

type node struct {
	accepting bool
	edges     []edge
}

type edge struct {
	label byte
	next  int32
}

// Compile builds a Machine accepting exactly the given names.
func Compile(names []string) *Machine {
	m := &Machine{nodes: make([]node, 1, len(names)*4+1)}
	for _, name := range names {
		m.insert(name)
	}
	return m
}

func (m *Machine) insert(name string) {
	state := int32(0)
	for i := 0; i < len(name); i++ {
		next, ok := m.step(state, name[i])
		if !ok {
			m.nodes = append(m.nodes, node{})
			next = int32(len(m.nodes) - 1)
			m.link(state, name[i], next)
		}
		state = next
	}
	m.nodes[state].accepting = true
}

func (m *Machine) step(state int32, b byte) (int32, bool) {
	for _, e := range m.nodes[state].edges {
		if e.label == b {
			return e.next, true
		}
	}
	return 0, false
}

// link inserts an edge keeping the edge list ordered by label.
func (m *Machine) link(state int32, b byte, next int32) {
	edges := m.nodes[state].edges
	at := len(edges)
	for i, e := range edges {
		if e.label > b {
			at = i
			break
		}
	}
	edges = append(edges, edge{})
	copy(edges[at+1:], edges[at:])
	edges[at] = edge{label: b, next: next}
	m.nodes[state].edges = edges
}

// Contains reports whether name is one of the compiled names.
func (m *Machine) Contains(name string) bool {
	state := int32(0)
	for i := 0; i < len(name); i++ {
		next, ok := m.step(state, name[i])
		if !ok {
			return false
		}
		state = next
	}
	return m.nodes[state].accepting
}

// Complete walks the automaton over prefix. The second return is false
// when prefix matches no compiled name, in which case nothing should be
// appended. When prefix does match, the first return holds the
// unambiguous continuation: bytes are accumulated along unique outgoing
// edges, stopping as soon as a state is accepting or offers zero or
// several continuations. A prefix that is itself a complete name gets
// no continuation.
func (m *Machine) Complete(prefix string) (string, bool) {
	state := int32(0)
	for i := 0; i < len(prefix); i++ {
		next, ok := m.step(state, prefix[i])
		if !ok {
			return "", false
		}
		state = next
	}
	if m.nodes[state].accepting {
		return "", true
	}
	var suffix []byte
	for len(m.nodes[state].edges) == 1 {
		e := m.nodes[state].edges[0]
		suffix = append(suffix, e.label)
		state = e.next
		if m.nodes[state].accepting {
			break
		}
	}
	return string(suffix), true
}
