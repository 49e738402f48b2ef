package vfs

import (
	"path"
	"strings"
	"sync"
	"time"

	"pickd/internal/errors"
)

// Memory is an in-memory Backend for tests and demos. Paths are
// slash-separated regardless of host platform; the root directory "/"
// always exists.
type Memory struct {
	mu      sync.Mutex
	nodes   map[string]*memNode
	volumes []Entry
}

type memNode struct {
	kind    EntryKind
	size    int64
	modTime time.Time
}

// NewMemory returns an empty in-memory backend containing only "/".
func NewMemory() *Memory {
	return &Memory{nodes: map[string]*memNode{
		"/": {kind: KindDir},
	}}
}

// Separator reports the slash separator used by all Memory paths.
func (m *Memory) Separator() string { return "/" }

// AddDir seeds a directory, creating missing parents. Returns m for
// chaining.
func (m *Memory) AddDir(p string) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seedDir(memClean(p))
	return m
}

// AddFile seeds a file of the given size, creating missing parent
// directories. Returns m for chaining.
func (m *Memory) AddFile(p string, size int64) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = memClean(p)
	m.seedDir(path.Dir(p))
	m.nodes[p] = &memNode{kind: KindFile, size: size, modTime: time.Now()}
	return m
}

// AddSystem seeds an entry with unreadable metadata (KindUnknown), the
// in-memory stand-in for sockets, broken links and the like. Returns m
// for chaining.
func (m *Memory) AddSystem(p string) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = memClean(p)
	m.seedDir(path.Dir(p))
	m.nodes[p] = &memNode{kind: KindUnknown}
	return m
}

// SetVolumes installs synthetic volume roots surfaced by Volumes in the
// given order. Returns m for chaining.
func (m *Memory) SetVolumes(roots ...string) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volumes = m.volumes[:0]
	for _, root := range roots {
		m.volumes = append(m.volumes, Entry{Name: root, Path: root, Kind: KindDir})
		if _, ok := m.nodes[memClean(root)]; !ok {
			m.nodes[memClean(root)] = &memNode{kind: KindDir}
		}
	}
	return m
}

// Volumes returns the seeded volume roots in enumeration order.
func (m *Memory) Volumes() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.volumes))
	copy(out, m.volumes)
	return out
}

// CreateDir creates a single directory level.
func (m *Memory) CreateDir(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = memClean(p)
	if _, ok := m.nodes[p]; ok {
		return errors.NewPathError("create directory failed", p, errors.AlreadyExists, nil)
	}
	parent, ok := m.nodes[path.Dir(p)]
	if !ok {
		return errors.NewPathError("create directory failed", p, errors.NotFound, nil)
	}
	if parent.kind != KindDir {
		return errors.NewPathError("create directory failed", p, errors.NotADirectory, nil)
	}
	m.nodes[p] = &memNode{kind: KindDir, modTime: time.Now()}
	return nil
}

// Rename moves a node and, for directories, everything beneath it. An
// existing target is overwritten.
func (m *Memory) Rename(from, to string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	from, to = memClean(from), memClean(to)
	node, ok := m.nodes[from]
	if !ok {
		return errors.NewPathError("rename failed", from, errors.NotFound, nil)
	}
	parent, ok := m.nodes[path.Dir(to)]
	if !ok {
		return errors.NewPathError("rename failed", to, errors.NotFound, nil)
	}
	if parent.kind != KindDir {
		return errors.NewPathError("rename failed", to, errors.NotADirectory, nil)
	}

	m.dropSubtree(to)
	if node.kind == KindDir {
		prefix := from + "/"
		moved := map[string]*memNode{}
		for p, n := range m.nodes {
			if strings.HasPrefix(p, prefix) {
				moved[to+"/"+strings.TrimPrefix(p, prefix)] = n
				delete(m.nodes, p)
			}
		}
		for p, n := range moved {
			m.nodes[p] = n
		}
	}
	m.nodes[to] = node
	delete(m.nodes, from)
	return nil
}

// ReadFolder lists the direct children of p.
func (m *Memory) ReadFolder(p string, opts ReadOptions) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = memClean(p)
	dir, ok := m.nodes[p]
	if !ok {
		return nil, errors.NewPathError("read folder failed", p, errors.NotFound, nil)
	}
	if dir.kind != KindDir {
		return nil, errors.NewPathError("read folder failed", p, errors.NotADirectory, nil)
	}

	var out []Entry
	for np, node := range m.nodes {
		if np == p || path.Dir(np) != p {
			continue
		}
		e := Entry{
			Name:    path.Base(np),
			Path:    np,
			Kind:    node.kind,
			Size:    node.size,
			ModTime: node.modTime,
		}
		if !keepEntry(e, opts) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *Memory) seedDir(p string) {
	for _, missing := range missingChain(m.nodes, p) {
		m.nodes[missing] = &memNode{kind: KindDir}
	}
}

func (m *Memory) dropSubtree(p string) {
	delete(m.nodes, p)
	prefix := p + "/"
	for np := range m.nodes {
		if strings.HasPrefix(np, prefix) {
			delete(m.nodes, np)
		}
	}
}

// missingChain returns p and its missing ancestors, outermost first.
func missingChain(nodes map[string]*memNode, p string) []string {
	var chain []string
	for p != "/" {
		if _, ok := nodes[p]; ok {
			break
		}
		chain = append([]string{p}, chain...)
		p = path.Dir(p)
	}
	return chain
}

func memClean(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
