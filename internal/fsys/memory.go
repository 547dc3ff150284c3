package fsys

import (
	"io/fs"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

type memEntry struct {
	name    string
	dir     bool
	content []byte
}

type memInfo struct {
	entry *memEntry
}

func (i memInfo) Name() string       { return i.entry.name }
func (i memInfo) Size() int64        { return int64(len(i.entry.content)) }
func (i memInfo) ModTime() time.Time { return time.Time{} }
func (i memInfo) IsDir() bool        { return i.entry.dir }
func (i memInfo) Sys() any           { return i.entry }

func (i memInfo) Mode() fs.FileMode {
	if i.entry.dir {
		return fs.ModeDir | 0755
	}
	return 0644
}

// Memory is an in-memory FileSystem for tests. Paths are cleaned before use
// and relative paths resolve against Cwd.
type Memory struct {
	mu      sync.Mutex
	entries map[string]*memEntry
	renames [][2]string

	// Cwd is returned by Getwd.
	Cwd string
	// RenameErr, when set, is returned by every Rename call.
	RenameErr error
}

// NewMemory creates an empty in-memory filesystem rooted at cwd.
func NewMemory(cwd string) *Memory {
	m := &Memory{
		entries: make(map[string]*memEntry),
		Cwd:     cwd,
	}
	m.entries[filepath.Clean(cwd)] = &memEntry{name: filepath.Base(cwd), dir: true}
	return m
}

func (m *Memory) abs(path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(m.Cwd, path)
	}
	return filepath.Clean(path)
}

// AddFile creates a regular file with the given content.
func (m *Memory) AddFile(path string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.abs(path)
	m.entries[p] = &memEntry{name: filepath.Base(p), content: content}
}

// AddDir creates a directory.
func (m *Memory) AddDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.abs(path)
	m.entries[p] = &memEntry{name: filepath.Base(p), dir: true}
}

// Link makes alias another name for the entry at path, the way a hard link
// or a case-insensitive lookup would.
func (m *Memory) Link(path, alias string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[m.abs(path)]; ok {
		m.entries[m.abs(alias)] = e
	}
}

// Content returns the content of the file at path and whether it exists.
func (m *Memory) Content(path string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[m.abs(path)]
	if !ok || e.dir {
		return nil, false
	}
	return e.content, true
}

// Paths returns every path in the filesystem, sorted.
func (m *Memory) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	paths := make([]string, 0, len(m.entries))
	for p := range m.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Renames returns the (source, target) pairs of every successful Rename.
func (m *Memory) Renames() [][2]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][2]string, len(m.renames))
	copy(out, m.renames)
	return out
}

func (m *Memory) Stat(path string) (fs.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[m.abs(path)]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return memInfo{entry: e}, nil
}

// Rename moves a regular file, replacing any file at target.
func (m *Memory) Rename(source, target string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RenameErr != nil {
		return &fs.PathError{Op: "rename", Path: source, Err: m.RenameErr}
	}
	src, dst := m.abs(source), m.abs(target)
	e, ok := m.entries[src]
	if !ok {
		return &fs.PathError{Op: "rename", Path: source, Err: fs.ErrNotExist}
	}
	if existing, ok := m.entries[dst]; ok && existing.dir {
		return &fs.PathError{Op: "rename", Path: target, Err: fs.ErrExist}
	}
	delete(m.entries, src)
	e.name = filepath.Base(dst)
	m.entries[dst] = e
	m.renames = append(m.renames, [2]string{source, target})
	return nil
}

func (m *Memory) Getwd() (string, error) {
	return m.Cwd, nil
}

func (m *Memory) SameFile(a, b fs.FileInfo) bool {
	ea, okA := a.Sys().(*memEntry)
	eb, okB := b.Sys().(*memEntry)
	return okA && okB && ea == eb
}
