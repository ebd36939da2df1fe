// Package content supplies text content to the file, all and library
// commands. The engine only ever loads and lists; it never writes.
package content

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Source loads named text content. Identifiers returned by List are valid
// arguments to Load.
type Source interface {
	// Load returns the text stored under the identifier.
	Load(identifier string) (string, error)
	// List returns the identifiers directly under a directory, sorted.
	List(dir string) ([]string, error)
}

// Dir serves files below a root directory.
type Dir struct {
	root string
}

// NewDir creates a Source rooted at the given directory.
func NewDir(root string) *Dir {
	return &Dir{root: root}
}

func (d *Dir) Load(identifier string) (string, error) {
	b, err := os.ReadFile(filepath.Join(d.root, filepath.FromSlash(identifier)))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (d *Dir) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(d.root, filepath.FromSlash(dir)))
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ids = append(ids, filepath.ToSlash(filepath.Join(dir, e.Name())))
	}
	sort.Strings(ids)
	return ids, nil
}

// Map is an in-memory Source for tests, keyed by slash-separated identifiers.
type Map struct {
	files map[string]string
}

// NewMap creates a Map source over the given files.
func NewMap(files map[string]string) *Map {
	return &Map{files: files}
}

func (m *Map) Load(identifier string) (string, error) {
	if s, ok := m.files[identifier]; ok {
		return s, nil
	}
	return "", os.ErrNotExist
}

func (m *Map) List(dir string) ([]string, error) {
	prefix := strings.TrimSuffix(dir, "/") + "/"
	var ids []string
	for name := range m.files {
		if strings.HasPrefix(name, prefix) && !strings.Contains(name[len(prefix):], "/") {
			ids = append(ids, name)
		}
	}
	if len(ids) == 0 {
		return nil, os.ErrNotExist
	}
	sort.Strings(ids)
	return ids, nil
}
