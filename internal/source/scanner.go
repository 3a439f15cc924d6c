// Package source discovers candidate scenes in a project tree.
package source

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"scenelist/internal/errors"
	"scenelist/internal/log"
	"scenelist/pkg/types"

	"github.com/gobwas/glob"
)

// Matcher decides whether a root-relative slash path is a scene.
type Matcher struct {
	include []glob.Glob
	exclude []glob.Glob
}

// NewMatcher compiles include and exclude globs with '/' as separator,
// so "*" stays within a directory and "**" crosses directories.
func NewMatcher(include, exclude []string) (*Matcher, error) {
	m := &Matcher{}
	for _, p := range include {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, errors.NewConfigError("invalid include pattern", p, errors.InvalidConfig, err)
		}
		m.include = append(m.include, g)
	}
	for _, p := range exclude {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, errors.NewConfigError("invalid exclude pattern", p, errors.InvalidConfig, err)
		}
		m.exclude = append(m.exclude, g)
	}
	return m, nil
}

// Match reports whether rel is included and not excluded.
func (m *Matcher) Match(rel string) bool {
	for _, g := range m.exclude {
		if g.Match(rel) {
			return false
		}
	}
	for _, g := range m.include {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// Scanner reports every matching file under a project root.
type Scanner struct {
	root    string
	matcher *Matcher
}

// NewScanner creates a scanner over root.
func NewScanner(root string, include, exclude []string) (*Scanner, error) {
	m, err := NewMatcher(include, exclude)
	if err != nil {
		return nil, err
	}
	return &Scanner{root: root, matcher: m}, nil
}

// Root returns the project root.
func (s *Scanner) Root() string {
	return s.root
}

// Matcher returns the compiled patterns.
func (s *Scanner) Matcher() *Matcher {
	return s.matcher
}

// ListAllItems walks the root and returns root-relative slash paths, sorted.
// Hidden directories are skipped.
func (s *Scanner) ListAllItems() ([]types.Item, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewFileError("project root not found", s.root, errors.FileNotFound, err)
		}
		return nil, errors.NewFileError("cannot access project root", s.root, errors.FileAccessDenied, err)
	}
	if !info.IsDir() {
		return nil, errors.NewFileError("project root is not a directory", s.root, errors.InvalidPath, nil)
	}

	var items []types.Item
	err = filepath.WalkDir(s.root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == s.root {
				return walkErr
			}
			log.LogWithFields(log.F("path", path), log.F("error", walkErr)).Warn("Skipping unreadable path")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != s.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if s.matcher.Match(rel) {
			items = append(items, types.Item(rel))
		}
		return nil
	})
	if err != nil {
		return nil, errors.NewFileError("failed to scan project", s.root, errors.FileOperationFailed, err)
	}

	sort.Slice(items, func(i, j int) bool { return items[i] < items[j] })
	log.Debugf("scanned %s: %d scenes", s.root, len(items))
	return items, nil
}

// Static is a fixed in-memory source.
type Static []types.Item

// ListAllItems returns a copy of the fixed items.
func (s Static) ListAllItems() ([]types.Item, error) {
	out := make([]types.Item, len(s))
	copy(out, s)
	return out, nil
}
