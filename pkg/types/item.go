package types

import (
	"path"
	"strings"
)

// Item identifies a candidate scene by its project-relative path.
// Two items are equal only when their paths are byte-for-byte identical.
type Item string

// Path returns the identifier as a plain string.
func (i Item) Path() string {
	return string(i)
}

// Name returns the scene name: the base file name without its extension.
func (i Item) Name() string {
	base := path.Base(strings.ReplaceAll(string(i), "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

// Label is the row text shown to the operator, e.g. "Main (Assets/Scenes/Main.unity)".
func (i Item) Label() string {
	return i.Name() + " (" + string(i) + ")"
}

// Items converts plain strings into items, preserving order.
func Items(paths ...string) []Item {
	out := make([]Item, len(paths))
	for i, p := range paths {
		out[i] = Item(p)
	}
	return out
}

// Strings converts items back to plain strings.
func Strings(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = string(it)
	}
	return out
}
