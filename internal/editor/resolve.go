package editor

import (
	"sort"
	"strings"

	"scenelist/internal/errors"
	"scenelist/pkg/types"

	"github.com/agnivade/levenshtein"
)

const maxSuggestions = 3

// ResolveIncluded finds query in the inclusion list. See Resolve.
func (e *Editor) ResolveIncluded(query string) (int, error) {
	return Resolve(e.Items(), query)
}

// ResolveAvailable finds query in the pool. See Resolve.
func (e *Editor) ResolveAvailable(query string) (int, error) {
	return Resolve(e.Pool(), query)
}

// Resolve returns the index of the item named by query: an exact path
// first, then a scene name that matches exactly one item. Otherwise it
// returns a *errors.NotFoundError with the closest labels by edit distance.
func Resolve(items []types.Item, query string) (int, error) {
	if i := indexOf(items, types.Item(query)); i >= 0 {
		return i, nil
	}

	match := -1
	for i, it := range items {
		if it.Name() != query {
			continue
		}
		if match >= 0 {
			return -1, errors.NewNotFoundError(query+" is ambiguous", []string{items[match].Path(), it.Path()})
		}
		match = i
	}
	if match >= 0 {
		return match, nil
	}
	return -1, errors.NewNotFoundError(query, Suggest(items, query))
}

// Suggest ranks items by Levenshtein distance between query and the scene
// name (case-insensitive) and returns up to three paths.
func Suggest(items []types.Item, query string) []string {
	type scored struct {
		path string
		dist int
	}
	q := strings.ToLower(query)
	limit := len(q)/2 + 1

	var candidates []scored
	for _, it := range items {
		d := levenshtein.ComputeDistance(q, strings.ToLower(it.Name()))
		if d <= limit {
			candidates = append(candidates, scored{path: it.Path(), dist: d})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].dist < candidates[j].dist
	})

	out := make([]string, 0, maxSuggestions)
	for _, c := range candidates {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, c.path)
	}
	return out
}
