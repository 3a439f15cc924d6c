// Package editor maintains the ordered inclusion list of build scenes and the
// pool of scenes that are not yet included.
//
// The inclusion list is the only authoritative state. The pool is derived
// from the last snapshot of the Source and is recomputed after every
// mutation, so an Add never reads a stale pool. Every applied mutation is
// committed to the Sink before the operation returns.
package editor

import (
	"sync"

	"scenelist/internal/errors"
	"scenelist/internal/log"
	"scenelist/pkg/types"

	"github.com/google/uuid"
)

// Source enumerates every scene currently known to the environment.
type Source interface {
	ListAllItems() ([]types.Item, error)
}

// Sink durably stores the inclusion list.
type Sink interface {
	Commit(list []types.Item) error
}

// Editor is one editing session over an inclusion list. It is safe for
// concurrent use; each operation runs under a single lock.
type Editor struct {
	mu sync.Mutex

	source Source
	sink   Sink
	logger log.Logging
	strict bool
	id     string

	list      []types.Item
	universe  []types.Item
	pool      []types.Item
	selection int
	display   types.DisplayState
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger; the session ID is attached to every line.
func WithLogger(l log.Logging) Option {
	return func(e *Editor) { e.logger = l }
}

// WithStrictIndices makes out-of-range edits return errors.ErrIndexOutOfRange
// instead of silently doing nothing.
func WithStrictIndices() Option {
	return func(e *Editor) { e.strict = true }
}

// New creates an editor over initial, then takes a first snapshot of src.
// Later duplicates in initial are dropped.
func New(src Source, sink Sink, initial []types.Item, opts ...Option) (*Editor, error) {
	e := &Editor{
		source:  src,
		sink:    sink,
		logger:  log.Default(),
		id:      uuid.NewString(),
		display: types.Collapsed,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(log.F("session", e.id))

	seen := make(map[types.Item]struct{}, len(initial))
	for _, it := range initial {
		if _, dup := seen[it]; dup {
			e.logger.With(log.F("scene", it)).Warn("Dropping duplicate scene from loaded list")
			continue
		}
		seen[it] = struct{}{}
		e.list = append(e.list, it)
	}

	if err := e.Refresh(); err != nil {
		return nil, err
	}
	return e, nil
}

// SessionID identifies this editing session in logs.
func (e *Editor) SessionID() string {
	return e.id
}

// Refresh re-queries the source and recomputes the pool. The inclusion list
// is not touched. A source error is returned as is and the previous pool
// stays in place.
func (e *Editor) Refresh() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	all, err := e.source.ListAllItems()
	if err != nil {
		return err
	}
	e.recompute(all)
	e.logger.Debugf("refreshed: %d known, %d available", len(all), len(e.pool))
	return nil
}

// RecomputePool derives the pool from all, keeping the order of all, and
// remembers all as the current universe.
func (e *Editor) RecomputePool(all []types.Item) []types.Item {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.recompute(all)
	return clone(e.pool)
}

func (e *Editor) recompute(all []types.Item) {
	e.universe = clone(all)

	included := make(map[types.Item]struct{}, len(e.list))
	for _, it := range e.list {
		included[it] = struct{}{}
	}

	pool := make([]types.Item, 0, len(all))
	for _, it := range all {
		if _, ok := included[it]; !ok {
			pool = append(pool, it)
		}
	}
	e.pool = pool
	e.selection = clamp(e.selection, len(e.pool))
}

// MoveToTop moves the entry at index to position 0. Valid for 0 < index < len.
func (e *Editor) MoveToTop(index int) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index <= 0 || index >= len(e.list) {
		return false, e.reject("move-to-top", index, len(e.list))
	}
	it := e.list[index]
	copy(e.list[1:index+1], e.list[:index])
	e.list[0] = it
	return true, e.commit("move-to-top", it)
}

// MoveUp swaps the entry at index with the one above it. Valid for 0 < index < len.
func (e *Editor) MoveUp(index int) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index <= 0 || index >= len(e.list) {
		return false, e.reject("move-up", index, len(e.list))
	}
	e.list[index-1], e.list[index] = e.list[index], e.list[index-1]
	return true, e.commit("move-up", e.list[index-1])
}

// MoveDown swaps the entry at index with the one below it. Valid for 0 <= index < len-1.
func (e *Editor) MoveDown(index int) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.list)-1 {
		return false, e.reject("move-down", index, len(e.list))
	}
	e.list[index], e.list[index+1] = e.list[index+1], e.list[index]
	return true, e.commit("move-down", e.list[index+1])
}

// Remove deletes the entry at index. The removed scene becomes available
// again if the last snapshot of the source still contains it.
func (e *Editor) Remove(index int) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.list) {
		return false, e.reject("remove", index, len(e.list))
	}
	it := e.list[index]
	e.list = append(e.list[:index], e.list[index+1:]...)
	e.recompute(e.universe)
	return true, e.commit("remove", it)
}

// Add appends pool entry poolIndex to the end of the inclusion list and
// resets the pending selection to 0.
func (e *Editor) Add(poolIndex int) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.add(poolIndex)
}

// AddSelected adds the pool entry under the pending selection.
func (e *Editor) AddSelected() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.add(e.selection)
}

func (e *Editor) add(poolIndex int) (bool, error) {
	if poolIndex < 0 || poolIndex >= len(e.pool) {
		return false, e.reject("add", poolIndex, len(e.pool))
	}
	it := e.pool[poolIndex]
	e.list = append(e.list, it)
	e.recompute(e.universe)
	e.selection = 0
	return true, e.commit("add", it)
}

// commit hands a copy of the list to the sink. The in-memory edit stands
// even when the sink fails; its error goes back to the caller unchanged.
func (e *Editor) commit(op string, it types.Item) error {
	logger := e.logger.With(log.F("op", op), log.F("scene", it), log.F("count", len(e.list)))
	if err := e.sink.Commit(clone(e.list)); err != nil {
		logger.With(log.ErrorFields(err)...).Error("Commit failed")
		return err
	}
	logger.Debug("Committed edit")
	return nil
}

func (e *Editor) reject(op string, index, length int) error {
	e.logger.Debugf("%s ignored: index %d out of range [0,%d)", op, index, length)
	if e.strict {
		return errors.NewIndexError(op, index, length)
	}
	return nil
}

// Select sets the pending selection, clamped to the pool.
func (e *Editor) Select(poolIndex int) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.selection = clamp(poolIndex, len(e.pool))
	return e.selection
}

// Selection returns the pending selection index into the pool.
func (e *Editor) Selection() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selection
}

// Items returns a copy of the inclusion list.
func (e *Editor) Items() []types.Item {
	e.mu.Lock()
	defer e.mu.Unlock()
	return clone(e.list)
}

// Pool returns a copy of the available pool.
func (e *Editor) Pool() []types.Item {
	e.mu.Lock()
	defer e.mu.Unlock()
	return clone(e.pool)
}

// Missing returns included scenes absent from the last source snapshot,
// in list order.
func (e *Editor) Missing() []types.Item {
	e.mu.Lock()
	defer e.mu.Unlock()

	known := make(map[types.Item]struct{}, len(e.universe))
	for _, it := range e.universe {
		known[it] = struct{}{}
	}
	var missing []types.Item
	for _, it := range e.list {
		if _, ok := known[it]; !ok {
			missing = append(missing, it)
		}
	}
	return missing
}

// Len returns the number of included scenes.
func (e *Editor) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.list)
}

// Contains reports whether it is in the inclusion list.
func (e *Editor) Contains(it types.Item) bool {
	return e.IndexOf(it) >= 0
}

// IndexOf returns the position of it in the inclusion list, or -1.
func (e *Editor) IndexOf(it types.Item) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return indexOf(e.list, it)
}

// PoolIndexOf returns the position of it in the pool, or -1.
func (e *Editor) PoolIndexOf(it types.Item) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return indexOf(e.pool, it)
}

// Expanded reports whether edit controls are shown.
func (e *Editor) Expanded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.display == types.Expanded
}

// SetExpanded sets the display state.
func (e *Editor) SetExpanded(expanded bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if expanded {
		e.display = types.Expanded
	} else {
		e.display = types.Collapsed
	}
}

// Toggle flips between collapsed and expanded and returns the new state.
func (e *Editor) Toggle() types.DisplayState {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.display == types.Expanded {
		e.display = types.Collapsed
	} else {
		e.display = types.Expanded
	}
	return e.display
}

func indexOf(items []types.Item, it types.Item) int {
	for i, v := range items {
		if v == it {
			return i
		}
	}
	return -1
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func clone(items []types.Item) []types.Item {
	out := make([]types.Item, len(items))
	copy(out, items)
	return out
}
