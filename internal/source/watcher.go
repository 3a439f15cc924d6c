package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"scenelist/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Change reports that scenes appeared, disappeared or were renamed under the
// root. Paths are root-relative slash paths of the events seen since the
// previous Change.
type Change struct {
	Paths     []string
	Timestamp time.Time
}

// Watcher monitors a project tree with fsnotify and emits a debounced Change
// whenever a matching file is created, removed or renamed.
type Watcher struct {
	root     string
	matcher  *Matcher
	debounce time.Duration

	fsWatcher *fsnotify.Watcher
	dirs      map[string]struct{} // watched directories; owned by loop after Start
	changes   chan Change
	stopChan  chan struct{}
	done      chan struct{}

	mutex   sync.Mutex
	running bool
	closed  bool
}

// NewWatcher creates a watcher for the scanner's root and patterns.
func NewWatcher(s *Scanner, debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		root:      s.Root(),
		matcher:   s.Matcher(),
		debounce:  debounce,
		fsWatcher: fsWatcher,
		dirs:      make(map[string]struct{}),
		changes:   make(chan Change, 1),
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
	}

	if _, err := w.addTree(w.root); err != nil {
		fsWatcher.Close()
		return nil, err
	}
	return w, nil
}

// addTree registers dir and every non-hidden directory below it, since
// fsnotify is not recursive. It returns the matching files already inside.
func (w *Watcher) addTree(dir string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			if rel, ok := w.match(path); ok {
				found = append(found, rel)
			}
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fsWatcher.Add(path); err != nil {
			return fmt.Errorf("failed to add directory %s to watcher: %w", path, err)
		}
		w.dirs[path] = struct{}{}
		return nil
	})
	return found, err
}

// forgetTree drops dir and everything below it from the watch list and
// reports whether dir was being watched.
func (w *Watcher) forgetTree(dir string) bool {
	_, watched := w.dirs[dir]
	prefix := dir + string(filepath.Separator)
	for d := range w.dirs {
		if d == dir || strings.HasPrefix(d, prefix) {
			delete(w.dirs, d)
			// The kernel may already have dropped the watch.
			_ = w.fsWatcher.Remove(d)
		}
	}
	return watched
}

// Changes delivers debounced change notifications. It is closed by Close.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Start begins processing events in a background goroutine.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.closed {
		return fmt.Errorf("watcher closed")
	}
	if w.running {
		return fmt.Errorf("watcher already running")
	}
	w.running = true

	go w.loop()
	log.LogWithFields(log.F("root", w.root)).Info("Watching project for scene changes")
	return nil
}

func (w *Watcher) loop() {
	defer close(w.done)

	var (
		pending []string
		timer   *time.Timer
		fire    <-chan time.Time
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if paths := w.relevant(event); len(paths) > 0 {
				pending = append(pending, paths...)
				if timer == nil {
					timer = time.NewTimer(w.debounce)
				} else {
					timer.Reset(w.debounce)
				}
				fire = timer.C
			}

		case <-fire:
			fire = nil
			w.emit(Change{Paths: pending, Timestamp: time.Now()})
			pending = nil

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

		case <-w.stopChan:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// relevant maps an event to the root-relative paths it affects. A directory
// created or moved into the tree is watched and every matching file inside
// it is reported. Removing or renaming a watched directory reports the
// directory itself, since the scenes below it are gone from their old paths.
func (w *Watcher) relevant(event fsnotify.Event) []string {
	switch {
	case event.Op.Has(fsnotify.Create):
		info, err := os.Stat(event.Name)
		if err != nil || !info.IsDir() {
			return w.matching(event.Name)
		}
		if strings.HasPrefix(info.Name(), ".") {
			return nil
		}
		found, err := w.addTree(event.Name)
		if err != nil {
			log.LogWithFields(log.F("dir", event.Name), log.F("error", err)).Warn("Unable to watch new directory")
		}
		return found

	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		if w.forgetTree(event.Name) {
			if rel, err := filepath.Rel(w.root, event.Name); err == nil {
				return []string{filepath.ToSlash(rel)}
			}
			return nil
		}
		return w.matching(event.Name)
	}
	return nil
}

func (w *Watcher) matching(path string) []string {
	if rel, ok := w.match(path); ok {
		return []string{rel}
	}
	return nil
}

func (w *Watcher) match(path string) (string, bool) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	return rel, w.matcher.Match(rel)
}

// emit never blocks: if the consumer has not drained the previous Change,
// the new paths are merged into it.
func (w *Watcher) emit(c Change) {
	select {
	case w.changes <- c:
	default:
		select {
		case prev := <-w.changes:
			c.Paths = append(prev.Paths, c.Paths...)
		default:
		}
		select {
		case w.changes <- c:
		default:
			log.Warn("Change channel is full, dropped event")
		}
	}
}

// Close stops the watcher and closes the Changes channel. Safe to call twice.
func (w *Watcher) Close() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true

	close(w.stopChan)
	err := w.fsWatcher.Close()
	if w.running {
		<-w.done
	}
	w.running = false
	close(w.changes)
	return err
}
