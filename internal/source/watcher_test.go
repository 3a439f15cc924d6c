package source_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"scenelist/internal/source"
	"scenelist/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForChange(t *testing.T, w *source.Watcher, want string) source.Change {
	t.Helper()
	timeout := time.After(3 * time.Second)
	for {
		select {
		case c, ok := <-w.Changes():
			require.True(t, ok, "change channel closed unexpectedly")
			for _, p := range c.Paths {
				if p == want {
					return c
				}
			}
		case <-timeout:
			t.Fatalf("timeout waiting for change to %s", want)
		}
	}
}

func TestWatcherReportsSceneChanges(t *testing.T) {
	root := testutils.CreateProject(t, "Assets/Scenes/Main.unity")
	s, err := source.NewScanner(root, []string{"Assets/**.unity"}, nil)
	require.NoError(t, err)

	w, err := source.NewWatcher(s, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Start())

	// Allow fsnotify to settle before generating events
	time.Sleep(50 * time.Millisecond)

	t.Run("create", func(t *testing.T) {
		path := filepath.Join(root, "Assets", "Scenes", "Menu.unity")
		require.NoError(t, os.WriteFile(path, nil, 0644))
		c := waitForChange(t, w, "Assets/Scenes/Menu.unity")
		assert.False(t, c.Timestamp.IsZero())
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, os.Remove(filepath.Join(root, "Assets", "Scenes", "Main.unity")))
		waitForChange(t, w, "Assets/Scenes/Main.unity")
	})

	t.Run("new directory is watched", func(t *testing.T) {
		dir := filepath.Join(root, "Assets", "Levels")
		require.NoError(t, os.MkdirAll(dir, 0755))
		time.Sleep(50 * time.Millisecond)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "L1.unity"), nil, 0644))
		waitForChange(t, w, "Assets/Levels/L1.unity")
	})
}

// waitForPaths reads changes until every wanted path has been reported,
// possibly across several Change values.
func waitForPaths(t *testing.T, w *source.Watcher, want ...string) {
	t.Helper()
	missing := make(map[string]bool, len(want))
	for _, p := range want {
		missing[p] = true
	}
	timeout := time.After(3 * time.Second)
	for len(missing) > 0 {
		select {
		case c, ok := <-w.Changes():
			require.True(t, ok, "change channel closed unexpectedly")
			for _, p := range c.Paths {
				delete(missing, p)
			}
		case <-timeout:
			t.Fatalf("timeout waiting for changes to %v", missing)
		}
	}
}

func TestWatcherDirectoryMoves(t *testing.T) {
	root := testutils.CreateProject(t, "Assets/Old/Main.unity")
	s, err := source.NewScanner(root, []string{"Assets/**.unity"}, nil)
	require.NoError(t, err)

	w, err := source.NewWatcher(s, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Start())
	time.Sleep(50 * time.Millisecond)

	t.Run("rename scene folder", func(t *testing.T) {
		require.NoError(t, os.Rename(filepath.Join(root, "Assets", "Old"), filepath.Join(root, "Assets", "New")))
		waitForPaths(t, w, "Assets/Old", "Assets/New/Main.unity")
	})

	t.Run("move folder with scenes into tree", func(t *testing.T) {
		outside := testutils.CreateProject(t, "Pack/Boss.unity", "Pack/Sub/Extra.unity")
		require.NoError(t, os.Rename(filepath.Join(outside, "Pack"), filepath.Join(root, "Assets", "Pack")))
		waitForPaths(t, w, "Assets/Pack/Boss.unity", "Assets/Pack/Sub/Extra.unity")

		items, err := s.ListAllItems()
		require.NoError(t, err)
		assert.Len(t, items, 3)
	})

	t.Run("moved folder is watched", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(root, "Assets", "Pack", "Sub", "Late.unity"), nil, 0644))
		waitForPaths(t, w, "Assets/Pack/Sub/Late.unity")
	})

	t.Run("delete scene folder", func(t *testing.T) {
		require.NoError(t, os.RemoveAll(filepath.Join(root, "Assets", "New")))
		waitForPaths(t, w, "Assets/New/Main.unity")
	})
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	root := testutils.CreateProject(t, "Assets/Main.unity")
	s, err := source.NewScanner(root, []string{"Assets/**.unity"}, nil)
	require.NoError(t, err)

	w, err := source.NewWatcher(s, 10*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Start())
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(root, "Assets", "notes.txt"), nil, 0644))

	select {
	case c := <-w.Changes():
		t.Fatalf("unexpected change: %+v", c)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherClose(t *testing.T) {
	root := testutils.CreateProject(t, "Assets/Main.unity")
	s, err := source.NewScanner(root, []string{"Assets/**.unity"}, nil)
	require.NoError(t, err)

	w, err := source.NewWatcher(s, time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	assert.Error(t, w.Start(), "second start is rejected")

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close(), "close is idempotent")

	_, ok := <-w.Changes()
	assert.False(t, ok, "changes channel is closed")
	assert.Error(t, w.Start())
}
