package store_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"scenelist/internal/config"
	"scenelist/internal/errors"
	"scenelist/internal/store"
	"scenelist/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = types.Items(
	"Assets/Scenes/Boot.unity",
	"Assets/Scenes/Main.unity",
	"Assets/Levels/Level1.unity",
)

// testStoreContract runs the behaviour every backend must share.
func testStoreContract(t *testing.T, open func(t *testing.T) store.Store) {
	t.Run("empty on first load", func(t *testing.T) {
		s := open(t)
		defer s.Close()
		items, err := s.Load()
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("commit then load keeps order", func(t *testing.T) {
		s := open(t)
		defer s.Close()
		require.NoError(t, s.Commit(sample))
		items, err := s.Load()
		require.NoError(t, err)
		assert.Equal(t, sample, items)
	})

	t.Run("later commit replaces earlier", func(t *testing.T) {
		s := open(t)
		defer s.Close()
		require.NoError(t, s.Commit(sample))
		require.NoError(t, s.Commit(types.Items("Assets/Levels/Level1.unity", "Assets/Scenes/Boot.unity")))
		items, err := s.Load()
		require.NoError(t, err)
		assert.Equal(t, types.Items("Assets/Levels/Level1.unity", "Assets/Scenes/Boot.unity"), items)

		require.NoError(t, s.Commit(nil))
		items, err = s.Load()
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestYAMLStore(t *testing.T) {
	testStoreContract(t, func(t *testing.T) store.Store {
		return store.NewYAMLStore(filepath.Join(t.TempDir(), "ProjectSettings", "build-scenes.yaml"))
	})

	t.Run("file layout", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scenes.yaml")
		s := store.NewYAMLStore(path)
		require.NoError(t, s.Commit(types.Items("Assets/A.unity")))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "version: 1\nscenes:\n    - path: Assets/A.unity\n", string(data))

		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1, "no temp files left behind")
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scenes.yaml")
		require.NoError(t, os.WriteFile(path, []byte("scenes: [\n"), 0644))
		_, err := store.NewYAMLStore(path).Load()
		require.Error(t, err)
		assert.True(t, errors.IsStoreError(err))
		assert.Equal(t, errors.StoreLoadFailed, errors.KindOf(err))
	})

	t.Run("newer version rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scenes.yaml")
		require.NoError(t, os.WriteFile(path, []byte("version: 9\nscenes: []\n"), 0644))
		_, err := store.NewYAMLStore(path).Load()
		assert.ErrorContains(t, err, "unsupported scene list version")
	})

	t.Run("commit into unwritable location", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(blocker, nil, 0644))
		err := store.NewYAMLStore(filepath.Join(blocker, "scenes.yaml")).Commit(sample)
		require.Error(t, err)
		assert.Equal(t, errors.StoreCommitFailed, errors.KindOf(err))
	})
}

func TestSQLiteStore(t *testing.T) {
	testStoreContract(t, func(t *testing.T) store.Store {
		s, err := store.OpenSQLite(filepath.Join(t.TempDir(), "scenes.db"))
		require.NoError(t, err)
		return s
	})

	t.Run("reopen sees committed list", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "scenes.db")
		s, err := store.OpenSQLite(path)
		require.NoError(t, err)
		require.NoError(t, s.Commit(sample))
		require.NoError(t, s.Close())

		s, err = store.OpenSQLite(path)
		require.NoError(t, err)
		defer s.Close()
		items, err := s.Load()
		require.NoError(t, err)
		assert.Equal(t, sample, items)
	})

	t.Run("duplicate paths roll back", func(t *testing.T) {
		s, err := store.OpenSQLite(":memory:")
		require.NoError(t, err)
		defer s.Close()

		require.NoError(t, s.Commit(sample))
		err = s.Commit(types.Items("Assets/A.unity", "Assets/A.unity"))
		require.Error(t, err)
		assert.True(t, errors.IsStoreError(err))

		items, err := s.Load()
		require.NoError(t, err)
		assert.Equal(t, sample, items, "failed commit leaves previous rows")
	})
}

func TestMemory(t *testing.T) {
	testStoreContract(t, func(t *testing.T) store.Store { return store.NewMemory() })

	m := store.NewMemory(sample...)
	items, _ := m.Load()
	assert.Equal(t, sample, items)

	m.FailWith(fmt.Errorf("offline"))
	assert.EqualError(t, m.Commit(nil), "offline")
	assert.Zero(t, m.Commits())

	m.FailWith(nil)
	require.NoError(t, m.Commit(nil))
	assert.Equal(t, 1, m.Commits())
}

func TestOpen(t *testing.T) {
	root := t.TempDir()

	cfg := config.New()
	cfg.Project.Root = root
	s, err := store.Open(cfg)
	require.NoError(t, err)
	assert.IsType(t, &store.YAMLStore{}, s)
	assert.Equal(t, filepath.Join(root, "ProjectSettings", "build-scenes.yaml"), s.(*store.YAMLStore).Path())

	cfg.Store.Backend = config.BackendSQLite
	s, err = store.Open(cfg)
	require.NoError(t, err)
	assert.IsType(t, &store.SQLiteStore{}, s)
	require.NoError(t, s.Close())

	cfg.Store.Backend = "csv"
	_, err = store.Open(cfg)
	assert.True(t, errors.IsInvalidConfig(err))
}
