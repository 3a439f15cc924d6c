package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"scenelist/internal/config"
	"scenelist/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary YAML config file
func createTestYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const (
	validYAML = `
project:
  root: /work/game
scan:
  include: ["Assets/Scenes/**.unity", "Assets/Levels/*.unity"]
  exclude: ["Assets/Scenes/Sandbox/**"]
store:
  backend: sqlite
  path: build/scenes.db
watch:
  debounce_ms: 500
ui:
  theme: dark
`
	invalidSyntaxYAML = `
project:
  root: "/work/game
scan: [
`
	invalidBackendYAML = `
store:
  backend: xml
`
	invalidGlobYAML = `
scan:
  include: ["Assets/[*.unity"]
`
)

func TestLoad(t *testing.T) {
	t.Setenv("SCENELIST_CONFIG", "")

	t.Run("load valid config", func(t *testing.T) {
		cfg, err := config.Load(createTestYAML(t, validYAML))
		require.NoError(t, err)

		assert.Equal(t, "/work/game", cfg.Project.Root)
		assert.Equal(t, []string{"Assets/Scenes/**.unity", "Assets/Levels/*.unity"}, cfg.Scan.Include)
		assert.Equal(t, []string{"Assets/Scenes/Sandbox/**"}, cfg.Scan.Exclude)
		assert.Equal(t, config.BackendSQLite, cfg.Store.Backend)
		assert.Equal(t, 500, cfg.Watch.DebounceMs)
		assert.Equal(t, "dark", cfg.UI.Theme)
		assert.Equal(t, filepath.Join("/work/game", "build", "scenes.db"), cfg.StorePath())
	})

	t.Run("load non-existent file", func(t *testing.T) {
		cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err, "a missing file yields defaults")

		defaults := config.New()
		assert.Equal(t, defaults, cfg)
		assert.Equal(t, []string{"Assets/**.unity"}, cfg.Scan.Include)
		assert.Equal(t, config.BackendYAML, cfg.Store.Backend)
	})

	t.Run("invalid YAML syntax", func(t *testing.T) {
		_, err := config.Load(createTestYAML(t, invalidSyntaxYAML))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error parsing config file")
	})

	t.Run("invalid backend", func(t *testing.T) {
		path := createTestYAML(t, invalidBackendYAML)
		_, err := config.Load(path)
		require.Error(t, err)
		assert.True(t, errors.IsInvalidConfig(err))
		assert.Contains(t, err.Error(), "invalid configuration in "+path)
		assert.Contains(t, err.Error(), "invalid store backend: xml")
	})

	t.Run("invalid glob", func(t *testing.T) {
		_, err := config.Load(createTestYAML(t, invalidGlobYAML))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid scan pattern")
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("SCENELIST_STORE_BACKEND", "sqlite")
		t.Setenv("SCENELIST_PROJECT_ROOT", "/from/env")

		cfg, err := config.Load(createTestYAML(t, "store:\n  backend: yaml\n"))
		require.NoError(t, err)
		assert.Equal(t, config.BackendSQLite, cfg.Store.Backend)
		assert.Equal(t, "/from/env", cfg.Project.Root)
	})
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("SCENELIST_CONFIG", "")
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := config.New()
	cfg.Project.Root = "/work/other"
	cfg.UI.Theme = "light"
	require.NoError(t, config.Save(cfg, path))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestStorePathDefaults(t *testing.T) {
	cfg := config.New()
	cfg.Project.Root = "/p"
	assert.Equal(t, filepath.Join("/p", "ProjectSettings", "build-scenes.yaml"), cfg.StorePath())

	cfg.Store.Backend = config.BackendSQLite
	assert.Equal(t, filepath.Join("/p", "ProjectSettings", "build-scenes.db"), cfg.StorePath())

	cfg.Store.Path = "/abs/list.db"
	assert.Equal(t, "/abs/list.db", cfg.StorePath())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		param  string
	}{
		{"empty root", func(c *config.Config) { c.Project.Root = "" }, "project.root"},
		{"no includes", func(c *config.Config) { c.Scan.Include = nil }, "scan.include"},
		{"negative debounce", func(c *config.Config) { c.Watch.DebounceMs = -1 }, "watch.debounce_ms"},
		{"unknown theme", func(c *config.Config) { c.UI.Theme = "neon" }, "neon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)

			var ce *errors.ConfigError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.param, ce.Param())
		})
	}

	assert.NoError(t, config.New().Validate())
}

func TestThemes(t *testing.T) {
	assert.Equal(t, []string{"dark", "default", "light", "monochrome"}, config.ListThemes())
	assert.Equal(t, config.GetTheme("default"), config.GetTheme("missing"))
}
