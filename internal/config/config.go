package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"scenelist/internal/errors"

	"github.com/gobwas/glob"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. SCENELIST_STORE_BACKEND.
const EnvPrefix = "SCENELIST"

// Store backends.
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// Config represents the application configuration structure.
type Config struct {
	Project ProjectConfig `mapstructure:"project" yaml:"project"`
	Scan    ScanConfig    `mapstructure:"scan" yaml:"scan"`
	Store   StoreConfig   `mapstructure:"store" yaml:"store"`
	Watch   WatchConfig   `mapstructure:"watch" yaml:"watch"`
	UI      UIConfig      `mapstructure:"ui" yaml:"ui"`
}

// ProjectConfig locates the project being edited.
type ProjectConfig struct {
	Root string `mapstructure:"root" yaml:"root"` // Project root; scene paths are relative to it
}

// ScanConfig controls which files count as scenes.
type ScanConfig struct {
	Include []string `mapstructure:"include" yaml:"include"` // Globs over root-relative slash paths
	Exclude []string `mapstructure:"exclude" yaml:"exclude"`
}

// StoreConfig selects where the inclusion list is persisted.
type StoreConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"` // yaml or sqlite
	Path    string `mapstructure:"path" yaml:"path"`       // Relative paths resolve against project.root
}

// WatchConfig tunes the file watcher.
type WatchConfig struct {
	DebounceMs int `mapstructure:"debounce_ms" yaml:"debounce_ms"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// DefaultPath returns ~/.config/scenelist/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "scenelist", "config.yaml")
	}
	return filepath.Join(home, ".config", "scenelist", "config.yaml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("project.root", ".")
	v.SetDefault("scan.include", []string{"Assets/**.unity"})
	v.SetDefault("scan.exclude", []string{})
	v.SetDefault("store.backend", BackendYAML)
	v.SetDefault("store.path", "")
	v.SetDefault("watch.debounce_ms", 250)
	v.SetDefault("ui.theme", "default")
}

// Load reads configuration from path, falling back to $SCENELIST_CONFIG and
// then the default location. A missing file yields the defaults. Environment
// variables with the SCENELIST_ prefix override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path == "" {
		path = DefaultPath()
	}
	v.SetConfigFile(path)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.NewConfigError("error decoding config", path, errors.InvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid configuration in %s", path)
	}
	return &cfg, nil
}

// New returns the default configuration.
func New() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Save writes the configuration as YAML, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewFileError("failed to create config directory", filepath.Dir(path), errors.FileOperationFailed, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.NewFileError("failed to write config file", path, errors.FileOperationFailed, err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("nil config")
	}

	if c.Project.Root == "" {
		return errors.NewConfigError("project root is required", "project.root", errors.InvalidConfig, nil)
	}

	if len(c.Scan.Include) == 0 {
		return errors.NewConfigError("at least one include pattern is required", "scan.include", errors.InvalidConfig, nil)
	}
	for _, p := range append(append([]string{}, c.Scan.Include...), c.Scan.Exclude...) {
		if _, err := glob.Compile(p, '/'); err != nil {
			return errors.NewConfigError("invalid scan pattern", p, errors.InvalidConfig, err)
		}
	}

	switch c.Store.Backend {
	case BackendYAML, BackendSQLite:
	default:
		return errors.NewConfigError("invalid store backend", c.Store.Backend, errors.InvalidConfig, nil)
	}

	if c.Watch.DebounceMs < 0 {
		return errors.NewConfigError("debounce must be >= 0", "watch.debounce_ms", errors.InvalidConfig, nil)
	}

	if _, ok := themes[c.UI.Theme]; !ok {
		return errors.NewConfigError("unknown theme", c.UI.Theme, errors.InvalidConfig, nil)
	}
	return nil
}

// StorePath returns the store location, resolved against the project root.
// An empty path picks a per-backend default under ProjectSettings/.
func (c *Config) StorePath() string {
	p := c.Store.Path
	if p == "" {
		p = filepath.Join("ProjectSettings", "build-scenes.yaml")
		if c.Store.Backend == BackendSQLite {
			p = filepath.Join("ProjectSettings", "build-scenes.db")
		}
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Project.Root, p)
}
