package store

import (
	"os"
	"path/filepath"

	"scenelist/internal/errors"
	"scenelist/pkg/types"

	"gopkg.in/yaml.v3"
)

const formatVersion = 1

// document is the on-disk layout of the YAML store.
type document struct {
	Version int          `yaml:"version"`
	Scenes  []sceneEntry `yaml:"scenes"`
}

type sceneEntry struct {
	Path string `yaml:"path"`
}

// YAMLStore keeps the list in a single YAML file. Each commit is written to
// a temporary file and renamed over the target.
type YAMLStore struct {
	path string
}

// NewYAMLStore creates a store backed by path. The file is created on the
// first commit.
func NewYAMLStore(path string) *YAMLStore {
	return &YAMLStore{path: path}
}

// Path returns the file location.
func (s *YAMLStore) Path() string {
	return s.path
}

// Load reads the list. A missing file is an empty list.
func (s *YAMLStore) Load() ([]types.Item, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []types.Item{}, nil
		}
		return nil, errors.NewStoreError("failed to read scene list", "yaml", errors.StoreLoadFailed, err).WithOperation("read")
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewStoreError("failed to parse scene list", "yaml", errors.StoreLoadFailed, err).WithOperation("parse")
	}
	if doc.Version > formatVersion {
		return nil, errors.NewStoreError("unsupported scene list version", "yaml", errors.StoreLoadFailed,
			errors.Newf("version %d", doc.Version)).WithOperation("parse")
	}

	items := make([]types.Item, 0, len(doc.Scenes))
	for _, sc := range doc.Scenes {
		items = append(items, types.Item(sc.Path))
	}
	return items, nil
}

// Commit writes list atomically.
func (s *YAMLStore) Commit(list []types.Item) error {
	doc := document{Version: formatVersion, Scenes: make([]sceneEntry, len(list))}
	for i, it := range list {
		doc.Scenes[i] = sceneEntry{Path: it.Path()}
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return errors.NewStoreError("failed to encode scene list", "yaml", errors.StoreCommitFailed, err).WithOperation("marshal")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewStoreError("failed to create store directory", "yaml", errors.StoreCommitFailed, err).WithOperation("mkdir")
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return errors.NewStoreError("failed to create temp file", "yaml", errors.StoreCommitFailed, err).WithOperation("write")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewStoreError("failed to write scene list", "yaml", errors.StoreCommitFailed, err).WithOperation("write")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.NewStoreError("failed to write scene list", "yaml", errors.StoreCommitFailed, err).WithOperation("write")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return errors.NewStoreError("failed to replace scene list", "yaml", errors.StoreCommitFailed, err).WithOperation("rename")
	}
	return nil
}

func (s *YAMLStore) Close() error {
	return nil
}
