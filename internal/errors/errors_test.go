package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())

	err = Newf("formatted %s", "error")
	assert.Equal(t, "formatted error", err.Error())

	var appErr *ApplicationError
	assert.True(t, As(err, &appErr))
	assert.Equal(t, Unknown, appErr.Kind())
}

func TestWrapping(t *testing.T) {
	origErr := New("original error")
	wrappedErr := Wrap(origErr, "wrapped")
	assert.Equal(t, "wrapped: original error", wrappedErr.Error())
	assert.Equal(t, origErr, Unwrap(wrappedErr))

	wrappedFormatted := Wrapf(origErr, "formatted %s", "wrapper")
	assert.Equal(t, "formatted wrapper: original error", wrappedFormatted.Error())

	// Wrapping nil returns nil
	assert.Nil(t, Wrap(nil, "wrapper"))
	assert.Nil(t, Wrapf(nil, "formatted %s", "wrapper"))

	deepWrapped := Wrap(wrappedErr, "deeper")
	assert.Equal(t, "deeper: wrapped: original error", deepWrapped.Error())
	assert.True(t, Is(deepWrapped, origErr))
}

func TestFileError(t *testing.T) {
	fileErr := NewFileError("cannot access", "/project/Assets", FileAccessDenied, nil)
	assert.Equal(t, "cannot access: /project/Assets", fileErr.Error())
	assert.Equal(t, "/project/Assets", fileErr.Path())
	assert.Equal(t, FileAccessDenied, fileErr.Kind())

	origErr := fmt.Errorf("permission denied")
	fileErr = NewFileError("cannot access", "/project/Assets", FileAccessDenied, origErr)
	assert.Equal(t, "cannot access: /project/Assets: permission denied", fileErr.Error())
	assert.Equal(t, origErr, Unwrap(fileErr))

	notFoundErr := NewFileError("project root not found", "/missing", FileNotFound, nil)
	assert.True(t, IsFileNotFound(notFoundErr))
	assert.False(t, IsFileNotFound(fileErr))

	// Typed errors match the sentinel of their kind
	assert.True(t, Is(notFoundErr, ErrFileNotFound))
	assert.False(t, Is(fileErr, ErrFileNotFound))
}

func TestConfigError(t *testing.T) {
	configErr := NewConfigError("invalid value", "store.backend", InvalidConfig, nil)
	assert.Equal(t, "invalid value: store.backend", configErr.Error())
	assert.Equal(t, "store.backend", configErr.Param())

	origErr := fmt.Errorf("unknown backend")
	configErr = NewConfigError("invalid value", "store.backend", InvalidConfig, origErr)
	assert.Equal(t, "invalid value: store.backend: unknown backend", configErr.Error())

	assert.True(t, IsInvalidConfig(configErr))
	assert.True(t, Is(configErr, ErrInvalidConfig))
	assert.False(t, IsInvalidConfig(New("some other error")))
}

func TestIndexError(t *testing.T) {
	err := NewIndexError("move-up", 5, 3)
	assert.Equal(t, "move-up: index out of range: index 5, length 3", err.Error())
	assert.Equal(t, IndexOutOfRange, err.Kind())
	assert.Equal(t, "move-up", err.Op())
	assert.Equal(t, 5, err.Index())

	assert.True(t, Is(err, ErrIndexOutOfRange))
	assert.True(t, Is(Wrap(err, "edit"), ErrIndexOutOfRange))
	assert.Equal(t, IndexOutOfRange, KindOf(Wrap(err, "edit")))
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("Mian", []string{"Main", "Menu"})
	assert.Equal(t, "scene not found: Mian (did you mean Main, Menu?)", err.Error())
	assert.Equal(t, []string{"Main", "Menu"}, err.Suggestions())
	assert.True(t, Is(err, ErrItemNotFound))

	bare := NewNotFoundError("Nothing", nil)
	assert.Equal(t, "scene not found: Nothing", bare.Error())
}

func TestStoreError(t *testing.T) {
	base := errors.New("disk full")
	err := NewStoreError("commit failed", "yaml", StoreCommitFailed, base).WithOperation("rename")
	assert.Equal(t, "commit failed: backend=yaml: operation=rename: disk full", err.Error())
	assert.Equal(t, "yaml", err.Backend())
	assert.Equal(t, "rename", err.Operation())
	assert.True(t, IsStoreError(Wrap(err, "save")))
	assert.True(t, Is(err, base))
}

func TestErrorChains(t *testing.T) {
	baseErr := errors.New("base error")
	fileErr := NewFileError("file error", "/path/to/file", FileNotFound, baseErr)
	configErr := NewConfigError("config error", "project.root", InvalidConfig, fileErr)

	assert.Equal(t, "config error: project.root: file error: /path/to/file: base error", configErr.Error())
	assert.True(t, Is(configErr, baseErr))
	assert.True(t, Is(configErr, fileErr))

	var fe *FileError
	assert.True(t, As(configErr, &fe))
	assert.Equal(t, "/path/to/file", fe.Path())

	assert.True(t, IsFileNotFound(configErr))
	assert.True(t, IsInvalidConfig(configErr))
	assert.Equal(t, InvalidConfig, KindOf(configErr))
	assert.Equal(t, Unknown, KindOf(baseErr))
}
