// Package errors provides standardized error handling for scenelist.
// It defines the error kinds raised by the scanner, the stores and the CLI,
// plus helpers for consistent creation, wrapping and inspection.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Standard errors package functions re-exported for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// File error kinds
	FileNotFound
	FileAccessDenied
	InvalidPath
	FileOperationFailed
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	// Editor error kinds
	IndexOutOfRange
	ItemNotFound
	// Store error kinds
	StoreOpenFailed
	StoreLoadFailed
	StoreCommitFailed
)

// Common error values. Use Is to test for them; typed errors of the same
// kind match.
var (
	ErrFileNotFound    = NewFileError("file not found", "", FileNotFound, nil)
	ErrInvalidConfig   = NewConfigError("invalid configuration", "", InvalidConfig, nil)
	ErrIndexOutOfRange = NewIndexError("", -1, 0)
	ErrItemNotFound    = NewNotFoundError("", nil)
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// kinded is satisfied by every typed error in this package.
type kinded interface {
	Kind() ErrorKind
}

// sameKind lets typed errors match the package sentinels through errors.Is.
func sameKind(kind ErrorKind, target error) bool {
	if kind == Unknown {
		return false
	}
	k, ok := target.(kinded)
	return ok && k.Kind() == kind
}

// KindOf returns the first known kind in err's chain.
func KindOf(err error) ErrorKind {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if k, ok := e.(kinded); ok && k.Kind() != Unknown {
			return k.Kind()
		}
	}
	return Unknown
}

// FileError represents errors related to file operations
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Is matches any file error of the same kind.
func (e *FileError) Is(target error) bool {
	_, ok := target.(*FileError)
	return ok && sameKind(e.kind, target)
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Is matches any config error of the same kind.
func (e *ConfigError) Is(target error) bool {
	_, ok := target.(*ConfigError)
	return ok && sameKind(e.kind, target)
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// IndexError reports an edit issued against a position that no longer exists.
type IndexError struct {
	ApplicationError
	op     string
	index  int
	length int
}

// NewIndexError creates an index error for op.
func NewIndexError(op string, index, length int) *IndexError {
	return &IndexError{
		ApplicationError: ApplicationError{
			msg:  "index out of range",
			kind: IndexOutOfRange,
		},
		op:     op,
		index:  index,
		length: length,
	}
}

// Error returns the index error message
func (e *IndexError) Error() string {
	if e.op == "" {
		return e.msg
	}
	return fmt.Sprintf("%s: %s: index %d, length %d", e.op, e.msg, e.index, e.length)
}

// Is matches any index error.
func (e *IndexError) Is(target error) bool {
	_, ok := target.(*IndexError)
	return ok
}

// Op returns the editor operation that was rejected.
func (e *IndexError) Op() string {
	return e.op
}

// Index returns the rejected index.
func (e *IndexError) Index() int {
	return e.index
}

// NotFoundError is returned when an operator query names no known scene.
type NotFoundError struct {
	ApplicationError
	query       string
	suggestions []string
}

// NewNotFoundError creates a not-found error with optional suggestions.
func NewNotFoundError(query string, suggestions []string) *NotFoundError {
	return &NotFoundError{
		ApplicationError: ApplicationError{
			msg:  "scene not found",
			kind: ItemNotFound,
		},
		query:       query,
		suggestions: suggestions,
	}
}

// Error returns the not-found message, including suggestions when present
func (e *NotFoundError) Error() string {
	msg := e.msg
	if e.query != "" {
		msg = fmt.Sprintf("%s: %s", e.msg, e.query)
	}
	if len(e.suggestions) > 0 {
		msg += " (did you mean " + strings.Join(e.suggestions, ", ") + "?)"
	}
	return msg
}

// Is matches any not-found error.
func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// Query returns the text that failed to resolve.
func (e *NotFoundError) Query() string {
	return e.query
}

// Suggestions returns the closest known scenes, best first.
func (e *NotFoundError) Suggestions() []string {
	return e.suggestions
}

// StoreError represents errors raised by a persistence backend
type StoreError struct {
	ApplicationError
	backend   string
	operation string
}

// NewStoreError creates a new store error
func NewStoreError(msg, backend string, kind ErrorKind, err error) *StoreError {
	return &StoreError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		backend: backend,
	}
}

// WithOperation adds operation information to the store error
func (e *StoreError) WithOperation(operation string) *StoreError {
	e.operation = operation
	return e
}

// Error returns the store error message
func (e *StoreError) Error() string {
	prefix := e.msg
	if e.backend != "" {
		prefix = fmt.Sprintf("%s: backend=%s", prefix, e.backend)
	}
	if e.operation != "" {
		prefix = fmt.Sprintf("%s: operation=%s", prefix, e.operation)
	}
	if e.err != nil {
		return fmt.Sprintf("%s: %v", prefix, e.err)
	}
	return prefix
}

// Backend returns the store backend name
func (e *StoreError) Backend() string {
	return e.backend
}

// Operation returns the store operation associated with the error
func (e *StoreError) Operation() string {
	return e.operation
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// IsFileNotFound checks if the error is a file not found error
func IsFileNotFound(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == FileNotFound
	}
	return false
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}

// IsStoreError checks if the error came from a persistence backend
func IsStoreError(err error) bool {
	var storeErr *StoreError
	return errors.As(err, &storeErr)
}
