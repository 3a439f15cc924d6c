// Package log is the structured logger used across scenelist. It wraps
// logrus behind a small API: package-level helpers for the global logger,
// F for fields, and With for derived loggers.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"

	"scenelist/internal/errors"

	"github.com/sirupsen/logrus"
)

const callerKey = "caller"

var (
	isDebug atomic.Bool
	logger  = NewLogger()
)

// Field is a single structured key/value pair.
type Field struct {
	Key   string
	Value interface{}
}

// F creates a field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logging is what components depend on, so tests can hand them any logger.
type Logging interface {
	Debug(msg string, args ...interface{})
	Debugf(format string, args ...interface{})
	Info(msg string)
	Infof(format string, args ...interface{})
	Warn(msg string)
	Warnf(format string, args ...interface{})
	Error(msg string)
	Errorf(format string, args ...interface{})
	With(fields ...Field) Logging
}

// Logger implements Logging on top of a logrus entry.
type Logger struct {
	entry *logrus.Entry
	file  *os.File
}

type options struct {
	out     io.Writer
	json    bool
	logFile string
}

// Option configures a Logger.
type Option func(*options)

// WithOutput sends log lines to w.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithJSON switches to one JSON object per line.
func WithJSON() Option {
	return func(o *options) { o.json = true }
}

// WithFile tees log lines to path in addition to the configured output.
func WithFile(path string) Option {
	return func(o *options) { o.logFile = path }
}

// NewLogger creates a logger writing to stderr unless configured otherwise.
func NewLogger(opts ...Option) *Logger {
	o := options{out: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	l := &Logger{}
	out := o.out
	if o.logFile != "" {
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			l.file = f
			out = io.MultiWriter(o.out, f)
		} else {
			fmt.Fprintf(o.out, "unable to open log file %s: %v\n", o.logFile, err)
		}
	}

	base := logrus.New()
	base.SetOutput(out)
	base.SetLevel(logrus.DebugLevel)
	if o.json {
		base.SetFormatter(&jsonFormatter{})
	} else {
		base.SetFormatter(&textFormatter{})
	}

	l.entry = logrus.NewEntry(base)
	return l
}

// Configure replaces the global logger, closing the log file of the one it
// replaces.
func Configure(opts ...Option) {
	previous := logger
	logger = NewLogger(opts...)
	if previous != nil {
		previous.Close()
	}
}

// SetDebug toggles debug output for every logger.
func SetDebug(debug bool) {
	isDebug.Store(debug)
}

// Close releases the log file, if any. Loggers derived with With share the
// file, so closing any of them ends file output for all.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	f := l.file
	l.file = nil
	return f.Close()
}

// With returns a logger carrying the given fields on every line.
func (l *Logger) With(fields ...Field) Logging {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{entry: l.entry.WithFields(data), file: l.file}
}

// Debug logs a message with arguments
func (l *Logger) Debug(msg string, args ...interface{}) {
	if !isDebug.Load() {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg+": %v", args...)
	}
	l.log(logrus.DebugLevel, msg)
}

// Debugf logs a formatted message
func (l *Logger) Debugf(format string, args ...interface{}) {
	if !isDebug.Load() {
		return
	}
	l.log(logrus.DebugLevel, fmt.Sprintf(format, args...))
}

func (l *Logger) Info(msg string) {
	l.log(logrus.InfoLevel, msg)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(logrus.InfoLevel, fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(msg string) {
	l.log(logrus.WarnLevel, msg)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(logrus.WarnLevel, fmt.Sprintf(format, args...))
}

func (l *Logger) Error(msg string) {
	l.log(logrus.ErrorLevel, msg)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(logrus.ErrorLevel, fmt.Sprintf(format, args...))
}

// log must be called directly from an exported method so the caller frame
// lands two levels up.
func (l *Logger) log(level logrus.Level, msg string) {
	entry := l.entry
	if _, file, line, ok := runtime.Caller(2); ok {
		entry = entry.WithField(callerKey, fmt.Sprintf("%s:%d", filepath.Base(file), line))
	}
	entry.Log(level, msg)
}

// Default returns the global logger.
func Default() *Logger {
	return logger
}

func Info(msg string) {
	logger.log(logrus.InfoLevel, msg)
}

func Infof(format string, args ...interface{}) {
	logger.log(logrus.InfoLevel, fmt.Sprintf(format, args...))
}

func Debugf(format string, args ...interface{}) {
	if isDebug.Load() {
		logger.log(logrus.DebugLevel, fmt.Sprintf(format, args...))
	}
}

func Warn(msg string) {
	logger.log(logrus.WarnLevel, msg)
}

func Warnf(format string, args ...interface{}) {
	logger.log(logrus.WarnLevel, fmt.Sprintf(format, args...))
}

func Error(msg string) {
	logger.log(logrus.ErrorLevel, msg)
}

func Errorf(format string, args ...interface{}) {
	logger.log(logrus.ErrorLevel, fmt.Sprintf(format, args...))
}

// LogWithFields returns the global logger with fields attached.
func LogWithFields(fields ...Field) Logging {
	return logger.With(fields...)
}

// LogWithError attaches err and, for typed errors, its kind and detail.
func LogWithError(err error) Logging {
	return logger.With(ErrorFields(err)...)
}

// LogError logs err at error level with msg.
func LogError(err error, msg string) {
	LogWithError(err).Error(msg)
}

// ErrorFields expands err into log fields.
func ErrorFields(err error) []Field {
	if err == nil {
		return []Field{F("error", "<nil>")}
	}
	fields := []Field{F("error", err.Error()), F("error_kind", int(errors.KindOf(err)))}

	var fileErr *errors.FileError
	if errors.As(err, &fileErr) && fileErr.Path() != "" {
		fields = append(fields, F("path", fileErr.Path()))
	}
	var configErr *errors.ConfigError
	if errors.As(err, &configErr) && configErr.Param() != "" {
		fields = append(fields, F("param", configErr.Param()))
	}
	var storeErr *errors.StoreError
	if errors.As(err, &storeErr) {
		fields = append(fields, F("backend", storeErr.Backend()))
		if op := storeErr.Operation(); op != "" {
			fields = append(fields, F("operation", op))
		}
	}
	var notFound *errors.NotFoundError
	if errors.As(err, &notFound) && notFound.Query() != "" {
		fields = append(fields, F("query", notFound.Query()))
	}
	return fields
}
