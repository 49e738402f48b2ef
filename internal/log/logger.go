// Package log provides structured logging for pickd on top of logrus.
// Output defaults to a human-readable bracketed format; JSON output and
// file mirroring are available through options.
package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"pickd/internal/errors"
)

var (
	isDebug = false
	logger  = NewLogger()
)

// Field is a single structured key/value attached to a log line.
type Field struct {
	Key   string
	Value interface{}
}

// F constructs a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger wraps a logrus logger with the pickd formatting conventions.
type Logger struct {
	lr   *logrus.Logger
	file *os.File
}

// Option configures a Logger.
type Option func(*Logger)

// WithOutput sends log output to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.lr.SetOutput(w)
	}
}

// WithJSON switches the logger to one-JSON-object-per-line output.
func WithJSON() Option {
	return func(l *Logger) {
		l.lr.SetFormatter(jsonFormatter{})
	}
}

// WithFile mirrors log output to the given file in addition to stdout.
func WithFile(path string) Option {
	return func(l *Logger) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			l.lr.SetOutput(os.Stdout)
			return
		}
		l.file = f
		l.lr.SetOutput(io.MultiWriter(os.Stdout, f))
	}
}

// NewLogger creates a logger with the given options applied.
func NewLogger(opts ...Option) *Logger {
	l := &Logger{lr: logrus.New()}
	l.lr.SetOutput(os.Stdout)
	l.lr.SetLevel(logrus.DebugLevel)
	l.lr.SetFormatter(textFormatter{})
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Configure replaces the global logger.
func Configure(opts ...Option) {
	logger = NewLogger(opts...)
}

// SetDebug toggles debug-level output globally.
func SetDebug(debug bool) {
	isDebug = debug
}

// Entry carries accumulated fields toward a final log call.
type Entry struct {
	logger *Logger
	fields logrus.Fields
}

// With returns an Entry with the given fields attached.
func (l *Logger) With(fields ...Field) *Entry {
	e := &Entry{logger: l, fields: logrus.Fields{}}
	return e.With(fields...)
}

// WithContext returns an Entry bound to ctx. Context values are not yet
// mapped to fields.
func (l *Logger) WithContext(ctx context.Context) *Entry {
	_ = ctx
	return &Entry{logger: l, fields: logrus.Fields{}}
}

// With returns a copy of the entry with additional fields.
func (e *Entry) With(fields ...Field) *Entry {
	next := &Entry{logger: e.logger, fields: logrus.Fields{}}
	for k, v := range e.fields {
		next.fields[k] = v
	}
	for _, f := range fields {
		next.fields[f.Key] = f.Value
	}
	return next
}

func (e *Entry) Debug(args ...interface{}) {
	e.logger.log(logrus.DebugLevel, e.fields, fmt.Sprint(args...))
}

func (e *Entry) Debugf(format string, args ...interface{}) {
	e.logger.log(logrus.DebugLevel, e.fields, fmt.Sprintf(format, args...))
}

func (e *Entry) Info(args ...interface{}) {
	e.logger.log(logrus.InfoLevel, e.fields, fmt.Sprint(args...))
}

func (e *Entry) Infof(format string, args ...interface{}) {
	e.logger.log(logrus.InfoLevel, e.fields, fmt.Sprintf(format, args...))
}

func (e *Entry) Warn(args ...interface{}) {
	e.logger.log(logrus.WarnLevel, e.fields, fmt.Sprint(args...))
}

func (e *Entry) Warnf(format string, args ...interface{}) {
	e.logger.log(logrus.WarnLevel, e.fields, fmt.Sprintf(format, args...))
}

func (e *Entry) Error(args ...interface{}) {
	e.logger.log(logrus.ErrorLevel, e.fields, fmt.Sprint(args...))
}

func (e *Entry) Errorf(format string, args ...interface{}) {
	e.logger.log(logrus.ErrorLevel, e.fields, fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(args ...interface{}) {
	l.log(logrus.DebugLevel, nil, fmt.Sprint(args...))
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(logrus.DebugLevel, nil, fmt.Sprintf(format, args...))
}

func (l *Logger) Info(args ...interface{}) {
	l.log(logrus.InfoLevel, nil, fmt.Sprint(args...))
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(logrus.InfoLevel, nil, fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(args ...interface{}) {
	l.log(logrus.WarnLevel, nil, fmt.Sprint(args...))
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(logrus.WarnLevel, nil, fmt.Sprintf(format, args...))
}

func (l *Logger) Error(args ...interface{}) {
	l.log(logrus.ErrorLevel, nil, fmt.Sprint(args...))
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(logrus.ErrorLevel, nil, fmt.Sprintf(format, args...))
}

func (l *Logger) log(level logrus.Level, fields logrus.Fields, msg string) {
	if level == logrus.DebugLevel && !isDebug {
		return
	}
	data := logrus.Fields{"caller": callerLocation()}
	for k, v := range fields {
		data[k] = v
	}
	l.lr.WithFields(data).Log(level, msg)
}

// Package-level helpers using the global logger.

func Debug(args ...interface{}) { logger.Debug(args...) }

func Debugf(format string, args ...interface{}) { logger.Debugf(format, args...) }

func Info(args ...interface{}) { logger.Info(args...) }

func Infof(format string, args ...interface{}) { logger.Infof(format, args...) }

func Warn(args ...interface{}) { logger.Warn(args...) }

func Warnf(format string, args ...interface{}) { logger.Warnf(format, args...) }

func Error(args ...interface{}) { logger.Error(args...) }

func Errorf(format string, args ...interface{}) { logger.Errorf(format, args...) }

// LogWithFields returns an Entry on the global logger with fields attached.
func LogWithFields(fields ...Field) *Entry {
	return logger.With(fields...)
}

// LogWithError returns an Entry carrying err plus any kind/path/param
// information the application error types provide.
func LogWithError(err error) *Entry {
	e := logger.With(F("error", err))
	if err == nil {
		return e
	}

	var pathErr *errors.PathError
	if errors.As(err, &pathErr) {
		e = e.With(F("path", pathErr.Path()), F("error_kind", int(pathErr.Kind())))
	}

	var configErr *errors.ConfigError
	if errors.As(err, &configErr) {
		e = e.With(F("param", configErr.Param()), F("error_kind", int(configErr.Kind())))
	}

	var appErr *errors.ApplicationError
	if errors.As(err, &appErr) {
		if _, ok := e.fields["error_kind"]; !ok {
			e = e.With(F("error_kind", int(appErr.Kind())))
		}
	}

	return e
}

// LogError logs err at error level with the given message.
func LogError(err error, msg string) {
	LogWithError(err).Error(msg)
}

// callerLocation walks the stack past this file and logrus to find the
// first application frame.
func callerLocation() string {
	pcs := make([]uintptr, 16)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		file := frame.File
		if !strings.HasSuffix(file, "internal/log/logger.go") && !strings.Contains(file, "sirupsen/logrus") {
			return fmt.Sprintf("%s:%d", filepath.Base(file), frame.Line)
		}
		if !more {
			break
		}
	}
	return "unknown"
}

// textFormatter renders entries as
// [2006-01-02 15:04:05] LEVEL: message key=value (file.go:12)
type textFormatter struct{}

func (textFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "[%s] %s: %s",
		entry.Time.Format("2006-01-02 15:04:05"),
		strings.ToUpper(entry.Level.String()),
		entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k != "caller" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}

	if caller, ok := entry.Data["caller"].(string); ok {
		fmt.Fprintf(&b, " (%s)", caller)
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// jsonFormatter renders entries as a single JSON object per line with
// timestamp/level/message keys plus the attached fields.
type jsonFormatter struct{}

func (jsonFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	data := make(map[string]interface{}, len(entry.Data)+3)
	for k, v := range entry.Data {
		if err, ok := v.(error); ok {
			data[k] = err.Error()
			continue
		}
		data[k] = v
	}
	data["timestamp"] = entry.Time.Format(time.RFC3339)
	data["level"] = strings.ToUpper(entry.Level.String())
	data["message"] = entry.Message

	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}
