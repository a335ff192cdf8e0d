package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Logger defines a minimal, printf-style logging contract shared by every
// component in the application.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Level represents the severity of a log message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

var (
	sinkInstance *sink
	sinkOnce     sync.Once
)

// sink owns the shared log file handle. Component loggers share a single sink
// so concurrent writes stay ordered.
type sink struct {
	mu     sync.Mutex
	file   *os.File
	logger *log.Logger
	level  Level
}

func getSink() *sink {
	sinkOnce.Do(func() {
		sinkInstance = newSink(LevelDebug)
	})
	return sinkInstance
}

func newSink(level Level) *sink {
	s := &sink{level: level, logger: log.New(os.Stderr, "", log.LstdFlags)}

	home, err := os.UserHomeDir()
	if err != nil {
		return s
	}
	path := filepath.Join(home, "remind-debug.log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return s
	}
	s.file = file
	s.logger = log.New(file, "", log.LstdFlags)
	return s
}

func (s *sink) write(level Level, component, format string, args ...any) {
	if level < s.level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("[%s] [%s] %s", level, component, msg)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Print(line)
	// Warnings and errors also surface on stderr when writing to the file sink.
	if s.file != nil && level >= LevelWarn {
		log.Print(line)
	}
}

// componentLogger scopes log lines to a named component.
type componentLogger struct {
	sink      *sink
	component string
}

// NewComponentLogger returns the default application logger scoped to a component.
func NewComponentLogger(component string) Logger {
	return &componentLogger{sink: getSink(), component: component}
}

func (l *componentLogger) Debug(format string, args ...any) {
	l.sink.write(LevelDebug, l.component, format, args...)
}

func (l *componentLogger) Info(format string, args ...any) {
	l.sink.write(LevelInfo, l.component, format, args...)
}

func (l *componentLogger) Warn(format string, args ...any) {
	l.sink.write(LevelWarn, l.component, format, args...)
}

func (l *componentLogger) Error(format string, args ...any) {
	l.sink.write(LevelError, l.component, format, args...)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Nop returns a logger that discards all output.
func Nop() Logger {
	return nopLogger{}
}

// OrNop returns logger when non-nil, otherwise a no-op logger.
func OrNop(logger Logger) Logger {
	if logger == nil {
		return Nop()
	}
	return logger
}
