// Package glog is a small leveled logger used throughout gltfkit.
//
// It is a trimmed adaptation of g3n-engine's util/logger package: the
// console writer survives because a library has no business opening its
// own log files or network sockets, but the level/format/event plumbing
// follows the original shape.
package glog

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// Levels to filter log output.
const (
	DEBUG = iota
	INFO
	WARN
	ERROR
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

// Logger is a minimal leveled logger writing to an io.Writer-like target.
type Logger struct {
	mu     sync.Mutex
	prefix string
	level  int
	out    *os.File
}

// Default is the package-level logger used by gltfkit unless a caller
// constructs their own with New.
var Default = New("gltfkit")

// New creates a logger with the given prefix, defaulting to WARN level
// (matching the teacher's library-safe default of only surfacing
// warnings and errors unless a caller opts into more).
func New(prefix string) *Logger {
	return &Logger{prefix: prefix, level: WARN, out: os.Stderr}
}

// SetLevel sets the minimum level emitted by this logger.
func (l *Logger) SetLevel(level int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) log(level int, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}
	now := time.Now().UTC().Format("15:04:05.000000")
	msg := fmt.Sprintf(format, v...)
	fmt.Fprintf(l.out, "%s:%s:%s:%s\n", now, levelNames[level][:1], l.prefix, msg)
}

// Debug emits a DEBUG level message.
func (l *Logger) Debug(format string, v ...interface{}) { l.log(DEBUG, format, v...) }

// Info emits an INFO level message.
func (l *Logger) Info(format string, v ...interface{}) { l.log(INFO, format, v...) }

// Warn emits a WARN level message.
func (l *Logger) Warn(format string, v ...interface{}) { l.log(WARN, format, v...) }

// Error emits an ERROR level message.
func (l *Logger) Error(format string, v ...interface{}) { l.log(ERROR, format, v...) }

// SetLevelByName sets the Default logger's level by name (debug|info|warn|error).
func SetLevelByName(name string) error {
	name = strings.ToUpper(name)
	for i, n := range levelNames {
		if n == name {
			Default.SetLevel(i)
			return nil
		}
	}
	return fmt.Errorf("glog: invalid level name %q", name)
}

// Debug emits a DEBUG message on Default.
func Debug(format string, v ...interface{}) { Default.Debug(format, v...) }

// Info emits an INFO message on Default.
func Info(format string, v ...interface{}) { Default.Info(format, v...) }

// Warn emits a WARN message on Default.
func Warn(format string, v ...interface{}) { Default.Warn(format, v...) }

// Error emits an ERROR message on Default.
func Error(format string, v ...interface{}) { Default.Error(format, v...) }
