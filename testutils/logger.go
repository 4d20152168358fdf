package testutils

import (
	"fmt"
	"strings"
	"sync"

	"github.com/tada/mqtt-pub/logger"
)

// The LogT interface is fulfilled by *testing.T but can be implemented by a T mock if needed.
type LogT interface {
	Helper()
	Log(...interface{})
}

// Logger is a logger.Logger that sends its output to a test log and also records it so that a
// test can verify what was logged. Each entry is the level name followed by the arguments
// formatted in the manner of fmt.Println, without the trailing newline.
type Logger struct {
	level   logger.Level
	t       LogT
	lock    sync.Mutex
	entries []string
}

// NewLogger creates a new Logger configured to log at the given level
func NewLogger(l logger.Level, t LogT) *Logger {
	return &Logger{level: l, t: t}
}

func (l *Logger) log(lv logger.Level, args []interface{}) {
	if l.level < lv {
		return
	}
	e := strings.ToUpper(lv.String()) + " " + strings.TrimSuffix(fmt.Sprintln(args...), "\n")
	l.lock.Lock()
	l.entries = append(l.entries, e)
	l.lock.Unlock()
	l.t.Helper()
	l.t.Log(e)
}

// Entries returns a copy of all entries logged so far
func (l *Logger) Entries() []string {
	l.lock.Lock()
	defer l.lock.Unlock()
	return append([]string(nil), l.entries...)
}

// Logged returns true if some entry contains the given string
func (l *Logger) Logged(s string) bool {
	for _, e := range l.Entries() {
		if strings.Contains(e, s) {
			return true
		}
	}
	return false
}

func (l *Logger) DebugEnabled() bool {
	return l.level >= logger.Debug
}

func (l *Logger) Debug(args ...interface{}) {
	l.t.Helper()
	l.log(logger.Debug, args)
}

func (l *Logger) ErrorEnabled() bool {
	return l.level >= logger.Error
}

func (l *Logger) Error(args ...interface{}) {
	l.t.Helper()
	l.log(logger.Error, args)
}

func (l *Logger) InfoEnabled() bool {
	return l.level >= logger.Info
}

func (l *Logger) Info(args ...interface{}) {
	l.t.Helper()
	l.log(logger.Info, args)
}
