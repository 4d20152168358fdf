// Package logger contains a leveled Logger interface and an implementation that is based on the
// standard log.Logger
package logger

import (
	"fmt"
	"io"
	"log"
	"strings"
)

// A Logger logs information using a log level
type Logger interface {
	// DebugEnabled returns true if debug level logging is enabled
	DebugEnabled() bool

	// Debug logs at debug level. Arguments are handled in the manner of fmt.Println.
	Debug(...interface{})

	// ErrorEnabled returns true if error level logging is enabled
	ErrorEnabled() bool

	// Error logs at error level. Arguments are handled in the manner of fmt.Println.
	Error(...interface{})

	// InfoEnabled returns true if info level logging is enabled
	InfoEnabled() bool

	// Info logs at info level. Arguments are handled in the manner of fmt.Println.
	Info(...interface{})
}

// Level determines what logging is enabled
type Level int

const (
	// Silent means that all logging is disabled
	Silent = Level(iota)

	// Error means that only error logging is enabled
	Error

	// Info means that error and info logging is enabled
	Info

	// Debug means that all logging is enabled
	Debug
)

var levelNames = []string{"silent", "error", "info", "debug"}

// ParseLevel returns the Level that corresponds to the given name. Case is ignored.
func ParseLevel(s string) (Level, error) {
	ls := strings.ToLower(strings.TrimSpace(s))
	for i, n := range levelNames {
		if n == ls {
			return Level(i), nil
		}
	}
	return Silent, fmt.Errorf("unknown log level %q, expected one of %s", s, strings.Join(levelNames, ", "))
}

func (l Level) String() string {
	if l >= Silent && int(l) < len(levelNames) {
		return levelNames[l]
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

type leveled struct {
	logs [Debug + 1]*log.Logger
}

var prefixes = [...]string{Error: "ERROR ", Info: "INFO  ", Debug: "DEBUG "}

func (l *leveled) print(lv Level, args []interface{}) {
	if lg := l.logs[lv]; lg != nil {
		lg.Println(args...)
	}
}

func (l *leveled) Debug(args ...interface{}) {
	l.print(Debug, args)
}

func (l *leveled) DebugEnabled() bool {
	return l.logs[Debug] != nil
}

func (l *leveled) Error(args ...interface{}) {
	l.print(Error, args)
}

func (l *leveled) ErrorEnabled() bool {
	return l.logs[Error] != nil
}

func (l *leveled) Info(args ...interface{}) {
	l.print(Info, args)
}

func (l *leveled) InfoEnabled() bool {
	return l.logs[Info] != nil
}

// New returns a logger that is based on the standard log.Logger. Debug and info output goes to out
// and error output goes to err. Nothing is logged at level Silent.
func New(level Level, out, err io.Writer) Logger {
	l := &leveled{}
	for lv := Error; lv <= level && lv <= Debug; lv++ {
		w := out
		if lv == Error {
			w = err
		}
		l.logs[lv] = log.New(w, prefixes[lv], log.LstdFlags)
	}
	return l
}
