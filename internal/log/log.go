// Package log writes the qnet debug log: one category-tagged line per event,
// with key=value fields. Nothing is written until the CLI installs a log file
// (--debug or QNET_DEBUG). Each line is also published on a pubsub broker so
// tests can follow the stream.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/pubsub"
)

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel accepts the level names case-insensitively.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelDebug, fmt.Errorf("unknown log level %q", s)
}

// Category names the part of the ledger a line comes from.
type Category string

const (
	CatLedger   Category = "ledger"
	CatDB       Category = "db"
	CatConfig   Category = "config"
	CatCommands Category = "commands" // processor, middleware and handlers
	CatCache    Category = "cache"
	CatTrace    Category = "trace"
	CatCLI      Category = "cli"
)

const timeLayout = "2006-01-02T15:04:05"

type logger struct {
	mu       sync.Mutex
	out      io.WriteCloser
	enabled  bool
	minLevel Level
	broker   *pubsub.Broker[string]
}

var current atomic.Pointer[logger]

func install(out io.WriteCloser) func() {
	l := &logger{
		out:      out,
		enabled:  true,
		minLevel: LevelDebug,
		broker:   pubsub.NewBroker[string](),
	}
	current.Store(l)
	return func() {
		current.CompareAndSwap(l, nil)
		l.broker.Close()
		_ = out.Close()
	}
}

// Init appends the log to path. The returned func closes the file.
func Init(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) //nolint:gosec // user-chosen debug log path
	if err != nil {
		return nil, err
	}
	return install(f), nil
}

// InitWithTeaLog opens path through tea.LogToFile, which also routes the
// standard library logger there with prefix.
func InitWithTeaLog(path string, prefix string) (func(), error) {
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, err
	}
	return install(f), nil
}

// SetEnabled pauses or resumes logging.
func SetEnabled(enabled bool) {
	if l := current.Load(); l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel drops lines below level.
func SetMinLevel(level Level) {
	if l := current.Load(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

func Debug(cat Category, msg string, fields ...any) { write(LevelDebug, cat, msg, fields) }
func Info(cat Category, msg string, fields ...any)  { write(LevelInfo, cat, msg, fields) }
func Warn(cat Category, msg string, fields ...any)  { write(LevelWarn, cat, msg, fields) }
func Error(cat Category, msg string, fields ...any) { write(LevelError, cat, msg, fields) }

// ErrorErr logs at error level with err as the trailing "error" field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	errText := "<nil>"
	if err != nil {
		errText = err.Error()
	}
	write(LevelError, cat, msg, append(fields, "error", errText))
}

func write(level Level, cat Category, msg string, fields []any) {
	l := current.Load()
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled || level < l.minLevel {
		return
	}

	entry := format(time.Now(), level, cat, msg, fields)
	_, _ = io.WriteString(l.out, entry)
	l.broker.Publish(pubsub.LogEvent, entry)
}

// format renders "2026-10-19T10:45:00 [WARN] [commands] command rejected code=409".
// Values containing spaces are quoted; a trailing key without a value is
// rendered as key=<missing>.
func format(at time.Time, level Level, cat Category, msg string, fields []any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] [%s] %s", at.Format(timeLayout), level, cat, msg)
	for i := 0; i < len(fields); i += 2 {
		if i+1 == len(fields) {
			fmt.Fprintf(&b, " %v=<missing>", fields[i])
			break
		}
		value := fmt.Sprint(fields[i+1])
		if strings.ContainsAny(value, " \t\n") {
			value = fmt.Sprintf("%q", value)
		}
		fmt.Fprintf(&b, " %v=%s", fields[i], value)
	}
	b.WriteByte('\n')
	return b.String()
}

// LogEvent is one published log line.
type LogEvent = pubsub.Event[string]

// Subscribe streams log lines until ctx is cancelled or the log is closed.
// It returns nil when no log is installed.
func Subscribe(ctx context.Context) <-chan LogEvent {
	l := current.Load()
	if l == nil {
		return nil
	}
	return l.broker.Subscribe(ctx)
}
