package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level enumerates severity tiers.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l >= 0 && int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "UNKNOWN"
}

// ParseLevel maps a level name (case-insensitive) to a Level.
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return DEBUG, nil
	case "", "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	}
	return INFO, fmt.Errorf("unknown log level %q", name)
}

// Logger is a levelled logger safe for concurrent use.
type Logger struct {
	mu    sync.Mutex
	level Level
	inner *log.Logger
}

// New returns a logger writing to w with the given minimum level.
func New(w io.Writer, minLevel Level) *Logger {
	return &Logger{
		level: minLevel,
		inner: log.New(w, "", log.Ltime|log.Lmicroseconds),
	}
}

var (
	globalMu     sync.Mutex
	globalLogger *Logger
)

// Init replaces the process-wide logger.
func Init(w io.Writer, minLevel Level) *Logger {
	l := New(w, minLevel)
	globalMu.Lock()
	globalLogger = l
	globalMu.Unlock()
	return l
}

// L returns the process-wide logger, falling back to stderr at INFO.
func L() *Logger {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger == nil {
		globalLogger = New(os.Stderr, INFO)
	}
	return globalLogger
}

// SetLevel changes the minimum level emitted.
func (l *Logger) SetLevel(lvl Level) {
	l.mu.Lock()
	l.level = lvl
	l.mu.Unlock()
}

func (l *Logger) log(lvl Level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if lvl < l.level {
		return
	}
	l.inner.Printf("[%s] %s", lvl, fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(f string, a ...any) { l.log(DEBUG, f, a...) }
func (l *Logger) Info(f string, a ...any)  { l.log(INFO, f, a...) }
func (l *Logger) Warn(f string, a ...any)  { l.log(WARN, f, a...) }
func (l *Logger) Error(f string, a ...any) { l.log(ERROR, f, a...) }
