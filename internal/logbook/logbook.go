// Package logbook persists client diagnostics to a size-capped text file in
// the home directory. Entries are tagged with the area of the client that
// produced them, so a session teardown, a swallowed refresh failure and a
// plain remote rejection stay distinguishable in the on-screen tail.
package logbook

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level is the severity of an entry.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Scope names the client area an entry belongs to.
type Scope string

const (
	ScopeSession Scope = "session"
	ScopeOrders  Scope = "orders"
	ScopeSales   Scope = "sales"
	ScopeClient  Scope = "client"
)

// maxFileBytes caps the diagnostics file; Append halves it once exceeded,
// keeping the newest entries. The file must never grow unbounded across
// long-lived installs.
const maxFileBytes = 256 << 10

// Logbook writes timestamped, scoped entries to a single file. All methods
// are safe on a nil receiver so callers can run without diagnostics.
type Logbook struct {
	path string
	mu   sync.Mutex
}

// New creates a logbook backed by the given path, creating parent
// directories as needed.
func New(path string) (*Logbook, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logbook: create log directory: %w", err)
	}
	return &Logbook{path: path}, nil
}

// Path returns the file backing this logbook.
func (l *Logbook) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Append writes one entry. Logging failures are swallowed; the client must
// never fail an operation because its diagnostics file is unwritable.
func (l *Logbook) Append(scope Scope, level Level, message string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rotateLocked()
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer file.Close()
	fmt.Fprintf(file, "%s %-5s [%s] %s\n",
		time.Now().UTC().Format(time.RFC3339),
		string(level),
		string(scope),
		strings.TrimSpace(message),
	)
}

// rotateLocked drops the older half of the file once it exceeds the cap.
// Callers hold l.mu.
func (l *Logbook) rotateLocked() {
	info, err := os.Stat(l.path)
	if err != nil || info.Size() <= maxFileBytes {
		return
	}
	lines := l.readLocked()
	if len(lines) < 2 {
		return
	}
	keep := lines[len(lines)/2:]
	_ = os.WriteFile(l.path, []byte(strings.Join(keep, "\n")+"\n"), 0o644)
}

func (l *Logbook) readLocked() []string {
	file, err := os.Open(l.path)
	if err != nil {
		return nil
	}
	defer file.Close()
	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}

// Tail returns up to maxLines of the most recent entries for the log panel.
func (l *Logbook) Tail(maxLines int) []string {
	if l == nil || maxLines <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	lines := l.readLocked()
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return lines
}

// Log is a Logbook bound to one scope. It satisfies the small logger
// interfaces the domain controllers accept.
type Log struct {
	book  *Logbook
	scope Scope
}

// Scoped binds the logbook to a scope. Safe on a nil receiver; the returned
// Log then discards everything.
func (l *Logbook) Scoped(scope Scope) Log {
	return Log{book: l, scope: scope}
}

// Info records an informational entry in the bound scope.
func (g Log) Info(format string, args ...any) {
	g.book.Append(g.scope, LevelInfo, fmt.Sprintf(format, args...))
}

// Warn records a warning in the bound scope.
func (g Log) Warn(format string, args ...any) {
	g.book.Append(g.scope, LevelWarn, fmt.Sprintf(format, args...))
}

// Error records an error in the bound scope.
func (g Log) Error(format string, args ...any) {
	g.book.Append(g.scope, LevelError, fmt.Sprintf(format, args...))
}
