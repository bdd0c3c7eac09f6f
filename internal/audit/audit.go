// Package audit provides an append-only log of note and space changes.
package audit

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aidanlsb/jot/internal/atomicfile"
)

// FileName is the log file inside the base directory.
const FileName = "activity.log"

// Operations recorded in the log.
const (
	OpAdd         = "add"
	OpDelete      = "delete"
	OpEdit        = "edit"
	OpSwap        = "swap"
	OpClear       = "clear"
	OpSpaceCreate = "space_create"
	OpSpaceRemove = "space_remove"
	OpSpaceSwitch = "space_switch"
)

// Entry is a single log line.
type Entry struct {
	Timestamp time.Time              `json:"ts"`
	Operation string                 `json:"op"`
	Space     string                 `json:"space"`
	Key       string                 `json:"key,omitempty"`
	Text      string                 `json:"text,omitempty"`
	Extra     map[string]interface{} `json:"extra,omitempty"`
}

// Logger appends entries to the log. A disabled logger does nothing.
type Logger struct {
	path    string
	enabled bool
	now     func() time.Time
	mu      sync.Mutex
}

// New returns a logger writing to FileName under baseDir.
func New(baseDir string, enabled bool) *Logger {
	return &Logger{
		path:    filepath.Join(baseDir, FileName),
		enabled: enabled,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Enabled reports whether entries are written.
func (l *Logger) Enabled() bool {
	return l.enabled
}

// Path returns the log file path.
func (l *Logger) Path() string {
	return l.path
}

// Log appends entry as one JSON line.
func (l *Logger) Log(entry Entry) error {
	if !l.enabled {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = l.now()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal audit entry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create audit directory: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write audit entry: %w", err)
	}
	return nil
}

// Read returns every entry, oldest first. Malformed lines are skipped.
// The log is read even when the logger is disabled.
func (l *Logger) Read() ([]Entry, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}
	return entries, nil
}

// Tail returns the last n entries, optionally limited to one space.
// n <= 0 returns all matching entries.
func (l *Logger) Tail(n int, space string) ([]Entry, error) {
	all, err := l.Read()
	if err != nil {
		return nil, err
	}

	filtered := all[:0]
	for _, e := range all {
		if space == "" || e.Space == space {
			filtered = append(filtered, e)
		}
	}
	if n > 0 && len(filtered) > n {
		filtered = filtered[len(filtered)-n:]
	}
	return filtered, nil
}

// Truncate empties the log.
func (l *Logger) Truncate() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := os.Stat(l.path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return atomicfile.WriteFile(l.path, nil, 0o644)
}
