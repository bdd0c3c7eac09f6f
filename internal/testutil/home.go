// Package testutil provides helpers for tests that need a note home on disk.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestHome is a temporary base directory holding spaces and a pointer file.
type TestHome struct {
	Path   string
	t      testing.TB
	files  map[string]string
	active string
}

// NewTestHome creates a home builder. Call Build() to create the directory.
func NewTestHome(t testing.TB) *TestHome {
	t.Helper()
	return &TestHome{
		t:     t,
		files: make(map[string]string),
	}
}

// WithSpace adds spaces/<name>.json with the given raw content.
func (h *TestHome) WithSpace(name, content string) *TestHome {
	h.files[filepath.Join("spaces", name+".json")] = content
	return h
}

// WithFile adds a file relative to the home root.
func (h *TestHome) WithFile(relPath, content string) *TestHome {
	h.files[relPath] = content
	return h
}

// WithCurrent writes the current_space pointer.
func (h *TestHome) WithCurrent(name string) *TestHome {
	h.active = name
	return h
}

// Build creates the home directory and every configured file.
func (h *TestHome) Build() *TestHome {
	h.t.Helper()
	h.Path = h.t.TempDir()

	for rel, content := range h.files {
		h.writeFile(rel, content)
	}
	if h.active != "" {
		h.writeFile("current_space", h.active+"\n")
	}
	return h
}

func (h *TestHome) writeFile(relPath, content string) {
	h.t.Helper()
	fullPath := filepath.Join(h.Path, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		h.t.Fatalf("failed to create directory for %s: %v", relPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		h.t.Fatalf("failed to write %s: %v", relPath, err)
	}
}

// ReadFile returns the content of a file relative to the home root.
func (h *TestHome) ReadFile(relPath string) string {
	h.t.Helper()
	content, err := os.ReadFile(filepath.Join(h.Path, relPath))
	if err != nil {
		h.t.Fatalf("failed to read %s: %v", relPath, err)
	}
	return string(content)
}

// SpaceFile returns the raw JSON of a space.
func (h *TestHome) SpaceFile(name string) string {
	h.t.Helper()
	return h.ReadFile(filepath.Join("spaces", name+".json"))
}

// Current returns the trimmed pointer contents, or "" when there is none.
func (h *TestHome) Current() string {
	h.t.Helper()
	content, err := os.ReadFile(filepath.Join(h.Path, "current_space"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(content))
}

// FileExists reports whether a file exists relative to the home root.
func (h *TestHome) FileExists(relPath string) bool {
	h.t.Helper()
	_, err := os.Stat(filepath.Join(h.Path, relPath))
	return err == nil
}

// ModTime returns the modification time of a file, failing if it is missing.
func (h *TestHome) ModTime(relPath string) int64 {
	h.t.Helper()
	info, err := os.Stat(filepath.Join(h.Path, relPath))
	if err != nil {
		h.t.Fatalf("stat %s: %v", relPath, err)
	}
	return info.ModTime().UnixNano()
}

// EmptySpace is the content of a space with no notes.
func EmptySpace() string {
	return "{\n  \"entries\": {}\n}\n"
}

// ThreeNotes returns a space holding A, B, C under keys 1..3.
func ThreeNotes() string {
	return `{
  "entries": {
    "1": "A",
    "2": "B",
    "3": "C"
  }
}
`
}
