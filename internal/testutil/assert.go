package testutil

import (
	"strings"
)

func (h *TestHome) AssertFileExists(relPath string) {
	h.t.Helper()
	h.assertExists(relPath, true)
}

func (h *TestHome) AssertFileNotExists(relPath string) {
	h.t.Helper()
	h.assertExists(relPath, false)
}

// AssertFileContains checks that the file at relPath includes substr.
func (h *TestHome) AssertFileContains(relPath, substr string) {
	h.t.Helper()
	h.assertContains(relPath, substr, true)
}

// AssertFileNotContains is the inverse of AssertFileContains. Use it to
// prove a deleted note is gone from disk.
func (h *TestHome) AssertFileNotContains(relPath, substr string) {
	h.t.Helper()
	h.assertContains(relPath, substr, false)
}

// AssertCurrent checks the current_space pointer.
func (h *TestHome) AssertCurrent(want string) {
	h.t.Helper()
	if got := h.Current(); got != want {
		h.t.Errorf("current space = %q, want %q", got, want)
	}
}

func (h *TestHome) assertExists(relPath string, want bool) {
	h.t.Helper()
	if got := h.FileExists(relPath); got != want {
		h.t.Errorf("%s exists = %v, want %v", relPath, got, want)
	}
}

func (h *TestHome) assertContains(relPath, substr string, want bool) {
	h.t.Helper()
	content := h.ReadFile(relPath)
	if strings.Contains(content, substr) != want {
		verb := "contain"
		if !want {
			verb = "omit"
		}
		h.t.Errorf("expected %s to %s %q, got:\n%s", relPath, verb, substr, content)
	}
}
