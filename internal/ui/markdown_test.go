package ui

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	tests := []struct {
		name    string
		content string
		width   int
		want    string
	}{
		{name: "plain note", content: "call the plumber", width: 80, want: "call the plumber"},
		{name: "heading", content: "# Errands", width: 80, want: "Errands"},
		{name: "default width", content: "hello", width: 0, want: "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := RenderMarkdown(tt.content, tt.width)
			if err != nil {
				t.Fatalf("RenderMarkdown() error = %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("expected %q in output, got %q", tt.want, out)
			}
			if !strings.HasSuffix(out, "\n") || strings.HasSuffix(out, "\n\n") {
				t.Errorf("expected exactly one trailing newline, got %q", out)
			}
		})
	}
}

func TestNoteMarkdownStyleFollowsAccent(t *testing.T) {
	saveTheme(t)

	ConfigureTheme("212")
	if c := noteMarkdownStyle().Heading.Color; c == nil || *c != "212" {
		t.Fatalf("expected heading color 212, got %v", c)
	}
	if c := noteMarkdownStyle().Code.Color; c == nil || *c != "212" {
		t.Fatalf("expected code color 212, got %v", c)
	}

	ConfigureTheme("none")
	if c := noteMarkdownStyle().Heading.Color; c != nil {
		t.Fatalf("expected no heading color, got %q", *c)
	}
}
