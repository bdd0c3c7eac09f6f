package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
)

// MarkdownRenderMargin is the left margin for rendered notes and guides.
const MarkdownRenderMargin = 2

// RenderMarkdown renders content for the terminal, wrapped to width, and
// ends it with exactly one newline.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(noteMarkdownStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	out, err := r.Render(content)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}

// noteMarkdownStyle is a compact style: notes are a few lines long, so
// headings get no extra spacing and code keeps its backticks.
func noteMarkdownStyle() ansi.StyleConfig {
	gray := ptr("8")
	var accent *string
	if color, ok := AccentColor(); ok {
		accent = ptr(color)
	}
	margin := uint(MarkdownRenderMargin)

	heading := func(prefix string) ansi.StyleBlock {
		return ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: prefix}}
	}

	return ansi.StyleConfig{
		Document: ansi.StyleBlock{Margin: &margin},
		Heading: ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{
			Color: accent,
			Bold:  ptr(true),
		}},
		H1: heading("# "),
		H2: heading("## "),
		H3: heading("### "),
		Paragraph: ansi.StyleBlock{},
		BlockQuote: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: gray},
			Indent:         ptr(uint(1)),
			IndentToken:    ptr("> "),
		},
		List:          ansi.StyleList{LevelIndent: 2},
		Item:          ansi.StylePrimitive{BlockPrefix: "- "},
		Enumeration:   ansi.StylePrimitive{BlockPrefix: ". "},
		Task:          ansi.StyleTask{Ticked: "[x] ", Unticked: "[ ] "},
		Emph:          ansi.StylePrimitive{Italic: ptr(true)},
		Strong:        ansi.StylePrimitive{Bold: ptr(true)},
		Strikethrough: ansi.StylePrimitive{CrossedOut: ptr(true)},
		HorizontalRule: ansi.StylePrimitive{
			Color:  gray,
			Format: "\n----\n",
		},
		Link:     ansi.StylePrimitive{Color: gray, Underline: ptr(true)},
		LinkText: ansi.StylePrimitive{Color: accent},
		Code: ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{
			Prefix: "`",
			Suffix: "`",
			Color:  accent,
		}},
		CodeBlock: ansi.StyleCodeBlock{StyleBlock: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: gray},
			Margin:         &margin,
		}},
	}
}

func ptr[T any](v T) *T { return &v }
