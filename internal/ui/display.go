package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/x/term"
)

// DefaultTermWidth is used when w is not a terminal or its size is unknown.
const DefaultTermWidth = 100

const minRenderWidth = 20

// TermWidth reports the column count of w when it is a terminal.
func TermWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(f.Fd()) {
		return DefaultTermWidth
	}
	width, _, err := term.GetSize(f.Fd())
	if err != nil || width <= 0 {
		return DefaultTermWidth
	}
	return width
}

// RenderWidth is the wrap width for markdown written to w, leaving room for
// the render margin.
func RenderWidth(w io.Writer) int {
	return clampWidth(TermWidth(w) - MarkdownRenderMargin)
}

func clampWidth(n int) int {
	if n < minRenderWidth {
		return minRenderWidth
	}
	return n
}
