package ui

import (
	"fmt"
	"strings"
)

// Marks prefixed to status lines. Status lines are never colored.
const (
	markOK   = "✓"
	markFail = "✗"
	markWarn = "⚠"
)

// Successf formats a confirmation line.
func Successf(format string, args ...interface{}) string {
	return markOK + " " + fmt.Sprintf(format, args...)
}

// Error formats a failure line for stderr.
func Error(msg string) string {
	return markFail + " " + msg
}

// Warning formats a warning line for stderr.
func Warning(msg string) string {
	return markWarn + " " + msg
}

func Header(msg string) string {
	return Bold.Render(msg)
}

// SpaceName renders a space name in the accent color.
func SpaceName(name string) string {
	return Accent.Render(name)
}

// SpaceHeader renders the "[space]" line printed above a note listing.
func SpaceHeader(name string) string {
	return Header("[" + name + "]")
}

// NoteLine renders one "key: text" row of a listing. Continuation lines
// of a multi-line note are indented to sit under the text.
func NoteLine(key, text string) string {
	prefix := key + ": "
	if !strings.Contains(text, "\n") {
		return prefix + text
	}
	pad := strings.Repeat(" ", len(prefix))
	return prefix + strings.ReplaceAll(text, "\n", "\n"+pad)
}

// Hint renders secondary text.
func Hint(msg string) string {
	return Muted.Render(msg)
}

// Count renders "(n notes)" with the right plural.
func Count(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("(%d %s)", n, singular)
	}
	return fmt.Sprintf("(%d %s)", n, plural)
}
