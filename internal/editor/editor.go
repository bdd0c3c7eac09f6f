// Package editor runs the user's external editor over a piece of text.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

// DefaultCommand is used when neither config nor $EDITOR name an editor.
const DefaultCommand = "vim"

var (
	// ErrAborted is returned when the editor fails or leaves no text behind.
	ErrAborted = errors.New("edit aborted")

	// ErrNoTerminal is returned when a terminal editor is launched without one.
	ErrNoTerminal = errors.New("editor needs an interactive terminal")
)

// Mode controls whether the editor must be attached to a terminal.
type Mode int

const (
	ModeAuto Mode = iota
	ModeTerminal
	ModeGUI
)

// ParseMode maps a config value to a Mode. Unknown values fall back to auto.
func ParseMode(value string) Mode {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "terminal", "tui", "tty":
		return ModeTerminal
	case "gui", "background":
		return ModeGUI
	default:
		return ModeAuto
	}
}

var terminalEditors = map[string]bool{
	"vi": true, "vim": true, "nvim": true, "nano": true, "pico": true,
	"micro": true, "hx": true, "helix": true, "kak": true, "emacs": true,
	"ed": true, "joe": true, "mg": true,
}

// Editor edits text through an external command.
type Editor struct {
	Command string
	Mode    Mode

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Logger *zap.Logger
}

// New returns an editor for command, defaulting to DefaultCommand, wired to
// the process's standard streams.
func New(command string, mode Mode) *Editor {
	if strings.TrimSpace(command) == "" {
		command = DefaultCommand
	}
	return &Editor{
		Command: command,
		Mode:    mode,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Logger:  zap.NewNop(),
	}
}

// Edit writes initial to a temporary file, runs the editor on it and
// returns the trimmed result. The temporary file is removed on every path.
// It blocks until the editor exits or ctx is cancelled.
func (e *Editor) Edit(ctx context.Context, initial string) (string, error) {
	if e.needsTerminal() && !isTerminal(e.Stdin) {
		return "", fmt.Errorf("%w: %s", ErrNoTerminal, editorCommandName(e.Command))
	}

	tmp, err := os.CreateTemp("", "jot-*.md")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := tmp.Name()
	defer func() { _ = os.Remove(path) }()

	if _, err := io.WriteString(tmp, initial+"\n"); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	cmd := e.command(ctx, path)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	e.logger().Debug("launching editor", zap.String("command", e.Command), zap.String("file", path))
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrAborted, editorCommandName(e.Command), err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read edited file: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("%w: empty note", ErrAborted)
	}
	return text, nil
}

// command builds the editor process. Editors with arguments, such as
// "code --wait", run through sh.
func (e *Editor) command(ctx context.Context, path string) *exec.Cmd {
	editor := strings.TrimSpace(e.Command)
	if strings.ContainsAny(editor, " \t") {
		return exec.CommandContext(ctx, "sh", "-c", editor+" "+shellQuote(path))
	}
	return exec.CommandContext(ctx, editor, path)
}

func (e *Editor) needsTerminal() bool {
	switch e.Mode {
	case ModeTerminal:
		return true
	case ModeGUI:
		return false
	default:
		return isTerminalEditor(e.Command)
	}
}

func (e *Editor) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// editorCommandName returns the program name of an editor command line.
func editorCommandName(command string) string {
	command = strings.TrimSpace(command)
	if command == "" {
		return ""
	}

	var program string
	if q := command[0]; q == '"' || q == '\'' {
		if end := strings.IndexByte(command[1:], q); end >= 0 {
			program = command[1 : end+1]
		} else {
			program = command[1:]
		}
	} else {
		program = strings.Fields(command)[0]
	}
	return filepath.Base(program)
}

func isTerminalEditor(command string) bool {
	return terminalEditors[editorCommandName(command)]
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// shellQuote wraps s in single quotes, escaping any internal single quotes.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
