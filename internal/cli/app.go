package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aidanlsb/jot/internal/audit"
	"github.com/aidanlsb/jot/internal/config"
	"github.com/aidanlsb/jot/internal/editor"
	"github.com/aidanlsb/jot/internal/logging"
	"github.com/aidanlsb/jot/internal/notes"
	"github.com/aidanlsb/jot/internal/space"
	"github.com/aidanlsb/jot/internal/ui"
)

// App is the per-invocation context handed to every command. The active
// space is resolved once in setup and read from here afterwards.
type App struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	JSON bool

	Logger     *zap.Logger
	Config     *config.Config
	ConfigPath string
	Env        config.Env
	Registry   *space.Registry
	Audit      *audit.Logger

	// Space is the space this invocation operates on.
	Space string

	// newEditor builds the editor for `edit`; tests replace it.
	newEditor func() *editor.Editor

	homeFlag   string
	configFlag string
	spaceFlag  string
	debug      bool

	ready    bool
	warnings []Warning
}

// NewApp returns an App reading from in and writing to out and errOut.
func NewApp(in io.Reader, out, errOut io.Writer) *App {
	app := &App{
		In:     in,
		Out:    out,
		Err:    errOut,
		Logger: zap.NewNop(),
	}
	app.newEditor = app.defaultEditor
	return app
}

// Run executes the command line in args and reports any error on the
// error stream.
func (a *App) Run(ctx context.Context, args []string) error {
	rootCmd := NewRootCmd(a)
	rootCmd.SetArgs(args)
	defer a.Close()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(a.Err, ui.Error(err.Error()))
	}
	return err
}

// Close flushes the logger.
func (a *App) Close() {
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
}

// setup resolves environment, base directory, config and the active
// space. It is idempotent so completion functions can call it too.
func (a *App) setup(cmd *cobra.Command) error {
	if a.ready {
		return nil
	}

	logger, err := logging.New(a.debug)
	if err != nil {
		return err
	}
	a.Logger = logger

	a.Env, err = config.ParseEnv()
	if err != nil {
		return handleError(a, ErrConfigInvalid, err, "")
	}

	baseDir, err := config.ResolveBaseDir(a.homeFlag, a.Env)
	if err != nil {
		return handleError(a, ErrConfigInvalid, err, "Use --home or set JOT_HOME")
	}
	a.Registry = space.New(baseDir)

	a.ConfigPath = config.ResolvePath(a.configFlag, baseDir)
	// An explicit --config must exist, except for the config commands that
	// create it.
	if strings.TrimSpace(a.configFlag) != "" && !underCommand(cmd, "config") {
		a.Config, err = config.LoadFrom(a.ConfigPath)
	} else {
		a.Config, err = config.Load(a.ConfigPath)
	}
	if err != nil {
		return handleError(a, ErrConfigInvalid, err, "Fix or remove "+a.ConfigPath)
	}
	a.Audit = audit.New(baseDir, a.Config.Audit.Enabled)

	if a.Env.NoColor != "" {
		ui.DisableStyles()
	} else {
		ui.ConfigureTheme(a.Config.GetAccent(a.Env))
	}

	if name := strings.TrimSpace(a.spaceFlag); name != "" {
		if !a.Registry.Exists(name) {
			return handleErrorMsg(a, ErrSpaceNotFound,
				fmt.Sprintf("space '%s' does not exist", name),
				"Run 'jot spaces list' to see available spaces")
		}
		a.Space = name
	} else {
		a.Space = a.Registry.Current()
	}

	a.Logger.Debug("resolved invocation context",
		zap.String("command", cmd.CommandPath()),
		zap.String("home", baseDir),
		zap.String("config", a.ConfigPath),
		zap.String("space", a.Space),
	)
	a.ready = true
	return nil
}

// loadNotes loads the active space. A corrupt file is reported as a
// warning and treated as an empty space.
func (a *App) loadNotes() *notes.Store {
	path := a.Registry.Path(a.Space)
	store, err := notes.Load(path)
	if err != nil {
		a.Logger.Debug("notes file unusable", zap.String("path", path), zap.Error(err))
		a.warn(WarnNotesUnreadable, fmt.Sprintf("%v; treating space '%s' as empty", err, a.Space))
	}
	store.SetKeyPolicy(notes.ParseKeyPolicy(a.Config.Notes.KeyPolicy))
	return store
}

// saveNotes persists the active space.
func (a *App) saveNotes(store *notes.Store) error {
	path := a.Registry.Path(a.Space)
	if err := store.Save(path); err != nil {
		return handleError(a, ErrFileWriteError, err, "Check permissions on "+a.Registry.Dir())
	}
	a.Logger.Debug("saved notes", zap.String("path", path), zap.Int("count", store.Len()))
	return nil
}

// record appends a change to the activity log. Failures only warn; the
// change itself already succeeded.
func (a *App) record(entry audit.Entry) {
	if a.Audit == nil || !a.Audit.Enabled() {
		return
	}
	if entry.Space == "" {
		entry.Space = a.Space
	}
	if err := a.Audit.Log(entry); err != nil {
		a.warn(WarnAuditFailed, err.Error())
	}
}

// warn records a warning. Text output prints it to stderr right away;
// JSON output attaches it to the response envelope.
func (a *App) warn(code, message string) {
	a.warnings = append(a.warnings, Warning{Code: code, Message: message})
	if !a.JSON {
		fmt.Fprintln(a.Err, ui.Warning(message))
	}
}

func underCommand(cmd *cobra.Command, name string) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == name && c.HasParent() {
			return true
		}
	}
	return false
}

func (a *App) defaultEditor() *editor.Editor {
	ed := editor.New(a.Config.GetEditor(a.Env), editor.ParseMode(a.Config.EditorMode))
	ed.Stdin = a.In
	ed.Stdout = a.Out
	ed.Stderr = a.Err
	ed.Logger = a.Logger
	return ed
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.Out, format, args...)
}

func (a *App) println(args ...interface{}) {
	fmt.Fprintln(a.Out, args...)
}
