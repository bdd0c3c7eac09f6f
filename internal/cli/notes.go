package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aidanlsb/jot/internal/audit"
	"github.com/aidanlsb/jot/internal/editor"
	"github.com/aidanlsb/jot/internal/notes"
	"github.com/aidanlsb/jot/internal/ui"
)

type notesData struct {
	Space string        `json:"space"`
	Notes []notes.Entry `json:"notes"`
}

// printNotes prints the "[space]" header followed by one "key: value" line
// per note, or "No notes found".
func printNotes(a *App, store *notes.Store) {
	a.println(ui.SpaceHeader(a.Space))
	if store.Len() == 0 {
		a.println(ui.Hint("No notes found"))
		return
	}
	for _, e := range store.Entries() {
		a.println(ui.NoteLine(e.Key, e.Value))
	}
}

// finishMutation prints the confirmation message and the updated list.
func finishMutation(a *App, store *notes.Store, message string, data map[string]interface{}) {
	if a.JSON {
		if data == nil {
			data = map[string]interface{}{}
		}
		data["space"] = a.Space
		data["notes"] = store.Entries()
		outputSuccess(a, data, &Meta{Count: store.Len(), Space: a.Space})
		return
	}
	a.println(message)
	printNotes(a, store)
}

func noteNotFound(a *App, key string) error {
	return handleErrorMsg(a, ErrNoteNotFound,
		fmt.Sprintf("note not found: %s", key),
		"Run 'jot list' to see note keys")
}

func newListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes in the current space",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := a.loadNotes()
			if a.JSON {
				outputSuccess(a, notesData{Space: a.Space, Notes: store.Entries()},
					&Meta{Count: store.Len(), Space: a.Space})
				return nil
			}
			printNotes(a, store)
			return nil
		},
	}
}

func newAddCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>",
		Short: "Append a note to the current space",
		Long: `Append a note to the current space.

The note gets the next key (number of notes + 1). Multiple arguments are
joined with spaces, so quoting is optional.

Examples:
  jot add "call the plumber"
  jot add buy oat milk`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return handleErrorMsg(a, ErrMissingArgument, "requires note text", "Usage: jot add <text>")
			}

			store := a.loadNotes()
			key := store.Add(text)
			if err := a.saveNotes(store); err != nil {
				return err
			}
			a.Logger.Debug("note added", zap.String("key", key))
			a.record(audit.Entry{Operation: audit.OpAdd, Key: key, Text: text})

			finishMutation(a, store, fmt.Sprintf("Note added: %s -> %s", key, text),
				map[string]interface{}{"key": key, "value": text})
			return nil
		},
	}
}

func newDeleteCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <key>",
		Aliases: []string{"del", "rm"},
		Short:   "Delete a note and renumber the rest",
		Long: `Delete a note from the current space.

Remaining notes are renumbered 1..N in their existing order.

Examples:
  jot delete 2
  jot rm 1`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeNoteKeys(a, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return handleErrorMsg(a, ErrMissingArgument, "requires a note key", "Usage: jot delete <key>")
			}
			key := args[0]

			store := a.loadNotes()
			old, _ := store.Get(key)
			if !store.Delete(key) {
				return noteNotFound(a, key)
			}
			if err := a.saveNotes(store); err != nil {
				return err
			}
			a.record(audit.Entry{Operation: audit.OpDelete, Key: key, Text: old})

			finishMutation(a, store, fmt.Sprintf("Note deleted: %s", key),
				map[string]interface{}{"deleted": key})
			return nil
		},
	}
}

func newEditCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "edit <key>",
		Aliases: []string{"ed"},
		Short:   "Edit a note in your editor",
		Long: `Open a note in your editor and save the result.

The editor comes from 'editor' in config.toml, then $EDITOR, then vim.
Leaving the file empty or quitting with an error keeps the note unchanged.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeNoteKeys(a, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return handleErrorMsg(a, ErrMissingArgument, "requires a note key", "Usage: jot edit <key>")
			}
			key := args[0]

			store := a.loadNotes()
			old, ok := store.Get(key)
			if !ok {
				return noteNotFound(a, key)
			}

			updated, err := a.newEditor().Edit(cmd.Context(), old)
			if err != nil {
				suggestion := ""
				if errors.Is(err, editor.ErrNoTerminal) {
					suggestion = "Set editor_mode = \"gui\" in config.toml for editors that do not need a terminal"
				}
				return handleError(a, ErrEditorFailed, fmt.Errorf("edit aborted or failed: %w", err), suggestion)
			}

			store.Edit(key, updated)
			if err := a.saveNotes(store); err != nil {
				return err
			}
			a.record(audit.Entry{Operation: audit.OpEdit, Key: key, Text: updated,
				Extra: map[string]interface{}{"old": old}})

			finishMutation(a, store, "Note updated.",
				map[string]interface{}{"key": key, "value": updated})
			return nil
		},
	}
}

func newSwapCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:               "swap <key1> <key2>",
		Short:             "Exchange the text of two notes",
		Args:              cobra.MaximumNArgs(2),
		ValidArgsFunction: completeNoteKeys(a, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return handleErrorMsg(a, ErrMissingArgument, "requires two note keys", "Usage: jot swap <key1> <key2>")
			}

			store := a.loadNotes()
			if !store.Swap(args[0], args[1]) {
				return handleErrorMsg(a, ErrNoteNotFound, "one or both keys not found", "Run 'jot list' to see note keys")
			}
			if err := a.saveNotes(store); err != nil {
				return err
			}
			a.record(audit.Entry{Operation: audit.OpSwap,
				Extra: map[string]interface{}{"keys": []string{args[0], args[1]}}})

			finishMutation(a, store, fmt.Sprintf("Swapped notes %s and %s", args[0], args[1]),
				map[string]interface{}{"swapped": []string{args[0], args[1]}})
			return nil
		},
	}
}

func newClearCmd(a *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "clear",
		Aliases: []string{"cl"},
		Short:   "Delete every note in the current space",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := a.loadNotes()

			answer, err := confirmDestructive(a, yes, "Are you sure you want to delete all notes?")
			if err != nil {
				return err
			}
			switch answer {
			case answerNo:
				a.println("Aborted. No notes were deleted.")
				return nil
			case answerInvalid:
				a.println("Invalid input. Please enter 'y' or 'n'.")
				return nil
			}

			removed := store.Len()
			store.Clear()
			if err := a.saveNotes(store); err != nil {
				return err
			}
			a.record(audit.Entry{Operation: audit.OpClear,
				Extra: map[string]interface{}{"removed": removed}})

			if a.JSON {
				outputSuccess(a, map[string]interface{}{"space": a.Space, "removed": removed},
					&Meta{Space: a.Space})
				return nil
			}
			a.println("All notes deleted.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:               "show <key>",
		Short:             "Render a note as markdown",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeNoteKeys(a, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return handleErrorMsg(a, ErrMissingArgument, "requires a note key", "Usage: jot show <key>")
			}
			key := args[0]

			store := a.loadNotes()
			text, ok := store.Get(key)
			if !ok {
				return noteNotFound(a, key)
			}

			if a.JSON {
				outputSuccess(a, notes.Entry{Key: key, Value: text}, &Meta{Space: a.Space})
				return nil
			}

			rendered, err := ui.RenderMarkdown(text, ui.RenderWidth(a.Out))
			if err != nil {
				return handleError(a, ErrInternal, fmt.Errorf("render note: %w", err), "")
			}
			a.println(ui.SpaceHeader(a.Space) + " " + ui.Hint(key))
			a.printf("%s", rendered)
			return nil
		},
	}
}
