package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/jot/internal/audit"
	"github.com/aidanlsb/jot/internal/space"
	"github.com/aidanlsb/jot/internal/ui"
)

type spaceRow struct {
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// switchSpace points the registry at name and maps failures to error codes.
func switchSpace(a *App, name string) error {
	if err := a.Registry.Switch(name); err != nil {
		return spaceError(a, err)
	}
	a.record(audit.Entry{Operation: audit.OpSpaceSwitch, Space: name})
	return nil
}

func spaceError(a *App, err error) error {
	switch {
	case errors.Is(err, space.ErrNotFound):
		return handleError(a, ErrSpaceNotFound, err, "Run 'jot spaces list' to see available spaces, or 'jot spaces add <name>' to create one")
	case errors.Is(err, space.ErrExists):
		return handleError(a, ErrSpaceExists, err, "Run 'jot spaces use <name>' to switch to it")
	case errors.Is(err, space.ErrInvalidName):
		return handleError(a, ErrInvalidSpaceName, err, "Space names use lowercase letters, digits and dashes")
	default:
		return handleError(a, ErrFileWriteError, err, "")
	}
}

func requireSpaceName(a *App, args []string, usage string) (string, error) {
	if len(args) == 0 {
		return "", handleErrorMsg(a, ErrMissingArgument, "requires a space name", "Usage: "+usage)
	}
	return args[0], nil
}

func newCdCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:               "cd <space>",
		Short:             "Switch the current space",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeSpaceNames(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := requireSpaceName(a, args, "jot cd <space>")
			if err != nil {
				return err
			}
			if err := switchSpace(a, name); err != nil {
				return err
			}

			if a.JSON {
				outputSuccess(a, map[string]interface{}{"space": name}, nil)
				return nil
			}
			a.printf("Switched to space '%s'\n", ui.SpaceName(name))
			return nil
		},
	}
}

func runSpacesList(a *App) error {
	names, err := a.Registry.List()
	if err != nil {
		return handleError(a, ErrFileReadError, err, "")
	}
	current := a.Registry.Current()

	if a.JSON {
		rows := make([]spaceRow, 0, len(names))
		for _, name := range names {
			rows = append(rows, spaceRow{Name: name, IsActive: name == current})
		}
		outputSuccess(a, map[string]interface{}{
			"current": current,
			"spaces":  rows,
		}, &Meta{Count: len(rows)})
		return nil
	}

	a.println("Available spaces:")
	for _, name := range names {
		if name == current {
			a.printf("- %s %s\n", ui.SpaceName(name), ui.Hint("(current)"))
			continue
		}
		a.printf("- %s\n", name)
	}
	if len(names) == 0 {
		a.println(ui.Hint("No spaces yet. Run 'jot spaces add <name>' or 'jot add <text>' to start one."))
	}
	return nil
}

func newSpacesCmd(a *App) *cobra.Command {
	spacesCmd := &cobra.Command{
		Use:   "spaces",
		Short: "Manage note spaces",
		Long: `Manage note spaces.

Each space is a separate set of notes stored in spaces/<name>.json.
The current space is stored in the current_space file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSpacesList(a)
		},
	}

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all spaces",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSpacesList(a)
		},
	}

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create an empty space and switch to it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := requireSpaceName(a, args, "jot spaces add <name>")
			if err != nil {
				return err
			}
			if err := a.Registry.Create(name); err != nil {
				return spaceError(a, err)
			}
			a.record(audit.Entry{Operation: audit.OpSpaceCreate, Space: name})

			if a.JSON {
				outputSuccess(a, map[string]interface{}{"space": name, "created": true}, nil)
				return nil
			}
			a.printf("Created and switched to space '%s'\n", ui.SpaceName(name))
			return nil
		},
	}

	var rmYes bool
	rmCmd := &cobra.Command{
		Use:               "rm <name>",
		Aliases:           []string{"remove"},
		Short:             "Delete a space and all its notes",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeSpaceNames(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := requireSpaceName(a, args, "jot spaces rm <name>")
			if err != nil {
				return err
			}

			answer, err := confirmDestructive(a, rmYes,
				fmt.Sprintf("Are you sure you want to remove space '%s' and all its notes?", name))
			if err != nil {
				return err
			}
			switch answer {
			case answerNo:
				a.println("Aborted.")
				return nil
			case answerInvalid:
				a.println("Invalid input. Please enter 'y' or 'n'. Aborted.")
				return nil
			}

			if err := a.Registry.Remove(name); err != nil {
				return spaceError(a, err)
			}
			a.record(audit.Entry{Operation: audit.OpSpaceRemove, Space: name})

			if a.JSON {
				outputSuccess(a, map[string]interface{}{"removed": name, "space": space.DefaultName}, nil)
				return nil
			}
			a.printf("Removed space '%s'.\n", name)
			a.printf("Switched to '%s'.\n", space.DefaultName)
			return nil
		},
	}
	rmCmd.Flags().BoolVarP(&rmYes, "yes", "y", false, "Skip the confirmation prompt")

	useCmd := &cobra.Command{
		Use:               "use <name>",
		Short:             "Switch the current space",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeSpaceNames(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := requireSpaceName(a, args, "jot spaces use <name>")
			if err != nil {
				return err
			}
			if err := switchSpace(a, name); err != nil {
				return err
			}

			if a.JSON {
				outputSuccess(a, map[string]interface{}{"space": name}, nil)
				return nil
			}
			a.printf("Using space '%s'.\n", ui.SpaceName(name))
			return nil
		},
	}

	currentCmd := &cobra.Command{
		Use:   "current",
		Short: "Print the current space",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current := a.Registry.Current()
			if a.JSON {
				outputSuccess(a, map[string]interface{}{
					"space":  current,
					"exists": a.Registry.Exists(current),
					"path":   a.Registry.Path(current),
				}, nil)
				return nil
			}
			a.println(current)
			return nil
		},
	}

	spacesCmd.AddCommand(listCmd, addCmd, rmCmd, useCmd, currentCmd)
	return spacesCmd
}
