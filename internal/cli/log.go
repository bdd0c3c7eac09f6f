package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/jot/internal/audit"
	"github.com/aidanlsb/jot/internal/ui"
)

func describeEntry(e audit.Entry) string {
	switch e.Operation {
	case audit.OpAdd, audit.OpEdit, audit.OpDelete:
		return fmt.Sprintf("%s: %s", e.Key, e.Text)
	case audit.OpSwap:
		if keys, ok := e.Extra["keys"].([]interface{}); ok && len(keys) == 2 {
			return fmt.Sprintf("%v <-> %v", keys[0], keys[1])
		}
	case audit.OpClear:
		if n, ok := e.Extra["removed"].(float64); ok {
			return ui.Count(int(n), "note", "notes")
		}
	}
	return ""
}

func newLogCmd(a *App) *cobra.Command {
	var limit int
	var allSpaces bool
	var truncate bool

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent changes from the activity log",
		Long: `Show recent changes from the activity log.

The log is written only when [audit] enabled = true is set in config.toml.

Examples:
  jot log
  jot log -n 50 --all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if truncate {
				if err := a.Audit.Truncate(); err != nil {
					return handleError(a, ErrFileWriteError, err, "")
				}
				if a.JSON {
					outputSuccess(a, map[string]interface{}{"truncated": true}, nil)
					return nil
				}
				a.println("Activity log cleared.")
				return nil
			}

			filter := a.Space
			if allSpaces {
				filter = ""
			}
			entries, err := a.Audit.Tail(limit, filter)
			if err != nil {
				return handleError(a, ErrFileReadError, err, "")
			}

			if a.JSON {
				outputSuccess(a, map[string]interface{}{
					"enabled": a.Audit.Enabled(),
					"entries": entries,
				}, &Meta{Count: len(entries), Space: filter})
				return nil
			}

			if len(entries) == 0 {
				if !a.Audit.Enabled() {
					a.println(ui.Hint("Activity log is off. Enable it with 'jot config set --audit=true'."))
				} else {
					a.println(ui.Hint("No activity yet"))
				}
				return nil
			}

			for _, e := range entries {
				line := fmt.Sprintf("%s  %-12s %s",
					e.Timestamp.Local().Format("2006-01-02 15:04"), e.Operation, ui.SpaceName(e.Space))
				if desc := describeEntry(e); desc != "" {
					line += "  " + desc
				}
				a.println(strings.TrimRight(line, " "))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries to show (0 for all)")
	cmd.Flags().BoolVar(&allSpaces, "all", false, "Include every space, not just the current one")
	cmd.Flags().BoolVar(&truncate, "truncate", false, "Empty the activity log")
	return cmd
}
