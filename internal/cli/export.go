package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aidanlsb/jot/internal/notes"
)

// formatValue is a pflag.Value that only accepts known export formats.
type formatValue notes.Format

var _ pflag.Value = (*formatValue)(nil)

func (f *formatValue) String() string { return string(*f) }

func (f *formatValue) Set(s string) error {
	parsed, err := notes.ParseFormat(s)
	if err != nil {
		return err
	}
	*f = formatValue(parsed)
	return nil
}

func (f *formatValue) Type() string { return "format" }

func formatNames() []string {
	names := make([]string, 0, len(notes.Formats))
	for _, f := range notes.Formats {
		names = append(names, string(f))
	}
	return names
}

func newExportCmd(a *App) *cobra.Command {
	format := formatValue(notes.FormatJSON)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the current space's notes in another format",
		Long: fmt.Sprintf(`Write the current space's notes to stdout.

Formats: %s. Notes keep their key order.

Examples:
  jot export --format yaml
  jot export -s work -f html > work.html`, strings.Join(formatNames(), ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := a.loadNotes()
			if err := notes.Export(a.Out, store, a.Space, notes.Format(format)); err != nil {
				return handleError(a, ErrInternal, err, "")
			}
			return nil
		},
	}
	cmd.Flags().VarP(&format, "format", "f", "Output format ("+strings.Join(formatNames(), "|")+")")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return formatNames(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
