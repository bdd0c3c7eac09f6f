package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/jot/internal/notes"
)

type completionFunc func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective)

// completeNoteKeys completes note keys for the first n positional args.
// Completion skips PersistentPreRunE, so it resolves the app itself.
func completeNoteKeys(a *App, n int) completionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) >= n {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		if err := a.setup(cmd); err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		store, err := notes.Load(a.Registry.Path(a.Space))
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		var out []string
		for _, e := range store.Entries() {
			if !strings.HasPrefix(e.Key, toComplete) {
				continue
			}
			out = append(out, e.Key+"\t"+truncateForCompletion(e.Value, 40))
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

func completeSpaceNames(a *App) completionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		if err := a.setup(cmd); err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		names, err := a.Registry.List()
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		out := make([]string, 0, len(names))
		for _, name := range names {
			if strings.HasPrefix(name, toComplete) {
				out = append(out, name)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

func truncateForCompletion(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
