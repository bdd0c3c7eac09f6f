// Package cli implements the command-line interface.
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree around app.
func NewRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jot",
		Short: "jot - Numbered notes, grouped into spaces",
		Long: `jot keeps short notes numbered 1..N inside named spaces.

Notes live in ~/.my_notes/spaces/<space>.json. Deleting a note renumbers
the rest so keys always stay dense.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Help, docs and version do not touch the note home.
			switch cmd.Name() {
			case "help", "docs", "version", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
				return nil
			}
			if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
				return nil
			}
			return app.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New("no command provided\n\nRun 'jot --help' to see available commands")
		},
	}

	rootCmd.SetIn(app.In)
	rootCmd.SetOut(app.Out)
	rootCmd.SetErr(app.Err)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.homeFlag, "home", "", "Base directory for notes (default ~/.my_notes, or $JOT_HOME)")
	flags.StringVar(&app.configFlag, "config", "", "Path to config file (default <home>/config.toml)")
	flags.StringVarP(&app.spaceFlag, "space", "s", "", "Use this space for one command without switching")
	flags.BoolVar(&app.JSON, "json", false, "Output in JSON format (for agent/script use)")
	flags.BoolVar(&app.debug, "debug", false, "Write debug logs to stderr")

	rootCmd.AddCommand(
		newListCmd(app),
		newAddCmd(app),
		newDeleteCmd(app),
		newEditCmd(app),
		newSwapCmd(app),
		newClearCmd(app),
		newShowCmd(app),
		newExportCmd(app),
		newCdCmd(app),
		newSpacesCmd(app),
		newLogCmd(app),
		newConfigCmd(app),
		newDocsCmd(app),
		newVersionCmd(app),
	)

	return rootCmd
}

// Execute runs the CLI against the process's standard streams. An
// interrupt cancels a running editor.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return NewApp(os.Stdin, os.Stdout, os.Stderr).Run(ctx, os.Args[1:])
}
