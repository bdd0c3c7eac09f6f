package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/jot/internal/config"
	"github.com/aidanlsb/jot/internal/notes"
	"github.com/aidanlsb/jot/internal/ui"
)

func configExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func configData(a *App, exists bool) map[string]interface{} {
	cfg := a.Config
	return map[string]interface{}{
		"config_path": a.ConfigPath,
		"home":        a.Registry.BaseDir(),
		"exists":      exists,
		"editor":      strings.TrimSpace(cfg.Editor),
		"editor_mode": strings.TrimSpace(cfg.EditorMode),
		"ui": map[string]interface{}{
			"accent": strings.TrimSpace(cfg.UI.Accent),
		},
		"notes": map[string]interface{}{
			"key_policy": strings.TrimSpace(cfg.Notes.KeyPolicy),
		},
		"audit": map[string]interface{}{
			"enabled": cfg.Audit.Enabled,
		},
		"effective_editor": cfg.GetEditor(a.Env),
	}
}

func normalizeEditorMode(raw string) (string, bool) {
	mode := strings.ToLower(strings.TrimSpace(raw))
	switch mode {
	case "auto", "terminal", "gui":
		return mode, true
	default:
		return "", false
	}
}

func normalizeKeyPolicy(raw string) (string, bool) {
	policy := strings.ToLower(strings.TrimSpace(raw))
	switch notes.KeyPolicy(policy) {
	case notes.KeyPolicyCount, notes.KeyPolicyMax:
		return policy, true
	default:
		return "", false
	}
}

func runConfigShow(a *App) error {
	exists, err := configExists(a.ConfigPath)
	if err != nil {
		return handleError(a, ErrFileReadError, err, "")
	}

	if a.JSON {
		outputSuccess(a, configData(a, exists), nil)
		return nil
	}

	if !exists {
		a.printf("Config file does not exist: %s\n", a.ConfigPath)
		a.println("Run 'jot config init' to create it.")
		return nil
	}

	data, err := config.Encode(a.Config)
	if err != nil {
		return handleError(a, ErrInternal, err, "")
	}
	a.println(ui.Hint("# " + a.ConfigPath))
	a.printf("%s", data)
	return nil
}

type configFlags struct {
	editor     string
	editorMode string
	accent     string
	keyPolicy  string
	audit      bool
}

func newConfigCmd(a *App) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage config.toml settings",
		Long: `Manage config.toml settings.

The config file lives in the base directory unless --config is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(a)
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default config.toml if missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := config.CreateDefault(a.ConfigPath)
			if err != nil {
				return handleError(a, ErrFileWriteError, err, "")
			}

			if a.JSON {
				outputSuccess(a, map[string]interface{}{
					"config_path": a.ConfigPath,
					"created":     created,
				}, nil)
				return nil
			}

			if created {
				a.println(ui.Successf("Created config: %s", a.ConfigPath))
			} else {
				a.printf("Config already exists: %s\n", a.ConfigPath)
			}
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show config.toml values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(a)
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config.toml path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.JSON {
				outputSuccess(a, map[string]interface{}{"config_path": a.ConfigPath}, nil)
				return nil
			}
			a.println(a.ConfigPath)
			return nil
		},
	}

	var set configFlags
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Set one or more config.toml fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *a.Config
			changed := make([]string, 0, 4)

			if cmd.Flags().Changed("editor") {
				value := strings.TrimSpace(set.editor)
				if value == "" {
					return handleErrorMsg(a, ErrInvalidInput, "editor cannot be empty; use 'jot config unset --editor' to clear it", "")
				}
				cfg.Editor = value
				changed = append(changed, "editor")
			}

			if cmd.Flags().Changed("editor-mode") {
				value, ok := normalizeEditorMode(set.editorMode)
				if !ok {
					return handleErrorMsg(a, ErrInvalidInput, "editor-mode must be one of: auto, terminal, gui", "")
				}
				cfg.EditorMode = value
				changed = append(changed, "editor_mode")
			}

			if cmd.Flags().Changed("accent") {
				value := strings.TrimSpace(set.accent)
				if value == "" {
					return handleErrorMsg(a, ErrInvalidInput, "accent cannot be empty; use 'jot config unset --accent' to clear it", "")
				}
				cfg.UI.Accent = value
				changed = append(changed, "ui.accent")
			}

			if cmd.Flags().Changed("key-policy") {
				value, ok := normalizeKeyPolicy(set.keyPolicy)
				if !ok {
					return handleErrorMsg(a, ErrInvalidInput, "key-policy must be one of: count, max", "")
				}
				cfg.Notes.KeyPolicy = value
				changed = append(changed, "notes.key_policy")
			}

			if cmd.Flags().Changed("audit") {
				cfg.Audit.Enabled = set.audit
				changed = append(changed, "audit.enabled")
			}

			if len(changed) == 0 {
				return handleErrorMsg(a, ErrMissingArgument, "no fields provided; set at least one --editor/--editor-mode/--accent/--key-policy/--audit", "")
			}

			return saveConfigChange(a, &cfg, changed, "changed")
		},
	}
	setCmd.Flags().StringVar(&set.editor, "editor", "", "Set editor command")
	setCmd.Flags().StringVar(&set.editorMode, "editor-mode", "", "Set editor mode (auto|terminal|gui)")
	setCmd.Flags().StringVar(&set.accent, "accent", "", "Set UI accent color (ANSI 0-255 or #RRGGBB)")
	setCmd.Flags().StringVar(&set.keyPolicy, "key-policy", "", "Set how new note keys are chosen (count|max)")
	setCmd.Flags().BoolVar(&set.audit, "audit", false, "Enable or disable the activity log")

	var unsetEditor, unsetEditorMode, unsetAccent, unsetKeyPolicy, unsetAudit bool
	unsetCmd := &cobra.Command{
		Use:   "unset",
		Short: "Clear one or more config.toml fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exists, err := configExists(a.ConfigPath)
			if err != nil {
				return handleError(a, ErrFileReadError, err, "")
			}
			if !exists {
				return handleErrorMsg(a, ErrFileReadError,
					fmt.Sprintf("config file not found: %s", a.ConfigPath), "Run 'jot config init' first")
			}

			cfg := *a.Config
			changed := make([]string, 0, 4)
			if unsetEditor {
				cfg.Editor = ""
				changed = append(changed, "editor")
			}
			if unsetEditorMode {
				cfg.EditorMode = ""
				changed = append(changed, "editor_mode")
			}
			if unsetAccent {
				cfg.UI.Accent = ""
				changed = append(changed, "ui.accent")
			}
			if unsetKeyPolicy {
				cfg.Notes.KeyPolicy = ""
				changed = append(changed, "notes.key_policy")
			}
			if unsetAudit {
				cfg.Audit.Enabled = false
				changed = append(changed, "audit.enabled")
			}

			if len(changed) == 0 {
				return handleErrorMsg(a, ErrMissingArgument, "no fields selected; pass one or more unset flags", "")
			}

			return saveConfigChange(a, &cfg, changed, "cleared")
		},
	}
	unsetCmd.Flags().BoolVar(&unsetEditor, "editor", false, "Clear editor")
	unsetCmd.Flags().BoolVar(&unsetEditorMode, "editor-mode", false, "Clear editor_mode")
	unsetCmd.Flags().BoolVar(&unsetAccent, "accent", false, "Clear ui.accent")
	unsetCmd.Flags().BoolVar(&unsetKeyPolicy, "key-policy", false, "Clear notes.key_policy")
	unsetCmd.Flags().BoolVar(&unsetAudit, "audit", false, "Clear audit.enabled")

	configCmd.AddCommand(initCmd, showCmd, pathCmd, setCmd, unsetCmd)
	return configCmd
}

func saveConfigChange(a *App, cfg *config.Config, changed []string, verb string) error {
	if err := config.SaveTo(a.ConfigPath, cfg); err != nil {
		return handleError(a, ErrFileWriteError, err, "")
	}
	a.Config = cfg

	if a.JSON {
		data := configData(a, true)
		data["changed"] = changed
		outputSuccess(a, data, nil)
		return nil
	}

	a.printf("Updated config: %s\n", a.ConfigPath)
	a.printf("%s: %s\n", verb, strings.Join(changed, ", "))
	return nil
}
