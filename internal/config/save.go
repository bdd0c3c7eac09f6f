package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/jot/internal/atomicfile"
)

type persistedConfig struct {
	Editor     *string                 `toml:"editor,omitempty"`
	EditorMode *string                 `toml:"editor_mode,omitempty"`
	UI         *persistedUISettings    `toml:"ui,omitempty"`
	Notes      *persistedNotesSettings `toml:"notes,omitempty"`
	Audit      *persistedAuditSettings `toml:"audit,omitempty"`
}

type persistedUISettings struct {
	Accent *string `toml:"accent,omitempty"`
}

type persistedNotesSettings struct {
	KeyPolicy *string `toml:"key_policy,omitempty"`
}

type persistedAuditSettings struct {
	Enabled bool `toml:"enabled"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Encode renders cfg as TOML, omitting unset values.
func Encode(cfg *Config) ([]byte, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{
		Editor:     nonEmptyPtr(cfg.Editor),
		EditorMode: nonEmptyPtr(cfg.EditorMode),
	}
	if accent := nonEmptyPtr(cfg.UI.Accent); accent != nil {
		out.UI = &persistedUISettings{Accent: accent}
	}
	if policy := nonEmptyPtr(cfg.Notes.KeyPolicy); policy != nil {
		out.Notes = &persistedNotesSettings{KeyPolicy: policy}
	}
	if cfg.Audit.Enabled {
		out.Audit = &persistedAuditSettings{Enabled: true}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveTo writes cfg to path atomically.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	data, err := Encode(cfg)
	if err != nil {
		return err
	}
	if err := atomicfile.WriteFileAll(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

const defaultConfig = `# jot configuration

# Editor for 'jot edit' (defaults to $EDITOR, then vim)
# editor = "nvim"
#
# How the editor is treated:
#   auto     - require a terminal only for known terminal editors
#   terminal - always require a terminal
#   gui      - never require a terminal (use a waiting command, e.g. "code --wait")
# editor_mode = "auto"

# [ui]
# Accent color for headers. ANSI color codes (0-255) or hex (#RRGGBB).
# accent = "39"

# [notes]
# How 'jot add' picks keys: "count" (number of notes + 1) or "max" (largest key + 1).
# key_policy = "count"

# [audit]
# Record every change in activity.log; read it with 'jot log'.
# enabled = true
`

// CreateDefault writes a commented default config if none exists.
// It reports whether a file was created.
func CreateDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("failed to check config %s: %w", path, err)
	}
	if err := atomicfile.WriteFileAll(path, []byte(defaultConfig), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	return true, nil
}
