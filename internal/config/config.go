// Package config handles jot's base directory, config.toml and environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

const (
	// BaseDirName is the folder under the user's home directory holding all data.
	BaseDirName = ".my_notes"

	// FileName is the config file name inside the base directory.
	FileName = "config.toml"
)

// Config represents config.toml.
type Config struct {
	// Editor is the editor used by `jot edit` (defaults to $EDITOR, then vim).
	Editor string `toml:"editor"`

	// EditorMode controls terminal checks: auto, terminal, or gui.
	EditorMode string `toml:"editor_mode"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`

	// Notes controls note store behavior.
	Notes NotesConfig `toml:"notes"`

	// Audit controls the activity log.
	Audit AuditConfig `toml:"audit"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an ANSI color code ("0" to "255") or hex color ("#RRGGBB").
	Accent string `toml:"accent"`
}

// NotesConfig holds note store options.
type NotesConfig struct {
	// KeyPolicy is "count" (next key is count+1) or "max" (largest key+1).
	KeyPolicy string `toml:"key_policy"`
}

// AuditConfig holds activity log options.
type AuditConfig struct {
	// Enabled appends every note and space change to activity.log.
	Enabled bool `toml:"enabled"`
}

// Env holds the environment variables jot reads.
type Env struct {
	Home    string `env:"JOT_HOME"`
	Editor  string `env:"EDITOR"`
	Accent  string `env:"JOT_ACCENT"`
	NoColor string `env:"NO_COLOR"`
}

// ParseEnv loads Env from the process environment.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// ResolveBaseDir picks the base directory with precedence:
//  1. explicit flag value
//  2. JOT_HOME
//  3. ~/.my_notes
func ResolveBaseDir(explicit string, e Env) (string, error) {
	if dir := strings.TrimSpace(explicit); dir != "" {
		return dir, nil
	}
	if dir := strings.TrimSpace(e.Home); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate home directory: %w", err)
	}
	return filepath.Join(home, BaseDirName), nil
}

// ResolvePath returns the config path: the explicit path if set, otherwise
// config.toml inside the base directory.
func ResolvePath(explicit, baseDir string) string {
	if p := strings.TrimSpace(explicit); p != "" {
		return p
	}
	return filepath.Join(baseDir, FileName)
}

// Load reads the config at path. A missing file yields an empty config.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path, failing if it does not exist.
func LoadFrom(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// GetEditor returns the configured editor, falling back to $EDITOR.
// An empty result means the caller should use its own default.
func (c *Config) GetEditor(e Env) string {
	if strings.TrimSpace(c.Editor) != "" {
		return strings.TrimSpace(c.Editor)
	}
	return strings.TrimSpace(e.Editor)
}

// GetAccent returns the UI accent, with JOT_ACCENT taking priority.
func (c *Config) GetAccent(e Env) string {
	if strings.TrimSpace(e.Accent) != "" {
		return strings.TrimSpace(e.Accent)
	}
	return strings.TrimSpace(c.UI.Accent)
}
