// Package space manages named note spaces and the current-space pointer.
//
// Layout under the base directory:
//
//	current_space        name of the active space, one trimmed line
//	spaces/<name>.json   notes for each space
package space

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gosimple/slug"

	"github.com/aidanlsb/jot/internal/atomicfile"
	"github.com/aidanlsb/jot/internal/notes"
)

const (
	// DefaultName is the space used when no pointer has been written.
	DefaultName = "default"

	pointerFile = "current_space"
	spacesDir   = "spaces"
	fileExt     = ".json"
)

var (
	// ErrNotFound is returned when a space has no backing file.
	ErrNotFound = errors.New("space not found")

	// ErrExists is returned when creating a space that already has a file.
	ErrExists = errors.New("space already exists")

	// ErrInvalidName is returned for names that cannot be used as a space.
	ErrInvalidName = errors.New("invalid space name")
)

// Registry resolves spaces inside a base directory.
type Registry struct {
	base string
}

// New returns a registry rooted at base.
func New(base string) *Registry {
	return &Registry{base: base}
}

// BaseDir returns the base directory.
func (r *Registry) BaseDir() string {
	return r.base
}

// Dir returns the directory holding the space files.
func (r *Registry) Dir() string {
	return filepath.Join(r.base, spacesDir)
}

// PointerPath returns the path of the current-space pointer file.
func (r *Registry) PointerPath() string {
	return filepath.Join(r.base, pointerFile)
}

// Path returns the notes file for the named space.
func (r *Registry) Path(name string) string {
	return filepath.Join(r.Dir(), name+fileExt)
}

// Exists reports whether the named space has a backing file.
func (r *Registry) Exists(name string) bool {
	if checkName(name) != nil {
		return false
	}
	info, err := os.Stat(r.Path(name))
	return err == nil && !info.IsDir()
}

// Current returns the active space name. It never fails: an absent,
// unreadable, empty or unusable pointer resolves to DefaultName.
func (r *Registry) Current() string {
	data, err := os.ReadFile(r.PointerPath())
	if err != nil {
		return DefaultName
	}
	name := strings.TrimSpace(string(data))
	if checkName(name) != nil {
		return DefaultName
	}
	return name
}

// Switch makes name the current space. The space must already exist;
// otherwise the pointer is left unchanged and ErrNotFound is returned.
func (r *Registry) Switch(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	if !r.Exists(name) {
		return fmt.Errorf("%w: '%s'", ErrNotFound, name)
	}
	return r.writePointer(name)
}

// Create makes an empty space and switches to it. Names must be slugs
// (lowercase letters, digits and dashes).
func (r *Registry) Create(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if r.Exists(name) {
		return fmt.Errorf("%w: '%s'", ErrExists, name)
	}
	if err := notes.New().Save(r.Path(name)); err != nil {
		return fmt.Errorf("failed to create space '%s': %w", name, err)
	}
	return r.Switch(name)
}

// Remove deletes the space file and resets the pointer to DefaultName,
// whether or not the default space has a file yet.
func (r *Registry) Remove(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := os.Remove(r.Path(name)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: '%s'", ErrNotFound, name)
		}
		return fmt.Errorf("failed to remove space '%s': %w", name, err)
	}
	return r.writePointer(DefaultName)
}

// List returns the names of all spaces, sorted. A missing spaces
// directory yields no names.
func (r *Registry) List() ([]string, error) {
	entries, err := os.ReadDir(r.Dir())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list spaces: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		stem, ok := strings.CutSuffix(e.Name(), fileExt)
		if !ok || checkName(stem) != nil {
			continue
		}
		names = append(names, stem)
	}
	sort.Strings(names)
	return names, nil
}

func (r *Registry) writePointer(name string) error {
	if err := atomicfile.WriteFileAll(r.PointerPath(), []byte(name+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write current space: %w", err)
	}
	return nil
}

// ValidateName checks a name for a new space.
func ValidateName(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	if !slug.IsSlug(name) {
		return fmt.Errorf("%w: '%s' (try '%s')", ErrInvalidName, name, SuggestName(name))
	}
	return nil
}

// SuggestName turns arbitrary text into a usable space name.
func SuggestName(name string) string {
	s := slug.Make(name)
	if s == "" {
		return DefaultName
	}
	return s
}

// checkName accepts any name that stays inside the spaces directory, so
// hand-made spaces such as "Work" still resolve.
func checkName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	case name == "." || name == "..",
		strings.ContainsAny(name, `/\`),
		strings.HasPrefix(name, "."):
		return fmt.Errorf("%w: '%s'", ErrInvalidName, name)
	}
	return nil
}
