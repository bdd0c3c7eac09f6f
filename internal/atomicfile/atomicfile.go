// Package atomicfile replaces files through a rename so a crash mid-write
// never leaves a torn note file or space pointer behind.
package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultPerm os.FileMode = 0o644

// WriteFile stages data in a sibling temp file and renames it over path.
// A zero perm keeps the mode of the file being replaced, or 0644 for a
// new file.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	if perm == 0 {
		perm = existingMode(path)
	}

	tmpPath, err := stage(path, data, perm)
	if err != nil {
		return err
	}
	if err := replace(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// WriteFileAll is WriteFile preceded by creating the parent directory tree.
func WriteFileAll(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return WriteFile(path, data, perm)
}

func existingMode(path string) os.FileMode {
	st, err := os.Stat(path)
	if err != nil {
		return defaultPerm
	}
	return st.Mode().Perm()
}

// stage writes data to a synced temp file next to path and returns its name.
func stage(path string, data []byte, perm os.FileMode) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	name := f.Name()

	fail := func(step string, err error) (string, error) {
		_ = f.Close()
		_ = os.Remove(name)
		return "", fmt.Errorf("%s temp file: %w", step, err)
	}

	// chmod can be refused on some filesystems; the rename still works.
	_ = f.Chmod(perm)

	if _, err := f.Write(data); err != nil {
		return fail("write", err)
	}
	if err := f.Sync(); err != nil {
		return fail("sync", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return name, nil
}

// replace renames tmp over path. Windows refuses to rename onto an
// existing file, so a failed rename retries after removing the target.
func replace(tmp, path string) error {
	err := os.Rename(tmp, path)
	if err == nil {
		return nil
	}
	_ = os.Remove(path)
	if os.Rename(tmp, path) != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
