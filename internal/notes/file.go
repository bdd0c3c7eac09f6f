package notes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/aidanlsb/jot/internal/atomicfile"
)

// CorruptError reports a note file that exists but could not be used.
// Load still returns an empty store alongside it.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("notes file %s is unreadable: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}

// Load reads the store at path.
//
// A missing or blank file yields an empty store and no error. A file that
// cannot be read or parsed yields an empty store and a *CorruptError, so
// callers can warn and carry on.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return New(), &CorruptError{Path: path, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return New(), nil
	}

	s := New()
	if err := s.UnmarshalJSON(data); err != nil {
		return New(), &CorruptError{Path: path, Err: err}
	}
	return s, nil
}

// Save writes the store to path as pretty-printed JSON, creating parent
// directories as needed.
func (s *Store) Save(path string) error {
	data, err := s.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode notes: %w", err)
	}
	if err := atomicfile.WriteFileAll(path, pretty.Pretty(data), 0o644); err != nil {
		return fmt.Errorf("failed to write notes %s: %w", path, err)
	}
	return nil
}

// MarshalJSON encodes the store as {"entries": {...}} with keys in store order.
func (s *Store) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"entries":{`)
	for i, e := range s.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, e.Key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONString(&buf, e.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteString(`}}`)
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes {"entries": {...}} keeping object order. A key that
// appears twice keeps its first position and its last value.
func (s *Store) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return errors.New("invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return errors.New("top-level value is not an object")
	}
	entries := root.Get("entries")
	if !entries.Exists() {
		return errors.New(`missing "entries" object`)
	}
	if !entries.IsObject() {
		return errors.New(`"entries" is not an object`)
	}

	decoded := New()
	var bad error
	entries.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.String {
			bad = fmt.Errorf("note %q is not a string", key.String())
			return false
		}
		decoded.set(key.String(), value.String())
		return true
	})
	if bad != nil {
		return bad
	}

	s.entries = decoded.entries
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
