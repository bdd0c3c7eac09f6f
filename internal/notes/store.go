// Package notes implements the ordered note store backing a single space.
//
// A store maps string keys to note text and keeps insertion order. Keys are
// the dense sequence "1".."N": additions append the next key and every
// removal renumbers the survivors in their current order.
package notes

import (
	"strconv"
)

// KeyPolicy selects how Add picks the key for a new note.
type KeyPolicy string

const (
	// KeyPolicyCount assigns count+1, falling back to max+1 only when
	// count+1 is already taken by a hand-edited file.
	KeyPolicyCount KeyPolicy = "count"

	// KeyPolicyMax always assigns one past the largest numeric key.
	KeyPolicyMax KeyPolicy = "max"
)

// ParseKeyPolicy maps a config value to a policy. Unknown values use KeyPolicyCount.
func ParseKeyPolicy(value string) KeyPolicy {
	if KeyPolicy(value) == KeyPolicyMax {
		return KeyPolicyMax
	}
	return KeyPolicyCount
}

// Entry is a single note.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Store is an insertion-ordered mapping of note keys to note text.
// The zero value is an empty store.
type Store struct {
	entries []Entry
	policy  KeyPolicy
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// SetKeyPolicy changes how subsequent Add calls assign keys.
func (s *Store) SetKeyPolicy(p KeyPolicy) {
	s.policy = p
}

// Len returns the number of notes.
func (s *Store) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the notes in order.
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Keys returns the note keys in order.
func (s *Store) Keys() []string {
	keys := make([]string, len(s.entries))
	for i, e := range s.entries {
		keys[i] = e.Key
	}
	return keys
}

// Get returns the text stored at key.
func (s *Store) Get(key string) (string, bool) {
	i := s.indexOf(key)
	if i < 0 {
		return "", false
	}
	return s.entries[i].Value, true
}

// Add appends text and returns the key it was stored under.
func (s *Store) Add(text string) string {
	key := strconv.Itoa(len(s.entries) + 1)
	if s.policy == KeyPolicyMax || s.indexOf(key) >= 0 {
		key = strconv.Itoa(s.maxKey() + 1)
	}
	s.entries = append(s.entries, Entry{Key: key, Value: text})
	return key
}

// Delete removes the note at key and renumbers the remaining notes.
// It reports whether a note was removed.
func (s *Store) Delete(key string) bool {
	i := s.indexOf(key)
	if i < 0 {
		return false
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	s.Renumber()
	return true
}

// Edit replaces the text at key in place. It reports whether key existed.
func (s *Store) Edit(key, text string) bool {
	i := s.indexOf(key)
	if i < 0 {
		return false
	}
	s.entries[i].Value = text
	return true
}

// Swap exchanges the text stored at a and b. Keys and order are unchanged.
// It reports false, leaving the store untouched, if either key is missing.
func (s *Store) Swap(a, b string) bool {
	i, j := s.indexOf(a), s.indexOf(b)
	if i < 0 || j < 0 {
		return false
	}
	s.entries[i].Value, s.entries[j].Value = s.entries[j].Value, s.entries[i].Value
	return true
}

// Clear removes every note.
func (s *Store) Clear() {
	s.entries = nil
}

// Renumber rewrites keys to "1".."N" in the current order.
func (s *Store) Renumber() {
	for i := range s.entries {
		s.entries[i].Key = strconv.Itoa(i + 1)
	}
}

// set stores value at key, keeping the original position of an existing key.
func (s *Store) set(key, value string) {
	if i := s.indexOf(key); i >= 0 {
		s.entries[i].Value = value
		return
	}
	s.entries = append(s.entries, Entry{Key: key, Value: value})
}

func (s *Store) indexOf(key string) int {
	for i, e := range s.entries {
		if e.Key == key {
			return i
		}
	}
	return -1
}

// maxKey returns the largest positive integer key, ignoring non-numeric keys.
func (s *Store) maxKey() int {
	max := 0
	for _, e := range s.entries {
		n, err := strconv.Atoi(e.Key)
		if err == nil && n > max {
			max = n
		}
	}
	return max
}
