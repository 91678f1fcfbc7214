package glossary

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Noun is one glossary entry
type Noun struct {
	Hangul    string `json:"hangul"`
	Hanja     string `json:"hanja"`
	English   string `json:"english"`
	Category  string `json:"category"`
	Frequency int    `json:"frequency"`
	Chinese   string `json:"chinese,omitempty"`
	Ambiguous bool   `json:"ambiguous,omitempty"`
}

// Store persists the working glossary as a JSON array
type Store struct {
	path string
}

// NewStore creates a store backed by the file at path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file
func (s *Store) Path() string {
	return s.path
}

// Load reads the glossary; a missing file yields an empty glossary
// Entries without hangul are dropped and duplicate hanguls keep the first entry.
func (s *Store) Load() ([]Noun, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Noun{}, nil
		}
		return nil, fmt.Errorf("failed to read glossary: %w", err)
	}

	if strings.TrimSpace(string(data)) == "" {
		return []Noun{}, nil
	}

	var nouns []Noun
	if err := json.Unmarshal(data, &nouns); err != nil {
		return nil, fmt.Errorf("failed to parse glossary %s: %w", s.path, err)
	}

	return Merge(nil, nouns), nil
}

// Save writes the glossary atomically
func (s *Store) Save(nouns []Noun) error {
	if nouns == nil {
		nouns = []Noun{}
	}

	data, err := json.MarshalIndent(nouns, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode glossary: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create glossary directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write glossary: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace glossary: %w", err)
	}

	return nil
}

// Hanguls returns the set of source terms in nouns
func Hanguls(nouns []Noun) map[string]struct{} {
	set := make(map[string]struct{}, len(nouns))
	for _, n := range nouns {
		set[n.Hangul] = struct{}{}
	}
	return set
}
