package dictionary

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is the dictionary information about one word
type Entry struct {
	Word     string
	Found    bool
	Common   bool
	Meanings []string
	WordType string
}

// Cache stores lookup results in a SQLite database
type Cache struct {
	db *sql.DB
	mu sync.Mutex
}

// OpenCache opens or creates the cache database at path
func OpenCache(path string) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "." && path != ":memory:" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary cache: %w", err)
	}
	// A single connection keeps ":memory:" databases alive
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{db: db}, nil
}

func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS lookups (
			word      TEXT PRIMARY KEY,
			found     INTEGER NOT NULL,
			is_common INTEGER NOT NULL,
			meanings  TEXT NOT NULL DEFAULT '[]',
			word_type TEXT NOT NULL DEFAULT 'unknown',
			updated   DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// Get returns the cached entry for word
func (c *Cache) Get(word string) (Entry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		e        Entry
		found    int
		common   int
		meanings string
	)
	err := c.db.QueryRow(
		`SELECT word, found, is_common, meanings, word_type FROM lookups WHERE word = ?`, word,
	).Scan(&e.Word, &found, &common, &meanings, &e.WordType)
	if err == sql.ErrNoRows {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("failed to query dictionary cache: %w", err)
	}

	e.Found = found != 0
	e.Common = common != 0
	if err := json.Unmarshal([]byte(meanings), &e.Meanings); err != nil {
		e.Meanings = nil
	}
	return e, true, nil
}

// Put stores or replaces the entry
func (c *Cache) Put(e Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e.WordType == "" {
		e.WordType = "unknown"
	}
	meanings, err := json.Marshal(e.Meanings)
	if err != nil {
		return fmt.Errorf("failed to encode meanings: %w", err)
	}
	if e.Meanings == nil {
		meanings = []byte("[]")
	}

	_, err = c.db.Exec(
		`INSERT OR REPLACE INTO lookups (word, found, is_common, meanings, word_type, updated)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		e.Word, boolToInt(e.Found), boolToInt(e.Common), string(meanings), e.WordType,
	)
	if err != nil {
		return fmt.Errorf("failed to write dictionary cache: %w", err)
	}
	return nil
}

// Len returns the number of cached words
func (c *Cache) Len() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM lookups`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count dictionary cache: %w", err)
	}
	return n, nil
}

// Close closes the database
func (c *Cache) Close() error {
	return c.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
