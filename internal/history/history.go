// Package history persists completion selections in a local SQLite
// database. A *Store is the concrete history handle threaded through
// completion requests; both engines read recent selections from it and
// record the final one.
package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Entry is one recorded selection.
type Entry struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`

	Prompt    string
	Selection string
}

const schemaVersion = 1

// Store records and retrieves completion selections.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if necessary) the history database at dbFilePath.
func Open(dbFilePath string) (*Store, error) {
	dbFileExists := true
	if _, err := os.Stat(dbFilePath); errors.Is(err, os.ErrNotExist) {
		dbFileExists = false
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat history db: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbFilePath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}

	if needsMigration(dbFilePath, dbFileExists, db) {
		if err := db.AutoMigrate(&Entry{}); err != nil {
			return nil, fmt.Errorf("failed to migrate history schema: %w", err)
		}
		if err := writeSchemaVersion(dbFilePath, schemaVersion); err != nil {
			return nil, fmt.Errorf("failed to write history schema version: %w", err)
		}
	}

	return &Store{db: db}, nil
}

func needsMigration(dbFilePath string, dbFileExists bool, db *gorm.DB) bool {
	if !dbFileExists {
		return true
	}

	matches, err := schemaVersionMatches(dbFilePath)
	if err != nil || !matches {
		return true
	}

	// Version marker present but table missing (corruption or manual
	// deletion): re-run migrations to restore the schema.
	return !db.Migrator().HasTable(&Entry{})
}

func writeSchemaVersion(dbFilePath string, version int) error {
	return os.WriteFile(schemaVersionPath(dbFilePath), []byte(strconv.Itoa(version)), 0644)
}

func schemaVersionMatches(dbFilePath string) (bool, error) {
	data, err := os.ReadFile(schemaVersionPath(dbFilePath))
	if err != nil {
		return false, err
	}
	version, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return false, err
	}
	if version != schemaVersion {
		return false, fmt.Errorf("history schema version mismatch: got %d, want %d", version, schemaVersion)
	}
	return true, nil
}

// schemaVersionPath keeps the version marker next to the database so
// alternate history locations stay self-contained.
func schemaVersionPath(dbFilePath string) string {
	return filepath.Join(filepath.Dir(dbFilePath), filepath.Base(dbFilePath)+".version")
}

// Record stores a selection made for the given prompt.
func (s *Store) Record(prompt, selection string) error {
	entry := Entry{
		Prompt:    prompt,
		Selection: selection,
	}
	if result := s.db.Create(&entry); result.Error != nil {
		return result.Error
	}
	return nil
}

// Recent returns up to limit distinct selections, most recent first.
func (s *Store) Recent(limit int) ([]string, error) {
	var entries []Entry
	// Over-fetch so deduplication can still fill the limit.
	result := s.db.Order("created_at desc").Limit(limit * 4).Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	selections := lo.Uniq(lo.Map(entries, func(e Entry, _ int) string {
		return e.Selection
	}))
	if len(selections) > limit {
		selections = selections[:limit]
	}
	return selections, nil
}

// ForPrompt returns up to limit previous selections recorded for the
// given prompt, most recent first.
func (s *Store) ForPrompt(prompt string, limit int) ([]string, error) {
	var entries []Entry
	result := s.db.Where("prompt = ?", prompt).
		Order("created_at desc").Limit(limit * 4).Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	selections := lo.Uniq(lo.Map(entries, func(e Entry, _ int) string {
		return e.Selection
	}))
	if len(selections) > limit {
		selections = selections[:limit]
	}
	return selections, nil
}
