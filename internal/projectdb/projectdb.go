// Package projectdb maintains the registry of repositories the user has
// visited, so wtman can offer them in the project picker when invoked
// outside a git repository.
package projectdb

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Entry records one known repository.
type Entry struct {
	Path         string `toml:"path"`
	Name         string `toml:"name"`
	LastAccessed int64  `toml:"last_accessed"`
}

// DB is the on-disk registry, keyed by repository path.
type DB struct {
	Projects map[string]Entry `toml:"projects"`
}

// DefaultPath returns the per-user registry location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".wtman", "projects.toml"), nil
}

// Load reads the registry from path. Missing files load empty.
func Load(path string) (*DB, error) {
	db := &DB{Projects: map[string]Entry{}}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return db, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, db); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if db.Projects == nil {
		db.Projects = map[string]Entry{}
	}
	return db, nil
}

// Save writes the registry to path, creating parent directories as needed.
func (db *DB) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(db)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Record inserts or refreshes the entry for repoPath.
func (db *DB) Record(repoPath string) error {
	name := filepath.Base(repoPath)
	if name == "." || name == string(filepath.Separator) {
		return fmt.Errorf("invalid repository path %q", repoPath)
	}
	db.Projects[repoPath] = Entry{
		Path:         repoPath,
		Name:         name,
		LastAccessed: now().Unix(),
	}
	return nil
}

// Touch refreshes the access time of an existing entry. Unknown paths are
// left alone.
func (db *DB) Touch(repoPath string) {
	if entry, ok := db.Projects[repoPath]; ok {
		entry.LastAccessed = now().Unix()
		db.Projects[repoPath] = entry
	}
}

// Sorted returns all entries, most recently accessed first.
func (db *DB) Sorted() []Entry {
	entries := make([]Entry, 0, len(db.Projects))
	for _, e := range db.Projects {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].LastAccessed != entries[j].LastAccessed {
			return entries[i].LastAccessed > entries[j].LastAccessed
		}
		return entries[i].Path < entries[j].Path
	})
	return entries
}

// RecordVisit is the common load-modify-save cycle performed on every
// in-repo invocation.
func RecordVisit(repoPath string) error {
	path, err := DefaultPath()
	if err != nil {
		return err
	}
	db, err := Load(path)
	if err != nil {
		return err
	}
	if err := db.Record(repoPath); err != nil {
		return err
	}
	return db.Save(path)
}

// TouchVisit refreshes the access time for repoPath if it is registered.
func TouchVisit(repoPath string) error {
	path, err := DefaultPath()
	if err != nil {
		return err
	}
	db, err := Load(path)
	if err != nil {
		return err
	}
	db.Touch(repoPath)
	return db.Save(path)
}

var now = time.Now
