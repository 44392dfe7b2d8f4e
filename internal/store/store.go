// Package store persists snapshots and editor preferences.
//
// Snapshots go to a ByteStore: a tiny key/value interface with a SQLite backend (the
// default) and a plain file backend. Preferences and UI state are JSON files.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DirName is the per-project store directory.
	DirName = ".chatweaver"

	// KeyData holds the serialized snapshot.
	KeyData = "data"

	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// ByteStore is the key/value byte store snapshots are written to.
type ByteStore interface {
	// Get returns nil, nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, b []byte) error
}

type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for an existing store directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, DirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, DirName), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func ParseBackend(v string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", BackendSQLite:
		return BackendSQLite, nil
	case BackendFile:
		return BackendFile, nil
	default:
		return "", fmt.Errorf("invalid backend: %q (expected sqlite|file)", v)
	}
}

// Open returns the byte store for backend inside the store dir.
func (s Store) Open(backend string) (ByteStore, error) {
	b, err := ParseBackend(backend)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(s.Dir) == "" {
		return nil, fmt.Errorf("store dir is empty")
	}
	if b == BackendFile {
		return &FileStore{Dir: s.Dir}, nil
	}
	return &SQLiteStore{Path: filepath.Join(s.Dir, sqliteFileName)}, nil
}
