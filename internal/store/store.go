// Package store loads and saves the site document.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorewood/lunchlady/internal/fsutil"
	"github.com/gorewood/lunchlady/internal/migrate"
	"github.com/gorewood/lunchlady/internal/site"
)

var (
	// ErrNotFound is returned by Load when the document does not exist.
	// Callers usually offer to create a new site.
	ErrNotFound = errors.New("site document not found")
	// ErrRead is returned when the document exists but cannot be read.
	ErrRead = errors.New("cannot read site document")
	// ErrWrite is returned when the document cannot be written.
	ErrWrite = errors.New("cannot write site document")
	// ErrMalformed is returned when the document cannot be parsed or
	// migrated. It also matches migrate.ErrMalformed or
	// migrate.ErrUnknownSchemaVersion, whichever caused it.
	ErrMalformed = errors.New("malformed site document")
)

// Load reads the document at path and migrates it to the current schema.
func Load(path string) (*site.Site, error) {
	data, err := fsutil.ReadFile(path)
	if err != nil {
		if errors.Is(err, fsutil.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	s, err := migrate.Load(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, path, err)
	}
	return s, nil
}

// Save writes s to path as indented JSON, replacing any existing file
// atomically. The document is validated first so an inconsistent document
// is never persisted.
func Save(s *site.Site, path string) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("refusing to save: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrWrite, err)
	}
	if err := fsutil.WriteFile(path, append(data, '\n')); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// Exists reports whether a document is present at path.
func Exists(path string) (bool, error) {
	ok, err := fsutil.Exists(path)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrRead, err)
	}
	return ok, nil
}
