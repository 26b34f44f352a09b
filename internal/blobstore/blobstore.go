// Package blobstore keeps opaque JSON event documents as one file per
// event id.
package blobstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrNotFound  = errors.New("event blob not found")
	ErrInvalidID = errors.New("invalid event id")
	ErrNotJSON   = errors.New("event blob is not valid json")
)

type Store struct {
	dir string
}

// New creates dir when missing.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("blobstore.New: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(eventID string) (string, error) {
	if eventID == "" || eventID != filepath.Base(eventID) || strings.HasPrefix(eventID, ".") {
		return "", ErrInvalidID
	}
	return filepath.Join(s.dir, eventID+".json"), nil
}

// Save overwrites the document stored for eventID.
func (s *Store) Save(eventID string, doc []byte) error {
	const op = "blobstore.Save"

	p, err := s.path(eventID)
	if err != nil {
		return err
	}
	if !json.Valid(doc) {
		return ErrNotJSON
	}

	tmp, err := os.CreateTemp(s.dir, "."+eventID+".*")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(doc); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Store) Load(eventID string) ([]byte, error) {
	const op = "blobstore.Load"

	p, err := s.path(eventID)
	if err != nil {
		return nil, err
	}

	doc, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return doc, nil
}
