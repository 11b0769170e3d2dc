// Package dataset reads and writes the whole-file grantee document.
package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ganot/grantmap/internal/domain/grant"
)

var (
	// ErrMissingGrantees indicates a document without a grantees array.
	ErrMissingGrantees = errors.New("dataset has no grantees array")
	// ErrInvalidJSON indicates a document that is not valid JSON.
	ErrInvalidJSON = errors.New("dataset is not valid JSON")
)

type document struct {
	Grantees *[]grant.Grantee `json:"grantees"`
	Metadata grant.Metadata   `json:"metadata"`
}

// Load reads the dataset at path.
func Load(path string) (grant.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return grant.Dataset{}, fmt.Errorf("reading dataset: %w", err)
	}
	ds, err := Decode(data)
	if err != nil {
		return grant.Dataset{}, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Decode parses a dataset document.
func Decode(data []byte) (grant.Dataset, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return grant.Dataset{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if doc.Grantees == nil {
		return grant.Dataset{}, ErrMissingGrantees
	}
	return grant.Dataset{Grantees: *doc.Grantees, Metadata: doc.Metadata}, nil
}

// Encode renders ds as 2-space indented JSON with a trailing newline.
func Encode(ds grant.Dataset) ([]byte, error) {
	if ds.Grantees == nil {
		ds.Grantees = []grant.Grantee{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ds); err != nil {
		return nil, fmt.Errorf("encoding dataset: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes ds to path through a temporary file in the same directory, so
// the file at path is either the old document or the complete new one.
func Save(path string, ds grant.Dataset) error {
	data, err := Encode(ds)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating dataset directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing dataset: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing dataset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing dataset: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing dataset: %w", err)
	}
	return nil
}
