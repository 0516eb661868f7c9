package storage

import (
	stderrors "errors"
	"os"
	"path/filepath"

	"github.com/hpungsan/flashdeck/internal/card"
	"github.com/hpungsan/flashdeck/internal/errors"
)

// JSONFile stores the collection as a single indented JSON document.
// The file is assumed to be owned by one running instance; there is no locking.
type JSONFile struct {
	path string
}

// NewJSONFile returns an adapter for the document at path.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Path returns the document path.
func (f *JSONFile) Path() string {
	return f.path
}

// Load implements Adapter.
func (f *JSONFile) Load() (*LoadResult, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return seedResult(SourceSeedMissing, nil), nil
		}
		return nil, errors.NewStorageRead(f.path, err)
	}

	cards, err := Decode(data)
	if err != nil {
		return seedResult(SourceSeedCorrupt, errors.NewStorageCorrupt(f.path, err)), nil
	}

	return &LoadResult{Cards: cards, Source: SourceStored}, nil
}

// Save implements Adapter. The document is written to a temp file in the
// same directory and renamed over the old one.
func (f *JSONFile) Save(c card.Collection) error {
	data, err := Encode(c)
	if err != nil {
		return errors.NewStorageWrite(f.path, err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return errors.NewStorageWrite(f.path, err)
	}

	tmp, err := os.CreateTemp(dir, ".flashcards-*.tmp")
	if err != nil {
		return errors.NewStorageWrite(f.path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.NewStorageWrite(f.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.NewStorageWrite(f.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.NewStorageWrite(f.path, err)
	}

	// Best-effort, matches the data directory permissions.
	_ = os.Chmod(tmpPath, 0600)

	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return errors.NewStorageWrite(f.path, err)
	}
	return nil
}
