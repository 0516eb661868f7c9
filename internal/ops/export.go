package ops

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/hpungsan/flashdeck/internal/config"
	"github.com/hpungsan/flashdeck/internal/errors"
	"github.com/hpungsan/flashdeck/internal/storage"
	"github.com/hpungsan/flashdeck/internal/store"
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	Path   string // optional, default: <base>/exports/flashcards-<timestamp>.<format>
	Format string // optional, "json" or "yaml"; inferred from Path, default json
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path       string `json:"path"`
	Format     string `json:"format"`
	Count      int    `json:"count"`
	ExportedAt int64  `json:"exported_at"`
}

// Export writes the whole collection to a JSON or YAML file. The JSON form
// is the same document the json storage backend keeps, so an export can be
// dropped in as flashcards.json.
func Export(st *store.Store, cfg *config.Config, input ExportInput) (*ExportOutput, error) {
	now := time.Now()

	format, err := storage.ParseFormat(input.Format, input.Path)
	if err != nil {
		return nil, errors.NewInvalidRequest(err.Error())
	}

	exportPath := input.Path
	if exportPath == "" {
		exportPath, err = defaultExportPath(format, now)
		if err != nil {
			return nil, err
		}
	}

	// Default paths are validated too
	if err := ValidatePath(exportPath, PathCheckWrite, cfg); err != nil {
		return nil, err
	}

	cards := st.All()
	data, err := storage.Marshal(format, cards)
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	// Write to a temp file, then rename over the destination
	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := exportPath + "." + hex.EncodeToString(randBytes) + ".tmp"
	file, err := openFileNoFollow(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		if _, ok := errors.As(err); ok {
			return nil, err
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to create export file: %w", err))
	}

	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	if _, err := file.Write(data); err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := file.Sync(); err != nil {
		return nil, errors.NewInternal(err)
	}

	// Close before rename (required on Windows)
	if err := file.Close(); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to close export file: %w", err))
	}
	file = nil

	// os.Rename would follow a symlink planted at the destination
	if info, err := os.Lstat(exportPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return nil, errors.NewInvalidRequest("export path is a symlink")
	}

	// On Windows, os.Rename fails if the destination exists; keep the old file.
	if err := os.Rename(tempPath, exportPath); err != nil {
		if runtime.GOOS == "windows" {
			if _, statErr := os.Stat(exportPath); statErr == nil {
				return nil, errors.NewInvalidRequest("export destination already exists; choose a new path or delete the existing file")
			}
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to finalize export: %w", err))
	}

	success = true
	return &ExportOutput{
		Path:       exportPath,
		Format:     string(format),
		Count:      len(cards),
		ExportedAt: now.Unix(),
	}, nil
}

// defaultExportPath returns <base>/exports/flashcards-<timestamp>.<format>.
func defaultExportPath(format storage.Format, now time.Time) (string, error) {
	dir, err := DefaultExportsDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("flashcards-%s.%s", now.Format("2006-01-02T150405"), format)
	return filepath.Join(dir, filename), nil
}
