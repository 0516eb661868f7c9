package ops

import (
	"fmt"
	"io"

	"github.com/hpungsan/flashdeck/internal/config"
	"github.com/hpungsan/flashdeck/internal/errors"
	"github.com/hpungsan/flashdeck/internal/storage"
	"github.com/hpungsan/flashdeck/internal/store"
)

// ImportMode controls what happens to the existing collection.
type ImportMode string

const (
	ImportModeAppend  ImportMode = "append"  // add after existing flashcards (default)
	ImportModeReplace ImportMode = "replace" // discard existing flashcards
)

// maxImportBytes bounds the size of an import file.
const maxImportBytes = 32 << 20

// ImportInput contains parameters for the Import operation.
type ImportInput struct {
	Path   string     // required
	Format string     // optional, inferred from Path
	Mode   ImportMode // default: append
}

// ImportOutput contains the result of the Import operation.
type ImportOutput struct {
	Imported int        `json:"imported"`
	Total    int        `json:"total"`
	Mode     ImportMode `json:"mode"`
}

// Import reads flashcards from a JSON or YAML file. The file must be
// structurally valid and every flashcard must pass the same checks as
// Create; otherwise nothing is imported.
func Import(st *store.Store, cfg *config.Config, input ImportInput) (*ImportOutput, error) {
	if input.Mode == "" {
		input.Mode = ImportModeAppend
	}
	if input.Mode != ImportModeAppend && input.Mode != ImportModeReplace {
		return nil, errors.NewInvalidRequest("mode must be one of: append, replace")
	}

	format, err := storage.ParseFormat(input.Format, input.Path)
	if err != nil {
		return nil, errors.NewInvalidRequest(err.Error())
	}

	if err := ValidatePath(input.Path, PathCheckRead, cfg); err != nil {
		return nil, err
	}

	file, err := openFileNoFollowRead(input.Path)
	if err != nil {
		if _, ok := errors.As(err); ok {
			return nil, err
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to open import file: %w", err))
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImportBytes+1))
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to read import file: %w", err))
	}
	if len(data) > maxImportBytes {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("import file exceeds %d bytes", maxImportBytes))
	}

	cards, err := storage.Unmarshal(format, data)
	if err != nil {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid %s flashcard file: %v", format, err))
	}

	var imported int
	if input.Mode == ImportModeReplace {
		imported, err = st.Replace(cards)
	} else {
		imported, err = st.AppendMany(cards)
	}
	if err != nil {
		return nil, err
	}

	return &ImportOutput{
		Imported: imported,
		Total:    st.Len(),
		Mode:     input.Mode,
	}, nil
}
