package ops

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hpungsan/flashdeck/internal/card"
	"github.com/hpungsan/flashdeck/internal/config"
	"github.com/hpungsan/flashdeck/internal/errors"
	"github.com/hpungsan/flashdeck/internal/storage"
	"github.com/hpungsan/flashdeck/internal/store"
)

// TestFullWorkflow exercises the complete collection lifecycle across a restart:
// seed → create → list → export → delete all → reopen → import → delete
func TestFullWorkflow(t *testing.T) {
	tmpDir := t.TempDir()
	dataPath := filepath.Join(tmpDir, "flashcards.json")

	cfg := config.DefaultConfig()
	cfg.AllowedPaths = []string{tmpDir}

	// 1. First run falls back to the seed
	st, res, err := store.New(storage.NewJSONFile(dataPath))
	require.NoError(t, err)
	require.Equal(t, storage.SourceSeedMissing, res.Source)
	require.Equal(t, 15, st.Len())

	// 2. Create
	createOut, err := Create(st, CreateInput{Subject: "Biology", Front: "What is mitosis?", Back: "Cell division"})
	require.NoError(t, err)
	require.Equal(t, 15, createOut.Position)

	// 3. List - new subject appears, positions index the collection
	listOut, err := List(st, ListInput{Subject: "Biology"})
	require.NoError(t, err)
	require.Len(t, listOut.Items, 1)
	require.Equal(t, 15, listOut.Items[0].Position)

	subjectsOut, err := Subjects(st)
	require.NoError(t, err)
	require.Len(t, subjectsOut.Subjects, 4)

	// 4. Export
	backup := filepath.Join(tmpDir, "backup.json")
	exportOut, err := Export(st, cfg, ExportInput{Path: backup})
	require.NoError(t, err)
	require.Equal(t, 16, exportOut.Count)

	// 5. Delete all
	_, err = DeleteAll(st, DeleteAllInput{Confirm: true})
	require.NoError(t, err)
	require.Equal(t, 0, st.Len())

	// 6. Reopen - the empty collection persisted, no seed fallback
	st, res, err = store.New(storage.NewJSONFile(dataPath))
	require.NoError(t, err)
	require.Equal(t, storage.SourceStored, res.Source)
	require.Equal(t, 0, st.Len())

	// 7. Import restores everything in order
	importOut, err := Import(st, cfg, ImportInput{Path: backup})
	require.NoError(t, err)
	require.Equal(t, 16, importOut.Imported)
	require.Equal(t, "Biology", st.All()[15].Subject)

	// 8. Delete the created card, then it is gone
	_, err = Delete(st, DeleteInput{Position: 15})
	require.NoError(t, err)
	require.Equal(t, card.Seed(), st.All())

	_, err = Delete(st, DeleteInput{Position: 15})
	require.True(t, errors.Is(err, errors.ErrNotFound))
}
