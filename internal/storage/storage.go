// Package storage persists the flashcard collection as a whole.
//
// Every Adapter reads and writes the entire collection at once; there are no
// incremental updates. Load never fails on a missing or corrupt document: it
// falls back to the built-in seed collection and says so in the LoadResult.
package storage

import (
	"github.com/hpungsan/flashdeck/internal/card"
)

// Adapter reads and writes the whole flashcard collection.
type Adapter interface {
	// Load returns the stored collection, or the seed collection when no
	// valid stored document exists. It returns an error only for read
	// failures other than "missing" or "corrupt".
	Load() (*LoadResult, error)

	// Save overwrites the stored document with c.
	Save(c card.Collection) error
}

// Source says where a loaded collection came from.
type Source string

const (
	SourceStored      Source = "stored"       // a valid stored document
	SourceSeedMissing Source = "seed_missing" // no stored document yet
	SourceSeedCorrupt Source = "seed_corrupt" // stored document could not be parsed
)

// LoadResult is the outcome of Adapter.Load.
type LoadResult struct {
	Cards  card.Collection
	Source Source

	// Corrupt holds the STORAGE_CORRUPT error when Source is SourceSeedCorrupt.
	Corrupt error
}

// FromSeed reports whether the seed collection was substituted.
func (r *LoadResult) FromSeed() bool {
	return r.Source != SourceStored
}

func seedResult(source Source, corrupt error) *LoadResult {
	return &LoadResult{
		Cards:   card.Seed(),
		Source:  source,
		Corrupt: corrupt,
	}
}
