// Package store owns the authoritative flashcard collection.
//
// Every mutation is written through to the storage adapter before it takes
// effect in memory. If the write fails, the in-memory collection is left
// exactly as it was and the STORAGE_WRITE error is returned.
package store

import (
	"log"
	"strings"

	"github.com/hpungsan/flashdeck/internal/card"
	"github.com/hpungsan/flashdeck/internal/errors"
	"github.com/hpungsan/flashdeck/internal/storage"
)

// Store holds the in-memory collection and the adapter that persists it.
// A Store is not safe for concurrent use; callers serialize access.
type Store struct {
	adapter storage.Adapter
	cards   card.Collection
}

// New loads the collection through adapter. A seed fallback is logged as
// informational and reported in the returned LoadResult.
func New(adapter storage.Adapter) (*Store, *storage.LoadResult, error) {
	result, err := adapter.Load()
	if err != nil {
		return nil, nil, err
	}

	switch result.Source {
	case storage.SourceSeedMissing:
		log.Printf("no stored collection found, starting with %d sample flashcards", len(result.Cards))
	case storage.SourceSeedCorrupt:
		log.Printf("stored collection could not be read (%v), starting with %d sample flashcards", result.Corrupt, len(result.Cards))
	}

	return &Store{adapter: adapter, cards: result.Cards.Clone()}, result, nil
}

// All returns a copy of the collection in insertion order.
func (s *Store) All() card.Collection {
	return s.cards.Clone()
}

// Len returns the number of flashcards.
func (s *Store) Len() int {
	return len(s.cards)
}

// Subjects returns the distinct subjects, sorted.
func (s *Store) Subjects() []string {
	return card.Subjects(s.cards)
}

// Filter returns the flashcards with the given subject. "" and "All" select everything.
func (s *Store) Filter(subject string) card.View {
	return card.FilterBySubject(s.cards, subject)
}

// Search narrows within by a case-insensitive substring of front or back.
func (s *Store) Search(query string, within card.View) card.View {
	return card.Search(query, within)
}

// GroupBySubject groups the collection by subject in first-seen order.
func (s *Store) GroupBySubject() []card.Group {
	return card.GroupBySubject(s.cards)
}

// Append validates and adds one flashcard at the end of the collection.
// Front and back are stored as given; the subject is trimmed.
func (s *Store) Append(subject, front, back string) (card.Flashcard, error) {
	fc, err := validate(subject, front, back)
	if err != nil {
		return card.Flashcard{}, err
	}

	next := make(card.Collection, len(s.cards), len(s.cards)+1)
	copy(next, s.cards)
	next = append(next, fc)

	if err := s.commit(next); err != nil {
		return card.Flashcard{}, err
	}
	return fc, nil
}

// AppendMany validates every flashcard and appends them all with a single
// write. Nothing is appended if any flashcard is invalid.
func (s *Store) AppendMany(cards []card.Flashcard) (int, error) {
	valid := make(card.Collection, 0, len(cards))
	for _, c := range cards {
		fc, err := validate(c.Subject, c.Front, c.Back)
		if err != nil {
			return 0, err
		}
		valid = append(valid, fc)
	}
	if len(valid) == 0 {
		return 0, nil
	}

	next := make(card.Collection, 0, len(s.cards)+len(valid))
	next = append(next, s.cards...)
	next = append(next, valid...)

	if err := s.commit(next); err != nil {
		return 0, err
	}
	return len(valid), nil
}

// Replace swaps the whole collection for cards, validating each one first.
func (s *Store) Replace(cards []card.Flashcard) (int, error) {
	next := make(card.Collection, 0, len(cards))
	for _, c := range cards {
		fc, err := validate(c.Subject, c.Front, c.Back)
		if err != nil {
			return 0, err
		}
		next = append(next, fc)
	}

	if err := s.commit(next); err != nil {
		return 0, err
	}
	return len(next), nil
}

// DeleteAt removes the flashcard at position, shifting later ones down.
func (s *Store) DeleteAt(position int) (card.Flashcard, error) {
	if position < 0 || position >= len(s.cards) {
		return card.Flashcard{}, errors.NewNotFound(position, len(s.cards))
	}
	removed := s.cards[position]

	next := make(card.Collection, 0, len(s.cards)-1)
	next = append(next, s.cards[:position]...)
	next = append(next, s.cards[position+1:]...)

	if err := s.commit(next); err != nil {
		return card.Flashcard{}, err
	}
	return removed, nil
}

// DeleteAll empties the collection and returns how many flashcards were removed.
func (s *Store) DeleteAll() (int, error) {
	n := len(s.cards)
	if err := s.commit(card.Collection{}); err != nil {
		return 0, err
	}
	return n, nil
}

// commit persists next and only then makes it the current collection.
func (s *Store) commit(next card.Collection) error {
	if err := s.adapter.Save(next); err != nil {
		if _, ok := errors.As(err); ok {
			return err
		}
		return errors.NewStorageWrite("", err)
	}
	s.cards = next
	return nil
}

func validate(subject, front, back string) (card.Flashcard, error) {
	if card.IsBlank(front) {
		return card.Flashcard{}, errors.NewValidation("front", "front is required")
	}
	if card.IsBlank(back) {
		return card.Flashcard{}, errors.NewValidation("back", "back is required")
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return card.Flashcard{}, errors.NewValidation("subject", "subject is required")
	}
	return card.Flashcard{Subject: subject, Front: front, Back: back}, nil
}
