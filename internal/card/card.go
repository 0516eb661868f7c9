package card

import "strings"

// AllSubjects is the wildcard subject that matches every flashcard.
const AllSubjects = "All"

// Flashcard is a single study card.
type Flashcard struct {
	// Subject is a short grouping label. Not unique.
	Subject string `json:"subject" yaml:"subject"`

	// Front is the prompt shown first.
	Front string `json:"front" yaml:"front"`

	// Back is the answer shown on reveal. May contain markdown and TeX.
	Back string `json:"back" yaml:"back"`
}

// Collection is the ordered set of flashcards, the unit of persistence.
// Order is insertion order; duplicates are allowed.
type Collection []Flashcard

// Clone returns a copy that shares no backing array with c.
// A nil collection clones to an empty, non-nil one.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

// Entry is a flashcard inside a View, tagged with its position in the full Collection.
type Entry struct {
	Position int       `json:"position"`
	Card     Flashcard `json:"card"`
}

// View is a derived, non-persisted subsequence of a Collection.
type View []Entry

// Cards returns the flashcards of the view without their positions.
func (v View) Cards() Collection {
	out := make(Collection, len(v))
	for i, e := range v {
		out[i] = e.Card
	}
	return out
}

// Group is the run of flashcards sharing one subject.
type Group struct {
	Subject string     `json:"subject"`
	Cards   Collection `json:"cards"`
}

// IsBlank reports whether s is empty after trimming surrounding whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsWildcard reports whether subject selects every flashcard. Any other
// value is compared exactly, surrounding spaces included.
func IsWildcard(subject string) bool {
	return subject == "" || subject == AllSubjects
}
