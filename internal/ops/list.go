package ops

import (
	"github.com/hpungsan/flashdeck/internal/card"
	"github.com/hpungsan/flashdeck/internal/store"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Subject string // default: "All"
	Search  string // optional, narrows the subject filter
	Limit   int    // default: 50, max: 500
	Offset  int    // default: 0
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items      []card.Entry `json:"items"`
	Subject    string       `json:"subject"`
	Search     string       `json:"search,omitempty"`
	Pagination Pagination   `json:"pagination"`
	Message    string       `json:"message"`
}

// List returns the flashcards matching a subject filter and search query,
// in collection order. Each item carries its position in the full collection.
func List(st *store.Store, input ListInput) (*ListOutput, error) {
	subject := card.AllSubjects
	if !card.IsWildcard(input.Subject) {
		subject = input.Subject
	}

	// Apply limit defaults and bounds
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	// Ensure offset is non-negative
	offset := max(input.Offset, 0)

	view := st.Search(input.Search, st.Filter(subject))
	total := len(view)

	start := min(offset, total)
	end := min(start+limit, total)
	items := []card.Entry(view[start:end])
	if items == nil {
		items = []card.Entry{}
	}

	message := "No matching flashcards."
	if total > 0 {
		message = "Showing " + Plural(total, "flashcard")
	}

	return &ListOutput{
		Items:   items,
		Subject: subject,
		Search:  input.Search,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: end < total,
			Total:   total,
		},
		Message: message,
	}, nil
}
