package ops

import (
	"github.com/hpungsan/flashdeck/internal/card"
	"github.com/hpungsan/flashdeck/internal/store"
)

// CreateInput contains parameters for the Create operation.
type CreateInput struct {
	Subject string // required, trimmed
	Front   string // required
	Back    string // required
}

// CreateOutput contains the result of the Create operation.
type CreateOutput struct {
	Position int            `json:"position"`
	Card     card.Flashcard `json:"card"`
	Total    int            `json:"total"`
}

// Create appends a flashcard to the end of the collection.
func Create(st *store.Store, input CreateInput) (*CreateOutput, error) {
	fc, err := st.Append(input.Subject, input.Front, input.Back)
	if err != nil {
		return nil, err
	}
	return &CreateOutput{
		Position: st.Len() - 1,
		Card:     fc,
		Total:    st.Len(),
	}, nil
}
