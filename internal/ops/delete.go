package ops

import (
	"github.com/hpungsan/flashdeck/internal/card"
	"github.com/hpungsan/flashdeck/internal/errors"
	"github.com/hpungsan/flashdeck/internal/store"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	Position int // position in the full collection
}

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	Deleted  bool           `json:"deleted"`
	Position int            `json:"position"`
	Card     card.Flashcard `json:"card"`
	Total    int            `json:"total"`
}

// Delete removes the flashcard at a position. Later flashcards shift down by one.
func Delete(st *store.Store, input DeleteInput) (*DeleteOutput, error) {
	removed, err := st.DeleteAt(input.Position)
	if err != nil {
		return nil, err
	}
	return &DeleteOutput{
		Deleted:  true,
		Position: input.Position,
		Card:     removed,
		Total:    st.Len(),
	}, nil
}

// DeleteAllInput contains parameters for the DeleteAll operation.
type DeleteAllInput struct {
	Confirm bool // required; guards against accidental wipes
}

// DeleteAllOutput contains the result of the DeleteAll operation.
type DeleteAllOutput struct {
	Deleted int    `json:"deleted"`
	Message string `json:"message"`
}

// DeleteAll empties the collection.
func DeleteAll(st *store.Store, input DeleteAllInput) (*DeleteAllOutput, error) {
	if !input.Confirm {
		return nil, errors.NewInvalidRequest("delete all requires confirm")
	}

	count, err := st.DeleteAll()
	if err != nil {
		return nil, err
	}

	message := "No flashcards to delete"
	if count > 0 {
		message = "Deleted " + Plural(count, "flashcard")
	}

	return &DeleteAllOutput{
		Deleted: count,
		Message: message,
	}, nil
}
