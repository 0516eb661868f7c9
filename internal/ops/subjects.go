package ops

import (
	"github.com/hpungsan/flashdeck/internal/card"
	"github.com/hpungsan/flashdeck/internal/store"
)

// SubjectCount is one subject and how many flashcards it has.
type SubjectCount struct {
	Subject string `json:"subject"`
	Count   int    `json:"count"`
}

// SubjectsOutput contains the result of the Subjects operation.
type SubjectsOutput struct {
	Subjects []SubjectCount `json:"subjects"`
	Total    int            `json:"total"`
}

// Subjects lists the distinct subjects, sorted, with their card counts.
func Subjects(st *store.Store) (*SubjectsOutput, error) {
	names := st.Subjects()
	subjects := make([]SubjectCount, 0, len(names))
	for _, name := range names {
		subjects = append(subjects, SubjectCount{
			Subject: name,
			Count:   len(st.Filter(name)),
		})
	}
	return &SubjectsOutput{Subjects: subjects, Total: st.Len()}, nil
}

// GroupsOutput contains the result of the Groups operation.
type GroupsOutput struct {
	Groups []card.Group `json:"groups"`
	Total  int          `json:"total"`
}

// Groups returns the collection grouped by subject in first-seen order.
func Groups(st *store.Store) (*GroupsOutput, error) {
	return &GroupsOutput{Groups: st.GroupBySubject(), Total: st.Len()}, nil
}
