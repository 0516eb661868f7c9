// Package session holds the state of one study session and the commands
// that change it.
//
// A Session is owned by the presentation layer. Each user intent is one
// method call that runs to completion and returns a Snapshot to render.
// Nothing here is safe for concurrent use; callers serialize commands.
package session

import (
	"github.com/hpungsan/flashdeck/internal/card"
	"github.com/hpungsan/flashdeck/internal/errors"
	"github.com/hpungsan/flashdeck/internal/store"
)

// Snapshot is the state the presentation layer renders after a command.
// Only Authenticated is populated while the gate is closed.
type Snapshot struct {
	Authenticated bool `json:"authenticated"`

	// Total is the size of the whole collection.
	Total int `json:"total"`

	// Subjects are the distinct subjects, sorted, without the "All" wildcard.
	Subjects []string `json:"subjects,omitempty"`

	// Study view: subject filter only.
	Subject string      `json:"subject,omitempty"`
	Study   card.View   `json:"study,omitempty"`
	Cursor  Cursor      `json:"cursor"`
	Current *card.Entry `json:"current,omitempty"`

	// Management view: subject filter, then search.
	ManageSubject string    `json:"manage_subject,omitempty"`
	Search        string    `json:"search,omitempty"`
	Manage        card.View `json:"manage,omitempty"`

	Groups []card.Group `json:"groups,omitempty"`
}

// SubjectOptions returns the subject filter choices with the "All" wildcard first.
func (s Snapshot) SubjectOptions() []string {
	return append([]string{card.AllSubjects}, s.Subjects...)
}

// Session composes the store, the login gate, the active filters and the cursor.
type Session struct {
	store  *store.Store
	gate   Gate
	cursor Cursor

	subject       string
	manageSubject string
	search        string
}

// New starts a logged-out session over st.
func New(st *store.Store) *Session {
	s := &Session{
		store:         st,
		subject:       card.AllSubjects,
		manageSubject: card.AllSubjects,
	}
	s.cursor = NewCursor(len(s.studyView()))
	return s
}

// Authenticated reports whether the login gate is open.
func (s *Session) Authenticated() bool {
	return s.gate.Authenticated()
}

// Snapshot returns the current state without changing it.
func (s *Session) Snapshot() (Snapshot, error) {
	if err := s.requireLogin(); err != nil {
		return s.snapshot(), err
	}
	return s.snapshot(), nil
}

// Login opens the gate. A failed attempt leaves the session logged out.
func (s *Session) Login(email, password string) (Snapshot, error) {
	if err := s.gate.AttemptLogin(email, password); err != nil {
		return s.snapshot(), err
	}
	return s.snapshot(), nil
}

// Logout closes the gate and clears the filters and cursor.
func (s *Session) Logout() (Snapshot, error) {
	if err := s.requireLogin(); err != nil {
		return s.snapshot(), err
	}
	s.gate.Logout()
	s.subject = card.AllSubjects
	s.manageSubject = card.AllSubjects
	s.search = ""
	s.cursor = NewCursor(len(s.studyView()))
	return s.snapshot(), nil
}

// SelectSubject changes the study filter. The cursor resets when the
// filter actually changes.
func (s *Session) SelectSubject(subject string) (Snapshot, error) {
	if err := s.requireLogin(); err != nil {
		return s.snapshot(), err
	}
	subject = normalizeSubject(subject)
	if subject != s.subject {
		s.subject = subject
		s.cursor = NewCursor(len(s.studyView()))
	}
	return s.snapshot(), nil
}

// SelectManageSubject changes the subject filter of the management view.
func (s *Session) SelectManageSubject(subject string) (Snapshot, error) {
	if err := s.requireLogin(); err != nil {
		return s.snapshot(), err
	}
	s.manageSubject = normalizeSubject(subject)
	return s.snapshot(), nil
}

// SetSearch sets the management search query. A blank query shows everything
// the subject filter selects.
func (s *Session) SetSearch(query string) (Snapshot, error) {
	if err := s.requireLogin(); err != nil {
		return s.snapshot(), err
	}
	s.search = query
	return s.snapshot(), nil
}

// Next advances the study cursor.
func (s *Session) Next() (Snapshot, error) {
	if err := s.requireLogin(); err != nil {
		return s.snapshot(), err
	}
	s.cursor.Next()
	return s.snapshot(), nil
}

// Previous moves the study cursor back.
func (s *Session) Previous() (Snapshot, error) {
	if err := s.requireLogin(); err != nil {
		return s.snapshot(), err
	}
	s.cursor.Previous()
	return s.snapshot(), nil
}

// ToggleReveal shows or hides the answer of the current card.
func (s *Session) ToggleReveal() (Snapshot, error) {
	if err := s.requireLogin(); err != nil {
		return s.snapshot(), err
	}
	s.cursor.ToggleReveal()
	return s.snapshot(), nil
}

// Create appends a flashcard. On error nothing changes.
func (s *Session) Create(subject, front, back string) (Snapshot, error) {
	if err := s.requireLogin(); err != nil {
		return s.snapshot(), err
	}
	if _, err := s.store.Append(subject, front, back); err != nil {
		return s.snapshot(), err
	}
	s.afterMutation()
	return s.snapshot(), nil
}

// Delete removes the flashcard at position in the full collection.
func (s *Session) Delete(position int) (Snapshot, error) {
	if err := s.requireLogin(); err != nil {
		return s.snapshot(), err
	}
	if _, err := s.store.DeleteAt(position); err != nil {
		return s.snapshot(), err
	}
	s.afterMutation()
	return s.snapshot(), nil
}

// DeleteAll empties the collection.
func (s *Session) DeleteAll() (Snapshot, error) {
	if err := s.requireLogin(); err != nil {
		return s.snapshot(), err
	}
	if _, err := s.store.DeleteAll(); err != nil {
		return s.snapshot(), err
	}
	s.afterMutation()
	return s.snapshot(), nil
}

func (s *Session) requireLogin() error {
	if !s.gate.Authenticated() {
		return errors.NewUnauthenticated()
	}
	return nil
}

// afterMutation drops filters on subjects that no longer exist and fits the
// cursor to the new study view.
func (s *Session) afterMutation() {
	if !s.hasSubject(s.subject) {
		s.subject = card.AllSubjects
		s.cursor.Reset()
	}
	if !s.hasSubject(s.manageSubject) {
		s.manageSubject = card.AllSubjects
	}
	s.cursor.Resize(len(s.studyView()))
}

func (s *Session) hasSubject(subject string) bool {
	if card.IsWildcard(subject) {
		return true
	}
	for _, existing := range s.store.Subjects() {
		if existing == subject {
			return true
		}
	}
	return false
}

func (s *Session) studyView() card.View {
	return s.store.Filter(s.subject)
}

func (s *Session) snapshot() Snapshot {
	if !s.gate.Authenticated() {
		return Snapshot{}
	}

	study := s.studyView()
	snap := Snapshot{
		Authenticated: true,
		Total:         s.store.Len(),
		Subjects:      s.store.Subjects(),
		Subject:       s.subject,
		Study:         study,
		Cursor:        s.cursor,
		ManageSubject: s.manageSubject,
		Search:        s.search,
		Manage:        s.store.Search(s.search, s.store.Filter(s.manageSubject)),
		Groups:        s.store.GroupBySubject(),
	}
	if e, ok := s.cursor.Current(study); ok {
		snap.Current = &e
	}
	return snap
}

func normalizeSubject(subject string) string {
	if card.IsWildcard(subject) {
		return card.AllSubjects
	}
	return subject
}
