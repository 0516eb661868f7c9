package card

import (
	"sort"
	"strings"
)

// Identity returns a view over every flashcard in c, in order.
func Identity(c Collection) View {
	v := make(View, len(c))
	for i, fc := range c {
		v[i] = Entry{Position: i, Card: fc}
	}
	return v
}

// FilterBySubject returns the flashcards whose subject equals subject, in
// collection order. The wildcard (empty or "All") returns the identity view.
func FilterBySubject(c Collection, subject string) View {
	if IsWildcard(subject) {
		return Identity(c)
	}
	v := View{}
	for i, fc := range c {
		if fc.Subject == subject {
			v = append(v, Entry{Position: i, Card: fc})
		}
	}
	return v
}

// Search narrows within to entries whose front or back contains query,
// ignoring case. A blank query returns within unchanged.
func Search(query string, within View) View {
	if IsBlank(query) {
		return within
	}
	// Matched as typed, surrounding spaces included.
	needle := strings.ToLower(query)
	v := View{}
	for _, e := range within {
		if strings.Contains(strings.ToLower(e.Card.Front), needle) ||
			strings.Contains(strings.ToLower(e.Card.Back), needle) {
			v = append(v, e)
		}
	}
	return v
}

// Subjects returns the distinct subjects in c, sorted lexicographically.
func Subjects(c Collection) []string {
	seen := make(map[string]bool)
	subjects := make([]string, 0)
	for _, fc := range c {
		if !seen[fc.Subject] {
			seen[fc.Subject] = true
			subjects = append(subjects, fc.Subject)
		}
	}
	sort.Strings(subjects)
	return subjects
}

// GroupBySubject groups c by subject. Groups appear in first-seen order and
// keep insertion order within each group.
func GroupBySubject(c Collection) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)
	for _, fc := range c {
		i, ok := index[fc.Subject]
		if !ok {
			i = len(groups)
			index[fc.Subject] = i
			groups = append(groups, Group{Subject: fc.Subject})
		}
		groups[i].Cards = append(groups[i].Cards, fc)
	}
	return groups
}
