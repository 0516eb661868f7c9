package card

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sample() Collection {
	return Collection{
		{Subject: "Math", Front: "Pythagoras", Back: "a^2+b^2=c^2"},
		{Subject: "Physics", Front: "Ohm", Back: "V=IR"},
		{Subject: "Math", Front: "Euler", Back: "e^{i pi}+1=0"},
		{Subject: "Biology", Front: "Mitosis", Back: "Cell division"},
	}
}

func TestSeed(t *testing.T) {
	s := Seed()
	require.Len(t, s, 15)
	require.Equal(t, []string{"Chemistry", "Math", "Physics"}, Subjects(s))

	for _, fc := range s {
		require.False(t, IsBlank(fc.Front), "seed front must not be blank")
		require.False(t, IsBlank(fc.Back), "seed back must not be blank")
	}

	// Callers get their own copy
	s[0].Front = "changed"
	require.NotEqual(t, "changed", Seed()[0].Front)
}

func TestSeed_FilterMathReturnsFive(t *testing.T) {
	v := FilterBySubject(Seed(), "Math")
	require.Len(t, v, 5)
	for _, e := range v {
		require.Equal(t, "Math", e.Card.Subject)
	}
}

func TestSeed_SearchGibbs(t *testing.T) {
	v := Search("gibbs", Identity(Seed()))
	require.Len(t, v, 1)
	require.Contains(t, v[0].Card.Front, "Gibbs Free Energy")
	require.Equal(t, 11, v[0].Position)
}

func TestFilterBySubject(t *testing.T) {
	c := sample()

	tests := []struct {
		name      string
		subject   string
		positions []int
	}{
		{"empty is identity", "", []int{0, 1, 2, 3}},
		{"wildcard is identity", AllSubjects, []int{0, 1, 2, 3}},
		{"math keeps order", "Math", []int{0, 2}},
		{"trimmed subject", "  Physics ", []int{1}},
		{"unknown subject", "Latin", nil},
		{"case sensitive", "math", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := FilterBySubject(c, tt.subject)
			require.Len(t, v, len(tt.positions))
			for i, p := range tt.positions {
				require.Equal(t, p, v[i].Position)
				require.Equal(t, c[p], v[i].Card)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	c := sample()

	tests := []struct {
		name      string
		query     string
		within    View
		positions []int
	}{
		{"blank query is no-op", "   ", Identity(c), []int{0, 1, 2, 3}},
		{"matches front case-insensitively", "EULER", Identity(c), []int{2}},
		{"matches back", "cell", Identity(c), []int{3}},
		{"narrows a subject view", "=", FilterBySubject(c, "Math"), []int{0, 2}},
		{"no match", "zzz", Identity(c), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Search(tt.query, tt.within)
			require.Len(t, v, len(tt.positions))
			for i, p := range tt.positions {
				require.Equal(t, p, v[i].Position)
			}
		})
	}
}

func TestSubjects_EmptyCollection(t *testing.T) {
	require.Empty(t, Subjects(nil))
	require.NotNil(t, Subjects(nil))
}

func TestGroupBySubject_FirstSeenOrder(t *testing.T) {
	groups := GroupBySubject(sample())

	require.Len(t, groups, 3)
	require.Equal(t, "Math", groups[0].Subject)
	require.Equal(t, "Physics", groups[1].Subject)
	require.Equal(t, "Biology", groups[2].Subject)

	require.Len(t, groups[0].Cards, 2)
	require.Equal(t, "Pythagoras", groups[0].Cards[0].Front)
	require.Equal(t, "Euler", groups[0].Cards[1].Front)
}

func TestViewCards(t *testing.T) {
	v := FilterBySubject(sample(), "Math")
	cards := v.Cards()
	require.Equal(t, Collection{sample()[0], sample()[2]}, cards)
}

func TestCloneIndependent(t *testing.T) {
	c := sample()
	clone := c.Clone()
	clone[0].Front = "changed"
	require.Equal(t, "Pythagoras", c[0].Front)

	require.NotNil(t, Collection(nil).Clone())
}

func TestIsWildcard(t *testing.T) {
	require.True(t, IsWildcard(""))
	require.True(t, IsWildcard("All"))
	require.False(t, IsWildcard(" All "))
	require.False(t, IsWildcard("all"))
	require.False(t, IsWildcard("Math"))
}
