package session

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/hpungsan/flashdeck/internal/card"
)

func TestCursor_Wraps(t *testing.T) {
	c := NewCursor(3)

	c.Previous()
	require.Equal(t, 2, c.Position)

	c.Next()
	require.Equal(t, 0, c.Position)

	c.Next()
	c.Next()
	c.Next()
	require.Equal(t, 0, c.Position)
}

func TestCursor_MovingHidesAnswer(t *testing.T) {
	c := NewCursor(2)

	c.ToggleReveal()
	require.True(t, c.Revealed)
	require.Equal(t, 0, c.Position)

	c.Next()
	require.False(t, c.Revealed)

	c.ToggleReveal()
	c.Previous()
	require.False(t, c.Revealed)

	c.ToggleReveal()
	c.ToggleReveal()
	require.False(t, c.Revealed)
}

func TestCursor_SingleCard(t *testing.T) {
	c := NewCursor(1)
	c.Next()
	require.Equal(t, 0, c.Position)
	c.Previous()
	require.Equal(t, 0, c.Position)
}

func TestCursor_EmptyViewIsInert(t *testing.T) {
	var c Cursor
	c.Next()
	c.Previous()
	c.ToggleReveal()
	require.Equal(t, Cursor{}, c)

	_, ok := c.Current(card.View{})
	require.False(t, ok)
}

func TestCursor_Current(t *testing.T) {
	view := card.Identity(card.Seed())
	c := NewCursor(len(view))

	c.Previous()
	e, ok := c.Current(view)
	require.True(t, ok)
	require.Equal(t, 14, e.Position)
	require.Equal(t, card.Seed()[14], e.Card)
}

func TestCursor_Resize(t *testing.T) {
	c := NewCursor(5)
	c.Next()
	c.Next()
	c.ToggleReveal()

	// Still in range: kept
	c.Resize(4)
	require.Equal(t, 2, c.Position)
	require.True(t, c.Revealed)

	// Out of range: reset
	c.Resize(2)
	require.Equal(t, 0, c.Position)
	require.False(t, c.Revealed)
	require.Equal(t, 2, c.Size())

	c.Resize(0)
	require.Equal(t, 0, c.Size())
	_, ok := c.Current(card.View{})
	require.False(t, ok)
}

func testCursorProperties(t *rapid.T) {
	n := rapid.IntRange(1, 50).Draw(t, "n")
	c := NewCursor(n)
	for range rapid.IntRange(0, n).Draw(t, "start") {
		c.Next()
	}
	start := c.Position

	// Next N times returns to the start
	for range n {
		c.Next()
	}
	if c.Position != start {
		t.Fatalf("after %d Next: position %d, want %d", n, c.Position, start)
	}

	// Previous undoes Next
	steps := rapid.IntRange(0, 3*n).Draw(t, "steps")
	for range steps {
		c.Next()
	}
	for range steps {
		c.Previous()
	}
	if c.Position != start {
		t.Fatalf("after %d Next/Previous pairs: position %d, want %d", steps, c.Position, start)
	}

	if c.Position < 0 || c.Position >= n {
		t.Fatalf("position %d out of [0, %d)", c.Position, n)
	}
}

func TestCursor_Properties(t *testing.T) {
	rapid.Check(t, testCursorProperties)
}

func FuzzCursor(f *testing.F) {
	f.Fuzz(rapid.MakeFuzz(testCursorProperties))
}
