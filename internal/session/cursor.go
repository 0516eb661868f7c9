package session

import "github.com/hpungsan/flashdeck/internal/card"

// Cursor is the study position within a view of a given size.
// The zero value is an inert cursor over an empty view.
type Cursor struct {
	Position int  `json:"position"`
	Revealed bool `json:"revealed"`

	size int
}

// NewCursor returns a cursor at (0, hidden) over a view of n entries.
func NewCursor(n int) Cursor {
	if n < 0 {
		n = 0
	}
	return Cursor{size: n}
}

// Size returns the size of the view the cursor moves over.
func (c *Cursor) Size() int {
	return c.size
}

// Next moves forward one entry, wrapping from last to first, and hides the answer.
func (c *Cursor) Next() {
	if c.size == 0 {
		return
	}
	c.Position = (c.Position + 1) % c.size
	c.Revealed = false
}

// Previous moves back one entry, wrapping from first to last, and hides the answer.
func (c *Cursor) Previous() {
	if c.size == 0 {
		return
	}
	c.Position = (c.Position - 1 + c.size) % c.size
	c.Revealed = false
}

// ToggleReveal flips whether the answer is shown.
func (c *Cursor) ToggleReveal() {
	if c.size == 0 {
		return
	}
	c.Revealed = !c.Revealed
}

// Current returns the entry of view under the cursor.
func (c *Cursor) Current(view card.View) (card.Entry, bool) {
	if c.Position < 0 || c.Position >= len(view) {
		return card.Entry{}, false
	}
	return view[c.Position], true
}

// Resize adapts the cursor to a view of n entries, resetting it if the
// current position no longer exists.
func (c *Cursor) Resize(n int) {
	if n < 0 {
		n = 0
	}
	c.size = n
	if c.Position >= n {
		c.Reset()
	}
}

// Reset moves to the first entry with the answer hidden.
func (c *Cursor) Reset() {
	c.Position = 0
	c.Revealed = false
}
