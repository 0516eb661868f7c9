// Package ops implements the flashcard operations shared by the CLI and the
// MCP server. Each operation takes an Input struct, validates it, runs
// against a store.Store and returns an Output struct ready for JSON.
package ops

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hpungsan/flashdeck/internal/errors"
)

// Pagination limits
const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// ParsePosition parses a user-supplied collection position.
func ParsePosition(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.NewInvalidRequest("position is required")
	}
	pos, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.NewInvalidRequest(fmt.Sprintf("position must be an integer, got %q", s))
	}
	return pos, nil
}

// Plural formats n with word, adding an "s" unless n is 1.
func Plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
