package session

import (
	"github.com/hpungsan/flashdeck/internal/card"
	"github.com/hpungsan/flashdeck/internal/errors"
)

// Gate is the login gate in front of the study session.
//
// It is a placeholder, not a security boundary: any non-empty email and
// password open it. Credentials are never checked or stored.
type Gate struct {
	authenticated bool
}

// Authenticated reports whether the gate is open.
func (g *Gate) Authenticated() bool {
	return g.authenticated
}

// AttemptLogin opens the gate iff email and password are both non-blank.
// On failure the gate stays closed.
func (g *Gate) AttemptLogin(email, password string) error {
	if card.IsBlank(email) || card.IsBlank(password) {
		return errors.NewValidation("credentials", "please enter both email and password")
	}
	g.authenticated = true
	return nil
}

// Logout closes the gate.
func (g *Gate) Logout() {
	g.authenticated = false
}
