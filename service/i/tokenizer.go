package i

import (
	"time"

	"github.com/google/uuid"
)

// Binding ties a client to a player table and the session its input is allowed to act on.
type Binding struct {
	PlayerID  uuid.UUID
	SessionID uuid.UUID
}

// Tokenizer issues and verifies binding tokens.
type Tokenizer interface {
	// Generate signs a token carrying the binding, valid for expTime.
	Generate(b Binding, expTime time.Duration) (string, error)

	// Decode validates a token and returns the binding it carries.
	Decode(token string) (Binding, error)
}
