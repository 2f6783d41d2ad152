package zorkvm

import "github.com/google/uuid"

// SessionID identifies a connected client, distinct from the world's own
// ItemID/LocationID tagged identifiers — a session outlives no world state
// and is never persisted in a GameState.
type SessionID uuid.UUID

// NewSessionID mints a fresh session identity.
func NewSessionID() SessionID {
	return SessionID(uuid.New())
}

func (s SessionID) String() string {
	return uuid.UUID(s).String()
}
