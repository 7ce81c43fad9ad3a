package domain

import (
	"time"

	"github.com/google/uuid"
)

type (
	ConnID    string
	SessionID string
)

// Session pairs exactly two connections for one matched interaction.
// The ids are a uuid, never derived from the member conn ids, so
// uniqueness does not depend on the conn-id format.
type Session struct {
	ID        SessionID
	A, B      ConnID
	Mode      Mode
	CreatedAt time.Time
}

func NewSession(a, b ConnID, mode Mode, now time.Time) *Session {
	return &Session{
		ID:        SessionID(uuid.NewString()),
		A:         a,
		B:         b,
		Mode:      mode,
		CreatedAt: now,
	}
}

// Has reports whether cid is one of the two members.
func (s *Session) Has(cid ConnID) bool {
	return s.A == cid || s.B == cid
}

// Other returns the counterpart of cid. The second result is false
// when cid is not a member at all.
func (s *Session) Other(cid ConnID) (ConnID, bool) {
	switch cid {
	case s.A:
		return s.B, true
	case s.B:
		return s.A, true
	}
	return "", false
}

func (s *Session) Age(now time.Time) time.Duration {
	return now.Sub(s.CreatedAt)
}
