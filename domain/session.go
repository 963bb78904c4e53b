package domain

import "time"

// Session is the authenticated actor passed explicitly to every operation
// that needs to know who is acting.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSession opens a session for userID lasting ttl from now.
func NewSession(id, userID string, now time.Time, ttl time.Duration) *Session {
	now = now.UTC()
	return &Session{
		ID:        id,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func (s *Session) IsExpired(reference time.Time) bool {
	if s == nil {
		return true
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return !s.ExpiresAt.After(reference)
}

// Remaining is the time left before expiry, never negative.
func (s *Session) Remaining(reference time.Time) time.Duration {
	if s.IsExpired(reference) {
		return 0
	}
	return s.ExpiresAt.Sub(reference)
}

// ExtendFrom moves the expiry to ttl after reference.
func (s *Session) ExtendFrom(reference time.Time, ttl time.Duration) {
	s.ExpiresAt = reference.UTC().Add(ttl)
}
