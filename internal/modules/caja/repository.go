package caja

import "context"

// Repository defines data access for the till session. There is at most one
// current session; a closed session stays readable until the next open
// replaces it.
type Repository interface {
	// Get returns the current session, or ErrNoSession.
	Get(ctx context.Context) (*Session, error)

	// Replace installs a new session (till open).
	Replace(ctx context.Context, s *Session) error

	// Update runs mutate against the current session under the repository
	// lock, so till mutations are globally serialized, and persists the
	// result. If mutate returns an error nothing is changed.
	Update(ctx context.Context, mutate func(*Session) error) (*Session, error)
}
