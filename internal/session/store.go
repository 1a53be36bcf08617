// Package session holds the server-side session state: an opaque session
// id bound to the authenticated username. The client presents the id
// through a cookie; the authoritative record lives in the backing store
// and expires after a fixed idle timeout.
package session

import (
	"context"
	"errors"
	"time"
)

// CookieName is the session cookie presented by clients.
const CookieName = "sid"

// ErrNotFound is returned when a token does not resolve to a live session.
var ErrNotFound = errors.New("session not found")

// Session is the state held for one authenticated client.
type Session struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the session lifecycle: create on login, read (and re-arm the
// idle timeout) on each request, destroy on logout. Implementations must
// be safe for concurrent use.
type Store interface {
	Create(ctx context.Context, username string) (token string, err error)
	Get(ctx context.Context, token string) (*Session, error)
	Destroy(ctx context.Context, token string) error
}
