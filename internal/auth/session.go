package auth

import (
	"errors"
	"time"
)

var (
	ErrSessionNotStored = errors.New("session could not be stored")
	ErrEmptyIdentity    = errors.New("identity has no user id")
)

// Identity is the logged in user as shown in the UI.
type Identity struct {
	ID   string
	Name string
}

// Session is the login state of one browser.
type Session struct {
	ID        string
	User      Identity
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store keeps sessions. Implementations must be safe for concurrent use.
type Store interface {
	Create(user Identity) (Session, error)
	Get(id string) (Session, bool)
	Delete(id string)
}
