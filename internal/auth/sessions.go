package auth

import (
	"go.uber.org/zap"
	"net/http"
)

// Sessions ties the session store to the session cookie.
type Sessions struct {
	store   Store
	cookies CookieConfig
	logger  *zap.Logger
}

func NewSessions(store Store, cookies CookieConfig, logger *zap.Logger) *Sessions {
	return &Sessions{
		store:   store,
		cookies: cookies,
		logger:  logger,
	}
}

// Current returns the live session of the request, if any.
func (s *Sessions) Current(r *http.Request) (Session, bool) {
	return s.store.Get(s.cookies.SessionID(r))
}

// Begin creates a session for user and sets its cookie.
func (s *Sessions) Begin(w http.ResponseWriter, user Identity) (Session, error) {
	session, err := s.store.Create(user)
	if err != nil {
		return Session{}, err
	}
	s.cookies.Set(w, session)
	return session, nil
}

// End destroys the request's session, if any, and clears the cookie.
func (s *Sessions) End(w http.ResponseWriter, r *http.Request) {
	if id := s.cookies.SessionID(r); id != "" {
		s.store.Delete(id)
	}
	s.cookies.Clear(w)
}

func (s *Sessions) hasCookie(r *http.Request) bool {
	return s.cookies.SessionID(r) != ""
}

func (s *Sessions) clearCookie(w http.ResponseWriter) {
	s.cookies.Clear(w)
}
