package auth

import (
	"net/http"
	"time"
)

type CookieConfig struct {
	Name   string
	Secure bool
}

func (cc CookieConfig) Set(w http.ResponseWriter, session Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     cc.Name,
		Value:    session.ID,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (cc CookieConfig) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cc.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionID returns the session id carried by the request, or "" when there is none.
func (cc CookieConfig) SessionID(r *http.Request) string {
	cookie, err := r.Cookie(cc.Name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
