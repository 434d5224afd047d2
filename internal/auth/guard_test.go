package auth

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type mapStore struct {
	sessions map[string]Session
}

func (m *mapStore) Create(user Identity) (Session, error) {
	s := Session{ID: "sid-" + user.ID, User: user, ExpiresAt: time.Now().Add(time.Hour)}
	m.sessions[s.ID] = s
	return s, nil
}

func (m *mapStore) Get(id string) (Session, bool) {
	s, ok := m.sessions[id]
	return s, ok
}

func (m *mapStore) Delete(id string) {
	delete(m.sessions, id)
}

var testCookies = CookieConfig{Name: "test_session"}

func TestGuard_Protect(t *testing.T) {
	t.Run("Redirects to login and never invokes the child without a session", func(t *testing.T) {
		store := &mapStore{sessions: map[string]Session{}}
		redirects := 0
		guard := NewGuard(
			NewSessions(store, testCookies, zaptest.NewLogger(t)),
			zaptest.NewLogger(t),
			WithRedirectHook(func() { redirects++ }),
		)
		invoked := false
		h := guard.Protect(func(w http.ResponseWriter, r *http.Request, s Session) {
			invoked = true
		})

		for _, path := range []string{"/products", "/store", "/products/p1/edit"} {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, LoginPath, rec.Header().Get("Location"))
		}
		assert.False(t, invoked)
		assert.Equal(t, 3, redirects)
	})

	t.Run("Redirects and clears the cookie for an unknown session", func(t *testing.T) {
		store := &mapStore{sessions: map[string]Session{}}
		guard := NewGuard(NewSessions(store, testCookies, zaptest.NewLogger(t)), zaptest.NewLogger(t))
		invoked := false
		h := guard.Protect(func(w http.ResponseWriter, r *http.Request, s Session) {
			invoked = true
		})

		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.AddCookie(&http.Cookie{Name: testCookies.Name, Value: "stale"})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.False(t, invoked)
		assert.Equal(t, http.StatusFound, rec.Code)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, testCookies.Name, cookies[0].Name)
		assert.Equal(t, "", cookies[0].Value)
		assert.True(t, cookies[0].MaxAge < 0)
	})

	t.Run("Invokes the child unchanged with the session", func(t *testing.T) {
		store := &mapStore{sessions: map[string]Session{}}
		session, _ := store.Create(Identity{ID: "u1", Name: "Bob"})
		guard := NewGuard(NewSessions(store, testCookies, zaptest.NewLogger(t)), zaptest.NewLogger(t))
		var got Session
		h := guard.Protect(func(w http.ResponseWriter, r *http.Request, s Session) {
			got = s
			w.WriteHeader(http.StatusTeapot)
			_, _ = w.Write([]byte("child view"))
		})

		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.AddCookie(&http.Cookie{Name: testCookies.Name, Value: session.ID})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, "child view", rec.Body.String())
		assert.Equal(t, session, got)
	})
}

func TestCookieConfig(t *testing.T) {
	t.Run("Set writes an HttpOnly cookie carrying the session id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		cc := CookieConfig{Name: "sid", Secure: true}
		cc.Set(rec, Session{ID: "abc", ExpiresAt: time.Now().Add(time.Hour)})

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "abc", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.True(t, cookies[0].Secure)
		assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	})

	t.Run("SessionID is empty without a cookie", func(t *testing.T) {
		cc := CookieConfig{Name: "sid"}
		assert.Equal(t, "", cc.SessionID(httptest.NewRequest(http.MethodGet, "/", nil)))
	})
}

func TestSessions(t *testing.T) {
	t.Run("Begin sets the cookie and Current finds the session", func(t *testing.T) {
		store := &mapStore{sessions: map[string]Session{}}
		sessions := NewSessions(store, testCookies, zaptest.NewLogger(t))

		rec := httptest.NewRecorder()
		session, err := sessions.Begin(rec, Identity{ID: "u1", Name: "Bob"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		for _, c := range rec.Result().Cookies() {
			req.AddCookie(c)
		}
		found, ok := sessions.Current(req)
		require.True(t, ok)
		assert.Equal(t, session.ID, found.ID)
	})

	t.Run("End removes the session and clears the cookie", func(t *testing.T) {
		store := &mapStore{sessions: map[string]Session{}}
		sessions := NewSessions(store, testCookies, zaptest.NewLogger(t))
		session, _ := store.Create(Identity{ID: "u1"})

		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		req.AddCookie(&http.Cookie{Name: testCookies.Name, Value: session.ID})
		rec := httptest.NewRecorder()
		sessions.End(rec, req)

		_, ok := store.Get(session.ID)
		assert.False(t, ok)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "", cookies[0].Value)
	})
}
