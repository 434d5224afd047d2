package auth

import (
	"go.uber.org/zap"
	"net/http"
)

const LoginPath = "/login"

// ProtectedHandler serves a view that requires a logged in user. The session is passed
// explicitly rather than read from a shared context.
type ProtectedHandler func(w http.ResponseWriter, r *http.Request, session Session)

// Guard gates protected views on session presence.
type Guard struct {
	sessions   *Sessions
	onRedirect func()
	logger     *zap.Logger
}

type GuardOption func(*Guard)

// WithRedirectHook registers fn to run every time a request is sent to the login page.
func WithRedirectHook(fn func()) GuardOption {
	return func(g *Guard) {
		g.onRedirect = fn
	}
}

func NewGuard(sessions *Sessions, logger *zap.Logger, opts ...GuardOption) *Guard {
	g := &Guard{
		sessions: sessions,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Protect redirects requests without a live session to the login page. next is only
// invoked when a session exists.
func (g *Guard) Protect(next ProtectedHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := g.sessions.Current(r)
		if !ok {
			g.logger.Info("Redirecting unauthenticated request", zap.String("path", r.URL.Path))
			if g.sessions.hasCookie(r) {
				g.sessions.clearCookie(w)
			}
			if g.onRedirect != nil {
				g.onRedirect()
			}
			http.Redirect(w, r, LoginPath, http.StatusFound)
			return
		}
		next(w, r, session)
	})
}
