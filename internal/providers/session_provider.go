package providers

import (
	"context"
	"kinstore/internal/models"
	"kinstore/internal/structures"
	"net/http"
	"strings"
)

const (
	AdminCookieName = "admin-session"
	UserCookieName  = "user-session"
)

type sessionKey struct{}

type SessionProviderInterface interface {
	SetAdmin(w http.ResponseWriter)
	ClearAdmin(w http.ResponseWriter)
	SetUser(w http.ResponseWriter, username string)
	ClearUser(w http.ResponseWriter)
	Resolve(r *http.Request) models.Session
}

type SessionProvider struct {
	maxAge int
	secure bool
}

func NewSessionProvider(conf *structures.Config) SessionProviderInterface {
	return &SessionProvider{
		maxAge: int(conf.Auth.SessionMaxAge.Seconds()),
		secure: conf.Auth.Production,
	}
}

func (sp *SessionProvider) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   sp.secure,
		SameSite: http.SameSiteStrictMode,
	}
}

func (sp *SessionProvider) SetAdmin(w http.ResponseWriter) {
	http.SetCookie(w, sp.cookie(AdminCookieName, "true", sp.maxAge))
}

func (sp *SessionProvider) ClearAdmin(w http.ResponseWriter) {
	http.SetCookie(w, sp.cookie(AdminCookieName, "", -1))
}

func (sp *SessionProvider) SetUser(w http.ResponseWriter, username string) {
	http.SetCookie(w, sp.cookie(UserCookieName, username, sp.maxAge))
}

func (sp *SessionProvider) ClearUser(w http.ResponseWriter) {
	http.SetCookie(w, sp.cookie(UserCookieName, "", -1))
}

func (sp *SessionProvider) Resolve(r *http.Request) models.Session {
	var s models.Session
	if c, err := r.Cookie(AdminCookieName); err == nil && c.Value == "true" {
		s.Admin = true
	}
	if c, err := r.Cookie(UserCookieName); err == nil && c.Value != "" {
		s.Username = c.Value
	}
	return s
}

func WithSession(ctx context.Context, s models.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the zero Session when the middleware did not run.
func SessionFromContext(ctx context.Context) models.Session {
	s, _ := ctx.Value(sessionKey{}).(models.Session)
	return s
}

func SessionMiddleware(sessions SessionProviderInterface, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sessions.Resolve(r))))
	})
}

// AdminGate redirects /admin/* requests without an admin session to /login.
// The admin auth API under /admin/api/auth stays reachable.
func AdminGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if (path == "/admin" || strings.HasPrefix(path, "/admin/")) &&
			!strings.HasPrefix(path, "/admin/api/auth") &&
			!SessionFromContext(r.Context()).Admin {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
