package middleware

import (
	"context"
	"errors"
	"net/http"

	"swiftcourier-console/internal/apperr"
	"swiftcourier-console/internal/logx"
	"swiftcourier-console/internal/session"
)

type ctxKeySession struct{}

// WithSession injects a resolved session into the context.
func WithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, ctxKeySession{}, s)
}

// SessionFrom returns the session attached to the context, or nil for an
// anonymous request.
func SessionFrom(ctx context.Context) *session.Session {
	s, _ := ctx.Value(ctxKeySession{}).(*session.Session)
	return s
}

// SetSessionCookie binds the session to the browser.
func SetSessionCookie(w http.ResponseWriter, name string, s *session.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// SessionLoader resolves the session cookie through the authority on every
// request. A cookie whose token the backend rejects is cleared here, so the
// teardown runs no matter which screen triggered the call.
func SessionLoader(auth *session.Authority, cookieName string, logger logx.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logx.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sid string
			if c, err := r.Cookie(cookieName); err == nil {
				sid = c.Value
			}
			sess, err := auth.Resolve(r.Context(), sid)
			if err != nil {
				if !errors.Is(err, apperr.Unauthorized) {
					logger.Warn("session resolve failed", logx.Err(err))
				}
				ClearSessionCookie(w, cookieName)
				next.ServeHTTP(w, r)
				return
			}
			if sess != nil {
				r = r.WithContext(WithSession(r.Context(), sess))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth redirects anonymous requests to the login screen.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !SessionFrom(r.Context()).Authenticated() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireStaff redirects non-staff users to their dashboard. It assumes
// RequireAuth already ran.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFrom(r.Context())
		if !sess.Authenticated() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if !sess.Profile.Role.Staff() {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
