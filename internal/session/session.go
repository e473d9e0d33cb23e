// Package session is the single authority over authentication state. All
// other components read sessions through it; only login, logout and the
// 401 teardown mutate them.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"swiftcourier-console/internal/domain"
	"swiftcourier-console/internal/logx"
)

// Session binds a backend bearer token to a browser. A session with a token
// but no profile is tentatively authenticated: the profile is resolved on
// first use and the session is torn down if resolution fails.
type Session struct {
	ID        string          `json:"id"`
	Token     string          `json:"token"`
	Profile   *domain.Profile `json:"profile,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Authenticated reports whether the session holds a resolved profile.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != "" && s.Profile != nil
}

// authAPI is the slice of the backend the authority needs.
type authAPI interface {
	Login(ctx context.Context, username, password string) (string, error)
	Me(ctx context.Context, token string) (*domain.Profile, error)
}

type counter interface {
	Inc()
}

// Authority owns the session lifecycle: login, profile resolution, logout
// and the forced teardown on a backend 401.
type Authority struct {
	api       authAPI
	store     *Store
	logger    logx.Logger
	teardowns counter
}

// NewAuthority wires the authority. teardowns counts forced logouts and may
// be nil.
func NewAuthority(api authAPI, store *Store, logger logx.Logger, teardowns counter) *Authority {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Authority{api: api, store: store, logger: logger, teardowns: teardowns}
}

// Login exchanges credentials for a token, resolves the profile and creates
// the session. On any failure no session is created.
func (a *Authority) Login(ctx context.Context, username, password string) (*Session, error) {
	token, err := a.api.Login(ctx, username, password)
	if err != nil {
		a.logger.Info("login failed", logx.String("username", username), logx.Err(err))
		return nil, err
	}
	profile, err := a.api.Me(ctx, token)
	if err != nil {
		a.logger.Warn("profile fetch after login failed", logx.Err(err))
		return nil, err
	}
	sess := Session{
		ID:        uuid.NewString(),
		Token:     token,
		Profile:   profile,
		CreatedAt: time.Now(),
	}
	a.store.Put(sess)
	a.logger.Info("session created",
		logx.String("username", profile.Username),
		logx.String("role", string(profile.Role)),
	)
	return &sess, nil
}

// Resolve loads the session with the given id. A persisted session without a
// profile (restored from disk) is completed by fetching the profile; if that
// fails for any reason, including an expired token, the session is
// invalidated and Resolve returns the underlying error.
func (a *Authority) Resolve(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, nil
	}
	sess, ok := a.store.Get(id)
	if !ok {
		return nil, nil
	}
	if sess.Profile == nil {
		profile, err := a.api.Me(ctx, sess.Token)
		if err != nil {
			a.Invalidate(id)
			return nil, err
		}
		sess.Profile = profile
		a.store.Put(sess)
	}
	return &sess, nil
}

// Logout removes the session. Idempotent and callable from any state.
func (a *Authority) Logout(id string) {
	if a.store.Delete(id) {
		a.logger.Info("session closed", logx.String("sid", id))
	}
}

// Invalidate tears a session down after the backend rejected its token.
// Concurrent in-flight requests may all report the same 401; only the first
// teardown counts and logs.
func (a *Authority) Invalidate(id string) {
	if !a.store.Delete(id) {
		return
	}
	if a.teardowns != nil {
		a.teardowns.Inc()
	}
	a.logger.Warn("session invalidated by backend", logx.String("sid", id))
}

// HomeFor returns the landing path for a role: staff go to company
// management, everyone else to the dashboard.
func HomeFor(role domain.Role) string {
	if role.Staff() {
		return "/companies"
	}
	return "/dashboard"
}
