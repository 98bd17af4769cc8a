package auth

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"projectboard/internal/api"
	"projectboard/internal/model"
	"projectboard/internal/notify"
	"projectboard/internal/session"
)

// State is the authentication state machine: Anonymous or Authenticated,
// nothing in between.
type State int

const (
	StateAnonymous State = iota
	StateAuthenticated
)

// Authenticator is the single owner of session state. Everything that
// mutates it goes through here: login, logout, and 401 invalidation
// observed via the client's unauthorized listener.
type Authenticator struct {
	client   *api.Client
	store    session.Store
	notifier notify.Notifier
	logger   *zap.Logger

	mu    sync.Mutex
	state State
	user  *model.User
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Data struct {
		AccessToken string     `json:"access_token"`
		User        model.User `json:"user"`
	} `json:"data"`
}

// NewAuthenticator resolves the startup state from the store: a present
// token means Authenticated, and an unreadable stored user leaves the
// state Authenticated without a profile rather than failing.
func NewAuthenticator(ctx context.Context, client *api.Client, store session.Store, notifier notify.Notifier, logger *zap.Logger) *Authenticator {
	a := &Authenticator{
		client:   client,
		store:    store,
		notifier: notifier,
		logger:   logger,
		state:    StateAnonymous,
	}

	if _, ok := store.Token(ctx); ok {
		a.state = StateAuthenticated
		if u, ok := store.User(ctx); ok {
			a.user = u
		} else {
			logger.Warn("Authenticated session has no readable user profile")
		}
	}

	client.OnUnauthorized(a.handleUnauthorized)
	return a
}

// Login exchanges credentials for a session. On failure the state is left
// untouched and the error is re-raised so callers can react as well.
func (a *Authenticator) Login(ctx context.Context, email, password string) error {
	var resp loginResponse
	if err := a.client.Post(ctx, "/login", credentials{Email: email, Password: password}, &resp); err != nil {
		a.notifier.Error("Invalid credentials")
		return err
	}

	if err := a.store.SetToken(ctx, resp.Data.AccessToken); err != nil {
		a.logger.Warn("Failed to persist token", zap.Error(err))
	}
	if err := a.store.SetUser(ctx, &resp.Data.User); err != nil {
		a.logger.Warn("Failed to persist user", zap.Error(err))
	}

	a.mu.Lock()
	a.state = StateAuthenticated
	user := resp.Data.User
	a.user = &user
	a.mu.Unlock()

	a.notifier.Success("Login successful")
	return nil
}

// Logout drops the session locally. There is no server round trip; the
// backend keeps no token state.
func (a *Authenticator) Logout(ctx context.Context) {
	if err := a.store.Clear(ctx); err != nil {
		a.logger.Warn("Failed to clear session", zap.Error(err))
	}

	a.mu.Lock()
	a.state = StateAnonymous
	a.user = nil
	a.mu.Unlock()

	a.notifier.Info("Logged out successfully")
}

// handleUnauthorized reacts to a 401 observed by the request pipeline.
// The pipeline has already cleared the store; the in-memory state must
// follow instead of claiming authenticated until the next restart.
func (a *Authenticator) handleUnauthorized() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state == StateAuthenticated {
		a.state = StateAnonymous
		a.user = nil
		a.logger.Info("Session invalidated by server, dropping authenticated state")
	}
}

func (a *Authenticator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Authenticator) IsAuthenticated() bool {
	return a.State() == StateAuthenticated
}

// User returns the authenticated profile, which can be nil even while
// authenticated when the stored record was unreadable at startup.
func (a *Authenticator) User() *model.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user
}
