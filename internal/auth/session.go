// Package auth manages the client-side authentication session: sign-in,
// sign-out, token refresh, and the derived Session projection. The manager
// holds no hidden global state; it is constructed once at the composition
// root and handed to whatever needs it.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/reservekit/reserve-client/internal/api"
	"github.com/reservekit/reserve-client/internal/domain"
	"github.com/reservekit/reserve-client/internal/token"
)

// ErrWrongCredentials is returned by SignIn when the server rejects the
// username/password pair, as opposed to a transient failure.
var ErrWrongCredentials = fmt.Errorf("wrong username or password")

// Manager moves the client between its two authentication states,
// Anonymous and Authenticated. It subscribes to the token store so a token
// written by any other component (including the gateway's automatic
// refresh) is adopted as the current session, and a cleared store drops it.
type Manager struct {
	client *api.Client
	tokens *token.Store
	log    *zap.Logger

	mu      sync.Mutex
	session *domain.Session

	unsubscribe func()
}

// NewManager builds the session manager and adopts any token already
// persisted from a previous run.
func NewManager(client *api.Client, tokens *token.Store, logger *zap.Logger) *Manager {
	m := &Manager{
		client: client,
		tokens: tokens,
		log:    logger,
	}
	m.unsubscribe = tokens.Subscribe(m.onTokenChange)
	if tok, ok := tokens.Get(); ok {
		m.adopt(tok)
	}
	return m
}

// Close removes the token store subscription.
func (m *Manager) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Session returns the current session, reporting whether one exists.
func (m *Manager) Session() (domain.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return domain.Session{}, false
	}
	return *m.session, true
}

// Start runs the app-start transition: when a token survives from a
// previous run, exchange the refresh cookie for a fresh one. A failed
// refresh leaves the client anonymous; that is an expected outcome, not an
// error.
func (m *Manager) Start(ctx context.Context) {
	if _, ok := m.tokens.Get(); !ok {
		return
	}
	if err := m.Refresh(ctx); err != nil {
		m.log.Info("session not restored", zap.Error(err))
		m.mu.Lock()
		m.session = nil
		m.mu.Unlock()
	}
}

// SignIn authenticates with the backend. On success the token store holds
// the new access token and the session reflects its decoded identity.
// A rejected credential pair returns ErrWrongCredentials; everything else
// is passed through for the caller's generic failure handling.
func (m *Manager) SignIn(ctx context.Context, username, password string) error {
	req := domain.SignInRequest{Username: username, Password: password}
	if err := req.Validate(); err != nil {
		return err
	}

	resp, err := m.client.Do(ctx, api.Request{
		Method: http.MethodPost,
		Path:   "/sign-in",
		Body:   req,
	})
	if err != nil {
		if api.IsUnauthorized(err) {
			return fmt.Errorf("%w: %v", ErrWrongCredentials, err)
		}
		return err
	}

	if _, err := m.client.AccessToken(resp); err != nil {
		return fmt.Errorf("sign-in: %w", err)
	}
	return nil
}

// SignUp registers a new account. A duplicate username surfaces as a
// conflict API error.
func (m *Manager) SignUp(ctx context.Context, req domain.SignUpRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	_, err := m.client.Do(ctx, api.Request{
		Method: http.MethodPost,
		Path:   "/sign-up",
		Body:   req,
	})
	return err
}

// SignOut invalidates the server-side session best-effort and always
// clears local state: an explicit user sign-out must leave the client
// anonymous even when the server call fails.
func (m *Manager) SignOut(ctx context.Context) error {
	_, err := m.client.Do(ctx, api.Request{
		Method: http.MethodPost,
		Path:   "/sign-out",
		Auth:   true,
	})
	if clearErr := m.tokens.Clear(); clearErr != nil {
		m.log.Error("failed to clear token store", zap.Error(clearErr))
		if err == nil {
			err = clearErr
		}
	}
	return err
}

// Refresh exchanges the refresh cookie for a new access token. The token
// store update propagates the new session through the change subscription.
func (m *Manager) Refresh(ctx context.Context) error {
	_, err := m.client.RefreshToken(ctx)
	return err
}

func (m *Manager) onTokenChange(change token.Change) {
	if change.Cleared() {
		m.mu.Lock()
		m.session = nil
		m.mu.Unlock()
		return
	}
	m.adopt(change.Token)
}

// adopt decodes the token into the current session. A token that cannot be
// decoded is logged and treated as no session; it is never ignored
// silently.
func (m *Manager) adopt(tok string) {
	user, err := DecodeToken(tok)
	if err != nil {
		m.log.Error("failed to decode access token", zap.Error(err))
		m.mu.Lock()
		m.session = nil
		m.mu.Unlock()
		return
	}
	m.mu.Lock()
	m.session = &domain.Session{User: user, AccessToken: tok}
	m.mu.Unlock()
}
