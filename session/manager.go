package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/esther-pixel31/swiftsend-go/httpclient"
	"github.com/esther-pixel31/swiftsend-go/token"
)

const fallbackErrorMessage = "Server error"

// Listener observes session changes. Listeners are invoked with a copy of the
// session after the manager's lock is released; they must not assume they run
// before the mutation returns.
type Listener func(Session)

// Manager is the auth state container: it owns the Session and is the only
// component allowed to mutate it. Construct one per client (or per test) -
// there is no process-wide instance.
type Manager struct {
	mu        sync.RWMutex
	session   Session
	auth      Authenticator
	store     TokenStore
	listeners []Listener
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithListener registers a listener at construction time.
func WithListener(l Listener) ManagerOption {
	return func(m *Manager) {
		m.listeners = append(m.listeners, l)
	}
}

// NewManager builds a Manager around the authentication collaborator and the
// durable token store.
func NewManager(auth Authenticator, store TokenStore, options ...ManagerOption) (*Manager, error) {
	if auth == nil {
		return nil, errors.New("[NewManager] Authenticator is required")
	}
	if store == nil {
		return nil, errors.New("[NewManager] TokenStore is required")
	}

	m := &Manager{
		auth:    auth,
		store:   store,
		session: Session{Status: StatusIdle},
	}

	for _, opt := range options {
		opt(m)
	}

	return m, nil
}

// Current returns a copy of the session state.
func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

// AccessToken returns the in-memory access token, satisfying
// httpclient.TokenSource.
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.AccessToken
}

var _ httpclient.TokenSource = (*Manager)(nil)

// Subscribe registers a listener notified on every session change.
func (m *Manager) Subscribe(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// Login exchanges credentials for a token pair. On success both tokens are
// written to the durable store and the user claims are decoded into the
// session; on failure a typed FlowError is recorded and the tokens are left
// untouched.
func (m *Manager) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	return m.exchange(FlowLogin, func() (*LoginResult, error) {
		return m.auth.Login(ctx, email, password)
	})
}

// AdminLogin is Login against the admin endpoint.
func (m *Manager) AdminLogin(ctx context.Context, email, password string) (*LoginResult, error) {
	return m.exchange(FlowAdminLogin, func() (*LoginResult, error) {
		return m.auth.AdminLogin(ctx, email, password)
	})
}

// GoogleLogin exchanges a Google ID-token credential for a session.
func (m *Manager) GoogleLogin(ctx context.Context, credential string) (*LoginResult, error) {
	return m.exchange(FlowGoogleLogin, func() (*LoginResult, error) {
		return m.auth.GoogleLogin(ctx, credential)
	})
}

// VerifyOTP submits the one-time passcode; on success the backend issues a
// fresh token pair with otp_verified set, which replaces the current one.
func (m *Manager) VerifyOTP(ctx context.Context, email, code string) (*LoginResult, error) {
	return m.exchange(FlowVerifyOTP, func() (*LoginResult, error) {
		return m.auth.VerifyOTP(ctx, email, code)
	})
}

// Register creates an account. No tokens are issued; the caller proceeds to
// Login afterwards.
func (m *Manager) Register(ctx context.Context, name, email, password string) error {
	m.setLoading()

	if err := m.auth.Register(ctx, name, email, password); err != nil {
		m.recordFailure(FlowRegister, err)
		return errors.Wrap(err, "[Manager.Register]")
	}

	m.mu.Lock()
	m.session.Status = StatusSucceeded
	m.session.Err = nil
	m.mu.Unlock()
	m.notify()
	return nil
}

// ResendOTP asks the backend to generate and send a new passcode.
func (m *Manager) ResendOTP(ctx context.Context, email string) error {
	if err := m.auth.GenerateOTP(ctx, email); err != nil {
		m.recordFailure(FlowResendOTP, err)
		return errors.Wrap(err, "[Manager.ResendOTP]")
	}
	return nil
}

// Logout clears the in-memory session and removes the persisted token pair.
// It is idempotent - calling it with no session is a no-op and notifies no
// listeners.
func (m *Manager) Logout() error {
	empty := Session{Status: StatusIdle}

	m.mu.Lock()
	changed := m.session != empty
	m.session = empty
	m.mu.Unlock()
	if changed {
		m.notify()
	}

	if err := m.store.Clear(); err != nil {
		return errors.Wrap(err, "[Manager.Logout] store.Clear")
	}
	return nil
}

// HydrateFromStorage installs a token pair read from the durable store and
// re-derives the user claims. The store itself is not touched - it is the
// source of this mutation, not the target.
func (m *Manager) HydrateFromStorage(accessToken, refreshToken string) {
	claims, err := token.Decode(accessToken)
	if err != nil {
		claims = nil
	}

	m.mu.Lock()
	m.session.AccessToken = accessToken
	m.session.RefreshToken = refreshToken
	m.session.User = claims
	m.session.Status = StatusSucceeded
	m.session.Err = nil
	m.mu.Unlock()
	m.notify()
}

func (m *Manager) exchange(kind FlowKind, call func() (*LoginResult, error)) (*LoginResult, error) {
	m.setLoading()

	result, err := call()
	if err != nil {
		m.recordFailure(kind, err)
		return nil, errors.Wrapf(err, "[Manager.exchange] %s", kind)
	}

	// Durable write happens only on success.
	if err := m.store.Save(result.AccessToken, result.RefreshToken); err != nil {
		m.recordFailure(kind, err)
		return nil, errors.Wrapf(err, "[Manager.exchange] %s store.Save", kind)
	}

	claims, decodeErr := token.Decode(result.AccessToken)
	if decodeErr != nil {
		claims = nil
	}

	m.mu.Lock()
	m.session.AccessToken = result.AccessToken
	m.session.RefreshToken = result.RefreshToken
	m.session.User = claims
	m.session.Status = StatusSucceeded
	m.session.Err = nil
	m.mu.Unlock()
	m.notify()

	return result, nil
}

func (m *Manager) setLoading() {
	m.mu.Lock()
	m.session.Status = StatusLoading
	m.session.Err = nil
	m.mu.Unlock()
	m.notify()
}

func (m *Manager) recordFailure(kind FlowKind, err error) {
	m.mu.Lock()
	m.session.Status = StatusFailed
	m.session.Err = &FlowError{Kind: kind, Message: flowMessage(err)}
	m.mu.Unlock()
	m.notify()
}

func (m *Manager) notify() {
	m.mu.RLock()
	listeners := make([]Listener, len(m.listeners))
	copy(listeners, m.listeners)
	current := m.session
	m.mu.RUnlock()

	for _, l := range listeners {
		l(current)
	}
}

// flowMessage picks the user-presentable message for a failed operation: the
// backend's msg field when the failure was an API rejection, a generic
// fallback for transport and everything else.
func flowMessage(err error) string {
	var apiErr *httpclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallbackErrorMessage
}
