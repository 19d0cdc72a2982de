package session

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/esther-pixel31/swiftsend-go/routes"
	"github.com/esther-pixel31/swiftsend-go/token"
)

// NoticeSessionExpired is the user-visible notice shown when the watcher
// clears an expired session.
const NoticeSessionExpired = "Session expired. Please log in again."

// State names the watcher's position in the session lifecycle.
type State string

const (
	StateNoSession  State = "no_session"
	StateHydrating  State = "hydrating"
	StatePendingOTP State = "pending_otp"
	StateActive     State = "active"
	StateExpired    State = "expired"
)

// Navigator receives route changes the watcher decides on. Implementations
// that actually move the UI should feed the new route back through
// RouteChanged; the watcher already records the target as its current route,
// so the echo is cheap and idempotent.
type Navigator interface {
	Navigate(route string)
}

// Notifier surfaces user-visible notices such as the session-expired message.
type Notifier interface {
	Notify(message string)
}

type eventKind int

const (
	eventToken eventKind = iota
	eventRoute
	eventTimer
)

type event struct {
	kind  eventKind
	route string
	token string // token the firing timer was armed for
}

// Watcher reconciles the session against the current route. It is an explicit
// state machine driven by three discrete events - token changed, route
// changed, timer fired - processed one at a time on an internal loop, so
// reconciliation is never re-entrant and out-of-order events self-correct on
// the next tick.
//
// The watcher is the single authority for forced logout and redirect; screens
// report their own failures but never clear the session themselves.
type Watcher struct {
	manager  *Manager
	table    *routes.Table
	nav      Navigator
	notifier Notifier
	nowFunc  func() time.Time

	events chan event
	stop   chan struct{}
	once   sync.Once

	// guarded by mu: read from any goroutine, written by the loop
	mu    sync.RWMutex
	state State
	route string

	// loop-only
	timer      *time.Timer
	armedToken string
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithNowFunc sets the watcher clock (primarily for testing).
func WithNowFunc(now func() time.Time) WatcherOption {
	return func(w *Watcher) {
		w.nowFunc = now
	}
}

// NewWatcher builds a Watcher over the manager's session. Call Start to begin
// processing events and Close to release the loop and any armed timer.
func NewWatcher(manager *Manager, table *routes.Table, nav Navigator, notifier Notifier, options ...WatcherOption) (*Watcher, error) {
	if manager == nil {
		return nil, errors.New("[NewWatcher] Manager is required")
	}
	if table == nil {
		return nil, errors.New("[NewWatcher] routes.Table is required")
	}
	if nav == nil {
		return nil, errors.New("[NewWatcher] Navigator is required")
	}
	if notifier == nil {
		return nil, errors.New("[NewWatcher] Notifier is required")
	}

	w := &Watcher{
		manager:  manager,
		table:    table,
		nav:      nav,
		notifier: notifier,
		nowFunc:  time.Now,
		events:   make(chan event, 16),
		stop:     make(chan struct{}),
		state:    StateNoSession,
	}

	for _, opt := range options {
		opt(w)
	}

	return w, nil
}

// Start launches the event loop and runs the first reconciliation against the
// given route.
func (w *Watcher) Start(initialRoute string) {
	go w.loop()
	w.RouteChanged(initialRoute)
}

// Close stops the loop and cancels any armed expiry timer so it cannot fire
// against a stale session. Safe to call more than once.
func (w *Watcher) Close() {
	w.once.Do(func() {
		close(w.stop)
	})
}

// TokenChanged signals that the manager's token pair changed.
func (w *Watcher) TokenChanged() {
	w.post(event{kind: eventToken})
}

// RouteChanged signals that the application moved to a new route.
func (w *Watcher) RouteChanged(route string) {
	w.post(event{kind: eventRoute, route: route})
}

// State returns the watcher's current lifecycle state.
func (w *Watcher) State() State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

// Route returns the route the watcher believes the application is on.
func (w *Watcher) Route() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.route
}

func (w *Watcher) post(ev event) {
	select {
	case w.events <- ev:
	case <-w.stop:
	}
}

func (w *Watcher) loop() {
	for {
		select {
		case ev := <-w.events:
			w.handle(ev)
		case <-w.stop:
			w.disarmTimer()
			return
		}
	}
}

func (w *Watcher) handle(ev event) {
	switch ev.kind {
	case eventRoute:
		w.setRoute(ev.route)
		w.reconcile()
	case eventToken:
		w.reconcile()
	case eventTimer:
		w.expireFromTimer(ev.token)
	}
}

// reconcile drives the transitions of the state machine. It is idempotent:
// running it twice against the same token and route is a no-op the second
// time.
func (w *Watcher) reconcile() {
	now := w.nowFunc()
	access := w.manager.AccessToken()

	// No in-memory token: try to restore a still-valid persisted pair.
	// Hydration never navigates.
	if access == "" {
		storedAccess, storedRefresh, err := w.manager.store.Load()
		if err == nil && storedAccess != "" && !token.IsExpiredAt(storedAccess, now) {
			w.setState(StateHydrating)
			w.manager.HydrateFromStorage(storedAccess, storedRefresh)
			access = storedAccess
		}
	}

	// No usable token, in memory or persisted.
	if access == "" || token.IsExpiredAt(access, now) {
		w.disarmTimer()
		hadToken := access != ""
		_ = w.manager.Logout()
		if hadToken {
			w.setState(StateExpired)
		} else {
			w.setState(StateNoSession)
		}
		if !w.table.IsPublic(w.Route()) {
			w.notifier.Notify(NoticeSessionExpired)
			w.navigateTo(routes.Login)
		}
		return
	}

	claims, err := token.Decode(access)
	if err != nil {
		// Malformed tokens degrade to "no session", never to a crash.
		w.disarmTimer()
		_ = w.manager.Logout()
		w.setState(StateNoSession)
		w.navigateTo(routes.Login)
		return
	}

	// OTP gate: nothing else happens until the code is verified.
	if !claims.OTPVerified && w.Route() != routes.VerifyOTP {
		w.disarmTimer()
		w.setState(StatePendingOTP)
		w.navigateTo(routes.VerifyOTP)
		return
	}

	w.setState(StateActive)
	if w.table.IsEntry(w.Route()) {
		w.navigateTo(w.table.DashboardFor(claims.Role))
	}
	w.armTimer(access, token.ExpiresIn(access, now))
}

// expireFromTimer handles a fired expiry timer. A timer armed for a token
// that is no longer current is stale and ignored, so an old timer can never
// log out a newer session.
func (w *Watcher) expireFromTimer(armedFor string) {
	if armedFor != w.armedToken || w.manager.AccessToken() != armedFor {
		return
	}
	w.disarmTimer()
	_ = w.manager.Logout()
	w.setState(StateExpired)
	w.notifier.Notify(NoticeSessionExpired)
	w.navigateTo(routes.Login)
}

// armTimer schedules a single-shot expiry for the given token. Re-arming for
// the token already armed is a no-op, so repeated reconciliations do not stack
// timers.
func (w *Watcher) armTimer(accessToken string, in time.Duration) {
	if w.armedToken == accessToken && w.timer != nil {
		return
	}
	w.disarmTimer()
	w.armedToken = accessToken
	w.timer = time.AfterFunc(in, func() {
		w.post(event{kind: eventTimer, token: accessToken})
	})
}

func (w *Watcher) disarmTimer() {
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.armedToken = ""
}

func (w *Watcher) navigateTo(target string) {
	if w.Route() == target {
		return
	}
	w.setRoute(target)
	w.nav.Navigate(target)
}

func (w *Watcher) setState(s State) {
	w.mu.Lock()
	w.state = s
	w.mu.Unlock()
}

func (w *Watcher) setRoute(r string) {
	w.mu.Lock()
	w.route = r
	w.mu.Unlock()
}
