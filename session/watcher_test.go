package session_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/esther-pixel31/swiftsend-go/routes"
	"github.com/esther-pixel31/swiftsend-go/session"
	"github.com/esther-pixel31/swiftsend-go/session/storefakes"
	"github.com/esther-pixel31/swiftsend-go/token"
)

const (
	eventuallyWait = 2 * time.Second
	eventuallyTick = 10 * time.Millisecond
)

type routeRecorder struct {
	mu     sync.Mutex
	routes []string
}

func (r *routeRecorder) Navigate(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
}

func (r *routeRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.routes))
	copy(out, r.routes)
	return out
}

func (r *routeRecorder) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.routes) == 0 {
		return ""
	}
	return r.routes[len(r.routes)-1]
}

type noticeRecorder struct {
	mu      sync.Mutex
	notices []string
}

func (n *noticeRecorder) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, message)
}

func (n *noticeRecorder) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.notices)
}

func (n *noticeRecorder) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.notices) == 0 {
		return ""
	}
	return n.notices[len(n.notices)-1]
}

type watcherFixture struct {
	store   *storefakes.FakeTokenStore
	manager *session.Manager
	nav     *routeRecorder
	notices *noticeRecorder
	watcher *session.Watcher
}

func setupWatcher(t *testing.T, store *storefakes.FakeTokenStore, options ...session.WatcherOption) *watcherFixture {
	t.Helper()

	manager, err := session.NewManager(&fakeAuthenticator{}, store)
	require.NoError(t, err)

	nav := &routeRecorder{}
	notices := &noticeRecorder{}
	watcher, err := session.NewWatcher(manager, routes.NewTable(), nav, notices, options...)
	require.NoError(t, err)
	t.Cleanup(watcher.Close)

	return &watcherFixture{store: store, manager: manager, nav: nav, notices: notices, watcher: watcher}
}

func TestWatcherRedirectsProtectedRouteWithoutSession(t *testing.T) {
	fx := setupWatcher(t, storefakes.NewFakeTokenStore())

	fx.watcher.Start(routes.UserDashboard)

	require.Eventually(t, func() bool {
		return fx.watcher.State() == session.StateNoSession && fx.nav.last() == routes.Login
	}, eventuallyWait, eventuallyTick)
	require.Equal(t, session.NoticeSessionExpired, fx.notices.last())
}

func TestWatcherLeavesPublicRouteAlone(t *testing.T) {
	fx := setupWatcher(t, storefakes.NewFakeTokenStore())

	fx.watcher.Start(routes.Login)

	require.Eventually(t, func() bool {
		return fx.watcher.Route() == routes.Login
	}, eventuallyWait, eventuallyTick)
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, session.StateNoSession, fx.watcher.State())
	require.Empty(t, fx.nav.all())
	require.Zero(t, fx.notices.count())
}

func TestWatcherHydratesPersistedSessionWithoutNavigating(t *testing.T) {
	access := userToken(t, token.RoleUser, true, time.Now().Add(time.Hour))
	store := storefakes.NewFakeTokenStore()
	store.Seed(access, testRefresh)
	fx := setupWatcher(t, store)

	fx.watcher.Start(routes.UserDashboard)

	require.Eventually(t, func() bool {
		return fx.watcher.State() == session.StateActive
	}, eventuallyWait, eventuallyTick)
	require.Equal(t, access, fx.manager.AccessToken())
	require.Empty(t, fx.nav.all(), "hydration must not navigate away from the current route")
	require.Zero(t, fx.notices.count())
}

func TestWatcherRedirectsEntryRouteToRoleDashboard(t *testing.T) {
	cases := []struct {
		name string
		role token.RoleType
		want string
	}{
		{name: "user lands on the user dashboard", role: token.RoleUser, want: routes.UserDashboard},
		{name: "admin lands on the admin dashboard", role: token.RoleAdmin, want: routes.AdminDashboard},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			access := userToken(t, tc.role, true, time.Now().Add(time.Hour))
			store := storefakes.NewFakeTokenStore()
			store.Seed(access, testRefresh)
			fx := setupWatcher(t, store)

			fx.watcher.Start(routes.Login)

			require.Eventually(t, func() bool {
				return fx.nav.last() == tc.want
			}, eventuallyWait, eventuallyTick)
			require.Equal(t, session.StateActive, fx.watcher.State())
		})
	}
}

func TestWatcherGatesUnverifiedSessionBehindOTP(t *testing.T) {
	access := userToken(t, token.RoleUser, false, time.Now().Add(time.Hour))
	store := storefakes.NewFakeTokenStore()
	store.Seed(access, testRefresh)
	fx := setupWatcher(t, store)

	fx.watcher.Start(routes.UserDashboard)

	require.Eventually(t, func() bool {
		return fx.watcher.State() == session.StatePendingOTP && fx.nav.last() == routes.VerifyOTP
	}, eventuallyWait, eventuallyTick)

	// Already on the verification screen: the gate holds but does not bounce.
	navigations := len(fx.nav.all())
	fx.watcher.RouteChanged(routes.VerifyOTP)
	require.Eventually(t, func() bool {
		return fx.watcher.Route() == routes.VerifyOTP
	}, eventuallyWait, eventuallyTick)
	require.Len(t, fx.nav.all(), navigations)
}

func TestWatcherClearsExpiredPersistedSessionAtMount(t *testing.T) {
	access := userToken(t, token.RoleUser, true, time.Now().Add(-time.Hour))
	store := storefakes.NewFakeTokenStore()
	store.Seed(access, testRefresh)
	fx := setupWatcher(t, store)

	fx.watcher.Start(routes.UserDashboard)

	require.Eventually(t, func() bool {
		return fx.nav.last() == routes.Login
	}, eventuallyWait, eventuallyTick)
	require.Equal(t, session.NoticeSessionExpired, fx.notices.last())
	require.Empty(t, fx.manager.AccessToken())
	require.Eventually(t, func() bool {
		return fx.store.Clears() > 0
	}, eventuallyWait, eventuallyTick)
}

func TestWatcherMalformedTokenForcesLogin(t *testing.T) {
	fx := setupWatcher(t, storefakes.NewFakeTokenStore())
	fx.manager.HydrateFromStorage("not-a-jwt", "")

	fx.watcher.Start(routes.UserDashboard)

	require.Eventually(t, func() bool {
		return fx.nav.last() == routes.Login
	}, eventuallyWait, eventuallyTick)
	require.Empty(t, fx.manager.AccessToken())
}

func TestWatcherTimerExpiresSessionExactlyOnce(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour)
	access := userToken(t, token.RoleUser, true, expiresAt)
	store := storefakes.NewFakeTokenStore()
	store.Seed(access, testRefresh)

	// Shift the watcher clock to just short of the token's expiry so the
	// single-shot timer fires within the test.
	fx := setupWatcher(t, store, session.WithNowFunc(func() time.Time {
		return expiresAt.Add(-250 * time.Millisecond)
	}))

	fx.watcher.Start(routes.UserDashboard)
	require.Eventually(t, func() bool {
		return fx.watcher.State() == session.StateActive
	}, eventuallyWait, eventuallyTick)

	// Repeated route changes while active must not stack extra timers.
	fx.watcher.RouteChanged(routes.UserDashboard)
	fx.watcher.RouteChanged(routes.UserDashboard)

	require.Eventually(t, func() bool {
		return fx.watcher.State() == session.StateExpired
	}, eventuallyWait, eventuallyTick)
	require.Equal(t, routes.Login, fx.nav.last())
	require.Empty(t, fx.manager.AccessToken())

	time.Sleep(200 * time.Millisecond)
	require.Equal(t, 1, fx.notices.count(), "the expiry timer must fire exactly once")
}

func TestWatcherIgnoresStaleTimerAfterNewLogin(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour)
	oldAccess := userToken(t, token.RoleUser, true, expiresAt)
	newAccess := userToken(t, token.RoleAdmin, true, expiresAt.Add(time.Hour))
	store := storefakes.NewFakeTokenStore()
	store.Seed(oldAccess, testRefresh)

	fx := setupWatcher(t, store, session.WithNowFunc(func() time.Time {
		return expiresAt.Add(-250 * time.Millisecond)
	}))

	fx.watcher.Start(routes.UserDashboard)
	require.Eventually(t, func() bool {
		return fx.watcher.State() == session.StateActive
	}, eventuallyWait, eventuallyTick)

	// A fresh token replaces the old one before its timer fires.
	fx.manager.HydrateFromStorage(newAccess, "refresh-token-2")
	fx.watcher.TokenChanged()

	time.Sleep(200 * time.Millisecond)
	require.Equal(t, newAccess, fx.manager.AccessToken(), "stale timer must not log out the newer session")
	require.Zero(t, fx.notices.count())
}

func TestWatcherCloseIsSafeToCallTwice(t *testing.T) {
	fx := setupWatcher(t, storefakes.NewFakeTokenStore())
	fx.watcher.Start(routes.Login)

	fx.watcher.Close()
	fx.watcher.Close()

	// Posting after Close must not block.
	fx.watcher.TokenChanged()
	fx.watcher.RouteChanged(routes.Root)
}
