// Package routes classifies application routes and decides role-based
// redirects between the public, user and admin route trees.
package routes

import (
	"strings"

	"github.com/esther-pixel31/swiftsend-go/token"
)

// Well known application routes.
const (
	Root           = "/"
	Login          = "/login"
	Register       = "/register"
	VerifyOTP      = "/verify-otp"
	AdminLogin     = "/admin/login"
	UserDashboard  = "/dashboard"
	AdminDashboard = "/admin/dashboard"
)

// Table holds the route classification the session watcher and the guards
// evaluate. The zero value is not usable; construct with NewTable.
type Table struct {
	public map[string]struct{}
	entry  map[string]struct{}
}

// NewTable returns a Table with the default SwiftSend route sets: the public
// set reachable without a session, and the entry set from which an active
// session is redirected to its role dashboard.
func NewTable() *Table {
	return &Table{
		public: map[string]struct{}{
			Login:      {},
			Register:   {},
			VerifyOTP:  {},
			AdminLogin: {},
		},
		entry: map[string]struct{}{
			Root:       {},
			Login:      {},
			Register:   {},
			AdminLogin: {},
		},
	}
}

// IsPublic reports whether the route is reachable without a session.
func (t *Table) IsPublic(route string) bool {
	_, ok := t.public[route]
	return ok
}

// IsEntry reports whether an active session landing on the route should be
// forwarded to its role dashboard.
func (t *Table) IsEntry(route string) bool {
	_, ok := t.entry[route]
	return ok
}

// DashboardFor returns the landing route for the given role.
func (t *Table) DashboardFor(role token.RoleType) string {
	if role == token.RoleAdmin {
		return AdminDashboard
	}
	return UserDashboard
}

// IsAdminPath reports whether the route belongs to the admin tree.
func (t *Table) IsAdminPath(route string) bool {
	if t.IsPublic(route) {
		return false
	}
	return route == "/admin" || strings.HasPrefix(route, "/admin/")
}

// IsUserPath reports whether the route belongs to the authenticated user tree.
func (t *Table) IsUserPath(route string) bool {
	if t.IsPublic(route) || route == Root {
		return false
	}
	return !t.IsAdminPath(route)
}

// RedirectForRole evaluates the role guards for an authenticated session
// rendering the given route. It returns the route the session must be
// redirected to, or "" when the route is allowed for the role. Unauthenticated
// access is not handled here - that falls through to the session watcher.
func (t *Table) RedirectForRole(role token.RoleType, route string) string {
	if t.IsAdminPath(route) && role != token.RoleAdmin {
		return UserDashboard
	}
	if t.IsUserPath(route) && role == token.RoleAdmin {
		return AdminDashboard
	}
	return ""
}
