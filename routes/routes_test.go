package routes_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/esther-pixel31/swiftsend-go/routes"
	"github.com/esther-pixel31/swiftsend-go/token"
)

func TestRouteClassification(t *testing.T) {
	table := routes.NewTable()

	for _, route := range []string{routes.Login, routes.Register, routes.VerifyOTP, routes.AdminLogin} {
		require.True(t, table.IsPublic(route), "expected %s to be public", route)
	}
	require.False(t, table.IsPublic(routes.UserDashboard))
	require.False(t, table.IsPublic(routes.AdminDashboard))
	require.False(t, table.IsPublic(routes.Root))

	for _, route := range []string{routes.Root, routes.Login, routes.Register, routes.AdminLogin} {
		require.True(t, table.IsEntry(route), "expected %s to be an entry route", route)
	}
	require.False(t, table.IsEntry(routes.VerifyOTP))
	require.False(t, table.IsEntry(routes.UserDashboard))
}

func TestDashboardFor(t *testing.T) {
	table := routes.NewTable()

	require.Equal(t, routes.AdminDashboard, table.DashboardFor(token.RoleAdmin))
	require.Equal(t, routes.UserDashboard, table.DashboardFor(token.RoleUser))
	require.Equal(t, routes.UserDashboard, table.DashboardFor(""))
}

func TestRedirectForRole(t *testing.T) {
	table := routes.NewTable()

	tests := []struct {
		name     string
		role     token.RoleType
		route    string
		redirect string
	}{
		{"user on user tree", token.RoleUser, "/beneficiaries", ""},
		{"user on own dashboard", token.RoleUser, routes.UserDashboard, ""},
		{"user on admin tree", token.RoleUser, routes.AdminDashboard, routes.UserDashboard},
		{"user on admin subpath", token.RoleUser, "/admin/users", routes.UserDashboard},
		{"admin on admin tree", token.RoleAdmin, "/admin/fx-rates", ""},
		{"admin on user tree", token.RoleAdmin, routes.UserDashboard, routes.AdminDashboard},
		{"admin on user subpath", token.RoleAdmin, "/transactions", routes.AdminDashboard},
		{"admin on public route", token.RoleAdmin, routes.Login, ""},
		{"user on public route", token.RoleUser, routes.AdminLogin, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.redirect, table.RedirectForRole(tc.role, tc.route))
		})
	}
}
