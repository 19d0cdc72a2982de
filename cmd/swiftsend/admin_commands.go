package main

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newAdminCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative operations (admin session required)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newAdminDashboardCommand(configPath))
	cmd.AddCommand(newAdminUsersCommand(configPath))
	cmd.AddCommand(newAdminTicketsCommand(configPath))
	cmd.AddCommand(newAdminAuditCommand(configPath))
	cmd.AddCommand(newAdminFraudCommand(configPath))
	return cmd
}

func newAdminDashboardCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show platform metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			if err := a.requireSession(); err != nil {
				return err
			}

			m, err := a.api.Admin.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"users: %d (%d active)\nwallet volume: %.2f\npending kyc: %d\nopen tickets: %d\nflagged transfers: %d\n",
				m.TotalUsers, m.ActiveUsers, m.TotalWalletVolume, m.PendingKYC, m.OpenTickets, m.FlaggedTransfers)
			return nil
		},
	}
}

func newAdminUsersCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List and manage users",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			if err := a.requireSession(); err != nil {
				return err
			}

			users, err := a.api.Admin.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			for _, u := range users {
				state := "active"
				if !u.IsActive {
					state = "deactivated"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-6d %-24s %-32s %-6s %s\n", u.ID, u.Name, u.Email, u.Role, state)
			}
			return nil
		},
	}

	cmd.AddCommand(newAdminUserStateCommand(configPath, "deactivate", "Soft-delete a user account"))
	cmd.AddCommand(newAdminUserStateCommand(configPath, "reactivate", "Restore a deactivated account"))
	return cmd
}

func newAdminUserStateCommand(configPath *string, verb, short string) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			if err := a.requireSession(); err != nil {
				return err
			}

			if verb == "deactivate" {
				err = a.api.Admin.DeactivateUser(cmd.Context(), id)
			} else {
				err = a.api.Admin.ReactivateUser(cmd.Context(), id)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %d %sd\n", id, verb)
			return nil
		},
	}
}

func newAdminAuditCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Show the audit trail",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			if err := a.requireSession(); err != nil {
				return err
			}

			logs, err := a.api.Admin.AuditLogs(cmd.Context())
			if err != nil {
				return err
			}
			for _, entry := range logs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s user=%d %s %s\n", entry.CreatedAt, entry.UserID, entry.Action, entry.Detail)
			}
			return nil
		},
	}
}

func newAdminFraudCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "fraud",
		Short: "Show transfers flagged by fraud checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			if err := a.requireSession(); err != nil {
				return err
			}

			logs, err := a.api.Admin.FraudLogs(cmd.Context())
			if err != nil {
				return err
			}
			for _, entry := range logs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s user=%d %s %.2f: %s\n",
					entry.CreatedAt, entry.UserID, entry.Reference, entry.Amount, entry.Reason)
			}
			return nil
		},
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Errorf("invalid id %q", raw)
	}
	return id, nil
}
