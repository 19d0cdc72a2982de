package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSupportCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "support",
		Short: "File and track support tickets",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			if err := a.requireSession(); err != nil {
				return err
			}

			tickets, err := a.api.Support.MyTickets(cmd.Context())
			if err != nil {
				return err
			}
			for _, ticket := range tickets {
				fmt.Fprintf(cmd.OutOrStdout(), "%-6d %-10s %s\n", ticket.ID, ticket.Status, ticket.Subject)
				if ticket.Response != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "       reply: %s\n", ticket.Response)
				}
			}
			return nil
		},
	}

	cmd.AddCommand(newSupportNewCommand(configPath))
	return cmd
}

func newSupportNewCommand(configPath *string) *cobra.Command {
	var subject, message string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "File a new support ticket",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			if err := a.requireSession(); err != nil {
				return err
			}

			ticket, err := a.api.Support.CreateTicket(cmd.Context(), subject, message)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Filed ticket %d\n", ticket.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Ticket subject")
	cmd.Flags().StringVar(&message, "message", "", "Ticket body")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}

func newAdminTicketsCommand(configPath *string) *cobra.Command {
	var respond string

	cmd := &cobra.Command{
		Use:   "tickets [id]",
		Short: "List the support queue, or respond to a ticket",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			if err := a.requireSession(); err != nil {
				return err
			}

			if len(args) == 1 {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				if respond == "" {
					return fmt.Errorf("--respond is required when a ticket id is given")
				}
				ticket, err := a.api.Admin.RespondTicket(cmd.Context(), id, respond)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Ticket %d is now %s\n", ticket.ID, ticket.Status)
				return nil
			}

			tickets, err := a.api.Admin.ListSupportTickets(cmd.Context())
			if err != nil {
				return err
			}
			for _, ticket := range tickets {
				fmt.Fprintf(cmd.OutOrStdout(), "%-6d user=%-6d %-10s %s\n",
					ticket.ID, ticket.UserID, ticket.Status, ticket.Subject)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&respond, "respond", "", "Response text for the given ticket")
	return cmd
}
