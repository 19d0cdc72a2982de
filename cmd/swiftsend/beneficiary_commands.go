package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/esther-pixel31/swiftsend-go/api"
)

func newBeneficiariesCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "beneficiaries",
		Aliases: []string{"bens"},
		Short:   "Manage saved transfer recipients",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			if err := a.requireSession(); err != nil {
				return err
			}

			list, err := a.api.Beneficiaries.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, b := range list {
				marker := " "
				if b.IsFavorite {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-6d %-24s %-16s %s (%s)\n",
					marker, b.ID, b.Name, b.AccountNumber, b.BankName, b.Currency)
			}
			return nil
		},
	}

	cmd.AddCommand(newBeneficiaryAddCommand(configPath))
	cmd.AddCommand(newBeneficiaryRemoveCommand(configPath))
	cmd.AddCommand(newBeneficiaryFavoriteCommand(configPath))
	return cmd
}

func newBeneficiaryAddCommand(configPath *string) *cobra.Command {
	var in api.BeneficiaryInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a new beneficiary",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			if err := a.requireSession(); err != nil {
				return err
			}

			created, err := a.api.Beneficiaries.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved beneficiary %d (%s)\n", created.ID, created.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Recipient name")
	cmd.Flags().StringVar(&in.AccountNumber, "account", "", "Account number")
	cmd.Flags().StringVar(&in.BankName, "bank", "", "Bank name")
	cmd.Flags().StringVar(&in.Country, "country", "", "Country code")
	cmd.Flags().StringVar(&in.Currency, "currency", "", "Account currency code")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("bank")
	return cmd
}

func newBeneficiaryRemoveCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a beneficiary",
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

			if err := a.api.Beneficiaries.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted beneficiary %d\n", id)
			return nil
		},
	}
}

func newBeneficiaryFavoriteCommand(configPath *string) *cobra.Command {
	var unset bool

	cmd := &cobra.Command{
		Use:   "favorite <id>",
		Short: "Pin or unpin a beneficiary",
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

			updated, err := a.api.Beneficiaries.SetFavorite(cmd.Context(), id, !unset)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Beneficiary %d favorite=%v\n", updated.ID, updated.IsFavorite)
			return nil
		},
	}

	cmd.Flags().BoolVar(&unset, "unset", false, "Remove the favorite flag instead of setting it")
	return cmd
}

func newKYCCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kyc",
		Short: "Identity verification",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			if err := a.requireSession(); err != nil {
				return err
			}

			status, err := a.api.KYC.Status(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", status.DocumentType, status.DocumentNumber, status.Status)
			return nil
		},
	}

	cmd.AddCommand(newKYCUploadCommand(configPath))
	return cmd
}

func newKYCUploadCommand(configPath *string) *cobra.Command {
	var docType, docNumber string

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Submit an identity document for review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			if err := a.requireSession(); err != nil {
				return err
			}

			file, err := os.Open(args[0])
			if err != nil {
				return errors.Wrapf(err, "[kyc upload] open %s", args[0])
			}
			defer file.Close()

			status, err := a.api.KYC.Upload(cmd.Context(), docType, docNumber, file.Name(), file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Submitted, status: %s\n", status.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&docType, "type", "", "Document type, e.g. passport or national_id")
	cmd.Flags().StringVar(&docNumber, "number", "", "Document number")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("number")
	return cmd
}
