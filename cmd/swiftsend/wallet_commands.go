package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/esther-pixel31/swiftsend-go/api"
)

func newWalletCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet balance and money movements",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			if err := a.requireSession(); err != nil {
				return err
			}

			wallet, err := a.api.Wallet.Get(cmd.Context())
			if err != nil {
				return err
			}
			printWallet(cmd, wallet)
			return nil
		},
	}

	cmd.AddCommand(newWalletMoveCommand(configPath, "deposit", "Credit the wallet"))
	cmd.AddCommand(newWalletMoveCommand(configPath, "withdraw", "Debit the wallet"))
	cmd.AddCommand(newWalletSendCommand(configPath))
	cmd.AddCommand(newWalletLimitsCommand(configPath))
	return cmd
}

func newWalletLimitsCommand(configPath *string) *cobra.Command {
	var depositLimit, withdrawLimit float64

	cmd := &cobra.Command{
		Use:   "limits",
		Short: "Set per-transaction deposit and withdrawal caps (0 disables)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if depositLimit < 0 || withdrawLimit < 0 {
				return errors.New("limits must be non-negative")
			}
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			if err := a.requireSession(); err != nil {
				return err
			}

			if err := a.api.Wallet.UpdateLimits(cmd.Context(), depositLimit, withdrawLimit); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wallet limits updated")
			return nil
		},
	}

	cmd.Flags().Float64Var(&depositLimit, "deposit", 0, "Deposit cap per transaction")
	cmd.Flags().Float64Var(&withdrawLimit, "withdraw", 0, "Withdrawal cap per transaction")
	return cmd
}

func newWalletMoveCommand(configPath *string, verb, short string) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <amount>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
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

			move := a.api.Wallet.Deposit
			if verb == "withdraw" {
				move = a.api.Wallet.Withdraw
			}
			wallet, err := move(cmd.Context(), amount)
			if err != nil {
				return err
			}
			printWallet(cmd, wallet)
			return nil
		},
	}
}

func newWalletSendCommand(configPath *string) *cobra.Command {
	var recipient string

	cmd := &cobra.Command{
		Use:   "send <amount>",
		Short: "Send funds to another SwiftSend user by email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
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

			wallet, err := a.api.Wallet.Transfer(cmd.Context(), recipient, amount)
			if err != nil {
				return err
			}
			printWallet(cmd, wallet)
			return nil
		},
	}

	cmd.Flags().StringVar(&recipient, "to", "", "Recipient's SwiftSend email")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newTransferCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Bank transfers to saved beneficiaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newTransferDomesticCommand(configPath))
	cmd.AddCommand(newTransferInternationalCommand(configPath))
	return cmd
}

func newTransferDomesticCommand(configPath *string) *cobra.Command {
	var (
		beneficiaryID int64
		narration     string
	)

	cmd := &cobra.Command{
		Use:   "domestic <amount>",
		Short: "Same-currency transfer to a beneficiary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
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

			receipt, err := a.api.Transfers.Domestic(cmd.Context(), api.DomesticTransferRequest{
				BeneficiaryID: beneficiaryID,
				Amount:        amount,
				Narration:     narration,
			})
			if err != nil {
				return err
			}
			printReceipt(cmd, receipt)
			return nil
		},
	}

	cmd.Flags().Int64Var(&beneficiaryID, "beneficiary", 0, "Beneficiary ID (see 'swiftsend beneficiaries')")
	cmd.Flags().StringVar(&narration, "narration", "", "Optional note on the transfer")
	_ = cmd.MarkFlagRequired("beneficiary")
	return cmd
}

func newTransferInternationalCommand(configPath *string) *cobra.Command {
	var (
		beneficiaryID int64
		currency      string
		narration     string
	)

	cmd := &cobra.Command{
		Use:   "international <amount>",
		Short: "Cross-currency transfer to a beneficiary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
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

			receipt, err := a.api.Transfers.International(cmd.Context(), api.InternationalTransferRequest{
				BeneficiaryID:  beneficiaryID,
				Amount:         amount,
				TargetCurrency: currency,
				Narration:      narration,
			})
			if err != nil {
				return err
			}
			printReceipt(cmd, receipt)
			return nil
		},
	}

	cmd.Flags().Int64Var(&beneficiaryID, "beneficiary", 0, "Beneficiary ID")
	cmd.Flags().StringVar(&currency, "currency", "", "Target currency code, e.g. USD")
	cmd.Flags().StringVar(&narration, "narration", "", "Optional note on the transfer")
	_ = cmd.MarkFlagRequired("beneficiary")
	_ = cmd.MarkFlagRequired("currency")
	return cmd
}

func newFXCommand(configPath *string) *cobra.Command {
	var base, target string

	cmd := &cobra.Command{
		Use:   "fx",
		Short: "Quote a currency conversion rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}

			rate, err := a.api.FX.Rate(cmd.Context(), base, target)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "1 %s = %.6f %s\n", rate.Base, rate.Rate, rate.Target)
			return nil
		},
	}

	cmd.Flags().StringVar(&base, "base", "", "Base currency code")
	cmd.Flags().StringVar(&target, "target", "", "Target currency code")
	_ = cmd.MarkFlagRequired("base")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func newHistoryCommand(configPath *string) *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or export the transaction history",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			if err := a.requireSession(); err != nil {
				return err
			}

			if format != "" {
				return exportHistory(cmd, a, format, out)
			}

			transactions, err := a.api.Transactions.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, tx := range transactions {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10d %-12s %10.2f %-4s %-10s %s\n",
					tx.ID, tx.Type, tx.Amount, tx.Currency, tx.Status, tx.CreatedAt)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "export", "", "Export instead of listing: csv or pdf")
	cmd.Flags().StringVar(&out, "out", "", "Export destination file (default stdout)")
	return cmd
}

func exportHistory(cmd *cobra.Command, a *app, format, out string) error {
	body, err := a.api.Transactions.Export(cmd.Context(), format)
	if err != nil {
		return err
	}
	defer body.Close()

	dest := cmd.OutOrStdout()
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return errors.Wrapf(err, "[exportHistory] create %s", out)
		}
		defer f.Close()
		dest = f
	}

	if _, err := io.Copy(dest, body); err != nil {
		return errors.Wrap(err, "[exportHistory] write export")
	}
	return nil
}

func parseAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || amount <= 0 {
		return 0, errors.Errorf("invalid amount %q", raw)
	}
	return amount, nil
}

func printWallet(cmd *cobra.Command, w *api.Wallet) {
	fmt.Fprintf(cmd.OutOrStdout(), "Balance: %.2f %s\n", w.Balance, w.Currency)
}

func printReceipt(cmd *cobra.Command, r *api.TransferReceipt) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %.2f", r.Reference, r.Status, r.Amount)
	if r.ConvertedAmount > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "  (-> %.2f @ %.6f)", r.ConvertedAmount, r.FXRate)
	}
	fmt.Fprintln(cmd.OutOrStdout())
}
