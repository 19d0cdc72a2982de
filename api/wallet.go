package api

import (
	"context"

	"github.com/pkg/errors"

	"github.com/esther-pixel31/swiftsend-go/httpclient"
)

// WalletService covers the /wallet endpoints.
type WalletService struct {
	httpc *httpclient.Client
}

// Wallet is the authenticated user's wallet.
type Wallet struct {
	ID       int64   `json:"id"`
	UserID   int64   `json:"user_id"`
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
}

type amountRequest struct {
	Amount float64 `json:"amount"`
}

type walletTransferRequest struct {
	RecipientEmail string  `json:"recipient_email"`
	Amount         float64 `json:"amount"`
}

type walletLimitsRequest struct {
	DepositLimit  float64 `json:"deposit_limit"`
	WithdrawLimit float64 `json:"withdraw_limit"`
}

// Get returns the current wallet with its balance.
func (s *WalletService) Get(ctx context.Context) (*Wallet, error) {
	var out Wallet
	if err := s.httpc.Get(ctx, "/wallet", &out); err != nil {
		return nil, errors.Wrap(err, "[WalletService.Get]")
	}
	return &out, nil
}

// Deposit credits the wallet and returns the updated balance.
func (s *WalletService) Deposit(ctx context.Context, amount float64) (*Wallet, error) {
	var out Wallet
	if err := s.httpc.Post(ctx, "/wallet/deposit", amountRequest{Amount: amount}, &out); err != nil {
		return nil, errors.Wrap(err, "[WalletService.Deposit]")
	}
	return &out, nil
}

// Withdraw debits the wallet and returns the updated balance.
func (s *WalletService) Withdraw(ctx context.Context, amount float64) (*Wallet, error) {
	var out Wallet
	if err := s.httpc.Post(ctx, "/wallet/withdraw", amountRequest{Amount: amount}, &out); err != nil {
		return nil, errors.Wrap(err, "[WalletService.Withdraw]")
	}
	return &out, nil
}

// UpdateLimits sets the wallet's per-transaction deposit and withdrawal caps.
// Zero disables a cap.
func (s *WalletService) UpdateLimits(ctx context.Context, depositLimit, withdrawLimit float64) error {
	in := walletLimitsRequest{DepositLimit: depositLimit, WithdrawLimit: withdrawLimit}
	if err := s.httpc.Post(ctx, "/wallet/update-limits", in, nil); err != nil {
		return errors.Wrap(err, "[WalletService.UpdateLimits]")
	}
	return nil
}

// Transfer moves funds to another SwiftSend user identified by email.
func (s *WalletService) Transfer(ctx context.Context, recipientEmail string, amount float64) (*Wallet, error) {
	var out Wallet
	in := walletTransferRequest{RecipientEmail: recipientEmail, Amount: amount}
	if err := s.httpc.Post(ctx, "/wallet/transfer", in, &out); err != nil {
		return nil, errors.Wrap(err, "[WalletService.Transfer]")
	}
	return &out, nil
}
