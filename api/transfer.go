package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/esther-pixel31/swiftsend-go/httpclient"
)

// TransferService covers the /transfer endpoints. Every request carries a
// generated Idempotency-Key so a retry cannot move money twice.
type TransferService struct {
	httpc *httpclient.Client
}

// DomesticTransferRequest sends funds to a saved beneficiary in the wallet's
// home currency.
type DomesticTransferRequest struct {
	BeneficiaryID int64   `json:"beneficiary_id"`
	Amount        float64 `json:"amount"`
	Narration     string  `json:"narration,omitempty"`
}

// InternationalTransferRequest sends funds abroad; the backend converts at
// the quoted FX rate.
type InternationalTransferRequest struct {
	BeneficiaryID  int64   `json:"beneficiary_id"`
	Amount         float64 `json:"amount"`
	TargetCurrency string  `json:"target_currency"`
	Narration      string  `json:"narration,omitempty"`
}

// TransferReceipt is the backend's confirmation of an executed transfer.
type TransferReceipt struct {
	Reference       string  `json:"reference"`
	Status          string  `json:"status"`
	Amount          float64 `json:"amount"`
	Fee             float64 `json:"fee"`
	ConvertedAmount float64 `json:"converted_amount,omitempty"`
	FXRate          float64 `json:"fx_rate,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

// Domestic executes a same-currency transfer to a beneficiary.
func (s *TransferService) Domestic(ctx context.Context, in DomesticTransferRequest) (*TransferReceipt, error) {
	var out TransferReceipt
	if err := s.httpc.PostIdempotent(ctx, "/transfer/domestic", uuid.NewString(), in, &out); err != nil {
		return nil, errors.Wrap(err, "[TransferService.Domestic]")
	}
	return &out, nil
}

// International executes a cross-currency transfer to a beneficiary.
func (s *TransferService) International(ctx context.Context, in InternationalTransferRequest) (*TransferReceipt, error) {
	var out TransferReceipt
	if err := s.httpc.PostIdempotent(ctx, "/transfer/international", uuid.NewString(), in, &out); err != nil {
		return nil, errors.Wrap(err, "[TransferService.International]")
	}
	return &out, nil
}
