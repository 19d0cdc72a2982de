package api

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/esther-pixel31/swiftsend-go/httpclient"
)

// BeneficiaryService covers the /beneficiaries CRUD endpoints.
type BeneficiaryService struct {
	httpc *httpclient.Client
}

// Beneficiary is a saved transfer recipient.
type Beneficiary struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	AccountNumber string `json:"account_number"`
	BankName      string `json:"bank_name"`
	Country       string `json:"country"`
	Currency      string `json:"currency"`
	IsFavorite    bool   `json:"is_favorite"`
	CreatedAt     string `json:"created_at"`
}

// BeneficiaryInput is the writable subset of a beneficiary.
type BeneficiaryInput struct {
	Name          string `json:"name"`
	AccountNumber string `json:"account_number"`
	BankName      string `json:"bank_name"`
	Country       string `json:"country"`
	Currency      string `json:"currency"`
}

type favoriteRequest struct {
	IsFavorite bool `json:"is_favorite"`
}

// List returns the user's saved beneficiaries.
func (s *BeneficiaryService) List(ctx context.Context) ([]Beneficiary, error) {
	var out []Beneficiary
	if err := s.httpc.Get(ctx, "/beneficiaries", &out); err != nil {
		return nil, errors.Wrap(err, "[BeneficiaryService.List]")
	}
	return out, nil
}

// Create saves a new beneficiary.
func (s *BeneficiaryService) Create(ctx context.Context, in BeneficiaryInput) (*Beneficiary, error) {
	var out Beneficiary
	if err := s.httpc.Post(ctx, "/beneficiaries", in, &out); err != nil {
		return nil, errors.Wrap(err, "[BeneficiaryService.Create]")
	}
	return &out, nil
}

// Update replaces the writable fields of an existing beneficiary.
func (s *BeneficiaryService) Update(ctx context.Context, id int64, in BeneficiaryInput) (*Beneficiary, error) {
	var out Beneficiary
	if err := s.httpc.Put(ctx, fmt.Sprintf("/beneficiaries/%d", id), in, &out); err != nil {
		return nil, errors.Wrapf(err, "[BeneficiaryService.Update] id %d", id)
	}
	return &out, nil
}

// Delete removes a beneficiary.
func (s *BeneficiaryService) Delete(ctx context.Context, id int64) error {
	if err := s.httpc.Delete(ctx, fmt.Sprintf("/beneficiaries/%d", id), nil); err != nil {
		return errors.Wrapf(err, "[BeneficiaryService.Delete] id %d", id)
	}
	return nil
}

// SetFavorite toggles the favorite flag used to pin a beneficiary at the top
// of the transfer screen.
func (s *BeneficiaryService) SetFavorite(ctx context.Context, id int64, favorite bool) (*Beneficiary, error) {
	var out Beneficiary
	path := fmt.Sprintf("/beneficiaries/%d/favorite", id)
	if err := s.httpc.Patch(ctx, path, favoriteRequest{IsFavorite: favorite}, &out); err != nil {
		return nil, errors.Wrapf(err, "[BeneficiaryService.SetFavorite] id %d", id)
	}
	return &out, nil
}
