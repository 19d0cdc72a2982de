// Package api holds the typed clients for the SwiftSend REST backend, one
// service per resource. Services share a single httpclient.Client, so the
// bearer token and request IDs are attached uniformly.
package api

import (
	"github.com/pkg/errors"

	"github.com/esther-pixel31/swiftsend-go/httpclient"
)

// Client bundles the per-resource services.
type Client struct {
	Auth          *AuthService
	Wallet        *WalletService
	Transfers     *TransferService
	Beneficiaries *BeneficiaryService
	FX            *FXService
	Transactions  *TransactionService
	KYC           *KYCService
	Support       *SupportService
	Users         *UserService
	Admin         *AdminService
}

// New builds the service bundle over the given HTTP client.
func New(httpc *httpclient.Client) (*Client, error) {
	if httpc == nil {
		return nil, errors.New("[api.New] httpclient.Client is required")
	}

	return &Client{
		Auth:          &AuthService{httpc: httpc},
		Wallet:        &WalletService{httpc: httpc},
		Transfers:     &TransferService{httpc: httpc},
		Beneficiaries: &BeneficiaryService{httpc: httpc},
		FX:            &FXService{httpc: httpc},
		Transactions:  &TransactionService{httpc: httpc},
		KYC:           &KYCService{httpc: httpc},
		Support:       &SupportService{httpc: httpc},
		Users:         &UserService{httpc: httpc},
		Admin:         &AdminService{httpc: httpc},
	}, nil
}
