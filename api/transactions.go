package api

import (
	"context"
	"io"
	"net/url"

	"github.com/pkg/errors"

	"github.com/esther-pixel31/swiftsend-go/httpclient"
)

// TransactionService covers the /history endpoints.
type TransactionService struct {
	httpc *httpclient.Client
}

// Transaction is a single wallet movement in the user's history.
type Transaction struct {
	ID        int64   `json:"id"`
	Type      string  `json:"type"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Status    string  `json:"status"`
	Reference string  `json:"reference"`
	Narration string  `json:"narration"`
	CreatedAt string  `json:"created_at"`
}

// List returns the authenticated user's transactions, newest first.
func (s *TransactionService) List(ctx context.Context) ([]Transaction, error) {
	var out []Transaction
	if err := s.httpc.Get(ctx, "/history/my-transactions", &out); err != nil {
		return nil, errors.Wrap(err, "[TransactionService.List]")
	}
	return out, nil
}

// Export streams the user's transaction history in the given format
// (currently "csv" or "pdf"). The caller must close the reader.
func (s *TransactionService) Export(ctx context.Context, format string) (io.ReadCloser, error) {
	query := url.Values{}
	query.Set("format", format)

	body, err := s.httpc.Download(ctx, "/history/my-transactions/download?"+query.Encode())
	if err != nil {
		return nil, errors.Wrapf(err, "[TransactionService.Export] format %s", format)
	}
	return body, nil
}
