package api

import (
	"context"
	"net/url"

	"github.com/pkg/errors"

	"github.com/esther-pixel31/swiftsend-go/httpclient"
)

// FXService exposes the exchange-rate lookup used by international transfers.
type FXService struct {
	httpc *httpclient.Client
}

// FXRate is a quoted conversion rate between two currencies. FeePercent is
// the platform's cut on conversions at this rate.
type FXRate struct {
	Base       string  `json:"base_currency"`
	Target     string  `json:"target_currency"`
	Rate       float64 `json:"rate"`
	FeePercent float64 `json:"fee_percent"`
}

// Rate quotes the conversion rate from base to target.
func (s *FXService) Rate(ctx context.Context, base, target string) (*FXRate, error) {
	query := url.Values{}
	query.Set("base", base)
	query.Set("target", target)

	var out FXRate
	if err := s.httpc.Get(ctx, "/fx-rate?"+query.Encode(), &out); err != nil {
		return nil, errors.Wrapf(err, "[FXService.Rate] %s->%s", base, target)
	}
	return &out, nil
}
