package httpclient

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader carries a client-generated ID so a request can be correlated
// with the backend audit trail.
const RequestIDHeader = "X-Request-ID"

// IdempotencyKeyHeader deduplicates retried money-moving requests.
const IdempotencyKeyHeader = "Idempotency-Key"

// TokenSource supplies the current bearer token for outgoing requests.
// An empty string means no session; the request is sent unauthenticated.
type TokenSource interface {
	AccessToken() string
}

// StaticToken is a fixed-token TokenSource, mostly useful in tests.
type StaticToken string

func (s StaticToken) AccessToken() string { return string(s) }

// Transport is an http.RoundTripper that attaches the bearer credential from
// the token source to every outgoing request. It performs no retries and no
// refresh-token exchange; a 401 is returned to the caller untouched.
type Transport struct {
	Source TokenSource
	Base   http.RoundTripper
}

// NewTransport wraps base with bearer injection from source. A nil base falls
// back to http.DefaultTransport.
func NewTransport(source TokenSource, base http.RoundTripper) *Transport {
	return &Transport{Source: source, Base: base}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Per RoundTripper contract the request must not be mutated in place.
	req = req.Clone(req.Context())

	if t.Source != nil {
		if tok := t.Source.AccessToken(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.New().String())
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}
