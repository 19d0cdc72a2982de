package token

import "errors"

var (
	ErrNoToken         = errors.New("no token")
	ErrMalformedClaims = errors.New("malformed token claims")
)
