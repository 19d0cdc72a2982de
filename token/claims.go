package token

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// RoleType represents the role claim carried by a SwiftSend access token.
type RoleType string

const (
	RoleUser  RoleType = "user"
	RoleAdmin RoleType = "admin"
)

// Claims is the decoded payload of a SwiftSend access token.
//
// The client decodes the payload but never verifies the signature - every API
// call is verified server-side, so claims are trusted only while Exp is in the
// future. An undecodable or expired token is treated the same as no token.
type Claims struct {
	Subject     string    `json:"sub,omitempty"`          // Users unique ID
	Email       string    `json:"email,omitempty"`        // User's email address
	Name        string    `json:"name,omitempty"`         // Display name, may be empty
	Role        RoleType  `json:"role,omitempty"`         // "user" or "admin"
	OTPVerified bool      `json:"otp_verified,omitempty"` // Has the OTP gate been passed
	ExpiresAt   time.Time `json:"-"`                      // Expiry derived from the exp claim
	IssuedAt    time.Time `json:"-"`                      // Issue time derived from the iat claim

	// Demo card fields carried by the token for the wallet UI
	CardNumber string `json:"card_number,omitempty"`
	CardExpiry string `json:"card_expiry,omitempty"`
	CardType   string `json:"card_type,omitempty"`
}

// IsAdmin returns true when the token carries the admin role.
func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// Decode extracts the claims from a raw bearer token without verifying the
// signature. It never panics; malformed input yields an error.
func Decode(rawToken string) (*Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, ErrNoToken
	}

	unverified, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return nil, errors.Wrap(err, "[Decode] ParseUnverified")
	}

	mapClaims, ok := unverified.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, ErrMalformedClaims
	}

	sub, _ := mapClaims["sub"].(string)
	email, _ := mapClaims["email"].(string)
	name, _ := mapClaims["name"].(string)
	role, _ := mapClaims["role"].(string)
	otpVerified, _ := mapClaims["otp_verified"].(bool)
	cardNumber, _ := mapClaims["card_number"].(string)
	cardExpiry, _ := mapClaims["card_expiry"].(string)
	cardType, _ := mapClaims["card_type"].(string)

	claims := &Claims{
		Subject:     sub,
		Email:       email,
		Name:        name,
		Role:        RoleType(role),
		OTPVerified: otpVerified,
		CardNumber:  cardNumber,
		CardExpiry:  cardExpiry,
		CardType:    cardType,
	}
	if claims.Role == "" {
		claims.Role = RoleUser
	}

	if exp, ok := mapClaims["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0)
	}
	if iat, ok := mapClaims["iat"].(float64); ok {
		claims.IssuedAt = time.Unix(int64(iat), 0)
	}

	return claims, nil
}

// IsExpired reports whether the token should be treated as expired. A token
// that cannot be decoded or carries no exp claim counts as expired.
func IsExpired(rawToken string) bool {
	return IsExpiredAt(rawToken, time.Now())
}

// IsExpiredAt is IsExpired against an explicit clock, for callers with an
// injected now function.
func IsExpiredAt(rawToken string, now time.Time) bool {
	claims, err := Decode(rawToken)
	if err != nil {
		return true
	}
	if claims.ExpiresAt.IsZero() {
		return true
	}
	return !claims.ExpiresAt.After(now)
}

// ExpiresIn returns the remaining lifetime of the token relative to now.
// Undecodable tokens and tokens already past expiry return zero.
func ExpiresIn(rawToken string, now time.Time) time.Duration {
	claims, err := Decode(rawToken)
	if err != nil || claims.ExpiresAt.IsZero() {
		return 0
	}
	remaining := claims.ExpiresAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}
