package token_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/esther-pixel31/swiftsend-go/token"
)

const (
	testSecret = "test-signing-secret"
	testEmail  = "jane.doe@example.com"
	testName   = "Jane Doe"
)

func mintToken(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestDecodeClaims(t *testing.T) {
	now := time.Now()
	raw := mintToken(t, jwtlib.MapClaims{
		"sub":          "user-1",
		"email":        testEmail,
		"name":         testName,
		"role":         "admin",
		"otp_verified": true,
		"exp":          now.Add(time.Hour).Unix(),
		"iat":          now.Unix(),
		"card_number":  "4111111111111111",
		"card_expiry":  "12/27",
		"card_type":    "visa",
	})

	claims, err := token.Decode(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, testEmail, claims.Email)
	require.Equal(t, testName, claims.Name)
	require.Equal(t, token.RoleAdmin, claims.Role)
	require.True(t, claims.OTPVerified)
	require.True(t, claims.IsAdmin())
	require.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	require.Equal(t, "4111111111111111", claims.CardNumber)
}

func TestDecodeDefaultsRoleToUser(t *testing.T) {
	raw := mintToken(t, jwtlib.MapClaims{
		"email": testEmail,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	claims, err := token.Decode(raw)
	require.NoError(t, err)
	require.Equal(t, token.RoleUser, claims.Role)
	require.False(t, claims.OTPVerified)
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"not a jwt", "not-a-jwt"},
		{"two parts", "abc.def"},
		{"garbage payload", "abc.!!!.def"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := token.Decode(tc.raw)
			require.Error(t, err)
		})
	}
}

func TestIsExpired(t *testing.T) {
	now := time.Now()

	expired := mintToken(t, jwtlib.MapClaims{"email": testEmail, "exp": now.Add(-time.Second).Unix()})
	valid := mintToken(t, jwtlib.MapClaims{"email": testEmail, "exp": now.Add(time.Hour).Unix()})
	noExp := mintToken(t, jwtlib.MapClaims{"email": testEmail})

	require.True(t, token.IsExpired(expired))
	require.False(t, token.IsExpired(valid))
	require.True(t, token.IsExpired(noExp))
	require.True(t, token.IsExpired("not-a-jwt-shaped-string"))
	require.True(t, token.IsExpired(""))
}

func TestIsExpiredAtBoundary(t *testing.T) {
	exp := time.Unix(time.Now().Add(time.Hour).Unix(), 0)
	raw := mintToken(t, jwtlib.MapClaims{"email": testEmail, "exp": exp.Unix()})

	// exp <= now counts as expired, strictly after does not.
	require.True(t, token.IsExpiredAt(raw, exp))
	require.True(t, token.IsExpiredAt(raw, exp.Add(time.Second)))
	require.False(t, token.IsExpiredAt(raw, exp.Add(-time.Second)))
}

func TestExpiresIn(t *testing.T) {
	exp := time.Unix(time.Now().Add(time.Hour).Unix(), 0)
	raw := mintToken(t, jwtlib.MapClaims{"email": testEmail, "exp": exp.Unix()})

	require.Equal(t, 30*time.Minute, token.ExpiresIn(raw, exp.Add(-30*time.Minute)))
	require.Equal(t, time.Duration(0), token.ExpiresIn(raw, exp.Add(time.Minute)))
	require.Equal(t, time.Duration(0), token.ExpiresIn("garbage", time.Now()))
}
