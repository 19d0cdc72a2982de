package googleauth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/esther-pixel31/swiftsend-go/googleauth"
)

const (
	testClientID = "swiftsend-cli"
	testKeyID    = "test-key-1"
)

// fakeIssuer is a minimal OIDC provider: discovery document, JWKS, and a
// token endpoint that returns a canned response.
type fakeIssuer struct {
	server  *httptest.Server
	key     *rsa.PrivateKey
	tokenFn func(w http.ResponseWriter, r *http.Request)
}

func newFakeIssuer(t *testing.T) *fakeIssuer {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	issuer := &fakeIssuer{key: key}
	mux := http.NewServeMux()
	issuer.server = httptest.NewServer(mux)
	t.Cleanup(issuer.server.Close)

	mux.HandleFunc("GET /.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"issuer":                                issuer.server.URL,
			"authorization_endpoint":                issuer.server.URL + "/auth",
			"token_endpoint":                        issuer.server.URL + "/token",
			"jwks_uri":                              issuer.server.URL + "/keys",
			"id_token_signing_alg_values_supported": []string{"RS256"},
		}))
	})
	mux.HandleFunc("GET /keys", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"keys": []map[string]any{{
				"kty": "RSA",
				"use": "sig",
				"alg": "RS256",
				"kid": testKeyID,
				"n":   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
			}},
		}))
	})
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		if issuer.tokenFn != nil {
			issuer.tokenFn(w, r)
		}
	})

	return issuer
}

func (f *fakeIssuer) mintIDToken(t *testing.T) string {
	t.Helper()

	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodRS256, jwtlib.MapClaims{
		"iss":   f.server.URL,
		"aud":   testClientID,
		"sub":   "google-user-1",
		"email": "jane.doe@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	})
	tok.Header["kid"] = testKeyID

	signed, err := tok.SignedString(f.key)
	require.NoError(t, err)
	return signed
}

func setupClient(t *testing.T, issuer *fakeIssuer) *googleauth.Client {
	t.Helper()
	client, err := googleauth.New(context.Background(), testClientID, "secret", "http://127.0.0.1/callback",
		googleauth.WithIssuer(issuer.server.URL))
	require.NoError(t, err)
	return client
}

func TestNewRequiresClientID(t *testing.T) {
	_, err := googleauth.New(context.Background(), "", "secret", "http://127.0.0.1/callback")
	require.Error(t, err)
}

func TestAuthURLCarriesPKCEChallenge(t *testing.T) {
	issuer := newFakeIssuer(t)
	client := setupClient(t, issuer)

	flow, err := googleauth.NewFlow()
	require.NoError(t, err)

	authURL := client.AuthURL(flow)
	require.Contains(t, authURL, issuer.server.URL+"/auth")
	require.Contains(t, authURL, "state="+flow.State)
	require.Contains(t, authURL, "code_challenge="+googleauth.CodeChallenge(flow.Verifier))
	require.Contains(t, authURL, "code_challenge_method=S256")
}

func TestCodeChallengeMatchesRFC7636Vector(t *testing.T) {
	// Appendix B of RFC 7636.
	challenge := googleauth.CodeChallenge("dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk")
	require.Equal(t, "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM", challenge)
}

func TestNewFlowMintsDistinctSecrets(t *testing.T) {
	first, err := googleauth.NewFlow()
	require.NoError(t, err)
	second, err := googleauth.NewFlow()
	require.NoError(t, err)

	require.NotEqual(t, first.State, second.State)
	require.NotEqual(t, first.Verifier, second.Verifier)
}

func TestExchangeAndCredentialRoundTrip(t *testing.T) {
	issuer := newFakeIssuer(t)
	idToken := issuer.mintIDToken(t)

	issuer.tokenFn = func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "auth-code-1", r.PostForm.Get("code"))
		require.NotEmpty(t, r.PostForm.Get("code_verifier"))

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"access_token": "google-access",
			"token_type":   "Bearer",
			"expires_in":   3600,
			"id_token":     idToken,
		}))
	}

	client := setupClient(t, issuer)
	flow, err := googleauth.NewFlow()
	require.NoError(t, err)

	tok, err := client.Exchange(context.Background(), flow, "auth-code-1")
	require.NoError(t, err)

	credential, err := client.Credential(context.Background(), tok)
	require.NoError(t, err)
	require.Equal(t, idToken, credential)
}

func TestCredentialRejectsMissingIDToken(t *testing.T) {
	issuer := newFakeIssuer(t)
	client := setupClient(t, issuer)

	_, err := client.Credential(context.Background(), &oauth2.Token{AccessToken: "google-access"})
	require.Error(t, err)
}

func TestCredentialRejectsForeignSignature(t *testing.T) {
	issuer := newFakeIssuer(t)
	client := setupClient(t, issuer)

	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	forged := jwtlib.NewWithClaims(jwtlib.SigningMethodRS256, jwtlib.MapClaims{
		"iss": issuer.server.URL,
		"aud": testClientID,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	forged.Header["kid"] = testKeyID
	raw, err := forged.SignedString(otherKey)
	require.NoError(t, err)

	tok := (&oauth2.Token{AccessToken: "google-access"}).WithExtra(map[string]any{"id_token": raw})
	_, err = client.Credential(context.Background(), tok)
	require.Error(t, err)
}
