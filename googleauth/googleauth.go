// Package googleauth obtains the Google ID-token credential that the
// backend's Google sign-in endpoint exchanges for a SwiftSend session. It
// runs the OIDC authorization-code flow with PKCE against Google's issuer.
package googleauth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// GoogleIssuer is the OIDC issuer for Google accounts.
const GoogleIssuer = "https://accounts.google.com"

// Client wraps the discovered OIDC provider and its OAuth2 configuration.
type Client struct {
	issuer   string
	provider *oidc.Provider
	verifier *oidc.IDTokenVerifier
	config   oauth2.Config
}

// Option configures a Client before provider discovery runs.
type Option func(*Client)

// WithIssuer overrides the OIDC issuer, primarily for tests against a local
// provider.
func WithIssuer(issuer string) Option {
	return func(c *Client) {
		c.issuer = issuer
	}
}

// WithScopes replaces the default openid/profile/email scope set.
func WithScopes(scopes ...string) Option {
	return func(c *Client) {
		c.config.Scopes = scopes
	}
}

// New discovers the issuer's OIDC configuration and prepares the
// authorization-code flow.
func New(ctx context.Context, clientID, clientSecret, redirectURL string, options ...Option) (*Client, error) {
	if clientID == "" {
		return nil, errors.New("[googleauth.New] client ID is required")
	}

	c := &Client{
		issuer: GoogleIssuer,
		config: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}
	for _, opt := range options {
		opt(c)
	}

	provider, err := oidc.NewProvider(ctx, c.issuer)
	if err != nil {
		return nil, errors.Wrapf(err, "[googleauth.New] discover issuer %s", c.issuer)
	}

	c.provider = provider
	c.config.Endpoint = provider.Endpoint()
	c.verifier = provider.Verifier(&oidc.Config{ClientID: clientID})

	return c, nil
}

// Flow holds the per-attempt secrets of one authorization round trip. State
// binds the callback to this attempt; Verifier is the PKCE secret that proves
// the code exchange comes from the party that started the flow.
type Flow struct {
	State    string
	Verifier string
}

// NewFlow mints fresh state and PKCE verifier values.
func NewFlow() (*Flow, error) {
	state, err := randomURLString(16)
	if err != nil {
		return nil, errors.Wrap(err, "[googleauth.NewFlow] state")
	}
	verifier, err := randomURLString(32)
	if err != nil {
		return nil, errors.Wrap(err, "[googleauth.NewFlow] verifier")
	}
	return &Flow{State: state, Verifier: verifier}, nil
}

// AuthURL is the browser URL that starts the flow, carrying the PKCE
// challenge derived from the flow's verifier.
func (c *Client) AuthURL(flow *Flow) string {
	return c.config.AuthCodeURL(flow.State,
		oauth2.SetAuthURLParam("code_challenge", CodeChallenge(flow.Verifier)),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)
}

// Exchange swaps the authorization code for tokens, presenting the PKCE
// verifier.
func (c *Client) Exchange(ctx context.Context, flow *Flow, code string) (*oauth2.Token, error) {
	tok, err := c.config.Exchange(ctx, code,
		oauth2.SetAuthURLParam("code_verifier", flow.Verifier),
	)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.Exchange]")
	}
	return tok, nil
}

// Credential extracts and verifies the ID token from an exchanged OAuth2
// token. The returned raw JWT is the credential the backend's Google login
// endpoint expects.
func (c *Client) Credential(ctx context.Context, tok *oauth2.Token) (string, error) {
	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return "", errors.New("[Client.Credential] token response carries no id_token")
	}
	if _, err := c.verifier.Verify(ctx, rawIDToken); err != nil {
		return "", errors.Wrap(err, "[Client.Credential] verify id_token")
	}
	return rawIDToken, nil
}

// CodeChallenge derives the S256 challenge for a PKCE verifier per RFC 7636.
func CodeChallenge(verifier string) string {
	hash := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}

func randomURLString(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
