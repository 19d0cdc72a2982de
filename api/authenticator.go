package api

import (
	"context"

	"github.com/esther-pixel31/swiftsend-go/session"
	"github.com/esther-pixel31/swiftsend-go/token"
)

// Authenticator adapts AuthService to the session.Authenticator contract, so
// the session manager stays ignorant of HTTP and endpoint shapes.
type Authenticator struct {
	auth *AuthService
}

var _ session.Authenticator = (*Authenticator)(nil)

// NewAuthenticator wraps the API client's auth service for the session layer.
func NewAuthenticator(client *Client) *Authenticator {
	return &Authenticator{auth: client.Auth}
}

func (a *Authenticator) Login(ctx context.Context, email, password string) (*session.LoginResult, error) {
	resp, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return loginResultFrom(resp), nil
}

func (a *Authenticator) AdminLogin(ctx context.Context, email, password string) (*session.LoginResult, error) {
	resp, err := a.auth.AdminLogin(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return loginResultFrom(resp), nil
}

func (a *Authenticator) GoogleLogin(ctx context.Context, credential string) (*session.LoginResult, error) {
	resp, err := a.auth.GoogleLogin(ctx, credential)
	if err != nil {
		return nil, err
	}
	return loginResultFrom(resp), nil
}

func (a *Authenticator) Register(ctx context.Context, name, email, password string) error {
	return a.auth.Register(ctx, name, email, password)
}

func (a *Authenticator) VerifyOTP(ctx context.Context, email, code string) (*session.LoginResult, error) {
	resp, err := a.auth.VerifyOTP(ctx, email, code)
	if err != nil {
		return nil, err
	}
	return loginResultFrom(resp), nil
}

func (a *Authenticator) GenerateOTP(ctx context.Context, email string) error {
	return a.auth.GenerateOTP(ctx, email)
}

// loginResultFrom derives RequiresOTP from the issued token itself: the
// backend encodes verification state in the otp_verified claim rather than a
// response field.
func loginResultFrom(resp *TokenResponse) *session.LoginResult {
	result := &session.LoginResult{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}
	if claims, err := token.Decode(resp.AccessToken); err == nil {
		result.RequiresOTP = !claims.OTPVerified
	}
	return result
}
