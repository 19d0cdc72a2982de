package api

import (
	"context"

	"github.com/pkg/errors"

	"github.com/esther-pixel31/swiftsend-go/httpclient"
)

// AuthService covers the /auth endpoints plus the admin login.
type AuthService struct {
	httpc *httpclient.Client
}

// TokenResponse is the token pair the backend issues on a successful login or
// OTP verification.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Profile is the authenticated user as reported by GET /auth/me.
type Profile struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	OTPVerified bool   `json:"otp_verified"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleLoginRequest struct {
	Credential string `json:"credential"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type generateOTPRequest struct {
	Email string `json:"email"`
}

// Register creates an account. The backend issues no tokens here; the caller
// logs in afterwards.
func (s *AuthService) Register(ctx context.Context, name, email, password string) error {
	in := registerRequest{Name: name, Email: email, Password: password}
	if err := s.httpc.Post(ctx, "/auth/register", in, nil); err != nil {
		return errors.Wrap(err, "[AuthService.Register]")
	}
	return nil
}

// Login exchanges credentials for a token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	var out TokenResponse
	in := credentialsRequest{Email: email, Password: password}
	if err := s.httpc.Post(ctx, "/auth/login", in, &out); err != nil {
		return nil, errors.Wrap(err, "[AuthService.Login]")
	}
	return &out, nil
}

// AdminLogin is Login against the admin endpoint. The backend rejects
// non-admin accounts here regardless of password.
func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (*TokenResponse, error) {
	var out TokenResponse
	in := credentialsRequest{Email: email, Password: password}
	if err := s.httpc.Post(ctx, "/admin/login", in, &out); err != nil {
		return nil, errors.Wrap(err, "[AuthService.AdminLogin]")
	}
	return &out, nil
}

// GoogleLogin exchanges a Google Identity credential for a token pair.
func (s *AuthService) GoogleLogin(ctx context.Context, credential string) (*TokenResponse, error) {
	var out TokenResponse
	if err := s.httpc.Post(ctx, "/auth/google", googleLoginRequest{Credential: credential}, &out); err != nil {
		return nil, errors.Wrap(err, "[AuthService.GoogleLogin]")
	}
	return &out, nil
}

// VerifyOTP submits the emailed passcode. On success the backend issues a
// fresh token pair with otp_verified set.
func (s *AuthService) VerifyOTP(ctx context.Context, email, otp string) (*TokenResponse, error) {
	var out TokenResponse
	if err := s.httpc.Post(ctx, "/auth/verify-otp", verifyOTPRequest{Email: email, OTP: otp}, &out); err != nil {
		return nil, errors.Wrap(err, "[AuthService.VerifyOTP]")
	}
	return &out, nil
}

// GenerateOTP asks the backend to mail a new passcode.
func (s *AuthService) GenerateOTP(ctx context.Context, email string) error {
	if err := s.httpc.Post(ctx, "/auth/generate-otp", generateOTPRequest{Email: email}, nil); err != nil {
		return errors.Wrap(err, "[AuthService.GenerateOTP]")
	}
	return nil
}

// Me returns the profile behind the current bearer token.
func (s *AuthService) Me(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := s.httpc.Get(ctx, "/auth/me", &out); err != nil {
		return nil, errors.Wrap(err, "[AuthService.Me]")
	}
	return &out, nil
}
