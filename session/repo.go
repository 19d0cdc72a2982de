package session

import "context"

// TokenStore is the durable mirror of the session's token pair - the single
// global slot read by hydration and written by login and logout. Load returns
// empty strings, not an error, when nothing is stored.
type TokenStore interface {
	Load() (accessToken, refreshToken string, err error)
	Save(accessToken, refreshToken string) error
	Clear() error
}

// LoginResult is a successful credential exchange with the backend.
// RequiresOTP signals that the account still has the OTP gate ahead of it;
// the issued access token then carries otp_verified=false.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	RequiresOTP  bool
}

// Authenticator is the external REST collaborator performing credential
// exchanges. The api package provides the production implementation.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	AdminLogin(ctx context.Context, email, password string) (*LoginResult, error)
	GoogleLogin(ctx context.Context, credential string) (*LoginResult, error)
	Register(ctx context.Context, name, email, password string) error
	VerifyOTP(ctx context.Context, email, code string) (*LoginResult, error)
	GenerateOTP(ctx context.Context, email string) error
}
