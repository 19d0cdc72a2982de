// Package session holds the client-side authentication state for a SwiftSend
// client: the token pair, the user claims decoded from the access token, and
// the watcher that reconciles them against the current route.
package session

import (
	"github.com/esther-pixel31/swiftsend-go/token"
)

// Status tracks the lifecycle of the most recent authentication operation.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Session is the in-memory authentication state. The token strings are
// mirrored into the durable TokenStore on successful login so a restart can
// restore the session without re-authenticating; User is always re-derived
// from the access token, never persisted.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         *token.Claims
	Status       Status
	Err          *FlowError
}

// Authenticated reports whether the session holds an access token.
func (s Session) Authenticated() bool {
	return s.AccessToken != ""
}

// FlowKind identifies which authentication operation an error came from.
type FlowKind string

const (
	FlowLogin       FlowKind = "login"
	FlowRegister    FlowKind = "register"
	FlowAdminLogin  FlowKind = "adminLogin"
	FlowGoogleLogin FlowKind = "googleLogin"
	FlowVerifyOTP   FlowKind = "verifyOTP"
	FlowResendOTP   FlowKind = "resendOTP"
)

// FlowError is the typed error surfaced to the UI when an authentication
// operation fails. Message is always user-presentable - the server-provided
// message when there was one, a generic fallback otherwise - never a raw
// transport error.
type FlowError struct {
	Kind    FlowKind
	Message string
}

func (e *FlowError) Error() string {
	return string(e.Kind) + ": " + e.Message
}
