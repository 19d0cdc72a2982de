package httpclient

import "fmt"

// APIError is a non-2xx response from the SwiftSend backend. Message carries
// the server-provided "msg" field when the body had one, so callers can
// surface it directly instead of a raw transport error.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether the error is a 401. The client never retries
// or refreshes on 401 - the caller decides what to surface.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401
}
