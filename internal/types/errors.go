package types

import "fmt"

// Error taxonomy for the protocol layer. Transport and codec failures are
// converted into a uniform Result at the gateway boundary and never leak
// past it; list-shaped NotFound degrades to empty output instead.

// TransportError wraps a network or HTTP-level failure.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure for %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError wraps a codec parse failure: the response text was
// not well-formed markup.
type MalformedResponseError struct {
	Op  string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response for %s: %v", e.Op, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// OperationMismatchError reports a response whose message name does not
// match the requested operation.
type OperationMismatchError struct {
	Want string
	Got  string
}

func (e *OperationMismatchError) Error() string {
	return fmt.Sprintf("operation mismatch: requested %s, response carries %s", e.Want, e.Got)
}

// BackendError is a message-classified failure. Level 1 is a user error,
// level >= 6 a system error; the caption is the user-visible text.
type BackendError struct {
	Level   int
	Caption string
}

func (e *BackendError) Error() string {
	return e.Caption
}

// IsSystem reports whether the error is a system/critical error rather
// than a user error.
func (e *BackendError) IsSystem() bool { return e.Level >= SystemErrorLevel }

const (
	// UserErrorLevel is the critical level the backend assigns to user
	// errors.
	UserErrorLevel = 1
	// SystemErrorLevel is the lowest critical level classified as a
	// system error.
	SystemErrorLevel = 6
)

// AuthenticationError reports a missing or empty session token, either
// before a call is attempted or inside a login confirmation.
type AuthenticationError struct {
	Reason string
}

func (e *AuthenticationError) Error() string {
	if e.Reason == "" {
		return "not authenticated"
	}
	return "not authenticated: " + e.Reason
}

// NotFoundError reports an expected entity or message area absent after
// every fallback strategy was exhausted. For list operations this is
// treated as an empty result, not a hard failure.
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found in response", e.What)
}

// Result is the uniform boundary shape handed to collaborators (the CLI,
// or any UI layer). Operations never throw taxonomy errors past the
// gateway; they are folded into this shape instead.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// AsResult folds an operation error into the uniform boundary shape.
func AsResult(err error) Result {
	if err == nil {
		return Result{Success: true}
	}
	return Result{Success: false, Error: err.Error()}
}
