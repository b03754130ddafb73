// Package errors provides the standardized error taxonomy for the RECT client.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Kind classifies what a failure means for the owning session.
type Kind string

const (
	// KindValidation is a local, user-correctable failure. Never logs out.
	KindValidation Kind = "VALIDATION_ERROR"
	// KindAuthExpired is an HTTP 401 from an authenticated call. Always
	// fatal to the scope's session.
	KindAuthExpired Kind = "AUTH_EXPIRED"
	// KindNetwork is a transport-level failure. Session untouched.
	KindNetwork Kind = "NETWORK_ERROR"
	// KindProtocol is a malformed success response from the backend, e.g.
	// a login response missing its token. Session untouched.
	KindProtocol Kind = "PROTOCOL_ERROR"
	// KindHTTP is any other non-success HTTP status. Local to the call.
	KindHTTP Kind = "HTTP_ERROR"
)

// ClientError is a structured application error.
type ClientError struct {
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Status    int       `json:"status,omitempty"`
	Scope     string    `json:"scope,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *ClientError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewValidation creates a user-correctable validation error.
func NewValidation(message string) *ClientError {
	return &ClientError{
		Kind:      KindValidation,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuthExpired creates the fatal-to-session expiry error for a scope.
func NewAuthExpired(scope string) *ClientError {
	return &ClientError{
		Kind:      KindAuthExpired,
		Message:   "session expired, please log in again",
		Scope:     scope,
		Status:    401,
		Timestamp: time.Now().UTC(),
	}
}

// NewNetwork wraps a transport failure with a retry-suggesting message.
func NewNetwork(err error) *ClientError {
	return &ClientError{
		Kind:      KindNetwork,
		Message:   "could not reach the server, check your connection",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// NewProtocol creates an error for a success response with a malformed body.
func NewProtocol(details string) *ClientError {
	return &ClientError{
		Kind:      KindProtocol,
		Message:   "unexpected response from server",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewHTTP creates an error for a non-success status outside the taxonomy
// above, carrying the best message the response body offered.
func NewHTTP(status int, message string) *ClientError {
	return &ClientError{
		Kind:      KindHTTP,
		Message:   message,
		Status:    status,
		Timestamp: time.Now().UTC(),
	}
}

func is(err error, kind Kind) bool {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}

// IsAuthExpired reports whether err is the fatal session-expiry condition.
func IsAuthExpired(err error) bool { return is(err, KindAuthExpired) }

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool { return is(err, KindValidation) }

// IsNetwork reports whether err is a transport-level failure.
func IsNetwork(err error) bool { return is(err, KindNetwork) }

// IsProtocol reports whether err is a malformed-success-response failure.
func IsProtocol(err error) bool { return is(err, KindProtocol) }

// errorBody mirrors the shapes the backend uses for error responses. The
// detail field is usually a string; validation failures send a list of
// {loc, msg} entries instead.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

type fieldError struct {
	Loc []json.RawMessage `json:"loc"`
	Msg string            `json:"msg"`
}

// ExtractMessage pulls a human-readable message out of an error response
// body, falling back to the supplied status text. The structured {loc, msg}
// list is backend-defined and not verified here, so it is formatted on a
// best-effort basis only.
func ExtractMessage(body []byte, fallback string) string {
	if len(body) == 0 {
		return fallback
	}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fallback
	}

	if parsed.Message != "" {
		return parsed.Message
	}
	if len(parsed.Detail) == 0 {
		return fallback
	}

	var detailStr string
	if err := json.Unmarshal(parsed.Detail, &detailStr); err == nil && detailStr != "" {
		return detailStr
	}

	var fieldErrs []fieldError
	if err := json.Unmarshal(parsed.Detail, &fieldErrs); err == nil && len(fieldErrs) > 0 {
		parts := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			if fe.Msg == "" {
				continue
			}
			if field := lastLoc(fe.Loc); field != "" {
				parts = append(parts, fmt.Sprintf("%s: %s", field, fe.Msg))
			} else {
				parts = append(parts, fe.Msg)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "; ")
		}
	}

	return fallback
}

// lastLoc returns the innermost string element of a loc path, skipping the
// numeric indices FastAPI-style backends mix in.
func lastLoc(loc []json.RawMessage) string {
	for i := len(loc) - 1; i >= 0; i-- {
		var s string
		if err := json.Unmarshal(loc[i], &s); err == nil && s != "" && s != "body" {
			return s
		}
	}
	return ""
}
