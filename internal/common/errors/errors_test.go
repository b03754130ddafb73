package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Classification Tests
// ==========================

func TestPredicates(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		authExpired bool
		validation  bool
		network     bool
		protocol    bool
	}{
		{
			name:        "auth expired",
			err:         NewAuthExpired("user"),
			authExpired: true,
		},
		{
			name:       "validation",
			err:        NewValidation("password mismatch"),
			validation: true,
		},
		{
			name:    "network",
			err:     NewNetwork(fmt.Errorf("dial tcp: connection refused")),
			network: true,
		},
		{
			name:     "protocol",
			err:      NewProtocol("login response missing access_token"),
			protocol: true,
		},
		{
			name: "http",
			err:  NewHTTP(500, "Internal Server Error"),
		},
		{
			name: "plain error",
			err:  fmt.Errorf("boom"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.authExpired, IsAuthExpired(tt.err))
			assert.Equal(t, tt.validation, IsValidation(tt.err))
			assert.Equal(t, tt.network, IsNetwork(tt.err))
			assert.Equal(t, tt.protocol, IsProtocol(tt.err))
		})
	}
}

func TestPredicates_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("refresh failed: %w", NewAuthExpired("company"))
	assert.True(t, IsAuthExpired(wrapped))
}

func TestNewAuthExpired_CarriesScopeAndStatus(t *testing.T) {
	err := NewAuthExpired("admin")
	assert.Equal(t, "admin", err.Scope)
	assert.Equal(t, 401, err.Status)
	assert.Contains(t, err.Error(), "session expired")
}

// ==========================
// Message Extraction Tests
// ==========================

func TestExtractMessage(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		fallback string
		expected string
	}{
		{
			name:     "string detail",
			body:     `{"detail": "Invalid credentials"}`,
			fallback: "Unauthorized",
			expected: "Invalid credentials",
		},
		{
			name:     "message field",
			body:     `{"message": "Company code not found"}`,
			fallback: "Not Found",
			expected: "Company code not found",
		},
		{
			name:     "field error list",
			body:     `{"detail": [{"loc": ["body", "email"], "msg": "value is not a valid email address"}]}`,
			fallback: "Unprocessable Entity",
			expected: "email: value is not a valid email address",
		},
		{
			name:     "field error list with numeric index",
			body:     `{"detail": [{"loc": ["body", "territories", 0, "state"], "msg": "field required"}]}`,
			fallback: "Unprocessable Entity",
			expected: "state: field required",
		},
		{
			name:     "multiple field errors joined",
			body:     `{"detail": [{"loc": ["body", "name"], "msg": "field required"}, {"loc": ["body", "email"], "msg": "field required"}]}`,
			fallback: "Unprocessable Entity",
			expected: "name: field required; email: field required",
		},
		{
			name:     "loc only contains body",
			body:     `{"detail": [{"loc": ["body"], "msg": "invalid payload"}]}`,
			fallback: "Unprocessable Entity",
			expected: "invalid payload",
		},
		{
			name:     "empty body falls back",
			body:     ``,
			fallback: "Bad Gateway",
			expected: "Bad Gateway",
		},
		{
			name:     "non-JSON body falls back",
			body:     `<html>502 Bad Gateway</html>`,
			fallback: "Bad Gateway",
			expected: "Bad Gateway",
		},
		{
			name:     "unrecognized detail shape falls back",
			body:     `{"detail": {"code": 17}}`,
			fallback: "Bad Request",
			expected: "Bad Request",
		},
		{
			name:     "empty object falls back",
			body:     `{}`,
			fallback: "Internal Server Error",
			expected: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractMessage([]byte(tt.body), tt.fallback))
		})
	}
}
