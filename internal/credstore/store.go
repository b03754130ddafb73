// Package credstore persists each scope's (token, principal) pair across
// process restarts. Scopes are keyed independently so the three session
// managers never contend: <scope>_token and <scope>_principal.
package credstore

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNoCredentials is returned by Load when a scope has nothing persisted.
// A malformed principal snapshot reads the same as nothing persisted.
var ErrNoCredentials = errors.New("credstore: no stored credentials")

// Credentials is one scope's persisted session snapshot.
type Credentials struct {
	Token     string
	Principal json.RawMessage
}

// Store is the durable key/value persistence behind the session managers.
// Writes are last-writer-wins per scope key.
type Store interface {
	Load(ctx context.Context, scope string) (*Credentials, error)
	Save(ctx context.Context, scope string, creds Credentials) error
	Clear(ctx context.Context, scope string) error
}

func tokenKey(scope string) string     { return scope + "_token" }
func principalKey(scope string) string { return scope + "_principal" }

// validate applies the shared read-side rules: an empty token or a
// principal that is not valid JSON means no usable session.
func validate(creds *Credentials) (*Credentials, error) {
	if creds.Token == "" || len(creds.Principal) == 0 {
		return nil, ErrNoCredentials
	}
	if !json.Valid(creds.Principal) {
		return nil, ErrNoCredentials
	}
	return creds, nil
}
