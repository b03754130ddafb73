package credstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "credentials.json"))
}

func TestFileStore_Roundtrip(t *testing.T) {
	ctx := context.Background()
	store := newTestFileStore(t)

	err := store.Save(ctx, "user", Credentials{
		Token:     "tok-123",
		Principal: json.RawMessage(`{"id":"u1","name":"Ada"}`),
	})
	require.NoError(t, err)

	creds, err := store.Load(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", creds.Token)
	assert.JSONEq(t, `{"id":"u1","name":"Ada"}`, string(creds.Principal))
}

func TestFileStore_MissingFileReadsAsNoCredentials(t *testing.T) {
	store := newTestFileStore(t)

	_, err := store.Load(context.Background(), "user")
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestFileStore_CorruptFileReadsAsNoCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0o600))

	store := NewFileStore(path)
	_, err := store.Load(context.Background(), "user")
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestFileStore_MalformedPrincipalReadsAsNoCredentials(t *testing.T) {
	ctx := context.Background()
	store := newTestFileStore(t)

	err := store.Save(ctx, "user", Credentials{
		Token:     "tok-123",
		Principal: json.RawMessage(`{"id": trunca`),
	})
	require.NoError(t, err)

	_, err = store.Load(ctx, "user")
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestFileStore_ScopesAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := newTestFileStore(t)

	require.NoError(t, store.Save(ctx, "user", Credentials{
		Token:     "user-tok",
		Principal: json.RawMessage(`{"id":"u1"}`),
	}))
	require.NoError(t, store.Save(ctx, "company", Credentials{
		Token:     "company-tok",
		Principal: json.RawMessage(`{"id":"c1"}`),
	}))

	require.NoError(t, store.Clear(ctx, "user"))

	_, err := store.Load(ctx, "user")
	assert.ErrorIs(t, err, ErrNoCredentials)

	creds, err := store.Load(ctx, "company")
	require.NoError(t, err)
	assert.Equal(t, "company-tok", creds.Token)
}

func TestFileStore_ClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestFileStore(t)

	assert.NoError(t, store.Clear(ctx, "user"))
	assert.NoError(t, store.Clear(ctx, "user"))
}

func TestFileStore_WriteIsPrivate(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "credentials.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(ctx, "user", Credentials{
		Token:     "tok",
		Principal: json.RawMessage(`{}`),
	}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
