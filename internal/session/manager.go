package session

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/google/uuid"

	apperrors "github.com/SanOuhi99/RECT-v3-sub000/internal/common/errors"
	chttp "github.com/SanOuhi99/RECT-v3-sub000/internal/common/http"
	"github.com/SanOuhi99/RECT-v3-sub000/internal/common/logger"
	"github.com/SanOuhi99/RECT-v3-sub000/internal/common/metrics"
	"github.com/SanOuhi99/RECT-v3-sub000/internal/credstore"
)

// Manager owns the in-memory auth state for one scope, generic over the
// scope's principal shape. All three scopes share this one implementation.
type Manager[P any] struct {
	scope   Scope
	baseURL string
	client  *chttp.Client
	store   credstore.Store
	log     logger.Logger

	mu            sync.Mutex
	token         string
	principal     *P
	authenticated bool
	loading       bool
}

// New constructs a manager in the loading state. Call Initialize to restore
// and re-validate any persisted session.
func New[P any](scope Scope, baseURL string, client *chttp.Client, store credstore.Store, log logger.Logger) *Manager[P] {
	return &Manager[P]{
		scope:   scope,
		baseURL: baseURL,
		client:  client,
		store:   store,
		log:     log.WithFields(map[string]interface{}{"scope": scope.Name}),
		loading: true,
	}
}

// Initialize restores persisted credentials, optimistically marks the
// session authenticated, then silently re-validates against the backend.
// Any re-validation failure forces logout. Loading always terminates
// exactly once, whatever the outcome.
func (m *Manager[P]) Initialize(ctx context.Context) {
	defer m.setLoading(false)

	creds, err := m.store.Load(ctx, m.scope.Name)
	if err != nil {
		if err != credstore.ErrNoCredentials {
			m.log.Warn("credential store read failed", map[string]interface{}{"error": err.Error()})
		}
		m.Logout(ctx)
		return
	}

	var principal P
	if err := json.Unmarshal(creds.Principal, &principal); err != nil {
		m.log.Warn("persisted principal unreadable, clearing session", map[string]interface{}{"error": err.Error()})
		m.Logout(ctx)
		return
	}

	// Optimistic window: show the restored session while re-validating.
	m.mu.Lock()
	m.token = creds.Token
	m.principal = &principal
	m.authenticated = true
	m.mu.Unlock()
	metrics.SessionsActive.WithLabelValues(m.scope.Name).Set(1)

	if _, err := m.FetchPrincipal(ctx, ""); err != nil {
		m.log.Info("silent re-validation failed, logging out", map[string]interface{}{"error": err.Error()})
		m.Logout(ctx)
	}
}

// Login posts credentials to the scope's login endpoint. Failures are
// returned classified and never mutate session state. On success the
// in-memory state flips before the store write, so a consumer can never
// observe "authenticated" backed by stale persistence.
func (m *Manager[P]) Login(ctx context.Context, credentials interface{}) error {
	status, body, err := m.send(ctx, http.MethodPost, m.scope.LoginPath(), "", credentials)
	if err != nil {
		outcome := "protocol"
		if apperrors.IsNetwork(err) {
			outcome = "network"
		}
		metrics.SessionLogins.WithLabelValues(m.scope.Name, outcome).Inc()
		return err
	}

	if status < 200 || status >= 300 {
		metrics.SessionLogins.WithLabelValues(m.scope.Name, "rejected").Inc()
		msg := apperrors.ExtractMessage(body, http.StatusText(status))
		return apperrors.NewHTTP(status, msg)
	}

	token, principalRaw, perr := m.parseLoginBody(body)
	if perr != nil {
		metrics.SessionLogins.WithLabelValues(m.scope.Name, "protocol").Inc()
		return perr
	}

	var principal P
	if err := json.Unmarshal(principalRaw, &principal); err != nil {
		metrics.SessionLogins.WithLabelValues(m.scope.Name, "protocol").Inc()
		return apperrors.NewProtocol("login principal payload unreadable: " + err.Error())
	}

	m.mu.Lock()
	m.token = token
	m.principal = &principal
	m.authenticated = true
	m.loading = false
	m.mu.Unlock()
	metrics.SessionsActive.WithLabelValues(m.scope.Name).Set(1)
	metrics.SessionLogins.WithLabelValues(m.scope.Name, "success").Inc()

	if err := m.persist(ctx, token, principalRaw); err != nil {
		m.log.Warn("credential store write failed", map[string]interface{}{"error": err.Error()})
	}

	m.log.Info("logged in", nil)
	return nil
}

// parseLoginBody extracts the access token and the principal payload from a
// login response. The principal arrives under the scope's name; either part
// missing is a protocol error, not a crash.
func (m *Manager[P]) parseLoginBody(body []byte) (string, json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", nil, apperrors.NewProtocol("login response unreadable: " + err.Error())
	}

	var token string
	if tr, ok := raw["access_token"]; ok {
		_ = json.Unmarshal(tr, &token)
	}
	if token == "" {
		return "", nil, apperrors.NewProtocol("login response missing access_token")
	}

	principalRaw, ok := raw[m.scope.Name]
	if !ok {
		principalRaw, ok = raw["principal"]
	}
	if !ok || len(principalRaw) == 0 {
		return "", nil, apperrors.NewProtocol("login response missing " + m.scope.Name + " payload")
	}

	return token, principalRaw, nil
}

// Logout clears in-memory state and the credential store unconditionally.
// Idempotent and never fails upward.
func (m *Manager[P]) Logout(ctx context.Context) {
	m.mu.Lock()
	wasAuthenticated := m.authenticated
	m.token = ""
	m.principal = nil
	m.authenticated = false
	m.mu.Unlock()

	metrics.SessionsActive.WithLabelValues(m.scope.Name).Set(0)

	if err := m.store.Clear(ctx, m.scope.Name); err != nil {
		m.log.Warn("credential store clear failed", map[string]interface{}{"error": err.Error()})
	}

	if wasAuthenticated {
		m.log.Info("logged out", nil)
	}
}

// FetchPrincipal GETs the scope's whoami endpoint with the supplied token,
// or the current one when empty. A 401 returns the distinguished expiry
// error; the caller decides whether that ends the session (Initialize does,
// via Logout).
func (m *Manager[P]) FetchPrincipal(ctx context.Context, tokenOverride string) (*P, error) {
	token := tokenOverride
	if token == "" {
		token = m.Token()
	}
	if token == "" {
		return nil, apperrors.NewAuthExpired(m.scope.Name)
	}

	status, body, err := m.send(ctx, http.MethodGet, m.scope.MePath(), token, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		metrics.SessionExpiries.WithLabelValues(m.scope.Name).Inc()
		return nil, apperrors.NewAuthExpired(m.scope.Name)
	}
	if status < 200 || status >= 300 {
		return nil, apperrors.NewHTTP(status, apperrors.ExtractMessage(body, http.StatusText(status)))
	}

	var principal P
	if err := json.Unmarshal(body, &principal); err != nil {
		return nil, apperrors.NewProtocol("principal payload unreadable: " + err.Error())
	}

	m.mu.Lock()
	m.principal = &principal
	m.mu.Unlock()

	if err := m.persist(ctx, token, json.RawMessage(body)); err != nil {
		m.log.Warn("credential store write failed", map[string]interface{}{"error": err.Error()})
	}

	return &principal, nil
}

// UpdateProfile PUTs a partial profile update. Like Login it returns a
// classified failure and leaves session state alone on any error.
func (m *Manager[P]) UpdateProfile(ctx context.Context, patch interface{}) error {
	token := m.Token()
	if token == "" {
		return apperrors.NewAuthExpired(m.scope.Name)
	}

	status, body, err := m.send(ctx, http.MethodPut, m.scope.ProfilePath(), token, patch)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized {
		metrics.SessionExpiries.WithLabelValues(m.scope.Name).Inc()
		m.Logout(ctx)
		return apperrors.NewAuthExpired(m.scope.Name)
	}
	if status < 200 || status >= 300 {
		return apperrors.NewHTTP(status, apperrors.ExtractMessage(body, http.StatusText(status)))
	}

	var principal P
	if err := json.Unmarshal(body, &principal); err != nil {
		return apperrors.NewProtocol("updated principal unreadable: " + err.Error())
	}

	m.mu.Lock()
	m.principal = &principal
	m.mu.Unlock()

	if err := m.persist(ctx, token, json.RawMessage(body)); err != nil {
		m.log.Warn("credential store write failed", map[string]interface{}{"error": err.Error()})
	}

	return nil
}

// APIRequest attaches the bearer token and issues a request against the
// backend. On 401 it logs the scope out before returning the expiry error.
// Every scope-specific convenience call routes through here so expiry
// handling exists in exactly one place.
func (m *Manager[P]) APIRequest(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	token := m.Token()
	if token == "" {
		return apperrors.NewAuthExpired(m.scope.Name)
	}

	status, respBody, err := m.send(ctx, method, path, token, body)
	if err != nil {
		return err
	}

	metrics.APIRequests.WithLabelValues(m.scope.Name, strconv.Itoa(status)).Inc()

	if status == http.StatusUnauthorized {
		metrics.SessionExpiries.WithLabelValues(m.scope.Name).Inc()
		m.Logout(ctx)
		return apperrors.NewAuthExpired(m.scope.Name)
	}
	if status < 200 || status >= 300 {
		return apperrors.NewHTTP(status, apperrors.ExtractMessage(respBody, http.StatusText(status)))
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return apperrors.NewProtocol("response payload unreadable: " + err.Error())
		}
	}
	return nil
}

// send performs one HTTP exchange, separating transport failures from
// HTTP-level outcomes. Transport failures come back as the network error;
// everything else is (status, body) for the caller to classify.
func (m *Manager[P]) send(ctx context.Context, method, path, token string, body interface{}) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, apperrors.NewProtocol("request payload unserializable: " + err.Error())
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, m.baseURL+path, reader)
	if err != nil {
		return 0, nil, apperrors.NewProtocol("request build failed: " + err.Error())
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return 0, nil, apperrors.NewNetwork(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, apperrors.NewNetwork(err)
	}

	return resp.StatusCode, respBody, nil
}

func (m *Manager[P]) persist(ctx context.Context, token string, principal json.RawMessage) error {
	return m.store.Save(ctx, m.scope.Name, credstore.Credentials{
		Token:     token,
		Principal: principal,
	})
}

func (m *Manager[P]) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}

// Scope returns the scope this manager serves.
func (m *Manager[P]) Scope() Scope { return m.scope }

// Token returns the current bearer token, empty when unauthenticated.
func (m *Manager[P]) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Principal returns the current principal, nil when unauthenticated.
func (m *Manager[P]) Principal() *P {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.principal
}

func (m *Manager[P]) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authenticated
}

func (m *Manager[P]) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}
