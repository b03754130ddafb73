package session

import (
	"context"
	"net/http"

	chttp "github.com/SanOuhi99/RECT-v3-sub000/internal/common/http"
	"github.com/SanOuhi99/RECT-v3-sub000/internal/common/logger"
	"github.com/SanOuhi99/RECT-v3-sub000/internal/credstore"
	"github.com/SanOuhi99/RECT-v3-sub000/internal/models"
)

// UserCredentials is the agent-scope login payload.
type UserCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserManager is the agent-scope session manager plus its API surface.
type UserManager struct {
	*Manager[models.User]
}

func NewUserManager(baseURL string, client *chttp.Client, store credstore.Store, log logger.Logger) *UserManager {
	return &UserManager{Manager: New[models.User](ScopeUser, baseURL, client, store, log)}
}

// ListProperties fetches the agent's matched property collection wholesale.
func (u *UserManager) ListProperties(ctx context.Context) ([]models.PropertyRecord, error) {
	var out []models.PropertyRecord
	if err := u.APIRequest(ctx, http.MethodGet, "/user/properties", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteProperty removes a single record from the agent's match list.
func (u *UserManager) DeleteProperty(ctx context.Context, id string) error {
	return u.APIRequest(ctx, http.MethodDelete, "/user/properties/"+id, nil, nil)
}

// FetchStats fetches the agent's precomputed dashboard summary.
func (u *UserManager) FetchStats(ctx context.Context) (*models.Stats, error) {
	var out models.Stats
	if err := u.APIRequest(ctx, http.MethodGet, "/user/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
