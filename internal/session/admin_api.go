package session

import (
	"context"
	"net/http"

	chttp "github.com/SanOuhi99/RECT-v3-sub000/internal/common/http"
	"github.com/SanOuhi99/RECT-v3-sub000/internal/common/logger"
	"github.com/SanOuhi99/RECT-v3-sub000/internal/credstore"
	"github.com/SanOuhi99/RECT-v3-sub000/internal/models"
)

// AdminCredentials is the administrator-scope login payload.
type AdminCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type companyStatusPatch struct {
	IsActive bool `json:"is_active"`
}

// AdminManager is the administrator-scope session manager plus its API
// surface.
type AdminManager struct {
	*Manager[models.Admin]
}

func NewAdminManager(baseURL string, client *chttp.Client, store credstore.Store, log logger.Logger) *AdminManager {
	return &AdminManager{Manager: New[models.Admin](ScopeAdmin, baseURL, client, store, log)}
}

// ListCompanies fetches all registered brokerages.
func (a *AdminManager) ListCompanies(ctx context.Context) ([]models.Company, error) {
	var out []models.Company
	if err := a.APIRequest(ctx, http.MethodGet, "/admin/companies", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListUsers fetches every agent across companies.
func (a *AdminManager) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := a.APIRequest(ctx, http.MethodGet, "/admin/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetCompanyActive enables or disables a brokerage.
func (a *AdminManager) SetCompanyActive(ctx context.Context, companyID string, active bool) error {
	return a.APIRequest(ctx, http.MethodPut, "/admin/companies/"+companyID+"/status", companyStatusPatch{IsActive: active}, nil)
}
