package session

import (
	"context"
	"net/http"

	chttp "github.com/SanOuhi99/RECT-v3-sub000/internal/common/http"
	"github.com/SanOuhi99/RECT-v3-sub000/internal/common/logger"
	"github.com/SanOuhi99/RECT-v3-sub000/internal/credstore"
	"github.com/SanOuhi99/RECT-v3-sub000/internal/models"
)

// CompanyCredentials is the brokerage-scope login payload. Companies sign
// in with their company code, not an email.
type CompanyCredentials struct {
	CompanyCode string `json:"company_code"`
	Password    string `json:"password"`
}

// AddAgentRequest creates an agent seat under the company.
type AddAgentRequest struct {
	Name     string             `json:"name"`
	Email    string             `json:"email"`
	Password string             `json:"password"`
	Counties []models.Territory `json:"territories,omitempty"`
}

type agentStatusPatch struct {
	IsActive bool `json:"is_active"`
}

// CompanyManager is the brokerage-scope session manager plus its API surface.
type CompanyManager struct {
	*Manager[models.Company]
}

func NewCompanyManager(baseURL string, client *chttp.Client, store credstore.Store, log logger.Logger) *CompanyManager {
	return &CompanyManager{Manager: New[models.Company](ScopeCompany, baseURL, client, store, log)}
}

// ListAgents fetches the company's agent roster.
func (c *CompanyManager) ListAgents(ctx context.Context) ([]models.Agent, error) {
	var out []models.Agent
	if err := c.APIRequest(ctx, http.MethodGet, "/company/agents", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddAgent creates an agent under the company. Validation failures come
// back with the backend's field-level messages flattened into the error,
// on a best-effort basis.
func (c *CompanyManager) AddAgent(ctx context.Context, req AddAgentRequest) (*models.Agent, error) {
	var out models.Agent
	if err := c.APIRequest(ctx, http.MethodPost, "/company/agents", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetAgentActive toggles an agent seat on or off.
func (c *CompanyManager) SetAgentActive(ctx context.Context, agentID string, active bool) error {
	return c.APIRequest(ctx, http.MethodPut, "/company/agents/"+agentID+"/status", agentStatusPatch{IsActive: active}, nil)
}

// FetchStats fetches the company-wide dashboard summary.
func (c *CompanyManager) FetchStats(ctx context.Context) (*models.Stats, error) {
	var out models.Stats
	if err := c.APIRequest(ctx, http.MethodGet, "/company/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
