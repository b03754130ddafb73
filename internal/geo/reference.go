package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/xeipuuv/gojsonschema"

	cerrors "github.com/SanOuhi99/RECT-v3-sub000/internal/common/errors"
	chttp "github.com/SanOuhi99/RECT-v3-sub000/internal/common/http"
	"github.com/SanOuhi99/RECT-v3-sub000/internal/common/logger"
)

// County is one county entry in the geographic reference list.
type County struct {
	FIPS string `json:"county_FIPS"`
	Name string `json:"county_name"`
}

// State carries a state and its nested counties as served by the
// reference endpoint.
type State struct {
	FIPS     string   `json:"state_FIPS"`
	Name     string   `json:"state_name"`
	Counties []County `json:"counties"`
}

// referenceSchema describes the payload shape the reference endpoint is
// expected to serve. Validation failures surface as protocol errors so
// a half-broken deploy does not populate dropdowns with garbage.
var referenceSchema = map[string]interface{}{
	"type": "array",
	"items": map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"state_FIPS", "state_name", "counties"},
		"properties": map[string]interface{}{
			"state_FIPS": map[string]interface{}{"type": "string"},
			"state_name": map[string]interface{}{"type": "string"},
			"counties": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type":     "object",
					"required": []interface{}{"county_FIPS", "county_name"},
					"properties": map[string]interface{}{
						"county_FIPS": map[string]interface{}{"type": "string"},
						"county_name": map[string]interface{}{"type": "string"},
					},
				},
			},
		},
	},
}

// ReferenceClient fetches the state/county reference list. The list is
// fetched at most once and cached for the lifetime of the client.
type ReferenceClient struct {
	baseURL string
	client  *chttp.Client
	log     logger.Logger

	mu       sync.Mutex
	states   []State
	loaded   bool
	loadedAt time.Time
}

func NewReferenceClient(baseURL string, client *chttp.Client, log logger.Logger) *ReferenceClient {
	return &ReferenceClient{
		baseURL: baseURL,
		client:  client,
		log:     log.WithFields(map[string]interface{}{"component": "geo-reference"}),
	}
}

// Load returns the cached reference list, fetching it on first use.
func (r *ReferenceClient) Load(ctx context.Context) ([]State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loaded {
		return r.states, nil
	}

	states, err := r.fetch(ctx)
	if err != nil {
		return nil, err
	}

	r.states = states
	r.loaded = true
	r.loadedAt = time.Now()
	r.log.Info("Loaded geographic reference", map[string]interface{}{
		"states": len(states),
	})
	return r.states, nil
}

// CountiesFor returns the counties of the state with the given FIPS
// code, or nil when the state is unknown.
func (r *ReferenceClient) CountiesFor(ctx context.Context, stateFIPS string) ([]County, error) {
	states, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range states {
		if s.FIPS == stateFIPS {
			return s.Counties, nil
		}
	}
	return nil, nil
}

func (r *ReferenceClient) fetch(ctx context.Context) ([]State, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/states_counties", nil)
	if err != nil {
		return nil, fmt.Errorf("build reference request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, cerrors.NewNetwork(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, cerrors.NewNetwork(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, cerrors.NewHTTP(resp.StatusCode, cerrors.ExtractMessage(body, resp.Status))
	}

	if err := validateReference(body); err != nil {
		return nil, err
	}

	var states []State
	if err := json.Unmarshal(body, &states); err != nil {
		return nil, cerrors.NewProtocol(fmt.Sprintf("parse reference payload: %v", err))
	}
	return states, nil
}

func validateReference(body []byte) error {
	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return cerrors.NewProtocol(fmt.Sprintf("reference payload is not JSON: %v", err))
	}

	schemaLoader := gojsonschema.NewGoLoader(referenceSchema)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return cerrors.NewProtocol(fmt.Sprintf("reference schema check: %v", err))
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return cerrors.NewProtocol(fmt.Sprintf("reference payload invalid: %v", errs))
	}
	return nil
}
