package models

import (
	"strconv"
	"strings"
	"time"
)

// PropertyRecord is a read-only snapshot of a matched property as delivered
// by the backend. The collection is fetched wholesale per session and
// treated as immutable until the next refresh or an explicit delete.
type PropertyRecord struct {
	ID           string     `json:"id"`
	Address      string     `json:"address"`
	State        string     `json:"state"`
	County       string     `json:"county"`
	OwnerName    string     `json:"owner_name,omitempty"`
	SellerName   string     `json:"seller_name,omitempty"`
	OwnerEmail   string     `json:"owner_email,omitempty"`
	OwnerPhone   string     `json:"owner_phone,omitempty"`
	MatchPercent string     `json:"match_percent,omitempty"` // e.g. "85%"
	CreatedAt    time.Time  `json:"created_at"`
	ContractDate *time.Time `json:"contract_date,omitempty"`
}

// EffectiveDate returns the contract date when present, else the creation
// timestamp. Date-range filtering and date sorting both project through it.
func (p *PropertyRecord) EffectiveDate() time.Time {
	if p.ContractDate != nil {
		return *p.ContractDate
	}
	return p.CreatedAt
}

// MatchValue parses the match-quality percentage string into an integer,
// defaulting to 0 when the field is absent or unparseable.
func (p *PropertyRecord) MatchValue() int {
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(p.MatchPercent), "%"))
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// HasContact reports whether any contact information is present.
func (p *PropertyRecord) HasContact() bool {
	return p.OwnerEmail != "" || p.OwnerPhone != ""
}

// Location renders the "County, State" projection used by location sorting.
func (p *PropertyRecord) Location() string {
	switch {
	case p.County != "" && p.State != "":
		return p.County + ", " + p.State
	case p.County != "":
		return p.County
	default:
		return p.State
	}
}

// Stats is the precomputed dashboard summary served by the backend stats
// endpoints.
type Stats struct {
	TotalMatches  int `json:"total_matches"`
	NewThisWeek   int `json:"new_this_week"`
	NewThisMonth  int `json:"new_this_month"`
	ActiveAgents  int `json:"active_agents,omitempty"`
	PendingDeeds  int `json:"pending_deeds,omitempty"`
	ContractsOpen int `json:"contracts_open,omitempty"`
}
