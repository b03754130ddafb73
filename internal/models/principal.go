package models

// Territory is a geographic assignment carried on an agent's profile: one
// state and the counties worked within it.
type Territory struct {
	State    string   `json:"state"`
	Counties []string `json:"counties"`
}

// User is the principal for the agent scope.
type User struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	CompanyID   string      `json:"company_id,omitempty"`
	Territories []Territory `json:"territories,omitempty"`
}

// Company is the principal for the brokerage scope. Companies authenticate
// with a company code rather than an email.
type Company struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CompanyCode string `json:"company_code"`
	Email       string `json:"email,omitempty"`
	SeatLimit   int    `json:"seat_limit,omitempty"`
}

// Admin is the principal for the system administrator scope.
type Admin struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Agent is a company-scoped view of one of its users, as returned by the
// company roster endpoints.
type Agent struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}
