// Package session owns the auth lifecycle for one principal scope: restore
// from the credential store, silent re-validation, login/logout, and the
// authenticated request chokepoint every scope-specific call routes through.
package session

// Scope identifies one of the three disjoint principal scopes. Endpoint
// paths and storage keys are derived from the name so the three instances
// can never drift apart.
type Scope struct {
	Name string
}

var (
	ScopeUser    = Scope{Name: "user"}
	ScopeCompany = Scope{Name: "company"}
	ScopeAdmin   = Scope{Name: "admin"}
)

func (s Scope) LoginPath() string   { return "/" + s.Name + "/login" }
func (s Scope) MePath() string      { return "/" + s.Name + "/me" }
func (s Scope) ProfilePath() string { return "/" + s.Name + "/me" }
