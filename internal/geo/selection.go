package geo

import (
	cerrors "github.com/SanOuhi99/RECT-v3-sub000/internal/common/errors"
)

// SelectedCounty is one committed county inside a state entry.
type SelectedCounty struct {
	FIPS string `json:"county_FIPS"`
	Name string `json:"county_name"`
}

// SelectedState groups the committed counties of one state. A state
// entry exists only while it holds at least one county.
type SelectedState struct {
	FIPS     string           `json:"state_FIPS"`
	Name     string           `json:"state_name"`
	Counties []SelectedCounty `json:"counties"`
}

// Staging is the pending {state, county} pair a user has picked but not
// yet committed. Either field may be empty until Commit validates it.
type Staging struct {
	State  *State
	County *County
}

// Selection is the committed state/county tree. Entries keep insertion
// order; state FIPS codes are unique, and county FIPS codes are unique
// within their state.
type Selection struct {
	entries []SelectedState
}

func NewSelection() *Selection {
	return &Selection{}
}

// Entries returns a copy of the committed entries so callers cannot
// mutate the tree behind the invariant checks.
func (s *Selection) Entries() []SelectedState {
	out := make([]SelectedState, len(s.entries))
	for i, e := range s.entries {
		counties := make([]SelectedCounty, len(e.Counties))
		copy(counties, e.Counties)
		out[i] = SelectedState{FIPS: e.FIPS, Name: e.Name, Counties: counties}
	}
	return out
}

func (s *Selection) Len() int {
	return len(s.entries)
}

// CountyCount returns the total number of committed counties across all
// states.
func (s *Selection) CountyCount() int {
	n := 0
	for _, e := range s.entries {
		n += len(e.Counties)
	}
	return n
}

// Commit merges a staged pair into the tree. Missing fields and
// duplicate counties are reported as validation errors so the form can
// render them inline.
func (s *Selection) Commit(staging Staging) error {
	if staging.State == nil || staging.State.FIPS == "" {
		return cerrors.NewValidation("select a state first")
	}
	if staging.County == nil || staging.County.FIPS == "" {
		return cerrors.NewValidation("select a county first")
	}

	for i, e := range s.entries {
		if e.FIPS != staging.State.FIPS {
			continue
		}
		for _, c := range e.Counties {
			if c.FIPS == staging.County.FIPS {
				return cerrors.NewValidation(c.Name + " is already selected in " + e.Name)
			}
		}
		s.entries[i].Counties = append(s.entries[i].Counties, SelectedCounty{
			FIPS: staging.County.FIPS,
			Name: staging.County.Name,
		})
		return nil
	}

	s.entries = append(s.entries, SelectedState{
		FIPS: staging.State.FIPS,
		Name: staging.State.Name,
		Counties: []SelectedCounty{{
			FIPS: staging.County.FIPS,
			Name: staging.County.Name,
		}},
	})
	return nil
}

// Remove deletes the county at (stateIndex, countyIndex). Removing the
// last county of a state drops the state entry as well. Out-of-range
// indexes are validation errors, not panics, because the indexes come
// from UI rows that may be stale.
func (s *Selection) Remove(stateIndex, countyIndex int) error {
	if stateIndex < 0 || stateIndex >= len(s.entries) {
		return cerrors.NewValidation("state selection no longer exists")
	}
	entry := &s.entries[stateIndex]
	if countyIndex < 0 || countyIndex >= len(entry.Counties) {
		return cerrors.NewValidation("county selection no longer exists")
	}

	entry.Counties = append(entry.Counties[:countyIndex], entry.Counties[countyIndex+1:]...)
	if len(entry.Counties) == 0 {
		s.entries = append(s.entries[:stateIndex], s.entries[stateIndex+1:]...)
	}
	return nil
}
