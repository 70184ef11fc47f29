package store

import (
	"compdash/internal/views"
	"compdash/pkg/schema"
)

// DerivedView is the display projection of the raw collection: the
// filtered/searched/sorted list plus the dashboard aggregates.
type DerivedView struct {
	Requirements []schema.Requirement
	Aggregates   views.Aggregates
}

// State is one immutable snapshot of the entire data layer. Published
// snapshots are never mutated; every action reduces a clone and swaps it in
// on success.
type State struct {
	Requirements []schema.Requirement
	Capabilities []schema.Capability
	Criteria     views.Criteria
	Profile      schema.CompanyProfile
	Settings     schema.Settings
	UI           schema.UIState
	View         DerivedView
}

// NewState returns the default empty state.
func NewState() *State {
	return &State{
		Requirements: []schema.Requirement{},
		Capabilities: []schema.Capability{},
		Criteria:     views.DefaultCriteria(),
		Settings:     schema.DefaultSettings(),
		UI:           schema.DefaultUIState(),
	}
}

// Clone creates a deep copy of the raw state. The derived view is not
// copied; it is recomputed after the reduce step.
func (s *State) Clone() *State {
	clone := &State{
		Requirements: make([]schema.Requirement, len(s.Requirements)),
		Capabilities: make([]schema.Capability, len(s.Capabilities)),
		Criteria:     s.Criteria.Clone(),
		Profile:      s.Profile,
		Settings:     s.Settings,
		UI:           s.UI,
	}
	for i, r := range s.Requirements {
		clone.Requirements[i] = r.Clone()
	}
	for i, c := range s.Capabilities {
		clone.Capabilities[i] = c.Clone()
	}
	return clone
}

// requirementIndex returns the position of a requirement by id, or -1.
func (s *State) requirementIndex(id string) int {
	for i := range s.Requirements {
		if s.Requirements[i].ID == id {
			return i
		}
	}
	return -1
}

// capabilityIndex returns the position of a capability by id, or -1.
func (s *State) capabilityIndex(id string) int {
	for i := range s.Capabilities {
		if s.Capabilities[i].ID == id {
			return i
		}
	}
	return -1
}

// capabilityReferencedBy returns the id of the first requirement referencing
// the capability, or "".
func (s *State) capabilityReferencedBy(capID string) string {
	for i := range s.Requirements {
		for _, id := range s.Requirements[i].CapabilityIDs {
			if id == capID {
				return s.Requirements[i].ID
			}
		}
	}
	return ""
}
