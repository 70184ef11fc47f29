package store

import (
	"compdash/internal/views"
	"compdash/pkg/schema"
)

// Action is the closed set of state transitions the store accepts. The
// unexported marker method keeps the set closed so the reducer switch is
// exhaustive by construction.
type Action interface {
	ActionType() string
	isAction()
}

// LoadCollections replaces all slices from the persistence adapter. Absent
// slices fall back to defaults; corruption degrades to defaults with a
// warning, never an error.
type LoadCollections struct{}

// CreateRequirement appends a new requirement built from the draft. Identity
// and timestamps are assigned by the store.
type CreateRequirement struct {
	Draft schema.RequirementDraft
}

// UpdateRequirement merges the patch into an existing requirement and bumps
// UpdatedAt.
type UpdateRequirement struct {
	ID    string
	Patch schema.RequirementPatch
}

// DeleteRequirement removes a requirement.
type DeleteRequirement struct {
	ID string
}

// CreateCapability appends a new capability built from the draft.
type CreateCapability struct {
	Draft schema.CapabilityDraft
}

// UpdateCapability merges the patch into an existing capability.
type UpdateCapability struct {
	ID    string
	Patch schema.CapabilityPatch
}

// DeleteCapability removes a capability. Deletion is rejected while any
// requirement still references it.
type DeleteCapability struct {
	ID string
}

// LinkCapabilities sets a requirement's capability references. Every id must
// resolve to an existing capability or the whole action is rejected. With
// Replace false the ids are unioned into the existing set; with Replace true
// they replace it.
type LinkCapabilities struct {
	RequirementID string
	CapabilityIDs []string
	Replace       bool
}

// SetFilters shallow-merges the given fields into the current filter
// criteria.
type SetFilters struct {
	Filters map[string]string
}

// SetSearchTerm replaces the search term.
type SetSearchTerm struct {
	Term string
}

// SetSort replaces the sort specification.
type SetSort struct {
	Field     string
	Direction views.Direction
}

// ImportCSV admits valid rows from CSV text and reports rejects per row; one
// bad row never aborts the batch.
type ImportCSV struct {
	Text string
}

// ExportCSV renders the collection as CSV text. With FilteredOnly the
// current derived view is exported instead of the raw collection.
type ExportCSV struct {
	FilteredOnly bool
}

// UpdateCompanyProfile replaces the company profile slice.
type UpdateCompanyProfile struct {
	Profile schema.CompanyProfile
}

// UpdateSettings replaces the settings slice.
type UpdateSettings struct {
	Settings schema.Settings
}

// SetTheme replaces the persisted theme preference.
type SetTheme struct {
	Theme schema.Theme
}

// SetSidebarOpen replaces the persisted sidebar preference.
type SetSidebarOpen struct {
	Open bool
}

// PurgeAll clears both collections and deletes their persisted slices.
// Confirmation must equal schema.PurgeConfirmation exactly.
type PurgeAll struct {
	Confirmation string
}

func (LoadCollections) ActionType() string      { return "LoadCollections" }
func (CreateRequirement) ActionType() string    { return "CreateRequirement" }
func (UpdateRequirement) ActionType() string    { return "UpdateRequirement" }
func (DeleteRequirement) ActionType() string    { return "DeleteRequirement" }
func (CreateCapability) ActionType() string     { return "CreateCapability" }
func (UpdateCapability) ActionType() string     { return "UpdateCapability" }
func (DeleteCapability) ActionType() string     { return "DeleteCapability" }
func (LinkCapabilities) ActionType() string     { return "LinkCapabilities" }
func (SetFilters) ActionType() string           { return "SetFilters" }
func (SetSearchTerm) ActionType() string        { return "SetSearchTerm" }
func (SetSort) ActionType() string              { return "SetSort" }
func (ImportCSV) ActionType() string            { return "ImportCSV" }
func (ExportCSV) ActionType() string            { return "ExportCSV" }
func (UpdateCompanyProfile) ActionType() string { return "UpdateCompanyProfile" }
func (UpdateSettings) ActionType() string       { return "UpdateSettings" }
func (SetTheme) ActionType() string             { return "SetTheme" }
func (SetSidebarOpen) ActionType() string       { return "SetSidebarOpen" }
func (PurgeAll) ActionType() string             { return "PurgeAll" }

func (LoadCollections) isAction()      {}
func (CreateRequirement) isAction()    {}
func (UpdateRequirement) isAction()    {}
func (DeleteRequirement) isAction()    {}
func (CreateCapability) isAction()     {}
func (UpdateCapability) isAction()     {}
func (DeleteCapability) isAction()     {}
func (LinkCapabilities) isAction()     {}
func (SetFilters) isAction()           {}
func (SetSearchTerm) isAction()        {}
func (SetSort) isAction()              {}
func (ImportCSV) isAction()            {}
func (ExportCSV) isAction()            {}
func (UpdateCompanyProfile) isAction() {}
func (UpdateSettings) isAction()       {}
func (SetTheme) isAction()             {}
func (SetSidebarOpen) isAction()       {}
func (PurgeAll) isAction()             {}
