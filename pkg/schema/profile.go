package schema

import "time"

// CompanyProfile is the organization-level slice persisted alongside the
// collections.
type CompanyProfile struct {
	Name      string    `json:"name" yaml:"name"`
	Industry  string    `json:"industry" yaml:"industry"`
	Size      string    `json:"size" yaml:"size"`
	Contact   string    `json:"contact" yaml:"contact"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Settings is the persisted application-settings slice.
type Settings struct {
	Autosave         bool   `json:"autosave" yaml:"autosave"`
	DefaultFramework string `json:"default_framework" yaml:"default_framework"`
}

// DefaultSettings returns the settings used when no slice has been persisted.
func DefaultSettings() Settings {
	return Settings{Autosave: true}
}

// UIState holds presentation preferences the data layer persists but never
// interprets.
type UIState struct {
	Theme       Theme `json:"theme" yaml:"theme"`
	SidebarOpen bool  `json:"sidebar_open" yaml:"sidebar_open"`
}

// DefaultUIState returns the UI preferences used when no slice has been
// persisted.
func DefaultUIState() UIState {
	return UIState{Theme: ThemeSystem, SidebarOpen: true}
}
