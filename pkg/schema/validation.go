package schema

import "fmt"

// ValidateRequirement validates a requirement record.
func ValidateRequirement(r *Requirement) error {
	// Validate category
	switch r.Category {
	case CategoryTechnical, CategoryOperational, CategoryGovernance, CategoryCompliance:
		// Valid
	default:
		return fmt.Errorf("invalid category: %q", r.Category)
	}

	// Validate priority
	switch r.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		// Valid
	default:
		return fmt.Errorf("invalid priority: %q", r.Priority)
	}

	// Validate status
	switch r.Status {
	case StatusDraft, StatusActive, StatusImplemented, StatusDeprecated:
		// Valid
	default:
		return fmt.Errorf("invalid status: %q", r.Status)
	}

	// Validate title
	if len(r.Title) < RequirementTitleMin || len(r.Title) > RequirementTitleMax {
		return fmt.Errorf("title must be %d-%d characters", RequirementTitleMin, RequirementTitleMax)
	}

	// Validate description
	if len(r.Description) > RequirementDescriptionMax {
		return fmt.Errorf("description must be at most %d characters", RequirementDescriptionMax)
	}

	// Validate maturity score
	if r.Maturity.Score < MaturityScoreMin || r.Maturity.Score > MaturityScoreMax {
		return fmt.Errorf("maturity score must be between %.0f and %.0f", MaturityScoreMin, MaturityScoreMax)
	}

	// Framework ID without a framework name is meaningless
	if r.FrameworkID != "" && r.Framework == "" {
		return fmt.Errorf("framework_id set without framework")
	}

	return nil
}

// ValidateCapability validates a capability record.
func ValidateCapability(c *Capability) error {
	if len(c.Name) < CapabilityNameMin || len(c.Name) > CapabilityNameMax {
		return fmt.Errorf("name must be %d-%d characters", CapabilityNameMin, CapabilityNameMax)
	}
	return nil
}

// ValidateTheme reports whether a theme value is one of the known settings.
func ValidateTheme(t Theme) error {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return nil
	default:
		return fmt.Errorf("invalid theme: %q", t)
	}
}
