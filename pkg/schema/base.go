package schema

// Category classifies a requirement by the kind of control it describes.
type Category string

const (
	CategoryTechnical   Category = "technical"   // Implemented in systems and code
	CategoryOperational Category = "operational" // Implemented in day-to-day process
	CategoryGovernance  Category = "governance"  // Policy, oversight, accountability
	CategoryCompliance  Category = "compliance"  // Mandated by an external framework
)

// Priority represents the requirement priority level.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Status represents the requirement lifecycle state.
type Status string

const (
	StatusDraft       Status = "draft"
	StatusActive      Status = "active"
	StatusImplemented Status = "implemented"
	StatusDeprecated  Status = "deprecated"
)

// Theme is a persisted UI preference; the data layer stores it opaquely.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// PurgeConfirmation is the literal phrase a caller must supply to erase
// both collections. Anything else rejects the purge.
const PurgeConfirmation = "ERASE ALL DATA"

// ValidationLimits defines the constraints for various fields.
const (
	RequirementTitleMin       = 1
	RequirementTitleMax       = 200
	RequirementDescriptionMax = 2000
	CapabilityNameMin         = 1
	CapabilityNameMax         = 200
	MaturityScoreMin          = 0.0
	MaturityScoreMax          = 5.0
)

// PriorityRank returns the ordering rank of a priority (low first).
// Unknown values rank below every valid one.
func PriorityRank(p Priority) int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityCritical:
		return 4
	default:
		return 0
	}
}

// StatusRank returns the lifecycle ordering rank of a status (draft first).
func StatusRank(s Status) int {
	switch s {
	case StatusDraft:
		return 1
	case StatusActive:
		return 2
	case StatusImplemented:
		return 3
	case StatusDeprecated:
		return 4
	default:
		return 0
	}
}
