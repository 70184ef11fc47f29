package schema

import "time"

// MaturityLevel captures how far a requirement's implementation has matured.
// Score is on a 0-5 scale; Level is a free-text band name (e.g. "defined").
type MaturityLevel struct {
	Level string  `json:"level" yaml:"level"`
	Score float64 `json:"score" yaml:"score"`
}

// Requirement represents a single tracked compliance obligation.
type Requirement struct {
	ID                 string        `json:"id" yaml:"id"`
	Title              string        `json:"title" yaml:"title"`
	Description        string        `json:"description" yaml:"description"`
	Category           Category      `json:"category" yaml:"category"`
	Priority           Priority      `json:"priority" yaml:"priority"`
	Status             Status        `json:"status" yaml:"status"`
	Framework          string        `json:"framework" yaml:"framework"`
	FrameworkID        string        `json:"framework_id" yaml:"framework_id"`
	CapabilityIDs      []string      `json:"capability_ids" yaml:"capability_ids"`
	EvidenceIDs        []string      `json:"evidence_ids" yaml:"evidence_ids"`
	Tags               []string      `json:"tags" yaml:"tags"`
	Rationale          string        `json:"rationale" yaml:"rationale"`
	Maturity           MaturityLevel `json:"maturity" yaml:"maturity"`
	BusinessValueScore float64       `json:"business_value_score" yaml:"business_value_score"`
	CostEstimate       float64       `json:"cost_estimate" yaml:"cost_estimate"`
	CreatedAt          time.Time     `json:"created_at" yaml:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at" yaml:"updated_at"`
}

// Clone returns a deep copy. Published state snapshots are never mutated,
// so every mutation path works on a clone.
func (r Requirement) Clone() Requirement {
	c := r
	c.CapabilityIDs = append([]string(nil), r.CapabilityIDs...)
	c.EvidenceIDs = append([]string(nil), r.EvidenceIDs...)
	c.Tags = append([]string(nil), r.Tags...)
	return c
}

// RequirementDraft is the caller-supplied payload for creating a requirement.
// Identity and timestamps are assigned by the store, never by the caller.
type RequirementDraft struct {
	Title              string        `json:"title" yaml:"title"`
	Description        string        `json:"description" yaml:"description"`
	Category           Category      `json:"category" yaml:"category"`
	Priority           Priority      `json:"priority" yaml:"priority"`
	Status             Status        `json:"status" yaml:"status"`
	Framework          string        `json:"framework" yaml:"framework"`
	FrameworkID        string        `json:"framework_id" yaml:"framework_id"`
	EvidenceIDs        []string      `json:"evidence_ids" yaml:"evidence_ids"`
	Tags               []string      `json:"tags" yaml:"tags"`
	Rationale          string        `json:"rationale" yaml:"rationale"`
	Maturity           MaturityLevel `json:"maturity" yaml:"maturity"`
	BusinessValueScore float64       `json:"business_value_score" yaml:"business_value_score"`
	CostEstimate       float64       `json:"cost_estimate" yaml:"cost_estimate"`
}

// RequirementPatch is a partial update; nil fields are left unchanged.
// CapabilityIDs are deliberately absent: links change only through the
// link action so referential integrity is checked in one place.
type RequirementPatch struct {
	Title              *string        `json:"title,omitempty" yaml:"title,omitempty"`
	Description        *string        `json:"description,omitempty" yaml:"description,omitempty"`
	Category           *Category      `json:"category,omitempty" yaml:"category,omitempty"`
	Priority           *Priority      `json:"priority,omitempty" yaml:"priority,omitempty"`
	Status             *Status        `json:"status,omitempty" yaml:"status,omitempty"`
	Framework          *string        `json:"framework,omitempty" yaml:"framework,omitempty"`
	FrameworkID        *string        `json:"framework_id,omitempty" yaml:"framework_id,omitempty"`
	EvidenceIDs        []string       `json:"evidence_ids,omitempty" yaml:"evidence_ids,omitempty"`
	Tags               []string       `json:"tags,omitempty" yaml:"tags,omitempty"`
	Rationale          *string        `json:"rationale,omitempty" yaml:"rationale,omitempty"`
	Maturity           *MaturityLevel `json:"maturity,omitempty" yaml:"maturity,omitempty"`
	BusinessValueScore *float64       `json:"business_value_score,omitempty" yaml:"business_value_score,omitempty"`
	CostEstimate       *float64       `json:"cost_estimate,omitempty" yaml:"cost_estimate,omitempty"`
}

// Apply merges the patch into a copy of the requirement and returns it.
// The receiver is not modified.
func (p RequirementPatch) Apply(r Requirement) Requirement {
	out := r.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.Priority != nil {
		out.Priority = *p.Priority
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.Framework != nil {
		out.Framework = *p.Framework
	}
	if p.FrameworkID != nil {
		out.FrameworkID = *p.FrameworkID
	}
	if p.EvidenceIDs != nil {
		out.EvidenceIDs = append([]string(nil), p.EvidenceIDs...)
	}
	if p.Tags != nil {
		out.Tags = append([]string(nil), p.Tags...)
	}
	if p.Rationale != nil {
		out.Rationale = *p.Rationale
	}
	if p.Maturity != nil {
		out.Maturity = *p.Maturity
	}
	if p.BusinessValueScore != nil {
		out.BusinessValueScore = *p.BusinessValueScore
	}
	if p.CostEstimate != nil {
		out.CostEstimate = *p.CostEstimate
	}
	return out
}
