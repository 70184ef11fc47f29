package schema

import "time"

// Capability represents an organizational capability that can satisfy one or
// more requirements. The relation is non-owning: requirements hold the forward
// reference in CapabilityIDs; capabilities carry no pointer back.
type Capability struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Owner       string    `json:"owner" yaml:"owner"`
	Tags        []string  `json:"tags" yaml:"tags"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

// Clone returns a deep copy.
func (c Capability) Clone() Capability {
	out := c
	out.Tags = append([]string(nil), c.Tags...)
	return out
}

// CapabilityDraft is the caller-supplied payload for creating a capability.
type CapabilityDraft struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Owner       string   `json:"owner" yaml:"owner"`
	Tags        []string `json:"tags" yaml:"tags"`
}

// CapabilityPatch is a partial update; nil fields are left unchanged.
type CapabilityPatch struct {
	Name        *string  `json:"name,omitempty" yaml:"name,omitempty"`
	Description *string  `json:"description,omitempty" yaml:"description,omitempty"`
	Owner       *string  `json:"owner,omitempty" yaml:"owner,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Apply merges the patch into a copy of the capability and returns it.
func (p CapabilityPatch) Apply(c Capability) Capability {
	out := c.Clone()
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Owner != nil {
		out.Owner = *p.Owner
	}
	if p.Tags != nil {
		out.Tags = append([]string(nil), p.Tags...)
	}
	return out
}
