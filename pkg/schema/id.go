package schema

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// NewRequirementID generates a new requirement ID in format REQ-{nanoid(10)}.
func NewRequirementID() (string, error) {
	id, err := gonanoid.New(10)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("REQ-%s", id), nil
}

// NewCapabilityID generates a new capability ID in format CAP-{nanoid(10)}.
func NewCapabilityID() (string, error) {
	id, err := gonanoid.New(10)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("CAP-%s", id), nil
}

// NewEvidenceID generates a new evidence ID in format EVD-{nanoid(10)}.
func NewEvidenceID() (string, error) {
	id, err := gonanoid.New(10)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("EVD-%s", id), nil
}
