// Package storage provides the persistence adapter boundary: named slices of
// opaque bytes behind Load/Save/Delete. The store mirrors its state here
// best-effort; in-memory state is the authority and a failed write never
// rolls it back.
package storage

import "errors"

// ErrNotFound signals an absent slice. Callers treat absence as "use
// defaults", never as a failure.
var ErrNotFound = errors.New("slice not found")

// Slice keys. One independently loaded/saved slice per key.
const (
	KeyRequirements   = "requirements"
	KeyCapabilities   = "capabilities"
	KeyCompanyProfile = "company_profile"
	KeySettings       = "settings"
	KeyTheme          = "theme"
	KeySidebar        = "sidebar_open"
)

// SliceKeys lists every known slice key.
var SliceKeys = []string{
	KeyRequirements,
	KeyCapabilities,
	KeyCompanyProfile,
	KeySettings,
	KeyTheme,
	KeySidebar,
}

// Adapter is the durable storage boundary. Implementations must round-trip
// exactly the bytes they were given.
type Adapter interface {
	// Load returns the stored bytes for a slice, or ErrNotFound.
	Load(key string) ([]byte, error)
	// Save durably stores the bytes for a slice, replacing any prior value.
	Save(key string, data []byte) error
	// Delete removes a slice. Deleting an absent slice is not an error.
	Delete(key string) error
	// Close releases any underlying resources.
	Close() error
}
