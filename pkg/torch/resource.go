package torch

import "acceld/internal/native"

// ResourceID identifies a registered resource within the runtime session.
// The zero value means "no identity assigned".
type ResourceID int64

// Valid reports whether the identity has been assigned.
func (id ResourceID) Valid() bool { return id > 0 }

// Resource is the capability set a registry needs to manage runtime resources
// of any kind uniformly: identity lookup, initialization check, raw handle
// access and destruction. SavedModel implements it; other resource kinds can
// join without the registry learning their concrete types.
type Resource interface {
	// ID returns the assigned identity, zero if none.
	ID() ResourceID
	// Initialized reports whether the resource is registered and usable.
	Initialized() bool
	// ResourceHandle exposes the raw runtime handle, false until registered.
	ResourceHandle() (native.Handle, bool)
	// Destroy releases the runtime object. Idempotent.
	Destroy() error
}
