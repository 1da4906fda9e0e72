package registry

import (
	"fmt"
	"sync"

	"acceld/pkg/torch"
)

// Resources tracks live runtime resources by identity, behind the
// torch.Resource capability set. It never inspects concrete resource types,
// so any resource kind implementing the interface can be held.
type Resources struct {
	mu   sync.Mutex
	byID map[torch.ResourceID]torch.Resource
}

// NewResources returns an empty registry.
func NewResources() *Resources {
	return &Resources{byID: make(map[torch.ResourceID]torch.Resource)}
}

// Put records an initialized resource under its identity.
func (r *Resources) Put(res torch.Resource) error {
	if !res.Initialized() {
		return fmt.Errorf("resource not initialized")
	}
	id := res.ID()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[id]; exists {
		return fmt.Errorf("resource %d already registered", id)
	}
	r.byID[id] = res
	return nil
}

// Get looks a resource up by identity.
func (r *Resources) Get(id torch.ResourceID) (torch.Resource, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.byID[id]
	return res, ok
}

// Remove forgets a resource without destroying it.
func (r *Resources) Remove(id torch.ResourceID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
}

// Len returns the number of tracked resources.
func (r *Resources) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// DestroyAll destroys every tracked resource and empties the registry. The
// first destruction error is returned; destruction continues regardless.
func (r *Resources) DestroyAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var first error
	for id, res := range r.byID {
		if err := res.Destroy(); err != nil && first == nil {
			first = err
		}
		delete(r.byID, id)
	}
	return first
}
