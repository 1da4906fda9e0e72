package torch

import "acceld/internal/native"

// handleRef is a runtime handle tagged with its ownership. Release dispatches
// on the tag: an owned handle is destroyed exactly once, a borrowed handle is
// only forgotten. This replaces the ownership boolean the runtime API implies
// with a construct that cannot double-free.
type handleRef struct {
	h     native.Handle
	owned bool
}

func ownedHandle(h native.Handle) handleRef    { return handleRef{h: h, owned: true} }
func borrowedHandle(h native.Handle) handleRef { return handleRef{h: h, owned: false} }

func (r *handleRef) valid() bool { return r.h != native.InvalidHandle }

// release neutralizes the reference. destroy runs at most once, and only for
// an owned handle. Safe to call repeatedly.
func (r *handleRef) release(destroy func(native.Handle)) {
	if r.h == native.InvalidHandle {
		return
	}
	if r.owned {
		destroy(r.h)
	}
	r.h = native.InvalidHandle
}
