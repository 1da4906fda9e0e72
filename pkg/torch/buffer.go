package torch

import "acceld/internal/native"

// Buffer wraps an opaque runtime byte region independent of tensor typing.
// Exactly one side owns the backing data: a buffer built from caller bytes
// keeps data ownership with the caller, an imported runtime buffer leaves it
// with the runtime. That flag is consulted once, on release.
type Buffer struct {
	ref handleRef
	// runtimeOwnsData records which side must release the backing region.
	runtimeOwnsData bool
}

// NewBuffer wraps caller-provided bytes in a runtime buffer object. The data
// stays caller-owned; only the handle object belongs to the wrapper.
func NewBuffer(data []byte) (*Buffer, error) {
	h := native.Default.BufferNew(data)
	if h == native.InvalidHandle {
		return nil, errRuntimef(CodeInternal, "buffer allocation failed")
	}
	return &Buffer{ref: ownedHandle(h), runtimeOwnsData: false}, nil
}

// BufferFromNative imports a runtime-produced buffer, data and all. Fails if
// the buffer has no attached data or reports zero size.
func BufferFromNative(h native.Handle) (*Buffer, error) {
	if h == native.InvalidHandle {
		return nil, ErrInvalidArgument("nil buffer handle")
	}
	data := native.Default.BufferData(h)
	if len(data) == 0 {
		return nil, ErrInvalidArgument("buffer has no data")
	}
	return &Buffer{ref: ownedHandle(h), runtimeOwnsData: true}, nil
}

// Bytes returns a view over the buffer's current data region. Size is
// re-queried from the runtime on every call since it may resize the region.
func (b *Buffer) Bytes() []byte {
	if !b.ref.valid() {
		return nil
	}
	return native.Default.BufferData(b.ref.h)
}

// MutableBytes is Bytes for writers; the view aliases runtime memory either
// way.
func (b *Buffer) MutableBytes() []byte { return b.Bytes() }

// Handle exposes the runtime handle for call layers that pass buffers onward.
func (b *Buffer) Handle() native.Handle { return b.ref.h }

// Release destroys the buffer handle. When the data is not runtime-owned it
// is detached first, so the runtime destructor cannot free a region the
// wrapper never owned. Idempotent.
func (b *Buffer) Release() {
	if !b.ref.valid() {
		return
	}
	if !b.runtimeOwnsData {
		native.Default.BufferTakeData(b.ref.h)
	}
	b.ref.release(func(h native.Handle) {
		native.Default.BufferDestroy(h)
	})
}
