package torch

import (
	"unsafe"

	"acceld/internal/native"
)

// Tensor is a typed, dimensioned view over a runtime tensor object. The
// element data lives on the runtime side; Data returns a view straight over
// that allocation, so element writes are visible to the runtime without any
// flush step.
type Tensor[T Element] struct {
	ref   handleRef
	dims  []int64
	count int
}

// New allocates a fresh, zero-initialized tensor sized for product(dims)
// elements of type T. The wrapper owns the runtime object.
func New[T Element](dims []int64) (*Tensor[T], error) {
	count, err := elementCount[T](dims)
	if err != nil {
		return nil, err
	}
	h := native.Default.TensorNew(dims, uint32(DataTypeOf[T]()))
	if h == native.InvalidHandle {
		return nil, errRuntimef(CodeInternal, "tensor allocation failed")
	}
	if code := native.Default.TensorSetData(h, make([]byte, count*elementSize[T]())); code != native.OK {
		native.Default.TensorDestroy(h)
		return nil, ErrRuntime(Code(code))
	}
	return &Tensor[T]{
		ref:   ownedHandle(h),
		dims:  append([]int64(nil), dims...),
		count: count,
	}, nil
}

// FromNative imports an existing runtime tensor as a borrowed view: the
// producer of the handle keeps ownership and Release will not destroy it.
// Fails if the handle is invalid or its recorded element-type tag does not
// match T.
func FromNative[T Element](h native.Handle) (*Tensor[T], error) {
	return imported[T](h, false)
}

// Adopt imports an existing runtime tensor and takes ownership of it, for
// callers that receive runtime-produced tensors to keep.
func Adopt[T Element](h native.Handle) (*Tensor[T], error) {
	return imported[T](h, true)
}

func imported[T Element](h native.Handle, owned bool) (*Tensor[T], error) {
	if h == native.InvalidHandle {
		return nil, ErrInvalidArgument("nil tensor handle")
	}
	dt, ok := native.Default.TensorDType(h)
	if !ok {
		return nil, ErrInvalidArgument("unknown tensor handle")
	}
	if DataType(dt) != DataTypeOf[T]() {
		return nil, ErrInvalidArgument("tensor is " + DataType(dt).String() + ", want " + DataTypeOf[T]().String())
	}
	dims := native.Default.TensorDims(h)
	count, err := elementCount[T](dims)
	if err != nil {
		return nil, err
	}
	need := count * elementSize[T]()
	// A tensor may arrive without a backing region; substitute zeros of the
	// right length so the view never dereferences nothing. A region shorter
	// than the dimensions require would make the view read past it, so it is
	// rejected before any element access.
	data := native.Default.TensorData(h)
	switch {
	case data == nil:
		if code := native.Default.TensorSetData(h, make([]byte, need)); code != native.OK {
			return nil, ErrRuntime(Code(code))
		}
	case len(data) < need:
		return nil, ErrInvalidArgument("tensor data shorter than dimensions require")
	}
	t := &Tensor[T]{dims: dims, count: count}
	if owned {
		t.ref = ownedHandle(h)
	} else {
		t.ref = borrowedHandle(h)
	}
	return t, nil
}

// SetData overwrites the tensor's elements in place, preserving identity and
// dimensions. Fails when len(data) disagrees with the element count.
func (t *Tensor[T]) SetData(data []T) error {
	if len(data) != t.count {
		return ErrInvalidArgument("data length mismatch")
	}
	copy(t.Data(), data)
	return nil
}

// Data returns the element sequence as a view backed by the runtime
// allocation. Mutations through the view are seen by the runtime.
func (t *Tensor[T]) Data() []T {
	if !t.ref.valid() || t.count == 0 {
		return nil
	}
	b := native.Default.TensorData(t.ref.h)
	if len(b) == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), t.count)
}

// NumDims returns the tensor's rank.
func (t *Tensor[T]) NumDims() int { return len(t.dims) }

// Dims returns a copy of the dimension sizes.
func (t *Tensor[T]) Dims() []int64 { return append([]int64(nil), t.dims...) }

// Dim returns the size of dimension idx.
func (t *Tensor[T]) Dim(idx int) (int64, error) {
	if idx < 0 || idx >= len(t.dims) {
		return 0, outOfRangeError{index: idx, dims: len(t.dims)}
	}
	return t.dims[idx], nil
}

// DataType returns the static element-type tag.
func (t *Tensor[T]) DataType() DataType { return DataTypeOf[T]() }

// Handle exposes the runtime handle for call layers that pass tensors onward.
func (t *Tensor[T]) Handle() native.Handle { return t.ref.h }

// Release destroys the runtime object for owned tensors and forgets the
// handle for borrowed ones. Idempotent.
func (t *Tensor[T]) Release() {
	t.ref.release(func(h native.Handle) {
		native.Default.TensorDestroy(h)
	})
}
