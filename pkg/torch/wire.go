package torch

import (
	"acceld/internal/native"
	"acceld/pkg/types"
)

// Wire produces the serializable form of the tensor for handoff to the
// dispatch layer: dimensions, element-type tag and a copy of the raw bytes.
// Pure read; the tensor is left untouched.
func (t *Tensor[T]) Wire() types.WireTensor {
	size := t.count * elementSize[T]()
	data := make([]byte, size)
	if t.ref.valid() {
		copy(data, native.Default.TensorData(t.ref.h))
	}
	return types.WireTensor{
		Dims:  t.Dims(),
		DType: uint32(DataTypeOf[T]()),
		Data:  data,
	}
}

// FromWire rebuilds a tensor from its wire form. Fails when the recorded tag
// disagrees with T or the byte length disagrees with the dimensions.
func FromWire[T Element](w types.WireTensor) (*Tensor[T], error) {
	if DataType(w.DType) != DataTypeOf[T]() {
		return nil, ErrInvalidArgument("wire tensor is " + DataType(w.DType).String() + ", want " + DataTypeOf[T]().String())
	}
	count, err := elementCount[T](w.Dims)
	if err != nil {
		return nil, err
	}
	if len(w.Data) != count*elementSize[T]() {
		return nil, ErrInvalidArgument("wire data length mismatch")
	}
	t, err := New[T](w.Dims)
	if err != nil {
		return nil, err
	}
	copy(native.Default.TensorData(t.ref.h), w.Data)
	return t, nil
}
