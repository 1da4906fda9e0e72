package dispatch

import (
	"github.com/d4l3k/go-bfloat16"
	"github.com/x448/float16"

	"acceld/internal/native"
	"acceld/pkg/torch"
	"acceld/pkg/types"
)

// importWire materializes a wire tensor as a runtime tensor of the tag it
// declares. The returned release func destroys the runtime object.
func importWire(w types.WireTensor) (native.Handle, func(), error) {
	switch torch.DataType(w.DType) {
	case torch.Float:
		return importTyped[float32](w)
	case torch.Double:
		return importTyped[float64](w)
	case torch.Int8:
		return importTyped[int8](w)
	case torch.Int16:
		return importTyped[int16](w)
	case torch.Int32:
		return importTyped[int32](w)
	case torch.Int64:
		return importTyped[int64](w)
	case torch.UInt8:
		return importTyped[uint8](w)
	case torch.UInt16:
		return importTyped[uint16](w)
	case torch.UInt32:
		return importTyped[uint32](w)
	case torch.UInt64:
		return importTyped[uint64](w)
	case torch.Bool:
		return importTyped[bool](w)
	case torch.Half:
		return importTyped[float16.Float16](w)
	case torch.BFloat16:
		return importTyped[bfloat16.BF16](w)
	}
	return native.InvalidHandle, nil, torch.ErrInvalidArgument("unsupported dtype " + torch.DataType(w.DType).String())
}

func importTyped[T torch.Element](w types.WireTensor) (native.Handle, func(), error) {
	t, err := torch.FromWire[T](w)
	if err != nil {
		return native.InvalidHandle, nil, err
	}
	return t.Handle(), t.Release, nil
}

// exportWire adopts a runtime-produced tensor, converts it to wire form and
// destroys it.
func exportWire(h native.Handle) (types.WireTensor, error) {
	dt, ok := native.Default.TensorDType(h)
	if !ok {
		return types.WireTensor{}, torch.ErrInvalidArgument("unknown output tensor handle")
	}
	switch torch.DataType(dt) {
	case torch.Float:
		return exportTyped[float32](h)
	case torch.Double:
		return exportTyped[float64](h)
	case torch.Int8:
		return exportTyped[int8](h)
	case torch.Int16:
		return exportTyped[int16](h)
	case torch.Int32:
		return exportTyped[int32](h)
	case torch.Int64:
		return exportTyped[int64](h)
	case torch.UInt8:
		return exportTyped[uint8](h)
	case torch.UInt16:
		return exportTyped[uint16](h)
	case torch.UInt32:
		return exportTyped[uint32](h)
	case torch.UInt64:
		return exportTyped[uint64](h)
	case torch.Bool:
		return exportTyped[bool](h)
	case torch.Half:
		return exportTyped[float16.Float16](h)
	case torch.BFloat16:
		return exportTyped[bfloat16.BF16](h)
	}
	return types.WireTensor{}, torch.ErrInvalidArgument("unsupported output dtype " + torch.DataType(dt).String())
}

func exportTyped[T torch.Element](h native.Handle) (types.WireTensor, error) {
	t, err := torch.Adopt[T](h)
	if err != nil {
		return types.WireTensor{}, err
	}
	defer t.Release()
	return t.Wire(), nil
}
