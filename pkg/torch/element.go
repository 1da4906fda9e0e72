package torch

import (
	"math"
	"unsafe"

	"github.com/d4l3k/go-bfloat16"
	"github.com/x448/float16"
)

// Element is the closed set of Go types that may back a tensor. The union is
// exact (no approximation terms), so no outside type can satisfy it; each
// member maps to exactly one DataType tag. Half and brain-float elements use
// the real float16 types rather than bare uint16s, which keeps them distinct
// members of the set.
type Element interface {
	float32 | float64 |
		int8 | int16 | int32 | int64 |
		uint8 | uint16 | uint32 | uint64 |
		bool |
		float16.Float16 | bfloat16.BF16
}

// DataTypeOf returns the wire tag for the element type T.
func DataTypeOf[T Element]() DataType {
	var z T
	switch any(z).(type) {
	case float32:
		return Float
	case float64:
		return Double
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return UInt8
	case uint16:
		return UInt16
	case uint32:
		return UInt32
	case uint64:
		return UInt64
	case bool:
		return Bool
	case float16.Float16:
		return Half
	case bfloat16.BF16:
		return BFloat16
	}
	// Unreachable: Element is a closed union.
	return 0
}

func elementSize[T Element]() int {
	var z T
	return int(unsafe.Sizeof(z))
}

// elementCount returns product(dims), rejecting negative dimensions and any
// product whose element or byte count would not fit in an int. The checks run
// before a backing region is sized, so a wrapped product can never become a
// view length.
func elementCount[T Element](dims []int64) (int, error) {
	n := int64(1)
	for _, d := range dims {
		if d < 0 {
			return 0, ErrInvalidArgument("negative dimension")
		}
		if d != 0 && n > math.MaxInt64/d {
			return 0, ErrInvalidArgument("dimension product overflows")
		}
		n *= d
	}
	if n > int64(math.MaxInt/elementSize[T]()) {
		return 0, ErrInvalidArgument("dimension product overflows")
	}
	return int(n), nil
}
