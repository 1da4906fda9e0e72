package torch

import (
	"testing"

	"acceld/internal/native"
	"acceld/pkg/types"
)

// helper: install a fresh in-process runtime and return it for stat checks
func resetRuntime(t *testing.T) *native.Inproc {
	t.Helper()
	rt := native.NewInproc()
	native.Default = rt
	return rt
}

func TestNewTensorZeroInitialized(t *testing.T) {
	resetRuntime(t)
	tr, err := New[float32]([]int64{2, 3})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer tr.Release()
	data := tr.Data()
	if len(data) != 6 {
		t.Fatalf("expected 6 elements got %d", len(data))
	}
	for i, v := range data {
		if v != 0 {
			t.Fatalf("element %d not zero: %v", i, v)
		}
	}
	if tr.NumDims() != 2 {
		t.Fatalf("expected rank 2 got %d", tr.NumDims())
	}
	if d, err := tr.Dim(1); err != nil || d != 3 {
		t.Fatalf("Dim(1) = %d, %v; want 3, nil", d, err)
	}
}

func TestSetDataLengthMismatch(t *testing.T) {
	resetRuntime(t)
	tr, err := New[int32]([]int64{4})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer tr.Release()
	if err := tr.SetData([]int32{1, 2, 3}); !IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument got %v", err)
	}
	want := []int32{1, 2, 3, 4}
	if err := tr.SetData(want); err != nil {
		t.Fatalf("SetData: %v", err)
	}
	got := tr.Data()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("element %d = %d want %d", i, got[i], want[i])
		}
	}
}

func TestDataViewWritesVisibleToRuntime(t *testing.T) {
	rt := resetRuntime(t)
	tr, err := New[uint8]([]int64{3})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer tr.Release()
	tr.Data()[1] = 42
	raw := rt.TensorData(tr.Handle())
	if raw[1] != 42 {
		t.Fatalf("runtime did not observe write: %v", raw)
	}
}

func TestFromNativeTypeMismatch(t *testing.T) {
	rt := resetRuntime(t)
	cases := []DataType{Double, Int32, Bool, Half}
	for _, dt := range cases {
		h := rt.TensorNew([]int64{2}, uint32(dt))
		if _, err := FromNative[float32](h); !IsInvalidArgument(err) {
			t.Fatalf("tag %s: expected invalid argument got %v", dt, err)
		}
	}
}

func TestFromNativeNilHandle(t *testing.T) {
	resetRuntime(t)
	if _, err := FromNative[float32](native.InvalidHandle); !IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument got %v", err)
	}
}

func TestFromNativeMissingDataSubstitutesZeros(t *testing.T) {
	rt := resetRuntime(t)
	h := rt.TensorNew([]int64{2, 2}, uint32(Float))
	// no TensorSetData: the runtime reports no backing region
	tr, err := FromNative[float32](h)
	if err != nil {
		t.Fatalf("FromNative: %v", err)
	}
	data := tr.Data()
	if len(data) != 4 {
		t.Fatalf("expected 4 elements got %d", len(data))
	}
	for i, v := range data {
		if v != 0 {
			t.Fatalf("element %d not zero: %v", i, v)
		}
	}
}

func TestFromNativeRejectsShortData(t *testing.T) {
	rt := resetRuntime(t)
	h := rt.TensorNew([]int64{4}, uint32(Float))
	// 4 float32 elements need 16 bytes; attach only 2
	rt.TensorSetData(h, []byte{1, 2})
	if _, err := FromNative[float32](h); !IsInvalidArgument(err) {
		t.Fatalf("short data: expected invalid argument got %v", err)
	}
}

func TestNewRejectsOverflowingDims(t *testing.T) {
	resetRuntime(t)
	// 3037000500^2 wraps int64 to a negative product
	if _, err := New[float32]([]int64{3037000500, 3037000500}); !IsInvalidArgument(err) {
		t.Fatalf("overflowing product: expected invalid argument got %v", err)
	}
	// byte count wraps even when the element count fits
	if _, err := New[float64]([]int64{1 << 61, 3}); !IsInvalidArgument(err) {
		t.Fatalf("overflowing byte count: expected invalid argument got %v", err)
	}
	if _, err := New[float32]([]int64{2, -1}); !IsInvalidArgument(err) {
		t.Fatalf("negative dim: expected invalid argument got %v", err)
	}
	w := types.WireTensor{Dims: []int64{3037000500, 3037000500}, DType: uint32(Float)}
	if _, err := FromWire[float32](w); !IsInvalidArgument(err) {
		t.Fatalf("overflowing wire dims: expected invalid argument got %v", err)
	}
}

func TestBorrowedTensorNotFreedOnRelease(t *testing.T) {
	rt := resetRuntime(t)
	h := rt.TensorNew([]int64{2}, uint32(Int64))
	tr, err := FromNative[int64](h)
	if err != nil {
		t.Fatalf("FromNative: %v", err)
	}
	tr.Release()
	if got := rt.Stats().TensorFrees; got != 0 {
		t.Fatalf("borrowed release freed the handle: frees=%d", got)
	}
	if rt.TensorDims(h) == nil {
		t.Fatalf("native tensor gone after borrowed release")
	}
}

func TestAdoptedTensorFreedExactlyOnce(t *testing.T) {
	rt := resetRuntime(t)
	h := rt.TensorNew([]int64{2}, uint32(Int16))
	tr, err := Adopt[int16](h)
	if err != nil {
		t.Fatalf("Adopt: %v", err)
	}
	tr.Release()
	tr.Release()
	if got := rt.Stats().TensorFrees; got != 1 {
		t.Fatalf("expected exactly one free got %d", got)
	}
}

func TestDimOutOfRange(t *testing.T) {
	resetRuntime(t)
	tr, err := New[float64]([]int64{5})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer tr.Release()
	if _, err := tr.Dim(1); !IsOutOfRange(err) {
		t.Fatalf("expected out of range got %v", err)
	}
	if _, err := tr.Dim(-1); !IsOutOfRange(err) {
		t.Fatalf("expected out of range got %v", err)
	}
}

func TestWireRoundTrip(t *testing.T) {
	resetRuntime(t)
	tr, err := New[float32]([]int64{2, 3})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer tr.Release()
	want := []float32{0, 1, 2, 3, 4, 5}
	if err := tr.SetData(want); err != nil {
		t.Fatalf("SetData: %v", err)
	}

	w := tr.Wire()
	if len(w.Dims) != 2 || w.Dims[0] != 2 || w.Dims[1] != 3 {
		t.Fatalf("wire dims = %v", w.Dims)
	}
	if DataType(w.DType) != Float {
		t.Fatalf("wire dtype = %s", DataType(w.DType))
	}
	if len(w.Data) != 24 {
		t.Fatalf("wire data = %d bytes, want 24", len(w.Data))
	}

	back, err := FromWire[float32](w)
	if err != nil {
		t.Fatalf("FromWire: %v", err)
	}
	defer back.Release()
	got := back.Data()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("element %d = %v want %v", i, got[i], want[i])
		}
	}
}

func TestFromWireMismatches(t *testing.T) {
	resetRuntime(t)
	tr, err := New[int32]([]int64{2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer tr.Release()
	w := tr.Wire()

	if _, err := FromWire[float32](w); !IsInvalidArgument(err) {
		t.Fatalf("dtype mismatch: expected invalid argument got %v", err)
	}
	bad := w
	bad.Data = w.Data[:4]
	if _, err := FromWire[int32](bad); !IsInvalidArgument(err) {
		t.Fatalf("length mismatch: expected invalid argument got %v", err)
	}
}
