package torch

import (
	"testing"

	"github.com/d4l3k/go-bfloat16"
	"github.com/x448/float16"
)

func TestCodeWireValues(t *testing.T) {
	cases := []struct {
		code Code
		wire uint8
	}{
		{CodeOK, 0},
		{CodeCancelled, 1},
		{CodeUnknown, 2},
		{CodeInvalidArgument, 3},
		{CodeDeadlineExceeded, 4},
		{CodeNotFound, 5},
		{CodeAlreadyExists, 6},
		{CodePermissionDenied, 7},
		{CodeResourceExhausted, 8},
		{CodeFailedPrecondition, 9},
		{CodeAborted, 10},
		{CodeOutOfRange, 11},
		{CodeUnimplemented, 12},
		{CodeInternal, 13},
		{CodeUnavailable, 14},
		{CodeDataLoss, 15},
		{CodeUnauthenticated, 16},
	}
	for _, c := range cases {
		if uint8(c.code) != c.wire {
			t.Fatalf("%s = %d want %d", c.code, uint8(c.code), c.wire)
		}
	}
}

func TestStatusOK(t *testing.T) {
	if !NewStatus(0, nil).OK() {
		t.Fatalf("code 0 not ok")
	}
	for code := uint8(1); code <= 16; code++ {
		if NewStatus(code, nil).OK() {
			t.Fatalf("code %d reported ok", code)
		}
	}
}

func TestStatusMessageDegradesGracefully(t *testing.T) {
	if got := NewStatus(3, nil).Message(); got != "" {
		t.Fatalf("nil message = %q", got)
	}
	if got := NewStatus(3, []byte{0xff, 0xfe}).Message(); got != "" {
		t.Fatalf("invalid utf8 message = %q", got)
	}
	if got := NewStatus(3, []byte("bad shape")).Message(); got != "bad shape" {
		t.Fatalf("message = %q", got)
	}
}

func TestDataTypeTags(t *testing.T) {
	if dt := DataTypeOf[float32](); dt != Float {
		t.Fatalf("float32 -> %s", dt)
	}
	if dt := DataTypeOf[float64](); dt != Double {
		t.Fatalf("float64 -> %s", dt)
	}
	if dt := DataTypeOf[bool](); dt != Bool {
		t.Fatalf("bool -> %s", dt)
	}
	if dt := DataTypeOf[float16.Float16](); dt != Half {
		t.Fatalf("float16 -> %s", dt)
	}
	if dt := DataTypeOf[bfloat16.BF16](); dt != BFloat16 {
		t.Fatalf("bfloat16 -> %s", dt)
	}
}

func TestDataTypeUnknownCarriesCode(t *testing.T) {
	dt := DataType(7)
	if dt.Known() {
		t.Fatalf("tag 7 reported known")
	}
	if dt.Size() != 0 {
		t.Fatalf("unknown size = %d", dt.Size())
	}
	if got := dt.String(); got != "unknown(7)" {
		t.Fatalf("String = %q", got)
	}
}

func TestDataTypeSizesMatchElements(t *testing.T) {
	if Float.Size() != 4 || Double.Size() != 8 || Half.Size() != 2 || Bool.Size() != 1 {
		t.Fatalf("unexpected sizes: %d %d %d %d", Float.Size(), Double.Size(), Half.Size(), Bool.Size())
	}
	if elementSize[float16.Float16]() != Half.Size() {
		t.Fatalf("float16 element size %d != tag size %d", elementSize[float16.Float16](), Half.Size())
	}
	if elementSize[bfloat16.BF16]() != BFloat16.Size() {
		t.Fatalf("bfloat16 element size %d != tag size %d", elementSize[bfloat16.BF16](), BFloat16.Size())
	}
}
