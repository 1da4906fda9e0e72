// Package native defines the call surface of the acceleration runtime and
// provides an in-process implementation of it. The rest of the repository
// talks to the runtime exclusively through the Runtime interface; a real
// accelerator binding would satisfy the same interface behind a build tag.
package native

// Handle is an opaque reference to a runtime-side object. The zero handle is
// never assigned and always invalid.
type Handle int64

// InvalidHandle is returned by allocation calls on failure.
const InvalidHandle Handle = 0

// Outcome codes returned by runtime calls. The values are part of the
// cross-boundary encoding and must not change.
const (
	OK                 = 0
	InvalidArgument    = 3
	NotFound           = 5
	FailedPrecondition = 9
	Internal           = 13
)

// Runtime abstracts the model runtime used by the typed wrappers. Concrete
// implementations (e.g., a cgo accelerator binding) should satisfy this
// interface.
type Runtime interface {
	// TensorNew allocates a tensor object for the given dimensions and
	// element-type tag. Returns InvalidHandle on allocation failure.
	TensorNew(dims []int64, dtype uint32) Handle
	// TensorSetData attaches data to the tensor, replacing any prior region.
	TensorSetData(h Handle, data []byte) int
	// TensorData returns the tensor's backing region. The returned slice
	// aliases runtime memory: writes through it are visible to the runtime.
	// Returns nil if no data has been attached.
	TensorData(h Handle) []byte
	// TensorDims returns the recorded dimensions, nil for an unknown handle.
	TensorDims(h Handle) []int64
	// TensorDType returns the recorded element-type tag.
	TensorDType(h Handle) (uint32, bool)
	TensorDestroy(h Handle) int

	// BufferNew wraps the given region in a buffer object without copying.
	BufferNew(data []byte) Handle
	// BufferData returns the currently attached region and its size.
	BufferData(h Handle) []byte
	// BufferTakeData detaches and returns the attached region, so that a
	// later BufferDestroy will not release it.
	BufferTakeData(h Handle) []byte
	BufferDestroy(h Handle) int

	ModelNew() Handle
	ModelSetPath(h Handle, path string) int
	ModelPath(h Handle) (string, bool)
	ModelSetBytes(h Handle, data []byte) int
	ModelBytes(h Handle) []byte
	// ModelRegister submits the sourced model for execution and assigns an
	// identity on success.
	ModelRegister(h Handle) int
	// ModelID returns the assigned identity, or 0 if none.
	ModelID(h Handle) int64
	ModelDestroy(h Handle) int

	// Forward runs the registered model over the input tensors. runArgs may
	// be InvalidHandle. Output tensor handles are owned by the caller.
	Forward(model Handle, runArgs Handle, inputs []Handle) ([]Handle, int)
}

// Default is the process-wide runtime used by the typed wrappers. Tests and
// alternative bindings may replace it.
var Default Runtime = NewInproc()
