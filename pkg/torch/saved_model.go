package torch

import (
	"strings"

	"acceld/internal/native"
)

// ModelState tracks a SavedModel through its registration lifecycle.
type ModelState int

const (
	// StateUnregistered: allocated, no source attached.
	StateUnregistered ModelState = iota
	// StateSourced: path or bytes attached, not yet registered.
	StateSourced
	// StateRegistered: identity assigned, usable for execution.
	StateRegistered
	// StateDestroyed is terminal.
	StateDestroyed
)

func (s ModelState) String() string {
	switch s {
	case StateUnregistered:
		return "unregistered"
	case StateSourced:
		return "sourced"
	case StateRegistered:
		return "registered"
	case StateDestroyed:
		return "destroyed"
	}
	return "invalid"
}

// SavedModel is a model resource with an explicit registration lifecycle:
// Unregistered -> Sourced -> Registered -> Destroyed. The wrapper owns the
// runtime object from construction to destruction.
type SavedModel struct {
	ref   handleRef
	state ModelState
	id    ResourceID
}

// NewSavedModel allocates an unregistered model object.
func NewSavedModel() (*SavedModel, error) {
	h := native.Default.ModelNew()
	if h == native.InvalidHandle {
		return nil, errRuntimef(CodeInternal, "model allocation failed")
	}
	return &SavedModel{ref: ownedHandle(h)}, nil
}

// SetPath attaches a filesystem source. Allowed exactly once, before
// registration.
func (m *SavedModel) SetPath(path string) error {
	if err := m.sourceable(); err != nil {
		return err
	}
	// The runtime takes the path as a NUL-terminated native string.
	if path == "" || strings.IndexByte(path, 0) >= 0 {
		return ErrInvalidArgument("path not representable as a native string")
	}
	if code := native.Default.ModelSetPath(m.ref.h, path); code != native.OK {
		return ErrRuntime(Code(code))
	}
	m.state = StateSourced
	return nil
}

// SetBytes attaches an in-memory serialized model. Allowed exactly once,
// before registration.
func (m *SavedModel) SetBytes(data []byte) error {
	if err := m.sourceable(); err != nil {
		return err
	}
	if len(data) == 0 {
		return ErrInvalidArgument("empty model data")
	}
	if code := native.Default.ModelSetBytes(m.ref.h, data); code != native.OK {
		return ErrRuntime(Code(code))
	}
	m.state = StateSourced
	return nil
}

func (m *SavedModel) sourceable() error {
	switch m.state {
	case StateUnregistered:
		return nil
	case StateSourced:
		return errRuntimef(CodeFailedPrecondition, "model source already set")
	case StateRegistered:
		return errRuntimef(CodeFailedPrecondition, "model already registered")
	default:
		return errRuntimef(CodeFailedPrecondition, "model destroyed")
	}
}

// Register submits the sourced model to the runtime. On success the model
// gains an identity and becomes usable for execution. On a runtime failure
// the model stays Sourced and Register may be attempted again. Registering an
// already-registered model fails with FailedPrecondition: a second success
// would silently leak the first identity.
func (m *SavedModel) Register() error {
	switch m.state {
	case StateUnregistered:
		return errRuntimef(CodeFailedPrecondition, "no model source set")
	case StateRegistered:
		return errRuntimef(CodeFailedPrecondition, "model already registered")
	case StateDestroyed:
		return errRuntimef(CodeFailedPrecondition, "model destroyed")
	}
	if code := native.Default.ModelRegister(m.ref.h); code != native.OK {
		return ErrRuntime(Code(code))
	}
	m.id = ResourceID(native.Default.ModelID(m.ref.h))
	m.state = StateRegistered
	return nil
}

// State returns the current lifecycle state.
func (m *SavedModel) State() ModelState { return m.state }

// ID returns the identity assigned at registration, zero before that.
func (m *SavedModel) ID() ResourceID {
	if m.state != StateRegistered {
		return 0
	}
	return m.id
}

// Initialized reports whether the model is registered.
func (m *SavedModel) Initialized() bool { return m.state == StateRegistered }

// ResourceHandle exposes the raw runtime handle once registered.
func (m *SavedModel) ResourceHandle() (native.Handle, bool) {
	if !m.Initialized() {
		return native.InvalidHandle, false
	}
	return m.ref.h, true
}

// Path returns the filesystem source, if one was attached.
func (m *SavedModel) Path() (string, bool) {
	if !m.ref.valid() {
		return "", false
	}
	return native.Default.ModelPath(m.ref.h)
}

// Bytes returns the in-memory source, nil if none was attached.
func (m *SavedModel) Bytes() []byte {
	if !m.ref.valid() {
		return nil
	}
	return native.Default.ModelBytes(m.ref.h)
}

// Destroy releases the runtime object and moves the model to its terminal
// state. Destroying a never-registered or already-destroyed model succeeds
// trivially.
func (m *SavedModel) Destroy() error {
	if m.state == StateDestroyed || !m.ref.valid() {
		m.state = StateDestroyed
		return nil
	}
	var code int
	m.ref.release(func(h native.Handle) {
		code = native.Default.ModelDestroy(h)
	})
	m.state = StateDestroyed
	m.id = 0
	if code != native.OK {
		return ErrRuntime(Code(code))
	}
	return nil
}
