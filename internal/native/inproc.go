package native

import "sync"

// Inproc is the default, CGO-free runtime. It keeps every object in a handle
// table and executes Forward as an opaque echo, which keeps default builds and
// CI independent of accelerator hardware while exercising the full ownership
// protocol. Allocation and release counters are exposed through Stats so
// lifecycle tests can assert exactly-once release behavior.
type Inproc struct {
	mu      sync.Mutex
	next    Handle
	nextID  int64
	tensors map[Handle]*tensorObj
	buffers map[Handle]*bufferObj
	models  map[Handle]*modelObj
	stats   Stats
}

// Stats counts allocations and releases performed by the runtime.
type Stats struct {
	TensorAllocs int
	TensorFrees  int
	BufferAllocs int
	BufferFrees  int
	// BufferDataFrees counts backing regions released by BufferDestroy. A
	// region detached with BufferTakeData is never counted.
	BufferDataFrees int
	ModelAllocs     int
	ModelFrees      int
}

type tensorObj struct {
	dims  []int64
	dtype uint32
	data  []byte
}

type bufferObj struct {
	data []byte
}

type modelObj struct {
	path  string
	bytes []byte
	id    int64
}

// NewInproc returns an empty in-process runtime.
func NewInproc() *Inproc {
	return &Inproc{
		tensors: make(map[Handle]*tensorObj),
		buffers: make(map[Handle]*bufferObj),
		models:  make(map[Handle]*modelObj),
	}
}

// Stats returns a copy of the runtime's allocation counters.
func (r *Inproc) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *Inproc) handle() Handle {
	r.next++
	return r.next
}

func (r *Inproc) TensorNew(dims []int64, dtype uint32) Handle {
	if dims == nil {
		return InvalidHandle
	}
	for _, d := range dims {
		if d < 0 {
			return InvalidHandle
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	h := r.handle()
	r.tensors[h] = &tensorObj{dims: append([]int64(nil), dims...), dtype: dtype}
	r.stats.TensorAllocs++
	return h
}

func (r *Inproc) TensorSetData(h Handle, data []byte) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tensors[h]
	if !ok {
		return InvalidArgument
	}
	t.data = data
	return OK
}

func (r *Inproc) TensorData(h Handle) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tensors[h]; ok {
		return t.data
	}
	return nil
}

func (r *Inproc) TensorDims(h Handle) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tensors[h]; ok {
		return append([]int64(nil), t.dims...)
	}
	return nil
}

func (r *Inproc) TensorDType(h Handle) (uint32, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tensors[h]; ok {
		return t.dtype, true
	}
	return 0, false
}

func (r *Inproc) TensorDestroy(h Handle) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tensors[h]; !ok {
		return InvalidArgument
	}
	delete(r.tensors, h)
	r.stats.TensorFrees++
	return OK
}

func (r *Inproc) BufferNew(data []byte) Handle {
	if data == nil {
		return InvalidHandle
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	h := r.handle()
	r.buffers[h] = &bufferObj{data: data}
	r.stats.BufferAllocs++
	return h
}

func (r *Inproc) BufferData(h Handle) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.buffers[h]; ok {
		return b.data
	}
	return nil
}

func (r *Inproc) BufferTakeData(h Handle) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.buffers[h]
	if !ok {
		return nil
	}
	data := b.data
	b.data = nil
	return data
}

func (r *Inproc) BufferDestroy(h Handle) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.buffers[h]
	if !ok {
		return InvalidArgument
	}
	if b.data != nil {
		// The runtime-side destructor releases whatever region is still
		// attached, exactly as a native free would.
		b.data = nil
		r.stats.BufferDataFrees++
	}
	delete(r.buffers, h)
	r.stats.BufferFrees++
	return OK
}

func (r *Inproc) ModelNew() Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := r.handle()
	r.models[h] = &modelObj{}
	r.stats.ModelAllocs++
	return h
}

func (r *Inproc) ModelSetPath(h Handle, path string) int {
	if path == "" {
		return InvalidArgument
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.models[h]
	if !ok {
		return InvalidArgument
	}
	m.path = path
	return OK
}

func (r *Inproc) ModelPath(h Handle) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.models[h]; ok && m.path != "" {
		return m.path, true
	}
	return "", false
}

func (r *Inproc) ModelSetBytes(h Handle, data []byte) int {
	if len(data) == 0 {
		return InvalidArgument
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.models[h]
	if !ok {
		return InvalidArgument
	}
	m.bytes = data
	return OK
}

func (r *Inproc) ModelBytes(h Handle) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.models[h]; ok {
		return m.bytes
	}
	return nil
}

func (r *Inproc) ModelRegister(h Handle) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.models[h]
	if !ok {
		return InvalidArgument
	}
	if m.id != 0 {
		return FailedPrecondition
	}
	if m.path == "" && len(m.bytes) == 0 {
		return FailedPrecondition
	}
	r.nextID++
	m.id = r.nextID
	return OK
}

func (r *Inproc) ModelID(h Handle) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.models[h]; ok {
		return m.id
	}
	return 0
}

func (r *Inproc) ModelDestroy(h Handle) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.models[h]; !ok {
		return NotFound
	}
	delete(r.models, h)
	r.stats.ModelFrees++
	return OK
}

// Forward is an opaque placeholder for model execution: each input tensor is
// copied to a fresh output tensor owned by the caller.
func (r *Inproc) Forward(model Handle, runArgs Handle, inputs []Handle) ([]Handle, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.models[model]
	if !ok {
		return nil, InvalidArgument
	}
	if m.id == 0 {
		return nil, FailedPrecondition
	}
	if runArgs != InvalidHandle {
		if _, ok := r.buffers[runArgs]; !ok {
			return nil, InvalidArgument
		}
	}
	outs := make([]Handle, 0, len(inputs))
	for _, in := range inputs {
		t, ok := r.tensors[in]
		if !ok {
			for _, h := range outs {
				delete(r.tensors, h)
				r.stats.TensorFrees++
			}
			return nil, InvalidArgument
		}
		h := r.handle()
		r.tensors[h] = &tensorObj{
			dims:  append([]int64(nil), t.dims...),
			dtype: t.dtype,
			data:  append([]byte(nil), t.data...),
		}
		r.stats.TensorAllocs++
		outs = append(outs, h)
	}
	return outs, OK
}
