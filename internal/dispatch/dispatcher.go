// Package dispatch resolves forward requests against the model catalog and
// drives the typed wrappers through a complete register/forward/read-back
// cycle per call.
package dispatch

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"acceld/internal/native"
	"acceld/internal/registry"
	"acceld/pkg/prof"
	"acceld/pkg/torch"
	"acceld/pkg/types"
)

// Config carries the dispatcher's collaborators. Zero values get defaults.
type Config struct {
	Catalog      []types.Model
	DefaultModel string
	Resources    *registry.Resources
	Timers       *prof.Timers
	// Logger is optional; nil disables dispatcher logging.
	Logger *zerolog.Logger
}

// Dispatcher serves forward calls over catalog models, registering each model
// with the runtime on first use and caching the live SavedModel in the
// resource registry.
type Dispatcher struct {
	mu           sync.Mutex
	catalog      []types.Model
	defaultModel string
	resources    *registry.Resources
	timers       *prof.Timers
	log          zerolog.Logger
	models       map[string]*torch.SavedModel
	forwards     int64
}

// New builds a Dispatcher from cfg.
func New(cfg Config) *Dispatcher {
	res := cfg.Resources
	if res == nil {
		res = registry.NewResources()
	}
	timers := cfg.Timers
	if timers == nil {
		timers = prof.New(false)
	}
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	return &Dispatcher{
		catalog:      cfg.Catalog,
		defaultModel: cfg.DefaultModel,
		resources:    res,
		timers:       timers,
		log:          log,
		models:       make(map[string]*torch.SavedModel),
	}
}

// Models returns a copy of the catalog.
func (d *Dispatcher) Models() []types.Model {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]types.Model, len(d.catalog))
	copy(out, d.catalog)
	return out
}

// Status summarizes dispatcher state.
func (d *Dispatcher) Status() types.StatusResponse {
	d.mu.Lock()
	defer d.mu.Unlock()
	return types.StatusResponse{
		CatalogSize: len(d.catalog),
		Registered:  d.resources.Len(),
		Forwards:    d.forwards,
	}
}

// Ready reports whether the dispatcher can serve requests.
func (d *Dispatcher) Ready() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.catalog) > 0
}

// Timers returns the recorded timer aggregates.
func (d *Dispatcher) Timers() map[string]prof.Stat {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timers.SnapshotAll()
}

// Forward runs the requested model over the request tensors and returns the
// outputs in wire form.
func (d *Dispatcher) Forward(ctx context.Context, req types.ForwardRequest) (types.ForwardResponse, error) {
	if err := ctx.Err(); err != nil {
		return types.ForwardResponse{}, err
	}
	session := uuid.NewString()

	model, err := d.ensureModel(req.Model)
	if err != nil {
		return types.ForwardResponse{}, err
	}
	modelHandle, ok := model.ResourceHandle()
	if !ok {
		return types.ForwardResponse{}, torch.ErrRuntime(torch.CodeFailedPrecondition)
	}

	// Materialize inputs; every imported tensor must be released even when a
	// later one fails.
	inputs := make([]native.Handle, 0, len(req.Inputs))
	releases := make([]func(), 0, len(req.Inputs))
	defer func() {
		for _, release := range releases {
			release()
		}
	}()
	for _, w := range req.Inputs {
		h, release, err := importWire(w)
		if err != nil {
			return types.ForwardResponse{}, err
		}
		inputs = append(inputs, h)
		releases = append(releases, release)
	}

	var runArgs native.Handle
	if len(req.Args) > 0 {
		buf, err := torch.NewBuffer(req.Args)
		if err != nil {
			return types.ForwardResponse{}, err
		}
		defer buf.Release()
		runArgs = buf.Handle()
	}

	d.timers.Start("forward")
	outs, code := native.Default.Forward(modelHandle, runArgs, inputs)
	d.timers.Stop("forward")
	if code != native.OK {
		return types.ForwardResponse{}, torch.ErrRuntime(torch.Code(code))
	}

	outputs := make([]types.WireTensor, 0, len(outs))
	for i, h := range outs {
		w, err := exportWire(h)
		if err != nil {
			for _, rest := range outs[i:] {
				native.Default.TensorDestroy(rest)
			}
			return types.ForwardResponse{}, err
		}
		outputs = append(outputs, w)
	}

	d.mu.Lock()
	d.forwards++
	d.mu.Unlock()

	d.log.Debug().
		Str("session", session).
		Str("model", req.Model).
		Int("inputs", len(inputs)).
		Int("outputs", len(outputs)).
		Msg("forward complete")

	return types.ForwardResponse{
		Session: session,
		ModelID: int64(model.ID()),
		Outputs: outputs,
	}, nil
}

// ensureModel returns the registered SavedModel for id, registering it on
// first use.
func (d *Dispatcher) ensureModel(id string) (*torch.SavedModel, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if id == "" {
		id = d.defaultModel
	}
	if id == "" && len(d.catalog) == 1 {
		id = d.catalog[0].ID
	}
	if m, ok := d.models[id]; ok {
		return m, nil
	}
	var entry *types.Model
	for i := range d.catalog {
		if d.catalog[i].ID == id {
			entry = &d.catalog[i]
			break
		}
	}
	if entry == nil {
		return nil, ErrModelNotFound(id)
	}

	m, err := torch.NewSavedModel()
	if err != nil {
		return nil, err
	}
	if err := m.SetPath(entry.Path); err != nil {
		_ = m.Destroy()
		return nil, err
	}
	d.timers.Start("register")
	err = m.Register()
	d.timers.Stop("register")
	if err != nil {
		// The model stays sourced; drop it and let a later request retry.
		_ = m.Destroy()
		return nil, err
	}
	if err := d.resources.Put(m); err != nil {
		_ = m.Destroy()
		return nil, err
	}
	d.models[id] = m
	d.log.Info().Str("model", id).Int64("id", int64(m.ID())).Msg("model registered")
	return m, nil
}

// Close destroys every registered model.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.models = make(map[string]*torch.SavedModel)
	return d.resources.DestroyAll()
}
