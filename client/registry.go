package client

import (
	"context"
	"sync"

	"github.com/davinci-studio/imagine/internal/logging"
	"github.com/davinci-studio/imagine/models"
)

// Provider is the uniform surface every vendor adapter implements. The rest
// of the system never branches on vendor identity; everything vendor-specific
// (wire format, auth header, dimension encoding) lives behind this contract.
type Provider interface {
	// ID is the stable provider identifier used in responses and listings.
	ID() string

	// Name is the display label.
	Name() string

	// Models returns the static model catalog.
	Models() []models.ModelInfo

	// SupportsModel reports whether modelID is in the catalog. Pure predicate.
	SupportsModel(modelID string) bool

	// Availability is a cheap local precondition check: nil means the
	// provider can be attempted, a non-nil error names what is missing
	// (typically a credential). It must not touch the network or panic.
	Availability() error

	// Generate issues the vendor call and always returns a response, success
	// or failure shaped. It never panics and never returns a Go error; all
	// failure paths are folded into the response's Error/ErrorCode.
	Generate(ctx context.Context, req *models.GenerationRequest) *models.GenerationResponse
}

// Registry owns the fixed catalog of providers and resolves model ids to the
// provider serving them. It is composed at startup and read-only during
// request handling; model ids are expected to be globally unique across
// providers, and registration order decides if they are not.
type Registry struct {
	mu        sync.RWMutex
	providers []Provider
	byID      map[string]Provider
	logger    logging.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger logging.Logger) *Registry {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Registry{
		byID:   make(map[string]Provider),
		logger: logger,
	}
}

// Register appends a provider to the catalog. Registering a duplicate id is
// a no-op: the pre-existing entry wins and a warning is the only observable
// effect.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID()]; exists {
		r.logger.Warnf("provider %q already registered, ignoring duplicate", p.ID())
		return
	}
	r.byID[p.ID()] = p
	r.providers = append(r.providers, p)
	r.logger.Infof("registered provider %q (%d models)", p.ID(), len(p.Models()))
}

// Providers returns the full catalog in registration order.
func (r *Registry) Providers() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Provider, len(r.providers))
	copy(out, r.providers)
	return out
}

// ProviderByID looks a provider up by its id.
func (r *Registry) ProviderByID(id string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	return p, ok
}

// ProviderForModel returns the first provider, in registration order, whose
// catalog contains modelID.
func (r *Registry) ProviderForModel(modelID string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.providers {
		if p.SupportsModel(modelID) {
			return p, true
		}
	}
	return nil, false
}

// ProvidersInfo assembles discovery descriptors for every provider.
// Availability is computed freshly on each call.
func (r *Registry) ProvidersInfo() []models.ProviderInfo {
	ps := r.Providers()
	infos := make([]models.ProviderInfo, 0, len(ps))
	for _, p := range ps {
		infos = append(infos, models.ProviderInfo{
			ID:        p.ID(),
			Name:      p.Name(),
			Models:    p.Models(),
			Available: p.Availability() == nil,
		})
	}
	return infos
}

// AvailableModels flattens the catalogs of currently available providers into
// one list: what a caller can actually generate with right now.
func (r *Registry) AvailableModels() []models.AvailableModel {
	var out []models.AvailableModel
	for _, p := range r.Providers() {
		if p.Availability() != nil {
			continue
		}
		for _, m := range p.Models() {
			out = append(out, models.AvailableModel{
				ModelID:      m.ID,
				ModelName:    m.Name,
				ProviderID:   p.ID(),
				ProviderName: p.Name(),
			})
		}
	}
	return out
}
