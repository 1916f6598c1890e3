package vecmem

import (
	"strings"
	"sync"
)

// RegistryOptions contains configuration options for a Registry.
type RegistryOptions struct {
	// Logger is used by the registry and every collection it creates.
	// Defaults to a no-op logger.
	Logger *Logger

	// Metrics receives operational metrics from every collection the
	// registry creates. Defaults to a no-op collector.
	Metrics MetricsCollector
}

// Registry is a process-wide, concurrency-safe factory for named
// collections. A given name maps to at most one Collection instance;
// operations on different collections never contend.
//
// There is no package-level default registry: embedders construct one and
// pass it through their call graph.
type Registry struct {
	mu          sync.RWMutex
	collections map[string]*Collection

	logger  *Logger
	metrics MetricsCollector
}

// NewRegistry creates an empty registry.
func NewRegistry(optFns ...func(o *RegistryOptions)) *Registry {
	opts := RegistryOptions{
		Logger:  NoopLogger(),
		Metrics: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = NoopLogger()
	}
	if opts.Metrics == nil {
		opts.Metrics = NoopMetricsCollector{}
	}

	return &Registry{
		collections: make(map[string]*Collection),
		logger:      opts.Logger,
		metrics:     opts.Metrics,
	}
}

// GetOrCreate atomically fetches the collection named name, creating it with
// the given dimension if absent. Exactly one instance is ever constructed
// per name, even under concurrent first use.
//
// An existing collection is returned unchanged, but only if its dimension
// equals the requested one; re-creation with a different shape fails with
// ErrDimensionMismatch rather than being coerced. A new collection requires
// a non-blank name and a positive dimension.
func (r *Registry) GetOrCreate(name string, dimension int) (*Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.collections[name]; ok {
		if existing.dimension != dimension {
			return nil, &ErrDimensionMismatch{Expected: existing.dimension, Actual: dimension}
		}
		return existing, nil
	}

	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}
	if dimension <= 0 {
		return nil, &ErrInvalidDimension{Dimension: dimension}
	}

	coll := newCollection(name, dimension, r.logger, r.metrics)
	r.collections[name] = coll

	r.logger.Info("collection created", "collection", name, "dimension", dimension)
	return coll, nil
}

// Get looks up a collection by name. A miss is not an error.
func (r *Registry) Get(name string) (*Collection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	coll, ok := r.collections[name]
	return coll, ok
}

// Clear drops all registered collections. Intended for tests and demo
// resets, not as an online operation.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.collections)
}
