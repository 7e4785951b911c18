package adapters

import "strings"

// Registry maps source system tags to their adapter instances. Adapters are
// constructed once at startup and shared; Resolve hands out the singletons.
type Registry struct {
	adapters map[string]Adapter
	fallback Adapter
}

// NewRegistry builds a registry. fallback is returned for empty or
// unrecognized tags and must not be nil.
func NewRegistry(fallback Adapter) *Registry {
	return &Registry{
		adapters: make(map[string]Adapter),
		fallback: fallback,
	}
}

// Register associates a system tag with an adapter. Tags are matched
// case-insensitively.
func (r *Registry) Register(system string, a Adapter) {
	r.adapters[strings.ToUpper(system)] = a
}

// Resolve returns the adapter for the given system tag. Unknown tags resolve
// to the fallback so new source systems degrade gracefully rather than
// failing the request.
func (r *Registry) Resolve(system string) Adapter {
	if a, ok := r.adapters[strings.ToUpper(strings.TrimSpace(system))]; ok {
		return a
	}
	return r.fallback
}
