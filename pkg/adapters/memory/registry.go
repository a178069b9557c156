// Package memory provides in-process adapters: a static capability
// registry and a ring-buffer history recorder.
package memory

import (
	"fmt"

	"github.com/jesterworks/canopy/pkg/domain"
)

// Factory produces a capability instance for a descriptor.
type Factory func(desc domain.Descriptor) (domain.Capability, error)

// Registry implements ports.Registry from static declarations plus a
// name-keyed factory table. Suited for trees composed in code.
type Registry struct {
	direct    []domain.Descriptor
	sheets    []domain.Sheet
	factories map[string]Factory
	fallback  Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Add declares a direct capability with its factory.
func (r *Registry) Add(desc domain.Descriptor, f Factory) *Registry {
	r.direct = append(r.direct, desc)
	r.factories[desc.Name] = f
	return r
}

// AddSheet declares a sheet; member factories are registered per name.
func (r *Registry) AddSheet(sheet domain.Sheet, factories map[string]Factory) *Registry {
	r.sheets = append(r.sheets, sheet)
	for name, f := range factories {
		r.factories[name] = f
	}
	return r
}

// SetFallback installs a factory used for names without a dedicated one.
func (r *Registry) SetFallback(f Factory) *Registry {
	r.fallback = f
	return r
}

// Descriptors returns the declarations in registration order.
func (r *Registry) Descriptors() ([]domain.Descriptor, []domain.Sheet, error) {
	return r.direct, r.sheets, nil
}

// New produces an instance for the descriptor.
func (r *Registry) New(desc domain.Descriptor) (domain.Capability, error) {
	f, ok := r.factories[desc.Name]
	if !ok {
		f = r.fallback
	}
	if f == nil {
		return nil, fmt.Errorf("%w: no factory for %q", domain.ErrUnknownCapability, desc.Name)
	}
	return f(desc)
}
