package dsl

import (
	"errors"
	"fmt"

	"github.com/jesterworks/canopy/pkg/adapters/memory"
	"github.com/jesterworks/canopy/pkg/domain"
)

// Builder manages registry construction. Errors from the fluent calls are
// collected and reported by Build.
type Builder struct {
	direct []*CapabilityBuilder
	sheets []*SheetBuilder
	errs   []error
}

// New creates a new registry builder.
func New() *Builder {
	return &Builder{}
}

// Capability declares a direct capability backed by the given instance.
func (b *Builder) Capability(name string, cap domain.Capability) *CapabilityBuilder {
	cb := b.newCapability(name, cap)
	b.direct = append(b.direct, cb)
	return cb
}

// CapabilityFunc declares a direct capability backed by a factory.
func (b *Builder) CapabilityFunc(name string, factory memory.Factory) *CapabilityBuilder {
	cb := b.newCapabilityFunc(name, factory)
	b.direct = append(b.direct, cb)
	return cb
}

// Sheet declares a group of capabilities under a combinator policy.
func (b *Builder) Sheet(name string, policy domain.Policy) *SheetBuilder {
	sb := &SheetBuilder{builder: b, name: name, policy: policy}
	b.sheets = append(b.sheets, sb)
	return sb
}

func (b *Builder) newCapability(name string, cap domain.Capability) *CapabilityBuilder {
	if cap == nil {
		b.errs = append(b.errs, fmt.Errorf("capability %q: nil instance", name))
	}
	return b.newCapabilityFunc(name, func(domain.Descriptor) (domain.Capability, error) {
		return cap, nil
	})
}

func (b *Builder) newCapabilityFunc(name string, factory memory.Factory) *CapabilityBuilder {
	if factory == nil {
		b.errs = append(b.errs, fmt.Errorf("capability %q: nil factory", name))
	}
	return &CapabilityBuilder{
		builder: b,
		desc:    domain.Descriptor{Name: name},
		factory: factory,
	}
}

// Build compiles the declarations into a registry.
func (b *Builder) Build() (*memory.Registry, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	reg := memory.NewRegistry()
	for _, cb := range b.direct {
		reg.Add(cb.desc, cb.factory)
	}
	for _, sb := range b.sheets {
		sheet := domain.Sheet{Name: sb.name, Policy: sb.policy}
		factories := make(map[string]memory.Factory, len(sb.members))
		for _, cb := range sb.members {
			sheet.Capabilities = append(sheet.Capabilities, cb.desc)
			factories[cb.desc.Name] = cb.factory
		}
		reg.AddSheet(sheet, factories)
	}
	return reg, nil
}
