package dsl

import (
	"fmt"

	"github.com/jesterworks/canopy/pkg/adapters/memory"
	"github.com/jesterworks/canopy/pkg/domain"
	"github.com/jesterworks/canopy/pkg/tags"
)

// CapabilityBuilder provides a fluent API for configuring one capability
// declaration.
type CapabilityBuilder struct {
	builder *Builder
	desc    domain.Descriptor
	factory memory.Factory
}

// Tags attaches gameplay tags to the capability. Invalid tags surface as
// errors from Build.
func (c *CapabilityBuilder) Tags(raw ...string) *CapabilityBuilder {
	container, err := tags.NewContainer(raw...)
	if err != nil {
		c.builder.errs = append(c.builder.errs,
			fmt.Errorf("capability %q: %w", c.desc.Name, err))
		return c
	}
	c.desc.Tags = append(c.desc.Tags, container...)
	return c
}

// Param sets a factory-specific configuration value.
func (c *CapabilityBuilder) Param(key string, value any) *CapabilityBuilder {
	if c.desc.Params == nil {
		c.desc.Params = make(map[string]any)
	}
	c.desc.Params[key] = value
	return c
}

// SheetBuilder provides a fluent API for configuring a sheet and its
// members.
type SheetBuilder struct {
	builder *Builder
	name    string
	policy  domain.Policy
	members []*CapabilityBuilder
}

// Capability declares a sheet member backed by the given instance.
// Declaration order is evaluation order under the sheet's combinator.
func (s *SheetBuilder) Capability(name string, cap domain.Capability) *CapabilityBuilder {
	cb := s.builder.newCapability(name, cap)
	s.members = append(s.members, cb)
	return cb
}

// CapabilityFunc declares a sheet member backed by a factory.
func (s *SheetBuilder) CapabilityFunc(name string, factory memory.Factory) *CapabilityBuilder {
	cb := s.builder.newCapabilityFunc(name, factory)
	s.members = append(s.members, cb)
	return cb
}
