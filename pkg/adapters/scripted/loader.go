package scripted

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/jesterworks/canopy/pkg/domain"
	"github.com/jesterworks/canopy/pkg/tags"
)

// capabilityConfig is the raw YAML shape of one capability declaration.
// Tags are validated and params are kept opaque until New decodes them.
type capabilityConfig struct {
	Name   string         `yaml:"name"`
	Tags   []string       `yaml:"tags"`
	Params map[string]any `yaml:"params"`
}

type sheetConfig struct {
	Name         string             `yaml:"name"`
	Policy       string             `yaml:"policy"`
	Capabilities []capabilityConfig `yaml:"capabilities"`
}

type fileConfig struct {
	Capabilities []capabilityConfig `yaml:"capabilities"`
	Sheets       []sheetConfig      `yaml:"sheets"`
}

// Registry implements ports.Registry from a parsed sheet file. Every
// capability it produces is a scripted Capability.
type Registry struct {
	direct []domain.Descriptor
	sheets []domain.Sheet
}

// Load reads and parses a sheet file from disk.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet file: %w", err)
	}
	reg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return reg, nil
}

// Parse builds a registry from YAML sheet data.
func Parse(data []byte) (*Registry, error) {
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse sheet yaml: %w", err)
	}

	reg := &Registry{}
	for _, c := range cfg.Capabilities {
		desc, err := c.descriptor()
		if err != nil {
			return nil, err
		}
		reg.direct = append(reg.direct, desc)
	}
	for _, s := range cfg.Sheets {
		policy, err := domain.ParsePolicy(s.Policy)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", s.Name, err)
		}
		sheet := domain.Sheet{Name: s.Name, Policy: policy}
		for _, c := range s.Capabilities {
			desc, err := c.descriptor()
			if err != nil {
				return nil, fmt.Errorf("sheet %q: %w", s.Name, err)
			}
			sheet.Capabilities = append(sheet.Capabilities, desc)
		}
		reg.sheets = append(reg.sheets, sheet)
	}
	return reg, nil
}

func (c capabilityConfig) descriptor() (domain.Descriptor, error) {
	if c.Name == "" {
		return domain.Descriptor{}, fmt.Errorf("capability without a name")
	}
	container, err := tags.NewContainer(c.Tags...)
	if err != nil {
		return domain.Descriptor{}, fmt.Errorf("capability %q: %w", c.Name, err)
	}
	return domain.Descriptor{Name: c.Name, Tags: container, Params: c.Params}, nil
}

// Descriptors returns the declarations in file order.
func (r *Registry) Descriptors() ([]domain.Descriptor, []domain.Sheet, error) {
	return r.direct, r.sheets, nil
}

// New decodes the descriptor's params into a scripted capability.
func (r *Registry) New(desc domain.Descriptor) (domain.Capability, error) {
	params, err := decodeParams(desc.Params)
	if err != nil {
		return nil, fmt.Errorf("capability %q: %w", desc.Name, err)
	}
	return NewCapability(params), nil
}

func decodeParams(raw map[string]any) (Params, error) {
	var params Params
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: &params,
		// YAML yields int for whole numbers; coerce into the float fields.
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Params{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Params{}, fmt.Errorf("invalid params: %w", err)
	}
	return params, nil
}
