package ports

import "github.com/jesterworks/canopy/pkg/domain"

// Registry supplies the ordered capability declarations used at tree build
// time and acts as the factory for capability instances. The engine builds
// the whole tree once, at start-up; the registry is not consulted again.
type Registry interface {
	// Descriptors returns the direct capability list and the grouped
	// sheets, in mount order. Order is significant: it decides child order
	// under every combinator.
	Descriptors() ([]domain.Descriptor, []domain.Sheet, error)

	// New produces an owned capability instance for the descriptor.
	// Returning an error aborts system construction entirely; there is no
	// partial tree.
	New(desc domain.Descriptor) (domain.Capability, error)
}
