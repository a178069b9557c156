package domain

// NodeKind identifies a tree node variant for introspection output.
type NodeKind string

const (
	KindParallel         NodeKind = "parallel"
	KindSequence         NodeKind = "sequence"
	KindFirstValid       NodeKind = "first_valid"
	KindStickyFirstValid NodeKind = "sticky_first_valid"
	KindCapability       NodeKind = "capability"
)

// NodeInfo is a read-only view of one tree node, produced for
// visualization and debug tooling. It never exposes the live nodes.
type NodeInfo struct {
	Kind     NodeKind   `json:"kind"`
	Name     string     `json:"name,omitempty"`
	Tags     []string   `json:"tags,omitempty"`
	Enabled  bool       `json:"enabled"`
	Children []NodeInfo `json:"children,omitempty"`
}
