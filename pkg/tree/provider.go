package tree

// Spec describes one input node. Children are optional; a spec without
// children is a leaf.
type Spec struct {
	ID         string   `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Label      string   `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Value      float64  `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
	Color      string   `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty" toml:"categories,omitempty"`
	Children   []Spec   `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`

	// Disclosed overrides the disclosure source for this node when set.
	Disclosed *bool `json:"disclosed,omitempty" yaml:"disclosed,omitempty" toml:"disclosed,omitempty"`

	// RadiusUnit overrides the sunburst ring thickness for this node.
	RadiusUnit float64 `json:"radius_unit,omitempty" yaml:"radius_unit,omitempty" toml:"radius_unit,omitempty"`
}

// key returns the identifier used for lookups: the ID, or the label when
// no ID was given.
func (s Spec) key() string {
	if s.ID != "" {
		return s.ID
	}
	return s.Label
}

// DataProvider exposes one level of a hierarchy at a time. Hosts with paged
// or lazily loaded data implement it; [SpecProvider] adapts nested specs.
type DataProvider interface {
	// Rows returns the specs at this level. Their Children fields are ignored.
	Rows() []Spec
	// IsEmpty reports whether the level has no rows.
	IsEmpty() bool
	// ChildDataProvider returns the provider for the children of id, or nil
	// when the node is a leaf.
	ChildDataProvider(id string) DataProvider
}

// RowProvider is implemented by providers that resolve children by row
// position. The builder prefers it over ChildDataProvider, whose id lookup
// is ambiguous when sibling rows share an id or label or have neither.
type RowProvider interface {
	// ChildDataProviderAt returns the provider for the children of
	// Rows()[row], or nil when that row is a leaf.
	ChildDataProviderAt(row int) DataProvider
}

// SpecProvider serves a nested spec slice through the DataProvider capability.
type SpecProvider struct {
	specs []Spec
	byKey map[string]int
}

// NewSpecProvider wraps specs. The slice is not copied.
func NewSpecProvider(specs []Spec) *SpecProvider {
	byKey := make(map[string]int, len(specs))
	for i, s := range specs {
		if _, dup := byKey[s.key()]; !dup {
			byKey[s.key()] = i
		}
	}
	return &SpecProvider{specs: specs, byKey: byKey}
}

// Rows returns the wrapped specs.
func (p *SpecProvider) Rows() []Spec { return p.specs }

// IsEmpty reports whether there are no specs.
func (p *SpecProvider) IsEmpty() bool { return len(p.specs) == 0 }

// ChildDataProvider returns a provider over the children of the first spec
// with the given id, or nil when it has none.
func (p *SpecProvider) ChildDataProvider(id string) DataProvider {
	i, ok := p.byKey[id]
	if !ok {
		return nil
	}
	return p.ChildDataProviderAt(i)
}

// ChildDataProviderAt returns a provider over the children of specs[row].
func (p *SpecProvider) ChildDataProviderAt(row int) DataProvider {
	if row < 0 || row >= len(p.specs) || len(p.specs[row].Children) == 0 {
		return nil
	}
	return NewSpecProvider(p.specs[row].Children)
}

var (
	_ DataProvider = (*SpecProvider)(nil)
	_ RowProvider  = (*SpecProvider)(nil)
)
