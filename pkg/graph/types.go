package graph

import (
	"github.com/matzehuels/hierview/pkg/tree"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Visualization types.
const (
	VizTypeSunburst = "sunburst"
	VizTypeTreemap  = "treemap"
)

// VizTypes lists the supported visualization types.
var VizTypes = []string{VizTypeSunburst, VizTypeTreemap}

// IsVizType reports whether s names a supported visualization.
func IsVizType(s string) bool {
	return s == VizTypeSunburst || s == VizTypeTreemap
}

// =============================================================================
// Document - Input Hierarchy
// =============================================================================

// Document is the canonical input format: nested node specs plus the view
// options that travel with the data.
type Document struct {
	Nodes []tree.Spec `json:"nodes" yaml:"nodes" toml:"nodes"`

	// Expanded lists the ids disclosed by default. Empty means every node
	// is disclosed.
	Expanded []string `json:"expanded,omitempty" yaml:"expanded,omitempty" toml:"expanded,omitempty"`

	// HiddenCategories drops nodes carrying any of the categories.
	HiddenCategories []string `json:"hidden_categories,omitempty" yaml:"hidden_categories,omitempty" toml:"hidden_categories,omitempty"`

	// MaxDepth limits the levels built. 0 means unlimited.
	MaxDepth int `json:"max_depth,omitempty" yaml:"max_depth,omitempty" toml:"max_depth,omitempty"`
}

// IsEmpty reports whether the document has no top-level nodes.
func (d Document) IsEmpty() bool { return len(d.Nodes) == 0 }

// Provider returns a data provider over the document's nodes.
func (d Document) Provider() tree.DataProvider { return tree.NewSpecProvider(d.Nodes) }

// Disclosure returns the disclosure source described by Expanded.
func (d Document) Disclosure() tree.Disclosure {
	if len(d.Expanded) == 0 {
		return tree.All()
	}
	return &tree.IDList{IDs: append([]string(nil), d.Expanded...)}
}

// Depth returns MaxDepth as a tree depth limit.
func (d Document) Depth() int {
	if d.MaxDepth <= 0 {
		return tree.NoDepthLimit
	}
	return d.MaxDepth
}

// TreeOptions returns the construction options the document describes.
func (d Document) TreeOptions() tree.Options {
	return tree.Options{
		MaxDepth:   d.Depth(),
		Hidden:     tree.HideCategories(d.HiddenCategories...),
		Disclosure: d.Disclosure(),
	}
}

// NodeCount returns the number of specs in the document, nested ones
// included.
func (d Document) NodeCount() int {
	return countSpecs(d.Nodes)
}

func countSpecs(specs []tree.Spec) int {
	n := len(specs)
	for _, s := range specs {
		n += countSpecs(s.Children)
	}
	return n
}
