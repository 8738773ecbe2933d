package graph

import (
	json "github.com/goccy/go-json"

	errs "github.com/matzehuels/hierview/pkg/errors"
	"github.com/matzehuels/hierview/pkg/tree"
)

// =============================================================================
// Layout - Placed Nodes
// =============================================================================

// Layout is the serialization format for a laid-out pass.
//
// Check VizType to determine which geometry the nodes carry:
//
//	Sunburst ("sunburst"): Node.Radial, relative to the chart centre
//	Treemap ("treemap"):   Node.Rect, in frame coordinates
//
// Only nodes with layout are listed, in pre-order from the display root.
type Layout struct {
	VizType string  `json:"viz_type"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Radius  float64 `json:"radius,omitempty"`

	// View state the layout was computed for.
	RootID   string   `json:"root_id,omitempty"`
	Isolated []string `json:"isolated,omitempty"`

	Nodes []Node `json:"nodes"`
}

// Node is a placed node.
type Node struct {
	ID         string   `json:"id"`
	Label      string   `json:"label,omitempty"`
	Parent     string   `json:"parent,omitempty"`
	Depth      int      `json:"depth"`
	Size       float64  `json:"size"`
	Color      string   `json:"color,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Expandable bool     `json:"expandable,omitempty"`
	Disclosed  bool     `json:"disclosed,omitempty"`

	Radial *Radial `json:"radial,omitempty"`
	Rect   *Rect   `json:"rect,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Radial is an annular sector in radians.
type Radial struct {
	Inner  float64 `json:"inner"`
	Outer  float64 `json:"outer"`
	Start  float64 `json:"start"`
	Extent float64 `json:"extent"`
}

// Rect is a stacked rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	ZIndex int     `json:"z_index"`
}

// IsSunburst returns true if this is a sunburst layout.
func (l *Layout) IsSunburst() bool { return l.VizType == VizTypeSunburst }

// IsTreemap returns true if this is a treemap layout.
func (l *Layout) IsTreemap() bool { return l.VizType == VizTypeTreemap }

// Find returns the placed node with the given id, or nil.
func (l *Layout) Find(id string) *Node {
	for i := range l.Nodes {
		if l.Nodes[i].ID == id {
			return &l.Nodes[i]
		}
	}
	return nil
}

// NewLayout collects the placed nodes under root. Frame dimensions are left
// to the caller.
func NewLayout(vizType string, root *tree.Node) Layout {
	l := Layout{VizType: vizType, Nodes: []Node{}}
	if root == nil {
		return l
	}
	l.RootID = root.ID
	tree.Walk(root, func(n *tree.Node) bool {
		if n.HasLayout {
			l.Nodes = append(l.Nodes, NewNode(n))
		}
		return true
	})
	return l
}

// NewNode converts a tree node. It is the single point of conversion from
// tree nodes.
func NewNode(n *tree.Node) Node {
	out := Node{
		ID:         n.ID,
		Label:      n.Label,
		Depth:      n.Depth,
		Size:       n.Size,
		Color:      n.Color,
		Categories: n.Categories,
		Expandable: n.Expandable,
		Disclosed:  n.Disclosed,
	}
	if n.Parent != nil {
		out.Parent = n.Parent.ID
	}
	switch g := n.Geometry; g.Kind {
	case tree.GeometryRadial:
		out.Radial = &Radial{
			Inner:  g.Radial.InnerRadius,
			Outer:  g.Radial.OuterRadius,
			Start:  g.Radial.StartAngle,
			Extent: g.Radial.AngleExtent,
		}
	case tree.GeometryRect:
		out.Rect = &Rect{
			X:      g.Rect.X,
			Y:      g.Rect.Y,
			Width:  g.Rect.Width,
			Height: g.Rect.Height,
			ZIndex: g.Rect.ZIndex,
		}
	}
	return out
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that every node carries the geometry of the viz type.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	if !IsVizType(l.VizType) {
		return Layout{}, errs.New(errs.ErrCodeInvalidVizType, "unknown viz type %q", l.VizType)
	}
	for _, n := range l.Nodes {
		if l.IsSunburst() && n.Radial == nil {
			return Layout{}, errs.New(errs.ErrCodeInvalidFormat, "sunburst node %s has no radial geometry", n.ID)
		}
		if l.IsTreemap() && n.Rect == nil {
			return Layout{}, errs.New(errs.ErrCodeInvalidFormat, "treemap node %s has no rect", n.ID)
		}
	}
	return l, nil
}
