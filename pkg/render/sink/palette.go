package sink

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/hierview/pkg/graph"
)

const goldenAngle = 137.50776405

var rootColor = colorful.Color{R: 0.85, G: 0.85, B: 0.85}

// Palette assigns fill colours to the nodes of a layout.
type Palette struct {
	branch map[string]int // node id -> top-level branch ordinal
	top    map[string]int // node id -> depth of its branch head
	nodes  map[string]*graph.Node
	root   string
}

// NewPalette indexes l. Branch heads are the children of the layout root,
// numbered in layout order.
func NewPalette(l graph.Layout) *Palette {
	p := &Palette{
		branch: make(map[string]int, len(l.Nodes)),
		top:    make(map[string]int, len(l.Nodes)),
		nodes:  make(map[string]*graph.Node, len(l.Nodes)),
		root:   l.RootID,
	}
	for i := range l.Nodes {
		p.nodes[l.Nodes[i].ID] = &l.Nodes[i]
	}
	heads := 0
	for i := range l.Nodes {
		n := &l.Nodes[i]
		if n.ID == p.root {
			continue
		}
		parent, ok := p.nodes[n.Parent]
		switch {
		case n.Parent == p.root || !ok:
			p.branch[n.ID] = heads
			p.top[n.ID] = n.Depth
			heads++
		default:
			p.branch[n.ID] = p.branch[parent.ID]
			p.top[n.ID] = p.top[parent.ID]
		}
	}
	return p
}

// Color returns the fill for n.
func (p *Palette) Color(n *graph.Node) colorful.Color {
	if n.Color != "" {
		if c, err := colorful.Hex(n.Color); err == nil {
			return c
		}
	}
	b, ok := p.branch[n.ID]
	if !ok {
		return rootColor
	}
	hue := math.Mod(float64(b)*goldenAngle, 360)
	light := 0.62 + 0.07*float64(n.Depth-p.top[n.ID])
	return colorful.Hcl(hue, 0.45, math.Min(light, 0.92)).Clamped()
}

// Stroke returns a darker shade of fill for outlines.
func Stroke(fill colorful.Color) colorful.Color {
	h, c, l := fill.Hcl()
	return colorful.Hcl(h, c, l*0.7).Clamped()
}
