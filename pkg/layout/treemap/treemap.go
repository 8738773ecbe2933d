// Package treemap assigns nested rectangles to a tree.
//
// Both strategies share one traversal: an explicit stack of frames visited in
// pre-order, where each frame positions one node through setNodeBounds and
// then asks the strategy to divide the node's rectangle among its children.
// Only children with a positive size receive space. The traversal never
// recurses, so wide or deep trees cannot exhaust the call stack.
//
// The layout root is not drawn unless it has no children; its rectangle is
// the area available to the first level.
package treemap

import (
	"gonum.org/v1/gonum/floats"

	"github.com/matzehuels/hierview/pkg/tree"
)

// frame is one pending node of the iterative traversal.
type frame struct {
	n      *tree.Node
	bounds tree.Rect
	depth  int // relative to the layout root
}

// Layout lays out root and its descendants into bounds and returns the next
// unused z-index. Geometry from earlier passes is cleared for the subtree
// only; nodes outside it keep their rectangles.
func Layout(root *tree.Node, bounds tree.Rect, opts Options) int {
	l := &layouter{opts: opts, z: opts.ZBase}
	if root == nil {
		return l.z
	}
	tree.Walk(root, func(n *tree.Node) bool {
		n.ClearLayout()
		return true
	})
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return l.z
	}

	stack := []frame{{n: root, bounds: bounds}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		inner, ok := l.setNodeBounds(f.n, f.bounds, f.depth)
		if !ok || f.n.IsLeaf() {
			continue
		}

		kids, rects := l.partition(f.n, inner, f.depth)
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{n: kids[i], bounds: rects[i], depth: f.depth + 1})
		}
	}
	return l.z
}

type layouter struct {
	opts Options
	z    int
}

// setNodeBounds applies the gap inset, records the node's rectangle with the
// next z-index and returns the area available to its children. It reports
// false when nothing is left after the inset.
func (l *layouter) setNodeBounds(n *tree.Node, r tree.Rect, depth int) (tree.Rect, bool) {
	if depth == 0 {
		if n.IsLeaf() {
			r.ZIndex = l.z
			l.z++
			n.SetRect(r)
		}
		return r, true
	}

	g := l.gap(r, depth)
	r = tree.Rect{X: r.X + g/2, Y: r.Y + g/2, Width: r.Width - g, Height: r.Height - g}
	if r.Width <= 0 || r.Height <= 0 {
		return tree.Rect{}, false
	}
	r.ZIndex = l.z
	l.z++
	n.SetRect(r)
	return r, true
}

func (l *layouter) gap(r tree.Rect, depth int) float64 {
	switch {
	case l.opts.Gap == GapNone:
		return 0
	case l.opts.Gap == GapOuter && depth != 1:
		return 0
	case r.Width < l.opts.MinGapExtent || r.Height < l.opts.MinGapExtent:
		return 0
	default:
		return max(l.opts.GapSize, 0)
	}
}

// partition divides area among the positively sized children of n. The
// returned slices are aligned and keep the children's tree order.
func (l *layouter) partition(n *tree.Node, area tree.Rect, depth int) ([]*tree.Node, []tree.Rect) {
	kids := make([]*tree.Node, 0, len(n.Children))
	sizes := make([]float64, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Size > 0 {
			kids = append(kids, c)
			sizes = append(sizes, c.Size)
		}
	}
	total := floats.Sum(sizes)
	if len(kids) == 0 || total <= 0 {
		return nil, nil
	}

	var rects []tree.Rect
	switch l.opts.Strategy {
	case SliceAndDice:
		horizontal := l.opts.Horizontal == (depth%2 == 0)
		rects = sliceAndDice(kids, sizes, total, area, horizontal, l.opts)
	default:
		areas := make([]float64, len(sizes))
		floats.ScaleTo(areas, area.Area()/total, sizes)
		rects = squarify(areas, area)
		if l.opts.Mirror {
			for i := range rects {
				rects[i] = mirror(rects[i], area)
			}
		}
	}
	return kids, rects
}

// mirror reflects r horizontally inside area.
func mirror(r, area tree.Rect) tree.Rect {
	r.X = 2*area.X + area.Width - r.X - r.Width
	return r
}
