// Package sunburst assigns radial geometry to a tree.
//
// Each node occupies an annular sector. The ring thickness of a node is its
// radius unit times a scale chosen so the longest disclosed branch exactly
// fills the total radius. The angular extent of a node is split among its
// disclosed children in proportion to their positive sizes.
//
// Angles are radians measured clockwise from the positive x axis in screen
// coordinates. Stored start angles are not normalized and may exceed 2π.
package sunburst

import (
	"cmp"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/matzehuels/hierview/pkg/tree"
)

const (
	// DefaultRootRadiusUnit is the ring thickness of the root relative to
	// an ordinary node.
	DefaultRootRadiusUnit = 0.5

	// DefaultNodeRadiusUnit is the ring thickness of non-root nodes.
	DefaultNodeRadiusUnit = 1.0
)

// Options configures a sunburst layout pass.
type Options struct {
	TotalRadius float64
	StartAngle  float64
	AngleExtent float64

	// SortBySize processes children largest first. Ties keep input order.
	SortBySize bool

	// Mirror reverses child processing order for right-to-left layouts.
	Mirror bool

	RootRadiusUnit float64
	NodeRadiusUnit float64
}

// DefaultOptions returns a full-circle layout of the given radius starting
// at angle 0.
func DefaultOptions(totalRadius float64) Options {
	return Options{
		TotalRadius:    totalRadius,
		AngleExtent:    2 * math.Pi,
		RootRadiusUnit: DefaultRootRadiusUnit,
		NodeRadiusUnit: DefaultNodeRadiusUnit,
	}
}

func (o Options) withDefaults() Options {
	if o.RootRadiusUnit <= 0 {
		o.RootRadiusUnit = DefaultRootRadiusUnit
	}
	if o.NodeRadiusUnit <= 0 {
		o.NodeRadiusUnit = DefaultNodeRadiusUnit
	}
	return o
}

// RadiusUnit returns the ring thickness unit of n: its own override when
// positive, otherwise the root default when n is the layout root and the
// node default elsewhere.
func RadiusUnit(n *tree.Node, isRoot bool, opts Options) float64 {
	if n.RadiusUnit > 0 {
		return n.RadiusUnit
	}
	opts = opts.withDefaults()
	if isRoot {
		return opts.RootRadiusUnit
	}
	return opts.NodeRadiusUnit
}

// LongestBranchRadius returns the largest sum of radius units along any
// disclosed path from n to a leaf, with n taken as the layout root.
func LongestBranchRadius(n *tree.Node, opts Options) float64 {
	return branch(n, true, opts)
}

func branch(n *tree.Node, isRoot bool, opts Options) float64 {
	longest := 0.0
	for _, c := range DisclosedChildren(n) {
		longest = max(longest, branch(c, false, opts))
	}
	return RadiusUnit(n, isRoot, opts) + longest
}

// DisclosedChildren returns the children that take part in layout.
func DisclosedChildren(n *tree.Node) []*tree.Node {
	if !n.Disclosed {
		return nil
	}
	return n.Children
}

// Layout assigns radial geometry to root and its disclosed descendants. root
// need not be the tree root; a drilled-into node is laid out as the centre.
// Geometry from any earlier pass is cleared first, so nodes under a
// collapsed ancestor or with zero extent end with HasLayout false.
func Layout(root *tree.Node, opts Options) {
	if root == nil {
		return
	}
	opts = opts.withDefaults()
	tree.Walk(root, func(n *tree.Node) bool {
		n.ClearLayout()
		return true
	})
	if opts.TotalRadius <= 0 {
		return
	}

	l := layouter{
		opts:          opts,
		radiusPerUnit: opts.TotalRadius / LongestBranchRadius(root, opts),
	}
	l.place(root, true, 0, opts.StartAngle, opts.AngleExtent)
}

type layouter struct {
	opts          Options
	radiusPerUnit float64
}

func (l *layouter) place(n *tree.Node, isRoot bool, inner, start, extent float64) {
	if extent <= 0 {
		return
	}
	outer := inner + RadiusUnit(n, isRoot, l.opts)*l.radiusPerUnit
	n.SetRadial(tree.Radial{
		InnerRadius: inner,
		OuterRadius: outer,
		StartAngle:  start,
		AngleExtent: extent,
	})

	children := l.order(DisclosedChildren(n))
	sizes := make([]float64, len(children))
	for i, c := range children {
		sizes[i] = c.PositiveSize()
	}
	total := floats.Sum(sizes)
	if total <= 0 {
		return
	}

	offset := start
	for i, c := range children {
		if sizes[i] <= 0 {
			continue
		}
		share := extent * sizes[i] / total
		l.place(c, false, outer, offset, share)
		offset += share
	}
}

// order returns children in processing order without touching the tree.
func (l *layouter) order(children []*tree.Node) []*tree.Node {
	if !l.opts.SortBySize && !l.opts.Mirror {
		return children
	}
	out := slices.Clone(children)
	if l.opts.SortBySize {
		slices.SortStableFunc(out, func(a, b *tree.Node) int {
			return cmp.Compare(b.Size, a.Size)
		})
	}
	if l.opts.Mirror {
		slices.Reverse(out)
	}
	return out
}
