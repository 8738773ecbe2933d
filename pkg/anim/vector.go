package anim

import (
	"slices"

	"github.com/matzehuels/hierview/pkg/tree"
)

// Vector layout: four geometry parameters, three color channels, alpha.
//
//	radial: inner, outer, start, extent, r, g, b, alpha
//	rect:   x, y, width, height, r, g, b, alpha
const (
	VectorLen = 8
	AlphaIdx  = 7
)

// Vector returns the animatable state of n: its geometry, its color and an
// opaque alpha. A node without layout has zero geometry.
func Vector(n *tree.Node) []float64 {
	v := make([]float64, VectorLen)
	if n.HasLayout {
		switch n.Geometry.Kind {
		case tree.GeometryRadial:
			g := n.Geometry.Radial
			v[0], v[1], v[2], v[3] = g.InnerRadius, g.OuterRadius, g.StartAngle, g.AngleExtent
		case tree.GeometryRect:
			g := n.Geometry.Rect
			v[0], v[1], v[2], v[3] = g.X, g.Y, g.Width, g.Height
		}
	}
	c := n.RGB()
	v[4], v[5], v[6] = c.R, c.G, c.B
	v[AlphaIdx] = 1
	return v
}

// transparent returns a copy of v with alpha 0.
func transparent(v []float64) []float64 {
	out := slices.Clone(v)
	out[AlphaIdx] = 0
	return out
}

// Lerp interpolates between a and b at t in [0, 1].
func Lerp(a, b []float64, t float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + (b[i]-a[i])*t
	}
	return out
}
