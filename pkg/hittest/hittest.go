// Package hittest maps a point to the deepest laid-out node that contains it.
//
// Both searches walk down a single path from the given root, so a query
// costs O(depth × fan-out) and never visits unrelated subtrees. Nodes
// without layout are never returned.
package hittest

import (
	"math"

	"github.com/matzehuels/hierview/pkg/tree"
)

const twoPi = 2 * math.Pi

// NormalizeAngle maps angle into [start, start+2π).
func NormalizeAngle(angle, start float64) float64 {
	d := math.Mod(angle-start, twoPi)
	if d < 0 {
		d += twoPi
	}
	return start + d
}

// InSector reports whether angle falls inside the sector's angular range.
func InSector(g tree.Radial, angle float64) bool {
	a := NormalizeAngle(angle, g.StartAngle)
	return a <= g.StartAngle+g.AngleExtent
}

// InRing reports whether r falls inside the sector's radial range.
func InRing(g tree.Radial, r float64) bool {
	return r >= g.InnerRadius && r <= g.OuterRadius
}

// Radial returns the deepest node whose sector contains the polar point
// (r, angle), or nil.
func Radial(root *tree.Node, r, angle float64) *tree.Node {
	if !isRadial(root) || !InSector(root.Geometry.Radial, angle) {
		return nil
	}

	var hit *tree.Node
	for n := root; n != nil; {
		if InRing(n.Geometry.Radial, r) {
			hit = n
		}
		var next *tree.Node
		for _, c := range n.Children {
			if isRadial(c) && InSector(c.Geometry.Radial, angle) {
				next = c
				break
			}
		}
		n = next
	}
	return hit
}

// RadialPoint converts the screen point (x, y) to polar coordinates around
// the centre (cx, cy) and hit-tests it.
func RadialPoint(root *tree.Node, cx, cy, x, y float64) *tree.Node {
	dx, dy := x-cx, y-cy
	return Radial(root, math.Hypot(dx, dy), math.Atan2(dy, dx))
}

// Rect returns the deepest laid-out node whose rectangle contains (x, y), or
// nil. The root itself may lack layout, as treemap roots with children do;
// the search then starts at its children.
func Rect(root *tree.Node, x, y float64) *tree.Node {
	if root == nil {
		return nil
	}
	var hit *tree.Node
	if root.HasLayout {
		if !root.Geometry.Rect.Contains(x, y) {
			return nil
		}
		hit = root
	}

	for n := root; n != nil; {
		var next *tree.Node
		for _, c := range n.Children {
			if c.HasLayout && c.Geometry.Kind == tree.GeometryRect && c.Geometry.Rect.Contains(x, y) {
				next = c
				break
			}
		}
		if next != nil {
			hit = next
		}
		n = next
	}
	return hit
}

func isRadial(n *tree.Node) bool {
	return n != nil && n.HasLayout && n.Geometry.Kind == tree.GeometryRadial
}
