package tree

import (
	"math"

	"github.com/google/uuid"
)

// GeometryKind identifies which payload of a [Geometry] is populated.
type GeometryKind int

const (
	// GeometryNone means the node has not been placed by any layout.
	GeometryNone GeometryKind = iota
	// GeometryRadial is produced by the sunburst layout.
	GeometryRadial
	// GeometryRect is produced by the treemap layout.
	GeometryRect
)

// String returns the lowercase name of the geometry kind.
func (k GeometryKind) String() string {
	switch k {
	case GeometryRadial:
		return "radial"
	case GeometryRect:
		return "rect"
	default:
		return "none"
	}
}

// Radial is an annular sector. Angles are in radians, measured clockwise
// from the positive x axis in screen coordinates (y grows downward).
// StartAngle may lie outside [0, 2π).
type Radial struct {
	InnerRadius float64
	OuterRadius float64
	StartAngle  float64
	AngleExtent float64
}

// MidAngle returns the angle halfway through the sector.
func (r Radial) MidAngle() float64 { return r.StartAngle + r.AngleExtent/2 }

// MidRadius returns the radius halfway through the ring.
func (r Radial) MidRadius() float64 { return (r.InnerRadius + r.OuterRadius) / 2 }

// Centroid returns the cartesian point at the middle of the sector relative
// to the chart centre.
func (r Radial) Centroid() (x, y float64) {
	a, m := r.MidAngle(), r.MidRadius()
	return m * math.Cos(a), m * math.Sin(a)
}

// Rect is an axis-aligned rectangle with a stacking order.
type Rect struct {
	X, Y          float64
	Width, Height float64
	ZIndex        int
}

// Center returns the centre point of the rectangle.
func (r Rect) Center() (x, y float64) { return r.X + r.Width/2, r.Y + r.Height/2 }

// Area returns Width*Height.
func (r Rect) Area() float64 { return r.Width * r.Height }

// Contains reports whether (x, y) lies inside or on the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// Geometry is the layout payload of a node. Only the field selected by Kind
// is meaningful.
type Geometry struct {
	Kind   GeometryKind
	Radial Radial
	Rect   Rect
}

// Node is a single element of a [Tree].
type Node struct {
	// Identity
	ID      string
	StampID uuid.UUID
	Index   int // ordinal among siblings

	// Values
	Size       float64
	Color      string
	Label      string
	Categories []string

	// Hierarchy
	Parent   *Node
	Children []*Node
	Depth    int

	// State
	Disclosed        bool
	Expandable       bool // input declared children, whether or not they were built
	ArtificialRoot   bool
	Selected         bool
	LastVisitedChild *Node
	RadiusUnit       float64 // 0 means the layout default

	// Layout
	Geometry  Geometry
	HasLayout bool
}

// IsLeaf reports whether the node has no built children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// PositiveSize returns max(Size, 0).
func (n *Node) PositiveSize() float64 {
	if n.Size > 0 {
		return n.Size
	}
	return 0
}

// SetRadial stores a radial geometry and marks the node as laid out.
func (n *Node) SetRadial(r Radial) {
	n.Geometry = Geometry{Kind: GeometryRadial, Radial: r}
	n.HasLayout = true
}

// SetRect stores a rectangular geometry and marks the node as laid out.
func (n *Node) SetRect(r Rect) {
	n.Geometry = Geometry{Kind: GeometryRect, Rect: r}
	n.HasLayout = true
}

// ClearLayout drops the node's geometry.
func (n *Node) ClearLayout() {
	n.Geometry = Geometry{}
	n.HasLayout = false
}

// IsAncestorOf reports whether n is a strict ancestor of other.
func (n *Node) IsAncestorOf(other *Node) bool {
	for p := other.Parent; p != nil; p = p.Parent {
		if p == n {
			return true
		}
	}
	return false
}
