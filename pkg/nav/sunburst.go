package nav

import (
	"math"
	"slices"

	"github.com/matzehuels/hierview/pkg/hittest"
	"github.com/matzehuels/hierview/pkg/tree"
)

// Sunburst moves focus across radial geometry.
//
// Up and Down move outward when the key points the same way as the focused
// sector (sectors in the upper half open upward on screen) and inward to the
// parent otherwise. From the centre both keys move outward into the matching
// half. Left and Right cycle through laid-out nodes of the same depth in
// angular order, wrapping around.
type Sunburst struct {
	Root   *tree.Node
	Focus  *tree.Node
	Mirror bool
}

// Move applies k and returns the new focus.
func (s *Sunburst) Move(k Key) *tree.Node {
	cur := s.Focus
	if cur == nil || !cur.HasLayout {
		s.Focus = s.Root
		return s.Focus
	}

	var next *tree.Node
	switch k {
	case Left, Right:
		next = s.sibling(cur, k)
	case Up, Down:
		if s.outward(cur, k) {
			next = s.child(cur, k)
		} else {
			next = s.parent(cur)
		}
	case Parent:
		next = s.parent(cur)
	case Child:
		next = s.child(cur, KeyNone)
	}
	if next == nil {
		next = cur
	}
	record(cur, next)
	s.Focus = next
	return next
}

func (s *Sunburst) outward(n *tree.Node, k Key) bool {
	if n == s.Root {
		return true
	}
	upper := math.Sin(n.Geometry.Radial.MidAngle()) < 0
	return upper == (k == Up)
}

func (s *Sunburst) parent(n *tree.Node) *tree.Node {
	if n == s.Root || n.Parent == nil || !n.Parent.HasLayout {
		return nil
	}
	return n.Parent
}

// child picks the outward target. For Up and Down only children in the
// half-plane the key points at are candidates, when there are any; the
// remembered child wins among them, else the one closest in angle to n
// (to straight up or down from the root).
func (s *Sunburst) child(n *tree.Node, k Key) *tree.Node {
	kids := laidOutChildren(n)
	if len(kids) == 0 {
		return nil
	}

	target := n.Geometry.Radial.MidAngle()
	if k == Up || k == Down {
		if n == s.Root {
			target = math.Pi / 2
			if k == Up {
				target = -math.Pi / 2
			}
		}
		if half := inHalfPlane(kids, k); len(half) > 0 {
			kids = half
		}
	}

	if last := lastVisited(n); last != nil && slices.Contains(kids, last) {
		return last
	}
	return nearest(kids, target)
}

// inHalfPlane returns the nodes whose mid-angle opens the way k points.
// Screen y grows downward, so the upper half has negative sine.
func inHalfPlane(nodes []*tree.Node, k Key) []*tree.Node {
	var out []*tree.Node
	for _, c := range nodes {
		if (math.Sin(c.Geometry.Radial.MidAngle()) < 0) == (k == Up) {
			out = append(out, c)
		}
	}
	return out
}

func (s *Sunburst) sibling(n *tree.Node, k Key) *tree.Node {
	ring := sameDepth(s.Root, n)
	if len(ring) < 2 {
		return nil
	}
	base := s.Root.Geometry.Radial.StartAngle
	slices.SortStableFunc(ring, func(a, b *tree.Node) int {
		x := hittest.NormalizeAngle(a.Geometry.Radial.StartAngle, base)
		y := hittest.NormalizeAngle(b.Geometry.Radial.StartAngle, base)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	})

	i := slices.Index(ring, n)
	step := 1
	if (k == Left) != s.Mirror {
		step = -1
	}
	return ring[(i+step+len(ring))%len(ring)]
}

// nearest returns the node whose mid-angle is angularly closest to target.
func nearest(nodes []*tree.Node, target float64) *tree.Node {
	var best *tree.Node
	bestDist := math.Inf(1)
	for _, c := range nodes {
		d := angularDistance(c.Geometry.Radial.MidAngle(), target)
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func angularDistance(a, b float64) float64 {
	return math.Abs(math.Remainder(a-b, 2*math.Pi))
}
