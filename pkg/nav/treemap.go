package nav

import (
	"math"

	"github.com/matzehuels/hierview/pkg/tree"
)

// Treemap moves focus across rectangular geometry. Root is the navigation
// root: the isolated node while isolation is active, otherwise the tree
// root. Focus never leaves Root's subtree and never lands on Root itself
// unless Root is the only drawn node.
type Treemap struct {
	Root  *tree.Node
	Focus *tree.Node
}

// Move applies k and returns the new focus.
func (m *Treemap) Move(k Key) *tree.Node {
	cur := m.Focus
	if cur == nil || !cur.HasLayout || (cur != m.Root && !m.Root.IsAncestorOf(cur)) {
		m.Focus = First(m.Root)
		return m.Focus
	}

	var next *tree.Node
	switch k {
	case Parent:
		if p := cur.Parent; cur != m.Root && p != nil && p != m.Root && p.HasLayout {
			next = p
		}
	case Child:
		next = lastVisited(cur)
		if next == nil {
			if kids := laidOutChildren(cur); len(kids) > 0 {
				next = kids[0]
			}
		}
	case Up, Down, Left, Right:
		next = m.directional(cur, k)
	}
	if next == nil {
		next = cur
	}
	record(cur, next)
	m.Focus = next
	return next
}

// directional returns the same-depth node whose centre lies in direction k
// and is closest by Manhattan distance.
func (m *Treemap) directional(n *tree.Node, k Key) *tree.Node {
	cx, cy := n.Geometry.Rect.Center()
	var best *tree.Node
	bestDist := math.Inf(1)
	for _, c := range sameDepth(m.Root, n) {
		if c == n {
			continue
		}
		bx, by := c.Geometry.Rect.Center()
		switch {
		case k == Right && bx <= cx,
			k == Left && bx >= cx,
			k == Down && by <= cy,
			k == Up && by >= cy:
			continue
		}
		if d := math.Abs(bx-cx) + math.Abs(by-cy); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// First returns the first drawn node under root in pre-order, or nil.
func First(root *tree.Node) *tree.Node {
	var first *tree.Node
	tree.Walk(root, func(n *tree.Node) bool {
		if first != nil {
			return false
		}
		if n.HasLayout {
			first = n
			return false
		}
		return true
	})
	return first
}
