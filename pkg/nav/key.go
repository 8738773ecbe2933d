// Package nav implements keyboard focus movement over a laid-out tree.
//
// There is one state machine per geometry. Both only ever move focus to
// nodes with layout, treat impossible moves as a no-op that keeps the
// current focus, and record LastVisitedChild on the parent side of every
// move so that stepping back out and in again returns to the same child.
package nav

import (
	"strings"

	"github.com/matzehuels/hierview/pkg/tree"
)

// Key is a navigation command.
type Key int

const (
	KeyNone Key = iota
	Up
	Down
	Left
	Right
	Parent
	Child
)

var keyNames = map[Key]string{
	KeyNone: "none",
	Up:      "up",
	Down:    "down",
	Left:    "left",
	Right:   "right",
	Parent:  "parent",
	Child:   "child",
}

// String returns the lowercase command name.
func (k Key) String() string {
	if s, ok := keyNames[k]; ok {
		return s
	}
	return "none"
}

// ParseKey maps a key name, as reported by terminals or browsers, to a
// command. Both "alt+up" and "[" select Parent; "alt+down" and "]" select
// Child.
func ParseKey(s string) (Key, bool) {
	switch strings.ToLower(s) {
	case "up", "arrowup", "k":
		return Up, true
	case "down", "arrowdown", "j":
		return Down, true
	case "left", "arrowleft", "h":
		return Left, true
	case "right", "arrowright", "l":
		return Right, true
	case "alt+up", "[", "parent":
		return Parent, true
	case "alt+down", "]", "child":
		return Child, true
	default:
		return KeyNone, false
	}
}

// record stores the bookkeeping for a move from prev to next.
func record(prev, next *tree.Node) {
	if next == nil || prev == next {
		return
	}
	if next.Parent != nil {
		next.Parent.LastVisitedChild = next
	}
	if prev != nil && prev.Parent == next {
		next.LastVisitedChild = prev
	}
}

// laidOutChildren returns the children of n that have layout.
func laidOutChildren(n *tree.Node) []*tree.Node {
	var out []*tree.Node
	for _, c := range n.Children {
		if c.HasLayout {
			out = append(out, c)
		}
	}
	return out
}

// lastVisited returns n's remembered child if it is still a laid-out child.
func lastVisited(n *tree.Node) *tree.Node {
	c := n.LastVisitedChild
	if c == nil || c.Parent != n || !c.HasLayout {
		return nil
	}
	return c
}

// sameDepth returns the laid-out nodes under root at the depth of n, in
// pre-order.
func sameDepth(root, n *tree.Node) []*tree.Node {
	var out []*tree.Node
	tree.Walk(root, func(c *tree.Node) bool {
		if c.Depth == n.Depth {
			if c.HasLayout {
				out = append(out, c)
			}
			return false
		}
		return c.Depth < n.Depth
	})
	return out
}
