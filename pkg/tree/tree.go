package tree

import "strings"

// Tree is the per-pass hierarchy. It owns every node reachable from Root.
type Tree struct {
	Root *Node
	byID map[string]*Node
	size int
}

// newTree assigns depths and builds the id index.
func newTree(root *Node) *Tree {
	t := &Tree{Root: root, byID: make(map[string]*Node)}
	root.Depth = 0
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		t.size++
		if _, dup := t.byID[n.ID]; !dup {
			t.byID[n.ID] = n
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			c := n.Children[i]
			c.Depth = n.Depth + 1
			stack = append(stack, c)
		}
	}
	return t
}

// Find returns the node with the given id, or nil when there is none.
func (t *Tree) Find(id string) *Node {
	if t == nil {
		return nil
	}
	return t.byID[id]
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return t.size
}

// IDs returns every node id in pre-order.
func (t *Tree) IDs() []string {
	if t == nil {
		return nil
	}
	nodes := Flatten(t.Root)
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}

// ClearLayout drops the geometry of every node.
func (t *Tree) ClearLayout() {
	if t == nil {
		return
	}
	Walk(t.Root, func(n *Node) bool {
		n.ClearLayout()
		return true
	})
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the node's subtree.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(cur) {
			continue
		}
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
}

// Flatten returns n and all its descendants in pre-order.
func Flatten(n *Node) []*Node {
	var out []*Node
	Walk(n, func(c *Node) bool {
		out = append(out, c)
		return true
	})
	return out
}

// Ancestors returns the chain from n's parent up to the root.
func Ancestors(n *Node) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for p := n.Parent; p != nil; p = p.Parent {
		out = append(out, p)
	}
	return out
}

// Outline renders the id structure of a subtree, e.g. "A(A1,A2)". Two
// subtrees with equal outlines have the same ids in the same shape.
func Outline(n *Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	writeOutline(&b, n)
	return b.String()
}

func writeOutline(b *strings.Builder, n *Node) {
	b.WriteString(n.ID)
	if len(n.Children) == 0 {
		return
	}
	b.WriteByte('(')
	for i, c := range n.Children {
		if i > 0 {
			b.WriteByte(',')
		}
		writeOutline(b, c)
	}
	b.WriteByte(')')
}
