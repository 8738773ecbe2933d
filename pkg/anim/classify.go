package anim

import (
	"slices"

	"github.com/matzehuels/hierview/pkg/tree"
)

// Classify diffs the previous display root against the current one.
// Ancestor chains run from the parent of each root up to the tree root.
// Nil roots stand for an empty pass.
func Classify(oldRoot, newRoot *tree.Node, oldAncestors, newAncestors []*tree.Node) Result {
	d := &differ{oldAncestors: make(map[string]bool, len(oldAncestors))}
	for _, a := range oldAncestors {
		d.oldAncestors[a.ID] = true
	}

	res := Result{IsDrill: IsDrill(oldRoot, newRoot, oldAncestors, newAncestors)}
	switch {
	case res.IsDrill:
		d.drill(oldRoot, newRoot)
	default:
		d.pair(oldRoot, newRoot)
	}
	sortTasks(d.tasks)
	res.Tasks = d.tasks
	return res
}

// IsDrill reports whether the view moved strictly up or down one tree: the
// new root's ancestors contain the old root, or the old root's ancestors
// contain the new root. Nodes are matched by id.
func IsDrill(oldRoot, newRoot *tree.Node, oldAncestors, newAncestors []*tree.Node) bool {
	if oldRoot == nil || newRoot == nil || oldRoot.ID == newRoot.ID {
		return false
	}
	return containsID(newAncestors, oldRoot.ID) || containsID(oldAncestors, newRoot.ID)
}

func containsID(nodes []*tree.Node, id string) bool {
	return slices.ContainsFunc(nodes, func(n *tree.Node) bool { return n.ID == id })
}

type differ struct {
	oldAncestors map[string]bool
	tasks        []Task
}

// drill diffs the flattened subtrees by id.
func (d *differ) drill(oldRoot, newRoot *tree.Node) {
	olds := tree.Flatten(oldRoot)
	byID := make(map[string]*tree.Node, len(olds))
	for _, n := range olds {
		if _, dup := byID[n.ID]; !dup {
			byID[n.ID] = n
		}
	}

	seen := make(map[string]bool, len(byID))
	for _, n := range tree.Flatten(newRoot) {
		if o, ok := byID[n.ID]; ok && !seen[n.ID] {
			seen[n.ID] = true
			d.diff(o, n)
			continue
		}
		if !d.oldAncestors[n.ID] {
			d.diff(nil, n)
		}
	}
	for _, o := range olds {
		if !seen[o.ID] {
			d.diff(o, nil)
		}
	}
}

// pair diffs two nodes occupying the same tree position and recurses into
// their children matched by id.
func (d *differ) pair(o, n *tree.Node) {
	switch {
	case o == nil && n == nil:
		return
	case o == nil:
		d.insert(n)
		return
	case n == nil:
		d.delete(o)
		return
	}

	d.diff(o, n)

	olds := make(map[string]*tree.Node, len(o.Children))
	for _, c := range o.Children {
		if _, dup := olds[c.ID]; !dup {
			olds[c.ID] = c
		}
	}
	for _, c := range n.Children {
		if oc, ok := olds[c.ID]; ok {
			delete(olds, c.ID)
			d.pair(oc, c)
		} else {
			d.insert(c)
		}
	}
	for _, c := range o.Children {
		if olds[c.ID] == c {
			d.delete(c)
		}
	}
}

// insert adds n and its subtree, unless n was an ancestor of the old root.
func (d *differ) insert(n *tree.Node) {
	if d.oldAncestors[n.ID] {
		return
	}
	tree.Walk(n, func(c *tree.Node) bool {
		d.diff(nil, c)
		return true
	})
}

// delete removes o and its subtree.
func (d *differ) delete(o *tree.Node) {
	tree.Walk(o, func(c *tree.Node) bool {
		d.diff(c, nil)
		return true
	})
}

// diff emits at most one task for a node seen in either pass. Only nodes
// with layout are visible; a node that gains or loses layout is inserted or
// deleted.
func (d *differ) diff(o, n *tree.Node) {
	oldVisible := o != nil && o.HasLayout
	newVisible := n != nil && n.HasLayout

	switch {
	case oldVisible && newVisible:
		start, end := Vector(o), Vector(n)
		if slices.Equal(start, end) {
			return
		}
		d.add(n, Update, start, end)
	case newVisible:
		end := Vector(n)
		d.add(n, Insert, transparent(end), end)
	case oldVisible:
		start := Vector(o)
		d.add(o, Delete, start, transparent(start))
	}
}

func (d *differ) add(n *tree.Node, k Kind, start, end []float64) {
	d.tasks = append(d.tasks, newTask(n, k, start, end))
}
