package anim

import (
	"slices"

	"github.com/matzehuels/hierview/pkg/tree"
)

// Snapshot holds the vectors of the laid-out nodes of a subtree, keyed by id.
// It lets a caller re-lay out part of a tree in place and still animate from
// the old geometry.
type Snapshot map[string][]float64

// Capture records the current vectors under root.
func Capture(root *tree.Node) Snapshot {
	s := Snapshot{}
	tree.Walk(root, func(n *tree.Node) bool {
		if n.HasLayout {
			s[n.ID] = Vector(n)
		}
		return true
	})
	return s
}

// Changes diffs a snapshot against the current geometry under root. Nodes
// visible in both are updates, nodes only visible now are inserts and nodes
// that lost their layout are deletes.
func Changes(before Snapshot, root *tree.Node) Result {
	var tasks []Task
	tree.Walk(root, func(n *tree.Node) bool {
		prev, had := before[n.ID]
		switch {
		case had && n.HasLayout:
			if cur := Vector(n); !slices.Equal(prev, cur) {
				tasks = append(tasks, newTask(n, Update, prev, cur))
			}
		case n.HasLayout:
			cur := Vector(n)
			tasks = append(tasks, newTask(n, Insert, transparent(cur), cur))
		case had:
			tasks = append(tasks, newTask(n, Delete, prev, transparent(prev)))
		}
		return true
	})
	sortTasks(tasks)
	return Result{Tasks: tasks}
}

func newTask(n *tree.Node, k Kind, start, end []float64) Task {
	return Task{NodeID: n.ID, Kind: k, Start: start, End: end, Priority: k.Priority(), Node: n}
}
