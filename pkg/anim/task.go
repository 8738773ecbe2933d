package anim

import (
	"fmt"
	"slices"

	"github.com/matzehuels/hierview/pkg/tree"
)

// Kind is the type of change a task animates.
type Kind int

const (
	Delete Kind = iota
	Update
	Insert
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case Delete:
		return "delete"
	case Update:
		return "update"
	case Insert:
		return "insert"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "delete":
		*k = Delete
	case "update":
		*k = Update
	case "insert":
		*k = Insert
	default:
		return fmt.Errorf("unknown task kind %q", b)
	}
	return nil
}

// Priority orders animation phases. Lower values run first.
type Priority int

// Phase priorities. The order delete < update < insert must not change.
const (
	PriorityDelete Priority = 0
	PriorityUpdate Priority = 1
	PriorityInsert Priority = 2
)

// Priority returns the phase a task of kind k runs in.
func (k Kind) Priority() Priority {
	switch k {
	case Delete:
		return PriorityDelete
	case Insert:
		return PriorityInsert
	default:
		return PriorityUpdate
	}
}

// Task animates one node from Start to End.
type Task struct {
	NodeID   string     `json:"node_id"`
	Kind     Kind       `json:"kind"`
	Start    []float64  `json:"start"`
	End      []float64  `json:"end"`
	Priority Priority   `json:"priority"`
	Node     *tree.Node `json:"-"` // from the pass that owns the drawn shape
}

// Result is the outcome of comparing two passes.
type Result struct {
	IsDrill bool   `json:"is_drill"`
	Tasks   []Task `json:"tasks"`
}

// Count returns the number of tasks of kind k.
func (r Result) Count(k Kind) int {
	n := 0
	for _, t := range r.Tasks {
		if t.Kind == k {
			n++
		}
	}
	return n
}

// Find returns the task for the node id, or nil.
func (r Result) Find(id string) *Task {
	for i := range r.Tasks {
		if r.Tasks[i].NodeID == id {
			return &r.Tasks[i]
		}
	}
	return nil
}

func sortTasks(tasks []Task) {
	slices.SortStableFunc(tasks, func(a, b Task) int {
		return int(a.Priority) - int(b.Priority)
	})
}
