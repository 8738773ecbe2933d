package graph

import (
	json "github.com/goccy/go-json"

	"github.com/matzehuels/hierview/pkg/anim"
	errs "github.com/matzehuels/hierview/pkg/errors"
)

// Transition is the serialization format for the animation between two
// passes. Tasks are in phase order.
type Transition struct {
	VizType string      `json:"viz_type"`
	IsDrill bool        `json:"is_drill"`
	Deletes int         `json:"deletes"`
	Updates int         `json:"updates"`
	Inserts int         `json:"inserts"`
	Tasks   []anim.Task `json:"tasks"`
}

// NewTransition converts a classification result.
func NewTransition(vizType string, r anim.Result) Transition {
	tasks := r.Tasks
	if tasks == nil {
		tasks = []anim.Task{}
	}
	return Transition{
		VizType: vizType,
		IsDrill: r.IsDrill,
		Deletes: r.Count(anim.Delete),
		Updates: r.Count(anim.Update),
		Inserts: r.Count(anim.Insert),
		Tasks:   tasks,
	}
}

// MarshalTransition serializes a Transition to pretty-printed JSON bytes.
func MarshalTransition(t Transition) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// UnmarshalTransition deserializes JSON bytes into a Transition.
func UnmarshalTransition(data []byte) (Transition, error) {
	var t Transition
	if err := json.Unmarshal(data, &t); err != nil {
		return Transition{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "unmarshal transition")
	}
	return t, nil
}
