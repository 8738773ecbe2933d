package sink

import (
	"github.com/matzehuels/hierview/pkg/graph"
)

// RenderJSON emits the layout as indented JSON.
func RenderJSON(l graph.Layout) ([]byte, error) {
	return graph.MarshalLayout(l)
}
