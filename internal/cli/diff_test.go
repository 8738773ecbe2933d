package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/hierview/pkg/anim"
	"github.com/matzehuels/hierview/pkg/graph"
	"github.com/matzehuels/hierview/pkg/pipeline"
)

func TestPhases(t *testing.T) {
	tests := []struct {
		name  string
		tasks []anim.Task
		want  string
	}{
		{"none", nil, "—"},
		{"insert only", []anim.Task{{Kind: anim.Insert}}, "insert"},
		{"play order", []anim.Task{{Kind: anim.Insert}, {Kind: anim.Delete}, {Kind: anim.Update}}, "delete → update → insert"},
		{"deduplicated", []anim.Task{{Kind: anim.Update}, {Kind: anim.Update}}, "update"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := phases(tt.tasks); got != tt.want {
				t.Errorf("phases() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderSteps(t *testing.T) {
	steps := []pipeline.Step{
		{Action: pipeline.ActionDrill, Target: "A", Transition: graph.Transition{
			IsDrill: true, Deletes: 1, Updates: 3,
			Tasks: []anim.Task{{Kind: anim.Delete}, {Kind: anim.Update}},
		}},
		{Action: pipeline.ActionRestore},
	}

	out := renderSteps(steps)
	for _, want := range []string{"Action", "drill", "restore", "A", "delete → update"} {
		if !strings.Contains(out, want) {
			t.Errorf("renderSteps() missing %q:\n%s", want, out)
		}
	}
}
