package pipeline

import (
	"context"
	"fmt"
	"slices"

	errs "github.com/matzehuels/hierview/pkg/errors"
	"github.com/matzehuels/hierview/pkg/graph"
	"github.com/matzehuels/hierview/pkg/tree"
	"github.com/matzehuels/hierview/pkg/view"
)

// Step actions, in the order Transition applies them.
const (
	ActionData     = "data"
	ActionDrill    = "drill"
	ActionDrillUp  = "drill_up"
	ActionRestore  = "restore"
	ActionIsolate  = "isolate"
	ActionExpand   = "expand"
	ActionCollapse = "collapse"
)

// maxToggleSteps bounds the expand/collapse replay.
const maxToggleSteps = 10000

// Step is one state change and the animation it produces.
type Step struct {
	Action string `json:"action"`
	Target string `json:"target,omitempty"`
	graph.Transition
}

// Transition replays the changes that turn the from state into the to
// state and returns the animation of each. Changes are applied as a data
// swap, then a drill, then isolate stack edits, then disclosure toggles.
// Both sides must use the same viz type, depth limit and hidden categories.
func (r *Runner) Transition(ctx context.Context, from, to Options) ([]Step, error) {
	for _, o := range []*Options{&from, &to} {
		r.applyLogger(o)
		if _, err := r.ResolveSession(ctx, o); err != nil {
			return nil, err
		}
		if err := o.ValidateForBuild(); err != nil {
			return nil, fmt.Errorf("invalid options: %w", err)
		}
		if err := o.ValidateForLayout(); err != nil {
			return nil, fmt.Errorf("invalid options: %w", err)
		}
	}
	if from.VizType != to.VizType {
		return nil, errs.New(errs.ErrCodeInvalidInput, "cannot transition from %s to %s", from.VizType, to.VizType)
	}

	before, err := LoadDocument(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	after, err := LoadDocument(ctx, to)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	if before.Depth() != after.Depth() || !sameSet(before.HiddenCategories, after.HiddenCategories) {
		return nil, errs.New(errs.ErrCodeInvalidInput, "depth limit and hidden categories must match")
	}

	v, err := OpenView(before, from)
	if err != nil {
		return nil, fmt.Errorf("open view: %w", err)
	}

	steps := []Step{}
	add := func(action, target string, p view.Pass) {
		steps = append(steps, Step{Action: action, Target: target, Transition: graph.NewTransition(v.VizType, p.Transition)})
	}

	if HashDocument(withoutView(before)) != HashDocument(withoutView(after)) {
		p, err := v.SetData(after)
		if err != nil {
			return nil, fmt.Errorf("set data: %w", err)
		}
		add(ActionData, "", p)
	}

	if err := replayDrill(v, to.RootID, add); err != nil {
		return nil, err
	}
	if err := replayIsolation(v, to.Isolated, add); err != nil {
		return nil, err
	}
	if v.Sunburst != nil {
		if err := replayDisclosure(v.Sunburst, after.Disclosure(), add); err != nil {
			return nil, err
		}
	}

	r.Logger.Debug("computed transition", "viz", v.VizType, "steps", len(steps))
	return steps, nil
}

func replayDrill(v *View, rootID string, add func(string, string, view.Pass)) error {
	cur := v.Root()
	if cur == nil {
		if rootID != "" {
			return errs.New(errs.ErrCodeNodeNotFound, "node %q not found", rootID)
		}
		return nil
	}

	target := v.Tree().Root
	if rootID != "" {
		target = v.Tree().Find(rootID)
		if target == nil {
			return errs.New(errs.ErrCodeNodeNotFound, "node %q not found", rootID)
		}
	}
	if target == cur {
		return nil
	}

	action := ActionDrill
	if target.IsAncestorOf(cur) {
		action = ActionDrillUp
	}
	p, err := v.Drill(target.ID)
	if err != nil {
		return fmt.Errorf("drill: %w", err)
	}
	add(action, target.ID, p)
	return nil
}

func replayIsolation(v *View, want []string, add func(string, string, view.Pass)) error {
	if v.Treemap == nil {
		return nil
	}
	have := v.Treemap.Isolated()
	common := 0
	for common < len(have) && common < len(want) && have[common] == want[common] {
		common++
	}
	for range len(have) - common {
		p, err := v.Treemap.Restore()
		if err != nil {
			return fmt.Errorf("restore: %w", err)
		}
		add(ActionRestore, "", p)
	}
	for _, id := range want[common:] {
		p, err := v.Treemap.Isolate(id)
		if err != nil {
			return fmt.Errorf("isolate: %w", err)
		}
		add(ActionIsolate, id, p)
	}
	return nil
}

// replayDisclosure toggles expandable nodes, in pre-order, until every
// node of the current tree is disclosed as want says. Each toggle rebuilds
// the tree, so the scan restarts after it. Nodes whose spec pins the
// disclosure are toggled at most once.
func replayDisclosure(s *view.Sunburst, want tree.Disclosure, add func(string, string, view.Pass)) error {
	tried := map[string]bool{}
	for range maxToggleSteps {
		id, ok := nextToggle(s.Tree(), want, tried)
		if !ok {
			return nil
		}
		tried[id] = true
		p, err := s.ExpandCollapse(id)
		if err != nil {
			return fmt.Errorf("expand/collapse: %w", err)
		}
		action := ActionCollapse
		if s.Disclosure().IsDisclosed(id) {
			action = ActionExpand
		}
		add(action, id, p)
	}
	return errs.New(errs.ErrCodeInternal, "disclosure did not settle after %d toggles", maxToggleSteps)
}

func nextToggle(t *tree.Tree, want tree.Disclosure, tried map[string]bool) (string, bool) {
	if t == nil {
		return "", false
	}
	var found string
	tree.Walk(t.Root, func(n *tree.Node) bool {
		if found != "" {
			return false
		}
		if n.Expandable && !n.ArtificialRoot && !tried[n.ID] && n.Disclosed != want.IsDisclosed(n.ID) {
			found = n.ID
			return false
		}
		return true
	})
	return found, found != ""
}

// withoutView drops the disclosure so that data and view changes are told
// apart.
func withoutView(doc graph.Document) graph.Document {
	doc.Expanded = nil
	return doc
}

func sameSet(a, b []string) bool {
	a, b = slices.Clone(a), slices.Clone(b)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(slices.Compact(a), slices.Compact(b))
}

// HitTest opens the view described by opts and returns the placed node under
// (x, y), or nil. Sunburst points are relative to the chart centre.
func (r *Runner) HitTest(ctx context.Context, opts Options, x, y float64) (*graph.Node, error) {
	r.applyLogger(&opts)
	if _, err := r.ResolveSession(ctx, &opts); err != nil {
		return nil, err
	}
	if err := opts.ValidateForBuild(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := opts.ValidateForLayout(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	doc, err := LoadDocument(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	v, err := OpenView(doc, opts)
	if err != nil {
		return nil, fmt.Errorf("open view: %w", err)
	}
	n := v.HitTest(x, y)
	if n == nil {
		return nil, nil
	}
	out := graph.NewNode(n)
	return &out, nil
}
