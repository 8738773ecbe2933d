package view

import (
	"github.com/tanema/gween/ease"

	"github.com/matzehuels/hierview/pkg/anim"
	errs "github.com/matzehuels/hierview/pkg/errors"
	"github.com/matzehuels/hierview/pkg/observability"
	"github.com/matzehuels/hierview/pkg/tree"
)

// Action names an expand/collapse outcome.
type Action string

const (
	Expand   Action = "expand"
	Collapse Action = "collapse"
)

// Events are raised after the state change and its pass complete. Nil
// callbacks are skipped.
type Events struct {
	// OnDrill receives the new display root.
	OnDrill func(id string, root *tree.Node, isDrillUp bool)

	// OnExpandCollapse receives the disclosed ids after the toggle.
	OnExpandCollapse func(id string, action Action, disclosed []string)

	// OnIsolate receives the isolated id, or "" once nothing is isolated.
	OnIsolate func(id string)
}

// Config is shared by both controllers.
type Config struct {
	Source   tree.DataProvider
	MaxDepth int
	Hidden   func(tree.Spec) bool
	Events   Events

	// PhaseDuration and Easing configure the animation player.
	PhaseDuration float32
	Easing        ease.TweenFunc
}

// Pass is the result of one render pass.
type Pass struct {
	Tree       *tree.Tree
	Root       *tree.Node // display root; nil for an empty tree
	Transition anim.Result
}

// base holds the state and pass cycle common to both controllers.
type base struct {
	viz        string
	cfg        Config
	disclosure tree.Disclosure

	tree      *tree.Tree
	rootID    string
	root      *tree.Node
	ancestors []*tree.Node
	focusID   string

	player *anim.Player
	last   Pass
}

// pass builds a new tree, lays out the display root with layout and diffs
// it against the previous pass.
func (b *base) pass(layout func(root *tree.Node)) (Pass, error) {
	b.stop()
	prevRoot, prevAncestors := b.root, b.ancestors

	tr, err := tree.BuildFromProvider(b.cfg.Source, tree.Options{
		MaxDepth:   b.cfg.MaxDepth,
		Hidden:     b.cfg.Hidden,
		Disclosure: b.disclosure,
	})
	if err != nil {
		return b.last, err
	}

	b.tree = tr
	b.root = tr.Find(b.rootID)
	if b.root == nil && tr != nil {
		b.root = tr.Root
		b.rootID = ""
	}
	b.ancestors = tree.Ancestors(b.root)
	if b.root != nil {
		layout(b.root)
	}
	return b.finish(anim.Classify(prevRoot, b.root, prevAncestors, b.ancestors)), nil
}

// finish installs the transition and records the pass.
func (b *base) finish(res anim.Result) Pass {
	b.player = anim.NewPlayer(res.Tasks, b.cfg.PhaseDuration, b.cfg.Easing)
	observability.Interaction().OnTransition(b.viz, res.IsDrill,
		res.Count(anim.Delete), res.Count(anim.Update), res.Count(anim.Insert))
	b.last = Pass{Tree: b.tree, Root: b.root, Transition: res}
	return b.last
}

// stop snaps an in-flight animation to its final values.
func (b *base) stop() {
	if b.player != nil {
		b.player.Stop()
	}
}

// drillTarget validates a drill request against the current tree.
func (b *base) drillTarget(id string) (*tree.Node, error) {
	n := b.tree.Find(id)
	if n == nil {
		return nil, errs.New(errs.ErrCodeNodeNotFound, "node %q not found", id)
	}
	return n, nil
}

// drillUpTarget returns the parent of the display root, or nil at the top.
func (b *base) drillUpTarget() *tree.Node {
	if b.root == nil {
		return nil
	}
	return b.root.Parent
}

func (b *base) raiseDrill(isUp bool) {
	observability.Interaction().OnStateChange(b.viz, "drill")
	if fn := b.cfg.Events.OnDrill; fn != nil && b.root != nil {
		fn(b.root.ID, b.root, isUp)
	}
}

// setDrillRoot records the new display root id. The tree root is stored as
// "" so data changes that rename the root keep the view at the top.
func (b *base) setDrillRoot(n *tree.Node) {
	if n == nil || n.Parent == nil {
		b.rootID = ""
		return
	}
	b.rootID = n.ID
}

// Tree returns the tree of the latest pass.
func (b *base) Tree() *tree.Tree { return b.tree }

// Root returns the display root of the latest pass.
func (b *base) Root() *tree.Node { return b.root }

// Last returns the latest pass.
func (b *base) Last() Pass { return b.last }

// Player returns the animation of the latest pass.
func (b *base) Player() *anim.Player { return b.player }

// setSource replaces the data provider used by the next pass.
func (b *base) setSource(p tree.DataProvider) { b.cfg.Source = p }
