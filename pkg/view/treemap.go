package view

import (
	"slices"

	"github.com/matzehuels/hierview/pkg/anim"
	errs "github.com/matzehuels/hierview/pkg/errors"
	"github.com/matzehuels/hierview/pkg/hittest"
	"github.com/matzehuels/hierview/pkg/layout/treemap"
	"github.com/matzehuels/hierview/pkg/nav"
	"github.com/matzehuels/hierview/pkg/observability"
	"github.com/matzehuels/hierview/pkg/tree"
)

// TreemapConfig configures a Treemap controller.
type TreemapConfig struct {
	Config
	Layout treemap.Options
	Bounds tree.Rect
}

// Treemap drives a nested-rectangle view: drill, isolate/restore, hit
// testing and keyboard focus.
//
// The isolate stack holds node ids. While it is non-empty only the subtree
// of its top is laid out, filling the whole viewport, and hit testing and
// navigation are confined to that subtree.
type Treemap struct {
	base
	layout treemap.Options
	bounds tree.Rect
	stack  []string
	top    *tree.Node // isolated node drawn on the top layer
	nav    nav.Treemap
}

// NewTreemap creates the controller and runs the first pass.
func NewTreemap(cfg TreemapConfig) (*Treemap, Pass, error) {
	m := &Treemap{
		base:   base{viz: "treemap", cfg: cfg.Config},
		layout: cfg.Layout,
		bounds: cfg.Bounds,
	}
	p, err := m.render()
	return m, p, err
}

func (m *Treemap) render() (Pass, error) {
	m.top = nil
	p, err := m.pass(func(root *tree.Node) {
		m.top = m.isolatedNode()
		target := root
		if m.top != nil {
			target = m.top
		}
		treemap.Layout(target, m.bounds, m.layout)
	})
	if err != nil {
		return p, err
	}
	m.resetNav()
	return p, nil
}

// isolatedNode resolves the top of the stack in the current tree, dropping
// entries that no longer exist under the display root.
func (m *Treemap) isolatedNode() *tree.Node {
	for len(m.stack) > 0 {
		n := m.tree.Find(m.stack[len(m.stack)-1])
		if n != nil && (n == m.root || m.root.IsAncestorOf(n)) {
			return n
		}
		m.stack = m.stack[:len(m.stack)-1]
	}
	return nil
}

// navRoot is the isolated node, or the display root when nothing is isolated.
func (m *Treemap) navRoot() *tree.Node {
	if m.top != nil {
		return m.top
	}
	return m.root
}

func (m *Treemap) resetNav() {
	root := m.navRoot()
	focus := m.tree.Find(m.focusID)
	if focus == nil || !focus.HasLayout || (focus != root && !root.IsAncestorOf(focus)) {
		focus = nav.First(root)
		m.focusID = ""
	}
	m.nav = nav.Treemap{Root: root, Focus: focus}
}

// Focus returns the focused node.
func (m *Treemap) Focus() *tree.Node { return m.nav.Focus }

// Isolated returns the isolate stack, bottom first.
func (m *Treemap) Isolated() []string { return slices.Clone(m.stack) }

// TopLayer returns the node currently drawn on the dedicated top layer, or
// nil when nothing is isolated.
func (m *Treemap) TopLayer() *tree.Node { return m.top }

// Refresh runs a pass over the current data.
func (m *Treemap) Refresh() (Pass, error) { return m.render() }

// SetData replaces the data provider and runs a data-change pass.
func (m *Treemap) SetData(p tree.DataProvider) (Pass, error) {
	m.setSource(p)
	return m.render()
}

// Resize changes the viewport and runs a pass.
func (m *Treemap) Resize(bounds tree.Rect) (Pass, error) {
	m.bounds = bounds
	return m.render()
}

// Drill makes id the display root. Drilling clears the isolate stack.
func (m *Treemap) Drill(id string) (Pass, error) {
	n, err := m.drillTarget(id)
	if err != nil {
		return m.last, err
	}
	m.setDrillRoot(n)
	m.stack = nil
	p, err := m.render()
	if err == nil {
		m.raiseDrill(false)
	}
	return p, err
}

// DrillUp makes the parent of the display root the display root.
func (m *Treemap) DrillUp() (Pass, error) {
	up := m.drillUpTarget()
	if up == nil {
		return m.last, nil
	}
	m.setDrillRoot(up)
	m.stack = nil
	p, err := m.render()
	if err == nil {
		m.raiseDrill(true)
	}
	return p, err
}

// Isolate pushes id and lays out only its subtree into the full viewport.
// Geometry outside the subtree is left as it was so that animations of the
// rest of the tree are not disturbed.
func (m *Treemap) Isolate(id string) (Pass, error) {
	n := m.tree.Find(id)
	if n == nil || (n != m.root && !m.root.IsAncestorOf(n)) {
		return m.last, errs.New(errs.ErrCodeNodeNotFound, "node %q not found under the display root", id)
	}
	m.stop()
	m.stack = append(m.stack, id)
	m.top = n
	p := m.relayout(n)
	m.raiseIsolate(id)
	return p, nil
}

// Restore pops the isolate stack. The new top is laid out into the viewport,
// or the whole display root once the stack is empty.
func (m *Treemap) Restore() (Pass, error) {
	if len(m.stack) == 0 {
		return m.last, nil
	}
	m.stop()
	m.stack = m.stack[:len(m.stack)-1]
	m.top = m.isolatedNode()

	target, id := m.root, ""
	if m.top != nil {
		target, id = m.top, m.top.ID
	}
	p := m.relayout(target)
	m.raiseIsolate(id)
	return p, nil
}

// relayout lays out target in place on the current tree and animates from
// the geometry it replaces.
func (m *Treemap) relayout(target *tree.Node) Pass {
	before := anim.Capture(target)
	opts := m.layout
	if target != m.root {
		opts.ZBase = m.tree.Len()
	}
	treemap.Layout(target, m.bounds, opts)
	m.resetNav()
	return m.finish(anim.Changes(before, target))
}

func (m *Treemap) raiseIsolate(id string) {
	action := "isolate"
	if len(m.stack) == 0 {
		action = "restore"
	}
	observability.Interaction().OnStateChange(m.viz, action)
	if fn := m.cfg.Events.OnIsolate; fn != nil {
		fn(id)
	}
}

// HitTest returns the deepest node under (x, y), searching from the
// isolated node when isolation is active.
func (m *Treemap) HitTest(x, y float64) *tree.Node {
	return hittest.Rect(m.navRoot(), x, y)
}

// Key moves the focus and returns the focused node.
func (m *Treemap) Key(k nav.Key) *tree.Node {
	if m.root == nil {
		return nil
	}
	n := m.nav.Move(k)
	if n != nil {
		m.focusID = n.ID
	}
	observability.Interaction().OnNavigate(m.viz, k.String())
	return n
}
