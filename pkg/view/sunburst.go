package view

import (
	"github.com/matzehuels/hierview/pkg/hittest"
	"github.com/matzehuels/hierview/pkg/layout/sunburst"
	"github.com/matzehuels/hierview/pkg/nav"
	"github.com/matzehuels/hierview/pkg/observability"
	"github.com/matzehuels/hierview/pkg/tree"
)

// SunburstConfig configures a Sunburst controller.
type SunburstConfig struct {
	Config
	Layout sunburst.Options

	// Disclosure is the persistent expand/collapse state. Nil expands all.
	Disclosure tree.Disclosure
}

// Sunburst drives a radial view: drill, expand/collapse, hit testing and
// keyboard focus.
type Sunburst struct {
	base
	layout sunburst.Options
	nav    nav.Sunburst
}

// NewSunburst creates the controller and runs the first pass.
func NewSunburst(cfg SunburstConfig) (*Sunburst, Pass, error) {
	d := cfg.Disclosure
	if d == nil {
		d = tree.All()
	}
	s := &Sunburst{
		base:   base{viz: "sunburst", cfg: cfg.Config, disclosure: d},
		layout: cfg.Layout,
	}
	p, err := s.render()
	return s, p, err
}

func (s *Sunburst) render() (Pass, error) {
	p, err := s.pass(func(root *tree.Node) { sunburst.Layout(root, s.layout) })
	if err != nil {
		return p, err
	}
	s.nav = nav.Sunburst{Root: s.root, Focus: s.resolveFocus(), Mirror: s.layout.Mirror}
	return p, nil
}

// resolveFocus carries the focus across passes by id.
func (s *Sunburst) resolveFocus() *tree.Node {
	if n := s.tree.Find(s.focusID); n != nil && n.HasLayout {
		return n
	}
	s.focusID = ""
	return s.root
}

// Disclosure returns the persistent expand/collapse state.
func (s *Sunburst) Disclosure() tree.Disclosure { return s.disclosure }

// Focus returns the focused node.
func (s *Sunburst) Focus() *tree.Node { return s.nav.Focus }

// Refresh runs a pass over the current data, e.g. after a resize.
func (s *Sunburst) Refresh() (Pass, error) { return s.render() }

// SetData replaces the data provider and runs a data-change pass.
func (s *Sunburst) SetData(p tree.DataProvider) (Pass, error) {
	s.setSource(p)
	return s.render()
}

// Resize changes the total radius and runs a pass.
func (s *Sunburst) Resize(totalRadius float64) (Pass, error) {
	s.layout.TotalRadius = totalRadius
	return s.render()
}

// Drill makes id the display root.
func (s *Sunburst) Drill(id string) (Pass, error) {
	n, err := s.drillTarget(id)
	if err != nil {
		return s.last, err
	}
	s.setDrillRoot(n)
	p, err := s.render()
	if err == nil {
		s.raiseDrill(false)
	}
	return p, err
}

// DrillUp makes the parent of the display root the display root. At the top
// of the tree it is a no-op returning the latest pass.
func (s *Sunburst) DrillUp() (Pass, error) {
	up := s.drillUpTarget()
	if up == nil {
		return s.last, nil
	}
	s.setDrillRoot(up)
	p, err := s.render()
	if err == nil {
		s.raiseDrill(true)
	}
	return p, err
}

// ExpandCollapse toggles the disclosure of id, runs a pass, and focuses the
// toggled node.
func (s *Sunburst) ExpandCollapse(id string) (Pass, error) {
	if _, err := s.drillTarget(id); err != nil {
		return s.last, err
	}
	action := Collapse
	if s.disclosure.Toggle(id) {
		action = Expand
	}
	s.focusID = id

	p, err := s.render()
	if err != nil {
		return p, err
	}
	observability.Interaction().OnStateChange(s.viz, string(action))
	if fn := s.cfg.Events.OnExpandCollapse; fn != nil {
		fn(id, action, tree.Snapshot(s.disclosure, s.tree.IDs()))
	}
	return p, nil
}

// HitTest returns the deepest node under the polar point (r, angle).
func (s *Sunburst) HitTest(r, angle float64) *tree.Node {
	return hittest.Radial(s.root, r, angle)
}

// HitTestPoint returns the deepest node under (x, y) for a chart centred at
// (cx, cy).
func (s *Sunburst) HitTestPoint(cx, cy, x, y float64) *tree.Node {
	return hittest.RadialPoint(s.root, cx, cy, x, y)
}

// Key moves the focus and returns the focused node.
func (s *Sunburst) Key(k nav.Key) *tree.Node {
	if s.root == nil {
		return nil
	}
	n := s.nav.Move(k)
	s.focusID = n.ID
	observability.Interaction().OnNavigate(s.viz, k.String())
	return n
}
