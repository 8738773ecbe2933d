package pipeline

import (
	"context"
	"math"
	"net/url"
	"slices"

	"github.com/matzehuels/hierview/pkg/anim"
	"github.com/matzehuels/hierview/pkg/cache"
	errs "github.com/matzehuels/hierview/pkg/errors"
	"github.com/matzehuels/hierview/pkg/graph"
	"github.com/matzehuels/hierview/pkg/httputil"
	"github.com/matzehuels/hierview/pkg/layout/sunburst"
	"github.com/matzehuels/hierview/pkg/layout/treemap"
	"github.com/matzehuels/hierview/pkg/nav"
	"github.com/matzehuels/hierview/pkg/tree"
	"github.com/matzehuels/hierview/pkg/view"
)

// =============================================================================
// Document Loading
// =============================================================================

// LoadDocument returns the inline document or reads opts.Path, then applies
// the depth, hidden and disclosure overrides. A path that is an http or
// https URL is downloaded.
func LoadDocument(ctx context.Context, opts Options) (graph.Document, error) {
	var doc graph.Document
	var err error
	switch {
	case opts.Document != nil:
		doc = *opts.Document
	case httputil.IsURL(opts.Path):
		if doc, err = fetchDocument(ctx, opts.Path); err != nil {
			return graph.Document{}, err
		}
	default:
		if doc, err = graph.ReadDocumentFile(opts.Path); err != nil {
			return graph.Document{}, err
		}
	}

	if opts.MaxDepth > 0 {
		doc.MaxDepth = opts.MaxDepth
	}
	for _, c := range opts.Hidden {
		if !slices.Contains(doc.HiddenCategories, c) {
			doc.HiddenCategories = append(slices.Clip(doc.HiddenCategories), c)
		}
	}
	if opts.Expanded != nil {
		doc.Expanded = slices.Clone(opts.Expanded)
	}
	return doc, nil
}

// fetchDocument downloads a document. The format follows the extension of
// the URL path.
func fetchDocument(ctx context.Context, rawURL string) (graph.Document, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return graph.Document{}, errs.Wrap(errs.ErrCodeInvalidPath, err, "invalid url %s", rawURL)
	}
	f, err := graph.FormatFromPath(u.Path)
	if err != nil {
		return graph.Document{}, err
	}
	data, err := httputil.Fetcher{}.Fetch(ctx, rawURL)
	if err != nil {
		return graph.Document{}, err
	}
	return graph.UnmarshalDocument(data, f)
}

// HashDocument returns the content hash used to key layouts.
func HashDocument(doc graph.Document) string {
	data, err := graph.MarshalDocument(doc, graph.FormatJSON)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}

// =============================================================================
// Layout Computation
// =============================================================================

// ComputeLayout replays the view state in opts through a view controller and
// exports the placed nodes. It does not use the cache.
func ComputeLayout(doc graph.Document, opts Options) (graph.Layout, error) {
	v, err := OpenView(doc, opts)
	if err != nil {
		return graph.Layout{}, err
	}
	return v.Layout(), nil
}

var errIsolateSunburst = errs.New(errs.ErrCodeInvalidInput, "isolate is only supported by the treemap")

// View is a view controller with the view state of a set of options applied.
type View struct {
	VizType string

	// Exactly one of Sunburst and Treemap is set.
	Sunburst *view.Sunburst
	Treemap  *view.Treemap

	width, height float64
}

// OpenView creates the controller for opts.VizType over doc and replays the
// drill root and isolate stack.
func OpenView(doc graph.Document, opts Options) (*View, error) {
	opts.SetLayoutDefaults()
	v := &View{VizType: opts.VizType, width: opts.Width, height: opts.Height}

	cfg := view.Config{
		Source:        doc.Provider(),
		MaxDepth:      doc.Depth(),
		Hidden:        tree.HideCategories(doc.HiddenCategories...),
		PhaseDuration: anim.DefaultPhaseDuration,
	}

	var err error
	if opts.IsTreemap() {
		v.Treemap, _, err = view.NewTreemap(view.TreemapConfig{
			Config: cfg,
			Layout: TreemapOptions(opts),
			Bounds: tree.Rect{Width: opts.Width, Height: opts.Height},
		})
	} else {
		v.Sunburst, _, err = view.NewSunburst(view.SunburstConfig{
			Config:     cfg,
			Layout:     SunburstOptions(opts),
			Disclosure: doc.Disclosure(),
		})
	}
	if err != nil {
		return nil, err
	}

	if opts.RootID != "" {
		if _, err := v.Drill(opts.RootID); err != nil {
			return nil, err
		}
	}
	for _, id := range opts.Isolated {
		if _, err := v.Isolate(id); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// SunburstOptions converts pipeline options. The radius fits the frame.
func SunburstOptions(opts Options) sunburst.Options {
	o := sunburst.DefaultOptions(math.Min(opts.Width, opts.Height) / 2)
	o.SortBySize = opts.Sort
	o.Mirror = opts.Mirror
	return o
}

// TreemapOptions converts pipeline options. Invalid names fall back to the
// defaults; ValidateForLayout reports them.
func TreemapOptions(opts Options) treemap.Options {
	o := treemap.DefaultOptions()
	if s, err := treemap.ParseStrategy(opts.Strategy); err == nil {
		o.Strategy = s
	}
	if g, err := treemap.ParseGapMode(opts.Gap); err == nil && opts.Gap != "" {
		o.Gap = g
	}
	if opts.GapSize > 0 {
		o.GapSize = opts.GapSize
	}
	o.SortBySize = opts.Sort
	o.Mirror = opts.Mirror
	return o
}

// Drill makes id the display root. An id naming the tree root drills back
// to the top.
func (v *View) Drill(id string) (view.Pass, error) {
	if v.Treemap != nil {
		return v.Treemap.Drill(id)
	}
	return v.Sunburst.Drill(id)
}

// DrillUp makes the parent of the display root the new display root.
func (v *View) DrillUp() (view.Pass, error) {
	if v.Treemap != nil {
		return v.Treemap.DrillUp()
	}
	return v.Sunburst.DrillUp()
}

// Restore pops the treemap isolate stack.
func (v *View) Restore() (view.Pass, error) {
	if v.Treemap == nil {
		return view.Pass{}, errIsolateSunburst
	}
	return v.Treemap.Restore()
}

// ExpandCollapse toggles the disclosure of a sunburst node.
func (v *View) ExpandCollapse(id string) (view.Pass, error) {
	if v.Sunburst == nil {
		return view.Pass{}, errs.New(errs.ErrCodeUnsupported, "expand/collapse needs a sunburst view")
	}
	return v.Sunburst.ExpandCollapse(id)
}

// Key moves the keyboard focus and returns the focused node.
func (v *View) Key(k nav.Key) *tree.Node {
	if v.Treemap != nil {
		return v.Treemap.Key(k)
	}
	return v.Sunburst.Key(k)
}

// Player returns the animation of the latest pass.
func (v *View) Player() *anim.Player {
	if v.Treemap != nil {
		return v.Treemap.Player()
	}
	return v.Sunburst.Player()
}

// Focus returns the focused node.
func (v *View) Focus() *tree.Node {
	if v.Treemap != nil {
		return v.Treemap.Focus()
	}
	return v.Sunburst.Focus()
}

// Expanded returns the disclosed node ids to persist, or nil when every node
// is disclosed.
func (v *View) Expanded() []string {
	if v.Sunburst == nil {
		return nil
	}
	d := v.Sunburst.Disclosure()
	if all, ok := d.(*tree.AllDisclosure); ok && len(all.Collapsed()) == 0 {
		return nil
	}
	return tree.Snapshot(d, v.Tree().IDs())
}

// Isolate pushes id onto the treemap isolate stack.
func (v *View) Isolate(id string) (view.Pass, error) {
	if v.Treemap == nil {
		return view.Pass{}, errIsolateSunburst
	}
	return v.Treemap.Isolate(id)
}

// SetData swaps the document the view is built from.
func (v *View) SetData(doc graph.Document) (view.Pass, error) {
	if v.Treemap != nil {
		return v.Treemap.SetData(doc.Provider())
	}
	return v.Sunburst.SetData(doc.Provider())
}

// Tree returns the tree of the latest pass.
func (v *View) Tree() *tree.Tree {
	if v.Treemap != nil {
		return v.Treemap.Tree()
	}
	return v.Sunburst.Tree()
}

// Root returns the display root of the latest pass.
func (v *View) Root() *tree.Node {
	if v.Treemap != nil {
		return v.Treemap.Root()
	}
	return v.Sunburst.Root()
}

// Isolated returns the treemap isolate stack.
func (v *View) Isolated() []string {
	if v.Treemap != nil {
		return v.Treemap.Isolated()
	}
	return nil
}

// HitTest returns the deepest placed node under (x, y). Sunburst points are
// relative to the chart centre; treemap points are frame coordinates.
func (v *View) HitTest(x, y float64) *tree.Node {
	if v.Treemap != nil {
		return v.Treemap.HitTest(x, y)
	}
	return v.Sunburst.HitTestPoint(0, 0, x, y)
}

// Layout exports the placed nodes of the latest pass. While a treemap node
// is isolated only its subtree is exported.
func (v *View) Layout() graph.Layout {
	root := v.Root()
	if v.Treemap != nil && v.Treemap.TopLayer() != nil {
		root = v.Treemap.TopLayer()
	}
	l := graph.NewLayout(v.VizType, root)
	l.Width, l.Height = v.width, v.height
	if v.Sunburst != nil {
		l.Radius = math.Min(v.width, v.height) / 2
	}
	l.RootID = ""
	if r := v.Root(); r != nil && r.Parent != nil {
		l.RootID = r.ID
	}
	l.Isolated = v.Isolated()
	return l
}

// DisplayNode resolves the node a layout was exported from in t: the
// innermost isolated node, else the drilled root, else the tree root.
func DisplayNode(t *tree.Tree, l graph.Layout) *tree.Node {
	if t == nil {
		return nil
	}
	for i := len(l.Isolated) - 1; i >= 0; i-- {
		if n := t.Find(l.Isolated[i]); n != nil {
			return n
		}
	}
	if n := t.Find(l.RootID); n != nil {
		return n
	}
	return t.Root
}
