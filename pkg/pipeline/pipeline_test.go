package pipeline

import (
	"context"
	"io"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hierview/pkg/cache"
	errs "github.com/matzehuels/hierview/pkg/errors"
	"github.com/matzehuels/hierview/pkg/graph"
	"github.com/matzehuels/hierview/pkg/session"
	"github.com/matzehuels/hierview/pkg/tree"
)

func sampleDoc() *graph.Document {
	return &graph.Document{Nodes: []tree.Spec{{ID: "R", Children: []tree.Spec{
		{ID: "A", Value: 3, Children: []tree.Spec{{ID: "A1", Value: 1}, {ID: "A2", Value: 2}}},
		{ID: "B", Value: 1, Categories: []string{"tmp"}},
	}}}}
}

func quietRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.New(io.Discard))
}

func nodeIDs(l graph.Layout) []string {
	ids := []string{}
	for _, n := range l.Nodes {
		ids = append(ids, n.ID)
	}
	return ids
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"outline", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	err := ValidateFormats([]string{"svg", "invalid"})
	if !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("Invalid format error = %v, want %v", err, errs.ErrCodeInvalidFormat)
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateVizType(t *testing.T) {
	tests := []struct {
		vizType string
		wantErr bool
	}{
		{"sunburst", false},
		{"treemap", false},
		{"tower", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateVizType(tt.vizType)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateVizType(%q) error = %v, wantErr %v", tt.vizType, err, tt.wantErr)
		}
	}
}

func TestOptionsValidateForBuild(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errs.Code
	}{
		{"no input", Options{}, errs.ErrCodeInvalidInput},
		{"bad extension", Options{Path: "tree.csv"}, errs.ErrCodeInvalidPath},
		{"negative depth", Options{Document: sampleDoc(), MaxDepth: -1}, errs.ErrCodeInvalidInput},
		{"empty isolated id", Options{Document: sampleDoc(), Isolated: []string{""}}, errs.ErrCodeInvalidInput},
		{"path", Options{Path: "tree.yaml"}, ""},
		{"inline", Options{Document: sampleDoc()}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForBuild()
			if tt.code == "" {
				if err != nil {
					t.Errorf("ValidateForBuild() error = %v", err)
				}
				return
			}
			if !errs.Is(err, tt.code) {
				t.Errorf("ValidateForBuild() error = %v, want %v", err, tt.code)
			}
		})
	}
}

func TestOptionsValidateForLayout(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errs.Code
	}{
		{"defaults", Options{}, ""},
		{"bad viz", Options{VizType: "tower"}, errs.ErrCodeInvalidVizType},
		{"bad strategy", Options{VizType: "treemap", Strategy: "spiral"}, errs.ErrCodeInvalidStrategy},
		{"bad gap", Options{VizType: "treemap", Gap: "wide"}, errs.ErrCodeInvalidInput},
		{"bad size", Options{Width: -1}, errs.ErrCodeInvalidDimensions},
		{"sunburst isolate", Options{Isolated: []string{"A"}}, errs.ErrCodeInvalidInput},
		{"treemap isolate", Options{VizType: "treemap", Isolated: []string{"A"}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForLayout()
			if tt.code == "" {
				if err != nil {
					t.Errorf("ValidateForLayout() error = %v", err)
				}
				return
			}
			if !errs.Is(err, tt.code) {
				t.Errorf("ValidateForLayout() error = %v, want %v", err, tt.code)
			}
		})
	}
}

func TestOptionsIsSunburst(t *testing.T) {
	opts := Options{}
	if !opts.IsSunburst() || opts.IsTreemap() {
		t.Error("Empty VizType should be sunburst")
	}

	opts.VizType = "treemap"
	if opts.IsSunburst() || !opts.IsTreemap() {
		t.Error("treemap VizType should be treemap")
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.VizType != DefaultVizType {
		t.Errorf("VizType should be %s, got %s", DefaultVizType, opts.VizType)
	}
	if opts.Width != DefaultWidth {
		t.Errorf("Width should be %f, got %f", DefaultWidth, opts.Width)
	}
	if opts.Height != DefaultHeight {
		t.Errorf("Height should be %f, got %f", DefaultHeight, opts.Height)
	}
	if opts.Gap != "" {
		t.Errorf("sunburst Gap should stay empty, got %q", opts.Gap)
	}

	opts = Options{VizType: "treemap"}
	opts.SetLayoutDefaults()
	if opts.Gap != "all" || opts.GapSize == 0 {
		t.Errorf("treemap gap defaults = %q/%v, want all/non-zero", opts.Gap, opts.GapSize)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.PNGScale != DefaultPNGScale {
		t.Errorf("PNGScale should be %v, got %v", DefaultPNGScale, opts.PNGScale)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Document: sampleDoc(), VizType: "treemap"}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	before := opts

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if !reflect.DeepEqual(opts.LayoutKeyOpts(), before.LayoutKeyOpts()) {
		t.Error("layout options changed on second call")
	}
	if !reflect.DeepEqual(opts.Formats, before.Formats) {
		t.Error("Formats changed on second call")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Labels: true, Background: "white", PNGScale: 3, Detailed: true}

	if got := opts.ArtifactKeyOpts(FormatJSON); got.Background != "" || got.Scale != 0 || got.Detailed {
		t.Errorf("ArtifactKeyOpts(json) = %+v, want render-independent", got)
	}
	if got := opts.ArtifactKeyOpts(FormatPNG); got.Background != "white" || got.Scale != 3 {
		t.Errorf("ArtifactKeyOpts(png) = %+v, want background and scale", got)
	}
	if got := opts.ArtifactKeyOpts(FormatDOT); !got.Detailed || got.Background != "" {
		t.Errorf("ArtifactKeyOpts(dot) = %+v, want detailed only", got)
	}
}

func TestApplySession(t *testing.T) {
	st := &session.ViewState{VizType: "treemap", RootID: "A", Isolated: []string{"A1"}, Expanded: []string{"R"}}

	opts := Options{}
	opts.ApplySession(st)
	if opts.VizType != "treemap" || opts.RootID != "A" || !reflect.DeepEqual(opts.Isolated, []string{"A1"}) {
		t.Errorf("ApplySession() = %+v, want state copied", opts)
	}

	// Explicit options win; the isolate stack only applies to the same viz.
	opts = Options{VizType: "sunburst", RootID: "B"}
	opts.ApplySession(st)
	if opts.RootID != "B" || opts.Isolated != nil {
		t.Errorf("ApplySession() = %+v, want explicit root and no isolate stack", opts)
	}
}

func TestLoadDocumentOverrides(t *testing.T) {
	doc := sampleDoc()
	doc.HiddenCategories = []string{"tmp"}

	got, err := LoadDocument(context.Background(), Options{
		Document: doc,
		MaxDepth: 2,
		Hidden:   []string{"tmp", "vendor"},
		Expanded: []string{"R"},
	})
	if err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}
	if got.MaxDepth != 2 {
		t.Errorf("MaxDepth = %d, want 2", got.MaxDepth)
	}
	if want := []string{"tmp", "vendor"}; !reflect.DeepEqual(got.HiddenCategories, want) {
		t.Errorf("HiddenCategories = %v, want %v", got.HiddenCategories, want)
	}
	if !reflect.DeepEqual(got.Expanded, []string{"R"}) {
		t.Errorf("Expanded = %v, want [R]", got.Expanded)
	}
	if len(doc.HiddenCategories) != 1 {
		t.Errorf("input document was modified: %v", doc.HiddenCategories)
	}
}

func TestHashDocument(t *testing.T) {
	a, b := *sampleDoc(), *sampleDoc()
	if HashDocument(a) != HashDocument(b) {
		t.Error("equal documents should hash equally")
	}
	b.Nodes[0].Children[1].Value = 5
	if HashDocument(a) == HashDocument(b) {
		t.Error("different documents should hash differently")
	}
}

func TestExecuteTreemap(t *testing.T) {
	r := quietRunner(nil)
	res, err := r.Execute(context.Background(), Options{
		Document: sampleDoc(),
		VizType:  "treemap",
		Width:    200,
		Height:   100,
		Formats:  []string{FormatJSON, FormatSVG, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if want := []string{"A", "A1", "A2", "B"}; !reflect.DeepEqual(nodeIDs(res.Layout), want) {
		t.Errorf("placed = %v, want %v", nodeIDs(res.Layout), want)
	}
	if res.Stats.NodeCount != 5 || res.Stats.PlacedCount != 4 {
		t.Errorf("Stats = %+v, want 5 nodes, 4 placed", res.Stats)
	}
	if res.Layout.Width != 200 || res.Layout.Height != 100 {
		t.Errorf("frame = %vx%v, want 200x100", res.Layout.Width, res.Layout.Height)
	}
	for _, format := range []string{FormatJSON, FormatSVG, FormatDOT} {
		if len(res.Artifacts[format]) == 0 {
			t.Errorf("artifact %s is empty", format)
		}
	}
	if !strings.Contains(string(res.Artifacts[FormatSVG]), "<svg") {
		t.Error("svg artifact is not SVG")
	}
	if !strings.Contains(string(res.Artifacts[FormatDOT]), `"R" -> "A"`) {
		t.Errorf("dot artifact missing edge:\n%s", res.Artifacts[FormatDOT])
	}
	back, err := graph.UnmarshalLayout(res.Artifacts[FormatJSON])
	if err != nil || !reflect.DeepEqual(back, res.Layout) {
		t.Errorf("json artifact = %+v, %v; want the layout", back, err)
	}
}

func TestExecuteViewState(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		rootID   string
		isolated []string
		placed   []string
	}{
		{
			name:   "sunburst drill",
			opts:   Options{RootID: "A"},
			rootID: "A",
			placed: []string{"A", "A1", "A2"},
		},
		{
			name:     "treemap isolate",
			opts:     Options{VizType: "treemap", Isolated: []string{"A"}},
			isolated: []string{"A"},
			placed:   []string{"A1", "A2"},
		},
		{
			name:   "hidden category",
			opts:   Options{Hidden: []string{"tmp"}},
			placed: []string{"R", "A", "A1", "A2"},
		},
		{
			name:   "collapsed",
			opts:   Options{Expanded: []string{"R"}},
			placed: []string{"R", "A", "B"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			opts.Document = sampleDoc()
			opts.Formats = []string{FormatJSON}
			res, err := quietRunner(nil).Execute(context.Background(), opts)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if res.Layout.RootID != tt.rootID {
				t.Errorf("RootID = %q, want %q", res.Layout.RootID, tt.rootID)
			}
			if !reflect.DeepEqual(res.Layout.Isolated, tt.isolated) {
				t.Errorf("Isolated = %v, want %v", res.Layout.Isolated, tt.isolated)
			}
			if got := nodeIDs(res.Layout); !reflect.DeepEqual(got, tt.placed) {
				t.Errorf("placed = %v, want %v", got, tt.placed)
			}
		})
	}
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errs.Code
	}{
		{"no input", Options{}, errs.ErrCodeInvalidInput},
		{"missing file", Options{Path: filepath.Join(t.TempDir(), "none.json")}, errs.ErrCodeFileNotFound},
		{"unknown root", Options{Document: sampleDoc(), RootID: "nope"}, errs.ErrCodeNodeNotFound},
		{"unknown isolate", Options{Document: sampleDoc(), VizType: "treemap", Isolated: []string{"nope"}}, errs.ErrCodeNodeNotFound},
		{"bad format", Options{Document: sampleDoc(), Formats: []string{"gif"}}, errs.ErrCodeInvalidFormat},
		{"session without store", Options{Document: sampleDoc(), Session: "0b6f2f6e-3c1a-4a57-9a43-1d1d3c7e5b10"}, errs.ErrCodeUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := quietRunner(nil).Execute(context.Background(), tt.opts)
			if !errs.Is(err, tt.code) {
				t.Errorf("Execute() error = %v, want %v", err, tt.code)
			}
		})
	}
}

func TestExecuteFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.yaml")
	if err := graph.WriteDocumentFile(*sampleDoc(), path); err != nil {
		t.Fatal(err)
	}

	res, err := quietRunner(nil).Execute(context.Background(), Options{Path: path, Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(res.Layout.Nodes) != 5 {
		t.Errorf("placed %d nodes, want 5", len(res.Layout.Nodes))
	}
}

func TestExecuteCaching(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := quietRunner(c)
	ctx := context.Background()
	opts := Options{Document: sampleDoc(), VizType: "treemap", Formats: []string{FormatSVG, FormatJSON}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run CacheInfo = %+v, want misses", first.CacheInfo)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want hits", second.CacheInfo)
	}
	if !reflect.DeepEqual(second.Layout, first.Layout) {
		t.Error("cached layout differs from computed layout")
	}
	if string(second.Artifacts[FormatSVG]) != string(first.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}

	// A different view state is a different layout.
	drilled := opts
	drilled.RootID = "A"
	third, err := r.Execute(ctx, drilled)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("drilled run should miss the layout cache")
	}

	refresh := opts
	refresh.Refresh = true
	fourth, err := r.Execute(ctx, refresh)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if fourth.CacheInfo.LayoutHit || fourth.CacheInfo.RenderHit {
		t.Errorf("refresh CacheInfo = %+v, want misses", fourth.CacheInfo)
	}
}

func TestExecuteSession(t *testing.T) {
	store, err := session.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	st := session.New("treemap", time.Hour)
	st.RootID = "A"
	if err := store.Set(ctx, st); err != nil {
		t.Fatal(err)
	}

	r := quietRunner(nil).WithSessions(store)
	res, err := r.Execute(ctx, Options{Document: sampleDoc(), Session: st.ID, Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Layout.VizType != "treemap" || res.Layout.RootID != "A" {
		t.Errorf("layout = %s rooted at %q, want treemap rooted at A", res.Layout.VizType, res.Layout.RootID)
	}
	if res.Session == nil || res.Session.ID != st.ID {
		t.Errorf("Session = %+v, want %s", res.Session, st.ID)
	}

	_, err = r.Execute(ctx, Options{Document: sampleDoc(), Session: session.New("treemap", time.Hour).ID})
	if !errs.Is(err, errs.ErrCodeNotFound) {
		t.Errorf("unknown session error = %v, want %v", err, errs.ErrCodeNotFound)
	}
	_, err = r.Execute(ctx, Options{Document: sampleDoc(), Session: "../../etc"})
	if !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("bad session id error = %v, want %v", err, errs.ErrCodeInvalidInput)
	}
}

func TestHitTest(t *testing.T) {
	r := quietRunner(nil)
	ctx := context.Background()
	opts := Options{Document: sampleDoc(), VizType: "treemap", Width: 200, Height: 100}

	l, err := ComputeLayout(*sampleDoc(), opts)
	if err != nil {
		t.Fatal(err)
	}
	a1 := l.Find("A1").Rect
	got, err := r.HitTest(ctx, opts, a1.X+a1.Width/2, a1.Y+a1.Height/2)
	if err != nil {
		t.Fatalf("HitTest() error = %v", err)
	}
	if got == nil || got.ID != "A1" {
		t.Errorf("HitTest(A1 centre) = %+v, want A1", got)
	}

	got, err = r.HitTest(ctx, opts, -10, -10)
	if err != nil || got != nil {
		t.Errorf("HitTest(outside) = %+v, %v; want nil, nil", got, err)
	}

	got, err = r.HitTest(ctx, Options{Document: sampleDoc()}, 1, 1)
	if err != nil || got == nil || got.ID != "R" {
		t.Errorf("HitTest(sunburst centre) = %+v, %v; want R", got, err)
	}
}

func TestTransition(t *testing.T) {
	changed := sampleDoc()
	changed.Nodes[0].Children[1].Value = 4

	tests := []struct {
		name    string
		from    Options
		to      Options
		actions []string
		targets []string
	}{
		{
			name: "no change",
			from: Options{Document: sampleDoc()},
			to:   Options{Document: sampleDoc()},
		},
		{
			name:    "data",
			from:    Options{Document: sampleDoc()},
			to:      Options{Document: changed},
			actions: []string{ActionData},
			targets: []string{""},
		},
		{
			name:    "drill",
			from:    Options{Document: sampleDoc()},
			to:      Options{Document: sampleDoc(), RootID: "A"},
			actions: []string{ActionDrill},
			targets: []string{"A"},
		},
		{
			name:    "drill up",
			from:    Options{Document: sampleDoc(), RootID: "A"},
			to:      Options{Document: sampleDoc()},
			actions: []string{ActionDrillUp},
			targets: []string{"R"},
		},
		{
			name:    "isolate",
			from:    Options{Document: sampleDoc(), VizType: "treemap"},
			to:      Options{Document: sampleDoc(), VizType: "treemap", Isolated: []string{"A"}},
			actions: []string{ActionIsolate},
			targets: []string{"A"},
		},
		{
			name:    "restore",
			from:    Options{Document: sampleDoc(), VizType: "treemap", Isolated: []string{"A"}},
			to:      Options{Document: sampleDoc(), VizType: "treemap"},
			actions: []string{ActionRestore},
			targets: []string{""},
		},
		{
			name:    "collapse",
			from:    Options{Document: sampleDoc()},
			to:      Options{Document: sampleDoc(), Expanded: []string{"R"}},
			actions: []string{ActionCollapse},
			targets: []string{"A"},
		},
		{
			name:    "expand",
			from:    Options{Document: sampleDoc(), Expanded: []string{"R"}},
			to:      Options{Document: sampleDoc(), Expanded: []string{"R", "A"}},
			actions: []string{ActionExpand},
			targets: []string{"A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps, err := quietRunner(nil).Transition(context.Background(), tt.from, tt.to)
			if err != nil {
				t.Fatalf("Transition() error = %v", err)
			}
			var actions, targets []string
			for _, s := range steps {
				actions = append(actions, s.Action)
				targets = append(targets, s.Target)
				if len(s.Tasks) == 0 {
					t.Errorf("step %s has no tasks", s.Action)
				}
			}
			if !reflect.DeepEqual(actions, tt.actions) || !reflect.DeepEqual(targets, tt.targets) {
				t.Errorf("steps = %v %v, want %v %v", actions, targets, tt.actions, tt.targets)
			}
		})
	}
}

func TestTransitionDrillFlag(t *testing.T) {
	steps, err := quietRunner(nil).Transition(context.Background(),
		Options{Document: sampleDoc()},
		Options{Document: sampleDoc(), RootID: "A"})
	if err != nil {
		t.Fatalf("Transition() error = %v", err)
	}
	if len(steps) != 1 || !steps[0].IsDrill {
		t.Errorf("steps = %+v, want one drill", steps)
	}
}

func TestTransitionErrors(t *testing.T) {
	deeper := sampleDoc()
	deeper.MaxDepth = 2

	tests := []struct {
		name     string
		from, to Options
		code     errs.Code
	}{
		{"viz mismatch", Options{Document: sampleDoc()}, Options{Document: sampleDoc(), VizType: "treemap"}, errs.ErrCodeInvalidInput},
		{"depth mismatch", Options{Document: sampleDoc()}, Options{Document: deeper}, errs.ErrCodeInvalidInput},
		{"unknown root", Options{Document: sampleDoc()}, Options{Document: sampleDoc(), RootID: "nope"}, errs.ErrCodeNodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := quietRunner(nil).Transition(context.Background(), tt.from, tt.to)
			if !errs.Is(err, tt.code) {
				t.Errorf("Transition() error = %v, want %v", err, tt.code)
			}
		})
	}
}

func TestDisplayNode(t *testing.T) {
	tr, err := tree.Build(sampleDoc().Nodes, tree.Options{MaxDepth: tree.NoDepthLimit})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		layout graph.Layout
		want   string
	}{
		{graph.Layout{}, "R"},
		{graph.Layout{RootID: "A"}, "A"},
		{graph.Layout{RootID: "A", Isolated: []string{"A", "A1"}}, "A1"},
		{graph.Layout{RootID: "gone"}, "R"},
	}
	for _, tt := range tests {
		if got := DisplayNode(tr, tt.layout); got == nil || got.ID != tt.want {
			t.Errorf("DisplayNode(%+v) = %v, want %s", tt.layout, got, tt.want)
		}
	}
	if DisplayNode(nil, graph.Layout{}) != nil {
		t.Error("DisplayNode(nil tree) should be nil")
	}
}
