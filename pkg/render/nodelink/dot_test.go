package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/hierview/pkg/tree"
)

func buildTree(t *testing.T, d tree.Disclosure) *tree.Tree {
	t.Helper()
	tr, err := tree.Build([]tree.Spec{
		{ID: "app", Value: 3, Color: "#ff0000", Children: []tree.Spec{{ID: "lib", Value: 2}}},
		{ID: "docs", Value: 1.5},
	}, tree.Options{MaxDepth: tree.NoDepthLimit, Disclosure: d})
	if err != nil {
		t.Fatal(err)
	}
	return tr
}

func TestToDOT(t *testing.T) {
	tr := buildTree(t, nil)
	dot := ToDOT(tr.Root, Options{})

	for _, want := range []string{
		`"app" -> "lib";`,
		tree.ArtificialRootID,
		`fillcolor="#ff0000"`,
		`"docs" [label="docs"]`,
		"rankdir=TB",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "dashed") {
		t.Error("fully disclosed tree should have no dashed nodes")
	}
}

func TestToDOTDetailedAndCollapsed(t *testing.T) {
	d := tree.All()
	d.Toggle("app")
	tr := buildTree(t, d)
	dot := ToDOT(tr.Find("app"), Options{Detailed: true, LeftToRight: true})

	if !strings.Contains(dot, `label="app\nsize: 3\ndepth: 1"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
	if !strings.Contains(dot, "dashed") {
		t.Errorf("collapsed expandable node should be dashed:\n%s", dot)
	}
	if strings.Contains(dot, "->") {
		t.Error("collapsed node should have no edges")
	}
	if !strings.Contains(dot, "rankdir=LR") {
		t.Error("LeftToRight should set rankdir=LR")
	}
}

func TestToDOTNil(t *testing.T) {
	if got := ToDOT(nil, Options{}); !strings.HasSuffix(got, "}\n") {
		t.Errorf("ToDOT(nil) = %q, want an empty graph", got)
	}
}

func TestRenderSVG(t *testing.T) {
	tr := buildTree(t, nil)
	svg, err := RenderSVG(context.Background(), ToDOT(tr.Root, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0`) {
		t.Errorf("RenderSVG() root element not normalized:\n%.200s", svg)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00" xmlns="x"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %q, want %q", got, want)
	}
	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Errorf("normalizeViewBox(no viewBox) = %q", got)
	}
}
