package hittest

import (
	"math"
	"strconv"
	"testing"

	"pgregory.net/rapid"

	"github.com/matzehuels/hierview/pkg/layout/sunburst"
	"github.com/matzehuels/hierview/pkg/layout/treemap"
	"github.com/matzehuels/hierview/pkg/tree"
)

func sample(t *testing.T) *tree.Tree {
	t.Helper()
	tr, err := tree.Build([]tree.Spec{{ID: "A", Value: 10, Children: []tree.Spec{
		{ID: "A1", Value: 5, Children: []tree.Spec{{ID: "A1a", Value: 1}}},
		{ID: "A2", Value: 5},
	}}}, tree.Options{MaxDepth: tree.NoDepthLimit})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return tr
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		angle, start, want float64
	}{
		{1, 0, 1},
		{-math.Pi / 2, 0, 3 * math.Pi / 2},
		{0.5, 4 * math.Pi, 4*math.Pi + 0.5},
		{7, 0, 7 - 2*math.Pi},
	}
	for _, tt := range tests {
		if got := NormalizeAngle(tt.angle, tt.start); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeAngle(%v, %v) = %v, want %v", tt.angle, tt.start, got, tt.want)
		}
	}
}

func TestRadial(t *testing.T) {
	tr := sample(t)
	// Rings: A [0,40], A1 and A2 [40,120], A1a [120,200].
	sunburst.Layout(tr.Root, sunburst.DefaultOptions(200))

	tests := []struct {
		name  string
		r     float64
		angle float64
		want  string
	}{
		{"centre", 0, 0, "A"},
		{"first half inner ring", 100, 1, "A1"},
		{"second half inner ring", 100, math.Pi + 1, "A2"},
		{"negative angle wraps", 100, -1, "A2"},
		{"outer ring", 180, 1, "A1a"},
		{"outer ring no child", 180, math.Pi + 1, ""},
		{"outside", 250, 1, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Radial(tr.Root, tt.r, tt.angle)
			id := ""
			if got != nil {
				id = got.ID
			}
			if id != tt.want {
				t.Errorf("Radial(%v, %v) = %q, want %q", tt.r, tt.angle, id, tt.want)
			}
		})
	}

	if got := RadialPoint(tr.Root, 300, 300, 300, 400); got == nil || got.ID != "A1" {
		t.Errorf("RadialPoint() = %v, want A1", got)
	}
}

func TestRect(t *testing.T) {
	tr := sample(t)
	treemap.Layout(tr.Root, tree.Rect{Width: 100, Height: 100}, treemap.Options{Strategy: treemap.SliceAndDice, Horizontal: true})

	tests := []struct {
		name string
		x, y float64
		want string
	}{
		{"left half", 10, 10, "A1a"},
		{"right half", 60, 10, "A2"},
		{"outside", 150, 10, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rect(tr.Root, tt.x, tt.y)
			id := ""
			if got != nil {
				id = got.ID
			}
			if id != tt.want {
				t.Errorf("Rect(%v, %v) = %q, want %q", tt.x, tt.y, id, tt.want)
			}
		})
	}

	// Searching from a subtree never leaves it.
	if got := Rect(tr.Find("A1"), 60, 10); got != nil {
		t.Errorf("Rect(A1, outside) = %v, want nil", got.ID)
	}
}

func TestNilRoot(t *testing.T) {
	if Radial(nil, 1, 1) != nil || Rect(nil, 1, 1) != nil {
		t.Error("nil root should hit nothing")
	}
}

func randomTree(t *rapid.T) *tree.Tree {
	var gen func(prefix string, depth int) []tree.Spec
	gen = func(prefix string, depth int) []tree.Spec {
		n := rapid.IntRange(1, 4).Draw(t, prefix+"n")
		specs := make([]tree.Spec, n)
		for i := range specs {
			id := prefix + strconv.Itoa(i)
			specs[i] = tree.Spec{ID: id, Value: rapid.Float64Range(0.5, 50).Draw(t, id)}
			if depth < 3 && rapid.Bool().Draw(t, id+"kids") {
				specs[i].Children = gen(id+".", depth+1)
			}
		}
		return specs
	}
	tr, err := tree.Build(gen("n", 0), tree.Options{MaxDepth: tree.NoDepthLimit})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return tr
}

func TestRadialCentroid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tr := randomTree(t)
		opts := sunburst.DefaultOptions(500)
		opts.StartAngle = rapid.Float64Range(-10, 10).Draw(t, "start")
		sunburst.Layout(tr.Root, opts)

		for _, n := range tree.Flatten(tr.Root) {
			if !n.HasLayout {
				continue
			}
			g := n.Geometry.Radial
			got := Radial(tr.Root, g.MidRadius(), g.MidAngle())
			if got != n && (got == nil || !n.IsAncestorOf(got)) {
				t.Fatalf("centroid of %s hit %v", n.ID, got)
			}
		}
	})
}

func TestRectCentroid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tr := randomTree(t)
		opts := treemap.DefaultOptions()
		if rapid.Bool().Draw(t, "slice") {
			opts.Strategy = treemap.SliceAndDice
		}
		treemap.Layout(tr.Root, tree.Rect{Width: 800, Height: 600}, opts)

		for _, n := range tree.Flatten(tr.Root) {
			if !n.HasLayout {
				continue
			}
			x, y := n.Geometry.Rect.Center()
			got := Rect(tr.Root, x, y)
			if got != n && (got == nil || !n.IsAncestorOf(got)) {
				t.Fatalf("centre of %s hit %v", n.ID, got)
			}
		}
	})
}
