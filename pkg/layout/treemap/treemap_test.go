package treemap

import (
	"strconv"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"pgregory.net/rapid"

	errs "github.com/matzehuels/hierview/pkg/errors"
	"github.com/matzehuels/hierview/pkg/tree"
)

const tol = 1e-6

type fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

func build(t fataler, specs []tree.Spec) *tree.Tree {
	t.Helper()
	tr, err := tree.Build(specs, tree.Options{MaxDepth: tree.NoDepthLimit})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return tr
}

func flat(size ...float64) []tree.Spec {
	kids := make([]tree.Spec, len(size))
	for i, s := range size {
		kids[i] = tree.Spec{ID: "c" + strconv.Itoa(i), Value: s}
	}
	return []tree.Spec{{ID: "R", Value: 1, Children: kids}}
}

func rectEqual(a, b tree.Rect) bool {
	return scalar.EqualWithinAbs(a.X, b.X, tol) &&
		scalar.EqualWithinAbs(a.Y, b.Y, tol) &&
		scalar.EqualWithinAbs(a.Width, b.Width, tol) &&
		scalar.EqualWithinAbs(a.Height, b.Height, tol)
}

func overlaps(a, b tree.Rect) bool {
	w := min(a.X+a.Width, b.X+b.Width) - max(a.X, b.X)
	h := min(a.Y+a.Height, b.Y+b.Height) - max(a.Y, b.Y)
	return w > tol && h > tol
}

func TestSquarifyScenario(t *testing.T) {
	tr := build(t, flat(50, 30, 20))
	opts := Options{Strategy: Squarify}
	Layout(tr.Root, tree.Rect{Width: 10, Height: 10}, opts)

	want := map[string]tree.Rect{
		"c0": {X: 0, Y: 0, Width: 5, Height: 10},
		"c1": {X: 5, Y: 0, Width: 5, Height: 6},
		"c2": {X: 5, Y: 6, Width: 5, Height: 4},
	}
	total := 0.0
	for id, w := range want {
		n := tr.Find(id)
		if !n.HasLayout {
			t.Fatalf("%s.HasLayout = false", id)
		}
		if got := n.Geometry.Rect; !rectEqual(got, w) {
			t.Errorf("%s rect = %+v, want %+v", id, got, w)
		}
		total += n.Geometry.Rect.Area()
	}
	if !scalar.EqualWithinAbs(total, 100, tol) {
		t.Errorf("covered area = %v, want 100", total)
	}
	if tr.Root.HasLayout {
		t.Error("root with children should not be drawn")
	}
}

func TestSliceAndDice(t *testing.T) {
	specs := []tree.Spec{{ID: "R", Value: 4, Children: []tree.Spec{
		{ID: "a", Value: 1, Children: []tree.Spec{{ID: "a1", Value: 1}, {ID: "a2", Value: 3}}},
		{ID: "b", Value: 3},
	}}}

	tests := []struct {
		name string
		opts Options
		want map[string]tree.Rect
	}{
		{
			"horizontal first",
			Options{Strategy: SliceAndDice, Horizontal: true},
			map[string]tree.Rect{
				"a":  {X: 0, Y: 0, Width: 25, Height: 40},
				"b":  {X: 25, Y: 0, Width: 75, Height: 40},
				"a1": {X: 0, Y: 0, Width: 25, Height: 10},
				"a2": {X: 0, Y: 10, Width: 25, Height: 30},
			},
		},
		{
			"vertical first",
			Options{Strategy: SliceAndDice},
			map[string]tree.Rect{
				"a":  {X: 0, Y: 0, Width: 100, Height: 10},
				"b":  {X: 0, Y: 10, Width: 100, Height: 30},
				"a1": {X: 0, Y: 0, Width: 25, Height: 10},
				"a2": {X: 25, Y: 0, Width: 75, Height: 10},
			},
		},
		{
			"sorted",
			Options{Strategy: SliceAndDice, Horizontal: true, SortBySize: true},
			map[string]tree.Rect{
				"b":  {X: 0, Y: 0, Width: 75, Height: 40},
				"a":  {X: 75, Y: 0, Width: 25, Height: 40},
				"a2": {X: 75, Y: 0, Width: 25, Height: 30},
				"a1": {X: 75, Y: 30, Width: 25, Height: 10},
			},
		},
		{
			"mirrored",
			Options{Strategy: SliceAndDice, Horizontal: true, Mirror: true},
			map[string]tree.Rect{
				"b":  {X: 0, Y: 0, Width: 75, Height: 40},
				"a":  {X: 75, Y: 0, Width: 25, Height: 40},
				"a1": {X: 75, Y: 0, Width: 25, Height: 10},
				"a2": {X: 75, Y: 10, Width: 25, Height: 30},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := build(t, specs)
			Layout(tr.Root, tree.Rect{Width: 100, Height: 40}, tt.opts)
			for id, want := range tt.want {
				if got := tr.Find(id).Geometry.Rect; !rectEqual(got, want) {
					t.Errorf("%s rect = %+v, want %+v", id, got, want)
				}
			}
		})
	}
}

func TestSquarifyMirror(t *testing.T) {
	tr := build(t, flat(50, 30, 20))
	Layout(tr.Root, tree.Rect{X: 10, Width: 10, Height: 10}, Options{Mirror: true})

	want := tree.Rect{X: 15, Y: 0, Width: 5, Height: 10}
	if got := tr.Find("c0").Geometry.Rect; !rectEqual(got, want) {
		t.Errorf("c0 rect = %+v, want %+v", got, want)
	}
}

func TestGaps(t *testing.T) {
	specs := []tree.Spec{{ID: "R", Value: 2, Children: []tree.Spec{
		{ID: "a", Value: 1, Children: []tree.Spec{{ID: "a1", Value: 1}}},
		{ID: "b", Value: 1},
	}}}

	tests := []struct {
		name string
		gap  GapMode
		want map[string]tree.Rect
	}{
		{"none", GapNone, map[string]tree.Rect{
			"a":  {X: 0, Y: 0, Width: 50, Height: 50},
			"a1": {X: 0, Y: 0, Width: 50, Height: 50},
		}},
		{"outer", GapOuter, map[string]tree.Rect{
			"a":  {X: 1, Y: 1, Width: 48, Height: 48},
			"b":  {X: 51, Y: 1, Width: 48, Height: 48},
			"a1": {X: 1, Y: 1, Width: 48, Height: 48},
		}},
		{"all", GapAll, map[string]tree.Rect{
			"a":  {X: 1, Y: 1, Width: 48, Height: 48},
			"a1": {X: 2, Y: 2, Width: 46, Height: 46},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := build(t, specs)
			opts := Options{Strategy: SliceAndDice, Horizontal: true, Gap: tt.gap, GapSize: 2, MinGapExtent: 8}
			Layout(tr.Root, tree.Rect{Width: 100, Height: 50}, opts)
			for id, want := range tt.want {
				if got := tr.Find(id).Geometry.Rect; !rectEqual(got, want) {
					t.Errorf("%s rect = %+v, want %+v", id, got, want)
				}
			}
		})
	}
}

func TestGapMinExtent(t *testing.T) {
	tr := build(t, flat(1, 99))
	opts := Options{Strategy: SliceAndDice, Horizontal: true, Gap: GapAll, GapSize: 2, MinGapExtent: 8}
	Layout(tr.Root, tree.Rect{Width: 100, Height: 50}, opts)

	want := tree.Rect{X: 0, Y: 0, Width: 1, Height: 50}
	if got := tr.Find("c0").Geometry.Rect; !rectEqual(got, want) {
		t.Errorf("c0 rect = %+v, want %+v", got, want)
	}
}

func TestNoLayout(t *testing.T) {
	specs := []tree.Spec{{ID: "R", Value: 1, Children: []tree.Spec{
		{ID: "thin", Value: 1, Children: []tree.Spec{{ID: "under", Value: 1}}},
		{ID: "wide", Value: 19},
		{ID: "zero", Value: 0},
		{ID: "neg", Value: -1},
	}}}
	tr := build(t, specs)
	opts := Options{Strategy: SliceAndDice, Horizontal: true, Gap: GapAll, GapSize: 10}
	Layout(tr.Root, tree.Rect{Width: 100, Height: 100}, opts)

	for _, id := range []string{"thin", "under", "zero", "neg"} {
		if tr.Find(id).HasLayout {
			t.Errorf("%s.HasLayout = true, want false", id)
		}
	}
	if !tr.Find("wide").HasLayout {
		t.Error("wide.HasLayout = false, want true")
	}

	if next := Layout(tr.Root, tree.Rect{Width: 0, Height: 100}, opts); next != 0 {
		t.Errorf("Layout() with empty bounds = %d, want 0", next)
	}
	if tr.Find("wide").HasLayout {
		t.Error("empty bounds should clear layout")
	}
}

func TestZIndex(t *testing.T) {
	specs := []tree.Spec{{ID: "R", Value: 2, Children: []tree.Spec{
		{ID: "A", Value: 1, Children: []tree.Spec{{ID: "A1", Value: 1}, {ID: "A2", Value: 1}}},
		{ID: "B", Value: 1},
	}}}
	tr := build(t, specs)

	for _, strategy := range []Strategy{Squarify, SliceAndDice} {
		t.Run(strategy.String(), func(t *testing.T) {
			next := Layout(tr.Root, tree.Rect{Width: 40, Height: 40}, Options{Strategy: strategy, ZBase: 10})
			want := map[string]int{"A": 10, "A1": 11, "A2": 12, "B": 13}
			for id, z := range want {
				if got := tr.Find(id).Geometry.Rect.ZIndex; got != z {
					t.Errorf("%s.ZIndex = %d, want %d", id, got, z)
				}
			}
			if next != 14 {
				t.Errorf("Layout() = %d, want 14", next)
			}
		})
	}
}

func TestSingletonRoot(t *testing.T) {
	tr := build(t, []tree.Spec{{ID: "only", Value: 3}})
	Layout(tr.Root, tree.Rect{X: 5, Y: 5, Width: 20, Height: 10}, DefaultOptions())

	if !tr.Root.HasLayout {
		t.Fatal("childless root should be drawn")
	}
	want := tree.Rect{X: 5, Y: 5, Width: 20, Height: 10}
	if got := tr.Root.Geometry.Rect; !rectEqual(got, want) {
		t.Errorf("root rect = %+v, want %+v", got, want)
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{"squarify", Squarify, false},
		{"", Squarify, false},
		{"Slice-And-Dice", SliceAndDice, false},
		{"spiral", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStrategy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errs.Is(err, errs.ErrCodeInvalidStrategy) {
			t.Errorf("ParseStrategy(%q) code = %v", tt.in, errs.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("ParseStrategy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSquarifyAreaConservation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sizes := rapid.SliceOfN(rapid.Float64Range(0.01, 1000), 1, 60).Draw(t, "sizes")
		w := rapid.Float64Range(1, 2000).Draw(t, "w")
		h := rapid.Float64Range(1, 2000).Draw(t, "h")

		tr := build(t, flat(sizes...))
		Layout(tr.Root, tree.Rect{Width: w, Height: h}, Options{Strategy: Squarify})

		kids := tr.Root.Children
		area := 0.0
		for i, a := range kids {
			if !a.HasLayout {
				t.Fatalf("%s.HasLayout = false", a.ID)
			}
			ra := a.Geometry.Rect
			area += ra.Area()
			for _, b := range kids[i+1:] {
				if overlaps(ra, b.Geometry.Rect) {
					t.Fatalf("%s %+v overlaps %s %+v", a.ID, ra, b.ID, b.Geometry.Rect)
				}
			}
		}
		if !scalar.EqualWithinRel(area, w*h, 1e-9) {
			t.Fatalf("sum(child area) = %v, want %v", area, w*h)
		}
	})
}
