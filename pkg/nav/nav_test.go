package nav

import (
	"math"
	"testing"

	"github.com/matzehuels/hierview/pkg/layout/sunburst"
	"github.com/matzehuels/hierview/pkg/layout/treemap"
	"github.com/matzehuels/hierview/pkg/tree"
)

func build(t *testing.T, specs []tree.Spec) *tree.Tree {
	t.Helper()
	tr, err := tree.Build(specs, tree.Options{MaxDepth: tree.NoDepthLimit})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return tr
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		in   string
		want Key
		ok   bool
	}{
		{"up", Up, true},
		{"ArrowLeft", Left, true},
		{"alt+up", Parent, true},
		{"[", Parent, true},
		{"alt+down", Child, true},
		{"]", Child, true},
		{"enter", KeyNone, false},
	}
	for _, tt := range tests {
		got, ok := ParseKey(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseKey(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

// radial returns R with children a, b, c, d covering
// [0, π/4], [π/4, π], [π, 7π/4] and [7π/4, 2π].
func radial(t *testing.T) *tree.Tree {
	tr := build(t, []tree.Spec{{ID: "R", Value: 8, Children: []tree.Spec{
		{ID: "a", Value: 1},
		{ID: "b", Value: 3, Children: []tree.Spec{{ID: "b1", Value: 2}, {ID: "b2", Value: 1}}},
		{ID: "c", Value: 3},
		{ID: "d", Value: 1},
	}}})
	sunburst.Layout(tr.Root, sunburst.DefaultOptions(100))
	return tr
}

func TestSunburstWraparound(t *testing.T) {
	tr := radial(t)

	tests := []struct {
		from   string
		key    Key
		mirror bool
		want   string
	}{
		{"d", Right, false, "a"},
		{"a", Left, false, "d"},
		{"a", Right, false, "b"},
		{"c", Left, false, "b"},
		{"a", Right, true, "d"},
		{"d", Left, true, "a"},
		{"b1", Right, false, "b2"},
		{"b2", Right, false, "b1"},
	}
	for _, tt := range tests {
		s := &Sunburst{Root: tr.Root, Focus: tr.Find(tt.from), Mirror: tt.mirror}
		if got := s.Move(tt.key); got.ID != tt.want {
			t.Errorf("Move(%v) from %s (mirror %v) = %s, want %s", tt.key, tt.from, tt.mirror, got.ID, tt.want)
		}
	}
}

func TestSunburstSiblingsABC(t *testing.T) {
	tr := build(t, []tree.Spec{{ID: "root", Value: 3, Children: []tree.Spec{
		{ID: "a", Value: 1}, {ID: "b", Value: 1}, {ID: "c", Value: 1},
	}}})
	opts := sunburst.DefaultOptions(10)
	opts.StartAngle = 5
	sunburst.Layout(tr.Root, opts)

	s := &Sunburst{Root: tr.Root, Focus: tr.Find("c")}
	if got := s.Move(Right); got.ID != "a" {
		t.Errorf("Move(Right) from c = %s, want a", got.ID)
	}
	if got := s.Move(Left); got.ID != "c" {
		t.Errorf("Move(Left) from a = %s, want c", got.ID)
	}
}

func TestSunburstVertical(t *testing.T) {
	tr := radial(t)
	s := &Sunburst{Root: tr.Root, Focus: tr.Root}

	steps := []struct {
		key  Key
		want string
	}{
		{Up, "c"},   // upper half, closest to straight up
		{Down, "R"}, // c opens upward, so down is inward
		{Down, "b"}, // lower half, closest to straight down
		{Down, "b1"},
		{Down, "b1"}, // leaf
		{Up, "b"},
		{Up, "R"},
		{Up, "c"},
		{Up, "c"}, // leaf
		{Down, "R"},
		{Down, "b"},
		{Parent, "R"},
		{Parent, "R"}, // root
		{Child, "b"},  // last visited
	}
	for i, st := range steps {
		if got := s.Move(st.key); got.ID != st.want {
			t.Fatalf("step %d Move(%v) = %s, want %s", i, st.key, got.ID, st.want)
		}
	}
	if tr.Root.LastVisitedChild != tr.Find("b") {
		t.Errorf("R.LastVisitedChild = %v, want b", tr.Root.LastVisitedChild)
	}
}

func TestSunburstLastVisitedReturn(t *testing.T) {
	tr := radial(t)
	s := &Sunburst{Root: tr.Root, Focus: tr.Find("b2")}

	if got := s.Move(Parent); got.ID != "b" {
		t.Fatalf("Move(Parent) = %s, want b", got.ID)
	}
	if got := s.Move(Child); got.ID != "b2" {
		t.Errorf("Move(Child) = %s, want b2", got.ID)
	}
}

// TestSunburstRememberedChildHalfPlane uses x spanning [0.75π, 1.35π]: x
// opens upward, its child xa lies in the lower half and xb in the upper.
func TestSunburstRememberedChildHalfPlane(t *testing.T) {
	tr := build(t, []tree.Spec{{ID: "R", Value: 4, Children: []tree.Spec{
		{ID: "x", Value: 1.2, Children: []tree.Spec{{ID: "xa", Value: 0.6}, {ID: "xb", Value: 0.6}}},
		{ID: "y", Value: 2.8},
	}}})
	opts := sunburst.DefaultOptions(100)
	opts.StartAngle = 3 * math.Pi / 4
	sunburst.Layout(tr.Root, opts)
	x, xa := tr.Find("x"), tr.Find("xa")

	tests := []struct {
		key  Key
		want string
	}{
		{Up, "xb"},    // xa is remembered but lies in the lower half
		{Child, "xa"}, // Child ignores the half-plane
		{Down, "R"},   // x opens upward, so down is inward
	}
	for _, tt := range tests {
		x.LastVisitedChild = xa
		s := &Sunburst{Root: tr.Root, Focus: x}
		if got := s.Move(tt.key); got.ID != tt.want {
			t.Errorf("Move(%v) from x = %s, want %s", tt.key, got.ID, tt.want)
		}
	}
}

func TestSunburstNoFocus(t *testing.T) {
	tr := radial(t)
	s := &Sunburst{Root: tr.Root}
	if got := s.Move(Right); got != tr.Root {
		t.Errorf("Move() without focus = %v, want root", got.ID)
	}
}

// rects lays out R(A(A1,A2),B) with A on the left, B on the right, A1 above A2.
func rects(t *testing.T) *tree.Tree {
	tr := build(t, []tree.Spec{{ID: "R", Value: 2, Children: []tree.Spec{
		{ID: "A", Value: 1, Children: []tree.Spec{{ID: "A1", Value: 1}, {ID: "A2", Value: 1}}},
		{ID: "B", Value: 1, Children: []tree.Spec{{ID: "B1", Value: 1}}},
	}}})
	treemap.Layout(tr.Root, tree.Rect{Width: 100, Height: 100}, treemap.Options{Strategy: treemap.SliceAndDice, Horizontal: true})
	return tr
}

func TestTreemapMove(t *testing.T) {
	tr := rects(t)
	m := &Treemap{Root: tr.Root, Focus: tr.Find("A1")}

	steps := []struct {
		key  Key
		want string
	}{
		{Right, "B1"},
		{Left, "A1"},
		{Up, "A1"},
		{Down, "A2"},
		{Down, "A2"},
		{Parent, "A"},
		{Parent, "A"}, // parent is the navigation root
		{Right, "B"},
		{Child, "B1"},
		{Parent, "B"},
		{Left, "A"},
		{Child, "A2"}, // last visited
		{Child, "A2"}, // leaf
	}
	for i, st := range steps {
		if got := m.Move(st.key); got.ID != st.want {
			t.Fatalf("step %d Move(%v) = %s, want %s", i, st.key, got.ID, st.want)
		}
	}
}

func TestTreemapIsolatedRoot(t *testing.T) {
	tr := rects(t)
	m := &Treemap{Root: tr.Find("A"), Focus: tr.Find("A1")}

	if got := m.Move(Parent); got.ID != "A1" {
		t.Errorf("Move(Parent) = %s, want A1", got.ID)
	}
	if got := m.Move(Right); got.ID != "A1" {
		t.Errorf("Move(Right) = %s, want A1 (B1 is outside the isolated subtree)", got.ID)
	}

	m.Focus = tr.Find("B1")
	if got := m.Move(Down); got.ID != "A" {
		t.Errorf("Move() with focus outside root = %s, want A", got.ID)
	}
}

func TestFirst(t *testing.T) {
	tr := rects(t)
	if got := First(tr.Root); got == nil || got.ID != "A" {
		t.Errorf("First() = %v, want A", got)
	}
	if got := First(nil); got != nil {
		t.Errorf("First(nil) = %v, want nil", got)
	}
}
