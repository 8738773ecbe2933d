package treemap

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/hierview/pkg/tree"
)

// row accumulates the items of the row being built.
type row struct {
	items    []int
	sum      float64
	min, max float64
}

func (r *row) add(i int, a float64) {
	if len(r.items) == 0 {
		r.min, r.max = a, a
	} else {
		r.min = min(r.min, a)
		r.max = max(r.max, a)
	}
	r.items = append(r.items, i)
	r.sum += a
}

func (r *row) reset() {
	r.items = r.items[:0]
	r.sum, r.min, r.max = 0, 0, 0
}

// worst returns the largest aspect ratio in a row with the given statistics
// laid along a side of length side.
func worst(sum, lo, hi, side float64) float64 {
	if sum <= 0 || lo <= 0 || side <= 0 {
		return math.Inf(1)
	}
	s2, t2 := side*side, sum*sum
	return max(s2*hi/t2, t2/(s2*lo))
}

// squarify fills area with rectangles of the given pixel areas. Items are
// taken largest first; an item joins the current row while it does not
// worsen the row's worst aspect ratio, otherwise the row is committed along
// the shorter side of the remaining space. The result is indexed like areas.
func squarify(areas []float64, area tree.Rect) []tree.Rect {
	order := make([]int, len(areas))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(areas[a], areas[b])
	})

	rects := make([]tree.Rect, len(areas))
	remaining := area
	var cur row
	for len(order) > 0 {
		next := order[len(order)-1]
		a := areas[next]
		side := min(remaining.Width, remaining.Height)

		if len(cur.items) > 0 {
			before := worst(cur.sum, cur.min, cur.max, side)
			after := worst(cur.sum+a, min(cur.min, a), max(cur.max, a), side)
			if after > before {
				remaining = commitRow(&cur, areas, remaining, rects)
				cur.reset()
				continue
			}
		}
		cur.add(next, a)
		order = order[:len(order)-1]
	}
	if len(cur.items) > 0 {
		commitRow(&cur, areas, remaining, rects)
	}
	return rects
}

// commitRow lays the row along the shorter side of remaining and returns
// what is left of it.
func commitRow(r *row, areas []float64, remaining tree.Rect, rects []tree.Rect) tree.Rect {
	if remaining.Width >= remaining.Height {
		thickness := r.sum / remaining.Height
		y := remaining.Y
		for _, i := range r.items {
			h := areas[i] / thickness
			rects[i] = tree.Rect{X: remaining.X, Y: y, Width: thickness, Height: h}
			y += h
		}
		remaining.X += thickness
		remaining.Width = max(remaining.Width-thickness, 0)
		return remaining
	}

	thickness := r.sum / remaining.Width
	x := remaining.X
	for _, i := range r.items {
		w := areas[i] / thickness
		rects[i] = tree.Rect{X: x, Y: remaining.Y, Width: w, Height: thickness}
		x += w
	}
	remaining.Y += thickness
	remaining.Height = max(remaining.Height-thickness, 0)
	return remaining
}
