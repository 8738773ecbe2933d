package treemap

import (
	"cmp"
	"slices"

	"github.com/matzehuels/hierview/pkg/tree"
)

// sliceAndDice places the children one after another along a single axis,
// each taking a share of the length proportional to its size.
func sliceAndDice(kids []*tree.Node, sizes []float64, total float64, area tree.Rect, horizontal bool, opts Options) []tree.Rect {
	order := make([]int, len(kids))
	for i := range order {
		order[i] = i
	}
	if opts.SortBySize {
		slices.SortStableFunc(order, func(a, b int) int {
			return cmp.Compare(sizes[b], sizes[a])
		})
	}
	if opts.Mirror && horizontal {
		slices.Reverse(order)
	}

	rects := make([]tree.Rect, len(kids))
	offset := 0.0
	for _, i := range order {
		share := sizes[i] / total
		if horizontal {
			w := area.Width * share
			rects[i] = tree.Rect{X: area.X + offset, Y: area.Y, Width: w, Height: area.Height}
			offset += w
		} else {
			h := area.Height * share
			rects[i] = tree.Rect{X: area.X, Y: area.Y + offset, Width: area.Width, Height: h}
			offset += h
		}
	}
	return rects
}
