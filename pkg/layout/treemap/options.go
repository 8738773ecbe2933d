package treemap

import (
	"strings"

	errs "github.com/matzehuels/hierview/pkg/errors"
)

// Strategy selects how a node's area is divided among its children.
type Strategy int

const (
	// Squarify keeps child rectangles close to square.
	Squarify Strategy = iota
	// SliceAndDice splits along one axis per level, alternating by depth.
	SliceAndDice
)

// String returns the flag spelling of the strategy.
func (s Strategy) String() string {
	switch s {
	case SliceAndDice:
		return "slice-and-dice"
	default:
		return "squarify"
	}
}

// ParseStrategy parses a strategy name as accepted on the command line.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "squarify", "squarified":
		return Squarify, nil
	case "slice-and-dice", "slicedice", "slice":
		return SliceAndDice, nil
	default:
		return 0, errs.New(errs.ErrCodeInvalidStrategy, "unknown treemap strategy %q (want squarify or slice-and-dice)", s)
	}
}

// GapMode selects which levels are separated by gaps.
type GapMode int

const (
	GapNone  GapMode = iota // no gaps
	GapOuter                // only between children of the layout root
	GapAll                  // at every level
)

// String returns the flag spelling of the gap mode.
func (g GapMode) String() string {
	switch g {
	case GapOuter:
		return "outer"
	case GapAll:
		return "all"
	default:
		return "none"
	}
}

// ParseGapMode parses a gap mode name.
func ParseGapMode(s string) (GapMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return GapNone, nil
	case "outer":
		return GapOuter, nil
	case "all":
		return GapAll, nil
	default:
		return 0, errs.New(errs.ErrCodeInvalidInput, "unknown gap mode %q (want none, outer or all)", s)
	}
}

// Default option values.
const (
	DefaultGapSize      = 2.0
	DefaultMinGapExtent = 8.0
)

// Options configures a treemap layout pass.
type Options struct {
	Strategy Strategy
	Gap      GapMode

	// GapSize is the full width of a gap between two siblings. Each node is
	// inset by half of it on every side.
	GapSize float64

	// MinGapExtent disables the gap for nodes narrower or shorter than it.
	MinGapExtent float64

	// SortBySize orders slice-and-dice children largest first.
	SortBySize bool

	// Mirror flips children horizontally within their parent.
	Mirror bool

	// Horizontal makes the first slice-and-dice split run along x.
	Horizontal bool

	// ZBase is the first z-index assigned by the pass.
	ZBase int
}

// DefaultOptions returns squarified layout with gaps at every level.
func DefaultOptions() Options {
	return Options{
		Strategy:     Squarify,
		Gap:          GapAll,
		GapSize:      DefaultGapSize,
		MinGapExtent: DefaultMinGapExtent,
		Horizontal:   true,
	}
}
