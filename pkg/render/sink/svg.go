package sink

import (
	"bytes"
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/hierview/pkg/graph"
)

// Labels are drawn only where they fit.
const (
	minLabelArc    = 28.0 // sunburst: arc length at the mid radius
	minLabelWidth  = 36.0
	minLabelHeight = 16.0
	fontSize       = 11
)

const nodeCSS = `
    .node path { transition: opacity 0.2s ease; }
    .node:hover path { opacity: 0.8; }
    text { font-family: sans-serif; pointer-events: none; }`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	labels     bool
	background string
}

// WithLabels draws node labels where they fit.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithBackground fills the canvas with a CSS colour.
func WithBackground(c string) SVGOption { return func(r *svgRenderer) { r.background = c } }

// RenderSVG draws the layout. Unknown viz types produce an empty canvas.
func RenderSVG(l graph.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	pal := NewPalette(l)

	var buf bytes.Buffer
	canvas := svg.New(&buf)

	switch {
	case l.IsSunburst():
		radius := int(math.Ceil(sunburstRadius(l)))
		canvas.Startview(2*radius, 2*radius, -radius, -radius, 2*radius, 2*radius)
		r.style(canvas)
		if r.background != "" {
			canvas.Rect(-radius, -radius, 2*radius, 2*radius, "fill="+quote(r.background))
		}
		for i := range l.Nodes {
			r.sector(canvas, pal, &l.Nodes[i])
		}
	default:
		w, h := int(math.Ceil(l.Width)), int(math.Ceil(l.Height))
		canvas.Start(w, h)
		r.style(canvas)
		if r.background != "" {
			canvas.Rect(0, 0, w, h, "fill="+quote(r.background))
		}
		for _, n := range byZIndex(l.Nodes) {
			r.rect(canvas, pal, n)
		}
	}

	canvas.End()
	return buf.Bytes()
}

func (r *svgRenderer) style(canvas *svg.SVG) {
	canvas.Style("text/css", nodeCSS)
}

func (r *svgRenderer) sector(canvas *svg.SVG, pal *Palette, n *graph.Node) {
	g := n.Radial
	if g == nil || g.Extent <= 0 || g.Outer <= g.Inner {
		return
	}
	fill := pal.Color(n)
	canvas.Group(nodeAttrs(n)...)
	canvas.Title(n.DisplayLabel())
	canvas.Path(SectorPath(*g), "fill="+quote(fill.Hex()), "stroke="+quote(Stroke(fill).Hex()), `stroke-width="0.5"`)
	if r.labels && g.Extent*(g.Inner+g.Outer)/2 >= minLabelArc {
		x, y := radialLabel(*g)
		canvas.Text(x, y, n.DisplayLabel(), `text-anchor="middle"`, `dominant-baseline="middle"`, fmt.Sprintf(`font-size="%d"`, fontSize))
	}
	canvas.Gend()
}

func (r *svgRenderer) rect(canvas *svg.SVG, pal *Palette, n *graph.Node) {
	g := n.Rect
	if g == nil || g.Width <= 0 || g.Height <= 0 {
		return
	}
	fill := pal.Color(n)
	canvas.Group(nodeAttrs(n)...)
	canvas.Title(n.DisplayLabel())
	canvas.Path(RectPath(*g), "fill="+quote(fill.Hex()), "stroke="+quote(Stroke(fill).Hex()), `stroke-width="0.5"`)
	if r.labels && g.Width >= minLabelWidth && g.Height >= minLabelHeight {
		canvas.Text(int(g.X)+4, int(g.Y)+fontSize+2, n.DisplayLabel(), fmt.Sprintf(`font-size="%d"`, fontSize))
	}
	canvas.Gend()
}

// SectorPath returns the SVG path of an annular sector. A full turn is
// drawn as two half arcs because a single arc cannot end where it starts.
func SectorPath(g graph.Radial) string {
	if g.Extent >= 2*math.Pi-1e-9 {
		mid := g.Start + math.Pi
		var b strings.Builder
		fmt.Fprintf(&b, "M%s A%s %s 0 0 1 %s A%s %s 0 0 1 %s Z",
			point(g.Outer, g.Start), num(g.Outer), num(g.Outer), point(g.Outer, mid),
			num(g.Outer), num(g.Outer), point(g.Outer, g.Start+2*math.Pi))
		if g.Inner > 0 {
			fmt.Fprintf(&b, " M%s A%s %s 0 0 0 %s A%s %s 0 0 0 %s Z",
				point(g.Inner, g.Start), num(g.Inner), num(g.Inner), point(g.Inner, mid),
				num(g.Inner), num(g.Inner), point(g.Inner, g.Start-2*math.Pi))
		}
		return b.String()
	}

	end := g.Start + g.Extent
	large := 0
	if g.Extent > math.Pi {
		large = 1
	}
	if g.Inner <= 0 {
		return fmt.Sprintf("M0 0 L%s A%s %s 0 %d 1 %s Z",
			point(g.Outer, g.Start), num(g.Outer), num(g.Outer), large, point(g.Outer, end))
	}
	return fmt.Sprintf("M%s A%s %s 0 %d 1 %s L%s A%s %s 0 %d 0 %s Z",
		point(g.Outer, g.Start), num(g.Outer), num(g.Outer), large, point(g.Outer, end),
		point(g.Inner, end), num(g.Inner), num(g.Inner), large, point(g.Inner, g.Start))
}

// RectPath returns the SVG path of a rectangle.
func RectPath(g graph.Rect) string {
	return fmt.Sprintf("M%s %s h%s v%s h%s Z", num(g.X), num(g.Y), num(g.Width), num(g.Height), num(-g.Width))
}

func radialLabel(g graph.Radial) (int, int) {
	a := g.Start + g.Extent/2
	m := (g.Inner + g.Outer) / 2
	if g.Inner <= 0 && g.Extent >= 2*math.Pi-1e-9 {
		m = 0
	}
	return int(math.Round(m * math.Cos(a))), int(math.Round(m * math.Sin(a)))
}

func sunburstRadius(l graph.Layout) float64 {
	if l.Radius > 0 {
		return l.Radius
	}
	r := 0.0
	for _, n := range l.Nodes {
		if n.Radial != nil {
			r = math.Max(r, n.Radial.Outer)
		}
	}
	return math.Max(r, 1)
}

func byZIndex(nodes []graph.Node) []*graph.Node {
	out := make([]*graph.Node, 0, len(nodes))
	for i := range nodes {
		out = append(out, &nodes[i])
	}
	slices.SortStableFunc(out, func(a, b *graph.Node) int {
		return cmp.Compare(zIndex(a), zIndex(b))
	})
	return out
}

func zIndex(n *graph.Node) int {
	if n.Rect == nil {
		return 0
	}
	return n.Rect.ZIndex
}

func nodeAttrs(n *graph.Node) []string {
	return []string{`class="node"`, "id=" + quote("node-"+n.ID), "data-depth=" + quote(fmt.Sprint(n.Depth))}
}

func point(r, a float64) string {
	return num(r*math.Cos(a)) + " " + num(r*math.Sin(a))
}

func num(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;", `"`, "&quot;")

func quote(s string) string {
	return `"` + attrEscaper.Replace(s) + `"`
}
