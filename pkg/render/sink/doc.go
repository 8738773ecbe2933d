// Package sink renders serialized layouts to output formats.
//
// [RenderSVG] draws a sunburst layout as annular sectors around the origin
// and a treemap layout as rectangles stacked by z index. Nodes are filled
// with their own colour when they carry one; otherwise [Palette] derives a
// hue per top-level branch and lightens it with depth. [RenderJSON] emits
// the layout itself for clients that draw on their own.
//
// Both sinks work from [graph.Layout], so cached layouts render without
// rebuilding the tree.
package sink
