// Package nodelink renders a hierarchy as a node-link outline.
//
// # Overview
//
// Sunburst and treemap drawings encode structure as nesting. This package
// draws the same tree as boxes connected by arrows, using Graphviz, which
// is easier to read for deep, narrow trees and for debugging disclosure.
//
// # Usage
//
//	dot := nodelink.ToDOT(t.Root, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Collapsed nodes that have undisclosed children are drawn dashed.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
