// Package pkg provides the core libraries for Hierview hierarchy visualization.
//
// # Overview
//
// Hierview lays out hierarchical data as sunbursts and treemaps, keeps the
// view state of an interactive session (drill root, disclosure, isolate
// stack, keyboard focus) and computes the animated transition between two
// layouts. The pkg directory is organized into four main areas:
//
//  1. Model and geometry: [tree], [layout/sunburst], [layout/treemap], [hittest], [nav]
//  2. Interaction: [anim], [view]
//  3. Serialization and output: [graph], [render], [render/sink], [render/nodelink]
//  4. Infrastructure: [pipeline], [cache], [session], [api], [observability], [errors]
//
// # Architecture
//
// The typical data flow through Hierview:
//
//	Tree document (JSON, YAML, TOML)
//	         ↓
//	    [tree] package (filtered tree per pass)
//	         ↓
//	    [layout/sunburst] or [layout/treemap] (geometry)
//	         ↓
//	    [view] package (state + [anim] transition)
//	         ↓
//	    SVG/PDF/PNG/JSON/DOT output
//
// # Quick Start
//
// Open a treemap, drill into a node and render the result:
//
//	doc := graph.Document{Nodes: []tree.Spec{{ID: "root", Children: specs}}}
//	v, _ := pipeline.OpenView(doc, pipeline.Options{VizType: graph.VizTypeTreemap})
//
//	pass, _ := v.Drill("src")
//	fmt.Println(pass.Transition.Count(anim.Update), "nodes move")
//
//	l := v.Layout()
//	artifacts, _ := pipeline.Render(ctx, l, v.Root(), pipeline.Options{
//	    VizType: l.VizType,
//	    Formats: []string{pipeline.FormatSVG},
//	})
//
// # Main Packages
//
// ## Model and Geometry
//
// [tree] - The node model rebuilt on every pass. Construction hides nodes by
// category, limits depth, applies the disclosure set and aggregates sizes.
//
// [layout/sunburst] - Annular sectors with per-node ring thickness scaled to
// the longest disclosed branch.
//
// [layout/treemap] - Nested rectangles using squarify or slice-and-dice, with
// configurable gaps between siblings.
//
// [hittest] - Point to deepest node, in polar or rectangular coordinates.
//
// [nav] - Keyboard focus movement for both geometries.
//
// ## Interaction
//
// [anim] - Classifies the change between two passes as a drill or a data
// change and produces delete, update and insert tasks played in that order.
//
// [view] - Sunburst and treemap controllers. Every mutating call runs exactly
// one pass and returns it with its transition.
//
// ## Serialization and Output
//
// [graph] - Wire types for documents, layouts and transitions.
//
// [render/sink] - SVG drawings and JSON layouts. [render] converts SVG to PDF
// and PNG; [render/nodelink] draws the displayed subtree with Graphviz.
//
// ## Infrastructure
//
// [pipeline] - Load, layout and render orchestration shared by the CLI and
// the HTTP API, with caching and session restore.
//
// [cache] - File, memory and Redis caches with content-addressed keys.
//
// [session] - View state persistence in memory, files or Redis.
//
// [api] - The HTTP service (chi router, Prometheus metrics).
//
// [observability] - Hooks for pipeline, cache, interaction and HTTP events.
//
// [errors] - Structured error codes mapped to exit and HTTP statuses.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/layout/...             # Specific package
//	go test -run Property ./pkg/...      # Property-based tests only
//
// [tree]: https://pkg.go.dev/github.com/matzehuels/hierview/pkg/tree
// [layout/sunburst]: https://pkg.go.dev/github.com/matzehuels/hierview/pkg/layout/sunburst
// [layout/treemap]: https://pkg.go.dev/github.com/matzehuels/hierview/pkg/layout/treemap
// [hittest]: https://pkg.go.dev/github.com/matzehuels/hierview/pkg/hittest
// [nav]: https://pkg.go.dev/github.com/matzehuels/hierview/pkg/nav
// [anim]: https://pkg.go.dev/github.com/matzehuels/hierview/pkg/anim
// [view]: https://pkg.go.dev/github.com/matzehuels/hierview/pkg/view
// [graph]: https://pkg.go.dev/github.com/matzehuels/hierview/pkg/graph
// [render]: https://pkg.go.dev/github.com/matzehuels/hierview/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/hierview/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/hierview/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/hierview/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/hierview/pkg/cache
// [session]: https://pkg.go.dev/github.com/matzehuels/hierview/pkg/session
// [api]: https://pkg.go.dev/github.com/matzehuels/hierview/pkg/api
// [observability]: https://pkg.go.dev/github.com/matzehuels/hierview/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/hierview/pkg/errors
package pkg
