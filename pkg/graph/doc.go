// Package graph provides serialization types for hierarchy documents,
// layouts and transitions.
//
// This package defines the canonical wire format for hierview data, used for
// input files, API requests and responses, caching, and cross-tool
// interoperability.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Document]: input hierarchy (nested node specs plus view options)
//   - [Layout]: placed nodes produced by a sunburst or treemap pass
//   - [Transition]: ordered animation tasks between two passes
//   - pkg/tree.Tree: internal per-pass representation
//
// # Documents
//
// Documents are read from JSON, YAML or TOML. The format is chosen by file
// extension or explicitly with [ParseFormat]:
//
//	{
//	  "nodes": [
//	    {"id": "src", "children": [{"id": "main.go", "value": 120}]},
//	    {"id": "docs", "value": 40}
//	  ],
//	  "hidden_categories": ["generated"]
//	}
//
// Common operations:
//
//	doc, _ := graph.ReadDocumentFile("tree.yaml")       // File → Document
//	data, _ := graph.MarshalDocument(doc, FormatTOML)   // Document → []byte
//	t, _ := tree.Build(doc.Nodes, doc.TreeOptions())    // Document → Tree
//
// # Layouts
//
// Layouts are discriminated by VizType. Sunburst nodes carry radial
// geometry; treemap nodes carry rectangles and a z index:
//
//	layout := graph.NewLayout(graph.VizTypeTreemap, root)
//	data, _ := graph.MarshalLayout(layout)
//
// # Concurrency
//
// All functions are safe for concurrent use on distinct values.
package graph
