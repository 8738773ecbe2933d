// Package tree provides the hierarchical data model shared by the sunburst
// and treemap layouts.
//
// # Overview
//
// A [Tree] is rebuilt once per render pass from an ordered list of node
// specifications ([Spec]) or from a paged [DataProvider]. The tree owns its
// nodes through [Node.Children]; [Node.Parent] and [Node.LastVisitedChild]
// are non-owning references used for navigation only.
//
// Construction applies three filters in a single depth-first pass:
//
//   - Hidden categories: specs matched by [Options.Hidden] are dropped along
//     with their subtrees.
//   - Disclosure: a node's children are only expanded when the node is
//     disclosed (see [Disclosure]).
//   - Depth: at most [Options.MaxDepth] levels are built.
//
// When the input declares more than one top-level node, all of them are
// wrapped under a synthetic root with [Node.ArtificialRoot] set, so every
// tree has exactly one root.
//
// # Disclosure
//
// Disclosure state may be supplied as "everything expanded" ([All]), an
// ordered id list ([IDList]), a key-set ([KeySetDisclosure] over any
// [KeySet]) or a boolean map ([BoolMap]). All of them satisfy the single
// [Disclosure] capability so layouts never branch on the representation.
//
// # Geometry
//
// Layouts write a [Geometry] into every node they place and set
// [Node.HasLayout]. A node without layout still exists in the tree; it was
// filtered, had no extent, or lies outside the subtree being displayed.
//
// # Concurrency
//
// Trees are not safe for concurrent mutation. A tree is owned by exactly one
// view controller for the duration of a render pass.
package tree
