// Package view holds the interactive controllers for the two visualizations.
//
// A controller owns the state that survives between render passes: the
// drill root, the disclosure set (sunburst), the isolate stack (treemap),
// the keyboard focus and the animation player. Every mutating call follows
// the same cycle: read and update that state, stop any animation still in
// flight, run exactly one new pass, and report the pass to the caller.
//
// A pass builds a fresh tree from the data provider, lays out the display
// root, and classifies the change against the previous pass. The previous
// tree is kept only for that comparison.
//
// Controllers are not safe for concurrent use. They are meant to be driven
// from a single UI goroutine, such as a bubbletea update loop.
package view
