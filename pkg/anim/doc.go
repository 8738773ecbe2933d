// Package anim computes the animated transition between two layout passes.
//
// # Classification
//
// [Classify] compares the display root of the previous pass with the display
// root of the current one. When either root is an ancestor of the other the
// transition is a drill: both visible subtrees are flattened and matched by
// id. Otherwise it is a data change: the roots are paired and children are
// matched by id under paired parents, level by level.
//
// # Tasks
//
// Every node whose visible state differs between the passes yields one
// [Task] holding a start and an end [Vector]. Deletions run first, then
// updates, then insertions, so removed nodes clear space before survivors
// move and new nodes fill in last. Tasks are stably sorted by that priority.
//
// # Playback
//
// [Player] interpolates tasks over time one priority phase at a time using
// gween easing functions. Stopping a player snaps every task to its end
// vector, which is what a new pass does to an animation still in flight.
package anim
