// Package report serializes layout snapshots and compares them.
//
// A [Document] wraps a [grid.Snapshot] with the skip set it was computed
// with, so two documents can be diffed line by line with [Diff]. Output can
// be syntax highlighted for terminals with a [Highlighter].
package report
