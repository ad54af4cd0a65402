// Package grid packs uniformly sized items into a wrapping, vertically
// scrolling grid with optional header and footer regions.
//
// A caller-supplied [SkipSet] marks slots that must stay vacant, which is how
// an interactive drag-reorder opens a gap under the dragged item. Items after
// a skipped slot shift forward one slot per skip, wrapping onto the next row
// when the current row is full.
//
// The [Engine] caches the last computed [Snapshot] against an invalidation
// key made of the item count, the engine's own generation counter and, when
// the [Host] implements [Versioned], the host's generation counter. Queries
// never recompute; call [Engine.Prepare] from the host's layout pass.
//
// Only a single section is supported, and every item in a pass shares the
// size reported for index 0.
package grid
