// Package geom provides the floating point geometry used by the grid engine.
//
// Coordinates follow the usual top-left origin with y growing downward.
// Rectangles are half-open: the right and bottom edges are outside.
package geom
