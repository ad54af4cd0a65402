// Package render draws a [grid.Snapshot] onto a character canvas.
//
// Layout points are scaled to terminal cells by a fixed cell size, then
// each region is drawn as a box: header and footer first, then vacancies,
// items and finally any floating overlay such as an item being dragged.
package render
