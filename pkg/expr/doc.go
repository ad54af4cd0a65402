// Package expr provides CEL (Common Expression Language) support for
// selecting grid slots by expression.
//
// A skip expression is evaluated once per item index and must return a
// boolean. Expressions have access to the variables:
//   - `index` (int): The item index being tested
//   - `count` (int): The total number of items
//   - `columns` (int): The row capacity of the grid
//   - `row` (int): The natural row of the index
//   - `col` (int): The natural column of the index
//   - `label` (string): The item label, or "" if the item has none
//
// Examples:
//   - index == 5
//   - col == columns - 1
//   - row % 2 == 1 && col == 0
//   - label.startsWith("tmp")
package expr
