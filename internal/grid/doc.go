// Package grid holds a maze as a rectangular grid of cell symbols and answers
// the bounds and traversability questions the solver asks while walking it.
//
// A Grid is a plain data container. It is mutated in place during a search
// (cells are overwritten with Visited) and is owned by exactly one search at a
// time; it performs no locking of its own.
//
// Symbols:
//
//   - Open     'x'  passage the solver may enter.
//   - Entrance 'e'  where the search starts.
//   - Exit     's'  goal cell; entering it ends the search.
//   - Visited  '.'  written by the solver, never traversable.
//   - anything else is a wall.
package grid
