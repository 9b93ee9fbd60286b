// Package solver searches a maze grid for an exit using depth-first search
// with backtracking.
//
// What:
//
//   - Solve walks from a start cell, marking every cell it steps onto as
//     grid.Visited, and stops at the first exit cell it reaches.
//   - Neighbours are examined in the fixed order up, down, left, right and
//     pushed onto a LIFO frontier, so the last direction checked is explored
//     first. Two runs over the same maze visit the same cells in the same order.
//   - The visited mark is the only cycle breaker: a cell is entered at most
//     once, so a search takes at most rows×cols steps.
//   - SolveParallel explores branches on several goroutines. Cell claims and
//     step hooks run under one mutex, and the first exit found cancels the rest.
//
// Complexity:
//
//   - Time:   O(rows×cols).
//   - Memory: O(rows×cols) for the frontier, visit order and parent links.
//
// Options:
//
//   - WithOnStep(fn)    called synchronously after each cell is marked visited.
//   - WithDelay(d)      pause between steps (animation); honours cancellation.
//   - WithMaxSteps(n)   abort with ErrStepLimit after n visited cells.
//
// Errors:
//
//   - ErrNilGrid            grid is nil.
//   - ErrStartOutOfBounds   start lies outside the grid.
//   - ErrStepLimit          MaxSteps exhausted before the search finished.
//   - context.Canceled / context.DeadlineExceeded, wrapped.
package solver
