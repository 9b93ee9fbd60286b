// Package render turns grid snapshots into output. A Renderer is a
// side-effecting sink called synchronously by the owner of the grid; it has
// no return value and cannot influence the search.
package render

import (
	"github.com/vk/mazewalk/internal/grid"
)

// Renderer receives a snapshot of the grid after every mutation.
// Implementations must not retain or modify g.
type Renderer interface {
	Frame(g *grid.Grid)
}

// Func adapts a plain function to Renderer.
type Func func(g *grid.Grid)

// Frame calls f(g).
func (f Func) Frame(g *grid.Grid) { f(g) }

// Multi fans a frame out to several renderers in order.
type Multi []Renderer

// Frame forwards g to every renderer.
func (m Multi) Frame(g *grid.Grid) {
	for _, r := range m {
		r.Frame(g)
	}
}

// Discard ignores every frame.
var Discard Renderer = Func(func(*grid.Grid) {})
