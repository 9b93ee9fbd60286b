package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReachable_WalledEntrance(t *testing.T) {
	g, _ := FromRows(
		"x#x",
		"#e#",
		"x#s",
	)
	set := g.Reachable(Position{Row: 1, Col: 1})
	assert.Equal(t, 1, set.Size())
	assert.True(t, set.Has(Position{Row: 1, Col: 1}))
	assert.False(t, g.ExitReachable(Position{Row: 1, Col: 1}))
}

func TestReachable_StopsAtExit(t *testing.T) {
	g, _ := FromRows("esxx")
	set := g.Reachable(Position{Row: 0, Col: 0})
	assert.Equal(t, 2, set.Size())
	assert.True(t, set.Has(Position{Row: 0, Col: 1}))
	assert.False(t, set.Has(Position{Row: 0, Col: 2}), "cells behind an exit are not expanded")
	assert.True(t, g.ExitReachable(Position{Row: 0, Col: 0}))
}

func TestReachable_DisconnectedRegion(t *testing.T) {
	g, _ := FromRows(
		"ex#xx",
		"xx#xs",
	)
	set := g.Reachable(Position{Row: 0, Col: 0})
	assert.Equal(t, 4, set.Size())
	assert.False(t, g.ExitReachable(Position{Row: 0, Col: 0}))
}

func TestReachable_OutOfBounds(t *testing.T) {
	g, _ := FromRows("ex")
	assert.Equal(t, 0, g.Reachable(Position{Row: 5, Col: 5}).Size())
}

func TestReachable_DoesNotMutate(t *testing.T) {
	g, _ := FromRows("exxs")
	before := g.String()
	_ = g.Reachable(Position{Row: 0, Col: 0})
	assert.Equal(t, before, g.String())
}
