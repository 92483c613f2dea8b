// internal/component/movement.go
package component

import (
	"math"

	"grid-tower-defense/pkg/grid"
)

// Position is a continuous location in cell units; the centre of cell (x, y)
// is (x, y).
type Position struct {
	X, Y float64
}

// Cell returns the grid cell the position lies in.
func (p Position) Cell() grid.Pos {
	return grid.Pos{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
}

// CellCenter returns the continuous position of a cell centre.
func CellCenter(c grid.Pos) Position {
	return Position{X: float64(c.X), Y: float64(c.Y)}
}

// Velocity is the base movement speed in cells per simulated second.
type Velocity struct {
	Speed float64
}

// Path is the route an enemy follows. Index points at the next cell to reach.
type Path struct {
	Cells []grid.Pos
	Index int
}

// Done reports whether the final cell was reached.
func (p *Path) Done() bool {
	return p.Index >= len(p.Cells)
}
