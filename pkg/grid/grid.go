// pkg/grid/grid.go
package grid

import (
	"fmt"
	"strings"
)

// CellKind describes what a grid cell allows.
type CellKind uint8

const (
	Buildable CellKind = iota
	Blocked
	Start
	Goal
)

func (k CellKind) String() string {
	switch k {
	case Buildable:
		return "buildable"
	case Blocked:
		return "blocked"
	case Start:
		return "start"
	case Goal:
		return "goal"
	default:
		return fmt.Sprintf("CellKind(%d)", uint8(k))
	}
}

// Pos is an integer cell coordinate. X grows to the east, Y grows to the south.
type Pos struct {
	X, Y int
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns the sum of two positions.
func (p Pos) Add(other Pos) Pos {
	return Pos{X: p.X + other.X, Y: p.Y + other.Y}
}

// Manhattan returns the 4-neighbour distance between two cells.
func (p Pos) Manhattan(to Pos) int {
	return abs(p.X-to.X) + abs(p.Y-to.Y)
}

// Grid is a fixed-size board of cells.
type Grid struct {
	Width  int
	Height int
	cells  []CellKind
	starts []Pos
	goals  []Pos
}

// New creates an all-buildable grid.
func New(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic("grid dimensions must be positive")
	}
	return &Grid{
		Width:  width,
		Height: height,
		cells:  make([]CellKind, width*height),
	}
}

// Parse builds a grid from row strings: '.' buildable, '#' blocked,
// 'S' start, 'G' goal. All rows must have the same width.
func Parse(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("grid has no rows")
	}
	width := len(rows[0])
	if width == 0 {
		return nil, fmt.Errorf("grid has empty first row")
	}
	g := New(width, len(rows))
	for y, row := range rows {
		row = strings.TrimRight(row, "\r")
		if len(row) != width {
			return nil, fmt.Errorf("row %d has width %d, want %d", y, len(row), width)
		}
		for x, ch := range row {
			var kind CellKind
			switch ch {
			case '.':
				kind = Buildable
			case '#':
				kind = Blocked
			case 'S':
				kind = Start
			case 'G':
				kind = Goal
			default:
				return nil, fmt.Errorf("row %d col %d: unknown cell %q", y, x, ch)
			}
			g.Set(Pos{X: x, Y: y}, kind)
		}
	}
	if len(g.starts) == 0 {
		return nil, fmt.Errorf("grid has no start cell")
	}
	if len(g.goals) == 0 {
		return nil, fmt.Errorf("grid has no goal cell")
	}
	return g, nil
}

// InBounds reports whether p lies on the grid.
func (g *Grid) InBounds(p Pos) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.Width && p.Y < g.Height
}

// Kind returns the cell kind at p. Out-of-bounds cells read as Blocked.
func (g *Grid) Kind(p Pos) CellKind {
	if !g.InBounds(p) {
		return Blocked
	}
	return g.cells[p.Y*g.Width+p.X]
}

// Set changes the kind of a cell and keeps the start/goal indexes current.
func (g *Grid) Set(p Pos, kind CellKind) {
	if !g.InBounds(p) {
		return
	}
	prev := g.cells[p.Y*g.Width+p.X]
	g.cells[p.Y*g.Width+p.X] = kind
	if prev == Start {
		g.starts = removePos(g.starts, p)
	}
	if prev == Goal {
		g.goals = removePos(g.goals, p)
	}
	switch kind {
	case Start:
		g.starts = append(g.starts, p)
	case Goal:
		g.goals = append(g.goals, p)
	}
}

// Buildable reports whether a tower may stand on p (ignoring occupancy).
func (g *Grid) Buildable(p Pos) bool {
	return g.Kind(p) == Buildable
}

// Passable reports whether an agent may walk through p when nothing is placed on it.
func (g *Grid) Passable(p Pos) bool {
	return g.InBounds(p) && g.Kind(p) != Blocked
}

// Starts returns the entry cells in row-major discovery order.
func (g *Grid) Starts() []Pos {
	out := make([]Pos, len(g.starts))
	copy(out, g.starts)
	return out
}

// Goals returns the exit cells in row-major discovery order.
func (g *Grid) Goals() []Pos {
	out := make([]Pos, len(g.goals))
	copy(out, g.goals)
	return out
}

// Rows renders the grid back into its textual form.
func (g *Grid) Rows() []string {
	rows := make([]string, g.Height)
	var sb strings.Builder
	for y := 0; y < g.Height; y++ {
		sb.Reset()
		for x := 0; x < g.Width; x++ {
			switch g.Kind(Pos{X: x, Y: y}) {
			case Buildable:
				sb.WriteByte('.')
			case Blocked:
				sb.WriteByte('#')
			case Start:
				sb.WriteByte('S')
			case Goal:
				sb.WriteByte('G')
			}
		}
		rows[y] = sb.String()
	}
	return rows
}

func removePos(list []Pos, p Pos) []Pos {
	for i, q := range list {
		if q == p {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
