// pkg/grid/pathfinding.go
package grid

// NeighborDirections is the fixed expansion order: North, East, South, West.
// Among several shortest paths the search always returns the one that prefers
// earlier directions at the earliest branching cell.
var NeighborDirections = [4]Pos{
	{X: 0, Y: -1},
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
}

// Route is the result of one (start, goal) pairing.
type Route struct {
	Start Pos
	Goal  Pos
	Path  []Pos // nil when the goal is unreachable
}

// Reachable reports whether the route found a path.
func (r Route) Reachable() bool {
	return r.Path != nil
}

// FindPath runs a breadth-first search from start to goal over 4-neighbour
// adjacency. Static Blocked cells and every cell in blocked are impassable.
// The returned path includes both endpoints, so its length is the edge count
// plus one. It returns nil when no route exists.
func FindPath(g *Grid, start, goal Pos, blocked map[Pos]bool) []Pos {
	if !g.Passable(start) || !g.Passable(goal) || blocked[start] || blocked[goal] {
		return nil
	}
	if start == goal {
		return []Pos{start}
	}

	parent := make([]int32, g.Width*g.Height)
	for i := range parent {
		parent[i] = -1
	}
	startIdx := g.index(start)
	parent[startIdx] = int32(startIdx)

	queue := make([]Pos, 0, g.Width*g.Height)
	queue = append(queue, start)
	head := 0
	for head < len(queue) {
		current := queue[head]
		head++
		for _, dir := range NeighborDirections {
			next := current.Add(dir)
			if !g.Passable(next) || blocked[next] {
				continue
			}
			idx := g.index(next)
			if parent[idx] != -1 {
				continue
			}
			parent[idx] = int32(g.index(current))
			if next == goal {
				return g.reconstruct(parent, startIdx, idx)
			}
			queue = append(queue, next)
		}
	}
	return nil
}

// FindPaths resolves every (start, goal) pairing, starts-major.
func FindPaths(g *Grid, starts, goals []Pos, blocked map[Pos]bool) []Route {
	routes := make([]Route, 0, len(starts)*len(goals))
	for _, s := range starts {
		for _, goal := range goals {
			routes = append(routes, Route{Start: s, Goal: goal, Path: FindPath(g, s, goal, blocked)})
		}
	}
	return routes
}

// NearestGoalPath returns the shortest path from start to any goal of the
// grid. Goals are tried in grid order; on equal length the earlier goal wins.
func NearestGoalPath(g *Grid, start Pos, blocked map[Pos]bool) []Pos {
	var best []Pos
	for _, goal := range g.Goals() {
		path := FindPath(g, start, goal, blocked)
		if path == nil {
			continue
		}
		if best == nil || len(path) < len(best) {
			best = path
		}
	}
	return best
}

// PlacementKeepsRoutes reports whether blocking candidate leaves every
// currently reachable (start, goal) pair reachable. extraStarts are checked
// against all goals as well; callers pass the cells of live agents so none of
// them is sealed in.
func PlacementKeepsRoutes(g *Grid, blocked map[Pos]bool, candidate Pos, extraStarts []Pos) bool {
	starts := append(g.Starts(), extraStarts...)
	goals := g.Goals()

	after := make(map[Pos]bool, len(blocked)+1)
	for p, b := range blocked {
		if b {
			after[p] = true
		}
	}
	after[candidate] = true

	for _, s := range starts {
		for _, goal := range goals {
			if FindPath(g, s, goal, blocked) == nil {
				continue
			}
			if FindPath(g, s, goal, after) == nil {
				return false
			}
		}
	}
	return true
}

func (g *Grid) index(p Pos) int {
	return p.Y*g.Width + p.X
}

func (g *Grid) reconstruct(parent []int32, startIdx, goalIdx int) []Pos {
	var rev []Pos
	for idx := goalIdx; ; idx = int(parent[idx]) {
		rev = append(rev, Pos{X: idx % g.Width, Y: idx / g.Width})
		if idx == startIdx {
			break
		}
	}
	path := make([]Pos, len(rev))
	for i := range rev {
		path[i] = rev[len(rev)-1-i]
	}
	return path
}
