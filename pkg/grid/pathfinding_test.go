package grid

import (
	"reflect"
	"testing"
)

func TestFindPathOpenGridIsManhattan(t *testing.T) {
	g := New(5, 5)
	cases := []struct {
		start, goal Pos
	}{
		{Pos{0, 0}, Pos{4, 4}},
		{Pos{4, 0}, Pos{0, 4}},
		{Pos{2, 2}, Pos{2, 2}},
		{Pos{0, 3}, Pos{4, 3}},
	}
	for _, tc := range cases {
		path := FindPath(g, tc.start, tc.goal, nil)
		if path == nil {
			t.Fatalf("no path from %v to %v", tc.start, tc.goal)
		}
		if got, want := len(path), tc.start.Manhattan(tc.goal)+1; got != want {
			t.Fatalf("path %v->%v has %d cells, want %d", tc.start, tc.goal, got, want)
		}
		if path[0] != tc.start || path[len(path)-1] != tc.goal {
			t.Fatalf("path endpoints %v..%v, want %v..%v", path[0], path[len(path)-1], tc.start, tc.goal)
		}
	}
}

func TestFindPathCornerToCornerHasNineCells(t *testing.T) {
	path := FindPath(New(5, 5), Pos{0, 0}, Pos{4, 4}, nil)
	if len(path) != 9 {
		t.Fatalf("expected 9 cells (8 edges), got %d", len(path))
	}
}

func TestFindPathIsDeterministic(t *testing.T) {
	g := New(3, 3)
	path := FindPath(g, Pos{0, 0}, Pos{2, 2}, nil)
	// East is tried before South, so the search walks the top row first.
	want := []Pos{{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}}
	if !reflect.DeepEqual(path, want) {
		t.Fatalf("path = %v, want %v", path, want)
	}
	for i := 0; i < 10; i++ {
		if again := FindPath(g, Pos{0, 0}, Pos{2, 2}, nil); !reflect.DeepEqual(again, path) {
			t.Fatalf("run %d returned %v", i, again)
		}
	}
}

func TestFindPathAvoidsBlocked(t *testing.T) {
	g, err := Parse([]string{
		"S.#..",
		"..#..",
		"..#..",
		".....",
		"....G",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	path := FindPath(g, Pos{0, 0}, Pos{4, 4}, map[Pos]bool{{1, 3}: true})
	if path == nil {
		t.Fatalf("expected a path")
	}
	for _, p := range path {
		if g.Kind(p) == Blocked || p == (Pos{1, 3}) {
			t.Fatalf("path crosses blocked cell %v", p)
		}
	}
	if len(path) != 9 {
		t.Fatalf("expected shortest path of 9 cells, got %d: %v", len(path), path)
	}
}

func TestFindPathNoRoute(t *testing.T) {
	g, err := Parse([]string{
		"S#.",
		"##.",
		"..G",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if path := FindPath(g, Pos{0, 0}, Pos{2, 2}, nil); path != nil {
		t.Fatalf("expected no path, got %v", path)
	}
}

func TestFindPathsOneResultPerPairing(t *testing.T) {
	g, err := Parse([]string{
		"S...G",
		".....",
		"S...G",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	routes := FindPaths(g, g.Starts(), g.Goals(), nil)
	if len(routes) != 4 {
		t.Fatalf("expected 4 routes, got %d", len(routes))
	}
	if routes[0].Start != (Pos{0, 0}) || routes[0].Goal != (Pos{4, 0}) {
		t.Fatalf("unexpected first pairing %v -> %v", routes[0].Start, routes[0].Goal)
	}
	if routes[1].Start != (Pos{0, 0}) || routes[1].Goal != (Pos{4, 2}) {
		t.Fatalf("unexpected second pairing %v -> %v", routes[1].Start, routes[1].Goal)
	}
	for _, r := range routes {
		if !r.Reachable() {
			t.Fatalf("route %v -> %v unreachable", r.Start, r.Goal)
		}
	}
}

func TestPlacementKeepsRoutes(t *testing.T) {
	g, err := Parse([]string{
		"S.#",
		"#..",
		"##G",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if PlacementKeepsRoutes(g, nil, Pos{1, 0}, nil) {
		t.Fatalf("blocking the only corridor must be rejected")
	}
	open := New(3, 3)
	open.Set(Pos{0, 0}, Start)
	open.Set(Pos{2, 2}, Goal)
	if !PlacementKeepsRoutes(open, nil, Pos{1, 1}, nil) {
		t.Fatalf("centre placement leaves the ring open")
	}
}

func TestPlacementKeepsRoutesChecksExtraStarts(t *testing.T) {
	g, err := Parse([]string{
		"S...G",
		"##.##",
		"##.##",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	agent := Pos{2, 2}
	if !PlacementKeepsRoutes(g, nil, Pos{2, 1}, nil) {
		t.Fatalf("start->goal survives when no agent is in the pocket")
	}
	if PlacementKeepsRoutes(g, nil, Pos{2, 1}, []Pos{agent}) {
		t.Fatalf("sealing an agent in the pocket must be rejected")
	}
}

func TestPlacementRejectsWhenAllPairsCut(t *testing.T) {
	g, err := Parse([]string{
		"S#G",
		"S.G",
		"###",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if PlacementKeepsRoutes(g, nil, Pos{1, 1}, nil) {
		t.Fatalf("blocking the middle cell disconnects every pair")
	}
}

func TestPlacementIgnoresAlreadyUnreachablePairs(t *testing.T) {
	g, err := Parse([]string{
		"S#...",
		"#....",
		"S...G",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !PlacementKeepsRoutes(g, nil, Pos{2, 0}, nil) {
		t.Fatalf("a start that was never connected must not veto placement")
	}
}

func TestNearestGoalPathPrefersShorter(t *testing.T) {
	g, err := Parse([]string{
		"G...S.G",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	path := NearestGoalPath(g, Pos{4, 0}, nil)
	if len(path) != 3 || path[len(path)-1] != (Pos{6, 0}) {
		t.Fatalf("expected route to the east goal, got %v", path)
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	cases := map[string][]string{
		"empty":    nil,
		"ragged":   {"S..", "..G."},
		"unknown":  {"S.x", "..G"},
		"no start": {"...", "..G"},
		"no goal":  {"S..", "..."},
	}
	for name, rows := range cases {
		if _, err := Parse(rows); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestRowsRoundTrip(t *testing.T) {
	rows := []string{"S.#", "..G"}
	g, err := Parse(rows)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := g.Rows(); !reflect.DeepEqual(got, rows) {
		t.Fatalf("Rows() = %v, want %v", got, rows)
	}
}
