package planner

import (
	"math"

	"github.com/pkg/errors"
)

// Distances at or above this are treated as unreachable. Half of MaxInt so
// two of them can be added without overflowing.
const unreachable = math.MaxInt / 2

// edge is a directed road in the arena, addressing its far end by index.
type edge struct {
	to     int
	road   string
	weight int
	turn   string
}

// Planner solves routes over a weighted directed graph. Nodes live in an
// arena and are addressed by index, so a map reload swaps the whole arena
// instead of leaving dangling references behind.
//
// Shortest paths are computed lazily with Floyd-Warshall on the first solve
// after a map load and cached until the next load. The all-pairs tables cost
// O(n^3) once, which for track maps of a few dozen stop lines is cheaper
// than repeated single-source searches during a mission.
type Planner struct {
	names []string
	index map[string]int
	edges [][]edge

	// dist[u][v] is the total weight of the cheapest route from u to v and
	// next[u][v] the first hop on it. Both are nil until a route is solved.
	dist [][]int
	next [][]int
}

// New returns a planner with an empty map.
func New() *Planner {
	return &Planner{index: map[string]int{}}
}

// Solve returns the maneuvers and road names for driving from start to
// target, one entry per road on the cheapest route. Solving a route to the
// current position returns empty sequences.
func (p *Planner) Solve(start string, target string) ([]string, []string, error) {
	route, err := p.route(start, target)
	if err != nil {
		return nil, nil, err
	}
	turns := make([]string, 0, len(route)-1)
	roads := make([]string, 0, len(route)-1)
	for i := 0; i+1 < len(route); i++ {
		e, ok := p.edgeBetween(route[i], route[i+1])
		if !ok {
			return nil, nil, errors.Errorf("no road between %q and %q", p.names[route[i]], p.names[route[i+1]])
		}
		turns = append(turns, e.turn)
		roads = append(roads, e.road)
	}
	return turns, roads, nil
}

// Route returns the nodes visited driving from start to target, including
// both endpoints, and the total weight of the route.
func (p *Planner) Route(start string, target string) ([]string, int, error) {
	route, err := p.route(start, target)
	if err != nil {
		return nil, 0, err
	}
	names := make([]string, len(route))
	for i, n := range route {
		names[i] = p.names[n]
	}
	weight := 0
	if len(route) > 1 {
		weight = p.dist[route[0]][route[len(route)-1]]
	}
	return names, weight, nil
}

// Nodes returns the node names in map order.
func (p *Planner) Nodes() []string {
	names := make([]string, len(p.names))
	copy(names, p.names)
	return names
}

func (p *Planner) route(start string, target string) ([]int, error) {
	u, ok := p.index[start]
	if !ok {
		return nil, errors.Errorf("unknown waypoint %q", start)
	}
	v, ok := p.index[target]
	if !ok {
		return nil, errors.Errorf("unknown waypoint %q", target)
	}
	if u == v {
		return []int{u}, nil
	}
	p.ensureShortestPaths()
	if p.dist[u][v] >= unreachable {
		return nil, errors.Errorf("no route from %q to %q", start, target)
	}
	return p.walk(u, v), nil
}

func (p *Planner) ensureShortestPaths() {
	if p.dist == nil {
		p.computeShortestPaths()
	}
}

// computeShortestPaths fills the dist and next tables for every node pair.
func (p *Planner) computeShortestPaths() {
	n := len(p.names)
	dist := make([][]int, n)
	next := make([][]int, n)
	for i := 0; i < n; i++ {
		dist[i] = make([]int, n)
		next[i] = make([]int, n)
		for j := 0; j < n; j++ {
			dist[i][j] = unreachable
			next[i][j] = -1
		}
		dist[i][i] = 0
		next[i][i] = i
	}
	for u, out := range p.edges {
		for _, e := range out {
			if e.weight < dist[u][e.to] {
				dist[u][e.to] = e.weight
				next[u][e.to] = e.to
			}
		}
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if dist[i][k]+dist[k][j] < dist[i][j] {
					dist[i][j] = dist[i][k] + dist[k][j]
					next[i][j] = next[i][k]
				}
			}
		}
	}
	p.dist = dist
	p.next = next
}

// walk reconstructs the route from u to v out of the next table.
func (p *Planner) walk(u, v int) []int {
	route := []int{u}
	for u != v {
		u = p.next[u][v]
		route = append(route, u)
	}
	return route
}

func (p *Planner) edgeBetween(u, v int) (edge, bool) {
	for _, e := range p.edges[u] {
		if e.to == v {
			return e, true
		}
	}
	return edge{}, false
}
