// Package planner turns waypoint missions into the turn instructions and
// road names the control loop consumes, using a weighted directed graph of
// the track.
package planner

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// MapEdge is a directed road leaving a node. Turn is the maneuver performed
// to enter the road: forward, left or right. An empty turn means forward and
// a zero weight defaults to 1.
type MapEdge struct {
	To     string `json:"to"`
	Road   string `json:"road"`
	Weight int    `json:"weight,omitempty"`
	Turn   string `json:"turn,omitempty"`
}

// MapNode is a stop line position in the track graph.
type MapNode struct {
	Name  string    `json:"name"`
	Edges []MapEdge `json:"edges,omitempty"`
}

// MapData is the serialized map document.
type MapData struct {
	Nodes []MapNode `json:"nodes"`
}

// UpdateMap parses and validates a map document and replaces the graph.
// On a validation error the previous graph stays active.
func (p *Planner) UpdateMap(data []byte) error {
	var doc MapData
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(err, "could not parse map data")
	}

	names := make([]string, 0, len(doc.Nodes))
	index := make(map[string]int, len(doc.Nodes))
	for _, node := range doc.Nodes {
		if node.Name == "" {
			return errors.New("map node without a name")
		}
		if _, exists := index[node.Name]; exists {
			return errors.Errorf("duplicate map node %q", node.Name)
		}
		index[node.Name] = len(names)
		names = append(names, node.Name)
	}

	edges := make([][]edge, len(names))
	for _, node := range doc.Nodes {
		u := index[node.Name]
		seen := make(map[int]bool, len(node.Edges))
		for _, e := range node.Edges {
			v, ok := index[e.To]
			if !ok {
				return errors.Errorf("node %q has a road to unknown node %q", node.Name, e.To)
			}
			if seen[v] {
				return errors.Errorf("node %q has more than one road to %q", node.Name, e.To)
			}
			seen[v] = true
			if e.Road == "" {
				return errors.Errorf("road from %q to %q has no name", node.Name, e.To)
			}
			turn := e.Turn
			if turn == "" {
				turn = "forward"
			}
			switch turn {
			case "forward", "left", "right":
			default:
				return errors.Errorf("road %q has unknown turn %q", e.Road, e.Turn)
			}
			weight := e.Weight
			if weight < 0 {
				return errors.Errorf("road %q has negative weight %d", e.Road, e.Weight)
			}
			if weight == 0 {
				weight = 1
			}
			edges[u] = append(edges[u], edge{to: v, road: e.Road, weight: weight, turn: turn})
		}
	}

	p.names = names
	p.index = index
	p.edges = edges
	p.dist = nil
	p.next = nil
	return nil
}
