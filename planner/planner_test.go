package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testMap is a small track: A and B sit on a cheap loop, C hangs off A via
// an expensive direct road, and D is unreachable.
const testMap = `{
	"nodes": [
		{"name": "A", "edges": [
			{"to": "B", "road": "ab", "turn": "forward"},
			{"to": "C", "road": "ac", "turn": "left", "weight": 5}
		]},
		{"name": "B", "edges": [
			{"to": "C", "road": "bc", "turn": "right"},
			{"to": "A", "road": "ba", "turn": "left", "weight": 2}
		]},
		{"name": "C", "edges": [
			{"to": "A", "road": "ca"}
		]},
		{"name": "D"}
	]
}`

func loadedPlanner(t *testing.T) *Planner {
	t.Helper()
	p := New()
	require.NoError(t, p.UpdateMap([]byte(testMap)))
	return p
}

func TestSolvePrefersCheapestRoute(t *testing.T) {
	p := loadedPlanner(t)

	turns, roads, err := p.Solve("A", "C")
	require.NoError(t, err)

	// Going through B costs 2, the direct left costs 5.
	assert.Equal(t, []string{"forward", "right"}, turns)
	assert.Equal(t, []string{"ab", "bc"}, roads)
}

func TestSolveDefaultsTurnToForward(t *testing.T) {
	p := loadedPlanner(t)

	turns, roads, err := p.Solve("C", "A")
	require.NoError(t, err)

	assert.Equal(t, []string{"forward"}, turns)
	assert.Equal(t, []string{"ca"}, roads)
}

func TestSolveToCurrentPosition(t *testing.T) {
	p := loadedPlanner(t)

	turns, roads, err := p.Solve("A", "A")
	require.NoError(t, err)

	assert.Empty(t, turns)
	assert.Empty(t, roads)
}

func TestSolveUnreachableTarget(t *testing.T) {
	p := loadedPlanner(t)

	_, _, err := p.Solve("A", "D")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no route")
}

func TestSolveUnknownWaypoint(t *testing.T) {
	p := loadedPlanner(t)

	_, _, err := p.Solve("Z", "A")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown waypoint")

	_, _, err = p.Solve("A", "Z")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown waypoint")
}

func TestRouteReportsNodesAndWeight(t *testing.T) {
	p := loadedPlanner(t)

	nodes, weight, err := p.Route("A", "C")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, nodes)
	assert.Equal(t, 2, weight)

	nodes, weight, err = p.Route("B", "B")
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, nodes)
	assert.Equal(t, 0, weight)
}

func TestNodesListsMapOrder(t *testing.T) {
	p := loadedPlanner(t)

	assert.Equal(t, []string{"A", "B", "C", "D"}, p.Nodes())
}

func TestUpdateMapRejectsBadDocuments(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "malformed json",
			doc:  `{"nodes": [`,
			want: "could not parse map data",
		},
		{
			name: "unnamed node",
			doc:  `{"nodes": [{"name": ""}]}`,
			want: "without a name",
		},
		{
			name: "duplicate node",
			doc:  `{"nodes": [{"name": "A"}, {"name": "A"}]}`,
			want: "duplicate map node",
		},
		{
			name: "road to unknown node",
			doc:  `{"nodes": [{"name": "A", "edges": [{"to": "B", "road": "ab"}]}]}`,
			want: "unknown node",
		},
		{
			name: "two roads to the same node",
			doc: `{"nodes": [
				{"name": "A", "edges": [
					{"to": "B", "road": "ab1"},
					{"to": "B", "road": "ab2"}
				]},
				{"name": "B"}
			]}`,
			want: "more than one road",
		},
		{
			name: "unnamed road",
			doc: `{"nodes": [
				{"name": "A", "edges": [{"to": "B"}]},
				{"name": "B"}
			]}`,
			want: "has no name",
		},
		{
			name: "unknown turn",
			doc: `{"nodes": [
				{"name": "A", "edges": [{"to": "B", "road": "ab", "turn": "reverse"}]},
				{"name": "B"}
			]}`,
			want: "unknown turn",
		},
		{
			name: "negative weight",
			doc: `{"nodes": [
				{"name": "A", "edges": [{"to": "B", "road": "ab", "weight": -3}]},
				{"name": "B"}
			]}`,
			want: "negative weight",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := New()
			err := p.UpdateMap([]byte(tc.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestUpdateMapKeepsOldGraphOnFailure(t *testing.T) {
	p := loadedPlanner(t)

	err := p.UpdateMap([]byte(`{"nodes": [{"name": ""}]}`))
	require.Error(t, err)

	turns, roads, err := p.Solve("A", "C")
	require.NoError(t, err)
	assert.Equal(t, []string{"forward", "right"}, turns)
	assert.Equal(t, []string{"ab", "bc"}, roads)
}

func TestUpdateMapReplacesGraph(t *testing.T) {
	p := loadedPlanner(t)

	_, _, err := p.Solve("A", "C")
	require.NoError(t, err)

	next := `{"nodes": [
		{"name": "X", "edges": [{"to": "Y", "road": "xy", "turn": "right"}]},
		{"name": "Y"}
	]}`
	require.NoError(t, p.UpdateMap([]byte(next)))

	turns, roads, err := p.Solve("X", "Y")
	require.NoError(t, err)
	assert.Equal(t, []string{"right"}, turns)
	assert.Equal(t, []string{"xy"}, roads)

	_, _, err = p.Solve("A", "C")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown waypoint")
}
