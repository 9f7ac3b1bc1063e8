package main

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeg struct {
	turns []string
	roads []string
}

type fakePlanner struct {
	legs    map[string]fakeLeg
	mapData [][]byte
}

func (f *fakePlanner) UpdateMap(data []byte) error {
	f.mapData = append(f.mapData, data)
	return nil
}

func (f *fakePlanner) Solve(start string, target string) ([]string, []string, error) {
	leg, ok := f.legs[start+"->"+target]
	if !ok {
		return nil, nil, errors.Errorf("no route from %s to %s", start, target)
	}
	return leg.turns, leg.roads, nil
}

func TestPlanFrontEmpty(t *testing.T) {
	var p InstructionPlan

	_, err := p.Front()
	require.ErrorIs(t, err, ErrEmptyPlan)
}

func TestPlanFinishFront(t *testing.T) {
	var p InstructionPlan
	p.pushWithSegment(DriveInstruction{Kind: InstructionForward, ID: "r1"}, "r1")
	p.pushWithSegment(DriveInstruction{Kind: InstructionLeft, ID: "r2"}, "r2")

	require.Equal(t, "r1", p.CurrentRoadSegment())
	p.FinishFront()

	front, err := p.Front()
	require.NoError(t, err)
	assert.Equal(t, InstructionLeft, front.Kind)
	assert.Equal(t, "r2", p.CurrentRoadSegment())

	id, ok := p.PollFinished()
	require.True(t, ok)
	assert.Equal(t, "r1", id)

	_, ok = p.PollFinished()
	assert.False(t, ok)
}

func TestPlanFinishFrontOnEmptyPlan(t *testing.T) {
	var p InstructionPlan

	p.FinishFront()

	assert.Equal(t, 0, p.Len())
	_, ok := p.PollFinished()
	assert.False(t, ok)
}

func TestPlanPolledInFinishOrder(t *testing.T) {
	var p InstructionPlan
	p.Push(DriveInstruction{Kind: InstructionForward, ID: "first"})
	p.Push(DriveInstruction{Kind: InstructionForward, ID: "second"})
	p.Push(DriveInstruction{Kind: InstructionStop, ID: "third"})

	p.FinishFront()
	p.FinishFront()
	p.FinishFront()

	for _, want := range []string{"first", "second", "third"} {
		id, ok := p.PollFinished()
		require.True(t, ok)
		assert.Equal(t, want, id)
	}
}

func TestPlanSegmentsNeverOutnumberInstructions(t *testing.T) {
	planner := &fakePlanner{legs: map[string]fakeLeg{
		"A->B": {turns: []string{"forward", "left"}, roads: []string{"ab1", "ab2"}},
	}}

	var p InstructionPlan
	require.NoError(t, p.ReplaceMission([]string{"A", "B"}, planner))
	p.Push(DriveInstruction{Kind: InstructionForward, ID: "manual"})

	for p.Len() > 0 {
		require.LessOrEqual(t, len(p.segments), len(p.instructions))
		p.FinishFront()
	}
	require.LessOrEqual(t, len(p.segments), len(p.instructions))
	assert.Equal(t, "end", p.CurrentRoadSegment())
}

func TestPlanReplaceMission(t *testing.T) {
	planner := &fakePlanner{legs: map[string]fakeLeg{
		"A->B": {turns: []string{"forward", "left"}, roads: []string{"ab1", "ab2"}},
		"B->C": {turns: []string{"right"}, roads: []string{"bc1"}},
	}}

	var p InstructionPlan
	p.Push(DriveInstruction{Kind: InstructionForward, ID: "stale"})

	require.NoError(t, p.ReplaceMission([]string{"A", "B", "C"}, planner))

	want := []DriveInstruction{
		{Kind: InstructionStop, ID: "A"},
		{Kind: InstructionForward, ID: "ab1"},
		{Kind: InstructionLeft, ID: "ab2"},
		{Kind: InstructionStop, ID: "B"},
		{Kind: InstructionRight, ID: "bc1"},
	}
	assert.Equal(t, want, p.instructions)
	assert.Equal(t, []string{"A", "ab1", "ab2", "B", "bc1"}, p.segments)
	assert.Equal(t, "A", p.CurrentRoadSegment())
}

func TestPlanReplaceMissionKeepsPendingCompletions(t *testing.T) {
	planner := &fakePlanner{legs: map[string]fakeLeg{
		"A->B": {turns: []string{"forward"}, roads: []string{"ab1"}},
	}}

	var p InstructionPlan
	p.Push(DriveInstruction{Kind: InstructionForward, ID: "done"})
	p.FinishFront()

	require.NoError(t, p.ReplaceMission([]string{"A", "B"}, planner))

	id, ok := p.PollFinished()
	require.True(t, ok)
	assert.Equal(t, "done", id)
}

func TestPlanReplaceMissionLegFailure(t *testing.T) {
	planner := &fakePlanner{legs: map[string]fakeLeg{
		"A->B": {turns: []string{"forward"}, roads: []string{"ab1"}},
	}}

	var p InstructionPlan
	err := p.ReplaceMission([]string{"A", "B", "C"}, planner)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "leg B to C")

	// The leg solved before the failure stays spliced.
	want := []DriveInstruction{
		{Kind: InstructionStop, ID: "A"},
		{Kind: InstructionForward, ID: "ab1"},
		{Kind: InstructionStop, ID: "B"},
	}
	assert.Equal(t, want, p.instructions)
}

func TestPlanReplaceMissionRejectsBadPlannerOutput(t *testing.T) {
	t.Run("mismatched lengths", func(t *testing.T) {
		planner := &fakePlanner{legs: map[string]fakeLeg{
			"A->B": {turns: []string{"forward", "left"}, roads: []string{"ab1"}},
		}}

		var p InstructionPlan
		err := p.ReplaceMission([]string{"A", "B"}, planner)
		require.Error(t, err)
	})

	t.Run("unknown turn", func(t *testing.T) {
		planner := &fakePlanner{legs: map[string]fakeLeg{
			"A->B": {turns: []string{"sideways"}, roads: []string{"ab1"}},
		}}

		var p InstructionPlan
		err := p.ReplaceMission([]string{"A", "B"}, planner)
		require.Error(t, err)
	})

	t.Run("no waypoints", func(t *testing.T) {
		var p InstructionPlan
		err := p.ReplaceMission(nil, &fakePlanner{})
		require.Error(t, err)
	})
}

func TestPlanSingleWaypointMission(t *testing.T) {
	var p InstructionPlan
	p.Push(DriveInstruction{Kind: InstructionForward, ID: "stale"})

	// A mission consisting only of the current position clears the plan.
	require.NoError(t, p.ReplaceMission([]string{"A"}, &fakePlanner{}))
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, "end", p.CurrentRoadSegment())
}
