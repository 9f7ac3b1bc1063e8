package main

import (
	"github.com/pkg/errors"
)

var ErrEmptyPlan = errors.New("no drive instructions")

// InstructionPlan holds the ordered drive instructions of the active mission
// together with the road segments being traversed. The segment queue trails
// the instruction queue when instructions were injected without a road.
type InstructionPlan struct {
	instructions []DriveInstruction
	segments     []string
	finished     []string
}

func (p *InstructionPlan) Push(instr DriveInstruction) {
	p.instructions = append(p.instructions, instr)
}

func (p *InstructionPlan) pushWithSegment(instr DriveInstruction, segment string) {
	p.instructions = append(p.instructions, instr)
	p.segments = append(p.segments, segment)
}

func (p *InstructionPlan) Len() int {
	return len(p.instructions)
}

func (p *InstructionPlan) Front() (DriveInstruction, error) {
	if len(p.instructions) == 0 {
		return DriveInstruction{}, ErrEmptyPlan
	}
	return p.instructions[0], nil
}

// FinishFront pops the front instruction and its road segment and queues the
// instruction id for completion polling. No-op on an empty plan.
func (p *InstructionPlan) FinishFront() {
	if len(p.instructions) == 0 {
		return
	}
	front := p.instructions[0]
	p.instructions = p.instructions[1:]
	if len(p.segments) > 0 {
		p.segments = p.segments[1:]
	}
	p.finished = append(p.finished, front.ID)
}

// CurrentRoadSegment returns "end" when no segment is active.
func (p *InstructionPlan) CurrentRoadSegment() string {
	if len(p.segments) == 0 {
		return "end"
	}
	return p.segments[0]
}

func (p *InstructionPlan) PollFinished() (string, bool) {
	if len(p.finished) == 0 {
		return "", false
	}
	id := p.finished[0]
	p.finished = p.finished[1:]
	return id, true
}

// ReplaceMission drops the current plan and splices in a new mission. The
// first waypoint is the current position. Every leg starts with a stop
// instruction tagged with the leg's start waypoint, so the vehicle halts at
// each boundary between independently planned legs. A planning failure leaves
// the legs spliced before it in place and is returned to the caller.
func (p *InstructionPlan) ReplaceMission(waypoints []string, planner RoutePlanner) error {
	if len(waypoints) == 0 {
		return errors.New("mission needs at least the current position")
	}
	start := waypoints[0]
	p.instructions = nil
	p.segments = nil
	for _, target := range waypoints[1:] {
		p.pushWithSegment(DriveInstruction{Kind: InstructionStop, ID: start}, start)

		turns, roads, err := planner.Solve(start, target)
		if err != nil {
			return errors.Wrapf(err, "could not solve leg %s to %s", start, target)
		}
		if len(turns) != len(roads) {
			return errors.Errorf("planner returned %d turns for %d roads on leg %s to %s", len(turns), len(roads), start, target)
		}
		for i, turn := range turns {
			kind, err := ParseInstructionKind(turn)
			if err != nil {
				return errors.Wrapf(err, "leg %s to %s", start, target)
			}
			p.pushWithSegment(DriveInstruction{Kind: kind, ID: roads[i]}, roads[i])
		}

		start = target
	}
	return nil
}
