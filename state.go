package main

import (
	"github.com/pkg/errors"
)

// Distance sentinel used when a sensor reports no reading.
const MAX_SENSOR_DISTANCE = 1000

type ControlState int

const (
	StateNormal ControlState = iota
	StateIntersection
	StateStopLine
	StateStopping
	StateBlocked
)

func (s ControlState) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateIntersection:
		return "intersection"
	case StateStopLine:
		return "stop_line"
	case StateStopping:
		return "stopping"
	case StateBlocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// StopReason is the state the vehicle settles into once it has rolled to a
// stop while in StateStopping.
type StopReason int

const (
	ReasonStopLine StopReason = iota
	ReasonBlocked
)

func (r StopReason) State() ControlState {
	if r == ReasonBlocked {
		return StateBlocked
	}
	return StateStopLine
}

func (r StopReason) String() string {
	if r == ReasonBlocked {
		return "blocked"
	}
	return "stop_line"
}

type InstructionKind int

const (
	InstructionForward InstructionKind = iota
	InstructionLeft
	InstructionRight
	InstructionStop
)

func (k InstructionKind) String() string {
	switch k {
	case InstructionForward:
		return "forward"
	case InstructionLeft:
		return "left"
	case InstructionRight:
		return "right"
	case InstructionStop:
		return "stop"
	default:
		return "unknown"
	}
}

func ParseInstructionKind(s string) (InstructionKind, error) {
	switch s {
	case "forward":
		return InstructionForward, nil
	case "left":
		return InstructionLeft, nil
	case "right":
		return InstructionRight, nil
	case "stop":
		return InstructionStop, nil
	default:
		return InstructionForward, errors.Errorf("unknown instruction %q", s)
	}
}

type RegulationMode int

const (
	AutoCritical RegulationMode = iota
	AutoNominal
)

func (m RegulationMode) String() string {
	if m == AutoNominal {
		return "auto_nominal"
	}
	return "auto_critical"
}

// DriveInstruction is one maneuver of a mission, tagged with the id reported
// back once the maneuver completes.
type DriveInstruction struct {
	Kind InstructionKind
	ID   string
}

// SensorData carries one tick worth of perception readings. An
// ObstacleDistance of 0 and a StopDistance of -1 mean no reading.
type SensorData struct {
	ObstacleDistance int
	StopDistance     int
	Speed            int
	AngleLeft        int
	AngleRight       int
	LateralLeft      int
	LateralRight     int
	StatusCode       int
}

// ControlCommand is the actuation output of a single tick.
type ControlCommand struct {
	Angle           int
	LateralPosition int
	SpeedRef        int
	RegulationMode  RegulationMode
}

// RoutePlanner solves one mission leg at a time. Solve returns matching turn
// and road name sequences, one entry per road between the two waypoints.
type RoutePlanner interface {
	UpdateMap(data []byte) error
	Solve(start string, target string) (turns []string, roads []string, err error)
}
