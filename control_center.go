package main

import (
	"log/slog"

	"github.com/Grupp-8-TSEA56-2022/control-center/filter"
)

// Config carries the tuning parameters of the control core. Distances are in
// the unit the perception stack reports, speeds in the unit the motor
// controller consumes.
type Config struct {
	ObstacleFilterLength int
	ObstacleFilterSeed   int
	StopFilterLength     int
	StopFilterSeed       int
	StopLineDistance     int
	AtLineConsecutive    int
	AtLineHold           int
	BlockedDistance      int
	ExpectedAngleRange   int
	DefaultSpeed         int
	IntersectionSpeed    int
	StatusCodeThreshold  int
}

func DefaultConfig() Config {
	return Config{
		ObstacleFilterLength: 5,
		ObstacleFilterSeed:   100,
		StopFilterLength:     3,
		StopFilterSeed:       0,
		StopLineDistance:     20,
		AtLineConsecutive:    3,
		AtLineHold:           10,
		BlockedDistance:      30,
		ExpectedAngleRange:   45,
		DefaultSpeed:         35,
		IntersectionSpeed:    20,
		StatusCodeThreshold:  5,
	}
}

// ControlCenter is the decision core of the vehicle. Each Tick consumes one
// round of sensor readings, advances the control state and derives the
// actuation command. Not safe for concurrent use; missions must only be
// swapped between ticks.
type ControlCenter struct {
	cfg     Config
	plan    InstructionPlan
	planner RoutePlanner

	obstacleFilter filter.Distance
	stopFilter     filter.Distance
	stopLine       filter.StopLineDetector

	state             ControlState
	stopReason        StopReason
	finishWhenStopped bool
	nominalStreak     int

	log *slog.Logger
}

func NewControlCenter(cfg Config, planner RoutePlanner, log *slog.Logger) *ControlCenter {
	if log == nil {
		log = slog.Default()
	}
	c := &ControlCenter{
		cfg:        cfg,
		planner:    planner,
		state:      StateStopLine,
		stopReason: ReasonStopLine,
		log:        log,
	}
	c.obstacleFilter.Init(cfg.ObstacleFilterLength, cfg.ObstacleFilterSeed)
	c.stopFilter.Init(cfg.StopFilterLength, cfg.StopFilterSeed)
	c.stopLine.Init(cfg.AtLineConsecutive, cfg.AtLineHold, cfg.StopLineDistance)
	c.log.Info("control center initialized")
	return c
}

// Tick runs one control cycle and always returns a usable command: on any
// inconsistency the output degrades to zero speed rather than failing.
func (c *ControlCenter) Tick(in SensorData) ControlCommand {
	c.log.Debug("tick",
		"obstacleDistance", in.ObstacleDistance,
		"stopDistance", in.StopDistance,
		"speed", in.Speed,
		"angleLeft", in.AngleLeft,
		"angleRight", in.AngleRight,
		"statusCode", in.StatusCode,
	)
	cmd := ControlCommand{}

	obstacleDistance := in.ObstacleDistance
	stopDistance := in.StopDistance
	if stopDistance == -1 {
		stopDistance = MAX_SENSOR_DISTANCE
	}
	if obstacleDistance == 0 {
		obstacleDistance = MAX_SENSOR_DISTANCE
	}
	obstacleDistance = c.obstacleFilter.Filter(obstacleDistance)
	stopDistance = c.stopFilter.Filter(stopDistance)
	c.log.Debug("filtered distances", "obstacleDistance", obstacleDistance, "stopDistance", stopDistance)

	c.updateState(obstacleDistance, stopDistance, in.Speed)

	cmd.RegulationMode = c.chooseRegulationMode(in.StatusCode)
	if front, err := c.plan.Front(); err == nil {
		cmd.Angle = c.calculateAngle(front.Kind, in.AngleLeft, in.AngleRight)
		cmd.LateralPosition = c.calculateLateralPosition(front.Kind, in.LateralLeft, in.LateralRight)
	}
	cmd.SpeedRef = c.calculateSpeed()

	c.log.Debug("command",
		"state", c.state,
		"angle", cmd.Angle,
		"lateral", cmd.LateralPosition,
		"speedRef", cmd.SpeedRef,
		"regulationMode", cmd.RegulationMode,
	)
	return cmd
}

func (c *ControlCenter) updateState(obstacleDistance int, stopDistance int, speed int) {
	front, err := c.plan.Front()
	if err != nil {
		if c.state != StateStopLine {
			c.log.Error("no drive instruction", "state", c.state)
		}
		if speed > 0 {
			c.state = StateStopping
			c.stopReason = ReasonStopLine
		} else {
			c.state = StateStopLine
		}
		return
	}

	switch c.state {
	case StateNormal, StateIntersection:
		if c.pathBlocked(obstacleDistance) {
			c.log.Info("path blocked, stopping")
			c.state = StateStopping
			c.stopReason = ReasonBlocked
		} else if c.stopLine.AtLine(stopDistance) {
			if c.plan.Len() > 1 {
				c.finishInstruction()
				c.setNewState(speed)
			} else {
				c.log.Info("at stop line, stopping")
				c.finishWhenStopped = true
				c.state = StateStopping
				c.stopReason = ReasonStopLine
			}
		} else {
			c.log.Debug("running")
		}

	case StateStopLine:
		if c.pathBlocked(obstacleDistance) {
			c.log.Info("path blocked")
			c.state = StateBlocked
			break
		}
		if front.Kind == InstructionStop {
			c.finishInstruction()
		}
		if c.stopLine.AtLine(stopDistance) {
			c.log.Error("still at stop line")
		}
		c.setNewState(speed)

	case StateBlocked:
		if !c.pathBlocked(obstacleDistance) {
			c.log.Info("path no longer blocked")
			c.setNewState(speed)
		}

	case StateStopping:
		if speed == 0 {
			c.log.Info("stopped", "reason", c.stopReason)
			c.state = c.stopReason.State()
			if c.finishWhenStopped {
				c.finishInstruction()
				c.finishWhenStopped = false
			}
		}

	default:
		c.log.Error("unknown control state", "state", int(c.state))
	}
}

// setNewState derives the next state from the front instruction. An empty
// plan acts as a stop instruction.
func (c *ControlCenter) setNewState(speed int) {
	kind := InstructionStop
	if front, err := c.plan.Front(); err == nil {
		kind = front.Kind
	}
	var newState ControlState
	switch kind {
	case InstructionForward:
		newState = StateNormal
	case InstructionLeft, InstructionRight:
		newState = StateIntersection
	case InstructionStop:
		if speed > 0 {
			c.stopReason = ReasonStopLine
			newState = StateStopping
		} else {
			newState = StateStopLine
		}
	default:
		c.log.Error("unknown drive instruction", "kind", int(kind))
		newState = StateStopLine
	}
	if newState != c.state {
		c.log.Info("set new state", "state", newState)
		c.state = newState
	}
}

func (c *ControlCenter) finishInstruction() {
	front, err := c.plan.Front()
	if err != nil {
		return
	}
	c.log.Info("finishing instruction", "kind", front.Kind, "id", front.ID)
	c.plan.FinishFront()
}

func (c *ControlCenter) pathBlocked(obstacleDistance int) bool {
	return obstacleDistance < c.cfg.BlockedDistance
}

func (c *ControlCenter) isExpected(angle int) bool {
	return angle >= -c.cfg.ExpectedAngleRange && angle <= c.cfg.ExpectedAngleRange
}

// calculateAngle uses the average of both line angles when driving straight
// and the matching side through an intersection. When one reading falls
// outside the expected range the other side is used instead, which recovers
// from a single bad frame.
func (c *ControlCenter) calculateAngle(kind InstructionKind, angleLeft int, angleRight int) int {
	switch kind {
	case InstructionForward:
		leftExpected := c.isExpected(angleLeft)
		rightExpected := c.isExpected(angleRight)
		switch {
		case leftExpected && rightExpected:
			return (angleLeft + angleRight) / 2
		case leftExpected:
			return angleLeft
		case rightExpected:
			return angleRight
		default:
			// No recovery possible.
			return (angleLeft + angleRight) / 2
		}
	case InstructionLeft:
		if c.isExpected(angleLeft) {
			return angleLeft
		}
		if c.isExpected(angleRight) {
			return angleRight
		}
		return angleLeft
	case InstructionRight:
		if c.isExpected(angleRight) {
			return angleRight
		}
		if c.isExpected(angleLeft) {
			return angleLeft
		}
		return angleRight
	case InstructionStop:
		return 0
	default:
		c.log.Error("unknown drive instruction", "kind", int(kind))
		return 0
	}
}

func (c *ControlCenter) calculateLateralPosition(kind InstructionKind, lateralLeft int, lateralRight int) int {
	switch kind {
	case InstructionForward:
		return (lateralLeft + lateralRight) / 2
	case InstructionLeft:
		return lateralLeft
	case InstructionRight:
		return lateralRight
	case InstructionStop:
		return 0
	default:
		c.log.Error("unknown drive instruction", "kind", int(kind))
		return 0
	}
}

func (c *ControlCenter) calculateSpeed() int {
	switch c.state {
	case StateNormal:
		return c.cfg.DefaultSpeed
	case StateIntersection:
		return c.cfg.IntersectionSpeed
	case StateStopLine, StateStopping, StateBlocked:
		return 0
	default:
		c.log.Error("unknown control state", "state", int(c.state))
		return 0
	}
}

// chooseRegulationMode only reports nominal regulation after a sustained run
// of clean status codes. Any anomaly drops straight back to critical.
func (c *ControlCenter) chooseRegulationMode(statusCode int) RegulationMode {
	if statusCode == 0 {
		c.nominalStreak += 1
	} else {
		c.nominalStreak = 0
	}
	if c.nominalStreak >= c.cfg.StatusCodeThreshold {
		return AutoNominal
	}
	return AutoCritical
}

// UpdateMap replaces the routing graph used for future missions.
func (c *ControlCenter) UpdateMap(data []byte) error {
	return c.planner.UpdateMap(data)
}

// SetDriveMissions replaces the plan with a mission through the given
// waypoints, the first being the current position.
func (c *ControlCenter) SetDriveMissions(waypoints []string) error {
	return c.plan.ReplaceMission(waypoints, c.planner)
}

// AddDriveInstruction appends a single instruction without a road segment,
// used for manual overrides.
func (c *ControlCenter) AddDriveInstruction(kind InstructionKind, id string) {
	c.plan.Push(DriveInstruction{Kind: kind, ID: id})
}

func (c *ControlCenter) State() ControlState {
	return c.state
}

func (c *ControlCenter) CurrentRoadSegment() string {
	return c.plan.CurrentRoadSegment()
}

func (c *ControlCenter) CurrentDriveInstruction() (DriveInstruction, error) {
	return c.plan.Front()
}

// PlanLength returns the number of drive instructions remaining.
func (c *ControlCenter) PlanLength() int {
	return c.plan.Len()
}

// PollFinishedInstructionID pops the oldest completed instruction id, if any.
func (c *ControlCenter) PollFinishedInstructionID() (string, bool) {
	return c.plan.PollFinished()
}
