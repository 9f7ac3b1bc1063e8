package main

import (
	"log/slog"

	"github.com/Grupp-8-TSEA56-2022/control-center/scenario"
)

// ScenarioFeed replays a recorded drive as the loop's sensor source, one
// frame per tick.
type ScenarioFeed struct {
	frames []SensorData
	pos    int
}

func NewScenarioFeed(s *scenario.Scenario) *ScenarioFeed {
	frames := make([]SensorData, 0, s.TotalTicks())
	for _, f := range s.Frames {
		in := SensorData{
			ObstacleDistance: f.Obstacle,
			StopDistance:     f.Stop,
			Speed:            f.Speed,
			AngleLeft:        f.AngleLeft,
			AngleRight:       f.AngleRight,
			LateralLeft:      f.LateralLeft,
			LateralRight:     f.LateralRight,
			StatusCode:       f.Status,
		}
		for i := 0; i < f.Ticks(); i++ {
			frames = append(frames, in)
		}
	}
	return &ScenarioFeed{frames: frames}
}

func (f *ScenarioFeed) Next() (SensorData, bool) {
	if f.pos >= len(f.frames) {
		return SensorData{}, false
	}
	frame := f.frames[f.pos]
	f.pos += 1
	return frame, true
}

// Done reports whether every frame has been played.
func (f *ScenarioFeed) Done() bool {
	return f.pos >= len(f.frames)
}

// ParkedSource reports no frames, keeping the loop idle until a sensor
// bridge is attached.
type ParkedSource struct{}

func (ParkedSource) Next() (SensorData, bool) {
	return SensorData{}, false
}

// LoggingSink records derived commands in the log only, for bench runs
// without a motor regulator attached.
type LoggingSink struct {
	Log *slog.Logger
}

func (s LoggingSink) Send(cmd ControlCommand) error {
	log := s.Log
	if log == nil {
		log = slog.Default()
	}
	log.Debug("command out",
		"angle", cmd.Angle,
		"lateral", cmd.LateralPosition,
		"speedRef", cmd.SpeedRef,
		"regulationMode", cmd.RegulationMode,
	)
	return nil
}
