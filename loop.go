package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/Grupp-8-TSEA56-2022/control-center/params"
	"github.com/Grupp-8-TSEA56-2022/control-center/settings"
	"github.com/Grupp-8-TSEA56-2022/control-center/utils"
)

// SensorSource delivers one round of sensor readings per tick. Returning
// false means no frame is available this tick and the loop idles.
type SensorSource interface {
	Next() (SensorData, bool)
}

// CommandSink receives the actuation command derived each tick.
type CommandSink interface {
	Send(ControlCommand) error
}

// DriverStatus is a snapshot of the drive loop for operator surfaces.
type DriverStatus struct {
	State                string `json:"state"`
	CurrentRoadSegment   string `json:"current_road_segment"`
	CurrentInstruction   string `json:"current_instruction"`
	CurrentInstructionID string `json:"current_instruction_id"`
	PlanLength           int    `json:"plan_length"`
	Angle                int    `json:"angle"`
	LateralPosition      int    `json:"lateral_position"`
	SpeedRef             int    `json:"speed_ref"`
	RegulationMode       string `json:"regulation_mode"`
	TickIntervalMs       int64  `json:"tick_interval_ms"`
}

// Driver runs the decision loop: pull a sensor frame, tick the control
// center, push the command to the regulator. Mission and map changes from
// operator surfaces are applied under the same lock as the tick, so the
// control center itself never sees concurrent calls.
type Driver struct {
	Delay time.Duration

	// OnFinished is called for every completed drive instruction, outside
	// the driver lock. Set before Run.
	OnFinished func(id string)

	center *ControlCenter
	source SensorSource
	sink   CommandSink
	log    *slog.Logger

	mu     sync.Mutex
	status DriverStatus

	segmentTracker utils.ChangeTracker[string]
	loopTracker    utils.LoopTracker
}

func NewDriver(center *ControlCenter, source SensorSource, sink CommandSink, log *slog.Logger) *Driver {
	if log == nil {
		log = slog.Default()
	}
	return &Driver{
		Delay:  settings.LOOP_DELAY,
		center: center,
		source: source,
		sink:   sink,
		log:    log,
	}
}

// Run ticks the loop until the context is canceled.
func (d *Driver) Run(ctx context.Context) {
	d.loopTracker.Init(16)
	d.log.Info("drive loop started", "delay", d.Delay)
	ticker := time.NewTicker(d.Delay)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			d.log.Info("drive loop stopped")
			return
		case <-ticker.C:
			d.Step()
		}
	}
}

// Step runs a single iteration of the loop. Run calls this on every tick;
// tests and scenario playback call it directly.
func (d *Driver) Step() {
	d.loopTracker.Update()

	in, ok := d.source.Next()
	if !ok {
		d.log.Debug("no sensor frame")
		return
	}

	d.mu.Lock()
	cmd := d.center.Tick(in)
	finished := []string{}
	for {
		id, polled := d.center.PollFinishedInstructionID()
		if !polled {
			break
		}
		finished = append(finished, id)
	}
	d.refreshStatusLocked(cmd)
	segment := d.status.CurrentRoadSegment
	d.mu.Unlock()

	if d.segmentTracker.Update(segment) {
		d.log.Info("entered road segment", "segment", segment)
	}

	if d.sink != nil {
		utils.Logwe(d.sink.Send(cmd))
	}
	for _, id := range finished {
		if d.OnFinished != nil {
			d.OnFinished(id)
		}
	}
}

func (d *Driver) refreshStatusLocked(cmd ControlCommand) {
	st := DriverStatus{
		State:              d.center.State().String(),
		CurrentRoadSegment: d.center.CurrentRoadSegment(),
		PlanLength:         d.center.PlanLength(),
		Angle:              cmd.Angle,
		LateralPosition:    cmd.LateralPosition,
		SpeedRef:           cmd.SpeedRef,
		RegulationMode:     cmd.RegulationMode.String(),
		TickIntervalMs:     d.loopTracker.MeanInterval().Milliseconds(),
	}
	if front, err := d.center.CurrentDriveInstruction(); err == nil {
		st.CurrentInstruction = front.Kind.String()
		st.CurrentInstructionID = front.ID
	}
	d.status = st
}

// Status returns the snapshot taken on the most recent tick.
func (d *Driver) Status() DriverStatus {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// StatusJSON returns the latest snapshot serialized for operator surfaces.
func (d *Driver) StatusJSON() []byte {
	data, err := json.Marshal(d.Status())
	if err != nil {
		utils.Loge(err)
		return []byte("{}")
	}
	return data
}

// SetMission replaces the plan with a mission through the given waypoints,
// the first being the vehicle's current position.
func (d *Driver) SetMission(waypoints []string) error {
	d.mu.Lock()
	err := d.center.SetDriveMissions(waypoints)
	d.mu.Unlock()
	if err != nil {
		return err
	}
	d.log.Info("mission set", "waypoints", waypoints)
	utils.Logwe(params.PutParam(params.LAST_POSITION, []byte(waypoints[0])))
	return nil
}

// AddInstruction appends a single manual drive instruction.
func (d *Driver) AddInstruction(kind string, id string) error {
	parsed, err := ParseInstructionKind(kind)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.center.AddDriveInstruction(parsed, id)
	d.mu.Unlock()
	d.log.Info("instruction added", "kind", kind, "id", id)
	return nil
}

// UpdateMap replaces the routing graph used for future missions.
func (d *Driver) UpdateMap(data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.center.UpdateMap(data)
}
