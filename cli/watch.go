package cli

import (
	"encoding/json"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

type watchStatus struct {
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

type watchModel struct {
	status watchStatus
	valid  bool
	err    error
}

func (m watchModel) Update(msg tea.Msg, mm *uiModel) (watchModel, tea.Cmd) {
	if _, ok := msg.(TickMsg); !ok {
		return m, nil
	}
	data, err := mm.client.status()
	if err != nil {
		m.err = err
		return m, nil
	}
	var status watchStatus
	if err := json.Unmarshal(data, &status); err != nil {
		m.err = err
		return m, nil
	}
	m.status = status
	m.valid = true
	m.err = nil
	return m, nil
}

func (m watchModel) View() string {
	if m.err != nil {
		return docStyle.Render(fmt.Sprintf("control-center unreachable: %v\n", m.err))
	}
	if !m.valid {
		return ""
	}
	s := m.status
	return docStyle.Render(fmt.Sprintf(
		"state: %s\nroad segment: %s\ninstruction: %s %s\nplan length: %d\nangle: %d\nlateral position: %d\nspeed ref: %d\nregulation mode: %s\ntick interval: %dms",
		s.State,
		s.CurrentRoadSegment,
		s.CurrentInstruction,
		s.CurrentInstructionID,
		s.PlanLength,
		s.Angle,
		s.LateralPosition,
		s.SpeedRef,
		s.RegulationMode,
		s.TickIntervalMs,
	) + "\n")
}
