package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/Grupp-8-TSEA56-2022/control-center/params"
	"github.com/Grupp-8-TSEA56-2022/control-center/planner"
	"github.com/Grupp-8-TSEA56-2022/control-center/scenario"
	"github.com/Grupp-8-TSEA56-2022/control-center/settings"
)

func loadPlanner(mapPath string) (*planner.Planner, error) {
	data, err := os.ReadFile(mapPath)
	if err != nil {
		return nil, errors.Wrap(err, "could not read map")
	}
	p := planner.New()
	if err := p.UpdateMap(data); err != nil {
		return nil, err
	}
	return p, nil
}

func route(mapPath string, start string, target string) error {
	if start == "" || target == "" {
		return errors.New("route needs a start and a target waypoint")
	}
	p, err := loadPlanner(mapPath)
	if err != nil {
		return err
	}
	nodes, weight, err := p.Route(start, target)
	if err != nil {
		return err
	}
	turns, roads, err := p.Solve(start, target)
	if err != nil {
		return err
	}
	fmt.Printf("route: %s (weight %d)\n", strings.Join(nodes, " -> "), weight)
	for i := range roads {
		fmt.Printf("  %-8s %s\n", turns[i], roads[i])
	}
	return nil
}

func checkScenario(path string) error {
	if path == "" {
		return errors.New("scenario needs a file path")
	}
	s, err := scenario.Load(path)
	if err != nil {
		return err
	}
	fmt.Printf("name: %s\n", s.Name)
	if len(s.Mission) > 0 {
		fmt.Printf("mission: %s\n", strings.Join(s.Mission, " -> "))
	}
	fmt.Printf("frames: %d (%d ticks)\n", len(s.Frames), s.TotalTicks())
	return nil
}

func instruction(addr string, kind string, id string) error {
	if kind == "" {
		return errors.New("instruction needs a kind: forward, left, right or stop")
	}
	sentID, err := newClient(addr).sendInstruction(kind, id)
	if err != nil {
		return err
	}
	fmt.Printf("instruction sent: %s %s\n", kind, sentID)
	return nil
}

func settingsCommand(resetDefault bool, resetRecommended bool) error {
	if resetDefault || resetRecommended {
		params.EnsureParamDirectories()
		s := settings.ControlSettings{}
		if resetRecommended {
			s.Recommended()
		} else {
			s.Default()
		}
		s.Save()
	}
	data, err := params.GetParam(params.CONTROL_SETTINGS)
	if err != nil {
		return errors.Wrap(err, "no settings saved")
	}
	fmt.Println(string(data))
	return nil
}
