package cli

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"
)

const sendMissionChoice = "[send mission]"

func mission(addr string, mapPath string, waypoints []string) error {
	if len(waypoints) == 0 {
		picked, err := pickWaypoints(mapPath)
		if err != nil {
			return err
		}
		waypoints = picked
	}
	if len(waypoints) < 2 {
		return errors.New("a mission needs a start position and at least one stop")
	}
	if err := newClient(addr).sendMission(waypoints); err != nil {
		return err
	}
	fmt.Printf("mission sent: %s\n", strings.Join(waypoints, " -> "))
	return nil
}

// pickWaypoints walks the operator through the map nodes: first the start
// position, then stops until the send choice is taken.
func pickWaypoints(mapPath string) ([]string, error) {
	p, err := loadPlanner(mapPath)
	if err != nil {
		return nil, err
	}
	nodes := p.Nodes()
	if len(nodes) == 0 {
		return nil, errors.New("map has no nodes")
	}

	waypoints := []string{}
	for {
		items := nodes
		label := "Select start position"
		if len(waypoints) > 0 {
			label = fmt.Sprintf("Select stop %d", len(waypoints))
		}
		if len(waypoints) >= 2 {
			items = append([]string{sendMissionChoice}, nodes...)
		}

		prompt := promptui.Select{
			Label: label,
			Items: items,
		}
		_, result, err := prompt.Run()
		if err != nil {
			return nil, errors.Wrap(err, "prompt failed")
		}
		if result == sendMissionChoice {
			return waypoints, nil
		}
		waypoints = append(waypoints, result)
	}
}
