// Package scenario reads recorded or hand-written drives used to exercise
// the control loop without a vehicle.
package scenario

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Frame is one round of sensor readings, optionally held for several ticks.
type Frame struct {
	Obstacle     int `yaml:"obstacle"`
	Stop         int `yaml:"stop"`
	Speed        int `yaml:"speed"`
	AngleLeft    int `yaml:"angle_left"`
	AngleRight   int `yaml:"angle_right"`
	LateralLeft  int `yaml:"lateral_left"`
	LateralRight int `yaml:"lateral_right"`
	Status       int `yaml:"status"`
	Repeat       int `yaml:"repeat"`
}

// Ticks returns how many loop iterations the frame covers.
func (f Frame) Ticks() int {
	if f.Repeat < 1 {
		return 1
	}
	return f.Repeat
}

// Scenario is a named drive: an optional mission to set before the first
// tick and the sensor frames to play through the loop.
type Scenario struct {
	Name    string   `yaml:"name"`
	Mission []string `yaml:"mission"`
	Frames  []Frame  `yaml:"frames"`
}

// TotalTicks returns the number of loop iterations the scenario covers.
func (s *Scenario) TotalTicks() int {
	total := 0
	for _, f := range s.Frames {
		total += f.Ticks()
	}
	return total
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read scenario file")
	}
	return Parse(data)
}

func Parse(data []byte) (*Scenario, error) {
	s := &Scenario{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, errors.Wrap(err, "could not parse scenario")
	}
	if len(s.Frames) == 0 {
		return nil, errors.New("scenario has no frames")
	}
	for i, f := range s.Frames {
		if f.Repeat < 0 {
			return nil, errors.Errorf("frame %d has negative repeat", i)
		}
	}
	return s, nil
}
