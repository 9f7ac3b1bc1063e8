package settings

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Grupp-8-TSEA56-2022/control-center/params"
	"github.com/Grupp-8-TSEA56-2022/control-center/utils"
)

var (
	Settings = ControlSettings{}
)

// ControlSettings holds the tunable parameters of the drive loop. Distances
// are centimeters, speeds are the regulator's reference unit.
type ControlSettings struct {
	LogLevel             string `json:"log_level"`
	ListenAddr           string `json:"listen_addr"`
	MapPath              string `json:"map_path"`
	ScenarioPath         string `json:"scenario_path"`
	ObstacleFilterLength int    `json:"obstacle_filter_length"`
	ObstacleFilterSeed   int    `json:"obstacle_filter_seed"`
	StopFilterLength     int    `json:"stop_filter_length"`
	StopFilterSeed       int    `json:"stop_filter_seed"`
	StopLineDistance     int    `json:"stop_line_distance"`
	AtLineConsecutive    int    `json:"at_line_consecutive"`
	AtLineHold           int    `json:"at_line_hold"`
	BlockedDistance      int    `json:"blocked_distance"`
	ExpectedAngleRange   int    `json:"expected_angle_range"`
	DefaultSpeed         int    `json:"default_speed"`
	IntersectionSpeed    int    `json:"intersection_speed"`
	StatusCodeThreshold  int    `json:"status_code_threshold"`
}

func (s *ControlSettings) Default() {
	s.LogLevel = "error"
	s.ListenAddr = ":8080"
	s.MapPath = "/data/control-center/map.json"
	s.ScenarioPath = ""
	s.ObstacleFilterLength = 5
	s.ObstacleFilterSeed = 100
	s.StopFilterLength = 3
	s.StopFilterSeed = 0
	s.StopLineDistance = 20
	s.AtLineConsecutive = 3
	s.AtLineHold = 10
	s.BlockedDistance = 30
	s.ExpectedAngleRange = 45
	s.DefaultSpeed = 35
	s.IntersectionSpeed = 20
	s.StatusCodeThreshold = 5
}

func (s *ControlSettings) Recommended() {
	s.Default()
	s.LogLevel = "info"
	s.AtLineConsecutive = 2
	s.BlockedDistance = 35
	s.DefaultSpeed = 45
	s.IntersectionSpeed = 25
}

func (s *ControlSettings) Load() (success bool) {
	s.Default() // set defaults so settings not already in param are defaulted
	data, err := params.GetParam(params.CONTROL_SETTINGS)
	if err != nil {
		utils.Loge(err)
		return false
	}

	err = json.Unmarshal(data, s)
	if err != nil {
		utils.Loge(err)
		return false
	}

	s.setLogLevel()

	return true
}

func (s *ControlSettings) LoadWithRetries(tries int) {
	for i := 0; i < tries; i++ {
		if s.Load() {
			break
		}
		time.Sleep(1 * time.Second)
	}
	s.Save()
}

func (s *ControlSettings) Save() {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		utils.Loge(err)
		return
	}
	err = params.PutParam(params.CONTROL_SETTINGS, data)
	if err != nil {
		utils.Loge(err)
		return
	}
}

func (s *ControlSettings) setLogLevel() {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		setLogLoggerLevel(slog.LevelDebug)
	case "info":
		setLogLoggerLevel(slog.LevelInfo)
	case "warn":
		setLogLoggerLevel(slog.LevelWarn)
	case "error":
		setLogLoggerLevel(slog.LevelError)
	default:
		setLogLoggerLevel(slog.LevelError)
	}
}

var (
	logLoggerLevel = new(slog.LevelVar)
	bootDefault    = slog.Default()
)

// setLogLoggerLevel stands in for slog.SetLogLoggerLevel, which the go1.21
// toolchain lacks: the stock default logger is swapped once for a handler
// bound to a LevelVar so later calls adjust the level dynamically, while a
// custom default installed by callers (e.g. tests) is left untouched.
func setLogLoggerLevel(level slog.Level) {
	logLoggerLevel.Set(level)
	if slog.Default() == bootDefault {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLoggerLevel})))
	}
}
