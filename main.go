package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Grupp-8-TSEA56-2022/control-center/cli"
	"github.com/Grupp-8-TSEA56-2022/control-center/params"
	"github.com/Grupp-8-TSEA56-2022/control-center/planner"
	"github.com/Grupp-8-TSEA56-2022/control-center/remote"
	"github.com/Grupp-8-TSEA56-2022/control-center/scenario"
	"github.com/Grupp-8-TSEA56-2022/control-center/settings"
	"github.com/Grupp-8-TSEA56-2022/control-center/utils"
)

func main() {
	cli.Handle()

	params.EnsureParamDirectories()
	settings.Settings.LoadWithRetries(5)

	route := planner.New()
	if data, err := os.ReadFile(settings.Settings.MapPath); err != nil {
		slog.Warn("no track map loaded", "path", settings.Settings.MapPath, "error", err)
	} else if err := route.UpdateMap(data); err != nil {
		slog.Warn("could not load track map", "path", settings.Settings.MapPath, "error", err)
	}

	center := NewControlCenter(configFromSettings(&settings.Settings), route, slog.Default())

	if position, err := params.GetParam(params.LAST_POSITION); err == nil {
		slog.Info("last known position", "node", string(position))
	}

	var source SensorSource = ParkedSource{}
	var mission []string
	if settings.Settings.ScenarioPath != "" {
		s, err := scenario.Load(settings.Settings.ScenarioPath)
		if err != nil {
			slog.Error("could not load scenario", "path", settings.Settings.ScenarioPath, "error", err)
		} else {
			slog.Info("playing scenario", "name", s.Name, "ticks", s.TotalTicks())
			source = NewScenarioFeed(s)
			mission = s.Mission
		}
	}

	driver := NewDriver(center, source, LoggingSink{}, slog.Default())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if settings.Settings.ListenAddr != "" {
		server := remote.NewServer(settings.Settings.ListenAddr, driver, slog.Default())
		driver.OnFinished = server.InstructionFinished
		go server.Start()
		defer server.Stop()
		go server.PushStatus(ctx)
	}

	if len(mission) > 0 {
		utils.Loge(driver.SetMission(mission))
	}

	driver.Run(ctx)
}

func configFromSettings(s *settings.ControlSettings) Config {
	return Config{
		ObstacleFilterLength: s.ObstacleFilterLength,
		ObstacleFilterSeed:   s.ObstacleFilterSeed,
		StopFilterLength:     s.StopFilterLength,
		StopFilterSeed:       s.StopFilterSeed,
		StopLineDistance:     s.StopLineDistance,
		AtLineConsecutive:    s.AtLineConsecutive,
		AtLineHold:           s.AtLineHold,
		BlockedDistance:      s.BlockedDistance,
		ExpectedAngleRange:   s.ExpectedAngleRange,
		DefaultSpeed:         s.DefaultSpeed,
		IntersectionSpeed:    s.IntersectionSpeed,
		StatusCodeThreshold:  s.StatusCodeThreshold,
	}
}
