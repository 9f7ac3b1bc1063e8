package cli

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/Grupp-8-TSEA56-2022/control-center/params"
	"github.com/Grupp-8-TSEA56-2022/control-center/settings"
)

func Handle() {
	shouldExit := true
	cmd := &cli.Command{
		Commands: []*cli.Command{
			{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "Watch and configure an active control-center instance",
				Flags:   []cli.Flag{addrFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					interactive(cmd.String("addr"))
					return nil
				},
			},
			{
				Name:    "mission",
				Aliases: []string{"m"},
				Usage:   "Send a drive mission to an active control-center instance",
				Flags:   []cli.Flag{addrFlag(), mapFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return mission(cmd.String("addr"), cmd.String("map"), cmd.Args().Slice())
				},
			},
			{
				Name:  "instruction",
				Usage: "Send a single manual drive instruction",
				Flags: []cli.Flag{
					addrFlag(),
					&cli.StringFlag{
						Name:  "id",
						Usage: "The instruction id reported back on completion, generated when empty",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return instruction(cmd.String("addr"), cmd.Args().Get(0), cmd.String("id"))
				},
			},
			{
				Name:    "route",
				Aliases: []string{"r"},
				Usage:   "Solve a route offline against a track map",
				Flags:   []cli.Flag{mapFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return route(cmd.String("map"), cmd.Args().Get(0), cmd.Args().Get(1))
				},
			},
			{
				Name:    "scenario",
				Aliases: []string{"s"},
				Usage:   "Validate a scenario file and print its drive summary",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return checkScenario(cmd.Args().Get(0))
				},
			},
			{
				Name:  "settings",
				Usage: "Print or reset the persisted control settings",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "default",
						Usage: "Reset the persisted settings to defaults before printing",
					},
					&cli.BoolFlag{
						Name:  "recommended",
						Usage: "Reset the persisted settings to the recommended tuning before printing",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return settingsCommand(cmd.Bool("default"), cmd.Bool("recommended"))
				},
			},
		},
		Name:  "control-center",
		Usage: "Start the drive loop of the vehicle",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			shouldExit = false
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}

	if shouldExit {
		os.Exit(0)
	}
}

func addrFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "addr",
		Aliases: []string{"a"},
		Usage:   "The address of the running control-center instance",
		Value:   "http://127.0.0.1:8080",
	}
}

func mapFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "map",
		Usage: "The track map file",
		Value: defaultMapPath(),
	}
}

// defaultMapPath reads the persisted map path without the usual settings
// load logging, so plain cli calls stay quiet.
func defaultMapPath() string {
	s := settings.ControlSettings{}
	s.Default()
	if data, err := params.GetParam(params.CONTROL_SETTINGS); err == nil {
		_ = json.Unmarshal(data, &s)
	}
	return s.MapPath
}
