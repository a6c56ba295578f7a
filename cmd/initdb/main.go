// Command initdb creates the schema, installs the delete-audit triggers and
// optionally inserts demo data, then exits. Running it again is harmless.
package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yigit/admissions/internal/bootstrap"
	"github.com/yigit/admissions/internal/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "admissions-initdb",
		Usage: "initialize the admissions database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "configs/config.yaml",
				Usage:   "path to the YAML configuration file",
				EnvVars: []string{"ADMISSIONS_CONFIG"},
			},
			&cli.BoolFlag{
				Name:  "seed",
				Value: true,
				Usage: "insert demo courses and applicants when the course table is empty",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error().Err(err).Msg("Database initialization failed")
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(c.String("config"))
	if err != nil {
		return err
	}

	store, err := bootstrap.OpenStore(cfg, lgr)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := bootstrap.InitializeDatabase(c.Context, store, c.Bool("seed"), lgr); err != nil {
		return err
	}

	lgr.Info().Str("driver", store.Driver()).Msg("Initialized the database.")
	return nil
}
