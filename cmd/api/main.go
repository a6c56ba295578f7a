package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yigit/admissions/internal/pkg/logger"
	"github.com/yigit/admissions/internal/server"
)

// @title Admissions API
// @version 1.0
// @description Admissions office records: courses, applicants, seat accounting and reports.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	app := &cli.App{
		Name:  "admissions-api",
		Usage: "serve the admissions records HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "configs/config.yaml",
				Usage:   "path to the YAML configuration file",
				EnvVars: []string{"ADMISSIONS_CONFIG"},
			},
		},
		Action: func(c *cli.Context) error {
			srv, err := server.NewServer(c.String("config"))
			if err != nil {
				return err
			}
			return srv.Run()
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
