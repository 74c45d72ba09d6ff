// Command loansd runs the loan service and its maintenance tasks.
package main

import (
	"fmt"
	"io"
	"os"
	_ "time/tzdata"

	"github.com/urfave/cli/v2"

	"github.com/prestamos/loan-service/internal/infrastructure/config"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "loansd:", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:   "loansd",
		Usage:  "Loan contracts, installment schedules and payments",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML, JSON or TOML config file",
				EnvVars: []string{config.EnvPrefix + "_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			scheduleCommand(),
			eventsCommand(),
		},
	}
}

func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
