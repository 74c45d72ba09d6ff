package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/prestamos/loan-service/migrations"
	pkgpostgres "github.com/prestamos/loan-service/pkg/postgres"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage the database schema",
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "Apply all pending migrations",
				Action: func(c *cli.Context) error {
					dsn, err := migrationDSN(c)
					if err != nil {
						return err
					}
					if err := pkgpostgres.RunMigrations(dsn, migrations.FS); err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, "migrations applied")
					return nil
				},
			},
			{
				Name:  "down",
				Usage: "Roll back every migration",
				Action: func(c *cli.Context) error {
					dsn, err := migrationDSN(c)
					if err != nil {
						return err
					}
					if err := pkgpostgres.RunMigrationsDown(dsn, migrations.FS); err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, "migrations rolled back")
					return nil
				},
			},
			{
				Name:  "version",
				Usage: "Print the current schema version",
				Action: func(c *cli.Context) error {
					dsn, err := migrationDSN(c)
					if err != nil {
						return err
					}
					version, dirty, err := pkgpostgres.MigrationVersion(dsn, migrations.FS)
					if err != nil {
						return err
					}
					if dirty {
						fmt.Fprintf(c.App.Writer, "version %d (dirty)\n", version)
						return nil
					}
					fmt.Fprintf(c.App.Writer, "version %d\n", version)
					return nil
				},
			},
		},
	}
}

func migrationDSN(c *cli.Context) (string, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return "", err
	}
	return cfg.Postgres().DSN(), nil
}
