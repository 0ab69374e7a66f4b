package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/urfave/cli/v2"

	"github.com/fairfix/site/config"
)

func main() {
	app := &cli.App{
		Name:  "seedschedule",
		Usage: "Seed the maintenance schedule database from a CSV export",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "csv",
				Usage: "Schedule CSV file",
				Value: "full_precise_maintenance_schedule.csv",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "Database file",
				Value: config.ScheduleDB,
			},
		},
		Action: func(c *cli.Context) error {
			return run(c.String("csv"), c.String("db"))
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(csvPath, dbPath string) error {
	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", csvPath, err)
	}
	defer f.Close()

	rows, err := readRows(f)
	if err != nil {
		return err
	}
	rows = applyRules(rows)

	dbh, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("opening database %s: %w", dbPath, err)
	}
	defer dbh.Close()

	if err := seedRows(dbh, rows); err != nil {
		return err
	}

	fmt.Printf("Seeded %d rows into %s\n", len(rows), dbPath)
	return nil
}
