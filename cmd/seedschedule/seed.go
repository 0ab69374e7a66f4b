package main

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/fairfix/site/schedule"
)

// Row is one maintenance schedule entry headed for the database.
type Row struct {
	Make          string
	Model         string
	Year          int
	IntervalMiles int
	ServiceTask   string
	Description   string
	Severity      string
}

var requiredColumns = []string{"make", "model", "year", "interval_miles", "service_task", "description", "severity"}

// readRows parses the schedule CSV. Headers are lowercased and trimmed,
// service_task falls back to service_category, and a missing severity
// column is inferred from the task text. Unparseable numbers become 0.
func readRows(r io.Reader) ([]Row, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv is empty")
	}

	cols := map[string]int{}
	for i, col := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(col))] = i
	}
	if _, ok := cols["service_task"]; !ok {
		if i, ok := cols["service_category"]; ok {
			cols["service_task"] = i
		}
	}
	_, hasSeverity := cols["severity"]

	var missing []string
	for _, col := range requiredColumns {
		if col == "severity" {
			continue
		}
		if _, ok := cols[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %v", missing)
	}

	field := func(rec []string, col string) string {
		i, ok := cols[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := Row{
			Make:          field(rec, "make"),
			Model:         field(rec, "model"),
			Year:          coerceInt(field(rec, "year")),
			IntervalMiles: coerceInt(field(rec, "interval_miles")),
			ServiceTask:   field(rec, "service_task"),
			Description:   field(rec, "description"),
		}
		if hasSeverity {
			row.Severity = field(rec, "severity")
		} else {
			row.Severity = inferSeverity(row.ServiceTask)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func coerceInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

func inferSeverity(task string) string {
	text := strings.ToLower(task)
	if strings.Contains(text, "critical") {
		return schedule.SeverityCritical
	}
	if strings.Contains(text, "major") {
		return schedule.SeverityMajor
	}
	return schedule.SeverityRoutine
}

// applyRules cleans up known dataset quirks before seeding:
//   - TRX rows predating the model's 2021 launch are dropped
//   - modern Toyota/Honda/Ford oil service gets the synthetic 10k interval
//   - every remaining TRX model year gets a diff fluid check injected
func applyRules(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if row.Model == "TRX" && row.Year < 2021 {
			continue
		}
		out = append(out, row)
	}

	syntheticOil := map[string]bool{"Toyota": true, "Honda": true, "Ford": true}
	for i, row := range out {
		if syntheticOil[row.Make] && row.Year > 2016 && row.ServiceTask == "Oil Service" {
			out[i].IntervalMiles = 10000
			out[i].Description = "Synthetic Oil Change"
		}
	}

	trxMakeByYear := map[int]string{}
	for _, row := range out {
		if row.Model == "TRX" {
			if _, ok := trxMakeByYear[row.Year]; !ok {
				trxMakeByYear[row.Year] = row.Make
			}
		}
	}
	years := make([]int, 0, len(trxMakeByYear))
	for year := range trxMakeByYear {
		years = append(years, year)
	}
	sort.Ints(years)

	for _, year := range years {
		mk := trxMakeByYear[year]
		if mk == "" {
			mk = "Ram"
		}
		out = append(out, Row{
			Make:          mk,
			Model:         "TRX",
			Year:          year,
			IntervalMiles: 15000,
			ServiceTask:   "Diff Fluid Check",
			Description:   "Inspect Front/Rear Axle Fluid & Transfer Case (High Performance)",
			Severity:      schedule.SeverityCritical,
		})
	}

	return out
}

// seedRows replaces the maintenance_schedule table with the given rows.
func seedRows(dbh *sql.DB, rows []Row) error {
	if _, err := dbh.Exec(`DROP TABLE IF EXISTS maintenance_schedule`); err != nil {
		return fmt.Errorf("dropping table: %w", err)
	}
	if _, err := dbh.Exec(`CREATE TABLE maintenance_schedule (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		make TEXT NOT NULL,
		model TEXT NOT NULL,
		year INTEGER NOT NULL,
		interval_miles INTEGER NOT NULL,
		service_task TEXT NOT NULL,
		description TEXT NOT NULL,
		severity TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("creating table: %w", err)
	}

	tx, err := dbh.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO maintenance_schedule
		(make, model, year, interval_miles, service_task, description, severity)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.Exec(row.Make, row.Model, row.Year, row.IntervalMiles,
			row.ServiceTask, row.Description, row.Severity); err != nil {
			return fmt.Errorf("inserting row for %s %s: %w", row.Make, row.Model, err)
		}
	}

	return tx.Commit()
}
