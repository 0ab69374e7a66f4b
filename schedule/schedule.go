// Package schedule reads the seeded maintenance schedule and derives the
// next-service forecast for a vehicle.
package schedule

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/fairfix/site/cache"
	"github.com/fairfix/site/db"
)

// Severity levels as stored in the schedule table.
const (
	SeverityRoutine  = "Routine"
	SeverityMajor    = "Major"
	SeverityCritical = "Critical"
)

// Item is one row of the maintenance schedule.
type Item struct {
	ID            int    `db:"id"`
	Make          string `db:"make"`
	Model         string `db:"model"`
	Year          int    `db:"year"`
	IntervalMiles int    `db:"interval_miles"`
	ServiceTask   string `db:"service_task"`
	Description   string `db:"description"`
	Severity      string `db:"severity"`
}

// Forecast summarizes the next service due for a vehicle.
type Forecast struct {
	Status            string `json:"status"`
	NextServiceDueAt  int    `json:"next_service_due_at"`
	MilesUntilService int    `json:"miles_until_service"`
	EstimatedCost     int    `json:"estimated_cost"`
}

var itemCache *cache.Cache[[]Item]

// InitCache initializes the schedule read cache.
func InitCache() error {
	var err error
	itemCache, err = cache.New[[]Item](func(items []Item) int64 {
		return int64(len(items) * 120)
	}, "Schedule Cache")
	if err != nil {
		return err
	}

	log.Printf("[schedule-cache] Cache initialized successfully")
	return nil
}

// ClearCache drops all cached schedule rows.
func ClearCache() {
	if itemCache != nil {
		itemCache.Clear()
	}
}

func cacheKey(mk, md string, year int) string {
	return fmt.Sprintf("%s|%s|%d", strings.ToLower(mk), strings.ToLower(md), year)
}

// ItemsForVehicle returns the schedule rows for an exact make/model/year.
func ItemsForVehicle(mk, md string, year int) ([]Item, error) {
	key := cacheKey(mk, md, year)
	if itemCache != nil {
		if items, found := itemCache.Get(key); found {
			return items, nil
		}
	}

	rows, err := db.Query(
		`SELECT id, make, model, year, interval_miles, service_task, description, severity
		 FROM maintenance_schedule WHERE make = ? AND model = ? AND year = ?`,
		mk, md, year)
	if err != nil {
		return nil, fmt.Errorf("querying maintenance schedule: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Make, &it.Model, &it.Year, &it.IntervalMiles,
			&it.ServiceTask, &it.Description, &it.Severity); err != nil {
			return nil, fmt.Errorf("scanning schedule row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("schedule row error: %w", err)
	}

	if itemCache != nil && items != nil {
		itemCache.Set(key, items, int64(len(items)*120))
	}
	return items, nil
}

// EstimateCost maps a severity to a flat cost estimate in dollars.
func EstimateCost(severity string) int {
	switch severity {
	case SeverityRoutine:
		return 80
	case SeverityMajor:
		return 400
	}
	return 800
}

// ForecastForVehicle computes the next service due. The next service is the
// lowest interval above the current mileage, or the highest interval on the
// books when everything is behind the odometer. Returns nil when the vehicle
// has no schedule at all.
func ForecastForVehicle(mk, md string, year, currentMileage int) (*Forecast, error) {
	items, err := ItemsForVehicle(mk, md, year)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	var upcoming []Item
	for _, it := range items {
		if it.IntervalMiles > currentMileage {
			upcoming = append(upcoming, it)
		}
	}

	var next Item
	if len(upcoming) > 0 {
		sort.Slice(upcoming, func(i, j int) bool {
			return upcoming[i].IntervalMiles < upcoming[j].IntervalMiles
		})
		next = upcoming[0]
	} else {
		next = items[0]
		for _, it := range items[1:] {
			if it.IntervalMiles > next.IntervalMiles {
				next = it
			}
		}
	}

	status := "Good"
	if currentMileage > next.IntervalMiles+500 {
		status = "Overdue"
	}

	milesUntil := next.IntervalMiles - currentMileage
	if milesUntil < 0 {
		milesUntil = 0
	}

	return &Forecast{
		Status:            status,
		NextServiceDueAt:  next.IntervalMiles,
		MilesUntilService: milesUntil,
		EstimatedCost:     EstimateCost(next.Severity),
	}, nil
}
