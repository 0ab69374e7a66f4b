package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gofiber/fiber/v2"

	"github.com/fairfix/site/db"
	"github.com/fairfix/site/estimator"
	"github.com/fairfix/site/geo"
	"github.com/fairfix/site/quote"
	"github.com/fairfix/site/quotegen"
	"github.com/fairfix/site/schedule"
)

// Services recommended no further out than this past the current mileage.
const scheduleLookahead = 5000

type server struct {
	est     *estimator.Estimator
	gen     *quotegen.Generator
	geocode func(zip string) (lat, lng float64, err error)
}

func (s *server) routes(app *fiber.App) {
	app.Get("/quotes", s.handleQuotes)
	app.Get("/schedule", s.handleSchedule)
	app.Get("/maintenance-forecast", s.handleForecast)
	app.Get("/services", s.handleServices)
	app.Get("/health", s.handleHealth)
}

func detail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"detail": msg})
}

// requireQuery returns a non-empty query parameter or flags the request bad.
func requireQuery(c *fiber.Ctx, name string) (string, error) {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, name+" is required")
	}
	return v, nil
}

func requireQueryInt(c *fiber.Ctx, name string, min int) (int, error) {
	raw, err := requireQuery(c, name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid value for "+name)
	}
	return v, nil
}

func (s *server) handleQuotes(c *fiber.Ctx) error {
	serviceName, err := requireQuery(c, "service_name")
	if err != nil {
		return err
	}
	mk, err := requireQuery(c, "make")
	if err != nil {
		return err
	}
	md, err := requireQuery(c, "model")
	if err != nil {
		return err
	}
	year, err := requireQueryInt(c, "year", 1900)
	if err != nil {
		return err
	}
	zip, err := requireQuery(c, "zip_code")
	if err != nil {
		return err
	}
	if len(zip) < 3 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid value for zip_code")
	}

	userLat, userLng, err := s.geocode(zip)
	if err != nil {
		if errors.Is(err, geo.ErrNotFound) {
			return detail(c, fiber.StatusNotFound, "Unable to locate that zip code.")
		}
		return fmt.Errorf("geocoding %q: %w", zip, err)
	}

	quotes := s.gen.Quotes(serviceName, mk, md, year, userLat, userLng)

	return c.JSON(fiber.Map{
		"service": serviceName,
		"vehicle": fiber.Map{"make": mk, "model": md, "year": year},
		"center":  quote.MapCenter{Lat: round6(userLat), Lng: round6(userLng)},
		"quotes":  quotes,
	})
}

func (s *server) handleSchedule(c *fiber.Ctx) error {
	mk, err := requireQuery(c, "make")
	if err != nil {
		return err
	}
	md, err := requireQuery(c, "model")
	if err != nil {
		return err
	}
	if _, err := requireQueryInt(c, "year", 1900); err != nil {
		return err
	}
	mileage, err := requireQueryInt(c, "mileage", 0)
	if err != nil {
		return err
	}

	recommendations := s.est.RecommendServices(mk, md, mileage)
	if len(recommendations) == 0 {
		return detail(c, fiber.StatusNotFound, "No schedule found for that vehicle.")
	}

	items := []quote.ScheduleItem{}
	for _, rec := range recommendations {
		if rec.MileageInterval < mileage || rec.MileageInterval > mileage+scheduleLookahead {
			continue
		}
		items = append(items, quote.ScheduleItem{
			ServiceTask:   rec.ServiceName,
			IntervalMiles: rec.MileageInterval,
			Description:   fmt.Sprintf("Service due around %s miles.", humanize.Comma(int64(rec.MileageInterval))),
			Severity:      schedule.SeverityRoutine,
		})
	}

	return c.JSON(items)
}

func (s *server) handleForecast(c *fiber.Ctx) error {
	mk, err := requireQuery(c, "make")
	if err != nil {
		return err
	}
	md, err := requireQuery(c, "model")
	if err != nil {
		return err
	}
	year, err := requireQueryInt(c, "year", 1900)
	if err != nil {
		return err
	}
	mileage, err := requireQueryInt(c, "current_mileage", 0)
	if err != nil {
		return err
	}

	forecast, err := schedule.ForecastForVehicle(mk, md, year, mileage)
	if err != nil {
		return err
	}
	if forecast == nil {
		return detail(c, fiber.StatusNotFound, "No schedule found for that vehicle.")
	}

	return c.JSON(forecast)
}

func (s *server) handleServices(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"services": s.est.Services()})
}

// handleHealth returns the health status of the service
func (s *server) handleHealth(c *fiber.Ctx) error {
	health := map[string]string{
		"status": "ok",
	}

	if err := db.Get().Ping(); err != nil {
		health["status"] = "unhealthy"
		health["database"] = "down"
		c.Status(fiber.StatusServiceUnavailable)
	} else {
		health["database"] = "up"
	}

	c.Set("Content-Type", "application/json")
	return json.NewEncoder(c).Encode(health)
}

func round6(f float64) float64 {
	return math.Round(f*1e6) / 1e6
}
