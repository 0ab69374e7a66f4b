package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/fairfix/site/config"
	"github.com/fairfix/site/db"
	"github.com/fairfix/site/estimator"
	"github.com/fairfix/site/geo"
	"github.com/fairfix/site/quotegen"
	"github.com/fairfix/site/schedule"
)

func main() {
	// Initialize the maintenance schedule database
	if err := db.Init(config.ScheduleDB); err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer db.Close()

	// Initialize the schedule read cache
	if err := schedule.InitCache(); err != nil {
		log.Fatalf("Failed to initialize schedule cache: %v", err)
	}

	// Load estimator reference data
	est, err := estimator.New()
	if err != nil {
		log.Fatalf("Failed to load estimator reference data: %v", err)
	}

	srv := &server{
		est:     est,
		gen:     quotegen.New(est),
		geocode: geo.New(config.NominatimURL).ZipLatLng,
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	app.Use(limiter.New(limiter.Config{
		Max:        config.ServerRateLimitMax,
		Expiration: config.ServerRateLimitExp,
	}))

	app.Use(logger.New())

	srv.routes(app)

	fmt.Printf("Starting quote API on port %s...\n", config.QuoteAPIPort)
	log.Fatal(app.Listen(":" + config.QuoteAPIPort))
}
