package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/fairfix/site/config"
	h "github.com/fairfix/site/handlers"
	"github.com/fairfix/site/quote"
)

func main() {
	// Wire the coordinator to the quote API
	h.Setup(quote.NewClient(quote.WithBaseURL(config.QuoteAPIURL)))

	app := fiber.New(fiber.Config{
		ErrorHandler: h.CustomErrorHandler,
		ReadTimeout:  30 * time.Second, // Prevent long-running requests
		WriteTimeout: 30 * time.Second, // Prevent long-running responses
	})

	// Add rate limiter
	app.Use(limiter.New(limiter.Config{
		Max:        config.ServerRateLimitMax,
		Expiration: config.ServerRateLimitExp,
	}))

	// Add logger middleware
	app.Use(logger.New())

	// Static files
	app.Static("/", "./static")

	// Main page
	app.Get("/", h.HandleHome)
	app.Get("/mode/:mode", h.HandleMode)

	// Searches
	app.Post("/search/quotes", h.HandleSearchQuotes)
	app.Post("/search/schedule", h.HandleSearchSchedule)

	// Quote highlighting (map pin <-> list card)
	app.Get("/highlight/:id", h.HandleHighlight)
	app.Get("/highlight-clear", h.HandleHighlightClear)

	// Health check
	app.Get("/health", h.HandleHealth)

	fmt.Printf("Starting server on port %s...\n", config.ServerPort)
	log.Fatal(app.Listen(":" + config.ServerPort))
}
