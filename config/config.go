package config

import (
	"os"
	"time"
)

const (
	// ServerRateLimitMax is the number of requests allowed per limiter window.
	ServerRateLimitMax = 100

	// ServerRateLimitExp is the rate limiter window.
	ServerRateLimitExp = 1 * time.Minute
)

// CDN assets shared by every page.
const (
	TailwindCSSURL = "https://cdn.jsdelivr.net/npm/tailwindcss@2.2.19/dist/tailwind.min.css"
	HTMXURL        = "https://unpkg.com/htmx.org@1.9.12"
	LeafletCSSURL  = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"
	LeafletJSURL   = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"
)

var (
	// ServerPort is the port the site listens on.
	ServerPort = getenv("PORT", "8080")

	// QuoteAPIPort is the port the quote API service listens on.
	QuoteAPIPort = getenv("QUOTE_API_PORT", "8002")

	// QuoteAPIURL is the base URL of the pricing/schedule API the site consumes.
	QuoteAPIURL = getenv("QUOTE_API_URL", "http://127.0.0.1:8002")

	// ScheduleDB is the sqlite database holding the maintenance schedule.
	ScheduleDB = getenv("SCHEDULE_DB", "maintenance.db")

	// MapTilerAPIKey enables the interactive map. When empty the map view
	// degrades to a static informational message instead of failing.
	MapTilerAPIKey = os.Getenv("MAPTILER_API_KEY")

	// NominatimURL is the geocoding server used to resolve ZIP codes.
	NominatimURL = getenv("NOMINATIM_URL", "https://nominatim.openstreetmap.org/")
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
