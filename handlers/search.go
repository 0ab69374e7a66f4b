package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fairfix/site/cookie"
	"github.com/fairfix/site/quote"
	"github.com/fairfix/site/ui"
)

// HandleSearchQuotes runs the repair quote search for the submitted
// vehicle and renders the results fragment.
func HandleSearchQuotes(c *fiber.Ctx) error {
	mu.Lock()
	defer mu.Unlock()

	if coord.Mode() != quote.ModeQuote {
		coord.SelectMode(quote.ModeQuote)
	}
	applyForm(c, "service", "year", "make", "model", "zip_code")

	coord.Submit(c.Context())

	return render(c, ui.Results(coord))
}

// HandleSearchSchedule runs the maintenance schedule lookup.
func HandleSearchSchedule(c *fiber.Ctx) error {
	mu.Lock()
	defer mu.Unlock()

	if coord.Mode() != quote.ModeSchedule {
		coord.SelectMode(quote.ModeSchedule)
	}
	applyForm(c, "year", "make", "model", "mileage")

	coord.Submit(c.Context())

	return render(c, ui.Results(coord))
}

// applyForm copies submitted fields into the coordinator and persists the
// vehicle fields so a returning visitor does not retype them.
func applyForm(c *fiber.Ctx, fields ...string) {
	for _, field := range fields {
		value := c.FormValue(field)
		coord.UpdateField(field, value)
		if field != "service" && value != "" {
			cookie.SetVehicleField(c, field, value)
		}
	}
}
