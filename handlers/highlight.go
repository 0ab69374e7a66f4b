package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fairfix/site/ui"
)

// HandleHighlight emphasizes one quote in both the list and the map. Last
// write wins.
func HandleHighlight(c *fiber.Ctx) error {
	mu.Lock()
	defer mu.Unlock()

	coord.SetActiveQuote(c.Params("id"))
	return render(c, ui.QuoteList(coord))
}

// HandleHighlightClear removes the emphasis.
func HandleHighlightClear(c *fiber.Ctx) error {
	mu.Lock()
	defer mu.Unlock()

	coord.SetActiveQuote("")
	return render(c, ui.QuoteList(coord))
}
