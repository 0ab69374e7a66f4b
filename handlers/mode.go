package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fairfix/site/cookie"
	"github.com/fairfix/site/quote"
	"github.com/fairfix/site/ui"
)

// HandleMode switches the active workflow. Derived results are cleared but
// the vehicle fields carry over.
func HandleMode(c *fiber.Ctx) error {
	mode := quote.ParseMode(c.Params("mode"))
	if mode == quote.ModeNone {
		return fiber.NewError(fiber.StatusBadRequest, "Unknown mode")
	}

	mu.Lock()
	defer mu.Unlock()

	coord.SelectMode(mode)
	cookie.SetLastMode(c, string(mode))

	return render(c, ui.ModeSection(coord))
}
