package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fairfix/site/cookie"
	"github.com/fairfix/site/quote"
	"github.com/fairfix/site/ui"
)

var vehicleCookieFields = []string{"year", "make", "model", "mileage", "zip_code"}

// HandleHome restores the visitor's last mode and vehicle from cookies and
// renders the full page.
func HandleHome(c *fiber.Ctx) error {
	mu.Lock()
	defer mu.Unlock()

	if mode := quote.ParseMode(cookie.GetLastMode(c)); mode != coord.Mode() {
		coord.SelectMode(mode)
	}
	for _, field := range vehicleCookieFields {
		if v := cookie.GetVehicleField(c, field); v != "" {
			coord.UpdateField(field, v)
		}
	}

	return render(c, ui.HomePage(coord))
}
