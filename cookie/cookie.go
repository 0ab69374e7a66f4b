package cookie

import (
	"github.com/gofiber/fiber/v2"
)

const maxAge = 30 * 24 * 60 * 60 // 30 days

func set(c *fiber.Ctx, name, value string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		MaxAge:   maxAge,
		HTTPOnly: true,
		Secure:   true,
		Path:     "/",
		SameSite: "Strict",
	})
}

// GetLastMode returns the workflow the user last had open.
func GetLastMode(c *fiber.Ctx) string {
	return c.Cookies("last_mode", "")
}

func SetLastMode(c *fiber.Ctx, mode string) {
	set(c, "last_mode", mode)
}

// Vehicle fields persist across visits so a returning user does not retype
// the same car.

func GetVehicleField(c *fiber.Ctx, field string) string {
	return c.Cookies("vehicle_" + field)
}

func SetVehicleField(c *fiber.Ctx, field, value string) {
	set(c, "vehicle_"+field, value)
}
