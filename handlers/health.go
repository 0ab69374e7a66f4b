package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
)

// HandleHealth returns the health status of the application
func HandleHealth(c *fiber.Ctx) error {
	health := map[string]string{
		"status": "ok",
	}

	c.Set("Content-Type", "application/json")
	return json.NewEncoder(c).Encode(health)
}
