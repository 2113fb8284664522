package http

import (
	"github.com/gofiber/fiber/v2"
)

// NearbyPlacesHandler geocodes a place name and returns points of
// interest around it, sorted nearest first.
func NearbyPlacesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Query("name")
		if name == "" {
			return errBadRequest(c, "name query parameter is required")
		}
		radiusKm := c.QueryFloat("radius_km", 0)
		if radiusKm < 0 || radiusKm > 100 {
			return errBadRequest(c, "radius_km must be between 0 and 100")
		}

		result, err := deps.Nearby.FindNearby(c.Context(), name, radiusKm)
		if err != nil {
			return respondDomainError(c, err)
		}

		c.Set("Cache-Control", "public, max-age=300")
		return c.JSON(result)
	}
}
