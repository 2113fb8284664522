package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/planmytrip/backend/internal/core/usecases"
)

const authCookieName = "token"

// AuthMiddleware verifies the session token and stores the caller's
// identity in request locals. Tokens are accepted from the session
// cookie or an Authorization bearer header; the cookie wins when both
// are present.
func AuthMiddleware(auth *usecases.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(authCookieName)
		if token == "" {
			header := c.Get(fiber.HeaderAuthorization)
			if strings.HasPrefix(header, "Bearer ") {
				token = strings.TrimPrefix(header, "Bearer ")
			}
		}
		if token == "" {
			return errUnauthorized(c, "authentication required")
		}

		userID, email, err := auth.VerifyToken(token)
		if err != nil {
			return errUnauthorized(c, "invalid or expired token")
		}

		c.Locals("user_id", userID)
		c.Locals("user_email", email)
		return c.Next()
	}
}

// currentUserID returns the authenticated user's id from locals.
func currentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
