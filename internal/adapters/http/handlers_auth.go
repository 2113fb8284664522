package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/planmytrip/backend/internal/core/domain"
	"github.com/planmytrip/backend/internal/core/usecases"
)

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterHandler creates a new account.
func RegisterHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		user, err := deps.Auth.Register(c.Context(), req.FirstName, req.LastName, req.Email, req.Password)
		if err != nil {
			return respondDomainError(c, err)
		}
		return c.Status(201).JSON(user)
	}
}

// LoginHandler checks credentials and sets the session cookie. The token
// is also returned in the body for non-browser clients.
func LoginHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		user, token, err := deps.Auth.Login(c.Context(), req.Email, req.Password)
		if err != nil {
			// An unknown email reads the same as a wrong password.
			if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidCredentials) {
				return errUnauthorized(c, "invalid credentials")
			}
			return respondDomainError(c, err)
		}

		c.Cookie(&fiber.Cookie{
			Name:     authCookieName,
			Value:    token,
			Expires:  time.Now().Add(usecases.TokenTTL),
			HTTPOnly: true,
			SameSite: "Lax",
		})
		return c.JSON(fiber.Map{
			"token": token,
			"user":  user,
		})
	}
}

// LogoutHandler clears the session cookie.
func LogoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     authCookieName,
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			SameSite: "Lax",
		})
		return c.JSON(fiber.Map{"status": "logged out"})
	}
}

// MeHandler returns the authenticated account.
func MeHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := deps.Auth.Me(c.Context(), currentUserID(c))
		if err != nil {
			return respondDomainError(c, err)
		}
		return c.JSON(user)
	}
}
