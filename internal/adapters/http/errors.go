package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/planmytrip/backend/internal/core/domain"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // Error code: bad_request, not_found, internal_error, etc.
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, 400, "bad_request", msg)
}

// errNotFound returns a 404 error.
func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, 404, "not_found", msg)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, 500, "internal_error", msg)
}

// errUnauthorized returns a 401 error.
func errUnauthorized(c *fiber.Ctx, msg string) error {
	return newError(c, 401, "unauthorized", msg)
}

// errConflict returns a 409 error.
func errConflict(c *fiber.Ctx, msg string) error {
	return newError(c, 409, "conflict", msg)
}

// errBadGateway returns a 502 error for upstream service failures.
func errBadGateway(c *fiber.Ctx, msg string) error {
	return newError(c, 502, "bad_gateway", msg)
}

// respondDomainError translates domain errors into API responses so
// handlers share one mapping. Place resolution failures are client
// errors; upstream outages are gateway errors; everything unknown is
// an internal error.
func respondDomainError(c *fiber.Ctx, err error) error {
	var (
		validation   *domain.ValidationError
		invalidPlace *domain.InvalidPlaceError
		upstream     *domain.UpstreamError
	)
	switch {
	case errors.As(err, &validation):
		return errBadRequest(c, validation.Error())
	case errors.As(err, &invalidPlace):
		return errBadRequest(c, invalidPlace.Error())
	case errors.As(err, &upstream):
		return errBadGateway(c, upstream.Error())
	case errors.Is(err, domain.ErrPlaceNotFound):
		return errNotFound(c, "place not found")
	case errors.Is(err, domain.ErrTripNotFound):
		return errNotFound(c, "trip not found")
	case errors.Is(err, domain.ErrDraftNotFound):
		return errNotFound(c, "draft not found")
	case errors.Is(err, domain.ErrUserNotFound):
		return errNotFound(c, "user not found")
	case errors.Is(err, domain.ErrEmptyPath):
		return errNotFound(c, "trip has no usable coordinates")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return errUnauthorized(c, "invalid credentials")
	case errors.Is(err, domain.ErrEmailTaken):
		return errConflict(c, "email already registered")
	default:
		return errInternal(c, err.Error())
	}
}
