package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/planmytrip/backend/internal/core/domain"
)

// Route drafts are scratch space while a user rearranges stops in the
// UI. They live only in the cache and expire on their own.

type createDraftRequest struct {
	TripID string `json:"trip_id"`
}

// CreateDraftHandler opens a new route draft.
func CreateDraftHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createDraftRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		draft, err := deps.Drafts.Create(c.Context(), req.TripID)
		if err != nil {
			return respondDomainError(c, err)
		}
		return c.Status(201).JSON(draft)
	}
}

// GetDraftHandler returns a draft by id.
func GetDraftHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		draft, err := deps.Drafts.Get(c.Context(), c.Params("id"))
		if err != nil {
			return respondDomainError(c, err)
		}
		return c.JSON(draft)
	}
}

// AddDraftPlaceHandler appends a place to a draft.
func AddDraftPlaceHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var place domain.Place
		if err := c.BodyParser(&place); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		draft, err := deps.Drafts.AddPlace(c.Context(), c.Params("id"), place)
		if err != nil {
			return respondDomainError(c, err)
		}
		return c.JSON(draft)
	}
}

// RemoveDraftPlaceHandler removes the place at the given index.
func RemoveDraftPlaceHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idx, err := c.ParamsInt("idx")
		if err != nil {
			return errBadRequest(c, "index must be an integer")
		}

		draft, err := deps.Drafts.RemovePlace(c.Context(), c.Params("id"), idx)
		if err != nil {
			return respondDomainError(c, err)
		}
		return c.JSON(draft)
	}
}

// DeleteDraftHandler discards a draft.
func DeleteDraftHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Drafts.Delete(c.Context(), c.Params("id")); err != nil {
			return respondDomainError(c, err)
		}
		return c.SendStatus(204)
	}
}
