package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/planmytrip/backend/internal/core/domain"
	"github.com/planmytrip/backend/internal/core/usecases"
	"github.com/planmytrip/backend/internal/pkg/geo"
)

// CreateTripHandler assembles and persists a trip. Stop names that fail
// to resolve come back in invalid_places; the trip is still created.
func CreateTripHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req usecases.AssembleRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		trip, invalid, err := deps.Planner.Assemble(c.Context(), currentUserID(c), req)
		if err != nil {
			return respondDomainError(c, err)
		}

		created, err := deps.Trips.Create(c.Context(), trip)
		if err != nil {
			return respondDomainError(c, err)
		}

		resp := fiber.Map{"trip": created}
		if len(invalid) > 0 {
			resp["invalid_places"] = invalid
		}
		return c.Status(201).JSON(resp)
	}
}

// ListTripsHandler returns the caller's trips, newest first, paginated.
func ListTripsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		trips, err := deps.Trips.ListByOwner(c.Context(), currentUserID(c))
		if err != nil {
			return respondDomainError(c, err)
		}

		page, pg := paginate(c, trips, 50, 200)
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: page, Pagination: pg})
	}
}

type saveRouteRequest struct {
	RoutePlaces     []domain.RouteStop `json:"route_places"`
	TotalDistanceKm float64            `json:"total_distance_km"`
}

// SaveRouteHandler replaces the ordered route of one of the caller's trips.
func SaveRouteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		var req saveRouteRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		trip, err := deps.Trips.SaveRoute(c.Context(), id, currentUserID(c), req.RoutePlaces, req.TotalDistanceKm)
		if err != nil {
			return respondDomainError(c, err)
		}
		return c.JSON(trip)
	}
}

// tripIDParam reads the :id route param, treating "latest" as the
// empty id so FetchFull falls back to the most recent trip.
func tripIDParam(c *fiber.Ctx) string {
	id := c.Params("id")
	if id == "latest" {
		return ""
	}
	return id
}

// FullRouteHandler returns the trip together with its ordered path of
// coordinates: start, stops in stored order, destination.
func FullRouteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		trip, err := deps.Trips.FetchFull(c.Context(), tripIDParam(c))
		if err != nil {
			return respondDomainError(c, err)
		}

		path, err := usecases.BuildPath(trip)
		if err != nil {
			return respondDomainError(c, err)
		}

		return c.JSON(fiber.Map{
			"trip": trip,
			"path": path,
		})
	}
}

// GeometryHandler returns a road-following polyline for the trip's path.
// The polyline is display-only; stored distances stay great-circle.
func GeometryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		trip, err := deps.Trips.FetchFull(c.Context(), tripIDParam(c))
		if err != nil {
			return respondDomainError(c, err)
		}

		path, err := usecases.BuildPath(trip)
		if err != nil {
			return respondDomainError(c, err)
		}

		points := make([]domain.Coordinate, 0, len(path))
		for _, p := range path {
			points = append(points, p.Coordinate)
		}

		line, distanceKm, err := deps.Router.Route(c.Context(), points)
		if err != nil {
			return respondDomainError(c, err)
		}

		return c.JSON(fiber.Map{
			"trip_id":          trip.ID,
			"geometry":         line,
			"road_distance_km": geo.RoundKm(distanceKm),
		})
	}
}
