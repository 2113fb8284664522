package usecases

import (
	"sort"

	"github.com/planmytrip/backend/internal/core/domain"
)

// BuildPath reconstructs the single ordered point list of a trip for map
// rendering: start, route stops ascending, destination. Points with an
// unresolved (zero) coordinate are skipped rather than rendered at (0,0).
func BuildPath(trip *domain.Trip) ([]domain.PathPoint, error) {
	var points []domain.PathPoint

	if !trip.StartPlace.Coordinate.IsZero() {
		points = append(points, domain.PathPoint{
			Name:       trip.StartPlace.Name,
			Coordinate: trip.StartPlace.Coordinate,
			Role:       domain.RoleStart,
			Order:      0,
		})
	}

	stops := make([]domain.RouteStop, len(trip.RoutePlaces))
	copy(stops, trip.RoutePlaces)
	sort.SliceStable(stops, func(i, j int) bool { return stops[i].Order < stops[j].Order })

	emitted := 0
	for _, stop := range stops {
		if stop.Coordinate.IsZero() {
			continue
		}
		emitted++
		points = append(points, domain.PathPoint{
			Name:       stop.Name,
			Coordinate: stop.Coordinate,
			Role:       domain.RoleStop,
			Order:      emitted,
		})
	}

	if !trip.MainDestination.Coordinate.IsZero() {
		points = append(points, domain.PathPoint{
			Name:       trip.MainDestination.Name,
			Coordinate: trip.MainDestination.Coordinate,
			Role:       domain.RoleDestination,
			Order:      emitted + 1,
		})
	}

	if len(points) == 0 {
		return nil, domain.ErrEmptyPath
	}

	// Construction is already ordered; the re-sort guards against any
	// upstream inconsistency all the same.
	sort.SliceStable(points, func(i, j int) bool { return points[i].Order < points[j].Order })
	return points, nil
}
