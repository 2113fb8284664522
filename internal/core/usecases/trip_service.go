package usecases

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/planmytrip/backend/internal/core/domain"
	"github.com/planmytrip/backend/internal/core/ports"
	"github.com/planmytrip/backend/internal/pkg/metrics"
)

// TripService owns create/read/update operations on trip aggregates.
// Ownership is enforced on every mutation, not just creation.
type TripService struct {
	trips  ports.TripRepository
	events ports.EventPublisher
}

// NewTripService creates a new TripService. events may be nil; publishing
// is best-effort and never fails the operation.
func NewTripService(trips ports.TripRepository, events ports.EventPublisher) *TripService {
	return &TripService{trips: trips, events: events}
}

// Create persists an assembled trip, assigning identity and creation time.
func (s *TripService) Create(ctx context.Context, trip *domain.Trip) (*domain.Trip, error) {
	trip.ID = uuid.NewString()
	trip.CreatedAt = time.Now().UTC()

	if err := s.trips.Create(ctx, trip); err != nil {
		return nil, err
	}
	metrics.TripsCreated.Inc()

	if s.events != nil {
		if err := s.events.PublishTripCreated(ctx, trip); err != nil {
			slog.Warn("publish trip created", "trip_id", trip.ID, "error", err)
		}
	}
	return trip, nil
}

// ListByOwner returns ownerID's trips, newest first.
func (s *TripService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Trip, error) {
	if ownerID == "" {
		return nil, domain.NewValidationError("owner", "required")
	}
	return s.trips.ListByOwner(ctx, ownerID)
}

// SaveRoute replaces the ordered route of the trip matching (tripID,
// ownerID). Stops are re-sorted by their Order field before persisting;
// renumbering is the caller's responsibility. A trip owned by someone else
// is indistinguishable from a missing one.
func (s *TripService) SaveRoute(ctx context.Context, tripID, ownerID string, stops []domain.RouteStop, totalDistanceKm float64) (*domain.Trip, error) {
	if tripID == "" {
		return nil, domain.NewValidationError("trip_id", "required")
	}
	if len(stops) == 0 {
		return nil, domain.NewValidationError("route_places", "at least one stop is required")
	}
	if totalDistanceKm <= 0 {
		return nil, domain.NewValidationError("total_distance_km", "required")
	}

	sorted := make([]domain.RouteStop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	trip, err := s.trips.UpdateRoute(ctx, tripID, ownerID, sorted, totalDistanceKm)
	if err != nil {
		return nil, err
	}
	metrics.RoutesSaved.Inc()

	if s.events != nil {
		if err := s.events.PublishRouteSaved(ctx, trip); err != nil {
			slog.Warn("publish route saved", "trip_id", trip.ID, "error", err)
		}
	}
	return trip, nil
}

// FetchFull returns a trip with its full route. An empty tripID falls back
// to the most recently created trip system-wide; that is policy, not an
// error.
func (s *TripService) FetchFull(ctx context.Context, tripID string) (*domain.Trip, error) {
	if tripID == "" {
		return s.trips.GetLatest(ctx)
	}
	return s.trips.GetByID(ctx, tripID)
}
