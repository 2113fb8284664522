package ports

import (
	"context"

	"github.com/planmytrip/backend/internal/core/domain"
)

// TripRepository persists trip aggregates. Trips are single-document
// consistency boundaries: every write touches exactly one trip.
type TripRepository interface {
	Create(ctx context.Context, trip *domain.Trip) error
	GetByID(ctx context.Context, id string) (*domain.Trip, error)
	// GetLatest returns the most recently created trip system-wide.
	GetLatest(ctx context.Context) (*domain.Trip, error)
	// ListByOwner returns trips created by ownerID, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Trip, error)
	// UpdateRoute replaces route places and total distance for the trip
	// matching (id, createdBy). Returns domain.ErrTripNotFound when no row
	// matches, whether the trip is missing or owned by someone else.
	UpdateRoute(ctx context.Context, id, createdBy string, stops []domain.RouteStop, totalDistanceKm float64) (*domain.Trip, error)
}

// UserRepository persists accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
