package usecases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/planmytrip/backend/internal/core/domain"
	"github.com/planmytrip/backend/internal/core/usecases"
)

// --- Mock TripRepository ---

type mockTripRepo struct {
	createFn      func(ctx context.Context, trip *domain.Trip) error
	getByIDFn     func(ctx context.Context, id string) (*domain.Trip, error)
	getLatestFn   func(ctx context.Context) (*domain.Trip, error)
	listByOwnerFn func(ctx context.Context, ownerID string) ([]domain.Trip, error)
	updateRouteFn func(ctx context.Context, id, createdBy string, stops []domain.RouteStop, totalKm float64) (*domain.Trip, error)
}

func (m *mockTripRepo) Create(ctx context.Context, trip *domain.Trip) error {
	if m.createFn != nil {
		return m.createFn(ctx, trip)
	}
	return nil
}

func (m *mockTripRepo) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrTripNotFound
}

func (m *mockTripRepo) GetLatest(ctx context.Context) (*domain.Trip, error) {
	if m.getLatestFn != nil {
		return m.getLatestFn(ctx)
	}
	return nil, domain.ErrTripNotFound
}

func (m *mockTripRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Trip, error) {
	if m.listByOwnerFn != nil {
		return m.listByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockTripRepo) UpdateRoute(ctx context.Context, id, createdBy string, stops []domain.RouteStop, totalKm float64) (*domain.Trip, error) {
	if m.updateRouteFn != nil {
		return m.updateRouteFn(ctx, id, createdBy, stops, totalKm)
	}
	return nil, domain.ErrTripNotFound
}

func stop(name string, order int) domain.RouteStop {
	return domain.RouteStop{
		Place: domain.Place{
			Name:       name,
			Coordinate: domain.Coordinate{Lat: float64(order), Lon: float64(order)},
			Category:   domain.CategoryOther,
		},
		Order: order,
	}
}

// --- Tests ---

func TestTripService_Create_AssignsIdentity(t *testing.T) {
	var stored *domain.Trip
	repo := &mockTripRepo{
		createFn: func(ctx context.Context, trip *domain.Trip) error {
			stored = trip
			return nil
		},
	}
	svc := usecases.NewTripService(repo, nil)

	trip, err := svc.Create(context.Background(), &domain.Trip{TripName: "Weekend", CreatedBy: "u1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trip.ID == "" {
		t.Error("expected an assigned id")
	}
	if trip.CreatedAt.IsZero() {
		t.Error("expected an assigned creation time")
	}
	if stored == nil || stored.ID != trip.ID {
		t.Error("trip was not passed through to the repository")
	}
}

func TestTripService_SaveRoute_SortsByOrder(t *testing.T) {
	var persisted []domain.RouteStop
	repo := &mockTripRepo{
		updateRouteFn: func(ctx context.Context, id, createdBy string, stops []domain.RouteStop, totalKm float64) (*domain.Trip, error) {
			persisted = stops
			return &domain.Trip{ID: id, RoutePlaces: stops}, nil
		},
	}
	svc := usecases.NewTripService(repo, nil)

	unsorted := []domain.RouteStop{stop("c", 3), stop("a", 1), stop("b", 2)}
	_, err := svc.SaveRoute(context.Background(), "t1", "u1", unsorted, 120.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, want := range []string{"a", "b", "c"} {
		if persisted[i].Name != want {
			t.Errorf("position %d: expected %s, got %s", i, want, persisted[i].Name)
		}
	}
	// The gateway sorts, it does not renumber.
	if persisted[2].Order != 3 {
		t.Errorf("expected original order values preserved, got %d", persisted[2].Order)
	}
}

func TestTripService_SaveRoute_InputSliceUntouched(t *testing.T) {
	repo := &mockTripRepo{
		updateRouteFn: func(ctx context.Context, id, createdBy string, stops []domain.RouteStop, totalKm float64) (*domain.Trip, error) {
			return &domain.Trip{ID: id}, nil
		},
	}
	svc := usecases.NewTripService(repo, nil)

	input := []domain.RouteStop{stop("c", 3), stop("a", 1)}
	if _, err := svc.SaveRoute(context.Background(), "t1", "u1", input, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if input[0].Name != "c" {
		t.Error("caller's slice must not be reordered in place")
	}
}

func TestTripService_SaveRoute_WrongOwner(t *testing.T) {
	repo := &mockTripRepo{
		updateRouteFn: func(ctx context.Context, id, createdBy string, stops []domain.RouteStop, totalKm float64) (*domain.Trip, error) {
			if createdBy != "the-owner" {
				return nil, domain.ErrTripNotFound
			}
			return &domain.Trip{ID: id}, nil
		},
	}
	svc := usecases.NewTripService(repo, nil)

	_, err := svc.SaveRoute(context.Background(), "t1", "somebody-else", []domain.RouteStop{stop("a", 1)}, 10)
	if !errors.Is(err, domain.ErrTripNotFound) {
		t.Fatalf("expected ErrTripNotFound for foreign trip, got %v", err)
	}
}

func TestTripService_SaveRoute_Validation(t *testing.T) {
	svc := usecases.NewTripService(&mockTripRepo{}, nil)

	cases := []struct {
		name    string
		tripID  string
		stops   []domain.RouteStop
		totalKm float64
	}{
		{"empty stops", "t1", nil, 10},
		{"missing distance", "t1", []domain.RouteStop{stop("a", 1)}, 0},
		{"missing trip id", "", []domain.RouteStop{stop("a", 1)}, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SaveRoute(context.Background(), tc.tripID, "u1", tc.stops, tc.totalKm)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestTripService_FetchFull_FallsBackToLatest(t *testing.T) {
	latest := &domain.Trip{ID: "newest", CreatedAt: time.Now()}
	repo := &mockTripRepo{
		getLatestFn: func(ctx context.Context) (*domain.Trip, error) { return latest, nil },
	}
	svc := usecases.NewTripService(repo, nil)

	trip, err := svc.FetchFull(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trip.ID != "newest" {
		t.Errorf("expected fallback to latest trip, got %s", trip.ID)
	}
}

func TestTripService_FetchFull_UnknownID(t *testing.T) {
	svc := usecases.NewTripService(&mockTripRepo{}, nil)

	_, err := svc.FetchFull(context.Background(), "missing")
	if !errors.Is(err, domain.ErrTripNotFound) {
		t.Fatalf("expected ErrTripNotFound, got %v", err)
	}
}

func TestTripService_ListByOwner_RequiresOwner(t *testing.T) {
	svc := usecases.NewTripService(&mockTripRepo{}, nil)

	_, err := svc.ListByOwner(context.Background(), "")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
