package usecases_test

import (
	"errors"
	"testing"

	"github.com/planmytrip/backend/internal/core/domain"
	"github.com/planmytrip/backend/internal/core/usecases"
)

func place(name string, lat, lon float64) domain.Place {
	return domain.Place{
		Name:       name,
		Coordinate: domain.Coordinate{Lat: lat, Lon: lon},
		Category:   domain.CategoryOther,
	}
}

func TestBuildPath_StartAndDestinationOnly(t *testing.T) {
	trip := &domain.Trip{
		StartPlace:      place("Mumbai", 19.07, 72.87),
		MainDestination: place("Goa", 15.29, 74.12),
	}

	points, err := usecases.BuildPath(trip)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected exactly 2 points, got %d", len(points))
	}
	if points[0].Role != domain.RoleStart || points[0].Order != 0 {
		t.Errorf("expected start at order 0, got %s at %d", points[0].Role, points[0].Order)
	}
	if points[1].Role != domain.RoleDestination || points[1].Order != 1 {
		t.Errorf("expected destination at order 1, got %s at %d", points[1].Role, points[1].Order)
	}
}

func TestBuildPath_StopsBetween(t *testing.T) {
	trip := &domain.Trip{
		StartPlace:      place("Mumbai", 19.07, 72.87),
		MainDestination: place("Goa", 15.29, 74.12),
		RoutePlaces: []domain.RouteStop{
			{Place: place("Ratnagiri", 16.99, 73.31), Order: 2},
			{Place: place("Ganpatipule", 17.14, 73.26), Order: 1},
		},
	}

	points, err := usecases.BuildPath(trip)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(points))
	}
	// Stored order wins over slice order.
	want := []string{"Mumbai", "Ganpatipule", "Ratnagiri", "Goa"}
	for i, name := range want {
		if points[i].Name != name {
			t.Errorf("point %d: expected %s, got %s", i, name, points[i].Name)
		}
		if points[i].Order != i {
			t.Errorf("point %s: expected order %d, got %d", name, i, points[i].Order)
		}
	}
	if points[len(points)-1].Role != domain.RoleDestination {
		t.Error("last point must be the destination")
	}
}

func TestBuildPath_SkipsZeroCoordinates(t *testing.T) {
	trip := &domain.Trip{
		StartPlace:      domain.Place{Name: "Nowhere"},
		MainDestination: place("Goa", 15.29, 74.12),
		RoutePlaces: []domain.RouteStop{
			{Place: domain.Place{Name: "Phantom"}, Order: 1},
			{Place: place("Ratnagiri", 16.99, 73.31), Order: 2},
		},
	}

	points, err := usecases.BuildPath(trip)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	for _, p := range points {
		if p.Coordinate.IsZero() {
			t.Errorf("point %s has a zero coordinate", p.Name)
		}
	}
}

func TestBuildPath_Empty(t *testing.T) {
	_, err := usecases.BuildPath(&domain.Trip{})
	if !errors.Is(err, domain.ErrEmptyPath) {
		t.Fatalf("expected ErrEmptyPath, got %v", err)
	}
}
