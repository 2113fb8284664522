package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/planmytrip/backend/internal/core/domain"
	"github.com/planmytrip/backend/internal/core/ports"
	"github.com/planmytrip/backend/internal/pkg/geo"
	"github.com/planmytrip/backend/internal/pkg/metrics"
)

// StopCandidate is one requested waypoint, by name. Category is optional;
// it defaults to other.
type StopCandidate struct {
	Name     string          `json:"name"`
	Category domain.Category `json:"category,omitempty"`
}

// AssembleRequest is the raw trip-planning input.
type AssembleRequest struct {
	TripName        string          `json:"trip_name"`
	TripType        domain.TripType `json:"trip_type"`
	StartingFrom    string          `json:"starting_from"`
	MainDestination string          `json:"main_destination"`
	StartDate       time.Time       `json:"start_date"`
	EndDate         time.Time       `json:"end_date"`
	Members         []domain.Member `json:"members,omitempty"`
	Places          []StopCandidate `json:"places,omitempty"`
}

// PlannerService assembles trip aggregates from raw requests: every place
// name is resolved to a coordinate, unresolvable candidate stops are
// reported back, and the start/destination must both resolve or the whole
// operation fails.
type PlannerService struct {
	geocoder ports.Geocoder
}

// NewPlannerService creates a new PlannerService.
func NewPlannerService(geocoder ports.Geocoder) *PlannerService {
	return &PlannerService{geocoder: geocoder}
}

// Assemble builds a Trip for ownerID from the request. The returned string
// slice lists candidate stop names that failed to resolve; those are a
// partial-failure report, not an error. Candidate stops are resolved
// strictly sequentially in input order so order assignment and the
// invalid-names list stay deterministic.
func (s *PlannerService) Assemble(ctx context.Context, ownerID string, req AssembleRequest) (*domain.Trip, []string, error) {
	if err := validateAssembleRequest(req); err != nil {
		return nil, nil, err
	}

	startCoord, err := s.geocoder.Resolve(ctx, strings.TrimSpace(req.StartingFrom))
	if err != nil {
		if err == domain.ErrPlaceNotFound {
			return nil, nil, &domain.InvalidPlaceError{Field: "start", Name: req.StartingFrom}
		}
		return nil, nil, err
	}

	destCoord, err := s.geocoder.Resolve(ctx, strings.TrimSpace(req.MainDestination))
	if err != nil {
		if err == domain.ErrPlaceNotFound {
			return nil, nil, &domain.InvalidPlaceError{Field: "destination", Name: req.MainDestination}
		}
		return nil, nil, err
	}

	var (
		stops        []domain.RouteStop
		invalidNames []string
		order        = 1
	)
	for _, cand := range req.Places {
		name := strings.TrimSpace(cand.Name)
		if name == "" {
			invalidNames = append(invalidNames, cand.Name)
			continue
		}

		coord, err := s.geocoder.Resolve(ctx, name)
		if err == domain.ErrPlaceNotFound {
			// Does not consume an order slot: orders stay gap-free.
			invalidNames = append(invalidNames, cand.Name)
			metrics.InvalidStopNames.Inc()
			continue
		}
		if err != nil {
			// Infrastructure failure aborts the whole operation; nothing
			// is silently dropped.
			return nil, nil, err
		}

		category := cand.Category
		if category == "" {
			category = domain.CategoryOther
		}
		stops = append(stops, domain.RouteStop{
			Place: domain.Place{
				Name:       name,
				Coordinate: coord,
				Category:   category,
			},
			Order:                order,
			DistanceFromOriginKm: geo.RoundKm(geo.DistanceKm(startCoord, coord)),
		})
		order++
	}

	trip := &domain.Trip{
		TripName:  strings.TrimSpace(req.TripName),
		TripType:  req.TripType,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		TotalDays: domain.InclusiveDays(req.StartDate, req.EndDate),
		StartPlace: domain.Place{
			Name:       strings.TrimSpace(req.StartingFrom),
			Coordinate: startCoord,
			Category:   domain.CategoryOther,
		},
		MainDestination: domain.Place{
			Name:       strings.TrimSpace(req.MainDestination),
			Coordinate: destCoord,
			Category:   domain.CategoryOther,
		},
		RoutePlaces: stops,
		Members:     req.Members,
		CreatedBy:   ownerID,
	}
	return trip, invalidNames, nil
}

func validateAssembleRequest(req AssembleRequest) error {
	if strings.TrimSpace(req.TripName) == "" {
		return domain.NewValidationError("trip_name", "required")
	}
	if !domain.ValidTripType(req.TripType) {
		return domain.NewValidationError("trip_type", "must be one of solo, couple, friends, family, group")
	}
	if strings.TrimSpace(req.StartingFrom) == "" {
		return domain.NewValidationError("starting_from", "required")
	}
	if strings.TrimSpace(req.MainDestination) == "" {
		return domain.NewValidationError("main_destination", "required")
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return domain.NewValidationError("dates", "start_date and end_date are required")
	}
	if req.EndDate.Before(req.StartDate) {
		return domain.NewValidationError("end_date", "must not be before start_date")
	}
	return nil
}
