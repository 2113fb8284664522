package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/planmytrip/backend/internal/core/domain"
)

// TripRepo implements ports.TripRepository with pgx. Trips are stored
// document-style: the places, route and members live in JSONB columns so
// every trip write stays a single-row operation.
type TripRepo struct {
	db *DB
}

// NewTripRepo creates a new TripRepo.
func NewTripRepo(db *DB) *TripRepo {
	return &TripRepo{db: db}
}

const tripColumns = `
	id, trip_name, trip_type, start_date, end_date, total_days,
	start_place, main_destination, route_places, members,
	total_distance_km, created_by, created_at`

// Create inserts a trip.
func (r *TripRepo) Create(ctx context.Context, t *domain.Trip) error {
	startPlace, err := json.Marshal(t.StartPlace)
	if err != nil {
		return fmt.Errorf("encode start place: %w", err)
	}
	mainDest, err := json.Marshal(t.MainDestination)
	if err != nil {
		return fmt.Errorf("encode destination: %w", err)
	}
	routePlaces, err := json.Marshal(nonNilStops(t.RoutePlaces))
	if err != nil {
		return fmt.Errorf("encode route places: %w", err)
	}
	members, err := json.Marshal(t.Members)
	if err != nil {
		return fmt.Errorf("encode members: %w", err)
	}

	_, err = r.db.Pool.Exec(ctx, `
		INSERT INTO trips (id, trip_name, trip_type, start_date, end_date, total_days,
		                   start_place, main_destination, route_places, members,
		                   total_distance_km, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, t.ID, t.TripName, string(t.TripType), t.StartDate, t.EndDate, t.TotalDays,
		startPlace, mainDest, routePlaces, members,
		t.TotalDistanceKm, t.CreatedBy, t.CreatedAt)
	return err
}

// GetByID returns a trip by id.
func (r *TripRepo) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE id = $1`, id)
	return scanTrip(row)
}

// GetLatest returns the most recently created trip system-wide.
func (r *TripRepo) GetLatest(ctx context.Context) (*domain.Trip, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+tripColumns+` FROM trips ORDER BY created_at DESC LIMIT 1`)
	return scanTrip(row)
}

// ListByOwner returns ownerID's trips, newest first.
func (r *TripRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Trip, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE created_by = $1 ORDER BY created_at DESC`,
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, *t)
	}
	return trips, rows.Err()
}

// UpdateRoute replaces route places and total distance for the trip
// matching (id, createdBy). Ownership is part of the predicate: a trip
// owned by someone else looks exactly like a missing one.
func (r *TripRepo) UpdateRoute(ctx context.Context, id, createdBy string, stops []domain.RouteStop, totalDistanceKm float64) (*domain.Trip, error) {
	routePlaces, err := json.Marshal(nonNilStops(stops))
	if err != nil {
		return nil, fmt.Errorf("encode route places: %w", err)
	}

	row := r.db.Pool.QueryRow(ctx, `
		UPDATE trips
		SET route_places = $1, total_distance_km = $2
		WHERE id = $3 AND created_by = $4
		RETURNING `+tripColumns,
		routePlaces, totalDistanceKm, id, createdBy)
	return scanTrip(row)
}

func nonNilStops(stops []domain.RouteStop) []domain.RouteStop {
	if stops == nil {
		return []domain.RouteStop{}
	}
	return stops
}

func scanTrip(row pgx.Row) (*domain.Trip, error) {
	var (
		t           domain.Trip
		tripType    string
		startPlace  []byte
		mainDest    []byte
		routePlaces []byte
		members     []byte
	)
	err := row.Scan(
		&t.ID, &t.TripName, &tripType, &t.StartDate, &t.EndDate, &t.TotalDays,
		&startPlace, &mainDest, &routePlaces, &members,
		&t.TotalDistanceKm, &t.CreatedBy, &t.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTripNotFound
	}
	if err != nil {
		return nil, err
	}

	t.TripType = domain.TripType(tripType)
	if err := json.Unmarshal(startPlace, &t.StartPlace); err != nil {
		return nil, fmt.Errorf("decode start place: %w", err)
	}
	if err := json.Unmarshal(mainDest, &t.MainDestination); err != nil {
		return nil, fmt.Errorf("decode destination: %w", err)
	}
	if err := json.Unmarshal(routePlaces, &t.RoutePlaces); err != nil {
		return nil, fmt.Errorf("decode route places: %w", err)
	}
	if len(members) > 0 {
		if err := json.Unmarshal(members, &t.Members); err != nil {
			return nil, fmt.Errorf("decode members: %w", err)
		}
	}
	return &t, nil
}
