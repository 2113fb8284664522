package domain

import (
	"time"
)

// Category classifies a point of interest.
type Category string

const (
	CategoryRestaurant Category = "restaurant"
	CategoryTourism    Category = "tourism"
	CategoryPark       Category = "park"
	CategoryWaterfall  Category = "waterfall"
	CategoryCafe       Category = "cafe"
	CategoryHotel      Category = "hotel"
	CategoryTemple     Category = "temple"
	CategoryOther      Category = "other"
)

// TripType describes who is travelling.
type TripType string

const (
	TripSolo    TripType = "solo"
	TripCouple  TripType = "couple"
	TripFriends TripType = "friends"
	TripFamily  TripType = "family"
	TripGroup   TripType = "group"
)

// ValidTripType reports whether t is one of the known trip types.
func ValidTripType(t TripType) bool {
	switch t {
	case TripSolo, TripCouple, TripFriends, TripFamily, TripGroup:
		return true
	}
	return false
}

// Place is a named, categorized, geolocated point of interest.
type Place struct {
	Name       string     `json:"name"`
	Coordinate Coordinate `json:"coordinate"`
	Category   Category   `json:"category"`
	// DistanceKm is a computed display field, distance from some query origin.
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// RouteStop is one ordered waypoint in a trip's path. Order is 1-based,
// unique within a trip and gap-free after a save.
type RouteStop struct {
	Place
	Order                int     `json:"order"`
	DistanceFromOriginKm float64 `json:"distance_from_origin_km"`
}

// Member is a person travelling on a trip. No uniqueness is enforced.
type Member struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Trip is the aggregate root: identity, fixed start/destination, and the
// ordered route between them.
type Trip struct {
	ID              string      `json:"id"`
	TripName        string      `json:"trip_name"`
	TripType        TripType    `json:"trip_type"`
	StartDate       time.Time   `json:"start_date"`
	EndDate         time.Time   `json:"end_date"`
	TotalDays       int         `json:"total_days"`
	StartPlace      Place       `json:"start_place"`
	MainDestination Place       `json:"main_destination"`
	RoutePlaces     []RouteStop `json:"route_places"`
	Members         []Member    `json:"members,omitempty"`
	TotalDistanceKm *float64    `json:"total_distance_km,omitempty"`
	CreatedBy       string      `json:"created_by"`
	CreatedAt       time.Time   `json:"created_at"`
}

// InclusiveDays returns the day count between start and end, both ends
// counted: 2025-01-01 to 2025-01-05 is 5 days.
func InclusiveDays(start, end time.Time) int {
	s := start.UTC().Truncate(24 * time.Hour)
	e := end.UTC().Truncate(24 * time.Hour)
	return int(e.Sub(s).Hours()/24) + 1
}
