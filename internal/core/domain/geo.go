package domain

// Coordinate represents a geographic coordinate (WGS 84).
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lng"`
}

// IsZero reports whether the coordinate was never resolved. (0,0) is open
// ocean off West Africa and never a real place in this application.
func (c Coordinate) IsZero() bool {
	return c.Lat == 0 && c.Lon == 0
}

// GeoLineString is an ordered sequence of coordinates, e.g. a road polyline
// returned by the routing service.
type GeoLineString struct {
	Coordinates []Coordinate `json:"coordinates"`
}

// PathRole marks a point's position within a materialized trip path.
type PathRole string

const (
	RoleStart       PathRole = "start"
	RoleStop        PathRole = "stop"
	RoleDestination PathRole = "destination"
)

// PathPoint is one renderable point of a trip path.
type PathPoint struct {
	Name       string     `json:"name"`
	Coordinate Coordinate `json:"coordinate"`
	Role       PathRole   `json:"role"`
	Order      int        `json:"order"`
}
