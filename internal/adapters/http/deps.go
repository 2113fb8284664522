package http

import (
	"github.com/nats-io/nats.go"

	"github.com/planmytrip/backend/internal/adapters/postgres"
	"github.com/planmytrip/backend/internal/adapters/valkey"
	"github.com/planmytrip/backend/internal/core/ports"
	"github.com/planmytrip/backend/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Auth    *usecases.AuthService
	Planner *usecases.PlannerService
	Trips   *usecases.TripService
	Nearby  *usecases.NearbyService
	Drafts  *usecases.DraftService
	Router  ports.RoadRouter
	NATS    *nats.Conn
	DB      *postgres.DB
	Cache   *valkey.Cache
}
