package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/planmytrip/backend/internal/core/domain"
)

// SubjectTripEvents is the subject space carrying trip lifecycle events.
// WebSocket clients and future consumers subscribe under trips.>.
const SubjectTripEvents = "trips.>"

// Publisher implements ports.EventPublisher using NATS JetStream. Trip
// events are informational fan-out, so the stream keeps them for a day
// under interest retention.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and ensures the trip event stream exists.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	cfg := nats.StreamConfig{
		Name:      "TRIP_EVENTS",
		Subjects:  []string{SubjectTripEvents},
		Retention: nats.InterestPolicy,
		MaxAge:    24 * time.Hour,
		Storage:   nats.FileStorage,
	}
	if _, err := js.AddStream(&cfg); err != nil {
		// Stream may already exist; reconcile the config instead.
		if _, err := js.UpdateStream(&cfg); err != nil {
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

// TripEvent is the wire shape for trip lifecycle notifications.
type TripEvent struct {
	Event     string    `json:"event"`
	TripID    string    `json:"trip_id"`
	TripName  string    `json:"trip_name"`
	CreatedBy string    `json:"created_by"`
	At        time.Time `json:"at"`
}

// PublishTripCreated announces a newly planned trip.
func (p *Publisher) PublishTripCreated(ctx context.Context, trip *domain.Trip) error {
	return p.publish("trips.created."+trip.ID, TripEvent{
		Event:     "trip.created",
		TripID:    trip.ID,
		TripName:  trip.TripName,
		CreatedBy: trip.CreatedBy,
		At:        time.Now().UTC(),
	})
}

// PublishRouteSaved announces a finalized route for an existing trip.
func (p *Publisher) PublishRouteSaved(ctx context.Context, trip *domain.Trip) error {
	return p.publish("trips.route_saved."+trip.ID, TripEvent{
		Event:     "trip.route_saved",
		TripID:    trip.ID,
		TripName:  trip.TripName,
		CreatedBy: trip.CreatedBy,
		At:        time.Now().UTC(),
	})
}

func (p *Publisher) publish(subject string, ev TripEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(subject, data)
	return err
}

// IsConnected reports connection state, used by the readiness probe.
func (p *Publisher) IsConnected() bool {
	return p.conn != nil && p.conn.IsConnected()
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. the
// WebSocket relay, which reads events without JetStream semantics).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
