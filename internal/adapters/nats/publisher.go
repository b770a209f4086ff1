package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/dhruvjain/wayfarer/internal/core/domain"
)

// Publisher implements ports.EventPublisher using NATS JetStream. Trip
// lifecycle events go to trips.created / trips.updated / trips.deleted.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// tripEvent is the wire shape of a trip lifecycle event.
type tripEvent struct {
	Event string       `json:"event"`
	TID   int64        `json:"trip_id"`
	Trip  *domain.Trip `json:"trip,omitempty"`
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
		Subjects:  []string{"trips.>"},
		Retention: nats.InterestPolicy,
		MaxAge:    24 * time.Hour,
		Storage:   nats.FileStorage,
	}
	if _, err := js.AddStream(&cfg); err != nil {
		// Stream may already exist, try update
		if _, err := js.UpdateStream(&cfg); err != nil {
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

func (p *Publisher) PublishTripCreated(ctx context.Context, trip *domain.Trip) error {
	return p.publish("trips.created", tripEvent{Event: "created", TID: trip.ID, Trip: trip})
}

func (p *Publisher) PublishTripUpdated(ctx context.Context, trip *domain.Trip) error {
	return p.publish("trips.updated", tripEvent{Event: "updated", TID: trip.ID, Trip: trip})
}

func (p *Publisher) PublishTripDeleted(ctx context.Context, id int64) error {
	return p.publish("trips.deleted", tripEvent{Event: "deleted", TID: id})
}

func (p *Publisher) publish(subject string, ev tripEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(subject, data)
	return err
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
