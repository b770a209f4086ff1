package http

import (
	"github.com/nats-io/nats.go"

	"github.com/dhruvjain/wayfarer/internal/adapters/postgres"
	"github.com/dhruvjain/wayfarer/internal/adapters/valkey"
	"github.com/dhruvjain/wayfarer/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Trips  *usecases.TripService
	Search *usecases.SearchService
	NATS   *nats.Conn
	DB     *postgres.DB
	Cache  *valkey.Cache
}
