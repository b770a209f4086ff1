package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/dhruvjain/wayfarer/internal/core/domain"
	"github.com/dhruvjain/wayfarer/internal/pkg/geospatial"
	"github.com/dhruvjain/wayfarer/internal/pkg/metrics"
)

// tripResponse wraps a single trip and adds the total itinerary length.
type tripResponse struct {
	Trip       *domain.Trip `json:"trip"`
	DistanceKm float64      `json:"distance_km,omitempty"`
}

func wrapTrip(trip *domain.Trip) tripResponse {
	return tripResponse{
		Trip:       trip,
		DistanceKm: geospatial.PathLengthKm(trip.Points()),
	}
}

// ListTripsHandler returns all trips, newest first.
func ListTripsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		trips, err := deps.Trips.List(c.Context())
		if err != nil {
			return errFromDomain(c, err)
		}
		if trips == nil {
			trips = []domain.Trip{}
		}
		return c.JSON(fiber.Map{"trips": trips})
	}
}

// CreateTripHandler validates and stores a new trip.
func CreateTripHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var trip domain.Trip
		if err := c.BodyParser(&trip); err != nil {
			return errBadRequest(c, "invalid request body: "+err.Error())
		}
		trip.ID = 0

		if err := deps.Trips.Create(c.Context(), &trip); err != nil {
			return errFromDomain(c, err)
		}
		metrics.TripsCreated.Inc()
		return c.Status(201).JSON(wrapTrip(&trip))
	}
}

// GetTripHandler returns a single trip by ID.
func GetTripHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseTripID(c)
		if err != nil {
			return errBadRequest(c, "trip id must be an integer")
		}
		trip, err := deps.Trips.GetByID(c.Context(), id)
		if err != nil {
			return errFromDomain(c, err)
		}
		c.Set("Cache-Control", "public, max-age=60")
		return c.JSON(wrapTrip(trip))
	}
}

// UpdateTripHandler replaces a trip, locations included. Location order
// on the wire is visit order.
func UpdateTripHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseTripID(c)
		if err != nil {
			return errBadRequest(c, "trip id must be an integer")
		}

		var trip domain.Trip
		if err := c.BodyParser(&trip); err != nil {
			return errBadRequest(c, "invalid request body: "+err.Error())
		}
		trip.ID = id

		if err := deps.Trips.Update(c.Context(), &trip); err != nil {
			return errFromDomain(c, err)
		}
		metrics.TripsUpdated.Inc()
		return c.JSON(wrapTrip(&trip))
	}
}

// DeleteTripHandler removes a trip.
func DeleteTripHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseTripID(c)
		if err != nil {
			return errBadRequest(c, "trip id must be an integer")
		}
		if err := deps.Trips.Delete(c.Context(), id); err != nil {
			return errFromDomain(c, err)
		}
		metrics.TripsDeleted.Inc()
		return c.JSON(fiber.Map{"message": "trip deleted"})
	}
}

// SearchHandler geocodes a free-text query.
func SearchHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := c.Query("q")
		if query == "" {
			return errBadRequest(c, "q query parameter is required")
		}
		if len(query) > 200 {
			return errBadRequest(c, "query too long (max 200 characters)")
		}
		limit := c.QueryInt("limit", 5)

		locs, err := deps.Search.Search(c.Context(), query, limit)
		if err != nil {
			metrics.GeocodeRequests.WithLabelValues("error").Inc()
			return errFromDomain(c, err)
		}
		metrics.GeocodeRequests.WithLabelValues("ok").Inc()
		if locs == nil {
			locs = []domain.Location{}
		}

		c.Set("Cache-Control", "public, max-age=300")
		return c.JSON(fiber.Map{"locations": locs})
	}
}

func parseTripID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}
