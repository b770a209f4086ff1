package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dhruvjain/wayfarer/internal/core/domain"
)

// errorResponse is the wire shape for all failures: non-2xx responses
// carry {"error": string}.
type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func newError(c *fiber.Ctx, status int, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(errorResponse{
		Error:     message,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, 400, msg)
}

// errNotFound returns a 404 error.
func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, 404, msg)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, 500, msg)
}

// errFromDomain maps domain errors to HTTP statuses: validation and
// coordinate failures are the caller's fault, unknown trips are 404,
// everything else is a 500.
func errFromDomain(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return errBadRequest(c, verr.Reason)
	case errors.Is(err, domain.ErrInvalidLocation):
		return errBadRequest(c, err.Error())
	case errors.Is(err, domain.ErrTripNotFound):
		return errNotFound(c, "trip not found")
	default:
		return errInternal(c, err.Error())
	}
}
