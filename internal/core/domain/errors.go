package domain

import "errors"

// ErrInvalidLocation is returned when a location carries unparseable,
// non-finite, or out-of-range coordinates.
var ErrInvalidLocation = errors.New("invalid location coordinates")

// ErrTripNotFound is returned when a trip id does not exist.
var ErrTripNotFound = errors.New("trip not found")

// ValidationError describes input that fails a precondition check
// (missing title, empty itinerary, end date before start date).
// It is always raised before any network or database call is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
