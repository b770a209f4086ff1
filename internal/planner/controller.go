package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dhruvjain/wayfarer/internal/core/domain"
)

// Mode is the screen currently visible. Exactly one is active at a time
// and only the Controller transitions it.
type Mode int

const (
	ModeList Mode = iota
	ModeViewTrip
	ModeEditTrip
	ModeNewTrip
	ModeLocationDetail
)

func (m Mode) String() string {
	switch m {
	case ModeList:
		return "list"
	case ModeViewTrip:
		return "view_trip"
	case ModeEditTrip:
		return "edit_trip"
	case ModeNewTrip:
		return "new_trip"
	case ModeLocationDetail:
		return "location_detail"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ErrBusy is returned when a save or delete is already in flight.
var ErrBusy = errors.New("operation already in flight")

// TripAPI is the persistence surface the controller drives. Implemented
// by client.Client.
type TripAPI interface {
	ListTrips(ctx context.Context) ([]domain.Trip, error)
	GetTrip(ctx context.Context, id int64) (*domain.Trip, error)
	CreateTrip(ctx context.Context, trip *domain.Trip) (*domain.Trip, error)
	UpdateTrip(ctx context.Context, trip *domain.Trip) (*domain.Trip, error)
	DeleteTrip(ctx context.Context, id int64) error
}

// Controller owns the view mode and coordinates the store, the map view,
// and the persistence client. The store, the current trip, and the server
// are three copies of the same data; the store is reset from server
// responses after every successful write.
type Controller struct {
	api   TripAPI
	store *Store
	view  *MapView
	log   *slog.Logger

	mode    Mode
	trips   []domain.Trip
	current *domain.Trip
	saved   []domain.Location

	saving   bool
	deleting bool
}

// NewController starts in List mode and wires the store to the map view:
// every store mutation rebuilds the scene.
func NewController(api TripAPI, store *Store, view *MapView, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{api: api, store: store, view: view, log: logger, mode: ModeList}
	store.Subscribe(func() {
		// LocationDetail shows a focus scene; the store is not mutated
		// there, so rebuilding would only clobber the focus.
		if c.mode != ModeLocationDetail {
			view.Render(store.Locations())
		}
	})
	return c
}

// Mode returns the active screen.
func (c *Controller) Mode() Mode { return c.mode }

// CurrentTrip returns the selected trip, or nil in List/NewTrip modes.
func (c *Controller) CurrentTrip() *domain.Trip { return c.current }

// Trips returns the last loaded trip list.
func (c *Controller) Trips() []domain.Trip { return c.trips }

// Refresh reloads the trip list from the server.
func (c *Controller) Refresh(ctx context.Context) error {
	trips, err := c.api.ListTrips(ctx)
	if err != nil {
		return fmt.Errorf("load trips: %w", err)
	}
	c.trips = trips
	return nil
}

// SelectTrip loads a trip and enters ViewTrip mode.
func (c *Controller) SelectTrip(ctx context.Context, id int64) error {
	trip, err := c.api.GetTrip(ctx, id)
	if err != nil {
		return fmt.Errorf("load trip %d: %w", id, err)
	}
	c.current = trip
	c.mode = ModeViewTrip
	c.store.SetAll(trip.Locations)
	return nil
}

// BeginEdit enters EditTrip mode, keeping a snapshot of the last-saved
// locations so cancel can revert the working copy.
func (c *Controller) BeginEdit() error {
	if c.mode != ModeViewTrip || c.current == nil {
		return fmt.Errorf("cannot edit from %s", c.mode)
	}
	c.saved = c.store.Locations()
	c.mode = ModeEditTrip
	return nil
}

// CancelEdit discards the working copy and returns to ViewTrip.
func (c *Controller) CancelEdit() error {
	if c.mode != ModeEditTrip {
		return fmt.Errorf("cannot cancel edit from %s", c.mode)
	}
	c.view.StopAnimation()
	c.mode = ModeViewTrip
	c.store.SetAll(c.saved)
	return nil
}

// SaveEdit validates the working copy, persists it, and returns to
// ViewTrip with the server's version of the trip. Validation failures
// surface before any request is sent.
func (c *Controller) SaveEdit(ctx context.Context, title, description string, start, end *domain.Date) error {
	if c.mode != ModeEditTrip || c.current == nil {
		return fmt.Errorf("cannot save from %s", c.mode)
	}
	if c.saving {
		return ErrBusy
	}

	trip := &domain.Trip{
		ID:          c.current.ID,
		Title:       title,
		Description: description,
		StartDate:   start,
		EndDate:     end,
		Locations:   c.store.Locations(),
	}
	if err := trip.Validate(); err != nil {
		return err
	}

	c.saving = true
	defer func() { c.saving = false }()

	updated, err := c.api.UpdateTrip(ctx, trip)
	if err != nil {
		return fmt.Errorf("save trip %d: %w", trip.ID, err)
	}

	c.view.StopAnimation()
	c.current = updated
	c.saved = nil
	c.mode = ModeViewTrip
	c.store.SetAll(updated.Locations)
	return nil
}

// ShowLocation focuses one itinerary stop, addressed by its current
// index in the store.
func (c *Controller) ShowLocation(index int) error {
	if c.mode != ModeViewTrip {
		return fmt.Errorf("cannot show location from %s", c.mode)
	}
	loc, ok := c.store.At(index)
	if !ok {
		return fmt.Errorf("no location at index %d", index)
	}
	c.mode = ModeLocationDetail
	c.view.Focus(loc)
	return nil
}

// Back leaves LocationDetail and restores the trip scene.
func (c *Controller) Back() error {
	if c.mode != ModeLocationDetail {
		return fmt.Errorf("cannot go back from %s", c.mode)
	}
	c.view.StopAnimation()
	c.mode = ModeViewTrip
	c.view.Render(c.store.Locations())
	return nil
}

// BeginNewTrip clears the store and enters NewTrip mode.
func (c *Controller) BeginNewTrip() error {
	if c.mode != ModeList {
		return fmt.Errorf("cannot start a new trip from %s", c.mode)
	}
	c.current = nil
	c.mode = ModeNewTrip
	c.store.Clear()
	return nil
}

// SaveNew validates and creates the composed trip, then returns to List
// with a fresh trip list.
func (c *Controller) SaveNew(ctx context.Context, title, description string, start, end *domain.Date) error {
	if c.mode != ModeNewTrip {
		return fmt.Errorf("cannot create from %s", c.mode)
	}
	if c.saving {
		return ErrBusy
	}

	trip := &domain.Trip{
		Title:       title,
		Description: description,
		StartDate:   start,
		EndDate:     end,
		Locations:   c.store.Locations(),
	}
	if err := trip.Validate(); err != nil {
		return err
	}

	c.saving = true
	defer func() { c.saving = false }()

	if _, err := c.api.CreateTrip(ctx, trip); err != nil {
		return fmt.Errorf("create trip: %w", err)
	}

	c.view.StopAnimation()
	c.mode = ModeList
	c.store.Clear()
	if err := c.Refresh(ctx); err != nil {
		c.log.Warn("reload after create failed", "error", err)
	}
	return nil
}

// CancelNew abandons the composed trip and returns to List.
func (c *Controller) CancelNew() error {
	if c.mode != ModeNewTrip {
		return fmt.Errorf("cannot cancel from %s", c.mode)
	}
	c.view.StopAnimation()
	c.mode = ModeList
	c.store.Clear()
	return nil
}

// DeleteTrip deletes a trip from any mode and returns to List. The caller
// is responsible for confirming with the user first.
func (c *Controller) DeleteTrip(ctx context.Context, id int64) error {
	if c.deleting {
		return ErrBusy
	}
	c.deleting = true
	defer func() { c.deleting = false }()

	if err := c.api.DeleteTrip(ctx, id); err != nil {
		return fmt.Errorf("delete trip %d: %w", id, err)
	}

	c.view.StopAnimation()
	if c.current != nil && c.current.ID == id {
		c.current = nil
	}
	c.saved = nil
	c.mode = ModeList
	c.store.Clear()
	if err := c.Refresh(ctx); err != nil {
		c.log.Warn("reload after delete failed", "error", err)
	}
	return nil
}

// AddLocation appends a stop to the working itinerary.
func (c *Controller) AddLocation(loc domain.Location) error {
	if c.mode != ModeEditTrip && c.mode != ModeNewTrip {
		return fmt.Errorf("cannot add a location from %s", c.mode)
	}
	return c.store.Add(loc)
}

// RemoveLocation removes the stop at the given current index.
func (c *Controller) RemoveLocation(index int) error {
	if c.mode != ModeEditTrip && c.mode != ModeNewTrip {
		return fmt.Errorf("cannot remove a location from %s", c.mode)
	}
	c.store.RemoveAt(index)
	return nil
}

// MoveLocation reorders the working itinerary by current indices.
func (c *Controller) MoveLocation(oldIndex, newIndex int) error {
	if c.mode != ModeEditTrip && c.mode != ModeNewTrip {
		return fmt.Errorf("cannot reorder from %s", c.mode)
	}
	c.store.Move(oldIndex, newIndex)
	return nil
}
