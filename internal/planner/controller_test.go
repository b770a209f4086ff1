package planner_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dhruvjain/wayfarer/internal/core/domain"
	"github.com/dhruvjain/wayfarer/internal/planner"
)

type mockAPI struct {
	listFn   func(ctx context.Context) ([]domain.Trip, error)
	getFn    func(ctx context.Context, id int64) (*domain.Trip, error)
	createFn func(ctx context.Context, trip *domain.Trip) (*domain.Trip, error)
	updateFn func(ctx context.Context, trip *domain.Trip) (*domain.Trip, error)
	deleteFn func(ctx context.Context, id int64) error

	updates int
	creates int
	deletes int
}

func (m *mockAPI) ListTrips(ctx context.Context) ([]domain.Trip, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockAPI) GetTrip(ctx context.Context, id int64) (*domain.Trip, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, domain.ErrTripNotFound
}

func (m *mockAPI) CreateTrip(ctx context.Context, trip *domain.Trip) (*domain.Trip, error) {
	m.creates++
	if m.createFn != nil {
		return m.createFn(ctx, trip)
	}
	created := *trip
	created.ID = 1
	return &created, nil
}

func (m *mockAPI) UpdateTrip(ctx context.Context, trip *domain.Trip) (*domain.Trip, error) {
	m.updates++
	if m.updateFn != nil {
		return m.updateFn(ctx, trip)
	}
	updated := *trip
	return &updated, nil
}

func (m *mockAPI) DeleteTrip(ctx context.Context, id int64) error {
	m.deletes++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func savedTrip() *domain.Trip {
	return &domain.Trip{
		ID:    7,
		Title: "Basque Coast",
		Locations: []domain.Location{
			loc("Bilbao", 43.263, -2.935),
			loc("Donostia", 43.318, -1.981),
		},
	}
}

func newController(api *mockAPI) (*planner.Controller, *planner.Store, *planner.MapView) {
	store := planner.NewStore(nil)
	view := planner.NewMapView(nil)
	return planner.NewController(api, store, view, nil), store, view
}

func intoView(t *testing.T, c *planner.Controller, api *mockAPI) {
	t.Helper()
	api.getFn = func(ctx context.Context, id int64) (*domain.Trip, error) {
		return savedTrip(), nil
	}
	if err := c.SelectTrip(context.Background(), 7); err != nil {
		t.Fatal(err)
	}
}

func TestController_StartsInList(t *testing.T) {
	c, _, _ := newController(&mockAPI{})
	if c.Mode() != planner.ModeList {
		t.Errorf("initial mode = %s", c.Mode())
	}
}

func TestController_SelectTrip(t *testing.T) {
	api := &mockAPI{}
	c, store, view := newController(api)
	intoView(t, c, api)

	if c.Mode() != planner.ModeViewTrip {
		t.Errorf("mode = %s", c.Mode())
	}
	if store.Len() != 2 {
		t.Errorf("store not loaded from trip: len=%d", store.Len())
	}
	if sc := view.Scene(); len(sc.Markers) != 2 || sc.Path == nil {
		t.Errorf("map not rebuilt from trip: %+v", sc)
	}
	view.StopAnimation()
}

func TestController_EditCancelRevertsWorkingCopy(t *testing.T) {
	api := &mockAPI{}
	c, store, view := newController(api)
	intoView(t, c, api)

	if err := c.BeginEdit(); err != nil {
		t.Fatal(err)
	}
	if err := c.AddLocation(loc("Gernika", 43.315, -2.681)); err != nil {
		t.Fatal(err)
	}
	if err := c.RemoveLocation(0); err != nil {
		t.Fatal(err)
	}
	if store.Len() != 2 {
		t.Fatalf("working copy wrong: %v", names(store.Locations()))
	}

	if err := c.CancelEdit(); err != nil {
		t.Fatal(err)
	}
	if c.Mode() != planner.ModeViewTrip {
		t.Errorf("mode after cancel = %s", c.Mode())
	}
	if !equalNames(store.Locations(), "Bilbao", "Donostia") {
		t.Errorf("cancel did not revert: %v", names(store.Locations()))
	}
	view.StopAnimation()
}

func TestController_SaveEditBlockedWithoutLocations(t *testing.T) {
	api := &mockAPI{}
	c, store, view := newController(api)
	intoView(t, c, api)

	if err := c.BeginEdit(); err != nil {
		t.Fatal(err)
	}
	store.Clear()

	err := c.SaveEdit(context.Background(), "Basque Coast", "", nil, nil)
	if !domain.IsValidation(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
	if api.updates != 0 {
		t.Error("update request sent despite failed validation")
	}
	view.StopAnimation()
}

func TestController_SaveEditBlockedOnBadDates(t *testing.T) {
	api := &mockAPI{}
	c, _, view := newController(api)
	intoView(t, c, api)

	if err := c.BeginEdit(); err != nil {
		t.Fatal(err)
	}
	start, _ := domain.ParseDate("2024-05-10")
	end, _ := domain.ParseDate("2024-05-01")

	err := c.SaveEdit(context.Background(), "Basque Coast", "", &start, &end)
	if !domain.IsValidation(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
	if api.updates != 0 {
		t.Error("update request sent despite failed validation")
	}
	view.StopAnimation()
}

func TestController_SaveEditReconcilesFromServer(t *testing.T) {
	api := &mockAPI{}
	api.updateFn = func(ctx context.Context, trip *domain.Trip) (*domain.Trip, error) {
		updated := *trip
		updated.Description = "set by server"
		return &updated, nil
	}
	c, store, view := newController(api)
	intoView(t, c, api)

	if err := c.BeginEdit(); err != nil {
		t.Fatal(err)
	}
	if err := c.AddLocation(loc("Gernika", 43.315, -2.681)); err != nil {
		t.Fatal(err)
	}

	if err := c.SaveEdit(context.Background(), "Basque Coast", "", nil, nil); err != nil {
		t.Fatal(err)
	}
	if c.Mode() != planner.ModeViewTrip {
		t.Errorf("mode after save = %s", c.Mode())
	}
	if c.CurrentTrip().Description != "set by server" {
		t.Error("current trip not replaced by server response")
	}
	if !equalNames(store.Locations(), "Bilbao", "Donostia", "Gernika") {
		t.Errorf("store not reconciled: %v", names(store.Locations()))
	}
	view.StopAnimation()
}

func TestController_SaveInFlightGuard(t *testing.T) {
	api := &mockAPI{}
	c, _, view := newController(api)
	intoView(t, c, api)

	if err := c.BeginEdit(); err != nil {
		t.Fatal(err)
	}

	var reentrant error
	api.updateFn = func(ctx context.Context, trip *domain.Trip) (*domain.Trip, error) {
		reentrant = c.SaveEdit(ctx, "again", "", nil, nil)
		updated := *trip
		return &updated, nil
	}

	if err := c.SaveEdit(context.Background(), "Basque Coast", "", nil, nil); err != nil {
		t.Fatal(err)
	}
	if !errors.Is(reentrant, planner.ErrBusy) {
		t.Errorf("expected ErrBusy for overlapping save, got %v", reentrant)
	}
	if api.updates != 1 {
		t.Errorf("duplicate update issued: %d", api.updates)
	}
	view.StopAnimation()
}

func TestController_NewTripFlow(t *testing.T) {
	api := &mockAPI{}
	listCalls := 0
	api.listFn = func(ctx context.Context) ([]domain.Trip, error) {
		listCalls++
		return []domain.Trip{*savedTrip()}, nil
	}
	c, store, view := newController(api)

	if err := c.BeginNewTrip(); err != nil {
		t.Fatal(err)
	}
	if c.Mode() != planner.ModeNewTrip {
		t.Errorf("mode = %s", c.Mode())
	}
	if err := c.AddLocation(loc("Paris", 48.8566, 2.3522)); err != nil {
		t.Fatal(err)
	}

	if err := c.SaveNew(context.Background(), "Weekend", "", nil, nil); err != nil {
		t.Fatal(err)
	}
	if c.Mode() != planner.ModeList {
		t.Errorf("mode after create = %s", c.Mode())
	}
	if store.Len() != 0 {
		t.Error("store not cleared after create")
	}
	if listCalls != 1 {
		t.Errorf("trip list reloaded %d times, expected 1", listCalls)
	}
	if len(c.Trips()) != 1 {
		t.Errorf("trips = %d", len(c.Trips()))
	}
	view.StopAnimation()
}

func TestController_SaveNewRequiresTitle(t *testing.T) {
	api := &mockAPI{}
	c, _, view := newController(api)

	if err := c.BeginNewTrip(); err != nil {
		t.Fatal(err)
	}
	if err := c.AddLocation(loc("Paris", 48.8566, 2.3522)); err != nil {
		t.Fatal(err)
	}

	err := c.SaveNew(context.Background(), "  ", "", nil, nil)
	if !domain.IsValidation(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
	if api.creates != 0 {
		t.Error("create request sent despite failed validation")
	}
	view.StopAnimation()
}

func TestController_LocationDetailRoundTrip(t *testing.T) {
	api := &mockAPI{}
	c, _, view := newController(api)
	intoView(t, c, api)

	if err := c.ShowLocation(1); err != nil {
		t.Fatal(err)
	}
	if c.Mode() != planner.ModeLocationDetail {
		t.Errorf("mode = %s", c.Mode())
	}
	sc := view.Scene()
	if sc.Focus == nil || sc.Focus.Zoom != 14 {
		t.Errorf("detail scene not focused: %+v", sc)
	}
	if len(sc.Markers) != 1 || sc.Markers[0].Label != "Donostia" {
		t.Errorf("wrong marker focused: %+v", sc.Markers)
	}

	if err := c.Back(); err != nil {
		t.Fatal(err)
	}
	if c.Mode() != planner.ModeViewTrip {
		t.Errorf("mode after back = %s", c.Mode())
	}
	if sc := view.Scene(); len(sc.Markers) != 2 {
		t.Errorf("trip scene not restored: %+v", sc)
	}
	view.StopAnimation()
}

func TestController_ShowLocationRejectsBadIndex(t *testing.T) {
	api := &mockAPI{}
	c, _, view := newController(api)
	intoView(t, c, api)

	if err := c.ShowLocation(9); err == nil {
		t.Error("expected an error for out-of-bounds index")
	}
	if c.Mode() != planner.ModeViewTrip {
		t.Errorf("mode changed on failed transition: %s", c.Mode())
	}
	view.StopAnimation()
}

func TestController_DeleteReturnsToList(t *testing.T) {
	api := &mockAPI{}
	c, store, view := newController(api)
	intoView(t, c, api)

	if err := c.DeleteTrip(context.Background(), 7); err != nil {
		t.Fatal(err)
	}
	if c.Mode() != planner.ModeList {
		t.Errorf("mode after delete = %s", c.Mode())
	}
	if c.CurrentTrip() != nil {
		t.Error("deleted trip still current")
	}
	if store.Len() != 0 {
		t.Error("store not cleared after delete")
	}
	if api.deletes != 1 {
		t.Errorf("deletes = %d", api.deletes)
	}
	view.StopAnimation()
}

func TestController_FailedDeleteKeepsState(t *testing.T) {
	api := &mockAPI{}
	api.deleteFn = func(ctx context.Context, id int64) error {
		return errors.New("boom")
	}
	c, store, view := newController(api)
	intoView(t, c, api)

	if err := c.DeleteTrip(context.Background(), 7); err == nil {
		t.Fatal("expected an error")
	}
	if c.Mode() != planner.ModeViewTrip {
		t.Errorf("failed delete changed mode: %s", c.Mode())
	}
	if store.Len() != 2 {
		t.Error("failed delete mutated local state")
	}
	view.StopAnimation()
}

func TestController_GuardsTransitions(t *testing.T) {
	c, _, view := newController(&mockAPI{})

	if err := c.BeginEdit(); err == nil {
		t.Error("BeginEdit allowed from List")
	}
	if err := c.CancelEdit(); err == nil {
		t.Error("CancelEdit allowed from List")
	}
	if err := c.Back(); err == nil {
		t.Error("Back allowed from List")
	}
	if err := c.AddLocation(loc("A", 1, 1)); err == nil {
		t.Error("AddLocation allowed from List")
	}
	view.StopAnimation()
}
