package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dhruvjain/wayfarer/internal/core/domain"
)

// TripRepo implements ports.TripRepository. Locations live in their own
// table, keyed by trip and a position column that is the visit order.
type TripRepo struct {
	db *DB
}

func NewTripRepo(db *DB) *TripRepo {
	return &TripRepo{db: db}
}

// List returns all trips with their locations, newest trip first.
func (r *TripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, title, COALESCE(description, ''), start_date, end_date, created_at
		FROM trips
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		var t domain.Trip
		if err := scanTrip(rows, &t); err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range trips {
		locs, err := r.loadLocations(ctx, trips[i].ID)
		if err != nil {
			return nil, err
		}
		trips[i].Locations = locs
	}
	return trips, nil
}

// GetByID returns one trip with its locations in visit order.
func (r *TripRepo) GetByID(ctx context.Context, id int64) (*domain.Trip, error) {
	var t domain.Trip
	row := r.db.Pool.QueryRow(ctx, `
		SELECT id, title, COALESCE(description, ''), start_date, end_date, created_at
		FROM trips WHERE id = $1
	`, id)
	if err := scanTrip(row, &t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTripNotFound
		}
		return nil, fmt.Errorf("get trip %d: %w", id, err)
	}

	locs, err := r.loadLocations(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Locations = locs
	return &t, nil
}

// Create inserts the trip row and its locations in one transaction,
// filling in the assigned ID and creation time.
func (r *TripRepo) Create(ctx context.Context, trip *domain.Trip) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO trips (title, description, start_date, end_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, trip.Title, trip.Description, dateArg(trip.StartDate), dateArg(trip.EndDate)).
		Scan(&trip.ID, &trip.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert trip: %w", err)
	}

	if err := insertLocations(ctx, tx, trip.ID, trip.Locations); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Update replaces the trip row and all its locations. Locations are
// deleted and reinserted so the position column always matches the
// request's array order.
func (r *TripRepo) Update(ctx context.Context, trip *domain.Trip) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE trips
		SET title = $2, description = $3, start_date = $4, end_date = $5
		WHERE id = $1
	`, trip.ID, trip.Title, trip.Description, dateArg(trip.StartDate), dateArg(trip.EndDate))
	if err != nil {
		return fmt.Errorf("update trip %d: %w", trip.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTripNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM locations WHERE trip_id = $1`, trip.ID); err != nil {
		return fmt.Errorf("clear locations: %w", err)
	}
	if err := insertLocations(ctx, tx, trip.ID, trip.Locations); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Delete removes a trip; locations go with it via ON DELETE CASCADE.
func (r *TripRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete trip %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTripNotFound
	}
	return nil
}

func (r *TripRepo) loadLocations(ctx context.Context, tripID int64) ([]domain.Location, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT name, COALESCE(display_name, ''), latitude, longitude
		FROM locations
		WHERE trip_id = $1
		ORDER BY position
	`, tripID)
	if err != nil {
		return nil, fmt.Errorf("load locations for trip %d: %w", tripID, err)
	}
	defer rows.Close()

	var locs []domain.Location
	for rows.Next() {
		var l domain.Location
		if err := rows.Scan(&l.Name, &l.DisplayName, &l.Latitude, &l.Longitude); err != nil {
			return nil, err
		}
		locs = append(locs, l)
	}
	return locs, rows.Err()
}

func insertLocations(ctx context.Context, tx pgx.Tx, tripID int64, locs []domain.Location) error {
	for i, loc := range locs {
		_, err := tx.Exec(ctx, `
			INSERT INTO locations (trip_id, position, name, display_name, latitude, longitude)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, tripID, i, loc.Name, loc.DisplayName, loc.Latitude, loc.Longitude)
		if err != nil {
			return fmt.Errorf("insert location %d: %w", i, err)
		}
	}
	return nil
}

func scanTrip(row pgx.Row, t *domain.Trip) error {
	var start, end *time.Time
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &start, &end, &t.CreatedAt); err != nil {
		return err
	}
	if start != nil {
		t.StartDate = &domain.Date{Time: *start}
	}
	if end != nil {
		t.EndDate = &domain.Date{Time: *end}
	}
	return nil
}

func dateArg(d *domain.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}
