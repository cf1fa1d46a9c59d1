package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const tripColumns = "id, destination, summary, travel_date, images, registered_at"

// Trips provides access to persisted trip records.
type Trips struct {
	db *sql.DB
}

// NewTrips creates a trip store over the database handle.
func NewTrips(db *sql.DB) *Trips {
	return &Trips{db: db}
}

// Create inserts a new trip.
func (s *Trips) Create(ctx context.Context, trip *Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.NewString()
	}
	if trip.RegisteredAt.IsZero() {
		trip.RegisteredAt = time.Now().UTC()
	}

	images, err := json.Marshal(trip.Images)
	if err != nil {
		return fmt.Errorf("failed to encode images: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO trips (`+tripColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, trip.ID, trip.Destination, trip.Summary, trip.TravelDate, string(images), trip.RegisteredAt)
	if err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}
	return nil
}

// FindByID returns the trip with the given id, or ErrNotFound.
func (s *Trips) FindByID(ctx context.Context, id string) (*Trip, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+tripColumns+" FROM trips WHERE id = $1", id)
	trip, err := scanTrip(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query trip: %w", err)
	}
	return trip, nil
}

// List returns all trips ordered by registration time.
func (s *Trips) List(ctx context.Context) ([]Trip, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+tripColumns+" FROM trips ORDER BY registered_at")
	if err != nil {
		return nil, fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	var trips []Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, *trip)
	}
	return trips, rows.Err()
}

// Count returns the number of trip records.
func (s *Trips) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM trips").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count trips: %w", err)
	}
	return count, nil
}

// Update overwrites the mutable fields of an existing trip.
func (s *Trips) Update(ctx context.Context, trip *Trip) error {
	images, err := json.Marshal(trip.Images)
	if err != nil {
		return fmt.Errorf("failed to encode images: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE trips
		SET destination = $1, summary = $2, travel_date = $3, images = $4
		WHERE id = $5
	`, trip.Destination, trip.Summary, trip.TravelDate, string(images), trip.ID)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	return requireRowAffected(result)
}

// Delete removes a trip record.
func (s *Trips) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM trips WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	return requireRowAffected(result)
}

func scanTrip(scanner interface {
	Scan(dest ...interface{}) error
}) (*Trip, error) {
	var trip Trip
	var imagesJSON string

	err := scanner.Scan(
		&trip.ID,
		&trip.Destination,
		&trip.Summary,
		&trip.TravelDate,
		&imagesJSON,
		&trip.RegisteredAt,
	)
	if err != nil {
		return nil, err
	}

	trip.Images = []string{}
	if imagesJSON != "" {
		if err := json.Unmarshal([]byte(imagesJSON), &trip.Images); err != nil {
			trip.Images = []string{}
		}
	}
	return &trip, nil
}
