package repository

import (
	"context"
	"fmt"
	"time"

	"flight-booking/internal/data/entity"
	"flight-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// FlightSearch selects flights on a route departing within [DepartFrom, DepartTo).
type FlightSearch struct {
	Origin      string
	Destination string
	DepartFrom  time.Time
	DepartTo    time.Time
}

type FlightRepository interface {
	Search(ctx context.Context, filter FlightSearch) ([]*entity.FlightDetail, error)
	FindDetailByID(ctx context.Context, id int64) (*entity.FlightDetail, error)

	// Transactional inventory operations. LockByID takes a row lock that is
	// held until the surrounding transaction ends.
	LockByID(ctx context.Context, id int64) (*entity.Flight, error)
	ReserveSeats(ctx context.Context, id int64, n int) (bool, error)
	ReleaseSeats(ctx context.Context, id int64, n int) (bool, error)
}

type flightRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewFlightRepository(db database.DBTX, log *zap.Logger) FlightRepository {
	return &flightRepository{
		db:  db,
		log: log.With(zap.String("repository", "flight")),
	}
}

const flightDetailSelect = `
	SELECT f.id, f.flight_number, f.departure_airport_code, f.arrival_airport_code,
	       f.departure_time, f.arrival_time, f.price, f.total_seats, f.available_seats,
	       dep.airport_code, dep.name, dep.city, dep.country,
	       arr.airport_code, arr.name, arr.city, arr.country
	FROM flights f
	JOIN airports dep ON dep.airport_code = f.departure_airport_code
	JOIN airports arr ON arr.airport_code = f.arrival_airport_code
`

type rowScanner interface {
	Scan(dest ...any) error
}

func flightDetailDest(f *entity.FlightDetail) []any {
	return []any{
		&f.ID, &f.FlightNumber, &f.DepartureAirportCode, &f.ArrivalAirportCode,
		&f.DepartureTime, &f.ArrivalTime, &f.Price, &f.TotalSeats, &f.AvailableSeats,
		&f.DepartureAirport.Code, &f.DepartureAirport.Name, &f.DepartureAirport.City, &f.DepartureAirport.Country,
		&f.ArrivalAirport.Code, &f.ArrivalAirport.Name, &f.ArrivalAirport.City, &f.ArrivalAirport.Country,
	}
}

func scanFlightDetail(row rowScanner) (*entity.FlightDetail, error) {
	var f entity.FlightDetail
	if err := row.Scan(flightDetailDest(&f)...); err != nil {
		return nil, err
	}
	return &f, nil
}

// Search returns bookable flights (at least one free seat) ordered by departure.
func (r *flightRepository) Search(ctx context.Context, filter FlightSearch) ([]*entity.FlightDetail, error) {
	query := flightDetailSelect + `
		WHERE f.departure_airport_code = $1
		  AND f.arrival_airport_code = $2
		  AND f.departure_time >= $3
		  AND f.departure_time < $4
		  AND f.available_seats > 0
		ORDER BY f.departure_time
	`

	rows, err := r.db.Query(ctx, query, filter.Origin, filter.Destination, filter.DepartFrom, filter.DepartTo)
	if err != nil {
		r.log.Error("Failed to search flights",
			zap.Error(err),
			zap.String("from", filter.Origin),
			zap.String("to", filter.Destination),
		)
		return nil, fmt.Errorf("search flights %s-%s: %w", filter.Origin, filter.Destination, err)
	}
	defer rows.Close()

	flights := []*entity.FlightDetail{}
	for rows.Next() {
		f, err := scanFlightDetail(rows)
		if err != nil {
			r.log.Error("Failed to scan flight row", zap.Error(err))
			return nil, fmt.Errorf("scan flight row: %w", err)
		}
		flights = append(flights, f)
	}

	return flights, rows.Err()
}

func (r *flightRepository) FindDetailByID(ctx context.Context, id int64) (*entity.FlightDetail, error) {
	query := flightDetailSelect + ` WHERE f.id = $1`

	f, err := scanFlightDetail(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find flight", zap.Error(err), zap.Int64("flight_id", id))
		return nil, fmt.Errorf("find flight %d: %w", id, err)
	}

	return f, nil
}

func (r *flightRepository) LockByID(ctx context.Context, id int64) (*entity.Flight, error) {
	query := `
		SELECT id, flight_number, departure_airport_code, arrival_airport_code,
		       departure_time, arrival_time, price, total_seats, available_seats
		FROM flights
		WHERE id = $1
		FOR UPDATE
	`

	var f entity.Flight
	err := r.db.QueryRow(ctx, query, id).Scan(
		&f.ID,
		&f.FlightNumber,
		&f.DepartureAirportCode,
		&f.ArrivalAirportCode,
		&f.DepartureTime,
		&f.ArrivalTime,
		&f.Price,
		&f.TotalSeats,
		&f.AvailableSeats,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock flight", zap.Error(err), zap.Int64("flight_id", id))
		return nil, fmt.Errorf("lock flight %d: %w", id, err)
	}

	return &f, nil
}

// ReserveSeats decrements available seats by n. It reports false, without
// changing anything, when fewer than n seats are left or the flight is gone.
func (r *flightRepository) ReserveSeats(ctx context.Context, id int64, n int) (bool, error) {
	query := `
		UPDATE flights
		SET available_seats = available_seats - $2
		WHERE id = $1 AND available_seats >= $2
	`

	tag, err := r.db.Exec(ctx, query, id, n)
	if err != nil {
		r.log.Error("Failed to reserve seats",
			zap.Error(err),
			zap.Int64("flight_id", id),
			zap.Int("seats", n),
		)
		return false, fmt.Errorf("reserve %d seats on flight %d: %w", n, id, err)
	}

	return tag.RowsAffected() == 1, nil
}

// ReleaseSeats gives n seats back, never exceeding total_seats. It reports
// false when the flight no longer exists.
func (r *flightRepository) ReleaseSeats(ctx context.Context, id int64, n int) (bool, error) {
	query := `
		UPDATE flights
		SET available_seats = LEAST(total_seats, available_seats + $2)
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, n)
	if err != nil {
		r.log.Error("Failed to release seats",
			zap.Error(err),
			zap.Int64("flight_id", id),
			zap.Int("seats", n),
		)
		return false, fmt.Errorf("release %d seats on flight %d: %w", n, id, err)
	}

	return tag.RowsAffected() == 1, nil
}
