package repository

import (
	"context"
	"fmt"

	"flight-booking/internal/data/entity"
	"flight-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	LockByID(ctx context.Context, id int64) (*entity.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status entity.BookingStatus) error

	FindDetailByID(ctx context.Context, id int64) (*entity.BookingDetail, error)
	FindDetailsByUserID(ctx context.Context, userID int64, limit, offset int) ([]*entity.BookingDetail, error)
	CountByUserID(ctx context.Context, userID int64) (int64, error)
}

type bookingRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewBookingRepository(db database.DBTX, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingDetailSelect = `
	SELECT b.id, b.user_id, b.flight_id, b.num_seats, b.total_price, b.status, b.booking_time,
	       f.id, f.flight_number, f.departure_airport_code, f.arrival_airport_code,
	       f.departure_time, f.arrival_time, f.price, f.total_seats, f.available_seats,
	       dep.airport_code, dep.name, dep.city, dep.country,
	       arr.airport_code, arr.name, arr.city, arr.country
	FROM bookings b
	JOIN flights f ON f.id = b.flight_id
	JOIN airports dep ON dep.airport_code = f.departure_airport_code
	JOIN airports arr ON arr.airport_code = f.arrival_airport_code
`

func scanBookingDetail(row rowScanner) (*entity.BookingDetail, error) {
	var b entity.BookingDetail
	dest := append([]any{
		&b.ID, &b.UserID, &b.FlightID, &b.NumSeats, &b.TotalPrice, &b.Status, &b.BookingTime,
	}, flightDetailDest(&b.Flight)...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a booking and fills in the generated ID and booking time.
func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (user_id, flight_id, num_seats, total_price, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, booking_time
	`

	err := r.db.QueryRow(ctx, query,
		booking.UserID,
		booking.FlightID,
		booking.NumSeats,
		booking.TotalPrice,
		booking.Status,
	).Scan(&booking.ID, &booking.BookingTime)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.Int64("user_id", booking.UserID),
			zap.Int64("flight_id", booking.FlightID),
		)
		return fmt.Errorf("create booking for flight %d: %w", booking.FlightID, err)
	}

	return nil
}

func (r *bookingRepository) LockByID(ctx context.Context, id int64) (*entity.Booking, error) {
	query := `
		SELECT id, user_id, flight_id, num_seats, total_price, status, booking_time
		FROM bookings
		WHERE id = $1
		FOR UPDATE
	`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.FlightID,
		&booking.NumSeats,
		&booking.TotalPrice,
		&booking.Status,
		&booking.BookingTime,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock booking",
			zap.Error(err),
			zap.Int64("booking_id", id),
		)
		return nil, fmt.Errorf("lock booking %d: %w", id, err)
	}

	return &booking, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int64, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.Int64("booking_id", id),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking status %d: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update booking status %d: %w", id, pgx.ErrNoRows)
	}

	return nil
}

func (r *bookingRepository) FindDetailByID(ctx context.Context, id int64) (*entity.BookingDetail, error) {
	query := bookingDetailSelect + ` WHERE b.id = $1`

	booking, err := scanBookingDetail(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.Int64("booking_id", id),
		)
		return nil, fmt.Errorf("find booking by ID %d: %w", id, err)
	}

	return booking, nil
}

// FindDetailsByUserID returns the user's bookings, newest first.
func (r *bookingRepository) FindDetailsByUserID(ctx context.Context, userID int64, limit, offset int) ([]*entity.BookingDetail, error) {
	query := bookingDetailSelect + `
		WHERE b.user_id = $1
		ORDER BY b.booking_time DESC, b.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by user ID %d: %w", userID, err)
	}
	defer rows.Close()

	bookings := []*entity.BookingDetail{}
	for rows.Next() {
		booking, err := scanBookingDetail(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return 0, fmt.Errorf("count bookings by user ID %d: %w", userID, err)
	}

	return count, nil
}
