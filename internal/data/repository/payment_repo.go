package repository

import (
	"context"
	"fmt"

	"flight-booking/internal/data/entity"
	"flight-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByBookingID(ctx context.Context, bookingID int64) (*entity.Payment, error)
}

type paymentRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewPaymentRepository(db database.DBTX, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

// Create records a payment. A second payment for the same booking or a
// reused transaction id yields ErrDuplicate.
func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (booking_id, payment_method, card_number_last4, amount, status, transaction_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, payment_time
	`

	err := r.db.QueryRow(ctx, query,
		payment.BookingID,
		payment.PaymentMethod,
		payment.CardNumberLast4,
		payment.Amount,
		payment.Status,
		payment.TransactionID,
	).Scan(&payment.ID, &payment.PaymentTime)

	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.Int64("booking_id", payment.BookingID),
			zap.String("transaction_id", payment.TransactionID),
		)
		return fmt.Errorf("create payment for booking %d: %w", payment.BookingID, err)
	}

	return nil
}

func (r *paymentRepository) FindByBookingID(ctx context.Context, bookingID int64) (*entity.Payment, error) {
	query := `
		SELECT id, booking_id, payment_method, card_number_last4, amount, status, transaction_id, payment_time
		FROM payments
		WHERE booking_id = $1
	`

	var p entity.Payment
	err := r.db.QueryRow(ctx, query, bookingID).Scan(
		&p.ID,
		&p.BookingID,
		&p.PaymentMethod,
		&p.CardNumberLast4,
		&p.Amount,
		&p.Status,
		&p.TransactionID,
		&p.PaymentTime,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by booking ID",
			zap.Error(err),
			zap.Int64("booking_id", bookingID),
		)
		return nil, fmt.Errorf("find payment for booking %d: %w", bookingID, err)
	}

	return &p, nil
}
