package repository

import (
	"context"

	"flight-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// TxRepository groups the repositories that take part in a booking or
// payment transaction. Every call goes through the same open transaction.
type TxRepository struct {
	Flight  FlightRepository
	Booking BookingRepository
	Payment PaymentRepository
}

// TxManager runs fn inside one store transaction. A non-nil error from fn
// rolls the transaction back.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(tx *TxRepository) error) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Repository struct {
	User    UserRepository
	Airport AirportRepository
	Flight  FlightRepository
	Booking BookingRepository
	Payment PaymentRepository
	Tx      TxManager
	Health  Pinger
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Airport: NewAirportRepository(db, log),
		Flight:  NewFlightRepository(db, log),
		Booking: NewBookingRepository(db, log),
		Payment: NewPaymentRepository(db, log),
		Tx:      &pgTxManager{db: db, log: log},
		Health:  db,
	}
}

type pgTxManager struct {
	db  database.PgxIface
	log *zap.Logger
}

func (m *pgTxManager) WithinTx(ctx context.Context, fn func(tx *TxRepository) error) error {
	return m.db.WithinTx(ctx, func(tx pgx.Tx) error {
		return fn(&TxRepository{
			Flight:  NewFlightRepository(tx, m.log),
			Booking: NewBookingRepository(tx, m.log),
			Payment: NewPaymentRepository(tx, m.log),
		})
	})
}
