package usecase

import (
	"context"

	"flight-booking/internal/data/entity"
	"flight-booking/internal/data/repository"
	"flight-booking/pkg/apperror"

	"go.uber.org/zap"
)

// inventoryLedger owns every change to a flight's available seats. Both
// operations run inside the caller's transaction and lock the flight row
// first, so concurrent bookings on one flight are serialized.
type inventoryLedger struct {
	log *zap.Logger
}

func newInventoryLedger(log *zap.Logger) *inventoryLedger {
	return &inventoryLedger{log: log.With(zap.String("component", "inventory"))}
}

// Reserve takes n seats from the flight and returns the locked flight as it
// was before the decrement.
func (l *inventoryLedger) Reserve(ctx context.Context, tx *repository.TxRepository, flightID int64, n int) (*entity.Flight, error) {
	flight, err := tx.Flight.LockByID(ctx, flightID)
	if err != nil {
		return nil, err
	}
	if flight == nil {
		return nil, apperror.NotFound("Flight not found.")
	}
	if flight.AvailableSeats < n {
		return nil, apperror.InsufficientInventory("Not enough available seats on this flight.")
	}

	ok, err := tx.Flight.ReserveSeats(ctx, flightID, n)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.InsufficientInventory("Not enough available seats on this flight.")
	}

	return flight, nil
}

// Release gives n seats back. A flight that no longer exists is logged and
// reported as (nil, nil) so the caller's transaction can still commit.
func (l *inventoryLedger) Release(ctx context.Context, tx *repository.TxRepository, flightID int64, n int) (*entity.Flight, error) {
	flight, err := tx.Flight.LockByID(ctx, flightID)
	if err != nil {
		return nil, err
	}
	if flight == nil {
		l.log.Warn("Seat release skipped, flight not found",
			zap.Int64("flight_id", flightID),
			zap.Int("seats", n),
		)
		return nil, nil
	}

	ok, err := tx.Flight.ReleaseSeats(ctx, flightID, n)
	if err != nil {
		return nil, err
	}
	if !ok {
		l.log.Warn("Seat release affected no rows",
			zap.Int64("flight_id", flightID),
			zap.Int("seats", n),
		)
		return nil, nil
	}

	return flight, nil
}
