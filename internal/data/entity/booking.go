package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPendingPayment BookingStatus = "pending_payment"
	BookingStatusConfirmed      BookingStatus = "confirmed"
	BookingStatusCancelled      BookingStatus = "cancelled"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPendingPayment: {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed:      {BookingStatusCancelled},
	BookingStatusCancelled:      {},
}

func (s BookingStatus) IsValid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

// CanTransitionTo reports whether the lifecycle allows moving from s to target.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, next := range bookingTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

type Booking struct {
	ID          int64           `db:"id"`
	UserID      int64           `db:"user_id"`
	FlightID    int64           `db:"flight_id"`
	NumSeats    int             `db:"num_seats"`
	TotalPrice  decimal.Decimal `db:"total_price"`
	Status      BookingStatus   `db:"status"`
	BookingTime time.Time       `db:"booking_time"`
}

// BookingDetail is a booking joined with its flight and airports.
type BookingDetail struct {
	Booking
	Flight FlightDetail
}
