package request

import "github.com/shopspring/decimal"

type CreateBookingRequest struct {
	FlightID int64 `json:"flightId" validate:"required,gt=0"`
	NumSeats int   `json:"numSeats" validate:"required,gt=0"`
}

type CardDetails struct {
	Number string `json:"number" validate:"required,cardnumber"`
}

// MockPaymentRequest carries the full card number only for validation; the
// service keeps nothing but the last four digits.
type MockPaymentRequest struct {
	BookingID     int64            `json:"bookingId" validate:"required,gt=0"`
	PaymentMethod string           `json:"paymentMethod" validate:"required,oneof=credit_card debit_card"`
	CardDetails   CardDetails      `json:"cardDetails"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
}
