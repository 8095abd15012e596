package response

import (
	"time"

	"flight-booking/internal/data/entity"
)

// BookingFlight is the flight summary shown with a booking.
type BookingFlight struct {
	ID            int64           `json:"flight_id"`
	FlightNumber  string          `json:"flight_number"`
	Departure     AirportResponse `json:"departure"`
	Arrival       AirportResponse `json:"arrival"`
	DepartureTime time.Time       `json:"departure_time"`
	ArrivalTime   time.Time       `json:"arrival_time"`
	PricePerSeat  string          `json:"price_per_seat"`
}

type BookingResponse struct {
	ID          int64                `json:"booking_id"`
	UserID      int64                `json:"user_id"`
	FlightID    int64                `json:"flight_id"`
	NumSeats    int                  `json:"num_seats"`
	TotalPrice  string               `json:"total_price"`
	Status      entity.BookingStatus `json:"status"`
	BookingTime time.Time            `json:"booking_time"`
	Flight      *BookingFlight       `json:"flight,omitempty"`
}

type PaymentResponse struct {
	ID              int64                `json:"payment_id"`
	BookingID       int64                `json:"booking_id"`
	PaymentMethod   entity.PaymentMethod `json:"payment_method"`
	CardNumberLast4 string               `json:"card_number_last4"`
	Amount          string               `json:"amount"`
	Status          entity.PaymentStatus `json:"status"`
	TransactionID   string               `json:"transaction_id"`
	PaymentTime     time.Time            `json:"payment_time"`
}

// PaymentStatusResponse carries Payment once one exists, otherwise
// PaymentStatus is "pending".
type PaymentStatusResponse struct {
	BookingStatus entity.BookingStatus `json:"bookingStatus"`
	PaymentStatus string               `json:"paymentStatus,omitempty"`
	Payment       *PaymentResponse     `json:"payment,omitempty"`
}

// Helper converters
func BookingToResponse(b *entity.BookingDetail) BookingResponse {
	resp := BookingRecordToResponse(&b.Booking)
	resp.Flight = &BookingFlight{
		ID:            b.Flight.ID,
		FlightNumber:  b.Flight.FlightNumber,
		Departure:     AirportToResponse(&b.Flight.DepartureAirport),
		Arrival:       AirportToResponse(&b.Flight.ArrivalAirport),
		DepartureTime: b.Flight.DepartureTime,
		ArrivalTime:   b.Flight.ArrivalTime,
		PricePerSeat:  Money(b.Flight.Price),
	}
	return resp
}

// BookingRecordToResponse renders a booking without its flight summary.
func BookingRecordToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		UserID:      b.UserID,
		FlightID:    b.FlightID,
		NumSeats:    b.NumSeats,
		TotalPrice:  Money(b.TotalPrice),
		Status:      b.Status,
		BookingTime: b.BookingTime,
	}
}

func PaymentToResponse(p *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:              p.ID,
		BookingID:       p.BookingID,
		PaymentMethod:   p.PaymentMethod,
		CardNumberLast4: p.CardNumberLast4,
		Amount:          Money(p.Amount),
		Status:          p.Status,
		TransactionID:   p.TransactionID,
		PaymentTime:     p.PaymentTime,
	}
}
