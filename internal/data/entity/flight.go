package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Flight struct {
	ID                   int64           `db:"id"`
	FlightNumber         string          `db:"flight_number"`
	DepartureAirportCode string          `db:"departure_airport_code"`
	ArrivalAirportCode   string          `db:"arrival_airport_code"`
	DepartureTime        time.Time       `db:"departure_time"`
	ArrivalTime          time.Time       `db:"arrival_time"`
	Price                decimal.Decimal `db:"price"`
	TotalSeats           int             `db:"total_seats"`
	AvailableSeats       int             `db:"available_seats"`
}

// FlightDetail is a flight joined with both of its airports.
type FlightDetail struct {
	Flight
	DepartureAirport Airport
	ArrivalAirport   Airport
}
