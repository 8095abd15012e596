package response

import (
	"time"

	"flight-booking/internal/data/entity"
)

type AirportResponse struct {
	Code    string `json:"airport_code"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country,omitempty"`
}

type FlightResponse struct {
	ID             int64           `json:"flight_id"`
	FlightNumber   string          `json:"flight_number"`
	Departure      AirportResponse `json:"departure"`
	Arrival        AirportResponse `json:"arrival"`
	DepartureTime  time.Time       `json:"departure_time"`
	ArrivalTime    time.Time       `json:"arrival_time"`
	Price          string          `json:"price"`
	TotalSeats     int             `json:"total_seats"`
	AvailableSeats int             `json:"available_seats"`
}

func AirportToResponse(a *entity.Airport) AirportResponse {
	return AirportResponse{
		Code:    a.Code,
		Name:    a.Name,
		City:    a.City,
		Country: a.Country,
	}
}

func FlightToResponse(f *entity.FlightDetail) FlightResponse {
	return FlightResponse{
		ID:             f.ID,
		FlightNumber:   f.FlightNumber,
		Departure:      AirportToResponse(&f.DepartureAirport),
		Arrival:        AirportToResponse(&f.ArrivalAirport),
		DepartureTime:  f.DepartureTime,
		ArrivalTime:    f.ArrivalTime,
		Price:          Money(f.Price),
		TotalSeats:     f.TotalSeats,
		AvailableSeats: f.AvailableSeats,
	}
}
