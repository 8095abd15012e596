package wire

import (
	"flight-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// Flight catalog routes are public.
func wireFlight(r chi.Router, flightHandler *adaptor.FlightHandler) {
	r.Route("/flights", func(r chi.Router) {
		r.Get("/", flightHandler.SearchFlights)
		r.Get("/airports", flightHandler.GetAirports)
		r.Get("/{id}", flightHandler.GetFlightByID)
	})
}
