package adaptor

import (
	"net/http"

	"flight-booking/internal/dto/request"
	"flight-booking/internal/usecase"
	"flight-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type FlightHandler struct {
	service usecase.FlightService
	log     *zap.Logger
}

func NewFlightHandler(service usecase.FlightService, log *zap.Logger) *FlightHandler {
	return &FlightHandler{
		service: service,
		log:     log.With(zap.String("handler", "flight")),
	}
}

// SearchFlights handles GET /api/flights?fromAirport=&toAirport=&departureDate=
func (h *FlightHandler) SearchFlights(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.FlightSearchRequest{
		FromAirport:   query.Get("fromAirport"),
		ToAirport:     query.Get("toAirport"),
		DepartureDate: query.Get("departureDate"),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Missing required search parameters: fromAirport, toAirport, departureDate.", validationErrors)
		return
	}

	flights, err := h.service.SearchFlights(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "flight search", nil)
		return
	}

	utils.ResponseSuccess(w, "success", flights)
}

// GetAirports handles GET /api/flights/airports
func (h *FlightHandler) GetAirports(w http.ResponseWriter, r *http.Request) {
	airports, err := h.service.GetAirports(r.Context())
	if err != nil {
		respondError(w, h.log, err, "airport listing", nil)
		return
	}

	utils.ResponseSuccess(w, "success", airports)
}

// GetFlightByID handles GET /api/flights/{id}
func (h *FlightHandler) GetFlightByID(w http.ResponseWriter, r *http.Request) {
	flightID, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid flight ID provided.", nil)
		return
	}

	flight, err := h.service.GetFlightByID(r.Context(), flightID)
	if err != nil {
		respondError(w, h.log, err, "flight lookup", nil)
		return
	}

	utils.ResponseSuccess(w, "success", flight)
}
