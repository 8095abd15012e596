package adaptor

import (
	"flight-booking/internal/data/repository"
	"flight-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	Flight  *FlightHandler
	Booking *BookingHandler
	Payment *PaymentHandler
	Health  *HealthHandler
}

func NewHandler(service *usecase.Service, health repository.Pinger, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		Flight:  NewFlightHandler(service.Flight, log),
		Booking: NewBookingHandler(service.Booking, log),
		Payment: NewPaymentHandler(service.Payment, log),
		Health:  NewHealthHandler(health, log),
	}
}
