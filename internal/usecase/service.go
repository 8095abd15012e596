package usecase

import (
	"context"

	"flight-booking/internal/data/entity"
	"flight-booking/internal/data/repository"
	"flight-booking/internal/event"
	"flight-booking/pkg/utils"

	"go.uber.org/zap"
)

// CatalogCache is the optional read-through cache for catalog queries.
// Lookups report a miss with ok=false.
type CatalogCache interface {
	GetAirports(ctx context.Context) (airports []*entity.Airport, ok bool, err error)
	SetAirports(ctx context.Context, airports []*entity.Airport) error
	GetFlightSearch(ctx context.Context, from, to, date string) (flights []*entity.FlightDetail, ok bool, err error)
	SetFlightSearch(ctx context.Context, from, to, date string, flights []*entity.FlightDetail) error
	InvalidateFlight(ctx context.Context, f *entity.Flight) error
}

type Service struct {
	Auth    AuthService
	Flight  FlightService
	Booking BookingService
	Payment PaymentService
}

// NewService wires the services. catalog and events may be nil.
func NewService(
	repo *repository.Repository,
	catalog CatalogCache,
	events event.Publisher,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:    NewAuthService(repo.User, config, log),
		Flight:  NewFlightService(repo, catalog, log),
		Booking: NewBookingService(repo, catalog, events, log),
		Payment: NewPaymentService(repo, catalog, events, log),
	}
}
