package usecase

import (
	"context"
	"strings"
	"time"

	"flight-booking/internal/data/entity"
	"flight-booking/internal/data/repository"
	"flight-booking/internal/dto/request"
	"flight-booking/internal/dto/response"
	"flight-booking/pkg/apperror"
	"flight-booking/pkg/utils"

	"go.uber.org/zap"
)

const searchDateLayout = "2006-01-02"

type FlightService interface {
	SearchFlights(ctx context.Context, req *request.FlightSearchRequest) ([]response.FlightResponse, error)
	GetFlightByID(ctx context.Context, flightID int64) (*response.FlightResponse, error)
	GetAirports(ctx context.Context) ([]response.AirportResponse, error)
}

type flightService struct {
	repo    *repository.Repository
	catalog CatalogCache
	log     *zap.Logger
}

// NewFlightService builds the catalog service. catalog may be nil.
func NewFlightService(repo *repository.Repository, catalog CatalogCache, log *zap.Logger) FlightService {
	return &flightService{
		repo:    repo,
		catalog: catalog,
		log:     log.With(zap.String("service", "flight")),
	}
}

// SearchFlights lists bookable flights on the route departing from the day
// before through the day after the requested date.
func (s *flightService) SearchFlights(ctx context.Context, req *request.FlightSearchRequest) ([]response.FlightResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Flight search validation failed", zap.Any("errors", errs))
		return nil, apperror.Validation("Missing or invalid search parameters: fromAirport, toAirport, departureDate.")
	}

	from := strings.ToUpper(req.FromAirport)
	to := strings.ToUpper(req.ToAirport)

	day, err := time.Parse(searchDateLayout, req.DepartureDate)
	if err != nil {
		return nil, apperror.Validation("departureDate must be in YYYY-MM-DD format.")
	}
	date := day.Format(searchDateLayout)

	flights, hit := s.cachedSearch(ctx, from, to, date)
	if !hit {
		flights, err = s.repo.Flight.Search(ctx, repository.FlightSearch{
			Origin:      from,
			Destination: to,
			DepartFrom:  day.AddDate(0, 0, -1),
			DepartTo:    day.AddDate(0, 0, 2),
		})
		if err != nil {
			return nil, apperror.Internal("search flights", err)
		}
		s.storeSearch(ctx, from, to, date, flights)
	}

	if len(flights) == 0 {
		return nil, apperror.NotFound("No flights found matching your criteria.")
	}

	result := make([]response.FlightResponse, 0, len(flights))
	for _, f := range flights {
		result = append(result, response.FlightToResponse(f))
	}
	return result, nil
}

func (s *flightService) GetFlightByID(ctx context.Context, flightID int64) (*response.FlightResponse, error) {
	flight, err := s.repo.Flight.FindDetailByID(ctx, flightID)
	if err != nil {
		return nil, apperror.Internal("find flight", err)
	}
	if flight == nil {
		return nil, apperror.NotFound("Flight not found.")
	}

	resp := response.FlightToResponse(flight)
	return &resp, nil
}

func (s *flightService) GetAirports(ctx context.Context) ([]response.AirportResponse, error) {
	var airports []*entity.Airport
	hit := false

	if s.catalog != nil {
		cached, ok, err := s.catalog.GetAirports(ctx)
		if err != nil {
			s.log.Warn("Airport cache read failed", zap.Error(err))
		}
		airports, hit = cached, ok && err == nil
	}

	if !hit {
		var err error
		airports, err = s.repo.Airport.FindAll(ctx)
		if err != nil {
			return nil, apperror.Internal("list airports", err)
		}
		if s.catalog != nil {
			if err := s.catalog.SetAirports(ctx, airports); err != nil {
				s.log.Warn("Airport cache write failed", zap.Error(err))
			}
		}
	}

	result := make([]response.AirportResponse, 0, len(airports))
	for _, a := range airports {
		result = append(result, response.AirportToResponse(a))
	}
	return result, nil
}

func (s *flightService) cachedSearch(ctx context.Context, from, to, date string) ([]*entity.FlightDetail, bool) {
	if s.catalog == nil {
		return nil, false
	}
	flights, ok, err := s.catalog.GetFlightSearch(ctx, from, to, date)
	if err != nil {
		s.log.Warn("Flight search cache read failed", zap.Error(err))
		return nil, false
	}
	return flights, ok
}

func (s *flightService) storeSearch(ctx context.Context, from, to, date string, flights []*entity.FlightDetail) {
	if s.catalog == nil {
		return
	}
	if err := s.catalog.SetFlightSearch(ctx, from, to, date, flights); err != nil {
		s.log.Warn("Flight search cache write failed", zap.Error(err))
	}
}
