package usecase

import (
	"context"

	"flight-booking/internal/data/entity"
	"flight-booking/internal/data/repository"
	"flight-booking/internal/dto/request"
	"flight-booking/internal/dto/response"
	"flight-booking/internal/event"
	"flight-booking/pkg/apperror"
	"flight-booking/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, userID int64, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, userID, bookingID int64) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID int64, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingByID(ctx context.Context, userID, bookingID int64) (*response.BookingResponse, error)
}

type bookingService struct {
	repo     *repository.Repository
	ledger   *inventoryLedger
	notifier *notifier
	log      *zap.Logger
}

func NewBookingService(repo *repository.Repository, catalog CatalogCache, events event.Publisher, log *zap.Logger) BookingService {
	if events == nil {
		events = event.NoopPublisher{}
	}
	return &bookingService{
		repo:     repo,
		ledger:   newInventoryLedger(log),
		notifier: newNotifier(catalog, events, log),
		log:      log.With(zap.String("service", "booking")),
	}
}

// CreateBooking reserves seats and records a pending_payment booking in one
// transaction. The price is read from the locked flight row and frozen
// into total_price.
func (s *bookingService) CreateBooking(ctx context.Context, userID int64, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, apperror.Validation("Invalid input: flightId and a positive number of seats are required.")
	}

	var (
		booking *entity.Booking
		flight  *entity.Flight
	)

	err := s.repo.Tx.WithinTx(ctx, func(tx *repository.TxRepository) error {
		var err error
		flight, err = s.ledger.Reserve(ctx, tx, req.FlightID, req.NumSeats)
		if err != nil {
			return err
		}

		booking = &entity.Booking{
			UserID:     userID,
			FlightID:   flight.ID,
			NumSeats:   req.NumSeats,
			TotalPrice: flight.Price.Mul(decimal.NewFromInt(int64(req.NumSeats))),
			Status:     entity.BookingStatusPendingPayment,
		}
		return tx.Booking.Create(ctx, booking)
	})
	if err != nil {
		if apperror.KindOf(err) == apperror.KindInternal {
			s.log.Error("Failed to create booking",
				zap.Error(err),
				zap.Int64("user_id", userID),
				zap.Int64("flight_id", req.FlightID),
			)
		}
		return nil, err
	}

	s.log.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("user_id", userID),
		zap.Int64("flight_id", booking.FlightID),
		zap.Int("seats", booking.NumSeats),
		zap.String("total_price", booking.TotalPrice.StringFixed(2)),
	)

	s.notifier.seatsChanged(ctx, flight)
	s.notifier.publish(ctx, event.Event{
		Type:      event.BookingCreated,
		BookingID: booking.ID,
		UserID:    userID,
		FlightID:  booking.FlightID,
		NumSeats:  booking.NumSeats,
		Status:    string(booking.Status),
		Amount:    booking.TotalPrice.StringFixed(2),
	})

	return s.loadBooking(ctx, booking), nil
}

// CancelBooking flips the booking to cancelled and returns its seats. Only
// the owner may cancel. A confirmed booking can be cancelled; the payment
// row is kept.
func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID int64) (*response.BookingResponse, error) {
	var (
		booking *entity.Booking
		flight  *entity.Flight
	)

	err := s.repo.Tx.WithinTx(ctx, func(tx *repository.TxRepository) error {
		var err error
		booking, err = tx.Booking.LockByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking == nil {
			return apperror.NotFound("Booking not found.")
		}
		if booking.UserID != userID {
			return apperror.Forbidden("Not authorized to cancel this booking.")
		}
		if booking.Status == entity.BookingStatusCancelled {
			return apperror.Conflict("Booking is already cancelled.")
		}
		if !booking.Status.CanTransitionTo(entity.BookingStatusCancelled) {
			return apperror.Newf(apperror.KindConflict, "Booking in status %s cannot be cancelled.", booking.Status)
		}
		if booking.Status == entity.BookingStatusConfirmed {
			s.log.Info("Cancelling a confirmed booking",
				zap.Int64("booking_id", bookingID),
				zap.Int64("user_id", userID),
			)
		}

		if err := tx.Booking.UpdateStatus(ctx, bookingID, entity.BookingStatusCancelled); err != nil {
			return err
		}
		booking.Status = entity.BookingStatusCancelled

		flight, err = s.ledger.Release(ctx, tx, booking.FlightID, booking.NumSeats)
		return err
	})
	if err != nil {
		if apperror.KindOf(err) == apperror.KindInternal {
			s.log.Error("Failed to cancel booking",
				zap.Error(err),
				zap.Int64("booking_id", bookingID),
				zap.Int64("user_id", userID),
			)
		}
		return nil, err
	}

	s.log.Info("Booking cancelled",
		zap.Int64("booking_id", bookingID),
		zap.Int64("user_id", userID),
		zap.Int("seats_released", booking.NumSeats),
	)

	s.notifier.seatsChanged(ctx, flight)
	s.notifier.publish(ctx, event.Event{
		Type:      event.BookingCancelled,
		BookingID: bookingID,
		UserID:    userID,
		FlightID:  booking.FlightID,
		NumSeats:  booking.NumSeats,
		Status:    string(entity.BookingStatusCancelled),
	})

	return s.loadBooking(ctx, booking), nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID int64, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	limit, offset := req.Limit(), req.Offset()

	bookings, err := s.repo.Booking.FindDetailsByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, apperror.Internal("list bookings", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("count bookings", err)
	}

	data := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		data = append(data, response.BookingToResponse(b))
	}

	return response.NewPaginatedResponse(data, req.CurrentPage(), limit, total), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, userID, bookingID int64) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindDetailByID(ctx, bookingID)
	if err != nil {
		return nil, apperror.Internal("find booking", err)
	}
	if booking == nil {
		return nil, apperror.NotFound("Booking not found.")
	}
	if booking.UserID != userID {
		return nil, apperror.Forbidden("Not authorized to view this booking.")
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// loadBooking renders a committed booking with its flight summary. The
// write already succeeded, so a failed read only drops the summary.
func (s *bookingService) loadBooking(ctx context.Context, committed *entity.Booking) *response.BookingResponse {
	readCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), postCommitTimeout)
	defer cancel()

	detail, err := s.repo.Booking.FindDetailByID(readCtx, committed.ID)
	if err != nil || detail == nil {
		s.log.Warn("Booking committed but its flight summary could not be loaded",
			zap.Int64("booking_id", committed.ID),
			zap.Int64("flight_id", committed.FlightID),
			zap.Error(err),
		)
		resp := response.BookingRecordToResponse(committed)
		return &resp
	}

	resp := response.BookingToResponse(detail)
	return &resp
}
