package usecase

import (
	"context"
	"errors"
	"fmt"

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

type PaymentService interface {
	ProcessMockPayment(ctx context.Context, userID int64, req *request.MockPaymentRequest) (*response.PaymentResponse, error)
	GetPaymentStatus(ctx context.Context, userID, bookingID int64) (*response.PaymentStatusResponse, error)
}

type paymentService struct {
	repo     *repository.Repository
	notifier *notifier
	log      *zap.Logger
}

func NewPaymentService(repo *repository.Repository, catalog CatalogCache, events event.Publisher, log *zap.Logger) PaymentService {
	if events == nil {
		events = event.NoopPublisher{}
	}
	return &paymentService{
		repo:     repo,
		notifier: newNotifier(catalog, events, log),
		log:      log.With(zap.String("service", "payment")),
	}
}

// confirmation is a validated mock payment. The full card number has
// already been reduced to its last four digits.
type confirmation struct {
	bookingID int64
	userID    int64
	method    entity.PaymentMethod
	cardLast4 string
	amount    *decimal.Decimal
}

func (s *paymentService) ProcessMockPayment(ctx context.Context, userID int64, req *request.MockPaymentRequest) (*response.PaymentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Mock payment validation failed", zap.Any("errors", errs))
		return nil, apperror.Validation(paymentValidationMessage(errs))
	}

	payment, err := s.confirm(ctx, confirmation{
		bookingID: req.BookingID,
		userID:    userID,
		method:    entity.PaymentMethod(req.PaymentMethod),
		cardLast4: utils.CardLast4(req.CardDetails.Number),
		amount:    req.Amount,
	})
	if err != nil {
		return nil, err
	}

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

// confirm records the payment and moves the booking to confirmed in one
// transaction. The booking row stays locked throughout, so two concurrent
// confirmations cannot both see pending_payment.
func (s *paymentService) confirm(ctx context.Context, c confirmation) (*entity.Payment, error) {
	var (
		booking *entity.Booking
		payment *entity.Payment
	)

	err := s.repo.Tx.WithinTx(ctx, func(tx *repository.TxRepository) error {
		var err error
		booking, err = tx.Booking.LockByID(ctx, c.bookingID)
		if err != nil {
			return err
		}
		if booking == nil {
			return apperror.NotFound("Booking not found.")
		}
		if booking.UserID != c.userID {
			return apperror.Forbidden("Not authorized to pay for this booking.")
		}
		if booking.Status != entity.BookingStatusPendingPayment ||
			!booking.Status.CanTransitionTo(entity.BookingStatusConfirmed) {
			return apperror.Newf(apperror.KindConflict,
				"Booking status is already %s. Payment cannot be processed.", booking.Status)
		}

		amount := booking.TotalPrice
		if c.amount != nil {
			amount = *c.amount
			if !amount.Equal(booking.TotalPrice) {
				s.log.Warn("Payment amount does not match booking total",
					zap.Int64("booking_id", booking.ID),
					zap.String("amount", amount.StringFixed(2)),
					zap.String("total_price", booking.TotalPrice.StringFixed(2)),
				)
			}
		}

		payment = &entity.Payment{
			BookingID:       booking.ID,
			PaymentMethod:   c.method,
			CardNumberLast4: c.cardLast4,
			Amount:          amount,
			Status:          entity.PaymentStatusSuccess,
			TransactionID:   utils.GenerateTransactionID(),
		}
		if err := tx.Payment.Create(ctx, payment); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return apperror.Conflict("A payment is already recorded for this booking.")
			}
			return err
		}

		return tx.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusConfirmed)
	})
	if err != nil {
		if apperror.KindOf(err) == apperror.KindInternal {
			s.log.Error("Failed to confirm payment",
				zap.Error(err),
				zap.Int64("booking_id", c.bookingID),
				zap.Int64("user_id", c.userID),
			)
		}
		return nil, err
	}

	s.log.Info("Payment confirmed",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("payment_id", payment.ID),
		zap.String("transaction_id", payment.TransactionID),
	)

	s.notifier.publish(ctx, event.Event{
		Type:          event.PaymentConfirmed,
		BookingID:     booking.ID,
		UserID:        booking.UserID,
		FlightID:      booking.FlightID,
		NumSeats:      booking.NumSeats,
		Status:        string(entity.BookingStatusConfirmed),
		Amount:        payment.Amount.StringFixed(2),
		TransactionID: payment.TransactionID,
	})

	return payment, nil
}

func (s *paymentService) GetPaymentStatus(ctx context.Context, userID, bookingID int64) (*response.PaymentStatusResponse, error) {
	booking, err := s.repo.Booking.FindDetailByID(ctx, bookingID)
	if err != nil {
		return nil, apperror.Internal("find booking", err)
	}
	if booking == nil {
		return nil, apperror.NotFound("Booking not found.")
	}
	if booking.UserID != userID {
		return nil, apperror.Forbidden("Not authorized to view payment for this booking.")
	}

	payment, err := s.repo.Payment.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, apperror.Internal("find payment", err)
	}

	resp := &response.PaymentStatusResponse{BookingStatus: booking.Status}
	if payment == nil {
		resp.PaymentStatus = "pending"
		return resp, nil
	}

	p := response.PaymentToResponse(payment)
	resp.Payment = &p
	return resp, nil
}

func paymentValidationMessage(errs map[string]string) string {
	switch {
	case errs["PaymentMethod"] != "" && len(errs) == 1:
		return "Invalid payment method."
	case errs["Number"] != "" && len(errs) == 1:
		return "Invalid card number format."
	default:
		return fmt.Sprintf("Invalid payment details: %s", utils.FormatValidationErrors(errs))
	}
}
