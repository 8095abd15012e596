package adaptor

import (
	"encoding/json"
	"net/http"

	"flight-booking/internal/dto/request"
	"flight-booking/internal/usecase"
	"flight-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// ProcessMockPayment handles POST /api/payments/mock (protected)
func (h *PaymentHandler) ProcessMockPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authorized.")
		return
	}

	var req request.MockPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Field-level checks (method, card format) are reported by the service
	// with the messages clients expect.
	payment, err := h.service.ProcessMockPayment(r.Context(), userID, &req)
	if err != nil {
		respondError(w, h.log, err, "mock payment processing", nil)
		return
	}

	utils.ResponseSuccess(w, "Mock payment successful. Booking confirmed.", payment)
}

// GetPaymentStatus handles GET /api/payments/status/{booking_id} (protected)
func (h *PaymentHandler) GetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authorized.")
		return
	}

	bookingID, ok := utils.ParseID(chi.URLParam(r, "booking_id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid booking ID provided.", nil)
		return
	}

	status, err := h.service.GetPaymentStatus(r.Context(), userID, bookingID)
	if err != nil {
		respondError(w, h.log, err, "payment status lookup", nil)
		return
	}

	utils.ResponseSuccess(w, "success", status)
}
