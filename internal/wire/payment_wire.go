package wire

import (
	"net/http"

	"flight-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePayment(r chi.Router, paymentHandler *adaptor.PaymentHandler, auth func(http.Handler) http.Handler) {
	r.Route("/payments", func(r chi.Router) {
		r.Use(auth)

		r.Post("/mock", paymentHandler.ProcessMockPayment)
		r.Get("/status/{booking_id}", paymentHandler.GetPaymentStatus)
	})
}
