package adaptor

import (
	"context"
	"net/http"
	"time"

	"flight-booking/internal/data/repository"
	"flight-booking/pkg/utils"

	"go.uber.org/zap"
)

type HealthHandler struct {
	store repository.Pinger
	log   *zap.Logger
}

func NewHealthHandler(store repository.Pinger, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		store: store,
		log:   log.With(zap.String("handler", "health")),
	}
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.log.Warn("Health check failed", zap.Error(err))
		utils.ResponseServiceUnavailable(w, "Database unreachable")
		return
	}

	utils.ResponseSuccess(w, "OK", nil)
}
