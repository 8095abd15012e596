package wire

import (
	"flight-booking/internal/adaptor"
	"flight-booking/internal/data/repository"
	"flight-booking/internal/event"
	"flight-booking/internal/usecase"
	"flight-booking/pkg/middleware"
	"flight-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and the router. catalog and events may
// be nil when Redis or Kafka are not configured.
func Wiring(
	repo *repository.Repository,
	catalog usecase.CatalogCache,
	events event.Publisher,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, catalog, events, config, logger)
	handler := adaptor.NewHandler(service, repo.Health, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	if config.RateLimit.Enabled {
		r.Use(middleware.RateLimit(middleware.NewRateLimiter(config.RateLimit), logger))
	}

	r.Get("/health", handler.Health.Check)

	r.Route("/api", func(r chi.Router) {
		auth := middleware.Auth(config.JWT.Secret, repo.User, logger)

		wireAuth(r, handler.Auth, auth)
		wireFlight(r, handler.Flight)
		wireBooking(r, handler.Booking, auth)
		wirePayment(r, handler.Payment, auth)
	})

	return r
}
