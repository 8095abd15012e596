package usecase

import (
	"context"
	"time"

	"flight-booking/internal/data/entity"
	"flight-booking/internal/event"

	"go.uber.org/zap"
)

const postCommitTimeout = 2 * time.Second

// notifier runs the post-commit side effects of a booking change: it
// drops stale catalog cache entries and publishes the domain event.
// Failures are logged; the committed change stands.
type notifier struct {
	catalog CatalogCache
	events  event.Publisher
	log     *zap.Logger
}

func newNotifier(catalog CatalogCache, events event.Publisher, log *zap.Logger) *notifier {
	return &notifier{
		catalog: catalog,
		events:  events,
		log:     log.With(zap.String("component", "notifier")),
	}
}

func (n *notifier) seatsChanged(ctx context.Context, flight *entity.Flight) {
	if n.catalog == nil || flight == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), postCommitTimeout)
	defer cancel()

	if err := n.catalog.InvalidateFlight(ctx, flight); err != nil {
		n.log.Warn("Failed to invalidate flight cache", zap.Error(err), zap.Int64("flight_id", flight.ID))
	}
}

func (n *notifier) publish(ctx context.Context, evt event.Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), postCommitTimeout)
	defer cancel()

	evt.OccurredAt = time.Now().UTC()
	if err := n.events.Publish(ctx, evt); err != nil {
		n.log.Warn("Failed to publish event",
			zap.Error(err),
			zap.String("type", string(evt.Type)),
			zap.Int64("booking_id", evt.BookingID),
		)
	}
}
