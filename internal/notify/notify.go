package notify

import (
	"context"
	"log/slog"

	"campusHub/internal/lib/logger/sl"
	"campusHub/internal/models"
)

type Sink interface {
	Publish(ctx context.Context, n models.Notification) error
}

// Dispatcher delivers notifications to every sink. Delivery is best
// effort: a failing sink is logged and does not stop the others.
type Dispatcher struct {
	log   *slog.Logger
	sinks []Sink
}

func NewDispatcher(log *slog.Logger, sinks ...Sink) *Dispatcher {
	return &Dispatcher{
		log:   log.With(slog.String("component", "notify")),
		sinks: sinks,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, n models.Notification) {
	for _, s := range d.sinks {
		if err := s.Publish(ctx, n); err != nil {
			d.log.Warn("failed to publish notification",
				slog.String("type", string(n.Type)),
				slog.String("event_id", n.EventID),
				sl.Err(err),
			)
		}
	}
}
