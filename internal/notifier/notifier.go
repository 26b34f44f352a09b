// Package notifier turns notifications read from the broker into email to
// the affected student.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"campusHub/internal/broker"
	"campusHub/internal/lib/logger/sl"
	"campusHub/internal/mailer"
	"campusHub/internal/models"
	"campusHub/internal/storage"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Keys are the routing keys the worker subscribes to.
var Keys = []string{
	string(models.NotifyRegistrationCreated),
	string(models.NotifyRegistrationCancelled),
	string(models.NotifyStatusChanged),
	string(models.NotifyTicketRedeemed),
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Source
type Source interface {
	Deliveries(ctx context.Context) (<-chan amqp.Delivery, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Directory
type Directory interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Sender
type Sender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

type Worker struct {
	log       *slog.Logger
	source    Source
	directory Directory
	sender    Sender

	cancel context.CancelFunc
	done   chan struct{}
}

func New(log *slog.Logger, source Source, directory Directory, sender Sender) *Worker {
	return &Worker{
		log:       log.With(slog.String("component", "notifier")),
		source:    source,
		directory: directory,
		sender:    sender,
		done:      make(chan struct{}),
	}
}

// Start consumes in the background until Stop or ctx is done.
func (w *Worker) Start(ctx context.Context) error {
	cctx, cancel := context.WithCancel(ctx)

	deliveries, err := w.source.Deliveries(cctx)
	if err != nil {
		cancel()
		return fmt.Errorf("notifier.Start: %w", err)
	}
	w.cancel = cancel

	w.log.Info("notifier started")

	go func() {
		defer close(w.done)

		for {
			select {
			case <-cctx.Done():
				w.log.Info("notifier stopped")
				return
			case d, ok := <-deliveries:
				if !ok {
					w.log.Warn("delivery channel closed")
					return
				}
				w.handle(cctx, d)
			}
		}
	}()

	return nil
}

func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
		<-w.done
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	const op = "notifier.handle"

	log := w.log.With(slog.String("op", op), slog.String("routing_key", d.RoutingKey))

	n, err := broker.Decode(d)
	if err != nil {
		log.Error("dropping malformed notification", sl.Err(err))
		_ = d.Reject(false)
		return
	}

	log = log.With(slog.String("event_id", n.EventID), slog.String("user_id", n.UserID))

	profile, err := w.directory.GetProfile(ctx, n.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrProfileNotFound) {
			log.Warn("no profile for notification, skipping")
			_ = d.Ack(false)
			return
		}
		log.Error("failed to resolve recipient", sl.Err(err))
		_ = d.Nack(false, true)
		return
	}

	msg, ok := Compose(n, profile)
	if !ok {
		log.Debug("nothing to send")
		_ = d.Ack(false)
		return
	}

	if err := w.sender.Send(ctx, msg); err != nil {
		log.Error("failed to send notification email", sl.Err(err))
		_ = d.Nack(false, false)
		return
	}

	log.Info("notification email sent", slog.String("type", string(n.Type)))
	_ = d.Ack(false)
}

// Compose builds the email for n. It reports false when the recipient has
// no address or the notification type is not mailed.
func Compose(n models.Notification, p *models.Profile) (mailer.Message, bool) {
	if p == nil || p.Email == "" {
		return mailer.Message{}, false
	}

	event := n.EventName
	if event == "" {
		event = "your event"
	}

	msg := mailer.Message{To: p.Email, ToName: p.FullName}

	switch n.Type {
	case models.NotifyRegistrationCreated:
		msg.Subject = fmt.Sprintf("Registration received: %s", event)
		if n.Status == models.StatusAccepted {
			msg.Text = fmt.Sprintf("Hi %s,\n\nYou are registered for %s. Your ticket is available in the app.", p.FullName, event)
		} else {
			msg.Text = fmt.Sprintf("Hi %s,\n\nYour registration for %s is awaiting review by the organizers.", p.FullName, event)
		}
	case models.NotifyStatusChanged:
		msg.Subject = fmt.Sprintf("Registration update: %s", event)
		msg.Text = fmt.Sprintf("Hi %s,\n\nYour registration for %s is now %s.", p.FullName, event, n.Status)
	case models.NotifyRegistrationCancelled:
		msg.Subject = fmt.Sprintf("Registration cancelled: %s", event)
		msg.Text = fmt.Sprintf("Hi %s,\n\nYour registration for %s has been cancelled.", p.FullName, event)
	case models.NotifyTicketRedeemed:
		msg.Subject = fmt.Sprintf("Checked in: %s", event)
		msg.Text = fmt.Sprintf("Hi %s,\n\nYou have been checked in to %s. Enjoy!", p.FullName, event)
	default:
		return mailer.Message{}, false
	}

	return msg, true
}
