// Package roster lets organizers review and decide on registrations.
package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"campusHub/internal/lib/session"
	"campusHub/internal/models"
	"campusHub/internal/storage"
)

var (
	ErrAuthRequired         = errors.New("authentication required")
	ErrForbidden            = errors.New("only the event's club organizers can manage attendees")
	ErrEventNotFound        = errors.New("event not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrInvalidBucket        = errors.New("unknown attendee bucket")
	ErrInvalidStatus        = errors.New("unknown registration status")
)

// Bucket is the roster tab an organizer looks at.
type Bucket string

const (
	BucketApproved Bucket = "approved"
	BucketPending  Bucket = "pending"
	BucketRejected Bucket = "rejected"
)

// Status maps a bucket to the registration status it lists.
func (b Bucket) Status() (models.RegistrationStatus, error) {
	switch b {
	case BucketApproved:
		return models.StatusAccepted, nil
	case BucketPending:
		return models.StatusPending, nil
	case BucketRejected:
		return models.StatusRejected, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidBucket, string(b))
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Store
type Store interface {
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	ListAttendees(ctx context.Context, eventID string, status models.RegistrationStatus) ([]models.Attendee, error)
	SetRegistrationStatus(ctx context.Context, eventID, userID string, status models.RegistrationStatus) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Notifier
type Notifier interface {
	Dispatch(ctx context.Context, n models.Notification)
}

type Service struct {
	log      *slog.Logger
	store    Store
	notifier Notifier
	now      func() time.Time
}

func New(log *slog.Logger, store Store, notifier Notifier) *Service {
	return &Service{
		log:      log,
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *Service) authorize(ctx context.Context, sess *session.Session, eventID string) (*models.Event, error) {
	if sess == nil || sess.UserID == "" {
		return nil, ErrAuthRequired
	}
	if !sess.IsOrganizer() {
		return nil, ErrForbidden
	}

	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, storage.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("resolve event: %w", err)
	}

	if !sess.Organizes(event.ClubID) {
		return nil, ErrForbidden
	}

	return event, nil
}

// ListAttendees returns the registrations of eventID in the given bucket
// joined with their profiles, oldest first.
func (s *Service) ListAttendees(ctx context.Context, sess *session.Session, eventID string, bucket Bucket) ([]models.Attendee, error) {
	const op = "roster.ListAttendees"

	status, err := bucket.Status()
	if err != nil {
		return nil, err
	}

	if _, err = s.authorize(ctx, sess, eventID); err != nil {
		if errors.Is(err, ErrAuthRequired) || errors.Is(err, ErrForbidden) || errors.Is(err, ErrEventNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	attendees, err := s.store.ListAttendees(ctx, eventID, status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return attendees, nil
}

// SetStatus overwrites the status of userID's registration. Any status can
// be set from any other.
func (s *Service) SetStatus(ctx context.Context, sess *session.Session, eventID, userID string, status models.RegistrationStatus) error {
	const op = "roster.SetStatus"

	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, string(status))
	}

	event, err := s.authorize(ctx, sess, eventID)
	if err != nil {
		if errors.Is(err, ErrAuthRequired) || errors.Is(err, ErrForbidden) || errors.Is(err, ErrEventNotFound) {
			return err
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	err = s.store.SetRegistrationStatus(ctx, eventID, userID, status)
	if err != nil {
		if errors.Is(err, storage.ErrRegistrationNotFound) {
			return ErrRegistrationNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("registration status changed",
		slog.String("op", op),
		slog.String("event_id", eventID),
		slog.String("user_id", userID),
		slog.String("status", string(status)),
	)

	s.notifier.Dispatch(ctx, models.Notification{
		Type:       models.NotifyStatusChanged,
		EventID:    event.ID,
		EventName:  event.Name,
		ClubID:     event.ClubID,
		UserID:     userID,
		Status:     status,
		OccurredAt: s.now(),
	})

	return nil
}
