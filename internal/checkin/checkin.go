// Package checkin redeems scanned tickets at the door.
package checkin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"campusHub/internal/lib/session"
	"campusHub/internal/models"
	"campusHub/internal/storage"
	"campusHub/internal/ticket"
)

var (
	ErrAuthRequired = errors.New("authentication required")
	ErrForbidden    = errors.New("only club organizers can check in attendees")
)

type Outcome string

const (
	// OutcomeUnreadable covers scans that did not decode into a full ticket.
	// The scan diagnostics are still returned.
	OutcomeUnreadable    Outcome = "unreadable"
	OutcomeCheckedIn     Outcome = "checked_in"
	OutcomeAlreadyUsed   Outcome = "already_used"
	OutcomeNotRegistered Outcome = "not_registered"
	OutcomeWrongClub     Outcome = "wrong_club"
	OutcomeNotAccepted   Outcome = "not_accepted"
)

type Result struct {
	Outcome     Outcome            `json:"outcome"`
	Scan        ticket.ScanResult  `json:"-"`
	Diagnostics map[string]string  `json:"ticket"`
	Redemption  *models.Redemption `json:"redemption,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Store
type Store interface {
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	RedeemTicket(ctx context.Context, eventID, userID string) (*models.Redemption, error)
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

// Redeem decodes raw scanner text and, for a well-formed ticket, marks the
// registration used. The used flag flips at most once per registration, so
// concurrent scans of the same ticket see exactly one OutcomeCheckedIn.
func (s *Service) Redeem(ctx context.Context, sess *session.Session, raw string) (*Result, error) {
	const op = "checkin.Redeem"

	if sess == nil || sess.UserID == "" {
		return nil, ErrAuthRequired
	}
	if !sess.IsOrganizer() {
		return nil, ErrForbidden
	}

	log := s.log.With(slog.String("op", op), slog.String("organizer_id", sess.UserID))

	scan := ticket.Decode(raw)
	res := &Result{
		Scan:        scan,
		Diagnostics: scan.Diagnostics(),
	}

	if !scan.Valid() {
		log.Info("unreadable ticket scanned", slog.String("kind", scan.Kind.String()))
		res.Outcome = OutcomeUnreadable
		return res, nil
	}

	p := scan.Payload
	if !sess.Organizes(p.ClubID) {
		res.Outcome = OutcomeWrongClub
		return res, nil
	}

	event, err := s.store.GetEvent(ctx, p.EventID)
	if err != nil {
		if errors.Is(err, storage.ErrEventNotFound) {
			res.Outcome = OutcomeNotRegistered
			return res, nil
		}
		return nil, fmt.Errorf("%s: resolve event: %w", op, err)
	}
	if event.ClubID != p.ClubID {
		res.Outcome = OutcomeWrongClub
		return res, nil
	}

	red, err := s.store.RedeemTicket(ctx, p.EventID, p.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrRegistrationNotFound) {
			res.Outcome = OutcomeNotRegistered
			return res, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res.Redemption = red

	switch {
	case red.AlreadyUsed:
		res.Outcome = OutcomeAlreadyUsed
	case red.Status != models.StatusAccepted:
		res.Outcome = OutcomeNotAccepted
	default:
		res.Outcome = OutcomeCheckedIn
	}

	log.Info("ticket scanned",
		slog.String("event_id", p.EventID),
		slog.String("user_id", p.UserID),
		slog.String("outcome", string(res.Outcome)),
	)

	if res.Outcome == OutcomeCheckedIn {
		s.notifier.Dispatch(ctx, models.Notification{
			Type:       models.NotifyTicketRedeemed,
			EventID:    event.ID,
			EventName:  event.Name,
			ClubID:     event.ClubID,
			UserID:     p.UserID,
			Status:     red.Status,
			OccurredAt: s.now(),
		})
	}

	return res, nil
}
