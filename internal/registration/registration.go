// Package registration implements signing up for an event: eligibility
// checks, ticket issuance and the answers to the event's questions.
package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"campusHub/internal/lib/logger/sl"
	"campusHub/internal/lib/session"
	"campusHub/internal/models"
	"campusHub/internal/storage"
	"campusHub/internal/ticket"
)

var (
	ErrAuthRequired          = errors.New("authentication required")
	ErrEventNotFound         = errors.New("event not found")
	ErrProfileIncomplete     = errors.New("profile has no display name")
	ErrRegistrationClosed    = errors.New("registration is closed for this event")
	ErrEventFull             = errors.New("event is full")
	ErrDuplicateRegistration = errors.New("already registered for this event")
	ErrUnknownQuestion       = errors.New("answer refers to an unknown question")
	ErrRegistrationNotFound  = errors.New("registration not found")
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Store
type Store interface {
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	CreateRegistration(ctx context.Context, reg *models.Registration, responses []models.Response) error
	GetRegistration(ctx context.Context, eventID, userID string) (*models.Registration, error)
	DeleteRegistration(ctx context.Context, eventID, userID string) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TicketEncoder
type TicketEncoder interface {
	Encode(id ticket.Identity) (*ticket.Ticket, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Notifier
type Notifier interface {
	Dispatch(ctx context.Context, n models.Notification)
}

type Service struct {
	log      *slog.Logger
	store    Store
	encoder  TicketEncoder
	notifier Notifier
	now      func() time.Time
}

func New(log *slog.Logger, store Store, encoder TicketEncoder, notifier Notifier) *Service {
	return &Service{
		log:      log,
		store:    store,
		encoder:  encoder,
		notifier: notifier,
		now:      time.Now,
	}
}

// Register signs the session's user up for eventID. answers maps question
// ids to free text; empty answers are kept. paymentProof is only recorded
// for paid events and is never checked here.
func (s *Service) Register(
	ctx context.Context,
	sess *session.Session,
	eventID string,
	answers map[string]string,
	paymentProof *string,
) (*models.Registration, error) {
	const op = "registration.Register"

	log := s.log.With(slog.String("op", op), slog.String("event_id", eventID))

	if sess == nil || sess.UserID == "" {
		return nil, ErrAuthRequired
	}

	log = log.With(slog.String("user_id", sess.UserID))

	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, storage.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("%s: resolve event: %w", op, err)
	}
	if event.ClubID == "" {
		return nil, ErrEventNotFound
	}

	profile, err := s.store.GetProfile(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrProfileNotFound) {
			return nil, ErrProfileIncomplete
		}
		return nil, fmt.Errorf("%s: resolve profile: %w", op, err)
	}

	fullName := strings.TrimSpace(profile.FullName)
	if fullName == "" {
		return nil, ErrProfileIncomplete
	}

	if !event.AcceptsRegistrations(s.now()) {
		return nil, ErrRegistrationClosed
	}

	status := models.InitialStatus(event.Mode)
	if status == models.StatusAccepted && event.IsFull() {
		return nil, ErrEventFull
	}

	responses, err := collectResponses(event.Questions, answers)
	if err != nil {
		return nil, err
	}

	tk, err := s.encoder.Encode(ticket.Identity{
		ClubID:   event.ClubID,
		EventID:  event.ID,
		UserID:   sess.UserID,
		FullName: fullName,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: encode ticket: %w", op, err)
	}

	reg := &models.Registration{
		EventID: event.ID,
		UserID:  sess.UserID,
		Mode:    event.Mode,
		Ticket:  tk.DataURL(),
		Status:  status,
	}

	if event.Mode == models.ModePaid && paymentProof != nil {
		proof := *paymentProof
		reg.PaymentProof = &proof
	}

	err = s.store.CreateRegistration(ctx, reg, responses)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrRegistrationExists):
			return nil, ErrDuplicateRegistration
		case errors.Is(err, storage.ErrEventFull):
			return nil, ErrEventFull
		case errors.Is(err, storage.ErrEventNotFound):
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("%s: create registration: %w", op, err)
	}

	log.Info("registration created",
		slog.String("registration_id", reg.ID),
		slog.String("status", string(reg.Status)),
		slog.Int("responses", len(responses)),
	)

	s.notifier.Dispatch(ctx, models.Notification{
		Type:       models.NotifyRegistrationCreated,
		EventID:    event.ID,
		EventName:  event.Name,
		ClubID:     event.ClubID,
		UserID:     sess.UserID,
		Status:     reg.Status,
		OccurredAt: s.now(),
	})

	return reg, nil
}

// collectResponses keeps the event's question order and rejects answers
// to questions the event does not have.
func collectResponses(questions []models.Question, answers map[string]string) ([]models.Response, error) {
	known := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		known[q.ID] = struct{}{}
	}

	for id := range answers {
		if _, ok := known[id]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownQuestion, id)
		}
	}

	responses := make([]models.Response, 0, len(answers))
	for _, q := range questions {
		answer, ok := answers[q.ID]
		if !ok {
			continue
		}
		responses = append(responses, models.Response{
			QuestionID: q.ID,
			Answer:     answer,
		})
	}

	return responses, nil
}

// Cancel withdraws the caller's registration for eventID.
func (s *Service) Cancel(ctx context.Context, sess *session.Session, eventID string) error {
	const op = "registration.Cancel"

	if sess == nil || sess.UserID == "" {
		return ErrAuthRequired
	}

	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, storage.ErrEventNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("%s: resolve event: %w", op, err)
	}

	if err = s.store.DeleteRegistration(ctx, eventID, sess.UserID); err != nil {
		if errors.Is(err, storage.ErrRegistrationNotFound) {
			return ErrRegistrationNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("registration cancelled",
		slog.String("op", op),
		slog.String("event_id", eventID),
		slog.String("user_id", sess.UserID),
	)

	s.notifier.Dispatch(ctx, models.Notification{
		Type:       models.NotifyRegistrationCancelled,
		EventID:    eventID,
		EventName:  event.Name,
		ClubID:     event.ClubID,
		UserID:     sess.UserID,
		OccurredAt: s.now(),
	})

	return nil
}

// TicketFor returns the caller's registration, ticket included.
func (s *Service) TicketFor(ctx context.Context, sess *session.Session, eventID string) (*models.Registration, error) {
	const op = "registration.TicketFor"

	if sess == nil || sess.UserID == "" {
		return nil, ErrAuthRequired
	}

	reg, err := s.store.GetRegistration(ctx, eventID, sess.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrRegistrationNotFound) {
			return nil, ErrRegistrationNotFound
		}
		s.log.Error("failed to load registration", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return reg, nil
}
