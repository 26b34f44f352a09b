package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"campusHub/internal/models"
	"campusHub/internal/storage"

	"github.com/google/uuid"
)

const eventColumns = `
		e.id, e.club_id, e.name, e.description, e.starts_at, e.location,
		e.max_attendees, e.registration_deadline, e.status, e.registration_mode,
		e.payment_link, e.created_at,
		(SELECT COUNT(*) FROM registrations r WHERE r.event_id = e.id AND r.status = 'accepted')`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*models.Event, error) {
	var (
		event       models.Event
		maxAtt      sql.NullInt64
		deadline    sql.NullTime
		paymentLink sql.NullString
	)

	err := row.Scan(
		&event.ID,
		&event.ClubID,
		&event.Name,
		&event.Description,
		&event.StartsAt,
		&event.Location,
		&maxAtt,
		&deadline,
		&event.Status,
		&event.Mode,
		&paymentLink,
		&event.CreatedAt,
		&event.CurrentAttendees,
	)
	if err != nil {
		return nil, err
	}

	if maxAtt.Valid {
		n := int(maxAtt.Int64)
		event.MaxAttendees = &n
	}
	if deadline.Valid {
		d := deadline.Time
		event.RegistrationDeadline = &d
	}
	if paymentLink.Valid {
		l := paymentLink.String
		event.PaymentLink = &l
	}

	return &event, nil
}

// CreateEvent stores the event and its questions in one transaction and
// fills in the generated ids.
func (s *Storage) CreateEvent(ctx context.Context, event *models.Event) (string, error) {
	const op = "storage.postgres.CreateEvent"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	event.ID = uuid.NewString()
	if event.Status == "" {
		event.Status = models.EventOpen
	}
	if event.Mode == "" {
		event.Mode = models.ModeOpen
	}

	var maxAtt sql.NullInt64
	if event.MaxAttendees != nil {
		maxAtt = sql.NullInt64{Int64: int64(*event.MaxAttendees), Valid: true}
	}
	var deadline sql.NullTime
	if event.RegistrationDeadline != nil {
		deadline = sql.NullTime{Time: *event.RegistrationDeadline, Valid: true}
	}
	var paymentLink sql.NullString
	if event.PaymentLink != nil {
		paymentLink = sql.NullString{String: *event.PaymentLink, Valid: true}
	}

	insertQuery := `
		INSERT INTO events (id, club_id, name, description, starts_at, location,
			max_attendees, registration_deadline, status, registration_mode, payment_link)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`

	err = tx.QueryRowContext(ctx, insertQuery,
		event.ID,
		event.ClubID,
		event.Name,
		event.Description,
		event.StartsAt,
		event.Location,
		maxAtt,
		deadline,
		event.Status,
		event.Mode,
		paymentLink,
	).Scan(&event.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("%s: failed to create event: %w", op, err)
	}

	questionQuery := `
		INSERT INTO event_questions (id, event_id, prompt, position)
		VALUES ($1, $2, $3, $4)`

	for i := range event.Questions {
		q := &event.Questions[i]
		q.ID = uuid.NewString()
		q.EventID = event.ID
		q.Position = i

		if _, err = tx.ExecContext(ctx, questionQuery, q.ID, q.EventID, q.Prompt, q.Position); err != nil {
			return "", fmt.Errorf("%s: failed to create question: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("%s: failed to commit: %w", op, err)
	}

	return event.ID, nil
}

func (s *Storage) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	const op = "storage.postgres.GetEvent"

	query := `SELECT` + eventColumns + `
		FROM events e
		WHERE e.id = $1 AND e.is_deleted = false`

	event, err := scanEvent(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEventNotFound
		}
		return nil, fmt.Errorf("%s: failed to get event: %w", op, err)
	}

	event.Questions, err = s.questions(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return event, nil
}

func (s *Storage) questions(ctx context.Context, eventID string) ([]models.Question, error) {
	query := `
		SELECT id, event_id, prompt, position
		FROM event_questions
		WHERE event_id = $1
		ORDER BY position ASC`

	rows, err := s.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		if err = rows.Scan(&q.ID, &q.EventID, &q.Prompt, &q.Position); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}

	return questions, nil
}

func (s *Storage) ListEvents(ctx context.Context) ([]models.Event, error) {
	const op = "storage.postgres.ListEvents"

	query := `SELECT` + eventColumns + `
		FROM events e
		WHERE e.is_deleted = false
		ORDER BY e.starts_at ASC`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get events: %w", op, err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan event: %w", op, err)
		}
		events = append(events, *event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: error iterating events: %w", op, err)
	}

	return events, nil
}

// SoftDeleteEvent hides the event owned by clubID. Events of other clubs
// are reported as not found.
func (s *Storage) SoftDeleteEvent(ctx context.Context, id, clubID string) error {
	const op = "storage.postgres.SoftDeleteEvent"

	query := `
		UPDATE events
		SET is_deleted = true
		WHERE id = $1 AND club_id = $2 AND is_deleted = false`

	result, err := s.DB.ExecContext(ctx, query, id, clubID)
	if err != nil {
		return fmt.Errorf("%s: failed to delete event: %w", op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return storage.ErrEventNotFound
	}

	return nil
}

// RefreshEventStatuses closes events whose deadline passed and marks open
// events whose deadline falls within window as closing soon.
func (s *Storage) RefreshEventStatuses(ctx context.Context, now time.Time, window time.Duration) (closed, closingSoon int64, err error) {
	const op = "storage.postgres.RefreshEventStatuses"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	closeQuery := `
		UPDATE events
		SET status = 'Closed'
		WHERE is_deleted = false
		AND registration_deadline IS NOT NULL
		AND registration_deadline < $1
		AND status IN ('Open', 'Closing Soon', 'Waitlist')`

	result, err := tx.ExecContext(ctx, closeQuery, now)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: failed to close events: %w", op, err)
	}
	closed, _ = result.RowsAffected()

	soonQuery := `
		UPDATE events
		SET status = 'Closing Soon'
		WHERE is_deleted = false
		AND registration_deadline IS NOT NULL
		AND registration_deadline >= $1
		AND registration_deadline < $2
		AND status = 'Open'`

	result, err = tx.ExecContext(ctx, soonQuery, now, now.Add(window))
	if err != nil {
		return 0, 0, fmt.Errorf("%s: failed to mark closing events: %w", op, err)
	}
	closingSoon, _ = result.RowsAffected()

	if err = tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("%s: failed to commit: %w", op, err)
	}

	return closed, closingSoon, nil
}
