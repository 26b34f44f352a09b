package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"campusHub/internal/models"
	"campusHub/internal/storage"

	"github.com/google/uuid"
)

// CreateRegistration inserts the registration and its responses as one
// unit. The event row is locked for the duration so that the duplicate
// and capacity checks cannot race with another registration.
func (s *Storage) CreateRegistration(ctx context.Context, reg *models.Registration, responses []models.Response) error {
	const op = "storage.postgres.CreateRegistration"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	var maxAtt sql.NullInt64
	lockQuery := `
		SELECT max_attendees
		FROM events
		WHERE id = $1 AND is_deleted = false
		FOR UPDATE`

	err = tx.QueryRowContext(ctx, lockQuery, reg.EventID).Scan(&maxAtt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrEventNotFound
		}
		return fmt.Errorf("%s: failed to lock event: %w", op, err)
	}

	var exists bool
	checkQuery := `
		SELECT EXISTS(
			SELECT 1 FROM registrations
			WHERE event_id = $1 AND user_id = $2
		)`

	if err = tx.QueryRowContext(ctx, checkQuery, reg.EventID, reg.UserID).Scan(&exists); err != nil {
		return fmt.Errorf("%s: failed to check existing registration: %w", op, err)
	}
	if exists {
		return storage.ErrRegistrationExists
	}

	if maxAtt.Valid && reg.Status == models.StatusAccepted {
		var accepted int64
		countQuery := `
			SELECT COUNT(*)
			FROM registrations
			WHERE event_id = $1 AND status = 'accepted'`

		if err = tx.QueryRowContext(ctx, countQuery, reg.EventID).Scan(&accepted); err != nil {
			return fmt.Errorf("%s: failed to count attendees: %w", op, err)
		}
		if accepted >= maxAtt.Int64 {
			return storage.ErrEventFull
		}
	}

	reg.ID = uuid.NewString()

	var proof sql.NullString
	if reg.PaymentProof != nil {
		proof = sql.NullString{String: *reg.PaymentProof, Valid: true}
	}

	insertQuery := `
		INSERT INTO registrations (id, event_id, user_id, registration_mode, payment_proof, ticket, status, is_used)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false)
		RETURNING created_at`

	err = tx.QueryRowContext(ctx, insertQuery,
		reg.ID,
		reg.EventID,
		reg.UserID,
		reg.Mode,
		proof,
		reg.Ticket,
		reg.Status,
	).Scan(&reg.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrRegistrationExists
		}
		return fmt.Errorf("%s: failed to create registration: %w", op, err)
	}

	responseQuery := `
		INSERT INTO responses (id, registration_id, question_id, user_id, answer)
		VALUES ($1, $2, $3, $4, $5)`

	reg.Responses = make([]models.Response, 0, len(responses))
	for _, r := range responses {
		r.ID = uuid.NewString()
		r.RegistrationID = reg.ID
		r.UserID = reg.UserID

		if _, err = tx.ExecContext(ctx, responseQuery, r.ID, r.RegistrationID, r.QuestionID, r.UserID, r.Answer); err != nil {
			return fmt.Errorf("%s: failed to save response: %w", op, err)
		}
		reg.Responses = append(reg.Responses, r)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit: %w", op, err)
	}

	return nil
}

func (s *Storage) GetRegistration(ctx context.Context, eventID, userID string) (*models.Registration, error) {
	const op = "storage.postgres.GetRegistration"

	query := `
		SELECT id, event_id, user_id, registration_mode, payment_proof, ticket,
			status, is_used, used_at, created_at
		FROM registrations
		WHERE event_id = $1 AND user_id = $2`

	var (
		reg    models.Registration
		proof  sql.NullString
		usedAt sql.NullTime
	)

	err := s.DB.QueryRowContext(ctx, query, eventID, userID).Scan(
		&reg.ID,
		&reg.EventID,
		&reg.UserID,
		&reg.Mode,
		&proof,
		&reg.Ticket,
		&reg.Status,
		&reg.IsUsed,
		&usedAt,
		&reg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("%s: failed to get registration: %w", op, err)
	}

	if proof.Valid {
		p := proof.String
		reg.PaymentProof = &p
	}
	if usedAt.Valid {
		u := usedAt.Time
		reg.UsedAt = &u
	}

	responsesQuery := `
		SELECT id, registration_id, question_id, user_id, answer
		FROM responses
		WHERE registration_id = $1`

	rows, err := s.DB.QueryContext(ctx, responsesQuery, reg.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get responses: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var r models.Response
		if err = rows.Scan(&r.ID, &r.RegistrationID, &r.QuestionID, &r.UserID, &r.Answer); err != nil {
			return nil, fmt.Errorf("%s: failed to scan response: %w", op, err)
		}
		reg.Responses = append(reg.Responses, r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: error iterating responses: %w", op, err)
	}

	return &reg, nil
}

// DeleteRegistration removes the registration together with its responses.
func (s *Storage) DeleteRegistration(ctx context.Context, eventID, userID string) error {
	const op = "storage.postgres.DeleteRegistration"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	responsesQuery := `
		DELETE FROM responses
		WHERE registration_id IN (
			SELECT id FROM registrations WHERE event_id = $1 AND user_id = $2
		)`

	if _, err = tx.ExecContext(ctx, responsesQuery, eventID, userID); err != nil {
		return fmt.Errorf("%s: failed to delete responses: %w", op, err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM registrations WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	if err != nil {
		return fmt.Errorf("%s: failed to delete registration: %w", op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return storage.ErrRegistrationNotFound
	}

	return tx.Commit()
}

func (s *Storage) ListAttendees(ctx context.Context, eventID string, status models.RegistrationStatus) ([]models.Attendee, error) {
	const op = "storage.postgres.ListAttendees"

	query := `
		SELECT r.id, r.user_id,
			COALESCE(p.full_name, ''), COALESCE(p.roll_number, ''),
			COALESCE(p.year, ''), COALESCE(p.branch, ''),
			r.status, r.payment_proof, r.is_used, r.created_at
		FROM registrations r
		LEFT JOIN profiles p ON p.user_id = r.user_id
		WHERE r.event_id = $1 AND r.status = $2
		ORDER BY r.created_at, r.id`

	rows, err := s.DB.QueryContext(ctx, query, eventID, status)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get attendees: %w", op, err)
	}
	defer rows.Close()

	attendees := []models.Attendee{}
	for rows.Next() {
		var (
			a     models.Attendee
			proof sql.NullString
		)

		err = rows.Scan(
			&a.RegistrationID,
			&a.UserID,
			&a.FullName,
			&a.RollNumber,
			&a.Year,
			&a.Branch,
			&a.Status,
			&proof,
			&a.IsUsed,
			&a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan attendee: %w", op, err)
		}

		if proof.Valid {
			p := proof.String
			a.PaymentProof = &p
		}
		attendees = append(attendees, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: error iterating attendees: %w", op, err)
	}

	return attendees, nil
}

// SetRegistrationStatus overwrites the status whatever it was before.
func (s *Storage) SetRegistrationStatus(ctx context.Context, eventID, userID string, status models.RegistrationStatus) error {
	const op = "storage.postgres.SetRegistrationStatus"

	query := `
		UPDATE registrations
		SET status = $3
		WHERE event_id = $1 AND user_id = $2`

	result, err := s.DB.ExecContext(ctx, query, eventID, userID, status)
	if err != nil {
		return fmt.Errorf("%s: failed to update status: %w", op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return storage.ErrRegistrationNotFound
	}

	return nil
}

// RedeemTicket flips is_used for an accepted, unused registration in a
// single conditional statement. When nothing was flipped the current row
// is read back to tell "already used" from "not accepted".
func (s *Storage) RedeemTicket(ctx context.Context, eventID, userID string) (*models.Redemption, error) {
	const op = "storage.postgres.RedeemTicket"

	red := models.Redemption{EventID: eventID, UserID: userID}

	var usedAt sql.NullTime
	updateQuery := `
		UPDATE registrations
		SET is_used = true, used_at = NOW()
		WHERE event_id = $1 AND user_id = $2 AND is_used = false AND status = 'accepted'
		RETURNING id, status, used_at`

	err := s.DB.QueryRowContext(ctx, updateQuery, eventID, userID).Scan(&red.RegistrationID, &red.Status, &usedAt)
	if err == nil {
		if usedAt.Valid {
			u := usedAt.Time
			red.UsedAt = &u
		}
		return &red, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: failed to redeem ticket: %w", op, err)
	}

	selectQuery := `
		SELECT id, status, is_used, used_at
		FROM registrations
		WHERE event_id = $1 AND user_id = $2`

	err = s.DB.QueryRowContext(ctx, selectQuery, eventID, userID).Scan(&red.RegistrationID, &red.Status, &red.AlreadyUsed, &usedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("%s: failed to read registration: %w", op, err)
	}

	if usedAt.Valid {
		u := usedAt.Time
		red.UsedAt = &u
	}

	return &red, nil
}
