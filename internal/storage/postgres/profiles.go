package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"campusHub/internal/models"
	"campusHub/internal/storage"
)

func (s *Storage) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	const op = "storage.postgres.GetProfile"

	query := `
		SELECT user_id, full_name, email, roll_number, year, branch
		FROM profiles
		WHERE user_id = $1`

	var p models.Profile
	err := s.DB.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID,
		&p.FullName,
		&p.Email,
		&p.RollNumber,
		&p.Year,
		&p.Branch,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrProfileNotFound
		}
		return nil, fmt.Errorf("%s: failed to get profile: %w", op, err)
	}

	return &p, nil
}

// GetUserEmail is the lookup the mail relay performs before sending.
func (s *Storage) GetUserEmail(ctx context.Context, userID string) (string, error) {
	const op = "storage.postgres.GetUserEmail"

	var email string
	err := s.DB.QueryRowContext(ctx, `SELECT email FROM profiles WHERE user_id = $1`, userID).Scan(&email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", storage.ErrProfileNotFound
		}
		return "", fmt.Errorf("%s: failed to get email: %w", op, err)
	}

	if email == "" {
		return "", storage.ErrProfileNotFound
	}

	return email, nil
}

func (s *Storage) GetClub(ctx context.Context, clubID string) (*models.Club, error) {
	const op = "storage.postgres.GetClub"

	var c models.Club
	err := s.DB.QueryRowContext(ctx, `SELECT id, name, access_code_hash FROM clubs WHERE id = $1`, clubID).
		Scan(&c.ID, &c.Name, &c.AccessCodeHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrClubNotFound
		}
		return nil, fmt.Errorf("%s: failed to get club: %w", op, err)
	}

	return &c, nil
}

// SaveClub inserts the club or overwrites the name and access code hash of
// an existing one.
func (s *Storage) SaveClub(ctx context.Context, club models.Club) error {
	const op = "storage.postgres.SaveClub"

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO clubs (id, name, access_code_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, access_code_hash = EXCLUDED.access_code_hash`,
		club.ID, club.Name, club.AccessCodeHash,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to save club: %w", op, err)
	}

	return nil
}
