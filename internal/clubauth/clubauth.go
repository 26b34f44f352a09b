// Package clubauth exchanges a club's shared access code for an organizer
// session token.
package clubauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"campusHub/internal/lib/session"
	"campusHub/internal/models"
	"campusHub/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid club id or access code")
	ErrIncompleteClub     = errors.New("club id, name and access code are required")
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ClubStore
type ClubStore interface {
	GetClub(ctx context.Context, clubID string) (*models.Club, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ClubSaver
type ClubSaver interface {
	SaveClub(ctx context.Context, club models.Club) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TokenIssuer
type TokenIssuer interface {
	Issue(s session.Session) (string, error)
}

type Service struct {
	log    *slog.Logger
	clubs  ClubStore
	tokens TokenIssuer
}

func New(log *slog.Logger, clubs ClubStore, tokens TokenIssuer) *Service {
	return &Service{log: log, clubs: clubs, tokens: tokens}
}

// HashAccessCode is the hash stored for a club's access code.
func HashAccessCode(code string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Provision creates the club or replaces its name and access code. Only
// the hash of the code is stored.
func Provision(ctx context.Context, clubs ClubSaver, id, name, accessCode string) (*models.Club, error) {
	const op = "clubauth.Provision"

	if id == "" || name == "" || accessCode == "" {
		return nil, ErrIncompleteClub
	}

	hash, err := HashAccessCode(accessCode)
	if err != nil {
		return nil, fmt.Errorf("%s: hash access code: %w", op, err)
	}

	club := models.Club{ID: id, Name: name, AccessCodeHash: hash}
	if err := clubs.SaveClub(ctx, club); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &club, nil
}

// Login checks accessCode against the club's stored hash and returns an
// organizer token for the club. Unknown clubs and wrong codes are not told
// apart.
func (s *Service) Login(ctx context.Context, clubID, accessCode string) (string, *models.Club, error) {
	const op = "clubauth.Login"

	log := s.log.With(slog.String("op", op), slog.String("club_id", clubID))

	club, err := s.clubs.GetClub(ctx, clubID)
	if err != nil {
		if errors.Is(err, storage.ErrClubNotFound) {
			log.Info("login for unknown club")
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(club.AccessCodeHash), []byte(accessCode)); err != nil {
		log.Info("login with wrong access code")
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(session.Session{
		UserID: "club:" + club.ID,
		ClubID: club.ID,
		Role:   session.RoleOrganizer,
	})
	if err != nil {
		return "", nil, fmt.Errorf("%s: issue token: %w", op, err)
	}

	log.Info("organizer logged in")

	return token, club, nil
}
