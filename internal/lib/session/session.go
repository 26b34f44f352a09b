// Package session carries the authenticated caller through request
// contexts and mints the tokens that identify it.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

type Role string

const (
	RoleStudent   Role = "student"
	RoleOrganizer Role = "organizer"
)

// Session is the caller of a request. ClubID is set only for organizers.
type Session struct {
	UserID string
	ClubID string
	Role   Role
}

func (s *Session) IsOrganizer() bool {
	return s != nil && s.Role == RoleOrganizer && s.ClubID != ""
}

// Organizes reports whether the session acts on behalf of clubID.
func (s *Session) Organizes(clubID string) bool {
	return s.IsOrganizer() && s.ClubID == clubID
}

type Claims struct {
	ClubID string `json:"club_id,omitempty"`
	Role   Role   `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for s. Tokens for students normally come from the
// identity provider, which shares the signing secret.
func (m *Manager) Issue(s Session) (string, error) {
	now := m.now()

	claims := Claims{
		ClubID: s.ClubID,
		Role:   s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *Manager) Parse(tokenString string) (*Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	role := claims.Role
	if role == "" {
		role = RoleStudent
	}

	return &Session{
		UserID: claims.Subject,
		ClubID: claims.ClubID,
		Role:   role,
	}, nil
}

type ctxKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns nil for anonymous requests.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(ctxKey{}).(*Session)
	return s
}
