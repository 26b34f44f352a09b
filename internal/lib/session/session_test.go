package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_IssueAndParse(t *testing.T) {
	t.Parallel()

	m := NewManager("secret", time.Hour)

	token, err := m.Issue(Session{UserID: "u1", ClubID: "c1", Role: RoleOrganizer})
	require.NoError(t, err)

	s, err := m.Parse(token)
	require.NoError(t, err)

	assert.Equal(t, "u1", s.UserID)
	assert.Equal(t, "c1", s.ClubID)
	assert.True(t, s.IsOrganizer())
	assert.True(t, s.Organizes("c1"))
	assert.False(t, s.Organizes("c2"))
}

func TestManager_ProviderTokenDefaultsToStudent(t *testing.T) {
	t.Parallel()

	claims := jwt.RegisteredClaims{
		Subject:   "u2",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	s, err := NewManager("secret", time.Hour).Parse(token)
	require.NoError(t, err)

	assert.Equal(t, "u2", s.UserID)
	assert.Equal(t, RoleStudent, s.Role)
	assert.False(t, s.IsOrganizer())
}

func TestManager_ParseErrors(t *testing.T) {
	t.Parallel()

	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	expired := NewManager("secret", time.Minute)
	expired.now = func() time.Time { return issued }
	oldToken, err := expired.Issue(Session{UserID: "u1"})
	require.NoError(t, err)

	later := NewManager("secret", time.Minute)
	later.now = func() time.Time { return issued.Add(time.Hour) }

	_, err = later.Parse(oldToken)
	assert.ErrorIs(t, err, ErrExpiredToken)

	other := NewManager("other", time.Hour)
	token, err := other.Issue(Session{UserID: "u1"})
	require.NoError(t, err)

	_, err = NewManager("secret", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewManager("secret", time.Hour).Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	noSubject, err := NewManager("secret", time.Hour).Issue(Session{})
	require.NoError(t, err)
	_, err = NewManager("secret", time.Hour).Parse(noSubject)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestContext(t *testing.T) {
	t.Parallel()

	assert.Nil(t, FromContext(context.Background()))

	s := &Session{UserID: "u1", Role: RoleStudent}
	ctx := WithSession(context.Background(), s)
	assert.Same(t, s, FromContext(ctx))

	var nilSession *Session
	assert.False(t, nilSession.IsOrganizer())
}
