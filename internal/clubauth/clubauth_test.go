package clubauth

import (
	"context"
	"testing"
	"time"

	"campusHub/internal/clubauth/mocks"
	"campusHub/internal/lib/logger/handlers/slogdiscard"
	"campusHub/internal/lib/session"
	"campusHub/internal/models"
	"campusHub/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	t.Parallel()

	hash, err := HashAccessCode("robotics-2026")
	require.NoError(t, err)

	club := &models.Club{ID: "c1", Name: "Robotics", AccessCodeHash: hash}

	testCases := []struct {
		name        string
		code        string
		mockSetup   func(clubs *mocks.ClubStore, tokens *mocks.TokenIssuer)
		expectedErr error
	}{
		{
			name: "Success",
			code: "robotics-2026",
			mockSetup: func(clubs *mocks.ClubStore, tokens *mocks.TokenIssuer) {
				clubs.On("GetClub", mock.Anything, "c1").Return(club, nil)
				tokens.On("Issue", session.Session{UserID: "club:c1", ClubID: "c1", Role: session.RoleOrganizer}).Return("token", nil)
			},
		},
		{
			name: "Wrong code",
			code: "guess",
			mockSetup: func(clubs *mocks.ClubStore, tokens *mocks.TokenIssuer) {
				clubs.On("GetClub", mock.Anything, "c1").Return(club, nil)
			},
			expectedErr: ErrInvalidCredentials,
		},
		{
			name: "Unknown club",
			code: "robotics-2026",
			mockSetup: func(clubs *mocks.ClubStore, tokens *mocks.TokenIssuer) {
				clubs.On("GetClub", mock.Anything, "c1").Return(nil, storage.ErrClubNotFound)
			},
			expectedErr: ErrInvalidCredentials,
		},
		{
			name: "Store failure",
			code: "robotics-2026",
			mockSetup: func(clubs *mocks.ClubStore, tokens *mocks.TokenIssuer) {
				clubs.On("GetClub", mock.Anything, "c1").Return(nil, assert.AnError)
			},
			expectedErr: assert.AnError,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			clubs := mocks.NewClubStore(t)
			tokens := mocks.NewTokenIssuer(t)
			tc.mockSetup(clubs, tokens)

			svc := New(slogdiscard.NewDiscardLogger(), clubs, tokens)

			token, got, err := svc.Login(context.Background(), "c1", tc.code)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Empty(t, token)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "token", token)
			assert.Equal(t, "Robotics", got.Name)
		})
	}
}

func TestLogin_TokenParses(t *testing.T) {
	t.Parallel()

	hash, err := HashAccessCode("code")
	require.NoError(t, err)

	clubs := mocks.NewClubStore(t)
	clubs.On("GetClub", mock.Anything, "c1").Return(&models.Club{ID: "c1", AccessCodeHash: hash}, nil)

	manager := session.NewManager("secret", time.Hour)
	svc := New(slogdiscard.NewDiscardLogger(), clubs, manager)

	token, _, err := svc.Login(context.Background(), "c1", "code")
	require.NoError(t, err)

	sess, err := manager.Parse(token)
	require.NoError(t, err)
	assert.True(t, sess.Organizes("c1"))
}

func TestProvision(t *testing.T) {
	t.Parallel()

	t.Run("Stored hash accepts the code", func(t *testing.T) {
		t.Parallel()

		saver := mocks.NewClubSaver(t)
		var saved models.Club
		saver.On("SaveClub", mock.Anything, mock.AnythingOfType("models.Club")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(models.Club) }).
			Return(nil)

		club, err := Provision(context.Background(), saver, "c1", "Robotics", "robotics-2026")
		require.NoError(t, err)

		assert.Equal(t, "c1", saved.ID)
		assert.Equal(t, "Robotics", saved.Name)
		assert.NotEqual(t, "robotics-2026", saved.AccessCodeHash)
		assert.Equal(t, saved, *club)

		clubs := mocks.NewClubStore(t)
		tokens := mocks.NewTokenIssuer(t)
		clubs.On("GetClub", mock.Anything, "c1").Return(club, nil)
		tokens.On("Issue", mock.Anything).Return("token", nil)

		token, _, err := New(slogdiscard.NewDiscardLogger(), clubs, tokens).Login(context.Background(), "c1", "robotics-2026")
		require.NoError(t, err)
		assert.Equal(t, "token", token)
	})

	t.Run("Missing access code", func(t *testing.T) {
		t.Parallel()

		club, err := Provision(context.Background(), mocks.NewClubSaver(t), "c1", "Robotics", "")
		assert.ErrorIs(t, err, ErrIncompleteClub)
		assert.Nil(t, club)
	})

	t.Run("Store failure", func(t *testing.T) {
		t.Parallel()

		saver := mocks.NewClubSaver(t)
		saver.On("SaveClub", mock.Anything, mock.Anything).Return(assert.AnError)

		_, err := Provision(context.Background(), saver, "c1", "Robotics", "robotics-2026")
		assert.ErrorIs(t, err, assert.AnError)
	})
}
