package mailer_test

import (
	"context"
	"errors"
	"testing"

	"campusHub/internal/lib/logger/handlers/slogdiscard"
	"campusHub/internal/mailer"
	"campusHub/internal/mailer/mocks"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMailer_Send(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		msg         mailer.Message
		mockSetup   func(client *mocks.Client)
		expectedErr error
		errContains string
	}{
		{
			name: "Success",
			msg:  mailer.Message{To: "ada@example.com", Subject: "Hi", Text: "hello", HTML: "<p>hello</p>"},
			mockSetup: func(client *mocks.Client) {
				client.On("SendWithContext", mock.Anything, mock.MatchedBy(func(m *mail.SGMailV3) bool {
					return m.Subject == "Hi" &&
						m.From.Address == "no-reply@campushub.local" &&
						len(m.Personalizations) == 1 &&
						m.Personalizations[0].To[0].Address == "ada@example.com"
				})).Return(&rest.Response{StatusCode: 202}, nil)
			},
		},
		{
			name: "Provider rejects",
			msg:  mailer.Message{To: "ada@example.com", Subject: "Hi", Text: "hello"},
			mockSetup: func(client *mocks.Client) {
				client.On("SendWithContext", mock.Anything, mock.Anything).
					Return(&rest.Response{StatusCode: 401, Body: `{"errors":[{"message":"bad key"}]}`}, nil)
			},
			expectedErr: mailer.ErrDeliveryFailed,
			errContains: "bad key",
		},
		{
			name: "Transport failure",
			msg:  mailer.Message{To: "ada@example.com", Subject: "Hi", Text: "hello"},
			mockSetup: func(client *mocks.Client) {
				client.On("SendWithContext", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))
			},
			expectedErr: mailer.ErrDeliveryFailed,
			errContains: "connection reset",
		},
		{
			name:        "No recipient",
			msg:         mailer.Message{Subject: "Hi", Text: "hello"},
			mockSetup:   func(client *mocks.Client) {},
			expectedErr: mailer.ErrNoRecipient,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client := mocks.NewClient(t)
			tc.mockSetup(client)

			m := mailer.NewWithClient(slogdiscard.NewDiscardLogger(), client, "no-reply@campushub.local", "Campus Hub")

			err := m.Send(context.Background(), tc.msg)
			if tc.expectedErr == nil {
				require.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tc.expectedErr)
			if tc.errContains != "" {
				assert.Contains(t, err.Error(), tc.errContains)
			}
		})
	}
}
