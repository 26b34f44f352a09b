package send

import (
	"bytes"
	"campusHub/internal/http-server/handlers/relay/send/mocks"
	"campusHub/internal/lib/logger/handlers/slogdiscard"
	"campusHub/internal/mailer"
	"campusHub/internal/storage"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSendHandler(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		requestBody    string
		mockSetup      func(l *mocks.EmailLookup, s *mocks.EmailSender)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "Success",
			requestBody: `{"toUserId":"u1","subject":"Hackathon update","content":"Doors open at 9."}`,
			mockSetup: func(l *mocks.EmailLookup, s *mocks.EmailSender) {
				l.On("GetUserEmail", mock.Anything, "u1").Return("asha@campus.edu", nil)
				s.On("Send", mock.Anything, mailer.Message{
					To:      "asha@campus.edu",
					Subject: "Hackathon update",
					Text:    "Doors open at 9.",
				}).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"Email sent"}`,
		},
		{
			name:           "Missing subject",
			requestBody:    `{"toUserId":"u1","content":"x"}`,
			mockSetup:      func(l *mocks.EmailLookup, s *mocks.EmailSender) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"missing required fields","details":"field Subject is a required field"}`,
		},
		{
			name:           "Invalid JSON",
			requestBody:    `nope`,
			mockSetup:      func(l *mocks.EmailLookup, s *mocks.EmailSender) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Unknown recipient",
			requestBody: `{"toUserId":"ghost","subject":"s","content":"c"}`,
			mockSetup: func(l *mocks.EmailLookup, s *mocks.EmailSender) {
				l.On("GetUserEmail", mock.Anything, "ghost").Return("", storage.ErrProfileNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"user email not found","details":"ghost"}`,
		},
		{
			name:        "Delivery failure",
			requestBody: `{"toUserId":"u1","subject":"s","content":"c"}`,
			mockSetup: func(l *mocks.EmailLookup, s *mocks.EmailSender) {
				l.On("GetUserEmail", mock.Anything, "u1").Return("asha@campus.edu", nil)
				s.On("Send", mock.Anything, mock.Anything).Return(errors.New("timeout"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"failed to send email","details":"timeout"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			lookup := mocks.NewEmailLookup(t)
			sender := mocks.NewEmailSender(t)
			tc.mockSetup(lookup, sender)

			handler := New(slogdiscard.NewDiscardLogger(), lookup, sender)

			req, err := http.NewRequest("POST", "/send", bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			} else {
				assert.Contains(t, rr.Body.String(), `"error":"failed to decode request"`)
			}
		})
	}
}
