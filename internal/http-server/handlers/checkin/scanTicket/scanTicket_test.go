package scanTicket

import (
	"bytes"
	"campusHub/internal/checkin"
	"campusHub/internal/http-server/handlers/checkin/scanTicket/mocks"
	"campusHub/internal/lib/logger/handlers/slogdiscard"
	"campusHub/internal/lib/session"
	"campusHub/internal/models"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestScanTicketHandler(t *testing.T) {
	t.Parallel()

	organizer := &session.Session{UserID: "club:c1", ClubID: "c1", Role: session.RoleOrganizer}

	testCases := []struct {
		name           string
		requestBody    string
		mockSetup      func(m *mocks.TicketRedeemer)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "Checked in",
			requestBody: `{"raw":"{\"user_id\":\"u1\"}"}`,
			mockSetup: func(m *mocks.TicketRedeemer) {
				m.On("Redeem", mock.Anything, organizer, `{"user_id":"u1"}`).Return(&checkin.Result{
					Outcome:     checkin.OutcomeCheckedIn,
					Diagnostics: map[string]string{"user_id": "u1"},
					Redemption: &models.Redemption{
						RegistrationID: "r1",
						EventID:        "e1",
						UserID:         "u1",
						Status:         models.StatusAccepted,
					},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"status":"OK","outcome":"checked_in","ticket":{"user_id":"u1"},
				"redemption":{"registration_id":"r1","event_id":"e1","user_id":"u1","status":"accepted","already_used":false}}`,
		},
		{
			name:        "Unreadable scan is still a success",
			requestBody: `{"raw":"garbage"}`,
			mockSetup: func(m *mocks.TicketRedeemer) {
				m.On("Redeem", mock.Anything, organizer, "garbage").Return(&checkin.Result{
					Outcome:     checkin.OutcomeUnreadable,
					Diagnostics: map[string]string{"user_id": "garbage", "full_name": "N/A"},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","outcome":"unreadable","ticket":{"user_id":"garbage","full_name":"N/A"}}`,
		},
		{
			name:           "Missing raw",
			requestBody:    `{}`,
			mockSetup:      func(m *mocks.TicketRedeemer) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Raw is a required field"}`,
		},
		{
			name:           "Invalid JSON",
			requestBody:    `{`,
			mockSetup:      func(m *mocks.TicketRedeemer) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
		{
			name:        "Forbidden",
			requestBody: `{"raw":"x"}`,
			mockSetup: func(m *mocks.TicketRedeemer) {
				m.On("Redeem", mock.Anything, organizer, "x").Return(nil, checkin.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"only club organizers can check in attendees"}`,
		},
		{
			name:        "Store failure",
			requestBody: `{"raw":"x"}`,
			mockSetup: func(m *mocks.TicketRedeemer) {
				m.On("Redeem", mock.Anything, organizer, "x").Return(nil, errors.New("conn reset"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to redeem ticket"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockRedeemer := mocks.NewTicketRedeemer(t)
			tc.mockSetup(mockRedeemer)

			handler := New(slogdiscard.NewDiscardLogger(), mockRedeemer)

			req, err := http.NewRequest("POST", "/checkin/scan", bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)
			req = req.WithContext(session.WithSession(req.Context(), organizer))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}
