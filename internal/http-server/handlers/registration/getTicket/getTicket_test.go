package getTicket

import (
	"campusHub/internal/http-server/handlers/registration/getTicket/mocks"
	"campusHub/internal/lib/logger/handlers/slogdiscard"
	"campusHub/internal/lib/session"
	"campusHub/internal/models"
	"campusHub/internal/registration"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const eventID = "6f1c2a7e-3b4d-4e5f-8a9b-0c1d2e3f4a5b"

var (
	student = &session.Session{UserID: "u1", Role: session.RoleStudent}
	png     = []byte("\x89PNG\r\n\x1a\nticket")
	stored  = &models.Registration{
		ID:      "r1",
		EventID: eventID,
		UserID:  "u1",
		Status:  models.StatusAccepted,
		Ticket:  "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
	}
)

func newRouter(t *testing.T, getter TicketGetter) http.Handler {
	t.Helper()

	logger := slogdiscard.NewDiscardLogger()

	router := chi.NewRouter()
	router.Use(middleware.URLFormat)
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), student)))
		})
	})
	router.Get("/events/{id}/ticket", New(logger, getter))

	return router
}

func TestGetTicketHandler(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		path           string
		mockSetup      func(m *mocks.TicketGetter)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name: "Success",
			path: "/events/" + eventID + "/ticket",
			mockSetup: func(m *mocks.TicketGetter) {
				m.On("TicketFor", mock.Anything, student, eventID).Return(stored, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				var resp TicketResponse
				require.NoError(t, json.Unmarshal([]byte(body), &resp))

				assert.Equal(t, "OK", resp.Status)
				assert.Equal(t, "r1", resp.Registration.ID)
				assert.Equal(t, stored.Ticket, resp.Registration.Ticket)
				assert.False(t, resp.Registration.IsUsed)
			},
		},
		{
			name:           "Invalid event ID",
			path:           "/events/7/ticket",
			mockSetup:      func(m *mocks.TicketGetter) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid event id format"}`,
		},
		{
			name: "Not registered",
			path: "/events/" + eventID + "/ticket",
			mockSetup: func(m *mocks.TicketGetter) {
				m.On("TicketFor", mock.Anything, student, eventID).Return(nil, registration.ErrRegistrationNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"registration not found"}`,
		},
		{
			name: "Store failure",
			path: "/events/" + eventID + "/ticket",
			mockSetup: func(m *mocks.TicketGetter) {
				m.On("TicketFor", mock.Anything, student, eventID).Return(nil, errors.New("timeout"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to load ticket"}`,
		},
		{
			name: "Broken stored ticket",
			path: "/events/" + eventID + "/ticket.png",
			mockSetup: func(m *mocks.TicketGetter) {
				m.On("TicketFor", mock.Anything, student, eventID).
					Return(&models.Registration{ID: "r1", Ticket: "not a data url"}, nil)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to render ticket"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockGetter := mocks.NewTicketGetter(t)
			tc.mockSetup(mockGetter)

			req, err := http.NewRequest("GET", tc.path, nil)
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			newRouter(t, mockGetter).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			} else if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.String())
			}
		})
	}
}

func TestGetTicketPNG(t *testing.T) {
	t.Parallel()

	mockGetter := mocks.NewTicketGetter(t)
	mockGetter.On("TicketFor", mock.Anything, student, eventID).Return(stored, nil)

	req, err := http.NewRequest("GET", "/events/"+eventID+"/ticket.png", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	newRouter(t, mockGetter).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.Equal(t, png, rr.Body.Bytes())
}
