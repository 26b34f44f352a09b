package params

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventID(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		param       string
		expectedErr error
	}{
		{name: "Valid", param: "6f1c2a7e-3b4d-4e5f-8a9b-0c1d2e3f4a5b"},
		{name: "Missing", param: "", expectedErr: ErrMissingEventID},
		{name: "Not a uuid", param: "42", expectedErr: ErrInvalidEventID},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest("GET", "/", nil)
			rctx := chi.NewRouteContext()
			if tc.param != "" {
				rctx.URLParams.Add("id", tc.param)
			}
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			id, err := EventID(req)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.param, id)
		})
	}
}
