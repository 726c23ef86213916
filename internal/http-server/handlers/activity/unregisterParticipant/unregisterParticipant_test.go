package unregisterParticipant

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activitySignup/internal/http-server/handlers/activity/unregisterParticipant/mocks"
	"activitySignup/internal/lib/logger/handlers/slogdiscard"
	"activitySignup/internal/storage"
)

func newRouter(handler http.HandlerFunc) *chi.Mux {
	router := chi.NewRouter()
	router.Delete("/activities/{name}/unregister", handler)
	return router
}

func unregisterURL(activity, email string) string {
	return fmt.Sprintf("/activities/%s/unregister?email=%s", url.PathEscape(activity), url.QueryEscape(email))
}

func TestUnregisterParticipantHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		url            string
		mockSetup      func(mock *mocks.ParticipantRemover)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			url:  unregisterURL("Chess Club", "michael@mergington.edu"),
			mockSetup: func(mock *mocks.ParticipantRemover) {
				mock.On("Unregister", "Chess Club", "michael@mergington.edu").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","message":"Unregistered michael@mergington.edu from Chess Club"}`,
		},
		{
			name:           "Missing email",
			url:            "/activities/Chess%20Club/unregister",
			mockSetup:      func(mock *mocks.ParticipantRemover) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","detail":"field Email is a required field"}`,
		},
		{
			name:           "Malformed email",
			url:            unregisterURL("Chess Club", "not-an-email"),
			mockSetup:      func(mock *mocks.ParticipantRemover) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","detail":"field Email is not a valid email"}`,
		},
		{
			name: "Activity not found",
			url:  unregisterURL("Quidditch", "michael@mergington.edu"),
			mockSetup: func(mock *mocks.ParticipantRemover) {
				mock.On("Unregister", "Quidditch", "michael@mergington.edu").
					Return(fmt.Errorf("failed to unregister: %w", storage.ErrActivityNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","detail":"Activity not found"}`,
		},
		{
			name: "Not a participant",
			url:  unregisterURL("Chess Club", "nobody@mergington.edu"),
			mockSetup: func(mock *mocks.ParticipantRemover) {
				mock.On("Unregister", "Chess Club", "nobody@mergington.edu").
					Return(fmt.Errorf("failed to unregister: %w", storage.ErrNotSignedUp))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","detail":"Student not signed up for this activity"}`,
		},
		{
			name: "Internal server error",
			url:  unregisterURL("Chess Club", "michael@mergington.edu"),
			mockSetup: func(mock *mocks.ParticipantRemover) {
				mock.On("Unregister", "Chess Club", "michael@mergington.edu").
					Return(errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","detail":"failed to unregister from activity"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockRemover := mocks.NewParticipantRemover(t)
			tc.mockSetup(mockRemover)

			router := newRouter(New(logger, mockRemover))

			req, err := http.NewRequest("DELETE", tc.url, nil)
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")

			mockRemover.AssertExpectations(t)
		})
	}
}

func TestHandlerWithoutChiContext(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	mockRemover := mocks.NewParticipantRemover(t)
	handler := New(logger, mockRemover)

	req, err := http.NewRequest("DELETE", "/?email=michael@mergington.edu", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "activity name is required")
}
