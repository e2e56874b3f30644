package get_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CareBookingService/internal/api/handlers"
	"github.com/m04kA/CareBookingService/internal/api/middleware"
	"github.com/m04kA/CareBookingService/internal/service/bookings"
	"github.com/m04kA/CareBookingService/internal/service/bookings/models"
	"github.com/m04kA/CareBookingService/pkg/logger"
)

type fakeService struct {
	booking *models.BookingResponse
	err     error
}

func (f *fakeService) GetByID(_ context.Context, _ int64, _ int64) (*models.BookingResponse, error) {
	return f.booking, f.err
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name   string
		target string
		userID int64
		svc    *fakeService
		status int
	}{
		{"ok", "/bookings/42", 5, &fakeService{booking: &models.BookingResponse{ID: 42}}, http.StatusOK},
		{"bad id", "/bookings/x", 5, &fakeService{}, http.StatusBadRequest},
		{"zero id", "/bookings/0", 5, &fakeService{}, http.StatusBadRequest},
		{"no user", "/bookings/42", 0, &fakeService{}, http.StatusUnauthorized},
		{"not found", "/bookings/42", 5, &fakeService{err: bookings.ErrBookingNotFound}, http.StatusNotFound},
		{"forbidden", "/bookings/42", 5, &fakeService{err: bookings.ErrAccessDenied}, http.StatusForbidden},
		{"caregiver service down", "/bookings/42", 70, &fakeService{err: bookings.ErrCaregiverUnavailable}, http.StatusServiceUnavailable},
		{"internal", "/bookings/42", 5, &fakeService{err: bookings.ErrInternal}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := mux.NewRouter()
			router.HandleFunc("/bookings/{bookingId}", NewHandler(tt.svc, logger.NewNop()).Handle)

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.userID > 0 {
				req = req.WithContext(middleware.WithUserID(req.Context(), tt.userID))
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandler_CaregiverServiceDownIsRetryable(t *testing.T) {
	router := mux.NewRouter()
	svc := &fakeService{err: fmt.Errorf("%w: timeout", bookings.ErrCaregiverUnavailable)}
	router.HandleFunc("/bookings/{bookingId}", NewHandler(svc, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodGet, "/bookings/42", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), 70))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Retryable)
	assert.Equal(t, msgCaregiverUnavailable, body.Error)
}

func TestHandler_CaregiverOwnerSeesBooking(t *testing.T) {
	router := mux.NewRouter()
	svc := &fakeService{booking: &models.BookingResponse{ID: 42, CareseekerID: 5, CaregiverID: 7, Status: "confirmed"}}
	router.HandleFunc("/bookings/{bookingId}", NewHandler(svc, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodGet, "/bookings/42", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), 70))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(42), body.ID)
	assert.Equal(t, int64(7), body.CaregiverID)
}
