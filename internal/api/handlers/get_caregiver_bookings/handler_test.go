package get_caregiver_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CareBookingService/internal/api/middleware"
	"github.com/m04kA/CareBookingService/internal/service/bookings"
	"github.com/m04kA/CareBookingService/internal/service/bookings/models"
	"github.com/m04kA/CareBookingService/pkg/logger"
)

type fakeService struct {
	err     error
	lastReq *models.GetCaregiverBookingsRequest
}

func (f *fakeService) GetCaregiverBookings(_ context.Context, req *models.GetCaregiverBookingsRequest) (*models.BookingListResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return models.FromDomainBookingList(nil), nil
}

func serve(svc *fakeService, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/caregivers/{caregiverId}/bookings", NewHandler(svc, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), 70))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_ParsesQuery(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "/caregivers/7/bookings?from=2026-03-01&to=2026-03-31&status=confirmed&includeInactive=true")

	require.Equal(t, http.StatusOK, rec.Code)
	req := svc.lastReq
	assert.Equal(t, int64(7), req.CaregiverID)
	assert.Equal(t, int64(70), req.UserID)
	require.NotNil(t, req.StartDate)
	require.NotNil(t, req.EndDate)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *req.StartDate)
	assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), *req.EndDate)
	require.NotNil(t, req.Status)
	assert.Equal(t, "confirmed", *req.Status)
	assert.True(t, req.IncludeInactive)
}

func TestHandler_InvalidQuery(t *testing.T) {
	targets := []string{
		"/caregivers/x/bookings",
		"/caregivers/7/bookings?from=2026-03-01",
		"/caregivers/7/bookings?from=01.03.2026&to=2026-03-31",
		"/caregivers/7/bookings?includeInactive=maybe",
	}

	for _, target := range targets {
		t.Run(target, func(t *testing.T) {
			svc := &fakeService{}
			rec := serve(svc, target)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, svc.lastReq)
		})
	}
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"reversed period", bookings.ErrInvalidInput, http.StatusBadRequest},
		{"not owner", bookings.ErrAccessDenied, http.StatusForbidden},
		{"caregiver service down", bookings.ErrCaregiverUnavailable, http.StatusServiceUnavailable},
		{"no caregiver", bookings.ErrCaregiverNotFound, http.StatusNotFound},
		{"internal", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, "/caregivers/7/bookings")
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
