package get_caregiver_bookings

import (
	"context"

	"github.com/m04kA/CareBookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetCaregiverBookings(ctx context.Context, req *models.GetCaregiverBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
