package get_user_bookings

import (
	"context"

	"github.com/m04kA/CareBookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetCareseekerBookings(ctx context.Context, req *models.GetCareseekerBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
