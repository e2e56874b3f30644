package bookings

import (
	"context"

	"github.com/m04kA/CareBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByCareseekerID(ctx context.Context, careseekerID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByCaregiverWithFilter(ctx context.Context, filter domain.CaregiverBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error
}

// CaregiverServiceClient интерфейс клиента для CaregiverService
type CaregiverServiceClient interface {
	GetCaregiver(ctx context.Context, caregiverID int64) (*domain.Caregiver, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
