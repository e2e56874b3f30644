package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/CareBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByCaregiverWithFilter бронирования сиделки, пересекающие период фильтра
	GetByCaregiverWithFilter(ctx context.Context, filter domain.CaregiverBookingsFilter) ([]*domain.Booking, error)
}

// CaregiverServiceClient интерфейс клиента для CaregiverService
type CaregiverServiceClient interface {
	GetCaregiver(ctx context.Context, caregiverID int64) (*domain.Caregiver, error)
}

// Metrics интерфейс бизнес-метрик доступности
type Metrics interface {
	ObserveAvailability(outcome string, available, booked int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
