package create_booking

import (
	"time"

	"github.com/m04kA/CareBookingService/internal/domain"
	"github.com/m04kA/CareBookingService/pkg/types"
)

// TaskInput задача из формы бронирования
type TaskInput struct {
	Name        string
	Description string
	StartTime   *types.TimeString // Опционально, кратно 15 минутам внутри выбранных окон
}

// Request модель запроса на создание бронирования
type Request struct {
	CareseekerID int64 // ID пользователя-заказчика (из X-User-ID)
	CaregiverID  int64 // ID профиля сиделки

	DurationType  string // hourly | short | long | unlimited
	DurationValue *int   // Часы для hourly, дни для short/long; nil для unlimited
	StartDate     time.Time
	EndDate       *time.Time        // Не указывается для unlimited
	StartTime     *types.TimeString // Только для hourly
	EndTime       *types.TimeString // Только для hourly

	WorkingDays      []time.Weekday
	WorkingTimeSlots []string // Окна из каталога, например "06:00-12:00"

	Tasks   []TaskInput
	Address string
	Notes   *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
}

// ValidationResult результат проверки формы без сохранения
type ValidationResult struct {
	Valid   bool
	Field   string // Поле первой найденной ошибки
	Message string // Корректирующая инструкция для пользователя

	// Допустимое время начала задач для выбранных окон
	AllowedTaskStartTimes []types.TimeString
}
