package caregiverservice

import (
	"fmt"
	"time"

	"github.com/m04kA/CareBookingService/internal/domain"
	"github.com/m04kA/CareBookingService/pkg/types"
)

// Caregiver модель профиля сиделки из CaregiverService
type Caregiver struct {
	ID       int64          `json:"id"`
	UserID   int64          `json:"user_id"`
	FullName string         `json:"full_name"`
	IsActive bool           `json:"is_active"`
	Schedule []WorkingHours `json:"working_hours"`
}

// WorkingHours рабочее окно в день недели (0 = воскресенье)
type WorkingHours struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
}

// ErrorResponse модель ошибки от CaregiverService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToDomain конвертирует профиль в доменную модель
func (c *Caregiver) ToDomain() (*domain.Caregiver, error) {
	schedule := make(domain.WeeklySchedule)

	for _, wh := range c.Schedule {
		if wh.DayOfWeek < 0 || wh.DayOfWeek > 6 {
			return nil, fmt.Errorf("%w: day_of_week %d", ErrInvalidResponse, wh.DayOfWeek)
		}
		start, err := types.NewTimeStringFromString(wh.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: start_time: %v", ErrInvalidResponse, err)
		}
		end, err := types.NewTimeStringFromString(wh.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: end_time: %v", ErrInvalidResponse, err)
		}

		weekday := time.Weekday(wh.DayOfWeek)
		schedule[weekday] = append(schedule[weekday], domain.WorkingWindow{Start: start, End: end})
	}

	return &domain.Caregiver{
		ID:       c.ID,
		UserID:   c.UserID,
		FullName: c.FullName,
		IsActive: c.IsActive,
		Schedule: schedule,
	}, nil
}
