package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/CareBookingService/internal/domain"
	createBooking "github.com/m04kA/CareBookingService/internal/usecase/create_booking"
	"github.com/m04kA/CareBookingService/pkg/types"
)

// TaskRequest задача в форме бронирования
type TaskRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	StartTime   *string `json:"startTime,omitempty"` // "09:15"
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CaregiverID      int64         `json:"caregiverId"`
	DurationType     string        `json:"durationType"`            // hourly | short | long | unlimited
	DurationValue    *int          `json:"durationValue,omitempty"` // нет для unlimited
	StartDate        string        `json:"startDate"`               // "2026-03-02"
	EndDate          *string       `json:"endDate,omitempty"`
	StartTime        *string       `json:"startTime,omitempty"` // "10:00", только hourly
	EndTime          *string       `json:"endTime,omitempty"`
	WorkingDays      []int         `json:"workingDays"` // 0 = воскресенье
	WorkingTimeSlots []string      `json:"workingTimeSlots"`
	Tasks            []TaskRequest `json:"tasks"`
	Address          string        `json:"address"`
	Notes            *string       `json:"notes,omitempty"`
}

// ValidationResponse результат проверки формы
type ValidationResponse struct {
	Valid                 bool     `json:"valid"`
	Field                 string   `json:"field,omitempty"`
	Message               string   `json:"message,omitempty"`
	AllowedTaskStartTimes []string `json:"allowedTaskStartTimes"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Ошибки формата возвращаются как ошибки валидации конкретного поля.
func (r *CreateBookingRequest) ToUseCaseRequest(careseekerID int64) (*createBooking.Request, error) {
	req := &createBooking.Request{
		CareseekerID:     careseekerID,
		CaregiverID:      r.CaregiverID,
		DurationType:     r.DurationType,
		DurationValue:    r.DurationValue,
		WorkingDays:      make([]time.Weekday, len(r.WorkingDays)),
		WorkingTimeSlots: r.WorkingTimeSlots,
		Tasks:            make([]createBooking.TaskInput, len(r.Tasks)),
		Address:          r.Address,
		Notes:            r.Notes,
	}

	startDate, err := parseDate("startDate", r.StartDate)
	if err != nil {
		return nil, err
	}
	req.StartDate = startDate

	if r.EndDate != nil {
		endDate, err := parseDate("endDate", *r.EndDate)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if req.StartTime, err = parseOptionalTime("startTime", r.StartTime); err != nil {
		return nil, err
	}
	if req.EndTime, err = parseOptionalTime("endTime", r.EndTime); err != nil {
		return nil, err
	}

	for i, d := range r.WorkingDays {
		// Диапазон 0..6 проверяет use case
		req.WorkingDays[i] = time.Weekday(d)
	}

	for i, task := range r.Tasks {
		startTime, err := parseOptionalTime(fmt.Sprintf("tasks[%d].startTime", i), task.StartTime)
		if err != nil {
			return nil, err
		}
		req.Tasks[i] = createBooking.TaskInput{
			Name:        task.Name,
			Description: task.Description,
			StartTime:   startTime,
		}
	}

	return req, nil
}

// FromValidationResult конвертирует результат проверки в HTTP response
func FromValidationResult(result *createBooking.ValidationResult) *ValidationResponse {
	resp := &ValidationResponse{
		Valid:                 result.Valid,
		Field:                 result.Field,
		Message:               result.Message,
		AllowedTaskStartTimes: make([]string, len(result.AllowedTaskStartTimes)),
	}
	for i, t := range result.AllowedTaskStartTimes {
		resp.AllowedTaskStartTimes[i] = t.String()
	}
	return resp
}

func parseDate(field, value string) (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, value)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "Please enter the date as YYYY-MM-DD")
	}
	return date, nil
}

func parseOptionalTime(field string, value *string) (*types.TimeString, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := types.NewTimeStringFromString(*value)
	if err != nil {
		return nil, domain.NewValidationError(field, "Please enter the time as HH:MM")
	}
	return &t, nil
}
