package models

import (
	"time"

	"github.com/m04kA/CareBookingService/internal/domain"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetCareseekerBookingsRequest запрос на получение истории бронирований заказчика
type GetCareseekerBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetCaregiverBookingsRequest запрос расписания сиделки за период
type GetCaregiverBookingsRequest struct {
	UserID          int64      `json:"userId"`
	CaregiverID     int64      `json:"caregiverId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые и завершённые
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetCaregiverBookingsRequest) ToDomainFilter() (domain.CaregiverBookingsFilter, error) {
	filter := domain.CaregiverBookingsFilter{
		CaregiverID:     r.CaregiverID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// TaskResponse задача бронирования
type TaskResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	StartTime   *string `json:"startTime,omitempty"` // "09:15"
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64   `json:"id"`
	CareseekerID  int64   `json:"careseekerId"`
	CaregiverID   int64   `json:"caregiverId"`
	DurationType  string  `json:"durationType"`
	DurationValue *int    `json:"durationValue,omitempty"`
	StartDate     string  `json:"startDate"`           // "2026-03-02"
	EndDate       *string `json:"endDate,omitempty"`   // нет для unlimited
	StartTime     *string `json:"startTime,omitempty"` // только hourly
	EndTime       *string `json:"endTime,omitempty"`   // только hourly

	WorkingDays      []int    `json:"workingDays"` // 0 = воскресенье
	WorkingTimeSlots []string `json:"workingTimeSlots"`

	Status  string         `json:"status"`
	Address string         `json:"address"`
	Notes   *string        `json:"notes,omitempty"`
	Tasks   []TaskResponse `json:"tasks"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		CareseekerID:       b.CareseekerID,
		CaregiverID:        b.CaregiverID,
		DurationType:       string(b.DurationType),
		DurationValue:      b.DurationValue,
		StartDate:          b.StartDate.Format(domain.DateFormat),
		WorkingDays:        make([]int, len(b.WorkingDays)),
		WorkingTimeSlots:   make([]string, len(b.WorkingTimeSlots)),
		Status:             string(b.Status),
		Address:            b.Address,
		Notes:              b.Notes,
		Tasks:              make([]TaskResponse, len(b.Tasks)),
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.EndDate != nil {
		endDate := b.EndDate.Format(domain.DateFormat)
		resp.EndDate = &endDate
	}
	if b.StartTime != nil {
		startTime := b.StartTime.String()
		resp.StartTime = &startTime
	}
	if b.EndTime != nil {
		endTime := b.EndTime.String()
		resp.EndTime = &endTime
	}

	for i, d := range b.WorkingDays {
		resp.WorkingDays[i] = int(d)
	}
	for i, s := range b.WorkingTimeSlots {
		resp.WorkingTimeSlots[i] = s.String()
	}

	for i, task := range b.Tasks {
		resp.Tasks[i] = TaskResponse{
			ID:          task.ID,
			Name:        task.Name,
			Description: task.Description,
		}
		if task.StartTime != nil && !task.StartTime.IsZero() {
			startTime := task.StartTime.String()
			resp.Tasks[i].StartTime = &startTime
		}
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
