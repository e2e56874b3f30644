package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CareBookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending               BookingStatus = "pending"
	StatusConfirmed             BookingStatus = "confirmed"
	StatusInProgress            BookingStatus = "in_progress"
	StatusCompleted             BookingStatus = "completed"
	StatusCancelledByCareseeker BookingStatus = "cancelled_by_careseeker"
	StatusCancelledByCaregiver  BookingStatus = "cancelled_by_caregiver"
)

// ErrUnknownBookingStatus возвращается для неизвестного статуса
var ErrUnknownBookingStatus = errors.New("unknown booking status")

// Booking бронирование сиделки заказчиком (careseeker)
type Booking struct {
	ID           int64
	CareseekerID int64
	CaregiverID  int64

	DurationType  DurationType
	DurationValue *int // NULL для unlimited
	StartDate     time.Time
	EndDate       *time.Time        // NULL для unlimited
	StartTime     *types.TimeString // Только для hourly
	EndTime       *types.TimeString // Только для hourly

	WorkingDays      []time.Weekday
	WorkingTimeSlots []WorkingTimeSlot

	Status  BookingStatus
	Address string
	Notes   *string
	Tasks   []Task

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies caregiver time
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending ||
		b.Status == StatusConfirmed ||
		b.Status == StatusInProgress
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByCareseeker || b.Status == StatusCancelledByCaregiver
}

// statusTransitions допустимые переходы статуса, выполняемые сиделкой
var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusConfirmed},
	StatusConfirmed:  {StatusInProgress},
	StatusInProgress: {StatusCompleted},
}

// CanTransitionTo проверяет, что статус можно сменить на next.
// Отмена идёт отдельным путём через Cancel.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range statusTransitions[b.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseBookingStatus парсит статус из строки
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	switch status {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted,
		StatusCancelledByCareseeker, StatusCancelledByCaregiver:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBookingStatus, s)
	}
}

// IntervalsOn возвращает интервалы, которые бронирование занимает в указанную дату.
//
// Hourly: отрезок [StartDate+StartTime, EndDate+EndTime), обрезанный по границам суток.
// Остальные типы: выбранные окна в выбранные дни недели внутри [StartDate, EndDate]
// (для unlimited без верхней границы). Ночное окно переносится на следующую дату.
func (b *Booking) IntervalsOn(date time.Time) []BookedInterval {
	if !b.IsActive() {
		return nil
	}

	day := DateOnly(date)

	if b.DurationType == DurationHourly {
		return b.hourlyIntervalOn(day)
	}

	var intervals []BookedInterval
	prevDay := day.AddDate(0, 0, -1)

	for _, slot := range b.WorkingTimeSlots {
		sameDay, nextDay := slot.Segments()

		if b.coversWorkingDay(day) {
			intervals = append(intervals, BookedInterval{
				BookingID: b.ID,
				Date:      day,
				Start:     sameDay.Start,
				End:       sameDay.End,
			})
		}
		if nextDay != nil && b.coversWorkingDay(prevDay) {
			intervals = append(intervals, BookedInterval{
				BookingID: b.ID,
				Date:      day,
				Start:     nextDay.Start,
				End:       nextDay.End,
			})
		}
	}

	return intervals
}

func (b *Booking) hourlyIntervalOn(day time.Time) []BookedInterval {
	if b.StartTime == nil || b.EndTime == nil {
		return nil
	}

	startDay := dateIn(b.StartDate, day.Location())
	endDay := startDay
	if b.EndDate != nil {
		endDay = dateIn(*b.EndDate, day.Location())
	}

	start := b.StartTime.On(startDay)
	end := b.EndTime.On(endDay)

	dayStart := day
	dayEnd := day.AddDate(0, 0, 1)

	if !start.Before(dayEnd) || !end.After(dayStart) {
		return nil
	}
	if start.Before(dayStart) {
		start = dayStart
	}
	if end.After(dayEnd) {
		end = dayEnd
	}

	startTS, err := types.FromMinutes(int(start.Sub(dayStart).Minutes()))
	if err != nil {
		return nil
	}
	endTS, err := types.FromMinutes(int(end.Sub(dayStart).Minutes()))
	if err != nil {
		return nil
	}

	return []BookedInterval{{
		BookingID: b.ID,
		Date:      day,
		Start:     startTS,
		End:       endTS,
	}}
}

// coversWorkingDay проверяет, что дата внутри периода и приходится на выбранный день недели
func (b *Booking) coversWorkingDay(day time.Time) bool {
	if day.Before(dateIn(b.StartDate, day.Location())) {
		return false
	}
	if b.EndDate != nil && day.After(dateIn(*b.EndDate, day.Location())) {
		return false
	}

	for _, wd := range b.WorkingDays {
		if wd == day.Weekday() {
			return true
		}
	}
	return false
}

// dateIn переносит календарную дату (без времени) в локацию loc.
// Даты из БД приходят в UTC, поэтому In() здесь не подходит.
func dateIn(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// CaregiverBookingsFilter фильтр для получения бронирований сиделки
type CaregiverBookingsFilter struct {
	CaregiverID     int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально, если nil - без ограничения)
	EndDate         *time.Time     // Конец периода (опционально, если nil - без ограничения)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли неактивные бронирования (отмененные, завершённые)
	ForUpdate       bool           // Блокировать строки (FOR UPDATE), действует только внутри транзакции
}
