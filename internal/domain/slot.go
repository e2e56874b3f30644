package domain

import (
	"time"

	"github.com/m04kA/CareBookingService/pkg/types"
)

// TimeSlot кандидат на бронирование внутри одного дня, полуинтервал [StartTime, EndTime)
type TimeSlot struct {
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
	Reason      string // Заполняется только для недоступного слота
}

// Overlaps проверяет РЕАЛЬНОЕ пересечение со занятым интервалом.
// Граничащие интервалы (конец одного == начало другого) не пересекаются.
func (s *TimeSlot) Overlaps(start, end types.TimeString) bool {
	return start.IsBefore(s.EndTime) && end.IsAfter(s.StartTime)
}

// DurationMinutes длина слота в минутах
func (s *TimeSlot) DurationMinutes() int {
	return s.EndTime.Minutes() - s.StartTime.Minutes()
}

// DaySlots слоты одного календарного дня горизонта
type DaySlots struct {
	Date    time.Time
	DayName string
	Slots   []TimeSlot
}

// IsEmpty возвращает true, если в этот день нет ни одного слота
func (d *DaySlots) IsEmpty() bool {
	return len(d.Slots) == 0
}

// AvailableCount количество свободных слотов
func (d *DaySlots) AvailableCount() int {
	count := 0
	for _, s := range d.Slots {
		if s.IsAvailable {
			count++
		}
	}
	return count
}

// BookedInterval занятый интервал сиделки в конкретную дату
type BookedInterval struct {
	BookingID int64
	Date      time.Time
	Start     types.TimeString
	End       types.TimeString
}

// Overlaps строгое пересечение двух интервалов одной даты; смежные не пересекаются
func (i BookedInterval) Overlaps(other BookedInterval) bool {
	if !isSameDate(i.Date, other.Date) {
		return false
	}
	return i.Start.IsBefore(other.End) && i.End.IsAfter(other.Start)
}

func isSameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

var vietnameseDayNames = map[time.Weekday]string{
	time.Monday:    "Thứ Hai",
	time.Tuesday:   "Thứ Ba",
	time.Wednesday: "Thứ Tư",
	time.Thursday:  "Thứ Năm",
	time.Friday:    "Thứ Sáu",
	time.Saturday:  "Thứ Bảy",
	time.Sunday:    "Chủ Nhật",
}

// DayName локализованное название дня недели
func DayName(date time.Time) string {
	return vietnameseDayNames[date.Weekday()]
}

// DateOnly обнуляет время, сохраняя локацию
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
