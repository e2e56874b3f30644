package get_availability

import (
	"time"

	"github.com/m04kA/CareBookingService/internal/domain"
)

// Request модель запроса на расчёт доступности сиделки
type Request struct {
	CaregiverID       int64
	HorizonDays       int // 0 = значение по умолчанию
	SlotDurationHours int // 0 = значение по умолчанию
}

// Response сетка слотов по дням горизонта, начиная с сегодняшнего
type Response struct {
	CaregiverID       int64
	HorizonDays       int
	SlotDurationHours int
	GeneratedAt       time.Time
	Days              []domain.DaySlots
}

// AvailableCount общее количество свободных слотов в горизонте
func (r *Response) AvailableCount() int {
	count := 0
	for i := range r.Days {
		count += r.Days[i].AvailableCount()
	}
	return count
}

// BookedCount количество занятых слотов в горизонте
func (r *Response) BookedCount() int {
	count := 0
	for i := range r.Days {
		count += len(r.Days[i].Slots) - r.Days[i].AvailableCount()
	}
	return count
}

// HasOpenings возвращает false, если в горизонте нет ни одного свободного слота
func (r *Response) HasOpenings() bool {
	return r.AvailableCount() > 0
}
