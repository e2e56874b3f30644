package get_availability

import (
	"time"

	"github.com/m04kA/CareBookingService/internal/domain"
)

// generateDaySlots нарезает рабочие окна дня на слоты фиксированной длины.
// Окна должны быть отсортированы и не пересекаться (WeeklySchedule.WindowsFor).
// Хвост окна короче slotMinutes отбрасывается.
// Для сегодняшнего дня остаются только слоты, начинающиеся строго после now.
func generateDaySlots(windows []domain.WorkingWindow, slotMinutes int, day, now time.Time) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0)
	today := isSameDay(day, now)

	for _, window := range windows {
		current := window.Start

		for current.IsBefore(window.End) {
			slotEnd, err := current.AddMinutes(slotMinutes)
			if err != nil || slotEnd.IsAfter(window.End) {
				break
			}

			// Уже начавшиеся сегодня слоты не предлагаем
			if !today || current.On(day).After(now) {
				slots = append(slots, domain.TimeSlot{
					StartTime:   current,
					EndTime:     slotEnd,
					IsAvailable: true,
				})
			}

			current = slotEnd
		}
	}

	return slots
}

// markBookedSlots помечает слоты, пересекающиеся с занятыми интервалами.
// Пересечение есть только если интервалы действительно накладываются друг на друга
// Если бронирование заканчивается ровно там, где начинается слот (или наоборот) - это НЕ пересечение
//
// Примеры:
// - Слот 08:00-12:00, бронирование 09:00-11:00 → ЕСТЬ пересечение
// - Слот 12:00-16:00, бронирование 08:00-12:00 → НЕТ пересечения (граничат)
func markBookedSlots(slots []domain.TimeSlot, intervals []domain.BookedInterval) {
	for i := range slots {
		for _, interval := range intervals {
			if slots[i].Overlaps(interval.Start, interval.End) {
				slots[i].IsAvailable = false
				slots[i].Reason = domain.ReasonAlreadyBooked
				break
			}
		}
	}
}

// bookedIntervalsOn собирает занятые интервалы всех бронирований на дату
func bookedIntervalsOn(bookings []*domain.Booking, day time.Time) []domain.BookedInterval {
	intervals := make([]domain.BookedInterval, 0)
	for _, booking := range bookings {
		intervals = append(intervals, booking.IntervalsOn(day)...)
	}
	return intervals
}

// buildDays строит корзины по всем дням горизонта, начиная с сегодняшнего.
// День без рабочих окон присутствует с пустым списком слотов.
func buildDays(
	schedule domain.WeeklySchedule,
	bookings []*domain.Booking,
	horizonDays int,
	slotMinutes int,
	now time.Time,
) []domain.DaySlots {
	today := domain.DateOnly(now)
	days := make([]domain.DaySlots, 0, horizonDays)

	for i := 0; i < horizonDays; i++ {
		day := today.AddDate(0, 0, i)

		slots := generateDaySlots(schedule.WindowsFor(day.Weekday()), slotMinutes, day, now)
		markBookedSlots(slots, bookedIntervalsOn(bookings, day))

		days = append(days, domain.DaySlots{
			Date:    day,
			DayName: domain.DayName(day),
			Slots:   slots,
		})
	}

	return days
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// slotMinutesFromHours длина слота в минутах
func slotMinutesFromHours(hours int) int {
	return hours * 60
}
