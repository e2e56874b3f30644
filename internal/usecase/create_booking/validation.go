package create_booking

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/CareBookingService/internal/domain"
	"github.com/m04kA/CareBookingService/pkg/ptr"
)

// bookingForm разобранная форма бронирования
type bookingForm struct {
	duration *domain.DurationForm
	days     []time.Weekday
	slots    []domain.WorkingTimeSlot
	tasks    []domain.Task
}

// parseForm собирает форму из запроса и возвращает первую найденную ошибку.
// Даты переносятся в локацию loc. Форма возвращается даже при ошибке,
// чтобы вызывающий мог показать допустимое время задач.
func parseForm(req *Request, loc *time.Location) (*bookingForm, *domain.ValidationError) {
	form := &bookingForm{duration: domain.NewDurationForm()}

	// 1. Тип длительности
	if req.DurationType != "" {
		durationType, err := domain.ParseDurationType(req.DurationType)
		if err != nil {
			return form, domain.NewValidationError("durationType", "Unknown duration type")
		}
		form.duration.SelectType(durationType)
	}
	durationType := form.duration.Type()

	// 2. Значение длительности (ввод сверх максимума отбрасывается формой)
	if req.DurationValue != nil && durationType.IsSelected() {
		if vErr := enterDurationValue(form.duration, *req.DurationValue); vErr != nil {
			return form, vErr
		}
	}

	// 3. Даты и время
	if !req.StartDate.IsZero() && durationType.IsSelected() {
		form.duration.SetStartDate(dateIn(req.StartDate, loc))
	}
	if req.EndDate != nil && durationType.IsSelected() {
		if !form.duration.SetEndDate(dateIn(*req.EndDate, loc)) {
			return form, domain.NewValidationError("endDate", "Unlimited booking has no end date")
		}
	}
	if (req.StartTime != nil || req.EndTime != nil) && durationType.IsSelected() {
		if !durationType.UsesTime() {
			return form, domain.NewValidationError("startTime", "Start and end time are only used for hourly bookings")
		}
		if !form.duration.SetTimes(ptr.Value(req.StartTime), ptr.Value(req.EndTime)) {
			return form, domain.NewValidationError("startTime", "Please choose a valid start and end time")
		}
	}

	// 4. Рабочие дни и окна
	days, vErr := parseWorkingDays(req.WorkingDays)
	if vErr != nil {
		return form, vErr
	}
	form.days = days

	slots, vErr := parseWorkingTimeSlots(req.WorkingTimeSlots)
	if vErr != nil {
		return form, vErr
	}
	form.slots = slots

	// 5. Шлюз: рабочие дни -> окна -> длительность
	if vErr := domain.CheckTaskPrecondition(form.days, form.slots, form.duration); vErr != nil {
		return form, vErr
	}

	// 6. Обязательные поля по типу и хронология
	if vErr := form.duration.Validate(); vErr != nil {
		return form, vErr
	}

	// 7. Задачи
	if len(req.Tasks) > domain.MaxTasksPerBooking {
		return form, domain.NewValidationError("tasks",
			fmt.Sprintf("A booking can contain at most %d tasks", domain.MaxTasksPerBooking))
	}
	form.tasks = make([]domain.Task, 0, len(req.Tasks))
	for i, input := range req.Tasks {
		task := domain.Task{
			Position:    i,
			Name:        strings.TrimSpace(input.Name),
			Description: strings.TrimSpace(input.Description),
			StartTime:   input.StartTime,
		}
		if vErr := domain.ValidateTask(task, form.slots); vErr != nil {
			return form, domain.NewValidationError(fmt.Sprintf("tasks[%d].%s", i, vErr.Field), vErr.Message)
		}
		form.tasks = append(form.tasks, task)
	}

	// 8. Адрес и заметки
	address := strings.TrimSpace(req.Address)
	if address == "" {
		return form, domain.NewValidationError("address", "Please enter the care address")
	}
	if len(address) > domain.MaxAddressTextLength {
		return form, domain.NewValidationError("address",
			fmt.Sprintf("Address must not exceed %d characters", domain.MaxAddressTextLength))
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return form, domain.NewValidationError("notes",
			fmt.Sprintf("Notes must not exceed %d characters", domain.MaxNotesLength))
	}

	return form, nil
}

// enterDurationValue применяет числовое значение и объясняет отказ формы
func enterDurationValue(form *domain.DurationForm, value int) *domain.ValidationError {
	durationType := form.Type()

	if !durationType.HasValue() {
		return domain.NewValidationError("durationValue", "Unlimited booking has no duration value")
	}
	if form.EnterValue(fmt.Sprint(value)) {
		return nil
	}
	if max, ok := durationType.MaxValue(); ok && value > max {
		return domain.NewValidationError("durationValue",
			fmt.Sprintf("Duration value must not exceed %d %s", max, durationType.Unit()))
	}
	return domain.NewValidationError("durationValue", "Duration value must be positive")
}

// parseWorkingDays проверяет дни недели, убирает повторы и сортирует
func parseWorkingDays(days []time.Weekday) ([]time.Weekday, *domain.ValidationError) {
	seen := make(map[time.Weekday]bool, len(days))
	result := make([]time.Weekday, 0, len(days))

	for _, d := range days {
		if d < time.Sunday || d > time.Saturday {
			return nil, domain.NewValidationError("workingDays", fmt.Sprintf("Unknown day of week %d", d))
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		result = append(result, d)
	}

	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result, nil
}

// parseWorkingTimeSlots парсит окна из каталога формы, повторы отбрасываются
func parseWorkingTimeSlots(labels []string) ([]domain.WorkingTimeSlot, *domain.ValidationError) {
	seen := make(map[string]bool, len(labels))
	result := make([]domain.WorkingTimeSlot, 0, len(labels))

	for _, label := range labels {
		slot, err := domain.ParseWorkingTimeSlot(label)
		if err != nil {
			return nil, domain.NewValidationError("workingTimeSlots", fmt.Sprintf("Unknown time slot %q", label))
		}
		if seen[slot.String()] {
			continue
		}
		seen[slot.String()] = true
		result = append(result, slot)
	}

	return result, nil
}

// toBooking собирает доменное бронирование из проверенной формы
func (f *bookingForm) toBooking(req *Request) *domain.Booking {
	booking := &domain.Booking{
		CareseekerID:     req.CareseekerID,
		CaregiverID:      req.CaregiverID,
		DurationType:     f.duration.Type(),
		StartDate:        *f.duration.StartDate(),
		EndDate:          f.duration.EndDate(),
		WorkingDays:      f.days,
		WorkingTimeSlots: f.slots,
		Status:           domain.StatusPending,
		Address:          strings.TrimSpace(req.Address),
		Notes:            req.Notes,
		Tasks:            f.tasks,
	}

	if value, ok := f.duration.Value(); ok && f.duration.Type().HasValue() {
		booking.DurationValue = ptr.Ptr(value)
	}
	if f.duration.Type().UsesTime() {
		booking.StartTime = ptr.Ptr(f.duration.StartTime())
		booking.EndTime = ptr.Ptr(f.duration.EndTime())
	}

	return booking
}

// occupiedUntil последняя дата, на которой проверяются пересечения.
// Для бессрочного бронирования проверяется горизонт MaxHorizonDays.
func occupiedUntil(booking *domain.Booking) time.Time {
	if booking.EndDate != nil {
		return *booking.EndDate
	}
	return booking.StartDate.AddDate(0, 0, domain.MaxHorizonDays)
}

// checkWorkingHours проверяет, что каждый отрезок почасового бронирования
// целиком внутри рабочего окна сиделки в этот день
func checkWorkingHours(booking *domain.Booking, schedule domain.WeeklySchedule) error {
	last := occupiedUntil(booking)

	for day := booking.StartDate; !day.After(last); day = day.AddDate(0, 0, 1) {
		for _, interval := range booking.IntervalsOn(day) {
			if !fitsAnyWindow(interval, schedule.WindowsFor(day.Weekday())) {
				return fmt.Errorf("%w: %s %s-%s", ErrOutsideWorkingHours,
					day.Format(domain.DateFormat), interval.Start, interval.End)
			}
		}
	}

	return nil
}

func fitsAnyWindow(interval domain.BookedInterval, windows []domain.WorkingWindow) bool {
	for _, w := range windows {
		if w.Contains(interval.Start, interval.End) {
			return true
		}
	}
	return false
}

// findConflict ищет активное бронирование, пересекающееся с новым.
// Для каждого бронирования перебираются только общие с кандидатом даты.
// Ночные окна переходят на следующую дату, поэтому к концу периода добавляется день.
func findConflict(candidate *domain.Booking, existing []*domain.Booking) *domain.Booking {
	loc := candidate.StartDate.Location()
	candidateLast := occupiedUntil(candidate).AddDate(0, 0, 1)

	for _, other := range existing {
		if !other.IsActive() {
			continue
		}

		from := laterDate(candidate.StartDate, dateIn(other.StartDate, loc))
		to := candidateLast
		// Бессрочное бронирование занимает все даты кандидата начиная со своего старта
		if other.EndDate != nil {
			to = earlierDate(to, dateIn(*other.EndDate, loc).AddDate(0, 0, 1))
		}

		for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
			wanted := candidate.IntervalsOn(day)
			if len(wanted) == 0 {
				continue
			}

			for _, taken := range other.IntervalsOn(day) {
				for _, w := range wanted {
					if w.Overlaps(taken) {
						return other
					}
				}
			}
		}
	}

	return nil
}

func laterDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlierDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

// startsInPast проверяет, что бронирование не начинается раньше текущего момента
func startsInPast(booking *domain.Booking, now time.Time) bool {
	today := domain.DateOnly(now)
	if booking.StartDate.Before(today) {
		return true
	}
	if booking.StartTime != nil {
		return !booking.StartTime.On(booking.StartDate).After(now)
	}
	return false
}

// dateIn переносит календарную дату в локацию loc без сдвига дня
func dateIn(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
