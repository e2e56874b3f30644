package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/CareBookingService/pkg/types"
)

// DurationForm состояние формы выбора длительности бронирования.
//
// Переходы: Unselected -> {Hourly, Short, Long, Unlimited}; возврат в Unselected
// не предусмотрен. Смена типа сбрасывает значение и даты; время сбрасывается
// только при уходе с Hourly на другой тип.
type DurationForm struct {
	durationType DurationType
	value        *int
	startDate    *time.Time
	endDate      *time.Time
	startTime    types.TimeString
	endTime      types.TimeString
}

// NewDurationForm пустая форма в состоянии Unselected
func NewDurationForm() *DurationForm {
	return &DurationForm{}
}

func (f *DurationForm) Type() DurationType          { return f.durationType }
func (f *DurationForm) StartDate() *time.Time       { return f.startDate }
func (f *DurationForm) EndDate() *time.Time         { return f.endDate }
func (f *DurationForm) StartTime() types.TimeString { return f.startTime }
func (f *DurationForm) EndTime() types.TimeString   { return f.endTime }

// Value текущее значение; ok=false, если значение не введено
func (f *DurationForm) Value() (value int, ok bool) {
	if f.value == nil {
		return 0, false
	}
	return *f.value, true
}

// SelectType переключает тип длительности.
// Возвращает false, если переход не допускается (Unselected или неизвестный тип).
func (f *DurationForm) SelectType(t DurationType) bool {
	if !t.IsSelected() {
		return false
	}
	if t == f.durationType {
		return true
	}

	leavingHourly := f.durationType == DurationHourly && t != DurationHourly

	f.durationType = t
	f.value = nil
	f.startDate = nil
	f.endDate = nil

	if leavingHourly {
		f.startTime = ""
		f.endTime = ""
	}

	return true
}

// EnterValue применяет ввод числового значения.
// Ввод, превышающий максимум типа, или нечисловой ввод молча отбрасывается:
// сохранённое значение остаётся прежним, возвращается false.
// Пустая строка очищает значение.
func (f *DurationForm) EnterValue(text string) bool {
	if !f.durationType.HasValue() {
		return false
	}

	text = strings.TrimSpace(text)
	if text == "" {
		f.value = nil
		return true
	}

	v, err := strconv.Atoi(text)
	if err != nil || v < 0 {
		return false
	}

	if max, ok := f.durationType.MaxValue(); ok && v > max {
		return false
	}

	f.value = &v
	return true
}

// SetStartDate устанавливает дату начала (нужна для всех типов)
func (f *DurationForm) SetStartDate(d time.Time) bool {
	if !f.durationType.IsSelected() {
		return false
	}
	day := DateOnly(d)
	f.startDate = &day
	return true
}

// SetEndDate устанавливает дату окончания; для Unlimited не применяется
func (f *DurationForm) SetEndDate(d time.Time) bool {
	if !f.durationType.RequiresEndDate() {
		return false
	}
	day := DateOnly(d)
	f.endDate = &day
	return true
}

// SetTimes устанавливает время начала и окончания; только для Hourly
func (f *DurationForm) SetTimes(start, end types.TimeString) bool {
	if !f.durationType.UsesTime() {
		return false
	}
	if start.Validate() != nil || end.Validate() != nil {
		return false
	}
	f.startTime = start
	f.endTime = end
	return true
}

// IsComplete возвращает true, если тип выбран и значение (если нужно) корректно
func (f *DurationForm) IsComplete() bool {
	if !f.durationType.IsSelected() {
		return false
	}
	if !f.durationType.HasValue() {
		return true
	}
	v, ok := f.Value()
	return ok && v > 0
}

// Validate проверяет обязательность полей по типу и хронологию.
// Возвращает первую найденную ошибку.
func (f *DurationForm) Validate() *ValidationError {
	if !f.durationType.IsSelected() {
		return NewValidationError("durationType", MsgChooseDuration)
	}

	if f.durationType.HasValue() {
		v, ok := f.Value()
		if !ok || v <= 0 {
			return NewValidationError("durationValue", "Please enter the booking duration")
		}
		// Ввод long не ограничивается, но период аренды ограничен
		if f.durationType == DurationLong && v > MaxLongDays {
			return NewValidationError("durationValue",
				fmt.Sprintf("Long booking must not exceed %d days", MaxLongDays))
		}
	}

	if f.startDate == nil {
		return NewValidationError("startDate", "Please choose a start date")
	}

	if f.durationType.RequiresEndDate() {
		if f.endDate == nil {
			return NewValidationError("endDate", "Please choose an end date")
		}
		// Для Hourly допускается та же дата: хронологию проверяет время ниже
		if f.endDate.Before(*f.startDate) ||
			(!f.durationType.UsesTime() && !f.endDate.After(*f.startDate)) {
			return NewValidationError("endDate", "End date must be after start date")
		}
	}

	if f.durationType.UsesTime() {
		if f.startTime.IsZero() {
			return NewValidationError("startTime", "Please choose a start time")
		}
		if f.endTime.IsZero() {
			return NewValidationError("endTime", "Please choose an end time")
		}
		start := f.startTime.On(*f.startDate)
		end := f.endTime.On(*f.endDate)
		if !end.After(start) {
			return NewValidationError("endTime", "End time must be after start time")
		}
	}

	return f.validatePeriod()
}

// validatePeriod сверяет выбранный период со значением длительности:
// для hourly разница во времени равна value часов, для short и long
// разница в датах равна value дней
func (f *DurationForm) validatePeriod() *ValidationError {
	v, _ := f.Value()

	switch f.durationType {
	case DurationHourly:
		minutes := daysBetween(*f.startDate, *f.endDate)*24*60 + f.endTime.Minutes() - f.startTime.Minutes()
		if minutes != v*60 {
			return NewValidationError("endTime",
				fmt.Sprintf("End time must be %d hours after start time", v))
		}
	case DurationShort, DurationLong:
		if daysBetween(*f.startDate, *f.endDate) != v {
			return NewValidationError("endDate",
				fmt.Sprintf("End date must be %d days after start date", v))
		}
	}

	return nil
}

// daysBetween число календарных дней от from до to без учёта перехода на летнее время
func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// ToDuration возвращает выбранную длительность в виде варианта Duration
func (f *DurationForm) ToDuration() (Duration, error) {
	if vErr := f.Validate(); vErr != nil {
		return nil, vErr
	}
	v, _ := f.Value()
	return NewDuration(f.durationType, v)
}
