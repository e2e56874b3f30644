package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/CareBookingService/pkg/types"
)

// Сообщения шлюза создания задач, в порядке проверки
const (
	MsgChooseWorkingDays = "Please choose working days first"
	MsgChooseTimeSlots   = "Please choose time slots first"
	MsgChooseDuration    = "Please choose a booking duration first"
)

// WorkingTimeSlot рабочее окно из каталога формы (например, "06:00-12:00").
// Если End <= Start, окно переходит через полночь.
type WorkingTimeSlot struct {
	Start types.TimeString
	End   types.TimeString
}

// DefaultWorkingTimeSlots каталог окон, предлагаемых в форме
var DefaultWorkingTimeSlots = []WorkingTimeSlot{
	{Start: "06:00", End: "12:00"},
	{Start: "12:00", End: "18:00"},
	{Start: "18:00", End: "22:00"},
	{Start: "22:00", End: "06:00"},
}

// ParseWorkingTimeSlot парсит "HH:MM-HH:MM" (допускается длинное тире)
func ParseWorkingTimeSlot(label string) (WorkingTimeSlot, error) {
	normalized := strings.NewReplacer("–", "-", "—", "-", " ", "").Replace(label)
	parts := strings.Split(normalized, "-")
	if len(parts) != 2 {
		return WorkingTimeSlot{}, fmt.Errorf("%w: time slot %q", types.ErrInvalidTimeString, label)
	}

	start, err := types.NewTimeStringFromString(parts[0])
	if err != nil {
		return WorkingTimeSlot{}, err
	}
	end, err := types.NewTimeStringFromString(parts[1])
	if err != nil {
		return WorkingTimeSlot{}, err
	}
	if start.Equal(end) {
		return WorkingTimeSlot{}, fmt.Errorf("%w: empty time slot %q", types.ErrInvalidTimeString, label)
	}

	return WorkingTimeSlot{Start: start, End: end}, nil
}

// String представление "HH:MM-HH:MM"
func (s WorkingTimeSlot) String() string {
	return s.Start.String() + "-" + s.End.String()
}

// IsOvernight возвращает true, если окно переходит через полночь
func (s WorkingTimeSlot) IsOvernight() bool {
	return !s.End.IsAfter(s.Start)
}

// Segments окна в пределах суток: для ночного окна два отрезка
// ([Start, 24:00) текущего дня и [00:00, End) следующего)
func (s WorkingTimeSlot) Segments() (sameDay WorkingWindow, nextDay *WorkingWindow) {
	if !s.IsOvernight() {
		return WorkingWindow{Start: s.Start, End: s.End}, nil
	}
	sameDay = WorkingWindow{Start: s.Start, End: "24:00"}
	if s.End.Minutes() > 0 {
		nextDay = &WorkingWindow{Start: "00:00", End: s.End}
	}
	return sameDay, nextDay
}

// Task задача для сиделки в рамках бронирования
type Task struct {
	ID          int64
	BookingID   int64
	Position    int
	Name        string
	Description string
	StartTime   *types.TimeString
}

// CheckTaskPrecondition проверяет, можно ли добавлять задачи.
// Проверки идут в фиксированном порядке: рабочие дни -> окна -> длительность,
// возвращается только первый незакрытый пробел.
func CheckTaskPrecondition(workingDays []time.Weekday, timeSlots []WorkingTimeSlot, form *DurationForm) *ValidationError {
	if len(workingDays) == 0 {
		return NewValidationError("workingDays", MsgChooseWorkingDays)
	}
	if len(timeSlots) == 0 {
		return NewValidationError("workingTimeSlots", MsgChooseTimeSlots)
	}
	if form == nil || !form.IsComplete() {
		return NewValidationError("duration", MsgChooseDuration)
	}
	return nil
}

// AllowedTaskStartTimes допустимые времена начала задач: границы по 15 минут
// внутри выбранных окон, по возрастанию, без повторов
func AllowedTaskStartTimes(timeSlots []WorkingTimeSlot) []types.TimeString {
	const minutesPerDay = 24 * 60

	allowed := make([]bool, minutesPerDay/TaskStartStepMinutes)
	for _, slot := range timeSlots {
		start := slot.Start.Minutes()
		end := slot.End.Minutes()
		if start < 0 || end < 0 {
			continue
		}
		if slot.IsOvernight() {
			end += minutesPerDay
		}
		// Первая граница не раньше начала окна
		first := ((start + TaskStartStepMinutes - 1) / TaskStartStepMinutes) * TaskStartStepMinutes
		for m := first; m < end; m += TaskStartStepMinutes {
			allowed[(m%minutesPerDay)/TaskStartStepMinutes] = true
		}
	}

	result := make([]types.TimeString, 0)
	for i, ok := range allowed {
		if !ok {
			continue
		}
		ts, err := types.FromMinutes(i * TaskStartStepMinutes)
		if err != nil {
			continue
		}
		result = append(result, ts)
	}
	return result
}

// ValidateTask проверяет поля задачи относительно выбранных окон
func ValidateTask(task Task, timeSlots []WorkingTimeSlot) *ValidationError {
	if strings.TrimSpace(task.Name) == "" {
		return NewValidationError("name", "Please enter a task name")
	}
	if len(task.Name) > MaxTaskNameLength {
		return NewValidationError("name", fmt.Sprintf("Task name must not exceed %d characters", MaxTaskNameLength))
	}
	if strings.TrimSpace(task.Description) == "" {
		return NewValidationError("description", "Please enter a task description")
	}
	if len(task.Description) > MaxTaskDescriptionLength {
		return NewValidationError("description",
			fmt.Sprintf("Task description must not exceed %d characters", MaxTaskDescriptionLength))
	}

	if task.StartTime == nil || task.StartTime.IsZero() {
		return nil
	}

	for _, allowed := range AllowedTaskStartTimes(timeSlots) {
		if allowed.Equal(*task.StartTime) {
			return nil
		}
	}
	return NewValidationError("startTime", "Please choose a start time from the available list")
}
