package domain

import (
	"sort"
	"time"

	"github.com/m04kA/CareBookingService/pkg/types"
)

// WorkingWindow рабочее окно сиделки внутри дня, [Start, End)
type WorkingWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// IsValid проверяет формат и что Start < End
func (w WorkingWindow) IsValid() bool {
	if w.Start.Validate() != nil || w.End.Validate() != nil {
		return false
	}
	return w.Start.IsBefore(w.End)
}

// LengthMinutes длина окна в минутах
func (w WorkingWindow) LengthMinutes() int {
	return w.End.Minutes() - w.Start.Minutes()
}

// Contains проверяет, что [start, end) целиком внутри окна
func (w WorkingWindow) Contains(start, end types.TimeString) bool {
	return !start.IsBefore(w.Start) && !end.IsAfter(w.End)
}

// WeeklySchedule рабочие окна по дням недели.
// Отсутствие ключа или пустой список = выходной.
type WeeklySchedule map[time.Weekday][]WorkingWindow

// WindowsFor возвращает отсортированные непересекающиеся окна на день недели.
// Некорректные окна отбрасываются, пересекающиеся и смежные склеиваются.
func (s WeeklySchedule) WindowsFor(weekday time.Weekday) []WorkingWindow {
	raw := s[weekday]
	if len(raw) == 0 {
		return nil
	}

	windows := make([]WorkingWindow, 0, len(raw))
	for _, w := range raw {
		if w.IsValid() {
			windows = append(windows, w)
		}
	}

	sort.Slice(windows, func(i, j int) bool {
		return windows[i].Start.IsBefore(windows[j].Start)
	})

	merged := make([]WorkingWindow, 0, len(windows))
	for _, w := range windows {
		last := len(merged) - 1
		if last >= 0 && !w.Start.IsAfter(merged[last].End) {
			if w.End.IsAfter(merged[last].End) {
				merged[last].End = w.End
			}
			continue
		}
		merged = append(merged, w)
	}

	return merged
}

// IsWorkingDay возвращает true, если в этот день есть хотя бы одно окно
func (s WeeklySchedule) IsWorkingDay(weekday time.Weekday) bool {
	return len(s.WindowsFor(weekday)) > 0
}
