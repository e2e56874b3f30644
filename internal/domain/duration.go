package domain

import (
	"errors"
	"fmt"
)

// DurationType тип длительности аренды сиделки
type DurationType string

const (
	DurationUnselected DurationType = ""
	DurationHourly     DurationType = "hourly"
	DurationShort      DurationType = "short"
	DurationLong       DurationType = "long"
	DurationUnlimited  DurationType = "unlimited"
)

// ErrUnknownDurationType возвращается для неизвестного типа длительности
var ErrUnknownDurationType = errors.New("unknown duration type")

// ParseDurationType парсит тип длительности из строки
func ParseDurationType(s string) (DurationType, error) {
	t := DurationType(s)
	switch t {
	case DurationHourly, DurationShort, DurationLong, DurationUnlimited:
		return t, nil
	default:
		return DurationUnselected, fmt.Errorf("%w: %q", ErrUnknownDurationType, s)
	}
}

// IsSelected возвращает true для любого из четырёх выбранных состояний
func (t DurationType) IsSelected() bool {
	switch t {
	case DurationHourly, DurationShort, DurationLong, DurationUnlimited:
		return true
	default:
		return false
	}
}

// HasValue возвращает true, если тип требует числового значения
func (t DurationType) HasValue() bool {
	return t == DurationHourly || t == DurationShort || t == DurationLong
}

// MaxValue верхняя граница значения; ok=false, если ограничения нет
func (t DurationType) MaxValue() (max int, ok bool) {
	switch t {
	case DurationHourly:
		return MaxHourlyValue, true
	case DurationShort:
		return MaxShortDays, true
	default:
		return 0, false
	}
}

// UsesTime возвращает true, если тип требует время начала и окончания
func (t DurationType) UsesTime() bool {
	return t == DurationHourly
}

// RequiresEndDate возвращает true, если тип требует дату окончания
func (t DurationType) RequiresEndDate() bool {
	return t == DurationHourly || t == DurationShort || t == DurationLong
}

// Unit единица измерения значения
func (t DurationType) Unit() string {
	switch t {
	case DurationHourly:
		return "hours"
	case DurationShort, DurationLong:
		return "days"
	default:
		return ""
	}
}

// Duration выбранная длительность. Реализации: Hourly, Short, Long, Unlimited.
// Каждый вариант несёт только допустимые для него поля.
type Duration interface {
	Type() DurationType
	isDuration()
}

// Hourly почасовая аренда, 1..24 часа
type Hourly struct {
	Hours int
}

// Short краткосрочная аренда, 1..10 дней
type Short struct {
	Days int
}

// Long долгосрочная аренда; ввод не ограничен, период не длиннее MaxLongDays
type Long struct {
	Days int
}

// Unlimited бессрочная аренда
type Unlimited struct{}

func (Hourly) Type() DurationType    { return DurationHourly }
func (Short) Type() DurationType     { return DurationShort }
func (Long) Type() DurationType      { return DurationLong }
func (Unlimited) Type() DurationType { return DurationUnlimited }

func (Hourly) isDuration()    {}
func (Short) isDuration()     {}
func (Long) isDuration()      {}
func (Unlimited) isDuration() {}

// NewDuration собирает вариант Duration с проверкой границ.
// Для Unlimited значение игнорируется.
func NewDuration(t DurationType, value int) (Duration, error) {
	if !t.IsSelected() {
		return nil, ErrUnknownDurationType
	}

	if t.HasValue() {
		if value <= 0 {
			return nil, NewValidationError("durationValue", "Duration value must be positive")
		}
		if max, ok := t.MaxValue(); ok && value > max {
			return nil, NewValidationError("durationValue",
				fmt.Sprintf("Duration value must not exceed %d %s", max, t.Unit()))
		}
	}

	switch t {
	case DurationHourly:
		return Hourly{Hours: value}, nil
	case DurationShort:
		return Short{Days: value}, nil
	case DurationLong:
		return Long{Days: value}, nil
	default:
		return Unlimited{}, nil
	}
}

// DurationValue возвращает числовое значение; ok=false для Unlimited
func DurationValue(d Duration) (value int, ok bool) {
	switch v := d.(type) {
	case Hourly:
		return v.Hours, true
	case Short:
		return v.Days, true
	case Long:
		return v.Days, true
	default:
		return 0, false
	}
}
