package domain

// Параметры расчёта доступности
const (
	DefaultHorizonDays       = 14
	MaxHorizonDays           = 60
	MinSlotDurationHours     = 1
	MaxSlotDurationHours     = 24
	DefaultSlotDurationHours = 4
)

// Ограничения длительности аренды по типу
const (
	MaxHourlyValue = 24  // часы
	MaxShortDays   = 10  // дни
	MaxLongDays    = 365 // дни, проверяется при валидации формы
)

// TaskStartStepMinutes шаг допустимого времени начала задачи (:00, :15, :30, :45)
const TaskStartStepMinutes = 15

// DefaultAddressConfidenceThreshold минимальная уверенность распознавания адреса
const DefaultAddressConfidenceThreshold = 0.7

// Business validation constants
const (
	MaxTaskNameLength           = 200
	MaxTaskDescriptionLength    = 2000
	MaxTasksPerBooking          = 50
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxAddressTextLength        = 1000
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ReasonAlreadyBooked причина недоступности слота
const ReasonAlreadyBooked = "Already booked"

// InactiveStatuses статусы, которые не блокируют слоты сиделки
var InactiveStatuses = []BookingStatus{
	StatusCancelledByCareseeker,
	StatusCancelledByCaregiver,
	StatusCompleted,
}

// ActiveStatuses статусы, занимающие время сиделки
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}
