package create_booking

import "errors"

var (
	// ErrCaregiverNotFound возвращается, когда сиделка не найдена
	ErrCaregiverNotFound = errors.New("create_booking: caregiver not found")

	// ErrCaregiverNotBookable возвращается, когда профиль сиделки неактивен или без расписания
	ErrCaregiverNotBookable = errors.New("create_booking: caregiver cannot be booked")

	// ErrCaregiverUnavailable возвращается, когда CaregiverService недоступен
	ErrCaregiverUnavailable = errors.New("create_booking: caregiver service unavailable")

	// ErrSelfBooking возвращается при попытке забронировать собственный профиль
	ErrSelfBooking = errors.New("create_booking: caregiver cannot book themselves")

	// ErrInvalidDate возвращается, когда бронирование начинается в прошлом
	ErrInvalidDate = errors.New("create_booking: booking starts in the past")

	// ErrOutsideWorkingHours возвращается, когда почасовое бронирование выходит за рабочие окна сиделки
	ErrOutsideWorkingHours = errors.New("create_booking: booking is outside caregiver working hours")

	// ErrSlotNotAvailable возвращается, когда время пересекается с активным бронированием сиделки
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
