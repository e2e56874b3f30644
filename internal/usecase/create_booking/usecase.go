package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CareBookingService/internal/domain"
	caregiverClient "github.com/m04kA/CareBookingService/internal/integrations/caregiverservice"
)

// Options параметры use case
type Options struct {
	Location *time.Location // Часовой пояс, в котором заданы даты и время бронирования
}

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo     BookingRepository
	caregiverClient CaregiverServiceClient
	txManager       TransactionManager
	metrics         Metrics
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	caregiverClient CaregiverServiceClient,
	txManager TransactionManager,
	metrics Metrics,
	opts Options,
	logger Logger,
) *UseCase {
	location := opts.Location
	if location == nil {
		location = time.UTC
	}

	return &UseCase{
		bookingRepo:     bookingRepo,
		caregiverClient: caregiverClient,
		txManager:       txManager,
		metrics:         metrics,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Validate проверяет форму бронирования без обращения к внешним сервисам.
// Возвращает первую блокирующую ошибку и допустимое время начала задач.
func (uc *UseCase) Validate(req *Request) *ValidationResult {
	form, vErr := parseForm(req, uc.location)

	result := &ValidationResult{
		Valid:                 vErr == nil,
		AllowedTaskStartTimes: domain.AllowedTaskStartTimes(form.slots),
	}
	if vErr != nil {
		result.Field = vErr.Field
		result.Message = vErr.Message
	}

	return result
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: careseeker=%d, caregiver=%d, type=%s, startDate=%s",
		req.CareseekerID, req.CaregiverID, req.DurationType, req.StartDate.Format(domain.DateFormat))

	// 1. Валидация идентификаторов
	if req.CareseekerID <= 0 {
		return nil, fmt.Errorf("%w: careseekerID must be positive", ErrInvalidInput)
	}
	if req.CaregiverID <= 0 {
		return nil, fmt.Errorf("%w: caregiverID must be positive", ErrInvalidInput)
	}

	// 2. Валидация формы
	form, vErr := parseForm(req, uc.location)
	if vErr != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", vErr)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, vErr)
	}
	candidate := form.toBooking(req)

	// 3. Бронирование не может начинаться в прошлом
	now := uc.timeProvider.Now().In(uc.location)
	if startsInPast(candidate, now) {
		uc.logger.Warn("CreateBooking: booking starts in the past: %s", candidate.StartDate.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 4. Получаем профиль сиделки
	caregiver, err := uc.caregiverClient.GetCaregiver(ctx, req.CaregiverID)
	if err != nil {
		return nil, uc.mapCaregiverError(ctx, req.CaregiverID, err)
	}

	if caregiver.UserID == req.CareseekerID {
		uc.logger.Warn("CreateBooking: user=%d tried to book own profile caregiver=%d", req.CareseekerID, req.CaregiverID)
		return nil, ErrSelfBooking
	}

	if !caregiver.CanBeBooked() {
		uc.logger.Warn("CreateBooking: caregiver=%d cannot be booked (active=%t)", req.CaregiverID, caregiver.IsActive)
		return nil, ErrCaregiverNotBookable
	}

	// 5. Почасовое бронирование должно укладываться в рабочие окна сиделки
	if candidate.DurationType.UsesTime() {
		if err := checkWorkingHours(candidate, caregiver.Schedule); err != nil {
			uc.logger.Warn("CreateBooking: %v", err)
			return nil, err
		}
	}

	var result *domain.Booking

	// 6. Проверка пересечений и сохранение в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Активные бронирования сиделки за период с блокировкой (FOR UPDATE).
		// Начинаем на день раньше: ночное окно предыдущего дня заходит на первую дату.
		from := candidate.StartDate.AddDate(0, 0, -1)
		to := occupiedUntil(candidate).AddDate(0, 0, 1)

		filter := domain.CaregiverBookingsFilter{
			CaregiverID:     req.CaregiverID,
			StartDate:       &from,
			EndDate:         &to,
			IncludeInactive: false,
			ForUpdate:       true,
		}

		existing, err := uc.bookingRepo.GetByCaregiverWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 6.2. Проверяем пересечения
		if conflict := findConflict(candidate, existing); conflict != nil {
			uc.logger.Warn("CreateBooking: overlaps booking id=%d of caregiver=%d", conflict.ID, req.CaregiverID)
			return ErrSlotNotAvailable
		}

		// 6.3. Сохраняем бронирование вместе с задачами
		created, err := uc.bookingRepo.Create(txCtx, candidate)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.metrics.IncBookingCreated(string(result.DurationType))
	uc.logger.Info("CreateBooking: successfully created booking id=%d with %d tasks", result.ID, len(result.Tasks))

	return &Response{Booking: result}, nil
}

// mapCaregiverError переводит ошибки CaregiverService в ошибки use case
func (uc *UseCase) mapCaregiverError(ctx context.Context, caregiverID int64, err error) error {
	switch {
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(err, caregiverClient.ErrCaregiverNotFound):
		uc.logger.Warn("CreateBooking: caregiver id=%d not found", caregiverID)
		return ErrCaregiverNotFound
	case errors.Is(err, caregiverClient.ErrServiceUnavailable):
		uc.logger.Error("CreateBooking: caregiver service unavailable: %v", err)
		return fmt.Errorf("%w: %v", ErrCaregiverUnavailable, err)
	default:
		uc.logger.Error("CreateBooking: failed to get caregiver id=%d: %v", caregiverID, err)
		return fmt.Errorf("%w: failed to get caregiver: %v", ErrInternal, err)
	}
}
