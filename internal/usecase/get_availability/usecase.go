package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CareBookingService/internal/domain"
	caregiverClient "github.com/m04kA/CareBookingService/internal/integrations/caregiverservice"
	"github.com/m04kA/CareBookingService/pkg/ptr"
)

// Исходы расчёта для метрик
const (
	outcomeReady = "ready"
	outcomeEmpty = "empty"
	outcomeError = "error"
)

// Options параметры расчёта по умолчанию
type Options struct {
	DefaultHorizonDays       int
	DefaultSlotDurationHours int
	Location                 *time.Location // Часовой пояс календарных дней; nil = time.Local
}

// UseCase use case для расчёта сетки слотов сиделки на горизонт
type UseCase struct {
	bookingRepo     BookingRepository
	caregiverClient CaregiverServiceClient
	metrics         Metrics
	timeProvider    TimeProvider
	opts            Options
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	caregiverClient CaregiverServiceClient,
	metrics Metrics,
	opts Options,
	logger Logger,
) *UseCase {
	if opts.DefaultHorizonDays == 0 {
		opts.DefaultHorizonDays = domain.DefaultHorizonDays
	}
	if opts.DefaultSlotDurationHours == 0 {
		opts.DefaultSlotDurationHours = domain.DefaultSlotDurationHours
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	return &UseCase{
		bookingRepo:     bookingRepo,
		caregiverClient: caregiverClient,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		opts:            opts,
		logger:          logger,
	}
}

// Execute выполняет расчёт доступности.
// Результат зависит только от расписания, бронирований и текущего времени.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: caregiver=%d, horizonDays=%d, slotDurationHours=%d",
		req.CaregiverID, req.HorizonDays, req.SlotDurationHours)

	// 1. Валидация входных данных
	normalized := *req
	if err := normalizeRequest(&normalized, uc.opts.DefaultHorizonDays, uc.opts.DefaultSlotDurationHours); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в часовом поясе сервиса
	now := uc.timeProvider.Now().In(uc.opts.Location)
	today := domain.DateOnly(now)
	lastDay := today.AddDate(0, 0, normalized.HorizonDays-1)

	// 3. Получаем профиль сиделки с расписанием
	caregiver, err := uc.caregiverClient.GetCaregiver(ctx, normalized.CaregiverID)
	if err != nil {
		uc.metrics.ObserveAvailability(outcomeError, 0, 0)
		return nil, uc.mapCaregiverError(normalized.CaregiverID, err)
	}

	schedule := caregiver.Schedule
	if !caregiver.IsActive {
		uc.logger.Info("GetAvailability: caregiver=%d is inactive, no working windows", caregiver.ID)
		schedule = domain.WeeklySchedule{}
	}

	// 4. Получаем активные бронирования на горизонт.
	// Берём на день раньше: ночное окно вчерашнего бронирования заходит на сегодня.
	filter := domain.CaregiverBookingsFilter{
		CaregiverID:     normalized.CaregiverID,
		StartDate:       ptr.Ptr(today.AddDate(0, 0, -1)),
		EndDate:         ptr.Ptr(lastDay),
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetByCaregiverWithFilter(ctx, filter)
	if err != nil {
		uc.metrics.ObserveAvailability(outcomeError, 0, 0)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		uc.logger.Error("GetAvailability: failed to get bookings for caregiver=%d: %v", normalized.CaregiverID, err)
		return nil, fmt.Errorf("%w: %v", ErrBookingsUnavailable, err)
	}

	// 5. Строим сетку слотов по дням
	days := buildDays(
		schedule,
		bookings,
		normalized.HorizonDays,
		slotMinutesFromHours(normalized.SlotDurationHours),
		now,
	)

	resp := &Response{
		CaregiverID:       normalized.CaregiverID,
		HorizonDays:       normalized.HorizonDays,
		SlotDurationHours: normalized.SlotDurationHours,
		GeneratedAt:       now,
		Days:              days,
	}

	outcome := outcomeReady
	if !resp.HasOpenings() {
		outcome = outcomeEmpty
	}
	uc.metrics.ObserveAvailability(outcome, resp.AvailableCount(), resp.BookedCount())

	uc.logger.Info("GetAvailability: caregiver=%d, %d days, %d available, %d booked (%d bookings considered)",
		normalized.CaregiverID, len(days), resp.AvailableCount(), resp.BookedCount(), len(bookings))

	return resp, nil
}

// mapCaregiverError переводит ошибки CaregiverService в ошибки use case
func (uc *UseCase) mapCaregiverError(caregiverID int64, err error) error {
	switch {
	case errors.Is(err, caregiverClient.ErrCaregiverNotFound):
		uc.logger.Warn("GetAvailability: caregiver id=%d not found", caregiverID)
		return ErrCaregiverNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, caregiverClient.ErrServiceUnavailable):
		uc.logger.Error("GetAvailability: caregiver service unavailable for id=%d: %v", caregiverID, err)
		return fmt.Errorf("%w: %v", ErrCaregiverUnavailable, err)
	default:
		uc.logger.Error("GetAvailability: failed to get caregiver id=%d: %v", caregiverID, err)
		return fmt.Errorf("%w: failed to get caregiver: %v", ErrInternal, err)
	}
}
