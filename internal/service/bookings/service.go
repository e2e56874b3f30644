package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CareBookingService/internal/domain"
	bookingRepo "github.com/m04kA/CareBookingService/internal/infra/storage/booking"
	caregiverClient "github.com/m04kA/CareBookingService/internal/integrations/caregiverservice"
	"github.com/m04kA/CareBookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo     BookingRepository
	caregiverClient CaregiverServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	caregiverClient CaregiverServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:     bookingRepo,
		caregiverClient: caregiverClient,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - бронирование видят заказчик и сама сиделка
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	// Проверяем права доступа
	if booking.CareseekerID != userID {
		if err := s.checkCaregiverAccess(ctx, booking.CaregiverID, userID); err != nil {
			s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
			return nil, accessError(err)
		}
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetCareseekerBookings получает историю бронирований заказчика
// Опционально фильтрует по статусу
func (s *Service) GetCareseekerBookings(ctx context.Context, req *models.GetCareseekerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCareseekerBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCareseekerBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCareseekerID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetCareseekerBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetCareseekerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCareseekerBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetCaregiverBookings получает расписание сиделки за период
// Доступно только владельцу профиля сиделки
//
// Примеры использования:
// - Все активные бронирования: GetCaregiverBookings(ctx, &GetCaregiverBookingsRequest{CaregiverID: 7, UserID: 70})
// - Бронирования, затрагивающие период: StartDate и EndDate
// - Только подтвержденные: Status = "confirmed"
// - Включая отменённые и завершённые: IncludeInactive = true
func (s *Service) GetCaregiverBookings(ctx context.Context, req *models.GetCaregiverBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetCaregiverBookings: fetching bookings for caregiver=%d, user=%d", req.CaregiverID, req.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}

	// Проверяем, что запрашивает сама сиделка
	if err := s.checkCaregiverAccess(ctx, req.CaregiverID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetCaregiverBookings: invalid filter for caregiver=%d: %v", req.CaregiverID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByCaregiverWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetCaregiverBookings: repository error for caregiver=%d: %v", req.CaregiverID, err)
		return nil, fmt.Errorf("%w: GetCaregiverBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCaregiverBookings: successfully fetched %d bookings for caregiver=%d", len(bookings), req.CaregiverID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Заказчик отменяет своё бронирование (cancelled_by_careseeker),
// сиделка отменяет бронирование своего профиля (cancelled_by_caregiver)
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return err
	}

	// Проверяем, можно ли отменить бронирование
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	// Определяем статус отмены в зависимости от роли пользователя
	var cancelStatus domain.BookingStatus
	if booking.CareseekerID == req.UserID {
		cancelStatus = domain.StatusCancelledByCareseeker
	} else {
		if err := s.checkCaregiverAccess(ctx, booking.CaregiverID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
			return accessError(err)
		}
		cancelStatus = domain.StatusCancelledByCaregiver
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d with status=%s", bookingID, cancelStatus)
	return nil
}

// UpdateStatus переводит бронирование по жизненному циклу
// (pending -> confirmed -> in_progress -> completed)
// Доступно только сиделке, на которую оформлено бронирование
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	newStatus, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, "UpdateStatus", bookingID)
	if err != nil {
		return err
	}

	if err := s.checkCaregiverAccess(ctx, booking.CaregiverID, req.UserID); err != nil {
		return accessError(err)
	}

	if !booking.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for booking id=%d",
			booking.Status, newStatus, bookingID)
		return ErrInvalidTransition
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found during update", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// checkCaregiverAccess проверяет, что пользователь владеет профилем сиделки
func (s *Service) checkCaregiverAccess(ctx context.Context, caregiverID int64, userID int64) error {
	caregiver, err := s.caregiverClient.GetCaregiver(ctx, caregiverID)
	if err != nil {
		if errors.Is(err, caregiverClient.ErrCaregiverNotFound) {
			s.logger.Warn("checkCaregiverAccess: caregiver id=%d not found", caregiverID)
			return ErrCaregiverNotFound
		}
		if errors.Is(err, caregiverClient.ErrServiceUnavailable) {
			s.logger.Warn("checkCaregiverAccess: caregiver service unavailable for caregiver id=%d: %v", caregiverID, err)
			return fmt.Errorf("%w: %v", ErrCaregiverUnavailable, err)
		}
		s.logger.Error("checkCaregiverAccess: failed to get caregiver id=%d: %v", caregiverID, err)
		return fmt.Errorf("%w: checkCaregiverAccess - failed to get caregiver: %v", ErrInternal, err)
	}

	if caregiver.UserID != userID {
		s.logger.Warn("checkCaregiverAccess: user=%d does not own caregiver=%d", userID, caregiverID)
		return ErrAccessDenied
	}

	return nil
}

// accessError для чужого бронирования не раскрывает, существует ли профиль сиделки
func accessError(err error) error {
	if errors.Is(err, ErrCaregiverNotFound) {
		return ErrAccessDenied
	}
	return err
}
