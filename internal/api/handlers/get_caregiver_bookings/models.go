package get_caregiver_bookings

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/CareBookingService/internal/domain"
	"github.com/m04kA/CareBookingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	caregiverID int64,
	userID int64,
	fromStr string,
	toStr string,
	statusStr string,
	includeInactiveStr string,
) (*models.GetCaregiverBookingsRequest, error) {
	req := &models.GetCaregiverBookingsRequest{
		UserID:          userID,
		CaregiverID:     caregiverID,
		IncludeInactive: false, // По умолчанию только активные
	}

	// Период задаётся целиком или не задаётся вовсе
	if (fromStr == "") != (toStr == "") {
		return nil, errors.New("both from and to must be set")
	}

	if fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid from date: %w", err)
		}
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid to date: %w", err)
		}
		req.StartDate = &from
		req.EndDate = &to
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
