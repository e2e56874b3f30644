package get_availability

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/CareBookingService/internal/domain"
	getAvailability "github.com/m04kA/CareBookingService/internal/usecase/get_availability"
)

// Статусы ответа
const (
	statusReady = "ready"
	statusEmpty = "empty" // Сиделка занята на весь горизонт, это не ошибка
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	CaregiverID       int64     `json:"caregiverId"`
	HorizonDays       int       `json:"horizonDays"`
	SlotDurationHours int       `json:"slotDurationHours"`
	GeneratedAt       time.Time `json:"generatedAt"`
	Status            string    `json:"status"`
	AvailableCount    int       `json:"availableCount"`
	Days              []Day     `json:"days"`
}

// Day слоты одного дня
type Day struct {
	Date    string `json:"date"`
	DayName string `json:"dayName"`
	Slots   []Slot `json:"slots"`
}

// Slot модель временного слота
type Slot struct {
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
	Reason      string `json:"reason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	days := make([]Day, len(resp.Days))
	for i, day := range resp.Days {
		slots := make([]Slot, len(day.Slots))
		for j, slot := range day.Slots {
			slots[j] = Slot{
				StartTime:   slot.StartTime.String(),
				EndTime:     slot.EndTime.String(),
				IsAvailable: slot.IsAvailable,
				Reason:      slot.Reason,
			}
		}
		days[i] = Day{
			Date:    day.Date.Format(domain.DateFormat),
			DayName: day.DayName,
			Slots:   slots,
		}
	}

	status := statusReady
	if !resp.HasOpenings() {
		status = statusEmpty
	}

	return &AvailabilityResponse{
		CaregiverID:       resp.CaregiverID,
		HorizonDays:       resp.HorizonDays,
		SlotDurationHours: resp.SlotDurationHours,
		GeneratedAt:       resp.GeneratedAt,
		Status:            status,
		AvailableCount:    resp.AvailableCount(),
		Days:              days,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров.
// Отсутствующий параметр означает значение по умолчанию.
func ToUseCaseRequest(caregiverID int64, query url.Values) (*getAvailability.Request, error) {
	req := &getAvailability.Request{CaregiverID: caregiverID}

	var err error
	if req.HorizonDays, err = optionalInt(query, "horizonDays"); err != nil {
		return nil, err
	}
	if req.SlotDurationHours, err = optionalInt(query, "slotDurationHours"); err != nil {
		return nil, err
	}

	return req, nil
}

func optionalInt(query url.Values, name string) (int, error) {
	raw := query.Get(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
