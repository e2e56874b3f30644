package parse_address

import (
	"github.com/m04kA/CareBookingService/internal/domain"
	"github.com/m04kA/CareBookingService/internal/service/addressparse"
)

// ParseAddressRequest HTTP request model
type ParseAddressRequest struct {
	Text string `json:"text"`
}

// ParseAddressResponse HTTP response model.
// При accepted=false форма предлагает заполнить адрес вручную.
type ParseAddressResponse struct {
	Accepted   bool                 `json:"accepted"`
	Confidence float64              `json:"confidence"`
	Threshold  float64              `json:"threshold"`
	Fields     domain.AddressFields `json:"fields"`
}

// FromServiceResult конвертирует результат сервиса в HTTP response
func FromServiceResult(result *addressparse.Result) *ParseAddressResponse {
	return &ParseAddressResponse{
		Accepted:   result.Accepted,
		Confidence: result.Address.Confidence,
		Threshold:  result.Threshold,
		Fields:     result.Address.Fields,
	}
}
