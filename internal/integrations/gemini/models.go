package gemini

import "github.com/m04kA/CareBookingService/internal/domain"

// addressResponse JSON, который модель должна вернуть на запрос распознавания
type addressResponse struct {
	Confidence  float64 `json:"confidence"`
	HouseNumber string  `json:"house_number"`
	Street      string  `json:"street"`
	Ward        string  `json:"ward"`
	District    string  `json:"district"`
	Province    string  `json:"province"`
}

func (r addressResponse) toDomain(raw string) *domain.ParsedAddress {
	confidence := r.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return &domain.ParsedAddress{
		Confidence: confidence,
		Fields: domain.AddressFields{
			HouseNumber: r.HouseNumber,
			Street:      r.Street,
			Ward:        r.Ward,
			District:    r.District,
			Province:    r.Province,
			Raw:         raw,
		},
	}
}
