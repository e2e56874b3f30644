package domain

import "errors"

// ErrAddressNotRecognized возвращается распознавателем, если ответ не удалось
// превратить в адрес. Вызывающий переходит к ручному вводу.
var ErrAddressNotRecognized = errors.New("address not recognized")

// AddressFields поля вьетнамского адреса, извлечённые из свободного текста
type AddressFields struct {
	HouseNumber string `json:"houseNumber"`
	Street      string `json:"street"`
	Ward        string `json:"ward"`     // Phường / Xã
	District    string `json:"district"` // Quận / Huyện
	Province    string `json:"province"` // Tỉnh / Thành phố
	Raw         string `json:"raw"`
}

// IsEmpty возвращает true, если не распознано ни одного поля
func (f AddressFields) IsEmpty() bool {
	return f.HouseNumber == "" && f.Street == "" && f.Ward == "" &&
		f.District == "" && f.Province == ""
}

// ParsedAddress результат распознавания адреса
type ParsedAddress struct {
	Confidence float64 // 0..1
	Fields     AddressFields
}

// IsConfident проверяет уверенность распознавания относительно порога
func (a *ParsedAddress) IsConfident(threshold float64) bool {
	return a.Confidence >= threshold
}
