package parse_address

import (
	"errors"
	"net/http"

	"github.com/m04kA/CareBookingService/internal/api/handlers"
	"github.com/m04kA/CareBookingService/internal/service/addressparse"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidText        = "введите адрес текстом, не длиннее 1000 символов"
	msgDisabled           = "распознавание адреса отключено, заполните адрес вручную"
	msgUnavailable        = "распознавание адреса временно недоступно"
)

type Handler struct {
	parser AddressParser
	logger Logger
}

func NewHandler(parser AddressParser, logger Logger) *Handler {
	return &Handler{
		parser: parser,
		logger: logger,
	}
}

// Handle POST /api/v1/addresses/parse
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ParseAddressRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /addresses/parse - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.parser.Parse(r.Context(), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, addressparse.ErrInvalidInput):
			h.logger.Warn("POST /addresses/parse - Invalid text: %v", err)
			handlers.RespondValidationError(w, "text", msgInvalidText)

		case errors.Is(err, addressparse.ErrDisabled):
			h.logger.Warn("POST /addresses/parse - Parser disabled")
			handlers.RespondError(w, http.StatusNotImplemented, msgDisabled)

		case errors.Is(err, addressparse.ErrUnavailable):
			h.logger.Warn("POST /addresses/parse - Parser unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgUnavailable)

		default:
			h.logger.Error("POST /addresses/parse - Failed to parse address: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /addresses/parse - Parsed: accepted=%t, confidence=%.2f",
		result.Accepted, result.Address.Confidence)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResult(result))
}
