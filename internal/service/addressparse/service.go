package addressparse

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/CareBookingService/internal/domain"
)

const (
	outcomeAccepted      = "accepted"
	outcomeLowConfidence = "low_confidence"
	outcomeUnrecognized  = "unrecognized"
	outcomeError         = "error"
)

// Service распознавание адреса с порогом уверенности
type Service struct {
	parser    Parser
	threshold float64
	metrics   Metrics
	logger    Logger
}

// NewService создает сервис; parser == nil означает выключенное распознавание
func NewService(parser Parser, threshold float64, metrics Metrics, logger Logger) *Service {
	if threshold <= 0 || threshold > 1 {
		threshold = domain.DefaultAddressConfidenceThreshold
	}
	return &Service{
		parser:    parser,
		threshold: threshold,
		metrics:   metrics,
		logger:    logger,
	}
}

// Parse распознаёт адрес.
// Ответ модели, который не удалось разобрать, не считается ошибкой:
// возвращается пустой результат с Accepted=false.
func (s *Service) Parse(ctx context.Context, text string) (*Result, error) {
	// 1. Валидация текста
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	if len(text) > domain.MaxAddressTextLength {
		return nil, fmt.Errorf("%w: text must not exceed %d characters", ErrInvalidInput, domain.MaxAddressTextLength)
	}

	if s.parser == nil {
		return nil, ErrDisabled
	}

	// 2. Вызов провайдера
	parsed, err := s.parser.Parse(ctx, text)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrAddressNotRecognized):
		s.logger.Warn("ParseAddress: unrecognized model response: %v", err)
		s.metrics.IncAddressParse(outcomeUnrecognized)
		return &Result{
			Address:   domain.ParsedAddress{Fields: domain.AddressFields{Raw: text}},
			Threshold: s.threshold,
		}, nil
	default:
		s.logger.Error("ParseAddress: parser failed: %v", err)
		s.metrics.IncAddressParse(outcomeError)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// 3. Сравнение с порогом
	result := &Result{
		Address:   *parsed,
		Accepted:  parsed.IsConfident(s.threshold) && !parsed.Fields.IsEmpty(),
		Threshold: s.threshold,
	}

	if result.Accepted {
		s.metrics.IncAddressParse(outcomeAccepted)
	} else {
		s.metrics.IncAddressParse(outcomeLowConfidence)
	}

	s.logger.Info("ParseAddress: confidence=%.2f, accepted=%t", parsed.Confidence, result.Accepted)
	return result, nil
}
