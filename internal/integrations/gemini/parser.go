package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/CareBookingService/internal/domain"
)

// Generator источник ответа модели (Client в продакшене, фейк в тестах)
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

const addressPrompt = `You extract Vietnamese postal addresses from free text.
Return ONLY a JSON object with the keys:
"house_number", "street", "ward", "district", "province" (strings, empty when absent)
and "confidence" (number from 0 to 1, how sure you are the fields are correct).
Keep Vietnamese diacritics as written.

Text: %s`

// Parser распознаёт адрес через LLM
type Parser struct {
	generator Generator
	timeout   time.Duration
}

// NewParser создает парсер адресов; timeout <= 0 отключает собственный таймаут
func NewParser(generator Generator, timeout time.Duration) *Parser {
	return &Parser{generator: generator, timeout: timeout}
}

// Parse извлекает поля адреса и уверенность модели
func (p *Parser) Parse(ctx context.Context, text string) (*domain.ParsedAddress, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	raw, err := p.generator.GenerateContent(ctx, fmt.Sprintf(addressPrompt, text))
	if err != nil {
		return nil, err
	}

	payload := stripCodeFence(raw)
	if payload == "" {
		return nil, ErrEmptyResponse
	}

	var resp addressResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return resp.toDomain(text), nil
}

// stripCodeFence убирает обёртку ```json ... ```, которую модель иногда добавляет
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
