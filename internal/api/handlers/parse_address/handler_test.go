package parse_address

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CareBookingService/internal/domain"
	"github.com/m04kA/CareBookingService/internal/service/addressparse"
	"github.com/m04kA/CareBookingService/pkg/logger"
)

type fakeParser struct {
	result   *addressparse.Result
	err      error
	lastText string
}

func (f *fakeParser) Parse(_ context.Context, text string) (*addressparse.Result, error) {
	f.lastText = text
	return f.result, f.err
}

func post(parser *fakeParser, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/addresses/parse", strings.NewReader(body))
	NewHandler(parser, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandler_Accepted(t *testing.T) {
	parser := &fakeParser{result: &addressparse.Result{
		Accepted:  true,
		Threshold: 0.7,
		Address: domain.ParsedAddress{
			Confidence: 0.92,
			Fields: domain.AddressFields{
				HouseNumber: "12",
				Street:      "Nguyễn Huệ",
				Ward:        "Bến Nghé",
				District:    "Quận 1",
				Province:    "TP. Hồ Chí Minh",
			},
		},
	}}

	rec := post(parser, `{"text": "12 Nguyễn Huệ, Bến Nghé, Quận 1, TP.HCM"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "12 Nguyễn Huệ, Bến Nghé, Quận 1, TP.HCM", parser.lastText)

	var body ParseAddressResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Accepted)
	assert.InDelta(t, 0.92, body.Confidence, 1e-9)
	assert.Equal(t, "Quận 1", body.Fields.District)
}

func TestHandler_LowConfidenceIsNotAnError(t *testing.T) {
	parser := &fakeParser{result: &addressparse.Result{
		Threshold: 0.7,
		Address:   domain.ParsedAddress{Confidence: 0.3, Fields: domain.AddressFields{Raw: "somewhere"}},
	}}

	rec := post(parser, `{"text": "somewhere"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body ParseAddressResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Accepted)
	assert.Equal(t, "somewhere", body.Fields.Raw)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"bad json", `{"text":`, nil, http.StatusBadRequest},
		{"empty text", `{"text": ""}`, fmt.Errorf("%w: text is required", addressparse.ErrInvalidInput), http.StatusUnprocessableEntity},
		{"disabled", `{"text": "a"}`, addressparse.ErrDisabled, http.StatusNotImplemented},
		{"unavailable", `{"text": "a"}`, fmt.Errorf("%w: 503", addressparse.ErrUnavailable), http.StatusServiceUnavailable},
		{"context cancelled", `{"text": "a"}`, context.Canceled, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(&fakeParser{err: tt.err}, tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
