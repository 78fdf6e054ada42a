package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arrearscli/internal/infrastructure"
	"arrearscli/internal/loans"
)

func newTestHandler(includeStack bool) *ErrorHandler {
	return NewErrorHandler(slog.New(slog.NewJSONHandler(io.Discard, nil)), includeStack)
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestErrorHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{
			name:       "missing source file",
			err:        fmt.Errorf("stat sample.xlsx: %w", loans.ErrSourceUnavailable),
			wantStatus: http.StatusServiceUnavailable,
			wantType:   TypeSourceUnavailable,
		},
		{
			name:       "missing required column",
			err:        fmt.Errorf("normalize sample.xlsx: %w: Branch Name", loans.ErrMissingColumn),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeSourceSchema,
		},
		{
			name:       "unsupported extension",
			err:        fmt.Errorf("loans.txt: %w", loans.ErrUnsupportedFormat),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeSourceUnsupported,
		},
		{
			name:       "unreadable workbook",
			err:        fmt.Errorf("open: %w", loans.ErrInvalidSource),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeSourceInvalid,
		},
		{
			name:       "cancelled request",
			err:        fmt.Errorf("load: %w", context.Canceled),
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
		},
		{
			name:       "wrapped api error keeps its status",
			err:        fmt.Errorf("generate: %w", SourceUnavailable("sample.xlsx", loans.ErrSourceUnavailable)),
			wantStatus: http.StatusServiceUnavailable,
			wantType:   TypeSourceUnavailable,
		},
		{
			name:       "unknown error",
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/report", nil)
			req = req.WithContext(infrastructure.WithTraceID(req.Context(), "trace-abc"))
			rec := httptest.NewRecorder()

			newTestHandler(false).HandleError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeProblem(t, rec)
			assert.Equal(t, tt.wantType, body["type"])
			assert.Equal(t, float64(tt.wantStatus), body["status"])
			assert.Equal(t, "/api/report", body["instance"])
			assert.Equal(t, "trace-abc", body["trace_id"])
			assert.NotContains(t, body, "stack")
		})
	}
}

func TestErrorHandler_HandleErrorNil(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler(false).HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assert.Zero(t, rec.Body.Len())
}

func TestErrorHandler_APIErrorDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/report", nil)

	newTestHandler(true).HandleError(rec, req, SourceUnavailable("sample.xlsx", fmt.Errorf("no such file")))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, TypeSourceUnavailable, body["type"])
	assert.Equal(t, "SOURCE_UNAVAILABLE", body["error_code"])
	assert.Equal(t, "no such file", body["details"])
	assert.Contains(t, body, "stack")
}

func TestSourceUnavailable_Unwraps(t *testing.T) {
	cause := fmt.Errorf("stat sample.xlsx: %w", loans.ErrSourceUnavailable)
	err := SourceUnavailable("sample.xlsx", cause)

	assert.ErrorIs(t, err, loans.ErrSourceUnavailable)
	assert.Equal(t, "Loan source sample.xlsx is unavailable: stat sample.xlsx: loan source unavailable", err.Error())

	var apiErr *APIError
	require.ErrorAs(t, fmt.Errorf("load: %w", err), &apiErr)
	assert.Equal(t, CodeSourceUnavailable, apiErr.ErrorCode)
}

func TestErrorHandler_HandlePanic(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	newTestHandler(true).HandlePanic(rec, req, "kaboom")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, "kaboom", body["panic"])
	assert.Equal(t, "An unexpected error occurred", body["detail"])
}

func TestErrorHandler_NotFoundAndMethodNotAllowed(t *testing.T) {
	h := newTestHandler(false)

	rec := httptest.NewRecorder()
	h.NotFound(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, TypeNotFound, decodeProblem(t, rec)["type"])

	rec = httptest.NewRecorder()
	h.MethodNotAllowed(rec, httptest.NewRequest(http.MethodPost, "/api/report", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method POST is not allowed for this endpoint", decodeProblem(t, rec)["detail"])
}

func TestProblemDetails_MarshalJSON(t *testing.T) {
	problem := NewProblemDetails(http.StatusNotFound, TypeNotFound, "Not Found", "", "").
		WithExtension("trace_id", "trace-abc")

	raw, err := json.Marshal(problem)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, TypeNotFound, body["type"])
	assert.Equal(t, "trace-abc", body["trace_id"])
	assert.NotContains(t, body, "detail")
	assert.NotContains(t, body, "instance")
}
