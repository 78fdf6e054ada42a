package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arrearscli/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestInitializeOTel_Disabled(t *testing.T) {
	providers, err := InitializeOTel(config.TelemetryConfig{
		Environment:    "test",
		TraceExporter:  "none",
		MetricExporter: "none",
	}, discardLogger())
	require.NoError(t, err)

	assert.Nil(t, providers.TracerProvider)
	assert.Nil(t, providers.MeterProvider)
	assert.Nil(t, providers.PrometheusHTTP)
	require.NotNil(t, providers.Tracer)
	require.NotNil(t, providers.Meter)

	metrics, err := NewReportMetrics(providers.Meter)
	require.NoError(t, err)
	metrics.RecordGeneration(context.Background(), time.Millisecond, nil)

	assert.NoError(t, providers.Shutdown(context.Background()))
}

func TestInitializeOTel_UnsupportedExporter(t *testing.T) {
	_, err := InitializeOTel(config.TelemetryConfig{TraceExporter: "jaeger", MetricExporter: "none"}, discardLogger())
	assert.ErrorContains(t, err, "unsupported trace exporter")

	_, err = InitializeOTel(config.TelemetryConfig{TraceExporter: "none", MetricExporter: "statsd"}, discardLogger())
	assert.ErrorContains(t, err, "unsupported metric exporter")
}

func TestReportMetrics_PrometheusEndpoint(t *testing.T) {
	providers, err := InitializeOTel(config.TelemetryConfig{
		Environment:    "test",
		TraceExporter:  "none",
		MetricExporter: "prometheus",
		SampleRatio:    1.0,
	}, discardLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())
	require.NotNil(t, providers.PrometheusHTTP)

	metrics, err := NewReportMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordDataset(ctx, false, 42)
	metrics.RecordDataset(ctx, true, 42)
	metrics.RecordGeneration(ctx, 25*time.Millisecond, nil)
	metrics.RecordGeneration(ctx, 5*time.Millisecond, errors.New("boom"))

	rec := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "report_generations_total")
	assert.Contains(t, body, `outcome="error"`)
	assert.Contains(t, body, `outcome="success"`)
	assert.Contains(t, body, "dataset_cache_hits_total")
	assert.Contains(t, body, "dataset_cache_misses_total")
	assert.Contains(t, body, "loan_records_loaded")
}

func TestInitializeOTel_StdoutTracing(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	providers, err := InitializeOTel(config.TelemetryConfig{
		Environment:    "test",
		TraceExporter:  "stdout",
		MetricExporter: "none",
		SampleRatio:    1.0,
	}, logger)
	require.NoError(t, err)
	require.NotNil(t, providers.TracerProvider)

	_, span := providers.Tracer.Start(context.Background(), "generate_report")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	assert.Contains(t, buf.String(), "Tracing initialized")
	assert.NoError(t, providers.Shutdown(context.Background()))
}
