package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"arrearscli/internal/arrears"
	"arrearscli/internal/config"
	apierrors "arrearscli/internal/errors"
	"arrearscli/internal/infrastructure"
	"arrearscli/internal/loans"
)

// ReportService produces the arrears report from the configured loan source
type ReportService struct {
	source   string
	cache    *loans.Cache
	pipeline *arrears.Pipeline
	tracer   trace.Tracer
	metrics  *infrastructure.ReportMetrics
	logger   *slog.Logger
}

// NewReportService wires an already built cache and pipeline
func NewReportService(source string, cache *loans.Cache, pipeline *arrears.Pipeline, providers *infrastructure.OTelProviders, logger *slog.Logger) (*ReportService, error) {
	metrics, err := infrastructure.NewReportMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create report metrics: %w", err)
	}

	return &ReportService{
		source:   source,
		cache:    cache,
		pipeline: pipeline,
		tracer:   providers.Tracer,
		metrics:  metrics,
		logger:   infrastructure.WithComponent(logger, "report_service"),
	}, nil
}

// NewReportServiceFromConfig builds the loader, cache and pipeline described
// by cfg
func NewReportServiceFromConfig(cfg config.ReportConfig, providers *infrastructure.OTelProviders, logger *slog.Logger) (*ReportService, error) {
	start, end, err := cfg.Window()
	if err != nil {
		return nil, err
	}
	rate, err := cfg.Rate()
	if err != nil {
		return nil, err
	}
	baseline, err := cfg.Baseline()
	if err != nil {
		return nil, err
	}

	pipeline := &arrears.Pipeline{
		Title:          cfg.Title,
		Window:         arrears.Window{Start: start, End: end},
		ExcludedBranch: cfg.ExcludedBranch,
		CurrencyPrefix: cfg.CurrencyPrefix,
		Calculator:     arrears.NewCalculator(baseline, rate),
	}
	cache := loans.NewCache(loans.NewFileLoader(logger))

	return NewReportService(cfg.SourceFile, cache, pipeline, providers, logger)
}

// Source returns the loan source path the report is built from
func (s *ReportService) Source() string {
	return s.source
}

// Generate loads the source (through the cache) and runs the pipeline
func (s *ReportService) Generate(ctx context.Context) (*arrears.Report, error) {
	ctx, span := s.tracer.Start(ctx, "report.generate",
		trace.WithAttributes(attribute.String("report.source", s.source)))
	defer span.End()

	start := time.Now()
	report, err := s.generate(ctx)
	s.metrics.RecordGeneration(ctx, time.Since(start), err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.ErrorContext(ctx, "report generation failed",
			slog.String("source", s.source),
			slog.String("error", err.Error()))
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("report.records_loaded", report.RecordsLoaded),
		attribute.Int("report.records_in_window", report.RecordsInWindow),
		attribute.Int("report.branches", len(report.Rows)),
	)
	s.logger.InfoContext(ctx, "report generated",
		slog.String("source", s.source),
		slog.Int("records_loaded", report.RecordsLoaded),
		slog.Int("records_in_window", report.RecordsInWindow),
		slog.Int("branches", len(report.Rows)),
		slog.Duration("duration", time.Since(start)))

	return report, nil
}

func (s *ReportService) generate(ctx context.Context) (*arrears.Report, error) {
	ds, hit, err := s.cache.Get(ctx, s.source)
	if errors.Is(err, loans.ErrSourceUnavailable) {
		return nil, apierrors.SourceUnavailable(s.source, err)
	}
	if err != nil {
		return nil, fmt.Errorf("load loan source: %w", err)
	}
	s.metrics.RecordDataset(ctx, hit, len(ds.Records))
	trace.SpanFromContext(ctx).SetAttributes(attribute.Bool("report.cache_hit", hit))

	return s.pipeline.Run(ds.Records), nil
}

// ResetCache drops every cached dataset so the next Generate rereads the
// source
func (s *ReportService) ResetCache(ctx context.Context) {
	s.cache.Reset()
	s.logger.InfoContext(ctx, "dataset cache reset", slog.String("source", s.source))
}

// CacheStats reports cache counters
func (s *ReportService) CacheStats() loans.CacheStats {
	return s.cache.Stats()
}
