// Package services holds the application layer between the HTTP handlers or
// the CLI and the report pipeline.
//
// ReportService owns the loan dataset cache and the configured
// arrears.Pipeline. Each Generate call opens a span, reads the source
// through the cache and records report metrics:
//
//	svc, err := services.NewReportServiceFromConfig(cfg.Report, providers, logger)
//	if err != nil {
//	    return err
//	}
//	report, err := svc.Generate(ctx)
//
// HealthService answers liveness and readiness checks; readiness fails while
// the loan source file is missing.
package services
