package http

import (
	"context"

	"arrearscli/internal/arrears"
	"arrearscli/internal/loans"
)

// ReportServiceInterface is what the report and dashboard handlers need from
// the service layer
type ReportServiceInterface interface {
	Generate(ctx context.Context) (*arrears.Report, error)
	ResetCache(ctx context.Context)
	CacheStats() loans.CacheStats
}
