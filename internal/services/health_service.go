package services

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	source    string
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Services  map[string]ServiceHealth `json:"services,omitempty"`
}

// ServiceHealth represents individual dependency health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a health service checking the given loan source
func NewHealthService(version, source string, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		source:    source,
		startTime: time.Now(),
		logger:    logger,
	}
}

// HealthCheck reports liveness
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
	}
}

// ReadinessCheck reports whether the loan source can be read
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	source := hs.checkSource()
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version,
		Services:  map[string]ServiceHealth{"loan_source": source},
	}
	if source.Status != "ready" {
		status.Status = "not_ready"
		hs.logger.WarnContext(ctx, "loan source not ready",
			slog.String("source", hs.source),
			slog.String("reason", source.Message))
	}
	return status
}

func (hs *HealthService) checkSource() ServiceHealth {
	info, err := os.Stat(hs.source)
	if err != nil {
		return ServiceHealth{Status: "not_ready", Message: err.Error()}
	}
	if info.IsDir() {
		return ServiceHealth{Status: "not_ready", Message: hs.source + " is a directory"}
	}
	return ServiceHealth{Status: "ready"}
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	return map[string]interface{}{
		"version":    hs.version,
		"go_version": runtime.Version(),
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
		"uptime":     time.Since(hs.startTime).Seconds(),
		"start_time": hs.startTime.Format(time.RFC3339),
	}
}
