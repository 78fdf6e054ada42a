package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthService_ReadinessFollowsSource(t *testing.T) {
	ready := NewHealthService("1.0.0", writeLoanBook(t), testLogger())
	status := ready.ReadinessCheck(context.Background())
	assert.Equal(t, "ready", status.Status)
	assert.Equal(t, "ready", status.Services["loan_source"].Status)

	missing := NewHealthService("1.0.0", filepath.Join(t.TempDir(), "sample.xlsx"), testLogger())
	status = missing.ReadinessCheck(context.Background())
	assert.Equal(t, "not_ready", status.Status)
	require.Contains(t, status.Services, "loan_source")
	assert.NotEmpty(t, status.Services["loan_source"].Message)

	dir := NewHealthService("1.0.0", t.TempDir(), testLogger())
	assert.Equal(t, "not_ready", dir.ReadinessCheck(context.Background()).Status)
}

func TestHealthService_HealthAndVersion(t *testing.T) {
	hs := NewHealthService("1.2.3", "sample.xlsx", nil)

	status := hs.HealthCheck(context.Background())
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "1.2.3", status.Version)

	version := hs.Version()
	assert.Equal(t, "1.2.3", version["version"])
	assert.Contains(t, version, "go_version")
}
