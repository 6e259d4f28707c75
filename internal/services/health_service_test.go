package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"almanac/internal/dataset"
	"almanac/internal/infrastructure"
)

func TestHealthService_HealthCheck(t *testing.T) {
	svc := NewHealthService(newFixtureDataset(t), "1.0.0", "", nil, slog.Default())

	status := svc.HealthCheck(context.Background())

	assert.Equal(t, HealthOK, status.Status)
	assert.Equal(t, "1.0.0", status.Version)
	assert.False(t, status.Timestamp.IsZero())

	ds := status.Checks["dataset"]
	assert.Equal(t, HealthOK, ds.Status)
	assert.Contains(t, ds.Message, "12 teams")
	assert.Contains(t, ds.Message, "1996-1998")

	assert.Equal(t, HealthOK, status.Checks["uptime"].Status)
	// No system metrics collector wired
	assert.Nil(t, status.Runtime)
}

func TestHealthService_HealthCheck_NoDataset(t *testing.T) {
	svc := NewHealthService(nil, "1.0.0", "", nil, slog.Default())

	status := svc.HealthCheck(context.Background())

	assert.Equal(t, HealthDegraded, status.Status)
	assert.Contains(t, status.Checks["dataset"].Message, "no dataset loaded")
}

func TestHealthService_HealthCheck_EmptyDataset(t *testing.T) {
	svc := NewHealthService(&dataset.Dataset{}, "1.0.0", "", nil, slog.Default())

	status := svc.HealthCheck(context.Background())

	assert.Equal(t, HealthDegraded, status.Status)
	assert.Contains(t, status.Checks["dataset"].Message, "no team seasons")
}

func TestHealthService_HealthCheck_RuntimeStats(t *testing.T) {
	mp := sdkmetric.NewMeterProvider()
	t.Cleanup(func() { mp.Shutdown(context.Background()) })

	system, err := infrastructure.NewSystemMetrics(mp.Meter("almanac-test"))
	require.NoError(t, err)

	svc := NewHealthService(newFixtureDataset(t), "1.0.0", "", system, slog.Default())

	status := svc.HealthCheck(context.Background())
	require.NotNil(t, status.Runtime)
	assert.Contains(t, status.Runtime, "runtime")
	assert.Contains(t, status.Runtime, "system")
}

func TestHealthService_ReadinessCheck(t *testing.T) {
	ready, status := NewHealthService(newFixtureDataset(t), "1.0.0", "", nil, slog.Default()).
		ReadinessCheck(context.Background())
	assert.True(t, ready)
	assert.Equal(t, HealthOK, status.Status)

	ready, status = NewHealthService(nil, "1.0.0", "", nil, slog.Default()).
		ReadinessCheck(context.Background())
	assert.False(t, ready)
	assert.Equal(t, HealthDegraded, status.Status)
}

func TestHealthService_LivenessCheck(t *testing.T) {
	// Liveness never looks at the dataset
	svc := NewHealthService(nil, "1.0.0", "", nil, slog.Default())

	live := svc.LivenessCheck(context.Background())
	assert.Equal(t, "alive", live["status"])
	assert.Contains(t, live, "uptime")
}

func TestHealthService_Version(t *testing.T) {
	svc := NewHealthService(newFixtureDataset(t), "1.2.3", "2026-08-01T00:00:00Z", nil, slog.Default())

	info := svc.Version(context.Background())

	assert.Equal(t, "1.2.3", info["version"])
	assert.Equal(t, "2026-08-01T00:00:00Z", info["build_time"])
	assert.Equal(t, "1996-1998", info["dataset_years"])
	assert.Contains(t, info, "go_version")
	assert.Contains(t, info, "os")
	assert.Contains(t, info, "arch")
}

func TestHealthService_Version_NoBuildTime(t *testing.T) {
	svc := NewHealthService(nil, "1.2.3", "", nil, slog.Default())

	info := svc.Version(context.Background())
	assert.NotContains(t, info, "build_time")
	assert.NotContains(t, info, "dataset_years")
}
