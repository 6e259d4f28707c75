package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"almanac/internal/dataset"
	"almanac/internal/infrastructure"
)

// HealthStatus is the aggregate health report served at /api/health
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Checks    map[string]CheckResult `json:"checks"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
}

// CheckResult describes one health check
type CheckResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

const (
	// HealthOK means the server can answer every query
	HealthOK = "ok"
	// HealthDegraded means the server is up but queries will fail or
	// return nothing, typically because no cleaned data is loaded.
	HealthDegraded = "degraded"
)

// HealthService reports server and dataset health
type HealthService struct {
	ds        *dataset.Dataset
	version   string
	buildTime string
	startTime time.Time
	system    *infrastructure.SystemMetrics
	logger    *slog.Logger
}

// NewHealthService creates a health service. The system metrics
// collector may be nil, in which case runtime stats are omitted.
func NewHealthService(ds *dataset.Dataset, version, buildTime string, system *infrastructure.SystemMetrics, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		ds:        ds,
		version:   version,
		buildTime: buildTime,
		startTime: time.Now(),
		system:    system,
		logger:    infrastructure.WithComponent(logger, "health_service"),
	}
}

// HealthCheck reports overall health. The status is degraded rather
// than failed when the dataset is missing or empty: the process is
// still serving and the condition is fixed by running the cleaner,
// not by restarting.
func (h *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    HealthOK,
		Timestamp: time.Now(),
		Version:   h.version,
		Checks: map[string]CheckResult{
			"dataset": h.checkDataset(),
			"uptime": {
				Status:  HealthOK,
				Message: time.Since(h.startTime).Round(time.Second).String(),
			},
		},
	}

	for _, check := range status.Checks {
		if check.Status != HealthOK {
			status.Status = HealthDegraded
			break
		}
	}

	if h.system != nil {
		if sysStats := h.system.Collect(ctx, h.startTime); sysStats != nil {
			status.Runtime = sysStats.FormatStats()
		}
	}

	h.logger.DebugContext(ctx, "health check",
		slog.String("status", status.Status))
	return status
}

// LivenessCheck reports whether the process is alive. It never
// inspects the dataset; a live server with no data is still live.
func (h *HealthService) LivenessCheck(ctx context.Context) map[string]interface{} {
	return map[string]interface{}{
		"status":    "alive",
		"timestamp": time.Now(),
		"uptime":    time.Since(h.startTime).Round(time.Second).String(),
	}
}

// ReadinessCheck reports whether queries will succeed
func (h *HealthService) ReadinessCheck(ctx context.Context) (bool, HealthStatus) {
	status := h.HealthCheck(ctx)
	return status.Status == HealthOK, status
}

// Version returns build and runtime identification
func (h *HealthService) Version(ctx context.Context) map[string]interface{} {
	info := map[string]interface{}{
		"version":    h.version,
		"go_version": runtime.Version(),
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
		"start_time": h.startTime.Format(time.RFC3339),
		"uptime":     time.Since(h.startTime).Round(time.Second).String(),
	}
	if h.buildTime != "" {
		info["build_time"] = h.buildTime
	}
	if h.ds != nil && !h.ds.Empty() {
		minYear, maxYear := h.ds.YearRange()
		info["dataset_years"] = fmt.Sprintf("%d-%d", minYear, maxYear)
	}
	return info
}

// checkDataset reports the dataset check
func (h *HealthService) checkDataset() CheckResult {
	if h.ds == nil {
		return CheckResult{
			Status:  HealthDegraded,
			Message: "no dataset loaded; run the cleaner and restart",
		}
	}
	if h.ds.Empty() {
		return CheckResult{
			Status:  HealthDegraded,
			Message: "dataset has no team seasons",
		}
	}

	minYear, maxYear := h.ds.YearRange()
	counts := h.ds.Counts()
	return CheckResult{
		Status: HealthOK,
		Message: fmt.Sprintf("%d teams, %d batting, %d pitching rows covering %d-%d",
			counts["teams"], counts["batting"], counts["pitching"], minYear, maxYear),
	}
}
