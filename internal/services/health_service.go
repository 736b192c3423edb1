package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/kurniaw/sg-job-market-insight/internal/infrastructure"
	"github.com/kurniaw/sg-job-market-insight/pkg/contracts"
	api "github.com/kurniaw/sg-job-market-insight/pkg/contracts/api/v1"
)

// Health states
const (
	StatusOK       = "ok"
	StatusReady    = "ready"
	StatusNotReady = "not_ready"
	StatusAlive    = "alive"
)

// DatasetStatus reports the loaded dataset
type DatasetStatus interface {
	Info() (api.DatasetInfo, bool)
}

// HealthService provides health check functionality
type HealthService struct {
	version   string
	datasets  DatasetStatus
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                      `json:"status"`
	Timestamp time.Time                   `json:"timestamp"`
	Version   string                      `json:"version"`
	Runtime   *infrastructure.SystemStats `json:"runtime,omitempty"`
	Dataset   *api.DatasetInfo            `json:"dataset,omitempty"`
	Checks    map[string]ServiceHealth    `json:"checks,omitempty"`
}

// ServiceHealth represents one dependency check
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a new health service
func NewHealthService(version string, datasets DatasetStatus, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		datasets:  datasets,
		startTime: time.Now(),
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    StatusOK,
		Timestamp: time.Now(),
		Version:   hs.version,
	}
	if info, ok := hs.datasets.Info(); ok {
		status.Dataset = &info
	}

	hs.logger.DebugContext(ctx, "health check completed",
		slog.String("status", status.Status))
	return status
}

// ReadinessCheck reports ready once the dataset is loaded
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    StatusReady,
		Timestamp: time.Now(),
		Version:   hs.version,
		Checks:    map[string]ServiceHealth{"dataset": hs.checkDataset()},
	}

	for _, check := range status.Checks {
		if check.Status != StatusReady {
			status.Status = StatusNotReady
			break
		}
	}

	if status.Status != StatusReady {
		hs.logger.WarnContext(ctx, "service not ready")
	}
	return status
}

// LivenessCheck returns liveness status with runtime statistics
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	stats := infrastructure.CollectSystemStats(hs.startTime)
	return HealthStatus{
		Status:    StatusAlive,
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime:   &stats,
	}
}

// Version returns version information
func (hs *HealthService) Version() contracts.VersionInfo {
	info := contracts.GetVersionInfo()
	info.Version = hs.version
	return info
}

// Uptime returns the time since the service started
func (hs *HealthService) Uptime() time.Duration {
	return time.Since(hs.startTime)
}

func (hs *HealthService) checkDataset() ServiceHealth {
	info, ok := hs.datasets.Info()
	if !ok {
		return ServiceHealth{
			Status:  StatusNotReady,
			Message: "postings dataset not loaded",
		}
	}
	return ServiceHealth{
		Status:  StatusReady,
		Message: info.Source,
	}
}
