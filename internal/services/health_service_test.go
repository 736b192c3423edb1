package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurniaw/sg-job-market-insight/internal/dataprocessing"
	"github.com/kurniaw/sg-job-market-insight/pkg/contracts"
	api "github.com/kurniaw/sg-job-market-insight/pkg/contracts/api/v1"
	"github.com/kurniaw/sg-job-market-insight/pkg/contracts/domain"
)

type stubDatasets struct {
	info api.DatasetInfo
	ok   bool
}

func (s stubDatasets) Info() (api.DatasetInfo, bool) {
	return s.info, s.ok
}

func TestHealthService_ReadinessCheck(t *testing.T) {
	tests := []struct {
		name       string
		datasets   DatasetStatus
		wantStatus string
		wantCheck  string
	}{
		{
			name:       "dataset loaded",
			datasets:   stubDatasets{info: api.DatasetInfo{Source: "SGJobData.csv", Rows: 10}, ok: true},
			wantStatus: StatusReady,
			wantCheck:  StatusReady,
		},
		{
			name:       "dataset missing",
			datasets:   stubDatasets{},
			wantStatus: StatusNotReady,
			wantCheck:  StatusNotReady,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hs := NewHealthService("1.2.3", tt.datasets, nil)

			status := hs.ReadinessCheck(context.Background())
			assert.Equal(t, tt.wantStatus, status.Status)
			assert.Equal(t, "1.2.3", status.Version)
			require.Contains(t, status.Checks, "dataset")
			assert.Equal(t, tt.wantCheck, status.Checks["dataset"].Status)
		})
	}
}

func TestHealthService_WithJobsService(t *testing.T) {
	jobs := NewJobsService(nil, nil)
	hs := NewHealthService(contracts.Version, jobs, nil)

	assert.Equal(t, StatusNotReady, hs.ReadinessCheck(context.Background()).Status)

	health := hs.HealthCheck(context.Background())
	assert.Equal(t, StatusOK, health.Status)
	assert.Nil(t, health.Dataset)

	jobs.SetDataset(dataprocessing.NewDataset([]domain.Posting{{Title: "Chef"}}), "memory")

	assert.Equal(t, StatusReady, hs.ReadinessCheck(context.Background()).Status)
	health = hs.HealthCheck(context.Background())
	require.NotNil(t, health.Dataset)
	assert.Equal(t, 1, health.Dataset.Rows)
	assert.Equal(t, "memory", health.Dataset.Source)
}

func TestHealthService_LivenessAndVersion(t *testing.T) {
	hs := NewHealthService("9.9.9", stubDatasets{}, nil)

	live := hs.LivenessCheck(context.Background())
	assert.Equal(t, StatusAlive, live.Status)
	require.NotNil(t, live.Runtime)
	assert.Positive(t, live.Runtime.Goroutines)
	assert.Positive(t, live.Runtime.NumCPU)

	version := hs.Version()
	assert.Equal(t, "9.9.9", version.Version)
	assert.Equal(t, contracts.APIVersion, version.APIVersion)

	assert.Less(t, hs.Uptime(), time.Minute)
}
