package infrastructure

import (
	"context"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// SystemStats is a point-in-time view of the Go runtime
type SystemStats struct {
	Goroutines     int     `json:"goroutines"`
	HeapAllocBytes uint64  `json:"heap_alloc_bytes"`
	SysBytes       uint64  `json:"sys_bytes"`
	NumGC          uint32  `json:"num_gc"`
	NumCPU         int     `json:"num_cpu"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
}

// SystemMetrics reports runtime statistics as observable gauges that are
// read at scrape time
type SystemMetrics struct {
	startTime    time.Time
	registration metric.Registration
}

// CollectSystemStats reads the current runtime statistics
func CollectSystemStats(startTime time.Time) SystemStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return SystemStats{
		Goroutines:     runtime.NumGoroutine(),
		HeapAllocBytes: mem.HeapAlloc,
		SysBytes:       mem.Sys,
		NumGC:          mem.NumGC,
		NumCPU:         runtime.NumCPU(),
		UptimeSeconds:  time.Since(startTime).Seconds(),
	}
}

// NewSystemMetrics registers the runtime gauges on meter
func NewSystemMetrics(meter metric.Meter, startTime time.Time) (*SystemMetrics, error) {
	goroutines, err := meter.Int64ObservableGauge("system_goroutines",
		metric.WithDescription("Number of active goroutines"))
	if err != nil {
		return nil, err
	}

	heapAlloc, err := meter.Int64ObservableGauge("system_memory_allocated_bytes",
		metric.WithDescription("Heap bytes allocated by the Go runtime"),
		metric.WithUnit("By"))
	if err != nil {
		return nil, err
	}

	sysBytes, err := meter.Int64ObservableGauge("system_memory_system_bytes",
		metric.WithDescription("Memory obtained from the OS in bytes"),
		metric.WithUnit("By"))
	if err != nil {
		return nil, err
	}

	uptime, err := meter.Float64ObservableGauge("system_process_uptime_seconds",
		metric.WithDescription("Process uptime in seconds"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	sm := &SystemMetrics{startTime: startTime}
	sm.registration, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := CollectSystemStats(sm.startTime)
		o.ObserveInt64(goroutines, int64(stats.Goroutines))
		o.ObserveInt64(heapAlloc, int64(stats.HeapAllocBytes))
		o.ObserveInt64(sysBytes, int64(stats.SysBytes))
		o.ObserveFloat64(uptime, stats.UptimeSeconds)
		return nil
	}, goroutines, heapAlloc, sysBytes, uptime)
	if err != nil {
		return nil, err
	}

	return sm, nil
}

// Stats returns the current runtime statistics
func (sm *SystemMetrics) Stats() SystemStats {
	return CollectSystemStats(sm.startTime)
}

// Stop unregisters the gauge callback
func (sm *SystemMetrics) Stop() error {
	if sm.registration == nil {
		return nil
	}
	return sm.registration.Unregister()
}
