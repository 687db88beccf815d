// Package monitor implements the background host telemetry sampler: bounded
// metric history, the current-sample snapshot, and threshold alerting.
package monitor

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/host"
	"go.uber.org/zap"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
)

const (
	// ringCapacity holds one hour of history at the 5 s default cadence.
	ringCapacity = 720

	// defaultHistoryTail is the window History returns per series.
	defaultHistoryTail = 60

	// consecutiveFailureWarn is how many failed ticks in a row trigger a
	// warning log. The loop never stops on read failures.
	consecutiveFailureWarn = 3
)

// Hard cutoffs separating WARNING from CRITICAL breaches.
const (
	cpuCriticalCutoff    = 90
	memoryCriticalCutoff = 95
)

// Sampler owns the telemetry loop. One writer (the loop), many readers
// (HTTP handlers). The current sample is an atomic pointer swap; ring access
// goes through a mutex with copy-on-read tails.
type Sampler struct {
	logger     *zap.Logger
	probe      probe
	interval   time.Duration
	thresholds models.AlertThresholds
	startedAt  time.Time

	current atomic.Pointer[models.MetricsSample]

	mu       sync.RWMutex
	cpuRing  *ring
	memRing  *ring
	diskRing *ring

	// Rate baseline from the last successful read. Never reset on failure so
	// a skipped tick does not distort the next rate.
	baselineSent uint64
	baselineRecv uint64
	baselineAt   time.Time

	failures int
}

// NewSampler builds a sampler reading real host counters every interval.
func NewSampler(interval time.Duration, thresholds models.AlertThresholds, logger *zap.Logger) *Sampler {
	return newSampler(newGopsutilProbe(), interval, thresholds, logger)
}

func newSampler(p probe, interval time.Duration, thresholds models.AlertThresholds, logger *zap.Logger) *Sampler {
	return &Sampler{
		logger:     logger,
		probe:      p,
		interval:   interval,
		thresholds: thresholds,
		startedAt:  time.Now().UTC(),
		cpuRing:    newRing(ringCapacity),
		memRing:    newRing(ringCapacity),
		diskRing:   newRing(ringCapacity),
	}
}

// Run samples until ctx is cancelled. The first sample is taken immediately
// so handlers have data as soon as the service is up.
func (s *Sampler) Run(ctx context.Context) {
	s.tick()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Sampler) tick() {
	if err := s.sample(); err != nil {
		s.failures++
		if s.failures == consecutiveFailureWarn {
			s.logger.Warn("host metrics unavailable",
				zap.Int("consecutive_failures", s.failures),
				zap.Error(err))
		}
		return
	}
	s.failures = 0
}

func (s *Sampler) sample() error {
	stats, err := s.probe.read()
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	sample := models.MetricsSample{
		Timestamp:     now,
		PerCoreCPU:    stats.perCoreCPU,
		CPUCores:      len(stats.perCoreCPU),
		CPUPercent:    meanOf(stats.perCoreCPU),
		MemoryPercent: stats.memoryPercent,
		MemoryUsedGB:  stats.memoryUsedGB,
		MemoryTotalGB: stats.memoryTotalGB,
		DiskPercent:   stats.diskPercent,
		DiskUsedGB:    stats.diskUsedGB,
		DiskTotalGB:   stats.diskTotalGB,
		AppRSSMB:      stats.appRSSMB,
		ProcessCount:  stats.processCount,
		Connections:   stats.connections,
	}

	// Counter wrap (interface reset) would underflow; skip the rate then.
	if !s.baselineAt.IsZero() && stats.netSentBytes >= s.baselineSent && stats.netRecvBytes >= s.baselineRecv {
		elapsed := now.Sub(s.baselineAt).Seconds()
		if elapsed > 0 {
			sample.NetSentKBs = float64(stats.netSentBytes-s.baselineSent) / 1024 / elapsed
			sample.NetRecvKBs = float64(stats.netRecvBytes-s.baselineRecv) / 1024 / elapsed
		}
	}
	s.baselineSent = stats.netSentBytes
	s.baselineRecv = stats.netRecvBytes
	s.baselineAt = now

	s.current.Store(&sample)

	s.mu.Lock()
	s.cpuRing.append(models.MetricPoint{Time: now, Value: sample.CPUPercent})
	s.memRing.append(models.MetricPoint{Time: now, Value: sample.MemoryPercent})
	s.diskRing.append(models.MetricPoint{Time: now, Value: sample.DiskPercent})
	s.mu.Unlock()
	return nil
}

// Current returns the latest sample with floats rounded to two decimals.
// The zero sample is returned before the first successful tick.
func (s *Sampler) Current() models.MetricsSample {
	p := s.current.Load()
	if p == nil {
		return models.MetricsSample{Timestamp: time.Now().UTC()}
	}
	sample := *p
	sample.CPUPercent = round2(sample.CPUPercent)
	sample.MemoryPercent = round2(sample.MemoryPercent)
	sample.MemoryUsedGB = round2(sample.MemoryUsedGB)
	sample.MemoryTotalGB = round2(sample.MemoryTotalGB)
	sample.DiskPercent = round2(sample.DiskPercent)
	sample.DiskUsedGB = round2(sample.DiskUsedGB)
	sample.DiskTotalGB = round2(sample.DiskTotalGB)
	sample.AppRSSMB = round2(sample.AppRSSMB)
	sample.NetSentKBs = round2(sample.NetSentKBs)
	sample.NetRecvKBs = round2(sample.NetRecvKBs)
	rounded := make([]float64, len(sample.PerCoreCPU))
	for i, v := range sample.PerCoreCPU {
		rounded[i] = round2(v)
	}
	sample.PerCoreCPU = rounded
	return sample
}

// History returns the last n points of each series, or the default tail of
// 60 when n <= 0.
func (s *Sampler) History(n int) models.MetricsHistory {
	if n <= 0 {
		n = defaultHistoryTail
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	history := models.MetricsHistory{
		CPU:    s.cpuRing.tail(n),
		Memory: s.memRing.tail(n),
		Disk:   s.diskRing.tail(n),
	}
	for _, series := range [][]models.MetricPoint{history.CPU, history.Memory, history.Disk} {
		for i := range series {
			series[i].Value = round2(series[i].Value)
		}
	}
	return history
}

// Snapshot augments the current sample with host identity and the configured
// thresholds.
func (s *Sampler) Snapshot() models.Snapshot {
	snap := models.Snapshot{
		MetricsSample: s.Current(),
		Thresholds:    s.thresholds,
		AppUptime:     formatUptime(time.Since(s.startedAt)),
	}
	if info, err := host.Info(); err == nil {
		snap.Hostname = info.Hostname
		snap.Platform = fmt.Sprintf("%s %s", info.Platform, info.PlatformVersion)
		boot := time.Unix(int64(info.BootTime), 0).UTC()
		snap.BootTime = boot
		snap.SystemUptime = formatUptime(time.Since(boot))
	}
	return snap
}

// Thresholds returns the configured alert thresholds.
func (s *Sampler) Thresholds() models.AlertThresholds {
	return s.thresholds
}

// Alerts scans the current sample against the thresholds. Disk breaches are
// always critical; CPU and memory escalate past their hard cutoffs.
func (s *Sampler) Alerts() []models.Alert {
	sample := s.Current()
	var alerts []models.Alert

	if sample.CPUPercent > s.thresholds.CPU {
		level := "WARNING"
		if sample.CPUPercent >= cpuCriticalCutoff {
			level = "CRITICAL"
		}
		alerts = append(alerts, models.Alert{
			Level:     level,
			Message:   fmt.Sprintf("High CPU usage: %.2f%%", sample.CPUPercent),
			Metric:    "cpu",
			Value:     sample.CPUPercent,
			Threshold: s.thresholds.CPU,
		})
	}
	if sample.MemoryPercent > s.thresholds.Memory {
		level := "WARNING"
		if sample.MemoryPercent >= memoryCriticalCutoff {
			level = "CRITICAL"
		}
		alerts = append(alerts, models.Alert{
			Level:     level,
			Message:   fmt.Sprintf("High memory usage: %.2f%%", sample.MemoryPercent),
			Metric:    "memory",
			Value:     sample.MemoryPercent,
			Threshold: s.thresholds.Memory,
		})
	}
	if sample.DiskPercent > s.thresholds.Disk {
		alerts = append(alerts, models.Alert{
			Level:     "CRITICAL",
			Message:   fmt.Sprintf("High disk usage: %.2f%%", sample.DiskPercent),
			Metric:    "disk",
			Value:     sample.DiskPercent,
			Threshold: s.thresholds.Disk,
		})
	}
	return alerts
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// formatUptime renders a duration as "2d 3h 4m".
func formatUptime(d time.Duration) string {
	d = d.Round(time.Minute)
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
