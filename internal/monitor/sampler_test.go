package monitor

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
)

var testThresholds = models.AlertThresholds{CPU: 80, Memory: 85, Disk: 90}

// scriptedProbe replays a fixed sequence of readings.
type scriptedProbe struct {
	readings []hostStats
	errs     []error
	i        int
}

func (p *scriptedProbe) read() (hostStats, error) {
	i := p.i
	if i >= len(p.readings) {
		i = len(p.readings) - 1
	}
	p.i++
	if i < len(p.errs) && p.errs[i] != nil {
		return hostStats{}, p.errs[i]
	}
	return p.readings[i], nil
}

func healthyStats() hostStats {
	return hostStats{
		perCoreCPU:    []float64{10.5, 20.5},
		memoryPercent: 40.123,
		memoryUsedGB:  6.4,
		memoryTotalGB: 16,
		diskPercent:   55.5,
		diskUsedGB:    111,
		diskTotalGB:   200,
		netSentBytes:  1024 * 100,
		netRecvBytes:  1024 * 200,
		processCount:  120,
		connections:   14,
		appRSSMB:      38.7,
	}
}

func newScriptedSampler(p probe) *Sampler {
	return newSampler(p, 5*time.Second, testThresholds, zap.NewNop())
}

func TestRingEvictsOldest(t *testing.T) {
	r := newRing(ringCapacity)
	base := time.Now().UTC()
	for i := 0; i < ringCapacity+100; i++ {
		r.append(models.MetricPoint{Time: base.Add(time.Duration(i) * time.Second), Value: float64(i)})
	}
	if r.len() != ringCapacity {
		t.Fatalf("len = %d, want %d", r.len(), ringCapacity)
	}
	tail := r.tail(1)
	if tail[0].Value != float64(ringCapacity+99) {
		t.Errorf("newest value = %v, want %v", tail[0].Value, float64(ringCapacity+99))
	}
	full := r.tail(ringCapacity)
	if full[0].Value != 100 {
		t.Errorf("oldest surviving value = %v, want 100", full[0].Value)
	}
}

func TestRingTailShorterThanRequest(t *testing.T) {
	r := newRing(10)
	r.append(models.MetricPoint{Value: 1})
	r.append(models.MetricPoint{Value: 2})
	tail := r.tail(60)
	if len(tail) != 2 {
		t.Fatalf("tail length = %d, want 2", len(tail))
	}
	if tail[0].Value != 1 || tail[1].Value != 2 {
		t.Errorf("tail order wrong: %v", tail)
	}
}

func TestSampleSchemaAndRounding(t *testing.T) {
	s := newScriptedSampler(&scriptedProbe{readings: []hostStats{healthyStats()}})
	if err := s.sample(); err != nil {
		t.Fatalf("sample: %v", err)
	}

	cur := s.Current()
	if cur.CPUCores != 2 {
		t.Errorf("cpu_cores = %d, want 2", cur.CPUCores)
	}
	if cur.CPUPercent != 15.5 {
		t.Errorf("cpu = %v, want 15.5 (mean of cores)", cur.CPUPercent)
	}
	if cur.CPUPercent < 0 || cur.CPUPercent > float64(100*cur.CPUCores) {
		t.Errorf("cpu %v outside [0, 100*cores]", cur.CPUPercent)
	}
	if cur.MemoryPercent != 40.12 {
		t.Errorf("memory = %v, want 40.12 after rounding", cur.MemoryPercent)
	}
	if cur.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestNetRatesDerivedFromDeltas(t *testing.T) {
	first := healthyStats()
	second := healthyStats()
	second.netSentBytes = first.netSentBytes + 10*1024
	second.netRecvBytes = first.netRecvBytes + 20*1024

	s := newScriptedSampler(&scriptedProbe{readings: []hostStats{first, second}})
	if err := s.sample(); err != nil {
		t.Fatalf("first sample: %v", err)
	}
	if got := s.Current().NetSentKBs; got != 0 {
		t.Errorf("rate before a baseline exists = %v, want 0", got)
	}

	time.Sleep(20 * time.Millisecond)
	if err := s.sample(); err != nil {
		t.Fatalf("second sample: %v", err)
	}
	cur := s.Current()
	if cur.NetSentKBs <= 0 || cur.NetRecvKBs <= 0 {
		t.Errorf("rates not derived: sent=%v recv=%v", cur.NetSentKBs, cur.NetRecvKBs)
	}
	if cur.NetRecvKBs <= cur.NetSentKBs {
		t.Errorf("recv rate %v should exceed sent rate %v for this fixture", cur.NetRecvKBs, cur.NetSentKBs)
	}
}

func TestFailedTickKeepsBaselineAndCurrent(t *testing.T) {
	first := healthyStats()
	third := healthyStats()
	third.netSentBytes = first.netSentBytes + 50*1024

	p := &scriptedProbe{
		readings: []hostStats{first, {}, third},
		errs:     []error{nil, errors.New("proc unreadable"), nil},
	}
	s := newScriptedSampler(p)

	if err := s.sample(); err != nil {
		t.Fatalf("first sample: %v", err)
	}
	before := s.Current()

	s.tick() // fails, must not clear current or the baseline
	if got := s.Current(); got.MemoryPercent != before.MemoryPercent {
		t.Error("failed tick replaced the current sample")
	}
	if s.failures != 1 {
		t.Errorf("failures = %d, want 1", s.failures)
	}

	time.Sleep(20 * time.Millisecond)
	if err := s.sample(); err != nil {
		t.Fatalf("third sample: %v", err)
	}
	if got := s.Current().NetSentKBs; got <= 0 {
		t.Errorf("rate after failed tick = %v, want > 0 from preserved baseline", got)
	}
}

func TestHistoryTail(t *testing.T) {
	p := &scriptedProbe{readings: []hostStats{healthyStats()}}
	s := newScriptedSampler(p)
	for i := 0; i < 70; i++ {
		if err := s.sample(); err != nil {
			t.Fatalf("sample %d: %v", i, err)
		}
	}
	history := s.History(0)
	if len(history.CPU) != defaultHistoryTail {
		t.Errorf("cpu history = %d points, want %d", len(history.CPU), defaultHistoryTail)
	}
	if len(history.Memory) != defaultHistoryTail || len(history.Disk) != defaultHistoryTail {
		t.Error("memory/disk history tails wrong")
	}
}

func TestAlertLevels(t *testing.T) {
	cases := []struct {
		name       string
		mutate     func(*hostStats)
		wantMetric string
		wantLevel  string
	}{
		{"cpu warning", func(h *hostStats) { h.perCoreCPU = []float64{85, 85} }, "cpu", "WARNING"},
		{"cpu critical", func(h *hostStats) { h.perCoreCPU = []float64{95, 95} }, "cpu", "CRITICAL"},
		{"memory warning", func(h *hostStats) { h.memoryPercent = 90 }, "memory", "WARNING"},
		{"memory critical", func(h *hostStats) { h.memoryPercent = 97 }, "memory", "CRITICAL"},
		{"disk always critical", func(h *hostStats) { h.diskPercent = 91 }, "disk", "CRITICAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stats := healthyStats()
			tc.mutate(&stats)
			s := newScriptedSampler(&scriptedProbe{readings: []hostStats{stats}})
			if err := s.sample(); err != nil {
				t.Fatalf("sample: %v", err)
			}
			alerts := s.Alerts()
			if len(alerts) != 1 {
				t.Fatalf("alerts = %+v, want exactly one", alerts)
			}
			if alerts[0].Metric != tc.wantMetric || alerts[0].Level != tc.wantLevel {
				t.Errorf("alert = %s/%s, want %s/%s",
					alerts[0].Metric, alerts[0].Level, tc.wantMetric, tc.wantLevel)
			}
		})
	}
}

func TestNoAlertsWhenHealthy(t *testing.T) {
	s := newScriptedSampler(&scriptedProbe{readings: []hostStats{healthyStats()}})
	if err := s.sample(); err != nil {
		t.Fatalf("sample: %v", err)
	}
	if alerts := s.Alerts(); len(alerts) != 0 {
		t.Errorf("alerts = %+v, want none", alerts)
	}
}
