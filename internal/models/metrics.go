package models

import "time"

// MetricsSample is one host telemetry reading produced by the sampler loop.
// Values are stored unrounded; rounding to two decimals happens at read-out.
type MetricsSample struct {
	Timestamp     time.Time `json:"timestamp"`
	CPUPercent    float64   `json:"cpu"`
	PerCoreCPU    []float64 `json:"cpu_per_core"`
	CPUCores      int       `json:"cpu_cores"`
	MemoryPercent float64   `json:"memory"`
	MemoryUsedGB  float64   `json:"memory_used"`
	MemoryTotalGB float64   `json:"memory_total"`
	DiskPercent   float64   `json:"disk"`
	DiskUsedGB    float64   `json:"disk_used"`
	DiskTotalGB   float64   `json:"disk_total"`
	AppRSSMB      float64   `json:"app_memory_mb"`
	NetSentKBs    float64   `json:"network_sent_kbs"`
	NetRecvKBs    float64   `json:"network_recv_kbs"`
	ProcessCount  int       `json:"process_count"`
	Connections   int       `json:"connections"`
}

// MetricPoint is one (timestamp, value) pair of a metric series.
type MetricPoint struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// MetricsHistory is the chart feed: the tail window of each ring buffer.
type MetricsHistory struct {
	CPU    []MetricPoint `json:"cpu"`
	Memory []MetricPoint `json:"memory"`
	Disk   []MetricPoint `json:"disk"`
}

// AlertThresholds are the breach thresholds for the three sampled series.
type AlertThresholds struct {
	CPU    float64 `json:"cpu"`
	Memory float64 `json:"memory"`
	Disk   float64 `json:"disk"`
}

// Alert is one threshold breach derived from the current sample.
type Alert struct {
	Level     string  `json:"level"`
	Message   string  `json:"message"`
	Metric    string  `json:"metric"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
}

// Snapshot is the current sample augmented with host identity and the
// configured thresholds. This is the /api/real-metrics payload.
type Snapshot struct {
	MetricsSample
	Hostname      string          `json:"hostname"`
	Platform      string          `json:"platform"`
	BootTime      time.Time       `json:"boot_time"`
	SystemUptime  string          `json:"system_uptime"`
	AppUptime     string          `json:"app_uptime"`
	Thresholds    AlertThresholds `json:"alert_thresholds"`
}

// VisitRecord is one logged dashboard visit.
type VisitRecord struct {
	Timestamp time.Time `json:"timestamp"`
	ClientIP  string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
	Sequence  int64     `json:"visitor_number"`
}
