package config

import "testing"

func TestDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.RedisHost != "localhost" || cfg.RedisPort != 6379 {
		t.Errorf("redis defaults = %s:%d, want localhost:6379", cfg.RedisHost, cfg.RedisPort)
	}
	if cfg.MetricsInterval != 5 {
		t.Errorf("MetricsInterval = %d, want 5", cfg.MetricsInterval)
	}
	if cfg.AWSRegion != "ap-south-1" {
		t.Errorf("AWSRegion = %q, want ap-south-1", cfg.AWSRegion)
	}
	if cfg.FargateCPUPrice != 0.04048 || cfg.FargateMemoryPrice != 0.00445 {
		t.Errorf("fargate prices = %v/%v, want 0.04048/0.00445", cfg.FargateCPUPrice, cfg.FargateMemoryPrice)
	}
	th := cfg.Thresholds()
	if th.CPU != 80 || th.Memory != 85 || th.Disk != 90 {
		t.Errorf("thresholds = %+v, want 80/85/90", th)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("METRICS_INTERVAL", "10")
	t.Setenv("ALERT_CPU_THRESHOLD", "70")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Production() {
		t.Error("Production() = false with ENV=production")
	}
	if cfg.SampleInterval().Seconds() != 10 {
		t.Errorf("SampleInterval = %v, want 10s", cfg.SampleInterval())
	}
	if cfg.AlertCPUThreshold != 70 {
		t.Errorf("AlertCPUThreshold = %v, want 70", cfg.AlertCPUThreshold)
	}
}

func TestRejectsBadInterval(t *testing.T) {
	t.Setenv("METRICS_INTERVAL", "0")
	if _, err := Load(); err == nil {
		t.Error("Load accepted METRICS_INTERVAL=0")
	}
}
