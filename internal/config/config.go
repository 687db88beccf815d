// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
)

// Config is the full service configuration, loaded once at startup and
// passed explicitly to every component.
type Config struct {
	SecretKey string
	Env       string
	Port      int

	RedisHost     string
	RedisPort     int
	RedisPassword string

	// MetricsInterval is the sampler cadence in seconds.
	MetricsInterval int

	AlertCPUThreshold    float64
	AlertMemoryThreshold float64
	AlertDiskThreshold   float64

	AWSRegion string

	FargateCPUPrice    float64
	FargateMemoryPrice float64
}

// Load reads the environment with defaults applied. All variables are
// optional.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SECRET_KEY", "")
	v.SetDefault("ENV", "development")
	v.SetDefault("PORT", 8080)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("METRICS_INTERVAL", 5)
	v.SetDefault("ALERT_CPU_THRESHOLD", 80.0)
	v.SetDefault("ALERT_MEMORY_THRESHOLD", 85.0)
	v.SetDefault("ALERT_DISK_THRESHOLD", 90.0)
	v.SetDefault("AWS_REGION", "ap-south-1")
	v.SetDefault("FARGATE_CPU_PRICE", 0.04048)
	v.SetDefault("FARGATE_MEMORY_PRICE", 0.00445)

	cfg := &Config{
		SecretKey:            v.GetString("SECRET_KEY"),
		Env:                  v.GetString("ENV"),
		Port:                 v.GetInt("PORT"),
		RedisHost:            v.GetString("REDIS_HOST"),
		RedisPort:            v.GetInt("REDIS_PORT"),
		RedisPassword:        v.GetString("REDIS_PASSWORD"),
		MetricsInterval:      v.GetInt("METRICS_INTERVAL"),
		AlertCPUThreshold:    v.GetFloat64("ALERT_CPU_THRESHOLD"),
		AlertMemoryThreshold: v.GetFloat64("ALERT_MEMORY_THRESHOLD"),
		AlertDiskThreshold:   v.GetFloat64("ALERT_DISK_THRESHOLD"),
		AWSRegion:            v.GetString("AWS_REGION"),
		FargateCPUPrice:      v.GetFloat64("FARGATE_CPU_PRICE"),
		FargateMemoryPrice:   v.GetFloat64("FARGATE_MEMORY_PRICE"),
	}
	if cfg.MetricsInterval <= 0 {
		return nil, fmt.Errorf("METRICS_INTERVAL must be positive, got %d", cfg.MetricsInterval)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("PORT out of range: %d", cfg.Port)
	}
	return cfg, nil
}

// SampleInterval returns the sampler cadence as a duration.
func (c *Config) SampleInterval() time.Duration {
	return time.Duration(c.MetricsInterval) * time.Second
}

// Thresholds returns the alert thresholds block.
func (c *Config) Thresholds() models.AlertThresholds {
	return models.AlertThresholds{
		CPU:    c.AlertCPUThreshold,
		Memory: c.AlertMemoryThreshold,
		Disk:   c.AlertDiskThreshold,
	}
}

// Production reports whether the service runs with production settings.
func (c *Config) Production() bool {
	return c.Env == "production"
}
