package config

import (
	"fmt"
	"os"
	"time"

	"github.com/utkarsh5026/matmul/engine"
	"github.com/utkarsh5026/matmul/metrics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRouting = "round-robin"
	DefaultMetrics = "none"
	DefaultShards  = 16
)

type Config struct {
	Workers    int           `yaml:"workers"`
	Routing    string        `yaml:"routing"`
	RateLimit  float64       `yaml:"rate_limit"`
	Burst      int           `yaml:"burst"`
	PinWorkers bool          `yaml:"pin_workers"`
	Timeout    time.Duration `yaml:"timeout"`
	Metrics    MetricsConfig `yaml:"metrics"`
}

type MetricsConfig struct {
	// Kind is one of none, map, fixed or sharded.
	Kind   string `yaml:"kind"`
	Shards int    `yaml:"shards"`
}

func DefaultConfig() *Config {
	return &Config{
		Workers: engine.DefaultWorkerCount,
		Routing: DefaultRouting,
		Metrics: MetricsConfig{
			Kind:   DefaultMetrics,
			Shards: DefaultShards,
		},
	}
}

// Load reads a YAML file on top of DefaultConfig, so omitted keys keep their
// defaults, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if _, err := engine.ParseRouting(c.Routing); err != nil {
		return err
	}
	if c.RateLimit < 0 || c.Burst < 0 {
		return fmt.Errorf("rate_limit and burst must not be negative")
	}
	if c.RateLimit > 0 && c.Burst == 0 {
		return fmt.Errorf("rate_limit %.2f needs a positive burst", c.RateLimit)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	switch c.Metrics.Kind {
	case "", "none", "map", "fixed", "sharded":
	default:
		return fmt.Errorf("unknown metrics kind %q (want none, map, fixed or sharded)", c.Metrics.Kind)
	}
	return nil
}

// NewRegistry builds the registry selected by Metrics.Kind, or nil for none.
func (c *Config) NewRegistry() metrics.Registry {
	switch c.Metrics.Kind {
	case "map":
		return metrics.NewMap()
	case "fixed":
		return metrics.NewFixed(engine.MetricNames(c.Workers)...)
	case "sharded":
		return metrics.NewSharded(c.Metrics.Shards)
	default:
		return nil
	}
}

// EngineOptions translates the config into engine options. reg may be nil.
func (c *Config) EngineOptions(reg metrics.Registry) ([]engine.Option, error) {
	routing, err := engine.ParseRouting(c.Routing)
	if err != nil {
		return nil, err
	}

	opts := []engine.Option{
		engine.WithWorkerCount(c.Workers),
		engine.WithRouting(routing),
		engine.WithCPUAffinity(c.PinWorkers),
		engine.WithCallTimeout(c.Timeout),
	}
	if c.RateLimit > 0 {
		opts = append(opts, engine.WithRateLimit(c.RateLimit, c.Burst))
	}
	if reg != nil {
		opts = append(opts, engine.WithMetrics(reg))
	}
	return opts, nil
}
