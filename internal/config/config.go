package config

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig      `yaml:"server"`
	Database   DatabaseConfig    `yaml:"database"`
	Hermes     HermesConfig      `yaml:"hermes"`
	Redis      RedisConfig       `yaml:"redis"`
	CostPolicy CostPolicyConfig  `yaml:"cost_policy"`
	Criteria   []CriterionConfig `yaml:"criteria"`
	Logging    LoggingConfig     `yaml:"logging"`
}

type ServerConfig struct {
	Port               int `yaml:"port"`
	MetricsPort        int `yaml:"metrics_port"`
	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	Addr       string `yaml:"addr"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// CostPolicyConfig seeds the cost policy used before one has been stored.
// Values are decimal strings.
type CostPolicyConfig struct {
	FixedCostPerPerson decimal.Decimal `yaml:"fixed_cost_per_person"`
	InsuranceRate      decimal.Decimal `yaml:"insurance_rate"`
	TargetProfitRate   decimal.Decimal `yaml:"target_profit_rate"`
}

// CriterionConfig is one default evaluation criterion.
type CriterionConfig struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Weight      float64 `yaml:"weight"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Redis.TTLSeconds) * time.Second
}

// CriteriaNames returns the default criteria names in configured order.
func (c *Config) CriteriaNames() []string {
	names := make([]string, len(c.Criteria))
	for i, cr := range c.Criteria {
		names[i] = cr.Name
	}
	return names
}

// CriteriaWeights returns the default criteria weights in configured order.
func (c *Config) CriteriaWeights() []float64 {
	weights := make([]float64, len(c.Criteria))
	for i, cr := range c.Criteria {
		weights[i] = cr.Weight
	}
	return weights
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:               8700,
			MetricsPort:        8701,
			RateLimitPerMinute: 120,
		},
		Hermes: HermesConfig{
			URL: "nats://localhost:4222",
		},
		Redis: RedisConfig{
			TTLSeconds: 300,
		},
		CostPolicy: CostPolicyConfig{
			FixedCostPerPerson: decimal.NewFromInt(500000),
			InsuranceRate:      decimal.RequireFromString("0.0945"),
			TargetProfitRate:   decimal.RequireFromString("0.15"),
		},
		Criteria: []CriterionConfig{
			{Name: "sales_performance", Description: "Sales performance", Weight: 0.5},
			{Name: "attendance", Description: "Attendance", Weight: 0.3},
			{Name: "other_performance", Description: "Other performance", Weight: 0.2},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate rejects cost policies and criteria the calculators cannot use.
func (c *Config) Validate() error {
	cp := c.CostPolicy
	if cp.FixedCostPerPerson.IsNegative() {
		return fmt.Errorf("cost_policy.fixed_cost_per_person must not be negative, got %s", cp.FixedCostPerPerson)
	}
	if cp.InsuranceRate.IsNegative() {
		return fmt.Errorf("cost_policy.insurance_rate must not be negative, got %s", cp.InsuranceRate)
	}
	if cp.TargetProfitRate.IsNegative() || cp.TargetProfitRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("cost_policy.target_profit_rate must be in [0, 1), got %s", cp.TargetProfitRate)
	}

	if len(c.Criteria) == 0 {
		return fmt.Errorf("at least one criterion is required")
	}
	var sum float64
	seen := make(map[string]bool, len(c.Criteria))
	for i, cr := range c.Criteria {
		if cr.Name == "" {
			return fmt.Errorf("criteria[%d]: name is required", i)
		}
		if seen[cr.Name] {
			return fmt.Errorf("criteria[%d]: duplicate name %q", i, cr.Name)
		}
		seen[cr.Name] = true
		if cr.Weight < 0 {
			return fmt.Errorf("criteria[%d]: negative weight %f", i, cr.Weight)
		}
		sum += cr.Weight
	}
	if math.Abs(sum-1.0) > 0.01 {
		return fmt.Errorf("criteria weights sum to %.4f, must sum to 1.0", sum)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "", "json", "text":
	default:
		return fmt.Errorf("logging.format must be json or text, got %q", c.Logging.Format)
	}
	return nil
}

// NewLogger builds the process logger from the logging section.
func (l LoggingConfig) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(l.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(l.Format) == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("VALUMETRIC_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("VALUMETRIC_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("VALUMETRIC_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("VALUMETRIC_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("VALUMETRIC_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("VALUMETRIC_REDIS_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Redis.TTLSeconds = n
		}
	}
	if v := os.Getenv("VALUMETRIC_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("VALUMETRIC_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("VALUMETRIC_TARGET_PROFIT_RATE"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			cfg.CostPolicy.TargetProfitRate = d
		}
	}
	if v := os.Getenv("VALUMETRIC_INSURANCE_RATE"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			cfg.CostPolicy.InsuranceRate = d
		}
	}
	if v := os.Getenv("VALUMETRIC_FIXED_COST_PER_PERSON"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			cfg.CostPolicy.FixedCostPerPerson = d
		}
	}
}
