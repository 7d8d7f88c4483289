// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/worthyten/pkg/valuation"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Redis         RedisConfig         `yaml:"redis"`
	Session       SessionConfig       `yaml:"session"`
	Valuation     ValuationConfig     `yaml:"valuation"`
	RateLimit     RateLimitConfig     `yaml:"rate_limit"`
	Schedule      ScheduleConfig      `yaml:"schedule"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Telemetry     TelemetryConfig     `yaml:"telemetry"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// RedisConfig defines the session store connection.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// SessionConfig defines valuation session lifetime.
type SessionConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

// ValuationConfig defines the pricing policy knobs.
type ValuationConfig struct {
	FloorPercent        float64               `yaml:"floor_percent"`
	RequireVerification *bool                 `yaml:"require_verification"` // default: true
	LensBonusPercent    float64               `yaml:"lens_bonus_percent"`
	DefaultLensBonus    int64                 `yaml:"default_lens_bonus"`
	Warranty            WarrantyConfig        `yaml:"warranty"`
	AgeBuckets          []valuation.AgeBucket `yaml:"age_buckets"`
}

// WarrantyConfig defines the warranty bonus.
type WarrantyConfig struct {
	BonusPercent  float64 `yaml:"bonus_percent"`
	MaxAgeMonths  int     `yaml:"max_age_months"`
	BillAccessory string  `yaml:"bill_accessory"`
}

// VerificationRequired reports whether the final reveal needs the session's
// verification flag.
func (v *ValuationConfig) VerificationRequired() bool {
	return v.RequireVerification == nil || *v.RequireVerification
}

// WarrantyPolicy builds the valuation warranty policy from config.
func (v *ValuationConfig) WarrantyPolicy() valuation.WarrantyPolicy {
	return valuation.WarrantyPolicy{
		BonusPercent:  v.Warranty.BonusPercent,
		MaxAgeMonths:  v.Warranty.MaxAgeMonths,
		BillAccessory: v.Warranty.BillAccessory,
		Buckets:       v.AgeBuckets,
	}
}

// RateLimitConfig defines the session-creation rate limit.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// ScheduleConfig defines cron intervals.
type ScheduleConfig struct {
	StateMetricsInterval time.Duration `yaml:"state_metrics_interval"`
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord"`
	SNS     SNSConfig     `yaml:"sns"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// SNSConfig defines the AWS SNS topic that receives order events.
// Credentials come from the default AWS chain.
type SNSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Region   string `yaml:"region"`
	TopicARN string `yaml:"topic_arn"`
}

// TelemetryConfig defines the OTLP/gRPC trace and metric exporters.
type TelemetryConfig struct {
	Enabled        bool          `yaml:"enabled"`
	Endpoint       string        `yaml:"endpoint"`
	ServiceName    string        `yaml:"service_name"`
	Insecure       bool          `yaml:"insecure"`
	SampleRatio    float64       `yaml:"sample_ratio"`
	MetricInterval time.Duration `yaml:"metric_interval"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyRedisDefaults(&cfg.Redis)
	applySessionDefaults(&cfg.Session)
	applyValuationDefaults(&cfg.Valuation)
	applyRateLimitDefaults(&cfg.RateLimit)
	applyScheduleDefaults(&cfg.Schedule)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyRedisDefaults(r *RedisConfig) {
	if r.Addr == "" {
		r.Addr = "localhost:6379"
	}
}

func applySessionDefaults(s *SessionConfig) {
	if s.TTL == 0 {
		s.TTL = 2 * time.Hour
	}
}

func applyValuationDefaults(v *ValuationConfig) {
	if v.FloorPercent == 0 {
		v.FloorPercent = valuation.DefaultFloorPercent
	}
	if v.LensBonusPercent == 0 {
		v.LensBonusPercent = 15
	}
	if v.DefaultLensBonus == 0 {
		v.DefaultLensBonus = 1000
	}
	if v.Warranty.BonusPercent == 0 {
		v.Warranty.BonusPercent = 5
	}
	if v.Warranty.MaxAgeMonths == 0 {
		v.Warranty.MaxAgeMonths = 12
	}
	if v.Warranty.BillAccessory == "" {
		v.Warranty.BillAccessory = valuation.BillAccessory
	}
	if len(v.AgeBuckets) == 0 {
		v.AgeBuckets = valuation.DefaultAgeBuckets()
	}
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 5.0
	}
	if r.Burst == 0 {
		r.Burst = 20
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.StateMetricsInterval == 0 {
		s.StateMetricsInterval = 5 * time.Minute
	}
}

func applyTelemetryDefaults(t *TelemetryConfig) {
	if t.ServiceName == "" {
		t.ServiceName = "worthyten"
	}
	if t.Endpoint == "" {
		t.Endpoint = "localhost:4317"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1.0
	}
	if t.MetricInterval == 0 {
		t.MetricInterval = 30 * time.Second
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Database.Host == "" {
		errs = append(errs, fmt.Errorf("database.host is required"))
	}
	if cfg.Database.Name == "" {
		errs = append(errs, fmt.Errorf("database.name is required"))
	}
	if cfg.Database.User == "" {
		errs = append(errs, fmt.Errorf("database.user is required"))
	}

	v := cfg.Valuation
	if v.FloorPercent < 0 || v.FloorPercent >= 100 {
		errs = append(errs, fmt.Errorf(
			"valuation.floor_percent must be in [0, 100) (got %v)", v.FloorPercent,
		))
	}
	if v.LensBonusPercent < 0 {
		errs = append(errs, fmt.Errorf("valuation.lens_bonus_percent must not be negative"))
	}

	seen := make(map[string]struct{}, len(v.AgeBuckets))
	for i, b := range v.AgeBuckets {
		if b.ID == "" {
			errs = append(errs, fmt.Errorf("valuation.age_buckets[%d].id is required", i))
			continue
		}
		if _, dup := seen[b.ID]; dup {
			errs = append(errs, fmt.Errorf("valuation.age_buckets: duplicate id %q", b.ID))
		}
		seen[b.ID] = struct{}{}
		if b.DeductionPercent < 0 || b.DeductionPercent > 100 {
			errs = append(errs, fmt.Errorf(
				"valuation.age_buckets[%s].deduction_percent must be in [0, 100]", b.ID,
			))
		}
	}

	if cfg.Telemetry.SampleRatio < 0 || cfg.Telemetry.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf(
			"telemetry.sample_ratio must be in [0, 1] (got %v)", cfg.Telemetry.SampleRatio,
		))
	}

	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(errs, fmt.Errorf(
			"notifications.discord.webhook_url is required when discord is enabled",
		))
	}

	if sns := cfg.Notifications.SNS; sns.Enabled {
		if sns.Region == "" {
			errs = append(errs, errors.New("notifications.sns.region is required when sns is enabled"))
		}
		if sns.TopicARN == "" {
			errs = append(errs, errors.New("notifications.sns.topic_arn is required when sns is enabled"))
		}
	}

	return errors.Join(errs...)
}
