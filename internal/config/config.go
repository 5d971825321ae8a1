package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	MetricsPort int    `toml:"metrics_port"`
	// allowed CORS origins on top of the local development ones
	AllowedOrigins []string `toml:"allowed_origins"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// sessions
	SessionTTL          Duration `toml:"session_ttl"`
	SessionScanInterval Duration `toml:"session_scan_interval"`

	// exercises
	ExercisesCSVPath string `toml:"exercises_csv_path"`

	// routine generation
	RoutineApiURL           string   `toml:"routine_api_url"`
	RoutineModel            string   `toml:"routine_model"`
	RoutineTimeout          Duration `toml:"routine_timeout"`
	RoutineCacheTTL         Duration `toml:"routine_cache_ttl"`
	RoutineRequestsPerMin   int      `toml:"routine_requests_per_min"`
	RoutineBreakerThreshold uint32   `toml:"routine_breaker_threshold"`
}

// Duration lets TOML values like "30s" or "6h" decode into time.Duration.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

type Toml struct {
	Development *Config
	Production  *Config
	DockerDev   *Config `toml:"dockerdev"`
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	case "ddev", "dockerdev":
		cfg = t.DockerDev
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("env %s not configured", env)
	}
	return cfg, nil
}

// Load reads the TOML file at path and returns the config for env, with
// defaults filled in for the values left out.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", env, err)
	}

	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.MetricsPort == 0 {
		c.MetricsPort = 2112
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.PostgresPort == "" {
		c.PostgresPort = "5432"
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.SessionTTL.Duration == 0 {
		c.SessionTTL.Duration = 7 * 24 * time.Hour
	}
	if c.SessionScanInterval.Duration == 0 {
		c.SessionScanInterval.Duration = time.Hour
	}
	if c.RoutineTimeout.Duration == 0 {
		c.RoutineTimeout.Duration = 30 * time.Second
	}
	if c.RoutineCacheTTL.Duration == 0 {
		c.RoutineCacheTTL.Duration = 6 * time.Hour
	}
	if c.RoutineRequestsPerMin == 0 {
		c.RoutineRequestsPerMin = 10
	}
}

func (c *Config) validate() error {
	if c.Port == c.MetricsPort {
		return fmt.Errorf("port and metrics port are both %d", c.Port)
	}
	if c.PostgresHost == "" || c.PostgresDBName == "" {
		return fmt.Errorf("postgres host and db name must be set")
	}
	if c.RedisHost == "" {
		return fmt.Errorf("redis host must be set")
	}
	return nil
}
