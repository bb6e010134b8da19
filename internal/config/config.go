package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/apportionment/internal/apportion"
	"github.com/eugenenazirov/apportionment/internal/population"
)

const (
	defaultPort           = "8080"
	defaultLogLevel       = "info"
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
	defaultMaxSeats       = 10000
	defaultMaxRegions     = 1000
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	Port                 string
	Seats                int
	Methods              []apportion.Method
	PopulationFile       string
	DivisorFloor         int64
	ExactGeometricTotal  bool
	LogLevel             string
	ShutdownGracePeriod  time.Duration
	ReadHeaderTimeout    time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	EnableRequestLogging bool
	RateLimitRPS         float64
	RateLimitBurst       int
	MaxSeats             int
	MaxRegions           int
}

// yamlConfig represents the YAML configuration file structure. Pointers tell
// "absent" apart from zero values.
type yamlConfig struct {
	Port                 string        `yaml:"port"`
	Seats                *int          `yaml:"seats"`
	Methods              []string      `yaml:"methods"`
	PopulationFile       string        `yaml:"population_file"`
	DivisorFloor         *int64        `yaml:"divisor_floor"`
	ExactGeometricTotal  *bool         `yaml:"geometric_exact_total"`
	LogLevel             string        `yaml:"log_level"`
	ShutdownGracePeriod  string        `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string        `yaml:"read_header_timeout"`
	WriteTimeout         string        `yaml:"write_timeout"`
	IdleTimeout          string        `yaml:"idle_timeout"`
	EnableRequestLogging *bool         `yaml:"enable_request_logging"`
	RateLimit            yamlRateLimit `yaml:"rate_limit"`
	Limits               yamlLimits    `yaml:"limits"`
}

// yamlLimits bounds the work a single API request may ask for.
type yamlLimits struct {
	MaxSeats   *int `yaml:"max_seats"`
	MaxRegions *int `yaml:"max_regions"`
}

// yamlRateLimit represents the rate limit section in YAML.
type yamlRateLimit struct {
	RPS   *float64 `yaml:"rps"`
	Burst *int     `yaml:"burst"`
}

// CLIOverrides holds command-line flag overrides. Nil fields were not given.
type CLIOverrides struct {
	ConfigFile     string
	Port           *string
	Seats          *int
	Methods        *string
	PopulationFile *string
	DivisorFloor   *int64
	ExactGeometric *bool
	LogLevel       *string
	RateLimitRPS   *float64
	RateLimitBurst *int
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	applyEnvConfig(&cfg)

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		if err := applyYAMLConfig(&cfg, yamlCfg); err != nil {
			return Config{}, fmt.Errorf("apply YAML config: %w", err)
		}
	}

	if overrides != nil {
		if err := applyCLIOverrides(&cfg, overrides); err != nil {
			return Config{}, err
		}
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		Port:                 defaultPort,
		Seats:                population.Census2013Seats,
		Methods:              append([]apportion.Method(nil), apportion.AllMethods...),
		DivisorFloor:         apportion.DefaultDivisorFloor,
		LogLevel:             defaultLogLevel,
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
		MaxSeats:             defaultMaxSeats,
		MaxRegions:           defaultMaxRegions,
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) error {
	if yamlCfg.Port != "" {
		cfg.Port = yamlCfg.Port
	}

	if yamlCfg.Seats != nil {
		cfg.Seats = *yamlCfg.Seats
	}

	if len(yamlCfg.Methods) > 0 {
		methods, err := apportion.ParseMethods(strings.Join(yamlCfg.Methods, ","))
		if err != nil {
			return err
		}
		cfg.Methods = methods
	}

	if yamlCfg.PopulationFile != "" {
		cfg.PopulationFile = yamlCfg.PopulationFile
	}

	if yamlCfg.DivisorFloor != nil {
		cfg.DivisorFloor = *yamlCfg.DivisorFloor
	}

	if yamlCfg.ExactGeometricTotal != nil {
		cfg.ExactGeometricTotal = *yamlCfg.ExactGeometricTotal
	}

	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}

	durations := []struct {
		raw string
		dst *time.Duration
	}{
		{yamlCfg.ShutdownGracePeriod, &cfg.ShutdownGracePeriod},
		{yamlCfg.ReadHeaderTimeout, &cfg.ReadHeaderTimeout},
		{yamlCfg.WriteTimeout, &cfg.WriteTimeout},
		{yamlCfg.IdleTimeout, &cfg.IdleTimeout},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("parse duration %q: %w", d.raw, err)
		}
		*d.dst = parsed
	}

	if yamlCfg.EnableRequestLogging != nil {
		cfg.EnableRequestLogging = *yamlCfg.EnableRequestLogging
	}

	if yamlCfg.RateLimit.RPS != nil {
		cfg.RateLimitRPS = *yamlCfg.RateLimit.RPS
	}

	if yamlCfg.RateLimit.Burst != nil {
		cfg.RateLimitBurst = *yamlCfg.RateLimit.Burst
	}

	if yamlCfg.Limits.MaxSeats != nil {
		cfg.MaxSeats = *yamlCfg.Limits.MaxSeats
	}

	if yamlCfg.Limits.MaxRegions != nil {
		cfg.MaxRegions = *yamlCfg.Limits.MaxRegions
	}

	return nil
}

// applyEnvConfig applies environment variable configuration. Malformed values
// are ignored so a stray variable cannot prevent startup.
func applyEnvConfig(cfg *Config) {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Port = port
	}

	if raw := strings.TrimSpace(os.Getenv("SEATS")); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.Seats = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("METHODS")); raw != "" {
		if methods, err := apportion.ParseMethods(raw); err == nil {
			cfg.Methods = methods
		}
	}

	if path := strings.TrimSpace(os.Getenv("POPULATION_FILE")); path != "" {
		cfg.PopulationFile = path
	}

	if raw := strings.TrimSpace(os.Getenv("DIVISOR_FLOOR")); raw != "" {
		if value, err := strconv.ParseInt(raw, 10, 64); err == nil && value >= 0 {
			cfg.DivisorFloor = value
		}
	}

	if level := strings.TrimSpace(os.Getenv("LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}

	if rps := strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")); rps != "" {
		if value, err := strconv.ParseFloat(rps, 64); err == nil && value >= 0 {
			cfg.RateLimitRPS = value
		}
	}

	if burst := strings.TrimSpace(os.Getenv("RATE_LIMIT_BURST")); burst != "" {
		if value, err := strconv.Atoi(burst); err == nil && value >= 0 {
			cfg.RateLimitBurst = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("MAX_SEATS")); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.MaxSeats = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("MAX_REGIONS")); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.MaxRegions = value
		}
	}
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) error {
	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Port = *overrides.Port
	}

	if overrides.Seats != nil {
		cfg.Seats = *overrides.Seats
	}

	if overrides.Methods != nil && *overrides.Methods != "" {
		methods, err := apportion.ParseMethods(*overrides.Methods)
		if err != nil {
			return fmt.Errorf("parse methods: %w", err)
		}
		cfg.Methods = methods
	}

	if overrides.PopulationFile != nil && *overrides.PopulationFile != "" {
		cfg.PopulationFile = *overrides.PopulationFile
	}

	if overrides.DivisorFloor != nil {
		cfg.DivisorFloor = *overrides.DivisorFloor
	}

	if overrides.ExactGeometric != nil {
		cfg.ExactGeometricTotal = *overrides.ExactGeometric
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}

	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = *overrides.RateLimitRPS
	}

	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = *overrides.RateLimitBurst
	}

	return nil
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.Seats <= 0 {
		return fmt.Errorf("seats must be a positive integer, got %d", cfg.Seats)
	}
	if len(cfg.Methods) == 0 {
		return fmt.Errorf("at least one apportionment method is required")
	}
	if cfg.DivisorFloor < 0 {
		return fmt.Errorf("DIVISOR_FLOOR must be >= 0")
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be >= 0")
	}
	if cfg.MaxSeats <= 0 {
		return fmt.Errorf("MAX_SEATS must be > 0")
	}
	if cfg.MaxRegions <= 0 {
		return fmt.Errorf("MAX_REGIONS must be > 0")
	}
	return nil
}

// RegistryOptions translates the method settings into registry options.
func (c Config) RegistryOptions() []apportion.Option {
	return []apportion.Option{
		apportion.WithDivisorFloor(c.DivisorFloor),
		apportion.WithExactGeometricTotal(c.ExactGeometricTotal),
	}
}

// Population resolves the configured population table: the file when one is
// set, the bundled 2013 table otherwise.
func (c Config) Population() (apportion.Distribution, error) {
	if c.PopulationFile == "" {
		return population.Census2013(), nil
	}
	dist, err := population.LoadFile(c.PopulationFile)
	if err != nil {
		return nil, fmt.Errorf("load population table: %w", err)
	}
	return dist, nil
}
