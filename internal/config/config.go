package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"contribution-engine/internal/model"
)

// Config defines server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" toml:"server"`
	DB      DBConfig      `yaml:"db" toml:"db"`
	Log     LogConfig     `yaml:"log" toml:"log"`
	Payroll PayrollConfig `yaml:"payroll" toml:"payroll"`
}

type ServerConfig struct {
	Host       string `yaml:"host" toml:"host" env:"CONTRIB_SERVER_HOST"`
	Port       int    `yaml:"port" toml:"port" env:"CONTRIB_SERVER_PORT"`
	CORSOrigin string `yaml:"cors_origin" toml:"cors_origin" env:"CONTRIB_CORS_ORIGIN"`
}

type DBConfig struct {
	Path string `yaml:"path" toml:"path" env:"CONTRIB_DB_PATH"`
}

type LogConfig struct {
	Level string `yaml:"level" toml:"level" env:"CONTRIB_LOG_LEVEL"`
}

// PayrollConfig points at the service that owns year-to-date figures. With
// no URL the fallback summary is served as-is.
type PayrollConfig struct {
	URL      string        `yaml:"url" toml:"url" env:"CONTRIB_PAYROLL_URL"`
	Timeout  time.Duration `yaml:"timeout" toml:"timeout" env:"CONTRIB_PAYROLL_TIMEOUT"`
	Fallback SummaryConfig `yaml:"fallback" toml:"fallback"`
}

type SummaryConfig struct {
	SalaryAnnual     float64 `yaml:"salary_annual" toml:"salary_annual"`
	YtdContribution  float64 `yaml:"ytd_contribution" toml:"ytd_contribution"`
	PaychecksPerYear int     `yaml:"paychecks_per_year" toml:"paychecks_per_year"`
	Age              int     `yaml:"age" toml:"age"`
	RetirementAge    int     `yaml:"retirement_age" toml:"retirement_age"`
}

func (s SummaryConfig) Summary() model.YtdSummary {
	return model.YtdSummary{
		SalaryAnnual:     s.SalaryAnnual,
		YtdContribution:  s.YtdContribution,
		PaychecksPerYear: s.PaychecksPerYear,
		Age:              s.Age,
		RetirementAge:    s.RetirementAge,
	}
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	summary := model.DefaultSummary()
	return Config{
		Server: ServerConfig{
			Host:       "0.0.0.0",
			Port:       8000,
			CORSOrigin: "*",
		},
		DB: DBConfig{
			Path: "contributions.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Payroll: PayrollConfig{
			Timeout: 2 * time.Second,
			Fallback: SummaryConfig{
				SalaryAnnual:     summary.SalaryAnnual,
				YtdContribution:  summary.YtdContribution,
				PaychecksPerYear: summary.PaychecksPerYear,
				Age:              summary.Age,
				RetirementAge:    summary.RetirementAge,
			},
		},
	}
}

// Load reads configuration from an optional YAML or TOML file named by
// CONTRIB_CONFIG_PATH and then applies environment variables.
func Load() (Config, error) {
	return LoadFile(os.Getenv("CONTRIB_CONFIG_PATH"))
}

// LoadFile is Load with an explicit config file path. An empty path skips
// the file.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	// PORT is honoured for platforms that inject it; CONTRIB_SERVER_PORT wins.
	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PORT: %w", err)
		}
		cfg.Server.Port = port
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config file: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config file: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file format: %s", ext)
	}
	return nil
}

// Validate checks values that would otherwise fail later at startup.
func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	if c.Payroll.Timeout <= 0 {
		return fmt.Errorf("invalid payroll timeout %s", c.Payroll.Timeout)
	}
	if err := c.Payroll.Fallback.Summary().Validate(); err != nil {
		return fmt.Errorf("fallback: %w", err)
	}
	return nil
}
