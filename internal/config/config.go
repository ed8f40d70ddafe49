package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/RSangDev/weather-analytics-dashboard/internal/domain"
)

// City is one tracked location. State and region are optional and flow
// through to regional summaries when present.
type City struct {
	Name   string  `yaml:"name" validate:"required"`
	Lat    float64 `yaml:"lat" validate:"gte=-90,lte=90"`
	Lon    float64 `yaml:"lon" validate:"gte=-180,lte=180"`
	State  string  `yaml:"state"`
	Region string  `yaml:"region"`
}

// Processing holds the enrichment and fetch-horizon settings.
type Processing struct {
	MovingAverageWindow int     `yaml:"moving_average_window" validate:"gt=0"`
	AnomalyThreshold    float64 `yaml:"anomaly_threshold" validate:"gt=0"`
	ForecastDays        int     `yaml:"forecast_days" validate:"gte=1,lte=16"`
}

// Alerts holds the four threshold settings consumed by the alert generator.
type Alerts struct {
	Temperature struct {
		HighThreshold float64 `yaml:"high_threshold"`
		LowThreshold  float64 `yaml:"low_threshold"`
	} `yaml:"temperature"`
	WindSpeed struct {
		HighThreshold float64 `yaml:"high_threshold"`
	} `yaml:"wind_speed"`
	Precipitation struct {
		HighThreshold float64 `yaml:"high_threshold"`
	} `yaml:"precipitation"`
}

// API holds the forecast API client settings.
type API struct {
	BaseURL       string   `yaml:"base_url" validate:"required,url"`
	Timeout       Duration `yaml:"timeout"`
	RetryAttempts int      `yaml:"retry_attempts" validate:"gte=0,lte=10"`
}

// Duration is a time.Duration that unmarshals from YAML strings like "10s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the setting as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds all service settings: the YAML analysis configuration plus
// operational settings populated from environment variables.
type Config struct {
	Cities     []City     `yaml:"cities" validate:"required,min=1,dive"`
	Processing Processing `yaml:"processing"`
	Alerts     Alerts     `yaml:"alerts"`
	API        API        `yaml:"api"`

	// Operational settings, environment-driven.
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	CronSchedule    string
	SQLitePath      string
	CSVExportDir    string
	KafkaEnabled    bool
	KafkaBrokers    []string
	KafkaAlertTopic string
}

// Load reads the YAML file named by CONFIG_PATH (default config/config.yaml)
// and applies environment overrides for operational settings.
func Load() (*Config, error) {
	return LoadFile(EnvOrDefault("CONFIG_PATH", "config/config.yaml"))
}

// LoadFile loads and validates one configuration file. Invalid analysis or
// threshold settings surface as *domain.ConfigurationError.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &domain.ConfigurationError{
				Field:  fe.Namespace(),
				Reason: fmt.Sprintf("failed validation rule %q", fe.Tag()),
			}
		}
		return err
	}

	if cfg.Alerts.Temperature.HighThreshold <= cfg.Alerts.Temperature.LowThreshold {
		return &domain.ConfigurationError{
			Field:  "alerts.temperature",
			Reason: "high_threshold must be greater than low_threshold",
		}
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = Duration(10 * time.Second)
	}
	if cfg.API.RetryAttempts == 0 {
		cfg.API.RetryAttempts = 3
	}
	if cfg.Processing.ForecastDays == 0 {
		cfg.Processing.ForecastDays = 7
	}
}

func applyEnv(cfg *Config) error {
	cfg.HTTPAddr = EnvOrDefault("HTTP_ADDR", ":8080")
	cfg.LogLevel = EnvOrDefault("LOG_LEVEL", "info")
	cfg.LogFormat = EnvOrDefault("LOG_FORMAT", "json")
	cfg.CronSchedule = EnvOrDefault("CRON_SCHEDULE", "0 */6 * * *")
	cfg.SQLitePath = EnvOrDefault("SQLITE_PATH", "data/weather.db")
	cfg.CSVExportDir = EnvOrDefault("CSV_EXPORT_DIR", "data/exports")
	cfg.KafkaBrokers = ParseBrokers(EnvOrDefault("KAFKA_BROKERS", "localhost:9092"))
	cfg.KafkaAlertTopic = EnvOrDefault("KAFKA_ALERT_TOPIC", "weather-alerts")
	cfg.KafkaEnabled = os.Getenv("KAFKA_ENABLED") == "true"

	timeout, err := time.ParseDuration(EnvOrDefault("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil || timeout <= 0 {
		return errors.New("invalid SHUTDOWN_TIMEOUT")
	}
	cfg.ShutdownTimeout = timeout

	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	return nil
}

// EnvOrDefault returns the environment variable's value, or fallback when
// unset or empty.
func EnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ParseBrokers splits a comma-separated broker list, dropping empty entries.
func ParseBrokers(raw string) []string {
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
