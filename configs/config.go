package configs

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const envPrefix = "adtbridge"

// FileConfig defines the structure loaded from the optional YAML
// configuration file. Environment variables override file settings.
type FileConfig struct {
	Adt struct {
		URL      string `yaml:"url"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Client   string `yaml:"client"`
		Language string `yaml:"language"`
	} `yaml:"adt"`
}

// Config holds the final application configuration, merged from file and
// environment variables (prefix "ADTBRIDGE_").
type Config struct {
	// Config file path (loaded first from env).
	ConfigFilePath string `envconfig:"CONFIG_FILE"`

	// Backend connection. URL, user and password are mandatory; the process
	// refuses to start without them.
	AdtURL      string `envconfig:"ADT_URL"`
	AdtUser     string `envconfig:"ADT_USER"`
	AdtPassword string `envconfig:"ADT_PASSWORD"`
	AdtClient   string `envconfig:"ADT_CLIENT"`
	AdtLanguage string `envconfig:"ADT_LANGUAGE"`

	ListenAddr               string        `envconfig:"LISTEN_ADDR" default:":8080"`
	DiagnosticsAddr          string        `envconfig:"DIAGNOSTICS_ADDR" default:":8081"`
	HTTPClientTimeout        time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"30s"`
	ShutdownTimeout          time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
	OtelExporterOtlpEndpoint string        `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelExporterOtlpInsecure bool          `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
	LogLevel                 string        `envconfig:"LOG_LEVEL" default:"info"`
}

// ParsedLogLevel returns the slog.Level based on the configured LogLevel string.
func (c *Config) ParsedLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		fallthrough
	default:
		return slog.LevelInfo
	}
}

// Load loads configuration from the optional YAML file, then processes
// environment variables on top so env always wins. Missing mandatory
// backend values are a fatal startup condition, never a per-invocation one.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if cfg.ConfigFilePath != "" {
		yamlFile, err := os.ReadFile(cfg.ConfigFilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", cfg.ConfigFilePath, err)
		}
		var fileCfg FileConfig
		if err := yaml.Unmarshal(yamlFile, &fileCfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file '%s': %w", cfg.ConfigFilePath, err)
		}
		applyFileConfig(&cfg, fileCfg)

		// Env vars override file settings.
		if err := envconfig.Process(envPrefix, &cfg); err != nil {
			return nil, fmt.Errorf("failed to process overriding environment variables: %w", err)
		}
		slog.Info("Loaded configuration from file.", "path", cfg.ConfigFilePath)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyFileConfig(cfg *Config, fileCfg FileConfig) {
	if cfg.AdtURL == "" {
		cfg.AdtURL = fileCfg.Adt.URL
	}
	if cfg.AdtUser == "" {
		cfg.AdtUser = fileCfg.Adt.User
	}
	if cfg.AdtPassword == "" {
		cfg.AdtPassword = fileCfg.Adt.Password
	}
	if cfg.AdtClient == "" {
		cfg.AdtClient = fileCfg.Adt.Client
	}
	if cfg.AdtLanguage == "" {
		cfg.AdtLanguage = fileCfg.Adt.Language
	}
}

func (c *Config) validate() error {
	var missing []string
	if c.AdtURL == "" {
		missing = append(missing, "ADTBRIDGE_ADT_URL")
	}
	if c.AdtUser == "" {
		missing = append(missing, "ADTBRIDGE_ADT_USER")
	}
	if c.AdtPassword == "" {
		missing = append(missing, "ADTBRIDGE_ADT_PASSWORD")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing mandatory configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
