package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ganot/grantmap/internal/domain/consolidate"
	"github.com/ganot/grantmap/internal/domain/normalize"
	"gopkg.in/yaml.v3"
)

// Config defines pipeline and server configuration.
type Config struct {
	Dataset     DatasetConfig     `yaml:"dataset"`
	Consolidate ConsolidateConfig `yaml:"consolidate"`
	Ingest      IngestConfig      `yaml:"ingest"`
	Location    LocationConfig    `yaml:"location"`
	Server      ServerConfig      `yaml:"server"`
	Transport   TransportConfig   `yaml:"transport"`
	Share       ShareConfig       `yaml:"share"`
	DB          DBConfig          `yaml:"db"`
	Log         LogConfig         `yaml:"log"`
}

type DatasetConfig struct {
	Path   string `yaml:"path"`
	Source string `yaml:"source"`
}

type ConsolidateConfig struct {
	Rule              string `yaml:"rule"`
	DescriptionPolicy string `yaml:"description_policy"`
}

type IngestConfig struct {
	ActiveSince      int  `yaml:"active_since"`
	IncludeCancelled bool `yaml:"include_cancelled"`
}

// LocationConfig points at correction tables replacing the built-in ones.
type LocationConfig struct {
	VerifiedPath string `yaml:"verified_path"`
	PlacesPath   string `yaml:"places_path"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"` // "stdio" or "http"
}

type ShareConfig struct {
	BaseURL string `yaml:"base_url"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Dataset: DatasetConfig{
			Path:   "data/grantees.json",
			Source: "data/Grants-Grid view.csv",
		},
		Consolidate: ConsolidateConfig{
			Rule: string(normalize.RuleQualifier),
		},
		Ingest: IngestConfig{
			ActiveSince: 2024,
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: "stdio",
		},
		DB: DBConfig{
			Path: "grantmap.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from an optional YAML file and environment
// variables. path wins over GRANTMAP_CONFIG_PATH when set.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("GRANTMAP_CONFIG_PATH")
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if p := os.Getenv("GRANTMAP_DATASET_PATH"); p != "" {
		cfg.Dataset.Path = p
	}
	if rule := os.Getenv("GRANTMAP_RULE"); rule != "" {
		cfg.Consolidate.Rule = rule
	}
	if host := os.Getenv("GRANTMAP_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("GRANTMAP_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid GRANTMAP_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv("GRANTMAP_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if base := os.Getenv("GRANTMAP_SHARE_BASE_URL"); base != "" {
		cfg.Share.BaseURL = base
	}
	if dbPath := os.Getenv("GRANTMAP_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("GRANTMAP_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Dataset.Path) == "" {
		errs = append(errs, errors.New("dataset.path is required"))
	}
	if _, err := normalize.ForRule(c.Consolidate.Rule); err != nil {
		errs = append(errs, fmt.Errorf("consolidate.rule: %w", err))
	}
	if _, err := consolidate.ParseDescriptionPolicy(c.Consolidate.DescriptionPolicy); err != nil {
		errs = append(errs, fmt.Errorf("consolidate.description_policy: %w", err))
	}
	switch c.Transport.Mode {
	case "stdio", "http":
	default:
		errs = append(errs, fmt.Errorf("transport.mode: unknown mode %q", c.Transport.Mode))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port: %d out of range", c.Server.Port))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// MergePolicy returns the consolidation policy for the configured rule, with
// the description policy overridden when one is set.
func (c Config) MergePolicy() (normalize.Normalizer, consolidate.Policy, error) {
	n, err := normalize.ForRule(c.Consolidate.Rule)
	if err != nil {
		return nil, consolidate.Policy{}, err
	}
	policy := consolidate.DefaultPolicy(n.Rule())
	desc, err := consolidate.ParseDescriptionPolicy(c.Consolidate.DescriptionPolicy)
	if err != nil {
		return nil, consolidate.Policy{}, err
	}
	if desc != "" {
		policy.Description = desc
	}
	return n, policy, nil
}

// ShareBaseURL is the page URL share links point at. Without a configured
// value it is derived from the HTTP listener.
func (c Config) ShareBaseURL() string {
	if c.Share.BaseURL != "" {
		return c.Share.BaseURL
	}
	host := c.Server.Host
	if host == "" || host == "0.0.0.0" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s:%d/", host, c.Server.Port)
}
