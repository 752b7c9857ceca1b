package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port            string        `yaml:"port"`
	Title           string        `yaml:"title"`
	ExportDir       string        `yaml:"export_dir"`
	RateLimit       float64       `yaml:"rate_limit"`
	RateBurst       int           `yaml:"rate_burst"`
	Debug           bool          `yaml:"debug"`
	LogFormat       string        `yaml:"log_format"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

func Default() Config {
	return Config{
		Port:            "8000",
		Title:           "Monument",
		ExportDir:       "dist",
		RateLimit:       20,
		RateBurst:       40,
		LogFormat:       "text",
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load reads the optional YAML file at path over the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}

		err = yaml.Unmarshal(b, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	}

	err := applyEnv(&cfg)
	if err != nil {
		return Config{}, err
	}

	err = cfg.Validate()
	if err != nil {
		if path != "" {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
		return Config{}, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if port := os.Getenv("GOPORT"); port != "" {
		cfg.Port = port
	}

	if dir := os.Getenv("MONUMENT_EXPORT_DIR"); dir != "" {
		cfg.ExportDir = dir
	}

	if debug := os.Getenv("MONUMENT_DEBUG"); debug != "" {
		v, err := strconv.ParseBool(debug)
		if err != nil {
			return fmt.Errorf("MONUMENT_DEBUG: %w", err)
		}
		cfg.Debug = v
	}

	return nil
}

func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}

	if c.RateLimit < 0 {
		return errors.New("rate_limit must not be negative")
	}

	if c.RateLimit > 0 && c.RateBurst < 1 {
		return errors.New("rate_burst must be at least 1")
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q", c.LogFormat)
	}

	if c.ShutdownTimeout <= 0 {
		return errors.New("shutdown_timeout must be positive")
	}

	return nil
}
