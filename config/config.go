// Package config loads service configuration from defaults, an optional YAML
// file, and IMAGINE_* environment variables, in that override order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like "90s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std converts to the standard library type.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the full service configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Generation GenerationConfig `yaml:"generation"`
	History    HistoryConfig    `yaml:"history"`
	LogLevel   string           `yaml:"log_level"`
}

// ServerConfig covers the HTTP listener.
type ServerConfig struct {
	Addr         string   `yaml:"addr"`
	ReadTimeout  Duration `yaml:"read_timeout"`
	WriteTimeout Duration `yaml:"write_timeout"`
}

// GenerationConfig covers the orchestration client.
type GenerationConfig struct {
	Timeout       Duration `yaml:"timeout"`
	MaxConcurrent int      `yaml:"max_concurrent"`
	RateInterval  Duration `yaml:"rate_interval"`
}

// HistoryConfig covers the in-process generation history.
type HistoryConfig struct {
	TTL   Duration `yaml:"ttl"`
	Sweep Duration `yaml:"sweep"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  Duration(15 * time.Second),
			WriteTimeout: Duration(2 * time.Minute),
		},
		Generation: GenerationConfig{
			Timeout:       Duration(60 * time.Second),
			MaxConcurrent: 4,
		},
		History: HistoryConfig{
			TTL:   Duration(30 * time.Minute),
			Sweep: Duration(time.Hour),
		},
		LogLevel: "info",
	}
}

// Load builds the configuration. path may be empty to skip the file layer.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv overlays IMAGINE_* environment variables on top of cfg.
func applyEnv(cfg *Config) {
	if v := os.Getenv("IMAGINE_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("IMAGINE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("IMAGINE_GENERATION_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Generation.Timeout = Duration(d)
		}
	}
	if v := os.Getenv("IMAGINE_MAX_CONCURRENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Generation.MaxConcurrent = n
		}
	}
	if v := os.Getenv("IMAGINE_RATE_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Generation.RateInterval = Duration(d)
		}
	}
	if v := os.Getenv("IMAGINE_HISTORY_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.History.TTL = Duration(d)
		}
	}
}
