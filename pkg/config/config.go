package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const minInterval = 200 * time.Millisecond

// Config holds the runtime settings resolved from defaults, an optional
// YAML file, and environment variables, in that order of precedence.
// Command-line flags are applied on top by the caller.
type Config struct {
	Interval time.Duration
	ProcPath string
	NodePath string
	Sort     string
	View     string
}

// fileConfig mirrors the YAML layout; the interval is a duration string
// such as "1s" or "500ms".
type fileConfig struct {
	Interval string `yaml:"interval"`
	ProcPath string `yaml:"proc_path"`
	NodePath string `yaml:"node_path"`
	Sort     string `yaml:"sort"`
	View     string `yaml:"view"`
}

// Default returns the baseline settings: one-second refresh against the
// standard procfs/sysfs mounts, processes view sorted by PSS.
func Default() *Config {
	return &Config{
		Interval: time.Second,
		ProcPath: "/proc",
		NodePath: "/sys/devices/system/node",
		Sort:     "pss",
		View:     "processes",
	}
}

// Load resolves the configuration. A non-empty path names a YAML file that
// must exist and parse; environment variables (optionally from a .env file)
// override it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
		if err := cfg.applyFile(fc); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}

	// A .env file is optional; plain environment variables work without it.
	if err := godotenv.Load(); err == nil {
		log.Println("loaded settings from .env")
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if cfg.Interval < minInterval {
		cfg.Interval = minInterval
	}
	return cfg, nil
}

func (c *Config) applyFile(fc fileConfig) error {
	if fc.Interval != "" {
		d, err := time.ParseDuration(fc.Interval)
		if err != nil {
			return fmt.Errorf("invalid interval %q: %w", fc.Interval, err)
		}
		c.Interval = d
	}
	if fc.ProcPath != "" {
		c.ProcPath = fc.ProcPath
	}
	if fc.NodePath != "" {
		c.NodePath = fc.NodePath
	}
	if fc.Sort != "" {
		c.Sort = fc.Sort
	}
	if fc.View != "" {
		c.View = fc.View
	}
	return nil
}

func (c *Config) applyEnv() error {
	if raw := os.Getenv("MEMTOP_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid MEMTOP_INTERVAL %q: %w", raw, err)
		}
		c.Interval = d
	}
	c.ProcPath = getEnv("MEMTOP_PROC_PATH", c.ProcPath)
	c.NodePath = getEnv("MEMTOP_NODE_PATH", c.NodePath)
	c.Sort = getEnv("MEMTOP_SORT", c.Sort)
	c.View = getEnv("MEMTOP_VIEW", c.View)
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
