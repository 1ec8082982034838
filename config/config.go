package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/deevus/matchday-tui/coordinator"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"

	defaultTimeout = 10 * time.Second
)

// Config is the top-level configuration.
type Config struct {
	Servers map[string]ServerConfig `toml:"servers"`
	Cache   CacheConfig             `toml:"cache"`
}

// ServerConfig holds connection details for one livescore API.
type ServerConfig struct {
	BaseURL            string   `toml:"base_url"`
	LiveURL            string   `toml:"live_url"`
	APIKey             string   `toml:"api_key"`
	InsecureSkipVerify bool     `toml:"insecure_skip_verify"`
	Timeout            Duration `toml:"timeout"`
}

// CacheConfig controls the persisted cache and live invalidation.
type CacheConfig struct {
	FilledTTL      Duration `toml:"filled_ttl"`
	EmptyTTL       Duration `toml:"empty_ttl"`
	StatusCooldown Duration `toml:"status_cooldown"`
	Store          string   `toml:"store"`
	StorePath      string   `toml:"store_path"`
}

// Duration is a time.Duration written as a string such as "2m" or "10s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	if v < 0 {
		return fmt.Errorf("invalid duration %q: must not be negative", text)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultPath returns the default config file path using XDG conventions.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "matchday-tui", "config.toml")
}

// StateDir returns the directory for logs and the session store, honouring
// XDG_STATE_HOME.
func StateDir() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = os.Getenv("HOME")
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "matchday-tui")
}

// LoadFrom reads and parses the config file at the given path.
// It applies defaults for server and cache fields after parsing.
func LoadFrom(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if len(cfg.Servers) == 0 {
		return nil, fmt.Errorf("config has no servers defined")
	}
	for name, server := range cfg.Servers {
		if server.BaseURL == "" {
			return nil, fmt.Errorf("server %q: base_url is required", name)
		}
		if server.Timeout.Duration == 0 {
			server.Timeout.Duration = defaultTimeout
		}
		server.APIKey = os.ExpandEnv(server.APIKey)
		cfg.Servers[name] = server
	}

	c := &cfg.Cache
	if c.FilledTTL.Duration == 0 {
		c.FilledTTL.Duration = coordinator.DefaultFilledTTL
	}
	if c.EmptyTTL.Duration == 0 {
		c.EmptyTTL.Duration = coordinator.DefaultEmptyTTL
	}
	if c.StatusCooldown.Duration == 0 {
		c.StatusCooldown.Duration = coordinator.DefaultStatusCooldown
	}
	switch c.Store {
	case "":
		c.Store = StoreMemory
	case StoreMemory, StoreSQLite:
	default:
		return nil, fmt.Errorf("cache.store %q: must be %q or %q", c.Store, StoreMemory, StoreSQLite)
	}
	if c.StorePath == "" {
		c.StorePath = filepath.Join(StateDir(), "cache.db")
	}
	c.StorePath = expandPath(c.StorePath)
	return &cfg, nil
}

// expandPath expands ~ to $HOME and then expands all environment variables.
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		path = "$HOME" + path[1:]
	}
	return os.ExpandEnv(path)
}

// ServerNames returns the sorted list of server profile names.
func (c *Config) ServerNames() []string {
	names := make([]string, 0, len(c.Servers))
	for name := range c.Servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Policy converts the cache section to coordinator settings.
func (c CacheConfig) Policy() coordinator.Policy {
	p := coordinator.DefaultPolicy()
	p.FilledTTL = c.FilledTTL.Duration
	p.EmptyTTL = c.EmptyTTL.Duration
	p.StatusCooldown = c.StatusCooldown.Duration
	return p
}
