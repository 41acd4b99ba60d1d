package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
)

const defaultPort = 3000

// Config holds the process-wide settings, resolved once at startup
type Config struct {
	Host      string
	Port      int
	AdminPort int
	Mode      string
	Root      string
}

// FromEnv builds the configuration from the environment and the current
// working directory.
func FromEnv() (*Config, error) {
	port, err := portFromEnv("PORT", defaultPort)
	if err != nil {
		return nil, err
	}

	adminPort, err := portFromEnv("ADMIN_PORT", 0)
	if err != nil {
		return nil, err
	}
	if adminPort != 0 && adminPort == port {
		return nil, fmt.Errorf("ADMIN_PORT must differ from PORT (both %d)", port)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	root, err := filepath.Abs(wd)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve working directory: %w", err)
	}

	return &Config{
		Host:      os.Getenv("HOST"),
		Port:      port,
		AdminPort: adminPort,
		Mode:      get("GIN_MODE", "release"),
		Root:      root,
	}, nil
}

// Addr returns the listen address of the file server
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// AdminAddr returns the listen address of the admin server, or "" when disabled
func (c *Config) AdminAddr() string {
	if c.AdminPort == 0 {
		return ""
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(c.AdminPort))
}

func portFromEnv(env string, fallback int) (int, error) {
	v := os.Getenv(env)
	if v == "" {
		return fallback, nil
	}
	p, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", env, v, err)
	}
	if p < 1 || p > 65535 {
		return 0, fmt.Errorf("invalid %s %d: out of range 1-65535", env, p)
	}
	return p, nil
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
