package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port            int
	AllowedOrigins  []string
	ForfeitDelay    time.Duration
	ShutdownTimeout time.Duration
	LogLevel        string
	Debug           bool
}

var Defaults = Config{
	Port:            3000,
	ForfeitDelay:    1500 * time.Millisecond,
	ShutdownTimeout: 10 * time.Second,
	LogLevel:        "info",
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return LoadFrom(os.LookupEnv)
}

func LoadFrom(lookup func(string) (string, bool)) (Config, error) {
	cfg := Defaults

	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = port
	}

	if v, ok := lookup("ALLOWED_ORIGINS"); ok {
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	if v, ok := lookup("FORFEIT_DELAY"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return Config{}, fmt.Errorf("invalid FORFEIT_DELAY %q", v)
		}
		cfg.ForfeitDelay = d
	}

	if v, ok := lookup("SHUTDOWN_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q", v)
		}
		cfg.ShutdownTimeout = d
	}

	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	if v, ok := lookup("DEBUG"); ok && v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DEBUG %q", v)
		}
		cfg.Debug = debug
	}
	if v, _ := lookup("GIN_MODE"); v == "debug" {
		cfg.Debug = true
	}

	return cfg, nil
}

func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
