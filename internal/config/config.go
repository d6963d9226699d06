package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// HTTPAddr is the address the API listener binds to.
const HTTPAddr = ":5200"

// ErrMissingAtlasURI is returned when no connection string is configured.
var ErrMissingAtlasURI = errors.New("no ATLAS_URI provided")

type Config struct {
	Env            string        // Env is the current environment: local, development, production.
	AtlasURI       string        // AtlasURI is the MongoDB connection string.
	HTTPAddr       string        // HTTPAddr is the listener address, always HTTPAddr.
	MonitoringPort int           // MonitoringPort serves /healthz and /metrics, 0 disables it.
	ConnectTimeout time.Duration // ConnectTimeout bounds the connect and ping step, 0 disables it.
}

// Load reads the configuration from the environment and, when CONFIG_PATH is set,
// from that YAML file. Environment variables take precedence over the file.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("env", "local")
	v.SetDefault("monitoring_port", 0)
	v.SetDefault("connect_timeout", 30*time.Second)

	bindings := map[string]string{
		"atlas_uri":       "ATLAS_URI",
		"env":             "APP_ENV",
		"monitoring_port": "MONITORING_PORT",
		"connect_timeout": "CONNECT_TIMEOUT",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", configPath)
		}

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config error: %w", err)
		}
	}

	cfg := &Config{
		Env:            v.GetString("env"),
		AtlasURI:       v.GetString("atlas_uri"),
		HTTPAddr:       HTTPAddr,
		MonitoringPort: v.GetInt("monitoring_port"),
		ConnectTimeout: v.GetDuration("connect_timeout"),
	}

	if cfg.AtlasURI == "" {
		return nil, ErrMissingAtlasURI
	}
	if cfg.MonitoringPort < 0 {
		return nil, fmt.Errorf("invalid monitoring port: %d", cfg.MonitoringPort)
	}

	return cfg, nil
}
