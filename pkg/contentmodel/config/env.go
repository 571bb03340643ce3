package config

import (
	"fmt"
	"os"
	"strconv"
)

// WithEnv applies environment variable overrides using the provided prefix.
//
//	PORT                 - Server port (default: "8080")
//	ENVIRONMENT          - Runtime environment (default: "development")
//	MANIFEST_PATH        - YAML manifest applied to the registry
//	LOG_LEVEL            - debug, info, warn, error (default: "info")
//	LOG_FORMAT           - text or json (default: "text")
//	ENABLE_EVENT_LOGGING - log lifecycle events (default: true)
//	ENABLE_METRICS       - expose Prometheus metrics (default: false)
func WithEnv(prefix string) Option {
	return func(c *Config) error {
		if v, ok := lookupEnv(prefix, "PORT"); ok && v != "" {
			c.Port = v
		}
		if v, ok := lookupEnv(prefix, "ENVIRONMENT"); ok && v != "" {
			c.Environment = v
		}
		if v, ok := lookupEnv(prefix, "MANIFEST_PATH"); ok && v != "" {
			c.ManifestPath = v
		}
		if v, ok := lookupEnv(prefix, "LOG_LEVEL"); ok && v != "" {
			c.LogLevel = v
		}
		if v, ok := lookupEnv(prefix, "LOG_FORMAT"); ok && v != "" {
			c.LogFormat = v
		}

		if b, ok, err := parseBoolEnv(prefix, "ENABLE_EVENT_LOGGING"); err != nil {
			return err
		} else if ok {
			c.EnableEventLogging = b
		}
		if b, ok, err := parseBoolEnv(prefix, "ENABLE_METRICS"); err != nil {
			return err
		} else if ok {
			c.EnableMetrics = b
		}

		return nil
	}
}

func lookupEnv(prefix, key string) (string, bool) {
	return os.LookupEnv(prefix + key)
}

func parseBoolEnv(prefix, key string) (bool, bool, error) {
	raw, ok := lookupEnv(prefix, key)
	if !ok || raw == "" {
		return false, false, nil
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false, fmt.Errorf("invalid boolean for %s%s: %w", prefix, key, err)
	}
	return parsed, true, nil
}
