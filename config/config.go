// Package config resolves the CLI's flags and environment variables into a
// Config, the way bpmcmd resolves BPM_PATH: a flag wins, then an
// environment variable, then a default.
package config

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

const (
	envEndpoint    = "DELLICIUS_ENDPOINT"
	envToken       = "DELLICIUS_TOKEN"
	envCacheMaxAge = "DELLICIUS_CACHE_MAX_AGE"
	envCacheDB     = "DELLICIUS_CACHE_DB"
)

const defaultCacheMaxAge = 60 * time.Second

// Config is the CLI's resolved configuration.
type Config struct {
	Endpoint    string
	BearerToken string
	CacheMaxAge time.Duration
	CacheDBPath string
}

// RegisterFlags adds this package's flags to cmd and returns the Config
// they populate once cmd's flags are parsed.
func RegisterFlags(cmd *cobra.Command) *Config {
	cfg := &Config{}
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.Endpoint, "endpoint", envOrDefault(envEndpoint, ""),
		"Redfish service root, e.g. https://mgmt.example:443")
	flags.StringVar(&cfg.BearerToken, "token", envOrDefault(envToken, ""),
		"bearer token for the Redfish service")
	flags.DurationVar(&cfg.CacheMaxAge, "cache-max-age", durationEnvOrDefault(envCacheMaxAge, defaultCacheMaxAge),
		"how long a cached GET stays fresh")
	flags.StringVar(&cfg.CacheDBPath, "cache-db", envOrDefault(envCacheDB, ""),
		"optional path to a durable cache database; empty disables it")
	return cfg
}

func envOrDefault(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func durationEnvOrDefault(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
