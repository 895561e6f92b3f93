package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config is the server configuration, read from the environment with
// sensible defaults.
type Config struct {
	// SchemaSource is a file path or http(s) URL of the survey document
	SchemaSource string
	HTTPPort     string
	// SessionTTL drops sessions idle longer than this
	SessionTTL    time.Duration
	SweepInterval time.Duration
	Debug         bool
}

// Load reads the configuration from the environment
func Load() *Config {
	v := viper.New()
	v.SetDefault("schema_source", "pytania.json")
	v.SetDefault("http_port", "8080")
	v.SetDefault("session_ttl", 30*time.Minute)
	v.SetDefault("sweep_interval", 5*time.Minute)
	v.SetDefault("debug", false)
	v.AutomaticEnv()

	return &Config{
		SchemaSource:  v.GetString("schema_source"),
		HTTPPort:      v.GetString("http_port"),
		SessionTTL:    v.GetDuration("session_ttl"),
		SweepInterval: v.GetDuration("sweep_interval"),
		Debug:         v.GetBool("debug"),
	}
}
