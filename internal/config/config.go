// Package config loads apkgraph settings from an optional file, APKGRAPH_*
// environment variables and defaults. Command-line flags are applied on top
// by the cli package.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment key: server.addr is read
// from APKGRAPH_SERVER_ADDR.
const EnvPrefix = "APKGRAPH"

// Config holds all application configuration.
type Config struct {
	Package   string        `mapstructure:"package"`
	Repo      string        `mapstructure:"repo"`
	Version   string        `mapstructure:"version"`
	TestMode  bool          `mapstructure:"test_mode"`
	AsciiTree bool          `mapstructure:"ascii_tree"`
	Reverse   bool          `mapstructure:"reverse"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Server    ServerConfig  `mapstructure:"server"`
	Neo4j     Neo4jConfig   `mapstructure:"neo4j"`
	Tracing   TracingConfig `mapstructure:"tracing"`
	Log       LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type Neo4jConfig struct {
	URI      string `mapstructure:"uri"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type TracingConfig struct {
	// Endpoint is the OTLP gRPC endpoint; empty disables export.
	Endpoint   string  `mapstructure:"endpoint"`
	SampleRate float64 `mapstructure:"sample_rate"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Defaults.
const (
	DefaultVersion   = "latest"
	DefaultTimeout   = 30 * time.Second
	DefaultAddr      = ":8080"
	DefaultNeo4jURI  = "bolt://localhost:7687"
	DefaultNeo4jUser = "neo4j"
	DefaultLogLevel  = "info"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("package", "")
	v.SetDefault("repo", "")
	v.SetDefault("version", DefaultVersion)
	v.SetDefault("test_mode", false)
	v.SetDefault("ascii_tree", false)
	v.SetDefault("reverse", false)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("server.addr", DefaultAddr)
	v.SetDefault("neo4j.uri", DefaultNeo4jURI)
	v.SetDefault("neo4j.username", DefaultNeo4jUser)
	v.SetDefault("neo4j.password", "")
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.sample_rate", 1.0)
	v.SetDefault("log.level", DefaultLogLevel)
}

// Load reads configuration from path (TOML, YAML or JSON by extension) and
// the environment. An empty path skips the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values no command can work with.
func (c *Config) Validate() error {
	var errs []error
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		errs = append(errs, fmt.Errorf("tracing.sample_rate %.2f is outside [0, 1]", c.Tracing.SampleRate))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	return errors.Join(errs...)
}
