package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Defaults applied to unset fields.
const (
	DefaultPort               = 16182
	DefaultReadTimeoutMS      = 10000
	DefaultWriteTimeoutMS     = 30000
	DefaultMaxRequestBytes    = 8 << 20
	DefaultShutdownTimeoutS   = 10
	DefaultUpstreamTimeoutMS  = 15000
	DefaultSubstringMinLength = 3
	DefaultCacheTTLSeconds    = 300
	DefaultCacheMaxEntries    = 256
	DefaultLogLevel           = "info"
)

// SearchPaths are tried in order by LoadAppConfig when no explicit path is given.
var SearchPaths = []string{"config.yml", "./config/config.yml"}

// ErrNoConfigFile is returned when none of the search paths exist.
var ErrNoConfigFile = errors.New("no config file found")

// LoadAppConfig loads and validates the application configuration. An empty path searches
// SearchPaths.
func LoadAppConfig(path string) (AppConfig, error) {
	paths := SearchPaths
	if path != "" {
		paths = []string{path}
	}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return AppConfig{}, fmt.Errorf("read config %s: %w", p, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return AppConfig{}, fmt.Errorf("config %s: %w", p, err)
		}
		return cfg, nil
	}
	return AppConfig{}, ErrNoConfigFile
}

// Parse decodes YAML, applies defaults and validates.
func Parse(data []byte) (AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("decode: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Default returns a configuration with every default applied.
func Default() AppConfig {
	var cfg AppConfig
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields
func (c *AppConfig) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ReadTimeoutMS == 0 {
		c.Server.ReadTimeoutMS = DefaultReadTimeoutMS
	}
	if c.Server.WriteTimeoutMS == 0 {
		c.Server.WriteTimeoutMS = DefaultWriteTimeoutMS
	}
	if c.Server.MaxRequestBytes == 0 {
		c.Server.MaxRequestBytes = DefaultMaxRequestBytes
	}
	if c.Server.ShutdownTimeoutS == 0 {
		c.Server.ShutdownTimeoutS = DefaultShutdownTimeoutS
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if c.Upstream.TimeoutMS == 0 {
		c.Upstream.TimeoutMS = DefaultUpstreamTimeoutMS
	}
	if c.Converter.SubstringMinLength == 0 {
		c.Converter.SubstringMinLength = DefaultSubstringMinLength
	}
	if c.Cache.TTLSeconds == 0 && c.Cache.MaxEntries == 0 {
		c.Cache.TTLSeconds = DefaultCacheTTLSeconds
		c.Cache.MaxEntries = DefaultCacheMaxEntries
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
}

// Validate checks struct tags on every section
func (c AppConfig) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}
