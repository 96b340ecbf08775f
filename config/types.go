package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port             int      `yaml:"port" validate:"gt=0,lte=65535"`
	ReadTimeoutMS    int      `yaml:"readTimeoutMS" validate:"gte=0"`
	WriteTimeoutMS   int      `yaml:"writeTimeoutMS" validate:"gte=0"`
	MaxRequestBytes  int64    `yaml:"maxRequestBytes" validate:"gte=0"`
	AllowedOrigins   []string `yaml:"allowedOrigins"`
	ShutdownTimeoutS int      `yaml:"shutdownTimeoutS" validate:"gte=0"`
}

// UpstreamConfig points at the flight search backend
type UpstreamConfig struct {
	DirectSearchURL string `yaml:"directSearchURL" validate:"omitempty,url"`
	RouteSearchURL  string `yaml:"routeSearchURL" validate:"omitempty,url"`
	TimeoutMS       int    `yaml:"timeoutMS" validate:"gte=0"`
}

// ConverterConfig contains converter-specific configuration
type ConverterConfig struct {
	Workers            int  `yaml:"workers" validate:"gte=0,lte=256"`
	SubstringMinLength int  `yaml:"substringMinLength" validate:"gte=0"`
	TraceDecisions     bool `yaml:"traceDecisions"`
}

// ReferenceConfig selects the airline, aircraft and airport dataset.
// An empty DataPath uses the embedded dataset.
type ReferenceConfig struct {
	DataPath string `yaml:"dataPath"`
}

// CacheConfig bounds the normalized response cache. TTLSeconds of 0 disables it.
type CacheConfig struct {
	TTLSeconds int `yaml:"ttlSeconds" validate:"gte=0"`
	MaxEntries int `yaml:"maxEntries" validate:"gte=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server    ServerConfig    `yaml:"server"`
	Upstream  UpstreamConfig  `yaml:"upstream"`
	Converter ConverterConfig `yaml:"converter"`
	Reference ReferenceConfig `yaml:"reference"`
	Cache     CacheConfig     `yaml:"cache"`
	Logging   LoggingConfig   `yaml:"logging"`
}
