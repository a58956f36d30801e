// Package config manages environment variables.
//
// It reads variables from the `.env` file (when present), loads them
// into structured Go types, and validates that required values are
// present so the rest of the service can rely on them at runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide defaults for optional blocks (observability, ordering).
package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it is loaded into the
	// process environment before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read with the prefix RESTAURANT_.
	Keys are lowercased with the prefix removed, and "." nests them:

		RESTAURANT_SERVER.PORT        -> server.port        -> Config.Server.Port
		RESTAURANT_INTEGRATION.KAFKA_BROKERS=a:9092,b:9092  -> []string
*/

// EnvPrefix is the prefix every configuration variable must carry.
const EnvPrefix = "RESTAURANT_"

// ServiceName is the fixed name used in logs, traces and APM.
const ServiceName = "restaurant-backend"

// Config is the root configuration object for the application.
//
// Observability and Ordering are pointers because they are optional.
// If not provided, defaults are injected by LoadConfig.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Ordering      *OrderingConfig      `koanf:"ordering"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	// Env is one of local, development, staging, production.
	Env string `koanf:"env" validate:"required"`
}

// IsProduction reports whether cookies and logs should use production settings.
func (p Primary) IsProduction() bool {
	return p.Env == "production"
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// TrustedProxies lists the CIDRs or IPs of load balancers allowed to
	// set X-Forwarded-For. Empty means the socket peer is the client.
	TrustedProxies []string `koanf:"trusted_proxies"`
}

// TrustedProxyRanges parses TrustedProxies. A bare IP becomes a single
// host range.
func (s ServerConfig) TrustedProxyRanges() ([]*net.IPNet, error) {
	ranges := make([]*net.IPNet, 0, len(s.TrustedProxies))
	for _, raw := range s.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if !strings.Contains(raw, "/") {
			ip := net.ParseIP(raw)
			if ip == nil {
				return nil, fmt.Errorf("invalid trusted proxy %q", raw)
			}
			bits := 128
			if ip.To4() != nil {
				ip, bits = ip.To4(), 32
			}
			ranges = append(ranges, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, ipNet, err := net.ParseCIDR(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", raw, err)
		}
		ranges = append(ranges, ipNet)
	}
	return ranges, nil
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// DSN builds the postgres URL used by both the pool and the migrator.
func (d DatabaseConfig) DSN() string {
	return buildDSN(d)
}

// RedisConfig contains Redis connection details ("host:port").
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig stores authentication-related secrets and cookie policy.
type AuthConfig struct {
	// SecretKey is the Clerk secret key used to verify session tokens.
	SecretKey string `koanf:"secret_key" validate:"required"`

	// RealtimeSecret signs the short-lived websocket tickets.
	RealtimeSecret string `koanf:"realtime_secret" validate:"required,min=32"`

	// CookieDomain is optional; empty means host-only tenant cookies.
	CookieDomain string `koanf:"cookie_domain"`
}

// IntegrationConfig holds third-party provider credentials.
// Every provider is optional: an empty key disables the integration.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from"`

	VAPIDPublicKey  string `koanf:"vapid_public_key"`
	VAPIDPrivateKey string `koanf:"vapid_private_key"`
	VAPIDSubject    string `koanf:"vapid_subject"`

	KafkaBrokers []string `koanf:"kafka_brokers"`
	KafkaTopic   string   `koanf:"kafka_topic"`
}

// PushEnabled reports whether both VAPID keys are configured.
func (i IntegrationConfig) PushEnabled() bool {
	return i.VAPIDPublicKey != "" && i.VAPIDPrivateKey != ""
}

// KafkaEnabled reports whether domain events should be exported to Kafka.
func (i IntegrationConfig) KafkaEnabled() bool {
	return len(i.KafkaBrokers) > 0 && i.KafkaTopic != ""
}

// OrderingConfig tunes the public ordering/reservation endpoints.
type OrderingConfig struct {
	// RateLimit is requests per second allowed per client IP on public writes.
	RateLimit float64 `koanf:"rate_limit" validate:"gt=0"`
	// RateBurst is the token bucket size.
	RateBurst int `koanf:"rate_burst" validate:"gt=0"`
	// TenantCacheTTL is how long restaurant lookups by slug stay in Redis.
	TenantCacheTTL time.Duration `koanf:"tenant_cache_ttl" validate:"min=1s"`
	// NoShowGrace is how long after reserved_at a confirmed reservation
	// becomes a no-show.
	NoShowGrace time.Duration `koanf:"no_show_grace" validate:"min=1m"`
}

// DefaultOrderingConfig returns the values used when no ordering block is set.
func DefaultOrderingConfig() *OrderingConfig {
	return &OrderingConfig{
		RateLimit:      1,
		RateBurst:      5,
		TenantCacheTTL: 5 * time.Minute,
		NoShowGrace:    2 * time.Hour,
	}
}

// LoadConfig loads configuration from environment variables, validates it
// and applies defaults.
//
// Unlike a fatal-on-error loader, every failure is returned so the caller
// (the CLI) decides how to exit.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load initial env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if mainConfig.Ordering == nil {
		mainConfig.Ordering = DefaultOrderingConfig()
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment are forced so telemetry stays consistent.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Validate(); err != nil {
		return nil, err
	}

	return mainConfig, nil
}

// Validate runs the struct-tag validator and the custom observability rules.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := c.Server.TrustedProxyRanges(); err != nil {
		return fmt.Errorf("invalid server config: %w", err)
	}

	if c.Integration.KafkaTopic == "" && len(c.Integration.KafkaBrokers) > 0 {
		return fmt.Errorf("integration kafka_topic is required when kafka_brokers is set")
	}

	if c.Observability != nil {
		if err := c.Observability.Validate(); err != nil {
			return fmt.Errorf("invalid observability config: %w", err)
		}
	}

	return nil
}
