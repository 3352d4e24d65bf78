package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultSessionKey is only meant for local development; production deployments
// must set DFA_SESSION_KEY.
const DefaultSessionKey = "dev-session-key-change-in-production"

// Config is the full process configuration.
type Config struct {
	Server    Server
	Denuncias Denuncias
	Session   Session
	Recent    Recent
	Redis     RedisConfig
	Log       Log
	Telemetry Telemetry
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `env:"DFA_ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"DFA_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"DFA_WRITE_TIMEOUT" envDefault:"30s"`
	RequestTimeout  time.Duration `env:"DFA_REQUEST_TIMEOUT" envDefault:"20s"`
	ShutdownTimeout time.Duration `env:"DFA_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	// ClientRate and ClientBurst throttle each client IP; zero disables.
	ClientRate  float64 `env:"DFA_CLIENT_RATE" envDefault:"10"`
	ClientBurst int     `env:"DFA_CLIENT_BURST" envDefault:"20"`
	// Timezone is the location dates are displayed in.
	Timezone string `env:"DFA_TIMEZONE" envDefault:"America/Mexico_City"`
	// TrustedProxies lists the proxy addresses or CIDRs whose
	// X-Forwarded-For and X-Real-IP headers name the client. Requests from
	// anywhere else are keyed on their socket address.
	TrustedProxies []string `env:"DFA_TRUSTED_PROXIES" envSeparator:","`
}

// Denuncias configures where complaint records come from.
type Denuncias struct {
	// URL of the upstream open-data endpoint. Empty serves the embedded
	// demonstration dataset.
	URL     string        `env:"DFA_DENUNCIAS_URL"`
	Timeout time.Duration `env:"DFA_DENUNCIAS_TIMEOUT" envDefault:"10s"`
	// RatePerSecond paces upstream calls; zero disables pacing.
	RatePerSecond float64 `env:"DFA_DENUNCIAS_RATE" envDefault:"5"`
	Burst         int     `env:"DFA_DENUNCIAS_BURST" envDefault:"5"`
	// CacheTTL keeps a fetched dataset for this long; zero fetches on every search.
	CacheTTL time.Duration `env:"DFA_DENUNCIAS_CACHE_TTL" envDefault:"0s"`
	// Fallback serves the demonstration dataset when the upstream fails.
	Fallback bool `env:"DFA_DENUNCIAS_FALLBACK" envDefault:"false"`
	// BreakerThreshold consecutive upstream failures make the fallback skip
	// the upstream for BreakerCooldown.
	BreakerThreshold int           `env:"DFA_DENUNCIAS_BREAKER_THRESHOLD" envDefault:"5"`
	BreakerCooldown  time.Duration `env:"DFA_DENUNCIAS_BREAKER_COOLDOWN" envDefault:"30s"`
}

// Session configures the login flag and cookies.
type Session struct {
	SigningKey    string        `env:"DFA_SESSION_KEY"`
	TTL           time.Duration `env:"DFA_SESSION_TTL" envDefault:"24h"`
	SecureCookies bool          `env:"DFA_SECURE_COOKIES" envDefault:"false"`
}

// Recent configures the recently viewed folios store.
type Recent struct {
	Max int           `env:"DFA_RECENT_MAX" envDefault:"5"`
	TTL time.Duration `env:"DFA_RECENT_TTL" envDefault:"720h"`
}

// RedisConfig configures the optional Redis backend. An empty URL keeps all
// state in process memory.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// Log configures the slog handler.
type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// Telemetry configures OpenTelemetry tracing. Nothing is exported until an
// OTLP endpoint is set.
type Telemetry struct {
	Enabled     bool    `env:"DFA_OTEL_ENABLED" envDefault:"true"`
	Endpoint    string  `env:"DFA_OTEL_ENDPOINT"`
	ServiceName string  `env:"DFA_OTEL_SERVICE_NAME" envDefault:"dataforall"`
	SampleRatio float64 `env:"DFA_OTEL_SAMPLE_RATIO" envDefault:"1"`
}

// Load reads an optional .env file and then parses the environment. Values
// already present in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Session.SigningKey == "" {
		cfg.Session.SigningKey = DefaultSessionKey
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values env parsing cannot express.
func (c *Config) Validate() error {
	if c.Recent.Max <= 0 || c.Recent.Max > 5 {
		return fmt.Errorf("DFA_RECENT_MAX must be between 1 and 5, got %d", c.Recent.Max)
	}
	if c.Denuncias.Timeout <= 0 {
		return fmt.Errorf("DFA_DENUNCIAS_TIMEOUT must be positive")
	}
	if c.Denuncias.CacheTTL < 0 {
		return fmt.Errorf("DFA_DENUNCIAS_CACHE_TTL cannot be negative")
	}
	if _, err := time.LoadLocation(c.Server.Timezone); err != nil {
		return fmt.Errorf("DFA_TIMEZONE: %w", err)
	}
	if _, err := c.Server.TrustedProxyPrefixes(); err != nil {
		return fmt.Errorf("DFA_TRUSTED_PROXIES: %w", err)
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("DFA_OTEL_SAMPLE_RATIO must be between 0 and 1, got %v", c.Telemetry.SampleRatio)
	}
	return nil
}

// TrustedProxyPrefixes parses TrustedProxies. A bare address is a single
// host prefix.
func (s Server) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, raw := range s.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.Contains(raw, "/") {
			p, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, err
			}
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, err
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}

// Location returns the display time zone. Validate guarantees it loads.
func (s Server) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// UsesDefaultSessionKey reports whether the development signing key is in use.
func (c *Config) UsesDefaultSessionKey() bool {
	return c.Session.SigningKey == DefaultSessionKey
}
