package config

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port        string   `env:"PORT,         default=8000"`
	Env         string   `env:"ENV,          default=development"`
	LogLevel    string   `env:"LOG_LEVEL,    default=info"`
	FrontendURL []string `env:"FRONTEND_URL, default=http://localhost:3000"`
	BcryptCost  int      `env:"BCRYPT_COST,  default=10"`

	Mongo     MongoConfig
	Redis     RedisConfig
	ML        MLConfig
	Upload    UploadConfig
	RateLimit RateLimitConfig
	Reports   ReportsConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=emotionAI"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,      default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,        default=0"`
	PoolSize int    `env:"REDIS_POOL_SIZE, default=10"`
}

type MLConfig struct {
	URL         string        `env:"ML_SERVICE_URL,          default=http://127.0.0.1:5000"`
	Timeout     time.Duration `env:"ML_SERVICE_TIMEOUT,      default=60s"`
	TokenSecret string        `env:"ML_SERVICE_TOKEN_SECRET"`
}

type UploadConfig struct {
	Dir           string        `env:"UPLOAD_DIR,            default=uploads"`
	MaxBytes      int64         `env:"UPLOAD_MAX_BYTES,      default=10485760"`
	SweepInterval time.Duration `env:"UPLOAD_SWEEP_INTERVAL, default=10m"`
	MaxAge        time.Duration `env:"UPLOAD_MAX_AGE,        default=1h"`
}

type RateLimitConfig struct {
	Limit  int           `env:"AUTH_RATE_LIMIT,  default=20"`
	Window time.Duration `env:"AUTH_RATE_WINDOW, default=1m"`
	// TrustedProxies lists CIDRs whose X-Forwarded-For is honoured. Empty
	// means client addresses come from the TCP peer only.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
}

type ReportsConfig struct {
	CacheTTL time.Duration `env:"REPORT_CACHE_TTL, default=30s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.Upload.MaxBytes <= 0 {
		return nil, fmt.Errorf("load config: UPLOAD_MAX_BYTES must be positive")
	}
	if _, err := cfg.RateLimit.ProxyRanges(); err != nil {
		return nil, fmt.Errorf("load config: TRUSTED_PROXIES: %w", err)
	}
	return &cfg, nil
}

// IsDevelopment reports whether the service runs with developer defaults.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// AllowedOrigins returns the CORS allow-list with blanks dropped and
// trailing slashes removed.
func (c *Config) AllowedOrigins() []string {
	out := make([]string, 0, len(c.FrontendURL))
	for _, o := range c.FrontendURL {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}

// ProxyRanges parses TrustedProxies. A bare IP is treated as a single-host range.
func (c RateLimitConfig) ProxyRanges() ([]*net.IPNet, error) {
	out := make([]*net.IPNet, 0, len(c.TrustedProxies))
	for _, raw := range c.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if !strings.Contains(raw, "/") {
			ip := net.ParseIP(raw)
			if ip == nil {
				return nil, fmt.Errorf("invalid address %q", raw)
			}
			bits := 128
			if ip.To4() != nil {
				ip, bits = ip.To4(), 32
			}
			out = append(out, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, ipNet, err := net.ParseCIDR(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, ipNet)
	}
	return out, nil
}
