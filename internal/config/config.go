package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type ServerConfig struct {
	Port    string `mapstructure:"PORT"`
	GinMode string `mapstructure:"GIN_MODE"`
	// TrustedProxies lists the IPs or CIDRs allowed to set X-Forwarded-For.
	// Empty trusts none and the client IP is the socket peer.
	TrustedProxies string `mapstructure:"TRUSTED_PROXIES"`
}

type DatabaseConfig struct {
	Driver        string `mapstructure:"DB_DRIVER"`
	PostgresURL   string `mapstructure:"POSTGRES_URL"`
	MongoURI      string `mapstructure:"MONGO_URI"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"REDIS_ADDR"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type LLMConfig struct {
	Provider      string        `mapstructure:"LLM_PROVIDER"`
	GeminiAPIKey  string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel   string        `mapstructure:"GEMINI_MODEL"`
	OpenAIAPIKey  string        `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel   string        `mapstructure:"OPENAI_MODEL"`
	OpenAIBaseURL string        `mapstructure:"OPENAI_BASE_URL"`
	Timeout       time.Duration `mapstructure:"LLM_TIMEOUT"`
}

type MapsConfig struct {
	APIKey             string `mapstructure:"GOOGLE_MAPS_API_KEY"`
	BaseURL            string `mapstructure:"GOOGLE_MAPS_BASE_URL"`
	GeocodeConcurrency int    `mapstructure:"GEOCODE_CONCURRENCY"`
}

type CurrencyConfig struct {
	APIKey  string `mapstructure:"EXCHANGE_RATE_API_KEY"`
	BaseURL string `mapstructure:"EXCHANGE_RATE_BASE_URL"`
}

type AuthConfig struct {
	Provider          string `mapstructure:"AUTH_PROVIDER"`
	FirebaseProjectID string `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseCertsURL  string `mapstructure:"FIREBASE_CERTS_URL"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
}

type CORSConfig struct {
	AllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

type RateLimitConfig struct {
	Requests int64         `mapstructure:"RATE_LIMIT_REQUESTS"`
	Window   time.Duration `mapstructure:"RATE_LIMIT_WINDOW"`
	MaxKeys  int           `mapstructure:"RATE_LIMIT_MAX_KEYS"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:",squash"`
	Database  DatabaseConfig  `mapstructure:",squash"`
	Redis     RedisConfig     `mapstructure:",squash"`
	LLM       LLMConfig       `mapstructure:",squash"`
	Maps      MapsConfig      `mapstructure:",squash"`
	Currency  CurrencyConfig  `mapstructure:",squash"`
	Auth      AuthConfig      `mapstructure:",squash"`
	CORS      CORSConfig      `mapstructure:",squash"`
	RateLimit RateLimitConfig `mapstructure:",squash"`

	HTTPClientTimeout time.Duration `mapstructure:"HTTP_CLIENT_TIMEOUT"`
}

var defaults = map[string]interface{}{
	"PORT":                   "8080",
	"GIN_MODE":               "release",
	"TRUSTED_PROXIES":        "",
	"DB_DRIVER":              "postgres",
	"POSTGRES_URL":           "",
	"MONGO_URI":              "",
	"MONGO_DATABASE":         "tripgenie",
	"REDIS_ADDR":             "",
	"REDIS_PASSWORD":         "",
	"REDIS_DB":               0,
	"LLM_PROVIDER":           "gemini",
	"GEMINI_API_KEY":         "",
	"GEMINI_MODEL":           "gemini-2.5-flash",
	"OPENAI_API_KEY":         "",
	"OPENAI_MODEL":           "gpt-4o-mini",
	"OPENAI_BASE_URL":        "",
	"LLM_TIMEOUT":            "60s",
	"GOOGLE_MAPS_API_KEY":    "",
	"GOOGLE_MAPS_BASE_URL":   "https://maps.googleapis.com/maps/api",
	"GEOCODE_CONCURRENCY":    8,
	"EXCHANGE_RATE_API_KEY":  "",
	"EXCHANGE_RATE_BASE_URL": "https://v6.exchangerate-api.com/v6",
	"AUTH_PROVIDER":          "firebase",
	"FIREBASE_PROJECT_ID":    "",
	"FIREBASE_CERTS_URL":     "",
	"JWT_SECRET":             "",
	"CORS_ALLOWED_ORIGINS":   "*",
	"RATE_LIMIT_REQUESTS":    10,
	"RATE_LIMIT_WINDOW":      "60s",
	"RATE_LIMIT_MAX_KEYS":    10000,
	"HTTP_CLIENT_TIMEOUT":    "15s",
}

// Load reads .env files when present, then the process environment.
func Load(logger *zap.Logger) (*Config, error) {
	for _, file := range []string{".env", "../.env"} {
		if err := godotenv.Load(file); err == nil {
			logger.Info("loaded env file", zap.String("file", file))
			break
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, w := range cfg.Warnings() {
		logger.Warn(w)
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	c.Auth.Provider = strings.ToLower(strings.TrimSpace(c.Auth.Provider))
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	var errs []error

	switch c.LLM.Provider {
	case "gemini":
		if c.LLM.GeminiAPIKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is required when LLM_PROVIDER=gemini"))
		}
	case "openai":
		if c.LLM.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required when LLM_PROVIDER=openai"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported LLM_PROVIDER %q", c.LLM.Provider))
	}

	switch c.Database.Driver {
	case "postgres":
		if c.Database.PostgresURL == "" {
			errs = append(errs, errors.New("POSTGRES_URL is required when DB_DRIVER=postgres"))
		}
	case "mongo":
		if c.Database.MongoURI == "" {
			errs = append(errs, errors.New("MONGO_URI is required when DB_DRIVER=mongo"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver))
	}

	switch c.Auth.Provider {
	case "firebase":
		if c.Auth.FirebaseProjectID == "" {
			errs = append(errs, errors.New("FIREBASE_PROJECT_ID is required when AUTH_PROVIDER=firebase"))
		}
	case "jwt":
		if c.Auth.JWTSecret == "" {
			errs = append(errs, errors.New("JWT_SECRET is required when AUTH_PROVIDER=jwt"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported AUTH_PROVIDER %q", c.Auth.Provider))
	}

	if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive"))
	}
	for _, proxy := range c.TrustedProxies() {
		if net.ParseIP(proxy) == nil {
			if _, _, err := net.ParseCIDR(proxy); err != nil {
				errs = append(errs, fmt.Errorf("TRUSTED_PROXIES entry %q is not an IP or CIDR", proxy))
			}
		}
	}
	return errors.Join(errs...)
}

// Warnings lists optional integrations that are not configured.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.Maps.APIKey == "" {
		warnings = append(warnings, "GOOGLE_MAPS_API_KEY is not set; find-agencies and geocode will fail")
	}
	if c.Currency.APIKey == "" {
		warnings = append(warnings, "EXCHANGE_RATE_API_KEY is not set; budgets stay in the traveler's currency")
	}
	if c.Redis.Addr == "" {
		warnings = append(warnings, "REDIS_ADDR is not set; rate limits are per instance")
	}
	return warnings
}

func (c *Config) AllowedOrigins() []string {
	return splitList(c.CORS.AllowedOrigins)
}

func (c *Config) TrustedProxies() []string {
	return splitList(c.Server.TrustedProxies)
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Server.Port, ":")
}
