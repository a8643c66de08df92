package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port            string        `env:"PORT,             default=8080"`
	Env             string        `env:"ENV,              default=development"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	StoreBackend    string        `env:"STORE_BACKEND,    default=mongo"`
	CORSOrigins     []string      `env:"CORS_ORIGINS,     default=http://localhost:3000,http://127.0.0.1:3000"`
	TrustProxy      bool          `env:"TRUST_PROXY,      default=false"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT,  default=15s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`
	JanitorInterval time.Duration `env:"JANITOR_INTERVAL, default=1m"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	JWTSecret            string        `env:"JWT_SECRET"`
	JWTIssuer            string        `env:"JWT_ISSUER,             default=soundwolves"`
	AccessTokenTTL       time.Duration `env:"ACCESS_TOKEN_TTL,       default=30m"`
	RefreshTokenTTL      time.Duration `env:"REFRESH_TOKEN_TTL,      default=168h"`
	LockoutThreshold     int           `env:"LOCKOUT_THRESHOLD,      default=5"`
	LockoutDuration      time.Duration `env:"LOCKOUT_DURATION,       default=15m"`
	RefreshRegistryCheck bool          `env:"REFRESH_REGISTRY_CHECK, default=true"`
	BcryptCost           int           `env:"BCRYPT_COST,            default=10"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=soundwolves"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// IsProduction reports whether the service runs with production hardening.
func (c *Config) IsProduction() bool { return c.Env == EnvProduction }

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from l and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case StoreMongo, StoreMemory:
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", StoreMongo, StoreMemory, c.StoreBackend)
	}
	if c.Auth.AccessTokenTTL <= 0 || c.Auth.RefreshTokenTTL <= 0 {
		return fmt.Errorf("token TTLs must be positive")
	}
	if c.Auth.AccessTokenTTL >= c.Auth.RefreshTokenTTL {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be shorter than REFRESH_TOKEN_TTL")
	}
	if c.Auth.LockoutThreshold <= 0 || c.Auth.LockoutDuration <= 0 {
		return fmt.Errorf("lockout threshold and duration must be positive")
	}
	return nil
}
