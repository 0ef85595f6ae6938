package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	Version  string `env:"VERSION,   default=dev"`

	JWTSecret  string        `env:"JWT_SECRET, required"`
	SessionTTL time.Duration `env:"SESSION_TTL, default=24h"`

	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS, default=*"`

	Admin   AdminConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Factory FactoryConfig
}

// AdminConfig seeds an admin account at startup when Email is set.
type AdminConfig struct {
	Name     string `env:"ADMIN_NAME, default=admin"`
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=pizza"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type FactoryConfig struct {
	URL     string        `env:"FACTORY_URL,     default=https://pizza-factory.cs329.click"`
	APIKey  string        `env:"FACTORY_API_KEY"`
	Timeout time.Duration `env:"FACTORY_TIMEOUT, default=30s"`
}

// Public is the subset of configuration that is safe to publish.
type Public struct {
	Factory string `json:"factory"`
	DB      string `json:"db"`
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return FromLookuper(ctx, envconfig.OsLookuper())
}

// FromLookuper builds a Config from an arbitrary variable source.
func FromLookuper(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Redacted returns the factory URL and the database host with credentials
// and query options removed.
func (c *Config) Redacted() Public {
	return Public{Factory: c.Factory.URL, DB: redactURI(c.Mongo.URI)}
}

func redactURI(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Host
}

func (c *Config) IsDevelopment() bool { return c.Env == "development" }
