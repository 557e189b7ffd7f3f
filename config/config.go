package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	Log      LogConfig
	Sync     SyncConfig
	Location *time.Location
}

type ServerConfig struct {
	Port                 string
	GinMode              string
	CORSOrigin           string
	RateLimitRPS         int
	LoginRateLimitPerMin int
}

type DatabaseConfig struct {
	Driver string
	DSN    string
}

type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	AdminEmail    string
	AdminPassword string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RabbitMQConfig struct {
	URL      string
	Exchange string
}

type LogConfig struct {
	Level  string
	Format string
}

// SyncConfig selects the derived-state policies.
type SyncConfig struct {
	TableStatusPolicy    string
	BillPriceSource      string
	FreeTableOnAnyDelete bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("CORS_ORIGIN", "http://127.0.0.1:5500")
	v.SetDefault("RATE_LIMIT_RPS", 50)
	v.SetDefault("LOGIN_RATE_LIMIT_PER_MIN", 5)

	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_DSN", "frontdesk.db")

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD", "")

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "frontdesk")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("TIMEZONE", "UTC")

	v.SetDefault("TABLE_STATUS_POLICY", "strict")
	v.SetDefault("BILL_PRICE_SOURCE", "snapshot")
	v.SetDefault("FREE_TABLE_ON_ANY_DELETE", true)
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	ttl, err := time.ParseDuration(v.GetString("JWT_TTL"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}

	loc, err := time.LoadLocation(v.GetString("TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:                 v.GetString("PORT"),
			GinMode:              v.GetString("GIN_MODE"),
			CORSOrigin:           v.GetString("CORS_ORIGIN"),
			RateLimitRPS:         v.GetInt("RATE_LIMIT_RPS"),
			LoginRateLimitPerMin: v.GetInt("LOGIN_RATE_LIMIT_PER_MIN"),
		},
		Database: DatabaseConfig{
			Driver: strings.ToLower(v.GetString("DB_DRIVER")),
			DSN:    v.GetString("DB_DSN"),
		},
		Auth: AuthConfig{
			JWTSecret:     v.GetString("JWT_SECRET"),
			TokenTTL:      ttl,
			AdminEmail:    v.GetString("ADMIN_EMAIL"),
			AdminPassword: v.GetString("ADMIN_PASSWORD"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      v.GetString("RABBITMQ_URL"),
			Exchange: v.GetString("RABBITMQ_EXCHANGE"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Sync: SyncConfig{
			TableStatusPolicy:    strings.ToLower(v.GetString("TABLE_STATUS_POLICY")),
			BillPriceSource:      strings.ToLower(v.GetString("BILL_PRICE_SOURCE")),
			FreeTableOnAnyDelete: v.GetBool("FREE_TABLE_ON_ANY_DELETE"),
		},
		Location: loc,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	switch c.Sync.TableStatusPolicy {
	case "strict", "binary":
	default:
		return fmt.Errorf("unsupported TABLE_STATUS_POLICY %q", c.Sync.TableStatusPolicy)
	}
	switch c.Sync.BillPriceSource {
	case "snapshot", "live":
	default:
		return fmt.Errorf("unsupported BILL_PRICE_SOURCE %q", c.Sync.BillPriceSource)
	}
	if c.Server.RateLimitRPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive")
	}
	if c.Server.GinMode == "release" && c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when GIN_MODE is release")
	}
	return nil
}

// Default returns the configuration used when no environment is present.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := fromViper(v)
	if err != nil {
		panic(err)
	}
	return cfg
}
