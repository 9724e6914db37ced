package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

const envPrefix = "hospiflow"

type Config struct {
	Server    ServerConfig    `mapstructure:"server" envconfig:"server"`
	Auth      AuthConfig      `mapstructure:"auth" envconfig:"auth"`
	Session   SessionConfig   `mapstructure:"session" envconfig:"session"`
	Redis     RedisConfig     `mapstructure:"redis" envconfig:"redis"`
	Database  DatabaseConfig  `mapstructure:"database" envconfig:"database"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" envconfig:"rate_limit"`
	CORS      CORSConfig      `mapstructure:"cors" envconfig:"cors"`
	Jobs      JobsConfig      `mapstructure:"jobs" envconfig:"jobs"`
	Log       LogConfig       `mapstructure:"log" envconfig:"log"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port" envconfig:"port"`
	Mode            string        `mapstructure:"mode" envconfig:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" envconfig:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" envconfig:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" envconfig:"shutdown_timeout"`
}

type AuthConfig struct {
	JWTSecret  string        `mapstructure:"jwt_secret" envconfig:"jwt_secret"`
	TokenTTL   time.Duration `mapstructure:"token_ttl" envconfig:"token_ttl"`
	BcryptCost int           `mapstructure:"bcrypt_cost" envconfig:"bcrypt_cost"`
}

type SessionConfig struct {
	// Backend is one of memory, redis or postgres.
	Backend string        `mapstructure:"backend" envconfig:"backend"`
	TTL     time.Duration `mapstructure:"ttl" envconfig:"ttl"`
}

type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled" envconfig:"enabled"`
	URL          string        `mapstructure:"url" envconfig:"url"`
	MaxRetries   int           `mapstructure:"max_retries" envconfig:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff" envconfig:"retry_backoff"`
	PoolSize     int           `mapstructure:"pool_size" envconfig:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns" envconfig:"min_idle_conns"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host" envconfig:"host"`
	Port     int    `mapstructure:"port" envconfig:"port"`
	User     string `mapstructure:"user" envconfig:"user"`
	Password string `mapstructure:"password" envconfig:"password"`
	Name     string `mapstructure:"name" envconfig:"name"`
	SSLMode  string `mapstructure:"sslmode" envconfig:"sslmode"`
}

// DSN builds a lib/pq connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

type RateLimitConfig struct {
	LoginPerMinute int `mapstructure:"login_per_minute" envconfig:"login_per_minute"`
	LoginBurst     int `mapstructure:"login_burst" envconfig:"login_burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" envconfig:"allowed_origins"`
}

type JobsConfig struct {
	LowStockEnabled  bool   `mapstructure:"low_stock_enabled" envconfig:"low_stock_enabled"`
	LowStockSchedule string `mapstructure:"low_stock_schedule" envconfig:"low_stock_schedule"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" envconfig:"level"`
	Pretty bool   `mapstructure:"pretty" envconfig:"pretty"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("auth.jwt_secret", "change-me-in-production")
	v.SetDefault("auth.token_ttl", 12*time.Hour)
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("session.backend", "memory")
	v.SetDefault("session.ttl", 12*time.Hour)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("redis.max_retries", 3)
	v.SetDefault("redis.retry_backoff", 100*time.Millisecond)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "hospiflow")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("rate_limit.login_per_minute", 10)
	v.SetDefault("rate_limit.login_burst", 3)

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:5173"})

	v.SetDefault("jobs.low_stock_enabled", true)
	v.SetDefault("jobs.low_stock_schedule", "0 7 * * *")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
}

// LoadConfig reads config.yml (optional) and applies HOSPIFLOW_* environment
// overrides. A .env file in the working directory is loaded first when present.
// path may name a specific config file; empty means search the usual places.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/app/config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.Session.Backend) {
	case "memory", "redis", "postgres":
	default:
		return fmt.Errorf("invalid session backend %q", c.Session.Backend)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret must not be empty")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}
