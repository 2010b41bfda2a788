package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/anonto42/heritage-feed/backend/pkg/logger"
)

type Config struct {
	Port      string
	Env       string
	Database  DatabaseConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       logger.Config
}

type DatabaseConfig struct {
	Driver       string // postgres or sqlite
	PostgresURL  string `mapstructure:"postgres_url"`
	SQLitePath   string `mapstructure:"sqlite_path"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

// MongoConfig is optional; an empty URI disables the activity log.
type MongoConfig struct {
	URI      string
	Database string
}

// RedisConfig is optional; an empty address disables the counter cache.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// Load reads .env (if present), an optional config.yaml and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("port", "8080")
	v.SetDefault("env", "development")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.postgres_url", "")
	v.SetDefault("database.sqlite_path", "heritage.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("mongo.uri", "")
	v.SetDefault("mongo.database", "heritage")
	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("rate_limit.rps", 5.0)
	v.SetDefault("rate_limit.burst", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("log.service_name", "heritage-feed")

	v.BindEnv("port", "PORT")
	v.BindEnv("env", "ENV")
	v.BindEnv("database.driver", "DB_DRIVER")
	v.BindEnv("database.postgres_url", "POSTGRES_URL")
	v.BindEnv("database.sqlite_path", "SQLITE_PATH")
	v.BindEnv("database.max_idle_conns", "DB_MAX_IDLE_CONNS")
	v.BindEnv("database.max_open_conns", "DB_MAX_OPEN_CONNS")
	v.BindEnv("mongo.uri", "MONGO_URI")
	v.BindEnv("mongo.database", "MONGO_DATABASE")
	v.BindEnv("redis.address", "REDIS_ADDRESS")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.db", "REDIS_DB")
	v.BindEnv("rate_limit.rps", "RATE_LIMIT_RPS")
	v.BindEnv("rate_limit.burst", "RATE_LIMIT_BURST")
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.pretty", "LOG_PRETTY")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	switch cfg.Database.Driver {
	case "postgres":
		if cfg.Database.PostgresURL == "" {
			return nil, fmt.Errorf("POSTGRES_URL must be set when DB_DRIVER=postgres")
		}
	case "sqlite":
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	return &cfg, nil
}
