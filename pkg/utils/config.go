package utils

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Security SecurityConfig
	Redis    RedisConfig
	Queue    QueueConfig
}

type AppConfig struct {
	Name       string
	Debug      bool
	LogPath    string
	HealthAddr string // empty disables the health endpoint
	SeedDemo   bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type SecurityConfig struct {
	BcryptCost int
}

type RedisConfig struct {
	Addr     string // empty disables the lookup cache
	Password string
	DB       int
	TTL      time.Duration
}

type QueueConfig struct {
	URL          string // empty disables receipt events
	ReceiptQueue string
}

// LoadConfig reads .env when present, then lets the environment override it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	v.SetDefault("APP_NAME", "cinema-ticketing")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("HEALTH_ADDR", "")
	v.SetDefault("SEED_DEMO", false)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 4)
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "10m")
	v.SetDefault("RECEIPT_QUEUE", "receipt.issued")

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, err
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:       v.GetString("APP_NAME"),
			Debug:      v.GetBool("DEBUG"),
			LogPath:    v.GetString("LOG_PATH"),
			HealthAddr: v.GetString("HEALTH_ADDR"),
			SeedDemo:   v.GetBool("SEED_DEMO"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Security: SecurityConfig{
			BcryptCost: v.GetInt("BCRYPT_COST"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TTL:      v.GetDuration("CACHE_TTL"),
		},
		Queue: QueueConfig{
			URL:          v.GetString("AMQP_URL"),
			ReceiptQueue: v.GetString("RECEIPT_QUEUE"),
		},
	}

	if config.Database.Name == "" || config.Database.User == "" {
		return nil, errors.New("DB_NAME and DB_USER are required")
	}

	return config, nil
}
