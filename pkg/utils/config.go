package utils

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	AMQP        AMQPConfig
	Reservation ReservationConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host           string
	Port           string
	Name           string
	User           string
	Password       string
	MaxConns       int32
	MigrationsPath string
	MigrateOnStart bool
}

type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	TLS        bool
	SeatMapTTL time.Duration
}

type AMQPConfig struct {
	URL      string
	Exchange string
}

type ReservationConfig struct {
	LockTTL        time.Duration
	PaymentTimeout time.Duration
	SweepInterval  time.Duration
	SweepBatchSize int
}

// LoadConfig reads .env when it exists; environment variables always win.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "cinema-reservation")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("MIGRATE_ON_START", false)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_TLS", false)
	v.SetDefault("SEAT_MAP_CACHE_TTL", "30s")
	v.SetDefault("AMQP_URL", "")
	v.SetDefault("AMQP_EXCHANGE", "reservation.events")
	v.SetDefault("LOCK_TTL", "10m")
	v.SetDefault("PAYMENT_TIMEOUT", "15m")
	v.SetDefault("SWEEP_INTERVAL", "30s")
	v.SetDefault("SWEEP_BATCH_SIZE", 100)

	if _, err := os.Stat(".env"); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:           v.GetString("DB_HOST"),
			Port:           v.GetString("DB_PORT"),
			Name:           v.GetString("DB_NAME"),
			User:           v.GetString("DB_USER"),
			Password:       v.GetString("DB_PASS"),
			MaxConns:       v.GetInt32("DB_MAX_CONNS"),
			MigrationsPath: v.GetString("MIGRATIONS_PATH"),
			MigrateOnStart: v.GetBool("MIGRATE_ON_START"),
		},
		Redis: RedisConfig{
			Addr:       v.GetString("REDIS_ADDR"),
			Password:   v.GetString("REDIS_PASSWORD"),
			DB:         v.GetInt("REDIS_DB"),
			TLS:        v.GetBool("REDIS_TLS"),
			SeatMapTTL: v.GetDuration("SEAT_MAP_CACHE_TTL"),
		},
		AMQP: AMQPConfig{
			URL:      v.GetString("AMQP_URL"),
			Exchange: v.GetString("AMQP_EXCHANGE"),
		},
		Reservation: ReservationConfig{
			LockTTL:        v.GetDuration("LOCK_TTL"),
			PaymentTimeout: v.GetDuration("PAYMENT_TIMEOUT"),
			SweepInterval:  v.GetDuration("SWEEP_INTERVAL"),
			SweepBatchSize: v.GetInt("SWEEP_BATCH_SIZE"),
		},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// validate rejects values that would break locking or the sweeper at runtime.
func (c *Config) validate() error {
	var errs error
	positive := func(key string, d time.Duration) {
		if d <= 0 {
			errs = errors.CombineErrors(errs, errors.Newf("%s must be positive, got %s", key, d))
		}
	}

	positive("LOCK_TTL", c.Reservation.LockTTL)
	positive("PAYMENT_TIMEOUT", c.Reservation.PaymentTimeout)
	positive("SWEEP_INTERVAL", c.Reservation.SweepInterval)
	if c.Reservation.SweepBatchSize <= 0 {
		errs = errors.CombineErrors(errs, errors.Newf("SWEEP_BATCH_SIZE must be positive, got %d", c.Reservation.SweepBatchSize))
	}
	if c.Redis.SeatMapTTL < 0 {
		errs = errors.CombineErrors(errs, errors.Newf("SEAT_MAP_CACHE_TTL must not be negative, got %s", c.Redis.SeatMapTTL))
	}

	return errors.Wrap(errs, "invalid config")
}
