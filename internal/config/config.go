package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `validate:"required,oneof=development stage production"`
	Http Http

	Cors CORS `validate:"required"`

	Storage  Storage  `validate:"required"`
	Postgres Postgres `validate:"required"`
	SQLite   SQLite   `validate:"required"`

	Cache Cache `validate:"required"`
	Redis Redis `validate:"required"`

	Kafka Kafka `validate:"required"`

	Orders Orders `validate:"required"`
}

type Http struct {
	Host string `validate:"required,hostname|ip"`
	Port string `validate:"required,gt=0,lte=65535"`
}

type Storage struct {
	Driver string `validate:"required,oneof=postgres sqlite"`
}

type Kafka struct {
	Enabled bool

	GroupID string   `validate:"required"`
	Brokers []string `validate:"required,min=1,dive,hostname_port"`
	Topic   string   `validate:"required"`

	ReaderMaxWait time.Duration `validate:"gte=0"`
	BatchTimeout  time.Duration `validate:"gte=0"`
}

type Postgres struct {
	Host     string `validate:"required,hostname|ip"`
	Port     int    `validate:"required,gt=0,lte=65535"`
	DBName   string `validate:"required"`
	User     string `validate:"required"`
	Password string `validate:"required"`

	SSLMode string `validate:"required,oneof=disable require verify-ca verify-full"`

	MaxOpenConns    int           `validate:"gte=1"`
	MaxIdleConns    int           `validate:"gte=0"`
	ConnMaxLifetime time.Duration `validate:"gte=0"`
}

type SQLite struct {
	Path string `validate:"required"`
}

type Cache struct {
	Driver   string        `validate:"required,oneof=lru redis"`
	Capacity int           `validate:"gte=1"`
	TTL      time.Duration `validate:"gt=0"`
}

type Redis struct {
	Addr     string `validate:"required,hostname_port"`
	Password string
	DB       int    `validate:"gte=0"`
	Prefix   string `validate:"required"`
}

type Orders struct {
	DefaultPageSize int `validate:"gte=1,ltefield=MaxPageSize"`
	MaxPageSize     int `validate:"gte=1"`

	// количество попыток вставки при коллизии номера заказа
	NumberAttempts int            `validate:"gte=1,lte=20"`
	TimeZone       *time.Location `validate:"required"`
}

type CORS struct {
	AllowedOrigins []string `validate:"required,min=1,dive,url"`
}

func New() Config {
	return Config{
		Env: env("ENV", "development"),

		Http: Http{
			Host: env("HOST", "localhost"),
			Port: env("PORT", "8080"),
		},

		Cors: CORS{
			AllowedOrigins: strings.Split(env("ALLOWED_CORS_ORIGINS", "http://localhost:3000"), ","),
		},

		Storage: Storage{
			Driver: env("STORAGE_DRIVER", "postgres"),
		},

		Postgres: Postgres{
			Port:     envInt("POSTGRES_PORT", 5432),
			Host:     env("POSTGRES_HOST", "localhost"),
			DBName:   env("POSTGRES_DB", "orders"),
			User:     env("POSTGRES_USER", ""),
			Password: env("POSTGRES_PASSWORD", ""),

			SSLMode: env("POSTGRES_SSL_MODE", "disable"),

			MaxOpenConns:    envInt("POSTGRES_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("POSTGRES_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: envDuration("POSTGRES_CONN_MAX_LIFETIME", 5*time.Minute),
		},

		SQLite: SQLite{
			Path: env("SQLITE_PATH", "orders.db"),
		},

		Cache: Cache{
			Driver:   env("CACHE_DRIVER", "lru"),
			Capacity: envInt("CACHE_CAPACITY", 1000),
			TTL:      envDuration("CACHE_TTL", 10*time.Minute),
		},

		Redis: Redis{
			Addr:     env("REDIS_ADDR", "localhost:6379"),
			Password: env("REDIS_PASSWORD", ""),
			DB:       envInt("REDIS_DB", 0),
			Prefix:   env("REDIS_PREFIX", "orders:"),
		},

		Kafka: Kafka{
			Enabled: envBool("KAFKA_ENABLED", true),
			GroupID: env("KAFKA_GROUP_ID", "order-service"),
			Topic:   env("KAFKA_TOPIC", "order-requests"),
			Brokers: strings.Split(env("KAFKA_BROKERS", "localhost:9092"), ","),

			ReaderMaxWait: envDuration("KAFKA_READER_MAX_WAIT", 10*time.Millisecond),
			BatchTimeout:  envDuration("KAFKA_BATCH_TIMEOUT", 10*time.Millisecond),
		},

		Orders: Orders{
			DefaultPageSize: envInt("ORDERS_DEFAULT_PAGE_SIZE", 20),
			MaxPageSize:     envInt("ORDERS_MAX_PAGE_SIZE", 100),
			NumberAttempts:  envInt("ORDER_NUMBER_ATTEMPTS", 5),
			TimeZone:        envLocation("ORDER_NUMBER_TZ", time.UTC),
		},
	}
}

// Validate skips sections of backends that are switched off.
func (c Config) Validate() error {
	validate := validator.New()

	var skip []string
	if c.Storage.Driver != "postgres" {
		skip = append(skip, "Postgres")
	}
	if c.Storage.Driver != "sqlite" {
		skip = append(skip, "SQLite")
	}
	if c.Cache.Driver != "redis" {
		skip = append(skip, "Redis")
	}
	if !c.Kafka.Enabled {
		skip = append(skip, "Kafka")
	}

	if len(skip) == 0 {
		return validate.Struct(c)
	}
	return validate.StructExcept(c, skip...)
}

func env(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}

func envLocation(key string, fallback *time.Location) *time.Location {
	if value, ok := os.LookupEnv(key); ok {
		loc, err := time.LoadLocation(value)
		if err == nil {
			return loc
		}
	}
	return fallback
}
