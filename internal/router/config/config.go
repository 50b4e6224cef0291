package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

// Config - структура для хранения конфигураций приложения
type Config struct {
	AppEnv        string `mapstructure:"APP_ENV"`
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	PublicBaseURL string `mapstructure:"PUBLIC_BASE_URL"`

	PostgresConn     string `mapstructure:"POSTGRES_CONN"`
	PostgresUser     string `mapstructure:"POSTGRES_USERNAME"`
	PostgresPass     string `mapstructure:"POSTGRES_PASSWORD"`
	PostgresHost     string `mapstructure:"POSTGRES_HOST"`
	PostgresPort     string `mapstructure:"POSTGRES_PORT"`
	PostgresDB       string `mapstructure:"POSTGRES_DATABASE"`
	PostgresMaxConns int32  `mapstructure:"POSTGRES_MAX_CONNS"`
	MigrationURL     string `mapstructure:"MIGRATION_URL"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	KafkaBrokers       []string `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic         string   `mapstructure:"KAFKA_TOPIC"`
	RabbitMQURL        string   `mapstructure:"RABBITMQ_URL"`
	NotificationsQueue string   `mapstructure:"NOTIFICATIONS_QUEUE"`

	JWTSecret      string        `mapstructure:"JWT_SECRET"`
	AccessTokenTTL time.Duration `mapstructure:"ACCESS_TOKEN_TTL"`
	RateLimitRPS   int           `mapstructure:"RATE_LIMIT_RPS"`
	TrustedProxies []string      `mapstructure:"TRUSTED_PROXIES"`

	StoragePath  string        `mapstructure:"STORAGE_PATH"`
	SignedURLTTL time.Duration `mapstructure:"SIGNED_URL_TTL"`

	QuoteTTL            time.Duration `mapstructure:"QUOTE_TTL"`
	QuoteExpirySchedule string        `mapstructure:"QUOTE_EXPIRY_SCHEDULE"`
	MarketplaceCacheTTL time.Duration `mapstructure:"MARKETPLACE_CACHE_TTL"`

	OutboxPollInterval time.Duration `mapstructure:"OUTBOX_POLL_INTERVAL"`
	OutboxBatchSize    int           `mapstructure:"OUTBOX_BATCH_SIZE"`
	OutboxMaxAttempts  int           `mapstructure:"OUTBOX_MAX_ATTEMPTS"`

	HandlerTimeout  time.Duration `mapstructure:"HANDLER_TIMEOUT"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`

	LogLevel     string `mapstructure:"LOG_LEVEL"`
	LogDirectory string `mapstructure:"LOG_DIRECTORY"`
}

var defaults = map[string]any{
	"APP_ENV":               "local",
	"SERVER_ADDRESS":        "0.0.0.0:8080",
	"PUBLIC_BASE_URL":       "http://localhost:8080",
	"POSTGRES_CONN":         "",
	"POSTGRES_USERNAME":     "",
	"POSTGRES_PASSWORD":     "",
	"POSTGRES_HOST":         "",
	"POSTGRES_PORT":         "",
	"POSTGRES_DATABASE":     "",
	"POSTGRES_MAX_CONNS":    20,
	"MIGRATION_URL":         "file://migrations",
	"REDIS_ADDR":            "localhost:6379",
	"REDIS_PASSWORD":        "",
	"REDIS_DB":              0,
	"KAFKA_BROKERS":         "",
	"KAFKA_TOPIC":           "freight.events",
	"RABBITMQ_URL":          "",
	"NOTIFICATIONS_QUEUE":   "freight.notifications",
	"JWT_SECRET":            "",
	"ACCESS_TOKEN_TTL":      "24h",
	"RATE_LIMIT_RPS":        50,
	"TRUSTED_PROXIES":       "",
	"STORAGE_PATH":          "storage",
	"SIGNED_URL_TTL":        "15m",
	"QUOTE_TTL":             "72h",
	"QUOTE_EXPIRY_SCHEDULE": "@every 1m",
	"MARKETPLACE_CACHE_TTL": "30s",
	"OUTBOX_POLL_INTERVAL":  "2s",
	"OUTBOX_BATCH_SIZE":     50,
	"OUTBOX_MAX_ATTEMPTS":   5,
	"HANDLER_TIMEOUT":       "5s",
	"SHUTDOWN_TIMEOUT":      "15s",
	"LOG_LEVEL":             "info",
	"LOG_DIRECTORY":         "",
}

// LoadConfig загружает конфигурацию из файла app.env и переменных окружения.
func LoadConfig(path string) (cfg Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	if err = v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate проверяет обязательные параметры.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.PostgresDSN() == "" {
		return errors.New("POSTGRES_CONN or POSTGRES_HOST is required")
	}
	if c.HandlerTimeout <= 0 || c.ShutdownTimeout <= 0 {
		return errors.New("HANDLER_TIMEOUT and SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// PostgresDSN возвращает POSTGRES_CONN, а если он пуст - строку, собранную из
// POSTGRES_HOST, POSTGRES_PORT, POSTGRES_USERNAME, POSTGRES_PASSWORD и POSTGRES_DATABASE.
func (c Config) PostgresDSN() string {
	if c.PostgresConn != "" {
		return c.PostgresConn
	}
	if c.PostgresHost == "" {
		return ""
	}
	port := c.PostgresPort
	if port == "" {
		port = "5432"
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.PostgresUser, c.PostgresPass),
		Host:   net.JoinHostPort(c.PostgresHost, port),
		Path:   "/" + c.PostgresDB,
	}
	return u.String()
}

// IsLocal сообщает, запущен ли сервис в локальном окружении.
func (c Config) IsLocal() bool {
	return c.AppEnv == "local"
}
