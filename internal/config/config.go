package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	Log       LogConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Numbering NumberingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds access token verification settings. Tokens are issued by
// the external auth service.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RedisConfig holds the idempotency store settings. An empty Addr disables
// idempotency keys.
type RedisConfig struct {
	Addr           string        `mapstructure:"addr"`
	Password       string        `mapstructure:"password"`
	DB             int           `mapstructure:"db"`
	IdempotencyTTL time.Duration `mapstructure:"idempotency_ttl"`
	LockTTL        time.Duration `mapstructure:"lock_ttl"`
}

// Enabled reports whether a Redis address is configured.
func (r *RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// NumberingConfig holds the format used for series that have no counter row.
type NumberingConfig struct {
	FallbackSeparator string `mapstructure:"fallback_separator"`
	FallbackPadding   int    `mapstructure:"fallback_padding"`
}

// Load reads configuration from environment variables with the NAVODITA_
// prefix. A .env file in the working directory is loaded first if present;
// variables already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("NAVODITA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "navodita")
	v.SetDefault("db.password", "navodita_secret")
	v.SetDefault("db.name", "navodita_erp")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "navodita")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "text")

	// Redis defaults
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.idempotency_ttl", "24h")
	v.SetDefault("redis.lock_ttl", "30s")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	v.SetDefault("numbering.fallback_separator", "-")
	v.SetDefault("numbering.fallback_padding", 4)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                  "NAVODITA_SERVER_PORT",
		"server.read_timeout":          "NAVODITA_SERVER_READ_TIMEOUT",
		"server.write_timeout":         "NAVODITA_SERVER_WRITE_TIMEOUT",
		"server.environment":           "NAVODITA_SERVER_ENVIRONMENT",
		"db.host":                      "NAVODITA_DB_HOST",
		"db.port":                      "NAVODITA_DB_PORT",
		"db.user":                      "NAVODITA_DB_USER",
		"db.password":                  "NAVODITA_DB_PASSWORD",
		"db.name":                      "NAVODITA_DB_NAME",
		"db.sslmode":                   "NAVODITA_DB_SSLMODE",
		"db.max_open":                  "NAVODITA_DB_MAX_OPEN",
		"db.max_idle":                  "NAVODITA_DB_MAX_IDLE",
		"jwt.secret":                   "NAVODITA_JWT_SECRET",
		"jwt.issuer":                   "NAVODITA_JWT_ISSUER",
		"log.level":                    "NAVODITA_LOG_LEVEL",
		"log.format":                   "NAVODITA_LOG_FORMAT",
		"redis.addr":                   "NAVODITA_REDIS_ADDR",
		"redis.password":               "NAVODITA_REDIS_PASSWORD",
		"redis.db":                     "NAVODITA_REDIS_DB",
		"redis.idempotency_ttl":        "NAVODITA_REDIS_IDEMPOTENCY_TTL",
		"redis.lock_ttl":               "NAVODITA_REDIS_LOCK_TTL",
		"cors.allowed_origins":         "NAVODITA_CORS_ALLOWED_ORIGINS",
		"numbering.fallback_separator": "NAVODITA_NUMBERING_FALLBACK_SEPARATOR",
		"numbering.fallback_padding":   "NAVODITA_NUMBERING_FALLBACK_PADDING",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it unless NAVODITA_SERVER_PORT is explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("NAVODITA_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret: v.GetString("jwt.secret"),
		Issuer: v.GetString("jwt.issuer"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Redis = RedisConfig{
		Addr:           v.GetString("redis.addr"),
		Password:       v.GetString("redis.password"),
		DB:             v.GetInt("redis.db"),
		IdempotencyTTL: v.GetDuration("redis.idempotency_ttl"),
		LockTTL:        v.GetDuration("redis.lock_ttl"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Numbering = NumberingConfig{
		FallbackSeparator: v.GetString("numbering.fallback_separator"),
		FallbackPadding:   v.GetInt("numbering.fallback_padding"),
	}
	if cfg.Numbering.FallbackPadding < 0 {
		return nil, fmt.Errorf("numbering.fallback_padding must not be negative, got %d", cfg.Numbering.FallbackPadding)
	}

	return cfg, nil
}
