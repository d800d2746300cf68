package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env            string
	Port           int
	APIPrefix      string
	MigrationsPath string

	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	CORS         CORSConfig
	Log          LogConfig
	Search       SearchConfig
	FailedSearch FailedSearchConfig
}

type DatabaseConfig struct {
	Host           string
	Port           int
	User           string
	Password       string
	Name           string
	SSLMode        string
	MaxOpenConns   int
	MaxIdleConns   int
	ConnectRetries int
}

type RedisConfig struct {
	Enabled        bool
	Host           string
	Port           int
	Password       string
	DB             int
	PoolSize       int
	DialTimeout    time.Duration
	IOTimeout      time.Duration
	ConnectRetries int
}

// JWTConfig holds the shared secret of the hosted auth provider. Tokens are verified, never issued.
type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SearchConfig tunes the document search paths.
type SearchConfig struct {
	RPCEnabled      bool
	RPCName         string
	PrimaryTimeout  time.Duration
	FallbackTimeout time.Duration
	DefaultLimit    int
	MaxLimit        int
	CacheEnabled    bool
	CacheTTL        time.Duration
}

// FailedSearchConfig controls zero-result search recording and retention.
type FailedSearchConfig struct {
	Timeout       time.Duration
	Workers       int
	Retries       int
	RetryDelay    time.Duration
	Retention     time.Duration
	PruneSchedule string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")
	cfg.MigrationsPath = v.GetString("MIGRATIONS_PATH")

	cfg.Database = DatabaseConfig{
		Host:           v.GetString("DB_HOST"),
		Port:           v.GetInt("DB_PORT"),
		User:           v.GetString("DB_USER"),
		Password:       v.GetString("DB_PASSWORD"),
		Name:           v.GetString("DB_NAME"),
		SSLMode:        v.GetString("DB_SSL_MODE"),
		MaxOpenConns:   v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns:   v.GetInt("DB_MAX_IDLE_CONNS"),
		ConnectRetries: v.GetInt("DB_CONNECT_RETRIES"),
	}

	cfg.Redis = RedisConfig{
		Enabled:        v.GetBool("REDIS_ENABLED"),
		Host:           v.GetString("REDIS_HOST"),
		Port:           v.GetInt("REDIS_PORT"),
		Password:       v.GetString("REDIS_PASSWORD"),
		DB:             v.GetInt("REDIS_DB"),
		PoolSize:       v.GetInt("REDIS_POOL_SIZE"),
		DialTimeout:    parseDuration(v.GetString("REDIS_DIAL_TIMEOUT"), 2*time.Second),
		IOTimeout:      parseDuration(v.GetString("REDIS_IO_TIMEOUT"), 500*time.Millisecond),
		ConnectRetries: v.GetInt("REDIS_CONNECT_RETRIES"),
	}

	cfg.JWT = JWTConfig{
		Secret:   v.GetString("JWT_SECRET"),
		Issuer:   v.GetString("JWT_ISSUER"),
		Audience: v.GetString("JWT_AUDIENCE"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Search = SearchConfig{
		RPCEnabled:      v.GetBool("SEARCH_RPC_ENABLED"),
		RPCName:         v.GetString("SEARCH_RPC_NAME"),
		PrimaryTimeout:  parseDuration(v.GetString("SEARCH_PRIMARY_TIMEOUT"), 2*time.Second),
		FallbackTimeout: parseDuration(v.GetString("SEARCH_FALLBACK_TIMEOUT"), 5*time.Second),
		DefaultLimit:    v.GetInt("SEARCH_DEFAULT_LIMIT"),
		MaxLimit:        v.GetInt("SEARCH_MAX_LIMIT"),
		CacheEnabled:    v.GetBool("ENABLE_SEARCH_CACHE"),
		CacheTTL:        parseDuration(v.GetString("SEARCH_CACHE_TTL"), time.Minute),
	}

	cfg.FailedSearch = FailedSearchConfig{
		Timeout:       parseDuration(v.GetString("FAILED_SEARCH_TIMEOUT"), 3*time.Second),
		Workers:       v.GetInt("FAILED_SEARCH_WORKERS"),
		Retries:       v.GetInt("FAILED_SEARCH_RETRIES"),
		RetryDelay:    parseDuration(v.GetString("FAILED_SEARCH_RETRY_DELAY"), 500*time.Millisecond),
		Retention:     parseDuration(v.GetString("FAILED_SEARCH_RETENTION"), 90*24*time.Hour),
		PruneSchedule: v.GetString("FAILED_SEARCH_PRUNE_SCHEDULE"),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("MIGRATIONS_PATH", "migrations")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "examhub")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONNECT_RETRIES", 5)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_POOL_SIZE", 20)
	v.SetDefault("REDIS_DIAL_TIMEOUT", "2s")
	v.SetDefault("REDIS_IO_TIMEOUT", "500ms")
	v.SetDefault("REDIS_CONNECT_RETRIES", 2)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("JWT_AUDIENCE", "authenticated")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SEARCH_RPC_ENABLED", true)
	v.SetDefault("SEARCH_RPC_NAME", "search_documents")
	v.SetDefault("SEARCH_PRIMARY_TIMEOUT", "2s")
	v.SetDefault("SEARCH_FALLBACK_TIMEOUT", "5s")
	v.SetDefault("SEARCH_DEFAULT_LIMIT", 20)
	v.SetDefault("SEARCH_MAX_LIMIT", 50)
	v.SetDefault("ENABLE_SEARCH_CACHE", false)
	v.SetDefault("SEARCH_CACHE_TTL", "1m")

	v.SetDefault("FAILED_SEARCH_TIMEOUT", "3s")
	v.SetDefault("FAILED_SEARCH_WORKERS", 2)
	v.SetDefault("FAILED_SEARCH_RETRIES", 2)
	v.SetDefault("FAILED_SEARCH_RETRY_DELAY", "500ms")
	v.SetDefault("FAILED_SEARCH_RETENTION", "2160h")
	v.SetDefault("FAILED_SEARCH_PRUNE_SCHEDULE", "0 3 * * *")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
