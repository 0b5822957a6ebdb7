package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Query     QueryConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	Environment string
	LogLevel    string
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	ConnectTimeout  time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

// QueryConfig holds the limits and time windows used by the dashboard queries.
type QueryConfig struct {
	RecentReadingsLimit        int
	RecentReadingsWindow       time.Duration
	ActiveAlertsLimit          int
	ReadingsRowCap             int
	DefaultReadingsWindowHours int
	ChartWindow                time.Duration
	LiveStatsWindow            time.Duration
}

type RateLimitConfig struct {
	GeneralRPS   float64 // Requests per second for general endpoints
	GeneralBurst int     // Burst size for general endpoints
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "5000")
	v.SetDefault("ENVIRONMENT", "development")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "englife")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_CONNECT_TIMEOUT", "5s")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("DB_AUTO_MIGRATE", false)

	v.SetDefault("QUERY_RECENT_READINGS_LIMIT", 10)
	v.SetDefault("QUERY_RECENT_READINGS_WINDOW", "1h")
	v.SetDefault("QUERY_ACTIVE_ALERTS_LIMIT", 5)
	v.SetDefault("QUERY_READINGS_ROW_CAP", 1000)
	v.SetDefault("QUERY_READINGS_DEFAULT_HOURS", 24)
	v.SetDefault("QUERY_CHART_WINDOW", "24h")
	v.SetDefault("QUERY_LIVE_STATS_WINDOW", "10m")

	v.SetDefault("RATE_LIMIT_GENERAL_RPS", 20)
	v.SetDefault("RATE_LIMIT_GENERAL_BURST", 40)

	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("CORS_ALLOWED_METHODS", "GET,POST,OPTIONS")
	v.SetDefault("CORS_ALLOWED_HEADERS", "Origin,Content-Type,Accept,X-Request-ID")
	v.SetDefault("CORS_EXPOSED_HEADERS", "X-Request-ID")
	v.SetDefault("CORS_MAX_AGE", 600)
}

// Load reads .env from the working directory, then the environment.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile reads the given dotenv file if it exists. Environment variables
// always take precedence over values from the file.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Printf("Warning: config file %s not found. Falling back to environment variables only.", path)
	}

	config := &Config{
		Server: ServerConfig{
			Port:        v.GetString("SERVER_PORT"),
			Host:        v.GetString("SERVER_HOST"),
			Environment: v.GetString("ENVIRONMENT"),
			LogLevel:    v.GetString("LOG_LEVEL"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetString("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			ConnectTimeout:  v.GetDuration("DB_CONNECT_TIMEOUT"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			AutoMigrate:     v.GetBool("DB_AUTO_MIGRATE"),
		},
		Query: QueryConfig{
			RecentReadingsLimit:        v.GetInt("QUERY_RECENT_READINGS_LIMIT"),
			RecentReadingsWindow:       v.GetDuration("QUERY_RECENT_READINGS_WINDOW"),
			ActiveAlertsLimit:          v.GetInt("QUERY_ACTIVE_ALERTS_LIMIT"),
			ReadingsRowCap:             v.GetInt("QUERY_READINGS_ROW_CAP"),
			DefaultReadingsWindowHours: v.GetInt("QUERY_READINGS_DEFAULT_HOURS"),
			ChartWindow:                v.GetDuration("QUERY_CHART_WINDOW"),
			LiveStatsWindow:            v.GetDuration("QUERY_LIVE_STATS_WINDOW"),
		},
		RateLimit: RateLimitConfig{
			GeneralRPS:   v.GetFloat64("RATE_LIMIT_GENERAL_RPS"),
			GeneralBurst: v.GetInt("RATE_LIMIT_GENERAL_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods:   splitList(v.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders:   splitList(v.GetString("CORS_ALLOWED_HEADERS")),
			ExposedHeaders:   splitList(v.GetString("CORS_EXPOSED_HEADERS")),
			AllowCredentials: v.GetBool("CORS_ALLOW_CREDENTIALS"),
			MaxAge:           v.GetInt("CORS_MAX_AGE"),
		},
	}

	return config, nil
}

// DefaultQuery returns the query limits used when nothing is configured.
func DefaultQuery() QueryConfig {
	return QueryConfig{
		RecentReadingsLimit:        10,
		RecentReadingsWindow:       time.Hour,
		ActiveAlertsLimit:          5,
		ReadingsRowCap:             1000,
		DefaultReadingsWindowHours: 24,
		ChartWindow:                24 * time.Hour,
		LiveStatsWindow:            10 * time.Minute,
	}
}

func (c *DatabaseConfig) DSN() string {
	timeout := int(c.ConnectTimeout.Seconds())
	if timeout <= 0 {
		timeout = 5
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode, timeout,
	)
}

// splitList turns "a, b,c" into [a b c]. viper's own slice parsing splits on
// whitespace only, which does not fit comma separated env values.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
