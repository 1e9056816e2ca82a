// Package config loads application configuration from the environment,
// the way shivamshaw23-Hintro's config package does: viper defaults
// layered with a .env file and then environment variable overrides.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/antigravity/transit-profile/internal/profile"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Profile  ProfileConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `mapstructure:"SERVER_HOST"`
	Port         int           `mapstructure:"SERVER_PORT"`
	ReadTimeout  time.Duration `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout  time.Duration `mapstructure:"SERVER_IDLE_TIMEOUT"`
}

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string `mapstructure:"POSTGRES_HOST"`
	Port     int    `mapstructure:"POSTGRES_PORT"`
	User     string `mapstructure:"POSTGRES_USER"`
	Password string `mapstructure:"POSTGRES_PASSWORD"`
	DBName   string `mapstructure:"POSTGRES_DB"`
	SSLMode  string `mapstructure:"POSTGRES_SSLMODE"`
	MaxConns int32  `mapstructure:"POSTGRES_MAX_CONNS"`
	MinConns int32  `mapstructure:"POSTGRES_MIN_CONNS"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Host     string        `mapstructure:"REDIS_HOST"`
	Port     int           `mapstructure:"REDIS_PORT"`
	Password string        `mapstructure:"REDIS_PASSWORD"`
	DB       int           `mapstructure:"REDIS_DB"`
	PoolSize int           `mapstructure:"REDIS_POOL_SIZE"`
	TTL      time.Duration `mapstructure:"REDIS_JOURNEY_TTL"`
}

// ProfileConfig holds the profile search engine's default parameters.
type ProfileConfig struct {
	MinProbability float64 `mapstructure:"PROFILE_MIN_PROBABILITY"`
	MaxProbability float64 `mapstructure:"PROFILE_MAX_PROBABILITY"`
	TransferTime   int32   `mapstructure:"PROFILE_TRANSFER_TIME"`
	MaxJourneys    int     `mapstructure:"PROFILE_MAX_JOURNEYS"`
}

// DSN returns the PostgreSQL connection string.
func (p *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode,
	)
}

// Addr returns the Redis address in host:port format.
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// ServerAddr returns the HTTP listen address in host:port format.
func (s *ServerConfig) ServerAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads configuration from environment variables and a .env file.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("SERVER_READ_TIMEOUT", "5s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "10s")
	viper.SetDefault("SERVER_IDLE_TIMEOUT", "120s")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "transit")
	viper.SetDefault("POSTGRES_PASSWORD", "transit_secret")
	viper.SetDefault("POSTGRES_DB", "transit_profile")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")
	viper.SetDefault("POSTGRES_MAX_CONNS", 20)
	viper.SetDefault("POSTGRES_MIN_CONNS", 2)

	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", 6379)
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_POOL_SIZE", 50)
	viper.SetDefault("REDIS_JOURNEY_TTL", "60s")

	viper.SetDefault("PROFILE_MIN_PROBABILITY", profile.DefaultMinProbability)
	viper.SetDefault("PROFILE_MAX_PROBABILITY", profile.DefaultMaxProbability)
	viper.SetDefault("PROFILE_TRANSFER_TIME", profile.DefaultTransferTime)
	viper.SetDefault("PROFILE_MAX_JOURNEYS", profile.DefaultMaxJourneys)

	// Try to read a .env file; ignore its absence, env vars set by the
	// shell or a container runtime take over in that case.
	_ = viper.ReadInConfig()

	cfg := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("SERVER_HOST"),
			Port:         viper.GetInt("SERVER_PORT"),
			ReadTimeout:  viper.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout: viper.GetDuration("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:  viper.GetDuration("SERVER_IDLE_TIMEOUT"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
			MaxConns: viper.GetInt32("POSTGRES_MAX_CONNS"),
			MinConns: viper.GetInt32("POSTGRES_MIN_CONNS"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			PoolSize: viper.GetInt("REDIS_POOL_SIZE"),
			TTL:      viper.GetDuration("REDIS_JOURNEY_TTL"),
		},
		Profile: ProfileConfig{
			MinProbability: viper.GetFloat64("PROFILE_MIN_PROBABILITY"),
			MaxProbability: viper.GetFloat64("PROFILE_MAX_PROBABILITY"),
			TransferTime:   int32(viper.GetInt("PROFILE_TRANSFER_TIME")),
			MaxJourneys:    viper.GetInt("PROFILE_MAX_JOURNEYS"),
		},
	}

	return cfg, nil
}
