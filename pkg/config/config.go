package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Admin     AdminConfig
	Log       LogConfig
	Inventory InventoryConfig
}

type AppConfig struct {
	Name             string
	Env              string
	Port             string
	CORSAllowOrigins string
}

// DatabaseConfig holds Postgres connection settings. URL wins over the discrete fields.
type DatabaseConfig struct {
	URL             string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	LogLevel        string // silent, error, warn, info
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// AdminConfig is the account seeded on startup when it does not exist yet
type AdminConfig struct {
	Username string
	Password string
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

type InventoryConfig struct {
	LowStockThreshold int
}

// Load reads configuration.
// Priority (highest to lowest):
// 1. Process environment variables
// 2. .env file in the working directory
// 3. Built-in defaults
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app_name", "product-tracker")
	v.SetDefault("app_env", "development")
	v.SetDefault("port", "4476")
	v.SetDefault("cors_allow_origins", "*")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_name", "product_tracking")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("db_timezone", "UTC")
	v.SetDefault("db_log_level", "warn")
	v.SetDefault("db_max_open_conns", 100)
	v.SetDefault("db_max_idle_conns", 10)
	v.SetDefault("db_conn_max_lifetime", time.Hour)
	v.SetDefault("jwt_expiration", 24*time.Hour)
	v.SetDefault("jwt_issuer", "product-tracker")
	v.SetDefault("admin_username", "admin")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("low_stock_threshold", 3)
	return v
}

// FromViper builds a Config from an already prepared viper instance
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:             v.GetString("app_name"),
			Env:              v.GetString("app_env"),
			Port:             v.GetString("port"),
			CORSAllowOrigins: v.GetString("cors_allow_origins"),
		},
		Database: DatabaseConfig{
			URL:             v.GetString("database_url"),
			Host:            v.GetString("db_host"),
			Port:            v.GetInt("db_port"),
			User:            v.GetString("db_user"),
			Password:        v.GetString("db_password"),
			Name:            v.GetString("db_name"),
			SSLMode:         v.GetString("db_sslmode"),
			TimeZone:        v.GetString("db_timezone"),
			LogLevel:        v.GetString("db_log_level"),
			MaxOpenConns:    v.GetInt("db_max_open_conns"),
			MaxIdleConns:    v.GetInt("db_max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("db_conn_max_lifetime"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("jwt_secret"),
			Expiration: v.GetDuration("jwt_expiration"),
			Issuer:     v.GetString("jwt_issuer"),
		},
		Admin: AdminConfig{
			Username: v.GetString("admin_username"),
			Password: v.GetString("admin_password"),
		},
		Log: LogConfig{
			Level:  v.GetString("log_level"),
			Format: v.GetString("log_format"),
		},
		Inventory: InventoryConfig{
			LowStockThreshold: v.GetInt("low_stock_threshold"),
		},
	}

	if cfg.JWT.Secret == "" && !cfg.IsProduction() {
		cfg.JWT.Secret = "your-super-secret-key-change-in-production"
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// DSN returns the Postgres connection string
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode, c.TimeZone,
	)
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required in production")
	}
	if c.JWT.Expiration <= 0 {
		return errors.New("JWT_EXPIRATION must be positive")
	}
	if c.App.Port == "" {
		return errors.New("PORT is required")
	}
	if c.Inventory.LowStockThreshold < 0 {
		return errors.New("LOW_STOCK_THRESHOLD cannot be negative")
	}
	return nil
}
