package configs

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Database struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	StatementTimeoutMs int
	MaxOpenConns       int
	MaxIdleConns       int
	AutoMigrate        bool
}

// DSN builds the postgres URL with statement_timeout applied per connection.
func (d Database) DSN(appName string) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=%s&options=-c%%20statement_timeout=%d",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode, appName, d.StatementTimeoutMs,
	)
}

type Config struct {
	AppName          string
	Env              string
	Port             string
	LogLevel         string
	CorsAllowOrigins string
	RateLimitMax     int
	RequestTimeout   time.Duration
	RunSeeds         bool
	Database         Database
}

// =======================
// ENV LOADER
// =======================

// LoadEnv reads .env (when present) into the process environment and then
// resolves every key through viper, falling back to defaults.
func LoadEnv() (*Config, []string) {
	var notes []string
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			notes = append(notes, ".env not found, using system environment")
		} else {
			notes = append(notes, ".env loaded")
		}
	}

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault("APP_NAME", "classroom")
	v.SetDefault("ENV", "DEV")
	v.SetDefault("PORT", "3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("RATE_LIMIT_MAX", 100)
	v.SetDefault("REQUEST_TIMEOUT", 5*time.Second)
	v.SetDefault("RUN_SEEDS", false)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "classroom")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("DB_STATEMENT_TIMEOUT_MS", 3000)
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.AutomaticEnv()

	return FromViper(v), notes
}

func FromViper(v *viper.Viper) *Config {
	return &Config{
		AppName:          v.GetString("APP_NAME"),
		Env:              strings.ToUpper(v.GetString("ENV")),
		Port:             v.GetString("PORT"),
		LogLevel:         strings.ToLower(v.GetString("LOG_LEVEL")),
		CorsAllowOrigins: v.GetString("CORS_ALLOW_ORIGINS"),
		RateLimitMax:     v.GetInt("RATE_LIMIT_MAX"),
		RequestTimeout:   v.GetDuration("REQUEST_TIMEOUT"),
		RunSeeds:         v.GetBool("RUN_SEEDS"),
		Database: Database{
			Host:               v.GetString("DB_HOST"),
			Port:               v.GetString("DB_PORT"),
			User:               v.GetString("DB_USER"),
			Password:           v.GetString("DB_PASSWORD"),
			Name:               v.GetString("DB_NAME"),
			SSLMode:            v.GetString("DB_SSLMODE"),
			StatementTimeoutMs: v.GetInt("DB_STATEMENT_TIMEOUT_MS"),
			MaxOpenConns:       v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:       v.GetInt("DB_MAX_IDLE_CONNS"),
			AutoMigrate:        v.GetBool("DB_AUTO_MIGRATE"),
		},
	}
}
