// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/database"
)

const envPrefix = "ADOPTION"

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// JWTConfig configures session tokens.
type JWTConfig struct {
	Secret    string
	AccessTTL time.Duration
}

// KafkaConfig configures transition event publishing. No brokers disables it.
// A non-empty AuditGroupID also starts a consumer that audits the topic.
type KafkaConfig struct {
	Brokers      []string
	Topic        string
	AuditGroupID string
}

// AdminConfig seeds the initial admin account. An empty email skips seeding.
type AdminConfig struct {
	Email    string
	Password string
	FullName string
}

// ServiceConfig holds all configuration for the adoption service.
type ServiceConfig struct {
	Port              string
	AppEnv            string
	StorageDriver     string
	MigrationsDir     string
	PasswordMinLength int
	BcryptCost        int
	DBConfig          database.PostgresConfig
	JWTConfig         JWTConfig
	KafkaConfig       KafkaConfig
	Admin             AdminConfig
}

// IsDevelopment reports whether the service runs in development mode.
func (c *ServiceConfig) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// Load reads configuration from ADOPTION_* environment variables and an
// optional config.yaml in the working directory.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &ServiceConfig{
		Port:              v.GetString("SERVICE_PORT"),
		AppEnv:            v.GetString("APP_ENV"),
		StorageDriver:     strings.ToLower(v.GetString("STORAGE_DRIVER")),
		MigrationsDir:     v.GetString("MIGRATIONS_DIR"),
		PasswordMinLength: v.GetInt("PASSWORD_MIN_LENGTH"),
		BcryptCost:        v.GetInt("BCRYPT_COST"),
		DBConfig: database.PostgresConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		JWTConfig: JWTConfig{
			Secret:    v.GetString("JWT_SECRET"),
			AccessTTL: v.GetDuration("JWT_ACCESS_TTL"),
		},
		KafkaConfig: KafkaConfig{
			Brokers:      splitList(v.GetString("KAFKA_BROKERS")),
			Topic:        v.GetString("KAFKA_TOPIC"),
			AuditGroupID: v.GetString("KAFKA_AUDIT_GROUP"),
		},
		Admin: AdminConfig{
			Email:    v.GetString("ADMIN_EMAIL"),
			Password: v.GetString("ADMIN_PASSWORD"),
			FullName: v.GetString("ADMIN_NAME"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVICE_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("MIGRATIONS_DIR", "migrations")
	v.SetDefault("PASSWORD_MIN_LENGTH", 0)
	v.SetDefault("BCRYPT_COST", 0)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "adoption_db")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("JWT_SECRET", "change-me-in-production")
	v.SetDefault("JWT_ACCESS_TTL", "24h")

	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "adoption.events")
	v.SetDefault("KAFKA_AUDIT_GROUP", "")

	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("ADMIN_NAME", "Shelter Admin")
}

func (c *ServiceConfig) validate() error {
	switch c.StorageDriver {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("unsupported storage driver %q", c.StorageDriver)
	}
	if c.PasswordMinLength < 0 {
		return fmt.Errorf("PASSWORD_MIN_LENGTH must not be negative")
	}
	if c.JWTConfig.AccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be positive")
	}
	if c.Admin.Email != "" && c.Admin.Password == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required when ADMIN_EMAIL is set")
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
