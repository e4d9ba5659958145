// Package config loads application configuration from config files and the
// environment using viper. Environment variables use the ROOMLEDGER_ prefix
// with underscores for nesting, e.g. ROOMLEDGER_POSTGRES_HOST.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/roomledger/roomledger/internal/types"
)

type Configuration struct {
	Deployment DeploymentConfig `mapstructure:"deployment"`
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Postgres   PostgresConfig   `mapstructure:"postgres"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Billing    BillingConfig    `mapstructure:"billing"`
	Cache      CacheConfig      `mapstructure:"cache"`
}

type DeploymentConfig struct {
	Mode types.DeploymentMode `mapstructure:"mode" default:"local"`
}

type ServerConfig struct {
	Address string `mapstructure:"address" default:":8080"`
}

type LoggingConfig struct {
	Level types.LogLevel `mapstructure:"level" default:"info"`
}

type PostgresConfig struct {
	Host        string `mapstructure:"host" default:"localhost"`
	Port        int    `mapstructure:"port" default:"5432"`
	User        string `mapstructure:"user" default:"postgres"`
	Password    string `mapstructure:"password"`
	DBName      string `mapstructure:"dbname" default:"roomledger"`
	SSLMode     string `mapstructure:"sslmode" default:"disable"`
	AutoMigrate bool   `mapstructure:"auto_migrate" default:"true"`
}

type AuthConfig struct {
	// Secret signs and verifies HMAC JWTs issued by the auth provider.
	Secret   string         `mapstructure:"secret"`
	APIKey   string         `mapstructure:"api_key"`
	Supabase SupabaseConfig `mapstructure:"supabase"`
}

type SupabaseConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	ServiceKey string `mapstructure:"service_key"`
}

// BillingConfig carries the property-wide billing defaults. The late fee
// policy is configuration, never a constant inside the calculation engine;
// individual requests may override it.
type BillingConfig struct {
	Currency string `mapstructure:"currency" default:"thb"`

	LateFeeEnabled bool `mapstructure:"late_fee_enabled"`
	// LateFeeMode is flat or percent. Percent applies to the base rent.
	LateFeeMode   types.LateFeeMode `mapstructure:"late_fee_mode" default:"flat"`
	LateFeeAmount decimal.Decimal   `mapstructure:"late_fee_amount"`
	// LateFeeGraceDays shifts the due date forward before a fee applies.
	LateFeeGraceDays int `mapstructure:"late_fee_grace_days"`
}

type CacheConfig struct {
	TTLSeconds     int `mapstructure:"ttl_seconds" default:"300"`
	CleanupSeconds int `mapstructure:"cleanup_seconds" default:"600"`
}

// NewConfig loads configuration from ./config/config.yaml (optional) and the
// environment. A .env file is honoured for local development.
func NewConfig() (*Configuration, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ROOMLEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, ierr.WithError(err).
				WithHint("Failed to read configuration file").
				Mark(ierr.ErrSystem)
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decimalDecodeHook())); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to parse configuration").
			Mark(ierr.ErrSystem)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.ModeLocal))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.dbname", "roomledger")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.auto_migrate", true)
	v.SetDefault("billing.currency", "thb")
	v.SetDefault("billing.late_fee_mode", string(types.LateFeeModeFlat))
	v.SetDefault("billing.late_fee_amount", "0")
	v.SetDefault("billing.late_fee_grace_days", 0)
	v.SetDefault("cache.ttl_seconds", 300)
	v.SetDefault("cache.cleanup_seconds", 600)
}

func (c *Configuration) Validate() error {
	if c.Billing.LateFeeEnabled {
		if err := c.Billing.LateFeeMode.Validate(); err != nil {
			return err
		}
		if c.Billing.LateFeeAmount.IsNegative() {
			return ierr.NewError("late fee amount must not be negative").
				WithHint("Set billing.late_fee_amount to zero or a positive value").
				Mark(ierr.ErrValidation)
		}
	}
	if c.Cache.TTLSeconds <= 0 {
		return ierr.NewError("cache ttl must be positive").
			WithHint("Set cache.ttl_seconds to a positive value").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// GetDefaultConfig returns a usable configuration for scripts and tests.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Postgres: PostgresConfig{
			Host:    "localhost",
			Port:    5432,
			User:    "postgres",
			DBName:  "roomledger",
			SSLMode: "disable",
		},
		Billing: BillingConfig{
			Currency:    "thb",
			LateFeeMode: types.LateFeeModeFlat,
		},
		Cache: CacheConfig{TTLSeconds: 300, CleanupSeconds: 600},
	}
}
