// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), loads them into structured Go types, and validates that required
// values are present so they can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Fill defaults for optional blocks (auth, storage, observability).
//   - Validate required values so the app fails fast on bad/missing config.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process environment before anything below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

/*
	Env vars are read using the prefix JOBBOARD_. The prefix is trimmed, the
	rest is lowercased, and "." separates nesting levels:

		JOBBOARD_DATABASE.HOST -> database.host -> Config.Database.Host

	Underscores are NOT converted into dots, they stay part of the key name:

		JOBBOARD_AUTH.SESSION_TTL -> auth.session_ttl
*/

// EnvPrefix is the prefix every configuration variable must carry.
const EnvPrefix = "JOBBOARD_"

// Supported values of primary.env.
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvLocal       = "local"
)

// Config is the root configuration object for the application.
//
// Observability and Integration are pointers because they are optional.
// If not provided, defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Storage       StorageConfig        `koanf:"storage" validate:"required"`
	Integration   *IntegrationConfig   `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=production development test local"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
//
// URL, when set, wins over the individual host/port/user/... fields. This is
// how hosted production databases usually hand out credentials.
type DatabaseConfig struct {
	URL             string `koanf:"url"`
	Host            string `koanf:"host" validate:"required_without=URL"`
	Port            int    `koanf:"port" validate:"required_without=URL"`
	User            string `koanf:"user" validate:"required_without=URL"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name" validate:"required_without=URL"`
	SSLMode         string `koanf:"ssl_mode"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details.
// Address is "host:port".
type RedisConfig struct {
	Address  string `koanf:"address" validate:"required"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// AuthConfig controls the session cookie issued on sign in.
type AuthConfig struct {
	SessionTTL   time.Duration `koanf:"session_ttl" validate:"min=1m"`
	CookieName   string        `koanf:"cookie_name" validate:"required"`
	CookieSecure bool          `koanf:"cookie_secure"`
	BcryptCost   int           `koanf:"bcrypt_cost" validate:"min=4,max=31"`
}

// StorageConfig points at the directory where company logos are written.
type StorageConfig struct {
	LogoDir     string `koanf:"logo_dir" validate:"required"`
	MaxLogoSize int64  `koanf:"max_logo_size" validate:"min=1"`
}

// IntegrationConfig holds credentials for third-party APIs.
// An empty ResendAPIKey disables outgoing email.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from"`
}

// LoadConfig loads configuration from environment variables, applies
// defaults, validates it and returns the resulting config.
//
// Unlike a plain constructor, it logs fatally on broken configuration: the
// process must not come up half-configured.
func LoadConfig() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	mainConfig, err := loadFrom(EnvPrefix)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not load config.")
	}

	return mainConfig, nil
}

// loadFrom does the actual work of LoadConfig and returns errors instead of
// exiting, which keeps it usable from tests.
func loadFrom(prefix string) (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(prefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, prefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("unmarshaling main config: %w", err)
	}

	mainConfig.applyDefaults()

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	mainConfig.Observability.ServiceName = "job-board"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// applyDefaults fills zero values of optional settings.
func (c *Config) applyDefaults() {
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}
	if c.Database.ConnMaxIdleTime == 0 {
		c.Database.ConnMaxIdleTime = 300
	}

	if c.Auth.SessionTTL == 0 {
		c.Auth.SessionTTL = 24 * time.Hour
	}
	if c.Auth.CookieName == "" {
		c.Auth.CookieName = "job_board_session"
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = 12
	}

	if c.Storage.LogoDir == "" {
		c.Storage.LogoDir = "data/logos"
	}
	if c.Storage.MaxLogoSize == 0 {
		c.Storage.MaxLogoSize = 2 << 20
	}

	if c.Integration == nil {
		c.Integration = &IntegrationConfig{}
	}
	if c.Integration.EmailFrom == "" {
		c.Integration.EmailFrom = "Job Board <onboarding@resend.dev>"
	}

	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}
}

// IsProduction reports whether primary.env is production.
func (c *Config) IsProduction() bool {
	return c.Primary.Env == EnvProduction
}
