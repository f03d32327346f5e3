package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends
const (
	BackendSQL       = "sql"
	BackendFirestore = "firestore"
)

// Identity providers
const (
	IdentityLocal    = "local"
	IdentityFirebase = "firebase"
)

const developmentSecret = "development-secret-change-me"

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CORSOrigins  []string      `mapstructure:"cors_allowed_origins"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"db_driver"`
	Path   string `mapstructure:"db_path"`
	URL    string `mapstructure:"database_url"`
}

type AuthConfig struct {
	JWTSecret  string        `mapstructure:"jwt_secret"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
	Issuer     string        `mapstructure:"jwt_issuer"`
	BcryptCost int           `mapstructure:"bcrypt_cost"`
}

type FirebaseConfig struct {
	ProjectID            string `mapstructure:"firebase_project_id"`
	ServiceAccountJSON   string `mapstructure:"firebase_service_account_json"`
	ServiceAccountBase64 string `mapstructure:"firebase_service_account_base64"`
	ServiceAccountFile   string `mapstructure:"firebase_service_account_file"`
	WebAPIKey            string `mapstructure:"firebase_web_api_key"`
}

type AMQPConfig struct {
	URL      string `mapstructure:"amqp_url"`
	Exchange string `mapstructure:"amqp_exchange"`
	Queue    string `mapstructure:"amqp_queue"`
}

type Config struct {
	Env              string `mapstructure:"app_env"`
	LogLevel         string `mapstructure:"log_level"`
	StoreBackend     string `mapstructure:"store_backend"`
	IdentityProvider string `mapstructure:"identity_provider"`

	Server   ServerConfig   `mapstructure:",squash"`
	Database DatabaseConfig `mapstructure:",squash"`
	Auth     AuthConfig     `mapstructure:",squash"`
	Firebase FirebaseConfig `mapstructure:",squash"`
	AMQP     AMQPConfig     `mapstructure:",squash"`
}

// DSN returns the connection string for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.Driver == "postgres" {
		return d.URL
	}
	return d.Path
}

// IsProduction reports whether internal error details must be hidden from clients.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads an optional .env file, then environment variables over defaults.
// Variable names are the upper-cased keys, e.g. JWT_SECRET or DB_DRIVER.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("store_backend", BackendSQL)
	v.SetDefault("identity_provider", IdentityLocal)

	v.SetDefault("port", "8080")
	v.SetDefault("read_timeout", 15*time.Second)
	v.SetDefault("write_timeout", 15*time.Second)
	v.SetDefault("cors_allowed_origins", "")

	v.SetDefault("db_driver", "sqlite3")
	v.SetDefault("db_path", "./wisewallet.db")
	v.SetDefault("database_url", "")

	v.SetDefault("jwt_secret", "")
	v.SetDefault("token_ttl", 7*24*time.Hour)
	v.SetDefault("jwt_issuer", "wisewallet")
	v.SetDefault("bcrypt_cost", 10)

	v.SetDefault("firebase_project_id", "")
	v.SetDefault("firebase_service_account_json", "")
	v.SetDefault("firebase_service_account_base64", "")
	v.SetDefault("firebase_service_account_file", "")
	v.SetDefault("firebase_web_api_key", "")

	v.SetDefault("amqp_url", "")
	v.SetDefault("amqp_exchange", "wisewallet")
	v.SetDefault("amqp_queue", "expense_events")
}

// FromViper decodes and validates configuration from v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Server.CORSOrigins = splitList(v.GetString("cors_allowed_origins"))

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		if c.IsProduction() {
			return errors.New("JWT_SECRET is required in production")
		}
		log.Println("Warning: JWT_SECRET not set, using a development secret. This is NOT secure for production!")
		c.Auth.JWTSecret = developmentSecret
	}

	switch c.StoreBackend {
	case BackendSQL, BackendFirestore:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	switch c.IdentityProvider {
	case IdentityLocal:
		if c.StoreBackend != BackendSQL {
			return errors.New("IDENTITY_PROVIDER=local requires STORE_BACKEND=sql")
		}
	case IdentityFirebase:
		if c.Firebase.WebAPIKey == "" {
			return errors.New("FIREBASE_WEB_API_KEY is required for IDENTITY_PROVIDER=firebase")
		}
	default:
		return fmt.Errorf("unknown IDENTITY_PROVIDER %q", c.IdentityProvider)
	}

	switch c.Database.Driver {
	case "sqlite3":
	case "postgres":
		if c.Database.URL == "" {
			return errors.New("DATABASE_URL is required for DB_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.Database.Driver)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
