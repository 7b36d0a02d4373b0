package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	EnvLocal      = "local"
	EnvTest       = "test"
	EnvProduction = "production"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultJWTSecret = "change-me-in-production"

	// maxJWTLifetime is one hundred years, well inside time.Duration range.
	maxJWTLifetime = 100 * 365 * 24 * 60 * 60
)

// Config holds all configuration for the application. It is built once at
// startup and passed down explicitly; nothing mutates it afterwards.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"local"`

	Log         LogConfig         `envPrefix:"LOG_"`
	Server      ServerConfig      `envPrefix:"SERVER_"`
	Database    DatabaseConfig    `envPrefix:"DB_"`
	JWT         JWTConfig         `envPrefix:"JWT_"`
	GoogleOAuth GoogleOAuthConfig `envPrefix:"GOOGLE_"`
	CORS        CORSConfig        `envPrefix:"CORS_"`
	Telemetry   TelemetryConfig   `envPrefix:"OTEL_"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port              string        `env:"PORT" envDefault:"8080"`
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"5s"`
	ReadTimeout       time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout      time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout       time.Duration `env:"IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver      string        `env:"DRIVER" envDefault:"postgres"`
	Host        string        `env:"HOST" envDefault:"localhost"`
	Port        string        `env:"PORT" envDefault:"5432"`
	User        string        `env:"USER" envDefault:"postgres"`
	Password    string        `env:"PASSWORD"`
	Name        string        `env:"NAME" envDefault:"catalog"`
	SSLMode     string        `env:"SSLMODE" envDefault:"disable"`
	MaxConns    int32         `env:"MAX_CONNS" envDefault:"5"`
	MinConns    int32         `env:"MIN_CONNS" envDefault:"0"`
	MaxLifetime time.Duration `env:"MAX_LIFETIME" envDefault:"1h"`
	ConnTimeout time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	SQLitePath  string        `env:"SQLITE_PATH" envDefault:"catalog.db"`
	AutoMigrate bool          `env:"AUTO_MIGRATE" envDefault:"true"`
}

// JWTConfig holds token signing configuration
type JWTConfig struct {
	Secret string `env:"SECRET" envDefault:"change-me-in-production"`
	// Lifetime is expressed in seconds (JWT_LIFETIME=31536000 is one year).
	Lifetime int64 `env:"LIFETIME" envDefault:"31536000"`
}

// TTL returns the access token lifetime.
func (c JWTConfig) TTL() time.Duration {
	return time.Duration(c.Lifetime) * time.Second
}

// GoogleOAuthConfig holds Google OAuth configuration
type GoogleOAuthConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL" envDefault:"http://localhost:8080/auth/google/callback"`
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"ALLOWED_HEADERS" envSeparator:"," envDefault:"*"`
	AllowCredentials bool     `env:"ALLOW_CREDENTIALS" envDefault:"false"`
}

// TelemetryConfig holds OpenTelemetry exporter settings. Tracing is disabled
// when Endpoint is empty.
type TelemetryConfig struct {
	Endpoint    string `env:"EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"catalog-backend"`
}

// Load loads .env if present, then parses and validates the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		// Try the parent directory when started from cmd/
		if err := godotenv.Load("../.env"); err != nil {
			log.Printf("Warning: .env file not found, using process environment")
		}
	}
	return Parse()
}

// Parse builds a Config from the current process environment.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []error

	switch c.Environment {
	case EnvLocal, EnvTest, EnvProduction:
	default:
		errs = append(errs, fmt.Errorf("ENVIRONMENT must be one of local, test, production; got %q", c.Environment))
	}

	if strings.TrimSpace(c.JWT.Secret) == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	} else if c.IsProduction() && c.JWT.Secret == defaultJWTSecret {
		errs = append(errs, errors.New("JWT_SECRET must be set in production"))
	}
	if c.JWT.Lifetime <= 0 {
		errs = append(errs, errors.New("JWT_LIFETIME must be positive"))
	} else if c.JWT.Lifetime > maxJWTLifetime {
		errs = append(errs, fmt.Errorf("JWT_LIFETIME must be at most %d seconds", maxJWTLifetime))
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.IsProduction() && c.Database.Password == "" {
			errs = append(errs, errors.New("DB_PASSWORD is required in production"))
		}
	case DriverSQLite:
		if strings.TrimSpace(c.Database.SQLitePath) == "" {
			errs = append(errs, errors.New("DB_SQLITE_PATH is required for the sqlite driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be postgres or sqlite; got %q", c.Database.Driver))
	}

	if c.GoogleOAuth.ClientID == "" || c.GoogleOAuth.ClientSecret == "" {
		log.Println("Warning: Google OAuth credentials not configured. Google login is disabled.")
	}

	return errors.Join(errs...)
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetDSN returns the Postgres connection string
func (c *Config) GetDSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Database.User, c.Database.Password),
		Host:   c.Database.Host + ":" + c.Database.Port,
		Path:   "/" + c.Database.Name,
	}
	q := url.Values{}
	q.Set("sslmode", c.Database.SSLMode)
	q.Set("connect_timeout", fmt.Sprintf("%d", int(c.Database.ConnTimeout.Seconds())))
	u.RawQuery = q.Encode()
	return u.String()
}

// IsGoogleOAuthConfigured checks if Google OAuth is properly configured
func (c *Config) IsGoogleOAuthConfigured() bool {
	return c.GoogleOAuth.ClientID != "" && c.GoogleOAuth.ClientSecret != ""
}
