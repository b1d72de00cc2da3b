package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Auth modes
const (
	AuthModeCognito = "cognito"
	AuthModeDev     = "dev"
)

// Store drivers
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config holds all configuration for the application
type Config struct {
	// Env is the deployment environment (development, production)
	Env     string
	Version string

	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Store configuration
	Store StoreConfig

	// Identity provider configuration
	Auth AuthConfig

	// CORS configuration
	CORS CORSConfig

	// Log configuration
	Log LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	URL         string
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int32
	MinConns    int32
	MaxLifetime time.Duration
	ConnTimeout time.Duration
	// StatementTimeout is applied server-side to every connection
	StatementTimeout time.Duration
	// SimpleProtocol is required behind PgBouncer in transaction mode
	SimpleProtocol bool
	AutoMigrate    bool
}

// StoreConfig selects the profile store backend
type StoreConfig struct {
	Driver string
}

// AuthConfig holds identity-provider configuration
type AuthConfig struct {
	Mode    string
	Cognito CognitoConfig
	Dev     DevAuthConfig
}

// CognitoConfig holds the user pool settings tokens are verified against
type CognitoConfig struct {
	Region      string
	UserPoolID  string
	AppClientID string
	// IssuerURL and JWKSURL override the values derived from region and pool
	IssuerURL          string
	JWKSURL            string
	AllowedTokenUses   []string
	JWKSRefreshMinimum time.Duration
	ClockSkew          time.Duration
}

// DevAuthConfig holds the locally signed token settings used with AUTH_MODE=dev
type DevAuthConfig struct {
	Secret   string
	Issuer   string
	TokenTTL time.Duration
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file
	if err := godotenv.Load("../.env"); err != nil {
		// Try loading from current directory if not found in parent
		if err := godotenv.Load(".env"); err != nil {
			log.Printf("Warning: .env file not found: %v", err)
		}
	}

	config := FromEnv()

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// FromEnv builds the configuration from the current process environment without validating it
func FromEnv() *Config {
	return &Config{
		Env:     getEnv("APP_ENV", "development"),
		Version: getEnv("APP_VERSION", "1.0.0"),
		Server: ServerConfig{
			Port:              getEnv("SERVER_PORT", "8080"),
			ReadTimeout:       getDurationEnv("SERVER_READ_TIMEOUT", 5*time.Second),
			ReadHeaderTimeout: getDurationEnv("SERVER_READ_HEADER_TIMEOUT", 5*time.Second),
			WriteTimeout:      getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:       getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout:   getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Database: DatabaseConfig{
			URL:              getEnv("DATABASE_URL", ""),
			Host:             getEnv("DB_HOST", "localhost"),
			Port:             getEnv("DB_PORT", "5432"),
			User:             getEnv("DB_USER", "postgres"),
			Password:         getEnv("DB_PASSWORD", ""),
			Name:             getEnv("DB_NAME", "postgres"),
			SSLMode:          getEnv("DB_SSLMODE", "disable"),
			MaxConns:         getInt32Env("DB_MAX_CONNS", 5),
			MinConns:         getInt32Env("DB_MIN_CONNS", 0),
			MaxLifetime:      getDurationEnv("DB_MAX_LIFETIME", time.Hour),
			ConnTimeout:      getDurationEnv("DB_CONN_TIMEOUT", 10*time.Second),
			StatementTimeout: getDurationEnv("DB_STATEMENT_TIMEOUT", 30*time.Second),
			SimpleProtocol:   getBoolEnv("DB_SIMPLE_PROTOCOL", false),
			AutoMigrate:      getBoolEnv("DB_AUTO_MIGRATE", true),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		},
		Auth: AuthConfig{
			Mode: strings.ToLower(getEnv("AUTH_MODE", AuthModeCognito)),
			Cognito: CognitoConfig{
				Region:             getEnv("COGNITO_REGION", ""),
				UserPoolID:         getEnv("COGNITO_USER_POOL_ID", ""),
				AppClientID:        getEnv("COGNITO_APP_CLIENT_ID", ""),
				IssuerURL:          getEnv("COGNITO_ISSUER", ""),
				JWKSURL:            getEnv("COGNITO_JWKS_URL", ""),
				AllowedTokenUses:   getStringSliceEnv("COGNITO_TOKEN_USE", []string{"id", "access"}),
				JWKSRefreshMinimum: getDurationEnv("COGNITO_JWKS_REFRESH", 15*time.Minute),
				ClockSkew:          getDurationEnv("COGNITO_CLOCK_SKEW", 30*time.Second),
			},
			Dev: DevAuthConfig{
				Secret:   getEnv("DEV_AUTH_SECRET", ""),
				Issuer:   getEnv("DEV_AUTH_ISSUER", "sonjutoktok-dev"),
				TokenTTL: getDurationEnv("DEV_AUTH_TTL", 24*time.Hour),
			},
		},
		CORS: CORSConfig{
			AllowedOrigins:   getStringSliceEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods:   getStringSliceEnv("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders:   getStringSliceEnv("CORS_ALLOWED_HEADERS", []string{"*"}),
			AllowCredentials: getBoolEnv("CORS_ALLOW_CREDENTIALS", true),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Auth.Mode {
	case AuthModeCognito:
		if err := c.Auth.Cognito.Validate(); err != nil {
			return err
		}
	case AuthModeDev:
		if c.IsProduction() {
			return fmt.Errorf("AUTH_MODE=dev is not allowed when APP_ENV=%s", c.Env)
		}
		if c.Auth.Dev.Secret == "" {
			return fmt.Errorf("DEV_AUTH_SECRET is required when AUTH_MODE=dev")
		}
	default:
		return fmt.Errorf("unsupported AUTH_MODE: %s", c.Auth.Mode)
	}

	switch c.Store.Driver {
	case StoreDriverPostgres:
		if c.Database.URL == "" && c.Database.Password == "" {
			return fmt.Errorf("DATABASE_URL or DB_PASSWORD is required")
		}
	case StoreDriverMemory:
		if c.IsProduction() {
			log.Println("Warning: STORE_DRIVER=memory keeps profiles in process memory only.")
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER: %s", c.Store.Driver)
	}

	return nil
}

// Validate checks the user pool settings
func (c CognitoConfig) Validate() error {
	if c.IssuerURL == "" && (c.Region == "" || c.UserPoolID == "") {
		return fmt.Errorf("COGNITO_REGION and COGNITO_USER_POOL_ID are required")
	}
	if c.AppClientID == "" {
		return fmt.Errorf("COGNITO_APP_CLIENT_ID is required")
	}
	return nil
}

// Issuer returns the expected iss claim of user pool tokens
func (c CognitoConfig) Issuer() string {
	if c.IssuerURL != "" {
		return strings.TrimRight(c.IssuerURL, "/")
	}
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", c.Region, c.UserPoolID)
}

// KeySetURL returns the location of the user pool's public keys
func (c CognitoConfig) KeySetURL() string {
	if c.JWKSURL != "" {
		return c.JWKSURL
	}
	return c.Issuer() + "/.well-known/jwks.json"
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.Env) {
	case "prod", "production":
		return true
	default:
		return false
	}
}

// GetDSN returns the database connection string
func (c *Config) GetDSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&connect_timeout=%d",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
		int(c.Database.ConnTimeout.Seconds()),
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt32Env(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intValue)
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := []string{}
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				parts = append(parts, part)
			}
		}
		if len(parts) > 0 {
			return parts
		}
	}
	return defaultValue
}
