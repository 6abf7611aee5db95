package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken    string
	PollTimeout time.Duration
	Database    DatabaseConfig
	Flow        FlowConfig
	Verify      VerifyConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// FlowConfig controls eviction of abandoned conversations.
// A zero TTL keeps pending flows until they complete.
type FlowConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

// VerifyConfig configures the account verification endpoint.
// An empty Addr disables it.
type VerifyConfig struct {
	Addr     string
	APIToken string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	pollTimeout, err := getEnvDuration("POLL_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	flowTTL, err := getEnvDuration("FLOW_TTL", 0)
	if err != nil {
		return nil, err
	}
	sweepInterval, err := getEnvDuration("FLOW_SWEEP_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BotToken:    os.Getenv("BOT_TOKEN"),
		PollTimeout: pollTimeout,
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "todolist"),
			User:     getEnv("DB_USER", "todolist"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		Flow: FlowConfig{
			TTL:           flowTTL,
			SweepInterval: sweepInterval,
		},
		Verify: VerifyConfig{
			Addr:     getEnvAllowEmpty("VERIFY_ADDR", ":8080"),
			APIToken: os.Getenv("VERIFY_API_TOKEN"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required fields and value ranges
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.PollTimeout < time.Second {
		return fmt.Errorf("POLL_TIMEOUT must be at least 1s")
	}
	if c.Flow.TTL < 0 {
		return fmt.Errorf("FLOW_TTL cannot be negative")
	}
	if c.Flow.TTL > 0 && c.Flow.SweepInterval <= 0 {
		return fmt.Errorf("FLOW_SWEEP_INTERVAL must be positive when FLOW_TTL is set")
	}
	if c.Verify.Addr != "" && c.Verify.APIToken == "" {
		return fmt.Errorf("VERIFY_API_TOKEN is required when VERIFY_ADDR is set")
	}
	return nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAllowEmpty distinguishes an unset variable from one explicitly set to "".
func getEnvAllowEmpty(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, value, err)
	}
	return d, nil
}
