package config

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the ordering core
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Server   ServerConfig   `yaml:"server"`
	Pricing  PricingConfig  `yaml:"pricing"`
	Branch   BranchConfig   `yaml:"branch"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// RabbitMQConfig holds RabbitMQ connection configuration
type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port                  int `yaml:"port"`
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`
}

// PricingConfig holds the delivery fee policy. Amounts are decimal strings.
type PricingConfig struct {
	DeliveryFee       string `yaml:"delivery_fee"`
	FreeDeliveryAbove string `yaml:"free_delivery_above"`
	CurrencySymbol    string `yaml:"currency_symbol"`
}

// BranchConfig names the branch orders are placed against
type BranchConfig struct {
	Name     string `yaml:"name"`
	Timezone string `yaml:"timezone"`
}

// Load reads configuration from a YAML file and applies defaults
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML bytes into a Config
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns the configuration used when a key is absent from the file
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Host: "localhost", Port: 5432},
		RabbitMQ: RabbitMQConfig{Host: "localhost", Port: 5672, User: "guest", Password: "guest"},
		Server:   ServerConfig{Port: 3000, RequestTimeoutSeconds: 15},
		Pricing: PricingConfig{
			DeliveryFee:       "2.00",
			FreeDeliveryAbove: "0",
			CurrencySymbol:    "₹",
		},
		Branch: BranchConfig{Name: "Moti Mahal - Sitabuldi", Timezone: "Local"},
	}
}

// Validate checks the values that cannot be defaulted
func (c *Config) Validate() error {
	if c.Database.Database == "" {
		return fmt.Errorf("database.database is required")
	}
	if c.Database.Port <= 0 || c.RabbitMQ.Port <= 0 || c.Server.Port <= 0 {
		return fmt.Errorf("ports must be positive")
	}
	if _, err := c.DeliveryFee(); err != nil {
		return err
	}
	if _, err := c.FreeDeliveryAbove(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// DeliveryFee returns the flat delivery fee
func (c *Config) DeliveryFee() (decimal.Decimal, error) {
	fee, err := decimal.NewFromString(c.Pricing.DeliveryFee)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid pricing.delivery_fee %q: %w", c.Pricing.DeliveryFee, err)
	}
	if fee.IsNegative() {
		return decimal.Zero, fmt.Errorf("pricing.delivery_fee must not be negative")
	}
	return fee, nil
}

// FreeDeliveryAbove returns the subtotal above which delivery is free. Zero disables it.
func (c *Config) FreeDeliveryAbove() (decimal.Decimal, error) {
	if c.Pricing.FreeDeliveryAbove == "" {
		return decimal.Zero, nil
	}
	threshold, err := decimal.NewFromString(c.Pricing.FreeDeliveryAbove)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid pricing.free_delivery_above %q: %w", c.Pricing.FreeDeliveryAbove, err)
	}
	return threshold, nil
}

// Location returns the branch time zone used for booking slots and date filters
func (c *Config) Location() (*time.Location, error) {
	if c.Branch.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Branch.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid branch.timezone %q: %w", c.Branch.Timezone, err)
	}
	return loc, nil
}

// RequestTimeout returns the per-request deadline for handlers
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutSeconds) * time.Second
}

// DatabaseURL returns a PostgreSQL connection URL
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Database)
}

// RabbitMQURL returns an AMQP connection URL
func (c *Config) RabbitMQURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/",
		c.RabbitMQ.User, c.RabbitMQ.Password, c.RabbitMQ.Host, c.RabbitMQ.Port)
}
