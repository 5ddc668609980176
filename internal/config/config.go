// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/mmynk/billsplitter/internal/bill"
	"github.com/mmynk/billsplitter/internal/extraction"
	"github.com/mmynk/billsplitter/internal/models"
)

// Config is the full server configuration.
type Config struct {
	Port       int    `env:"PORT" envDefault:"8080"`
	DBPath     string `env:"DB_PATH" envDefault:"./data/billsplitter.db"`
	StaticPath string `env:"STATIC_PATH" envDefault:"./static"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// JWTSecret signs session tokens. When empty the server generates a
	// random secret, so tokens do not survive a restart.
	JWTSecret     string        `env:"JWT_SECRET"`
	TokenDuration time.Duration `env:"TOKEN_DURATION" envDefault:"24h"`

	DefaultVAT           float64       `env:"DEFAULT_VAT" envDefault:"14"`
	DefaultServiceCharge float64       `env:"DEFAULT_SERVICE_CHARGE" envDefault:"12"`
	RejectDuplicateNames bool          `env:"REJECT_DUPLICATE_NAMES" envDefault:"false"`
	SessionIdleTTL       time.Duration `env:"SESSION_IDLE_TTL" envDefault:"2h"`

	MetricsPath string `env:"METRICS_PATH" envDefault:"/metrics"`

	Extraction Extraction `envPrefix:"EXTRACTION_"`
}

// Extraction configures the receipt extraction model. The defaults target
// Gemini's OpenAI-compatible endpoint.
type Extraction struct {
	APIKey  string        `env:"API_KEY"`
	BaseURL string        `env:"BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta/openai/"`
	Model   string        `env:"MODEL" envDefault:"gemini-2.0-flash"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"60s"`
}

// Load reads optional dotenv files (".env" when none are given) and then
// parses the environment. Variables already set win over dotenv values.
func Load(dotenvFiles ...string) (*Config, error) {
	_ = godotenv.Load(dotenvFiles...)

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}
	if !validRate(c.DefaultVAT) {
		errs = append(errs, fmt.Errorf("DEFAULT_VAT must be a non-negative number, got %v", c.DefaultVAT))
	}
	if !validRate(c.DefaultServiceCharge) {
		errs = append(errs, fmt.Errorf("DEFAULT_SERVICE_CHARGE must be a non-negative number, got %v", c.DefaultServiceCharge))
	}
	if c.TokenDuration <= 0 {
		errs = append(errs, errors.New("TOKEN_DURATION must be positive"))
	}
	if c.SessionIdleTTL <= 0 {
		errs = append(errs, errors.New("SESSION_IDLE_TTL must be positive"))
	}
	if c.Extraction.Timeout <= 0 {
		errs = append(errs, errors.New("EXTRACTION_TIMEOUT must be positive"))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// BillOptions returns the options every new bill is created with.
func (c *Config) BillOptions() bill.Options {
	opts := bill.Options{
		Defaults: &models.Settings{
			VAT:           c.DefaultVAT,
			ServiceCharge: c.DefaultServiceCharge,
		},
	}
	if c.RejectDuplicateNames {
		opts.DuplicateNames = bill.DuplicateNamesReject
	}
	return opts
}

// ExtractionClient returns the extraction client configuration.
func (c *Config) ExtractionClient() extraction.Config {
	return extraction.Config{
		APIKey:  c.Extraction.APIKey,
		BaseURL: c.Extraction.BaseURL,
		Model:   c.Extraction.Model,
	}
}

func validRate(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
