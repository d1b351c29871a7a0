// Package config handles configuration loading for gateway clients.
//
// Configuration is loaded from a YAML file with support for environment
// variable expansion (${VAR} or $VAR syntax), so sender and user passwords
// can be injected at runtime. [LoadDotEnv] populates the environment from
// .env files before loading.
//
// # Configuration Sections
//
//   - gateway: endpoint URL, HTTP timeout, control block options
//   - sender: web services sender id and password
//   - credentials: either company login fields or an existing session id
//   - logging: slog level and output format
//
// # Example Configuration
//
//	gateway:
//	  endpointURL: https://api.intacct.com/ia/xml/xmlgw.phtml
//	  timeout: 30s
//
//	sender:
//	  id: ${INTACCT_SENDER_ID}
//	  password: ${INTACCT_SENDER_PASSWORD}
//
//	credentials:
//	  companyID: ${INTACCT_COMPANY_ID}
//	  userID: ${INTACCT_USER_ID}
//	  userPassword: ${INTACCT_USER_PASSWORD}
//
// See [Load] for loading configuration from a file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sirosfoundation/go-intacct/pkg/intacct"
	"github.com/sirosfoundation/go-intacct/pkg/session"
	"github.com/sirosfoundation/go-intacct/pkg/transport"
)

// Config is the root configuration structure
type Config struct {
	Gateway     GatewayConfig     `yaml:"gateway"`
	Sender      SenderConfig      `yaml:"sender"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// GatewayConfig holds transport and control block settings
type GatewayConfig struct {
	EndpointURL string        `yaml:"endpointURL" validate:"required,url"`
	Timeout     time.Duration `yaml:"timeout" validate:"gt=0"`
	UniqueID    bool          `yaml:"uniqueID"`
	PolicyID    string        `yaml:"policyID"`
	UserAgent   string        `yaml:"userAgent"`
}

// SenderConfig holds the web services sender credentials
type SenderConfig struct {
	ID       string `yaml:"id" validate:"required"`
	Password string `yaml:"password" validate:"required"`
}

// CredentialsConfig holds either a company login or an existing session id
type CredentialsConfig struct {
	CompanyID    string `yaml:"companyID"`
	UserID       string `yaml:"userID"`
	UserPassword string `yaml:"userPassword"`
	SessionID    string `yaml:"sessionID"`
}

// LoggingConfig holds slog settings
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateCredentials, CredentialsConfig{})
	return v
}

// validateCredentials enforces exactly one complete credential form.
func validateCredentials(sl validator.StructLevel) {
	c := sl.Current().Interface().(CredentialsConfig)

	hasLogin := c.CompanyID != "" || c.UserID != "" || c.UserPassword != ""
	hasSession := c.SessionID != ""

	switch {
	case hasLogin && hasSession:
		sl.ReportError(c.SessionID, "SessionID", "sessionID", "excluded_with_login", "")
	case !hasLogin && !hasSession:
		sl.ReportError(c.SessionID, "SessionID", "sessionID", "required_without_login", "")
	case hasLogin:
		if c.CompanyID == "" {
			sl.ReportError(c.CompanyID, "CompanyID", "companyID", "required", "")
		}
		if c.UserID == "" {
			sl.ReportError(c.UserID, "UserID", "userID", "required", "")
		}
		if c.UserPassword == "" {
			sl.ReportError(c.UserPassword, "UserPassword", "userPassword", "required", "")
		}
	}
}

// LoadDotEnv loads environment variables from .env files. Missing files are
// skipped; variables already set in the environment win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes configuration from YAML bytes
func Parse(data []byte) (*Config, error) {
	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Gateway.EndpointURL == "" {
		c.Gateway.EndpointURL = session.DefaultEndpointURL
	}
	if c.Gateway.Timeout == 0 {
		c.Gateway.Timeout = 30 * time.Second
	}
	if c.Gateway.UserAgent == "" {
		c.Gateway.UserAgent = transport.DefaultUserAgent
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// Logger builds the slog logger described by the logging section
func (c *Config) Logger() *slog.Logger {
	var level slog.Level
	// validated by oneof, UnmarshalText cannot fail here
	_ = level.UnmarshalText([]byte(c.Logging.Level))

	opts := &slog.HandlerOptions{Level: level}
	if c.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// ClientConfig maps the file onto a client configuration
func (c *Config) ClientConfig() *intacct.ClientConfig {
	httpConfig := transport.DefaultHTTPConfig()
	httpConfig.Timeout = c.Gateway.Timeout
	httpConfig.UserAgent = c.Gateway.UserAgent

	return &intacct.ClientConfig{
		SenderID:       c.Sender.ID,
		SenderPassword: c.Sender.Password,
		CompanyID:      c.Credentials.CompanyID,
		UserID:         c.Credentials.UserID,
		UserPassword:   c.Credentials.UserPassword,
		SessionID:      c.Credentials.SessionID,
		EndpointURL:    c.Gateway.EndpointURL,
		UniqueID:       c.Gateway.UniqueID,
		PolicyID:       c.Gateway.PolicyID,
		HTTPConfig:     httpConfig,
		Logger:         c.Logger(),
	}
}
