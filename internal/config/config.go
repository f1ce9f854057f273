package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/openkcm/common-sdk/pkg/commoncfg"

	"github.com/oraesatta/cheoresono/internal/model"
)

var (
	// HTTP server specific errors.
	ErrEmptyAddress                           = errors.New("address must not be empty")
	ErrReadHeaderTimeoutMustBeGreaterThanZero = errors.New("read header timeout must be greater than zero")
	ErrShutdownTimeoutMustBeGreaterThanZero   = errors.New("shutdown timeout must be greater than zero")
)

// Config holds all application configuration parameters.
type Config struct {
	commoncfg.BaseConfig `mapstructure:",squash"`

	// HTTP server configuration
	HTTPServer HTTPServer `yaml:"httpServer" json:"httpServer"`
	// Time rendering configuration
	Time Time `yaml:"time" json:"time"`
}

// HTTPServer holds the public HTTP server config.
type HTTPServer struct {
	Address           string        `yaml:"address" json:"address"`
	ReadHeaderTimeout time.Duration `yaml:"readHeaderTimeout" json:"readHeaderTimeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdownTimeout" json:"shutdownTimeout"`
}

// Time holds the wall clock rendering config.
type Time struct {
	// Zone is the IANA identifier all responses are rendered in. Validation
	// only rejects an empty identifier; whether the host can actually
	// resolve the zone is decided per request, so a host that gains tzdata
	// later recovers without a restart.
	Zone model.Zone `yaml:"zone" json:"zone"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.HTTPServer.validate(); err != nil {
		return fmt.Errorf("http server config error: %w", err)
	}

	if err := c.Time.validate(); err != nil {
		return fmt.Errorf("time config error: %w", err)
	}

	return nil
}

func (s *HTTPServer) validate() error {
	if s.Address == "" {
		return ErrEmptyAddress
	}

	if s.ReadHeaderTimeout <= 0 {
		return ErrReadHeaderTimeoutMustBeGreaterThanZero
	}

	if s.ShutdownTimeout <= 0 {
		return ErrShutdownTimeoutMustBeGreaterThanZero
	}

	return nil
}

func (t *Time) validate() error {
	return t.Zone.Validate()
}
