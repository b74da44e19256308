// Package config holds the settings shared by the CLI commands and Dial.
package config

import (
	"fmt"
	"time"
)

// DefaultPort and DefaultTLSPort are the RouterOS API service ports.
const (
	DefaultPort    = 8728
	DefaultTLSPort = 8729
)

// Config describes one router connection.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	TLS      bool
	Insecure bool
	Timeout  time.Duration
	Verbose  bool
}

// Validate returns every configuration problem at once so the CLI can list
// them in one pass.
func (c *Config) Validate() []error {
	var errors []error

	if c.Host == "" {
		errors = append(errors, fmt.Errorf("'--host' must not be empty"))
	}

	if c.Port < 1 || c.Port > 65535 {
		errors = append(errors, fmt.Errorf("'--port' must be in [1, 65535]"))
	}

	if c.Insecure && !c.TLS {
		errors = append(errors, fmt.Errorf("You must use '--tls' to use '--insecure'"))
	}

	if c.Timeout <= 0 {
		errors = append(errors, fmt.Errorf("'--timeout' must be greater than 0"))
	}

	return errors
}
