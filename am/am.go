// Package am loads zappy's configuration ("I am").
//
// Values are read once at process start from, lowest to highest precedence:
// /etc/zappy/am.toml, ~/.zappy/am.toml, the nearest project am.toml, ZAPPY_*
// environment variables and command-line flags.
package am

import (
	"time"

	"github.com/teranos/zappy/am/geotime"
	"github.com/teranos/zappy/errors"
)

// Config represents the zappy configuration
type Config struct {
	API     APIConfig     `mapstructure:"api" toml:"api" json:"api" yaml:"api"`
	Display DisplayConfig `mapstructure:"display" toml:"display" json:"display" yaml:"display"`
}

// APIConfig configures access to the zappy.sh service
type APIConfig struct {
	URL            string `mapstructure:"url" toml:"url" json:"url" yaml:"url"`                                                 // Base endpoint, no trailing slash required
	Key            string `mapstructure:"key" toml:"key,omitempty" json:"key,omitempty" yaml:"key,omitempty"`                   // Bearer credential for authenticated calls
	TimeoutSeconds int    `mapstructure:"timeout_seconds" toml:"timeout_seconds" json:"timeout_seconds" yaml:"timeout_seconds"` // Per-request timeout
}

// DisplayConfig configures terminal output
type DisplayConfig struct {
	TableWidth int    `mapstructure:"table_width" toml:"table_width" json:"table_width" yaml:"table_width"` // Maximum request table width in columns
	Timezone   string `mapstructure:"timezone" toml:"timezone" json:"timezone" yaml:"timezone"`             // Zone assumed for timestamps without one ("local" or an IANA name)
}

const (
	DefaultAPIURL         = "https://zappy.sh"
	DefaultTimeoutSeconds = 30
	DefaultTableWidth     = 120
	MinTableWidth         = 40
	DefaultTimezone       = geotime.Local

	// APIKeyEnvVar holds the credential for `zappy requests`
	APIKeyEnvVar = "ZAPPY_API_KEY"

	redactedKey = "********"
)

// Timeout returns the per-request timeout
func (c *Config) Timeout() time.Duration {
	if c.API.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// TableWidth returns the maximum request table width
func (c *Config) TableWidth() int {
	if c.Display.TableWidth == 0 {
		return DefaultTableWidth
	}
	return c.Display.TableWidth
}

// Location returns the zone assumed for timestamps that carry none
func (c *Config) Location() (*time.Location, error) {
	loc, err := geotime.LoadLocation(c.Display.Timezone)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "display.timezone"), errors.ErrInvalidConfig)
	}
	return loc, nil
}

// Credential returns the API key, or ErrMissingCredential naming the variable to set
func (c *Config) Credential() (string, error) {
	if c.API.Key == "" {
		err := errors.Wrapf(errors.ErrMissingCredential, "%s not set", APIKeyEnvVar)
		return "", errors.WithHintf(err, "export %s=<your key> or set api.key in ~/.zappy/am.toml", APIKeyEnvVar)
	}
	return c.API.Key, nil
}

// Redacted returns a copy safe to print
func (c Config) Redacted() Config {
	if c.API.Key != "" {
		c.API.Key = redactedKey
	}
	return c
}
