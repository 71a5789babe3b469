package am

import (
	"net/url"
	"strings"

	"github.com/teranos/zappy/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if err := c.validateAPIURL(); err != nil {
		return errors.Mark(err, errors.ErrInvalidConfig)
	}

	// Timeout: 0 falls back to the default, negative is invalid
	if c.API.TimeoutSeconds < 0 {
		return errors.Mark(errors.Newf("api.timeout_seconds must be >= 0, got %d", c.API.TimeoutSeconds), errors.ErrInvalidConfig)
	}

	// Table width: 0 = default, anything else must leave room for five columns
	if c.Display.TableWidth != 0 && c.Display.TableWidth < MinTableWidth {
		return errors.Mark(errors.Newf("display.table_width must be >= %d, got %d", MinTableWidth, c.Display.TableWidth), errors.ErrInvalidConfig)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	return nil
}

func (c *Config) validateAPIURL() error {
	if c.API.URL == "" {
		return errors.New("api.url cannot be empty")
	}

	u, err := url.Parse(c.API.URL)
	if err != nil {
		return errors.Wrapf(err, "api.url %q is not a valid URL", c.API.URL)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return errors.Newf("api.url must use http or https, got %q", c.API.URL)
	}
	if u.Host == "" {
		return errors.Newf("api.url %q has no host", c.API.URL)
	}

	return nil
}
