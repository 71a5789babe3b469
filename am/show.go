package am

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/teranos/zappy/errors"
)

// Formats accepted by Write
const (
	FormatTOML = "toml"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// WriteTOML encodes cfg with the API key redacted
func WriteTOML(w io.Writer, cfg Config) error {
	enc := toml.NewEncoder(w)
	enc.Indent = ""
	if err := enc.Encode(cfg.Redacted()); err != nil {
		return errors.Wrap(err, "failed to encode config")
	}
	return nil
}

// Write encodes cfg in format (toml, json or yaml) with the API key redacted
func Write(w io.Writer, cfg Config, format string) error {
	redacted := cfg.Redacted()

	switch strings.ToLower(format) {
	case FormatTOML, "":
		return WriteTOML(w, cfg)

	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(redacted); err != nil {
			return errors.Wrap(err, "failed to marshal config to JSON")
		}

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(redacted); err != nil {
			return errors.Wrap(err, "failed to marshal config to YAML")
		}
		if err := enc.Close(); err != nil {
			return errors.Wrap(err, "failed to flush YAML")
		}

	default:
		return errors.WithHint(
			errors.Mark(errors.Newf("unsupported format: %s", format), errors.ErrInvalidArgument),
			"supported formats: toml, json, yaml",
		)
	}
	return nil
}

// Get returns the effective value of a dotted key, redacting api.key.
// ok is false when the key is unknown.
func Get(key string) (value interface{}, ok bool) {
	v := initViper()
	key = strings.ToLower(key)
	if !v.IsSet(key) {
		return nil, false
	}
	if key == "api.key" {
		if v.GetString(key) == "" {
			return "", true
		}
		return redactedKey, true
	}
	return v.Get(key), true
}
