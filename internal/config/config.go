// Package config loads the docupgrade configuration: the version marker
// convention, logging, and the declarative migrations to apply.
package config

import (
	"bytes"
	"os"

	"github.com/juju/errors"
	"github.com/pelletier/go-toml/v2"

	"github.com/cozy/docupgrade/model"
	"github.com/cozy/docupgrade/steps/basic"
	"github.com/cozy/docupgrade/transform"
)

// ErrInvalid is satisfied by every validation failure, as opposed to
// filesystem or TOML syntax errors.
const ErrInvalid = errors.NotValid

// Config is the content of a docupgrade.toml file.
type Config struct {
	Marker     MarkerConfig `toml:"marker"`
	Log        LogConfig    `toml:"log"`
	Migrations []basic.Rule `toml:"migrations"`
}

// MarkerConfig selects the attribute holding the document version.
type MarkerConfig struct {
	Attribute string `toml:"attribute"`
}

// LogConfig sets the logging verbosity.
type LogConfig struct {
	Level string `toml:"level"`
}

var validLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Default returns the configuration used when no file is given: the default
// marker, info logging, and no migration.
func Default() *Config {
	return &Config{
		Marker: MarkerConfig{Attribute: model.DefaultMarkerAttr},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotatef(err, "reading config %s", path)
	}
	return Parse(data, path)
}

// Parse decodes and validates TOML data; source is used in error messages.
// Unknown keys are rejected, so that a misspelled setting does not go
// unnoticed.
func Parse(data []byte, source string) (*Config, error) {
	cfg := Default()
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return nil, errors.Annotatef(err, "parsing config %s", source)
	}
	if err := cfg.Validate(source); err != nil {
		return nil, errors.Trace(err)
	}
	return cfg, nil
}

// Validate checks the settings and every migration rule.
func (c *Config) Validate(source string) error {
	if c.Marker.Attribute == "" {
		return errors.NotValidf("%s: marker.attribute is empty", source)
	}
	if _, ok := validLevels[c.Log.Level]; !ok {
		return errors.NotValidf("%s: unknown log.level %q", source, c.Log.Level)
	}
	if _, err := c.Registry(); err != nil {
		return errors.NewNotValid(err, source)
	}
	return nil
}

// VersionMarker returns the configured version marker convention.
func (c *Config) VersionMarker() model.Marker {
	return model.Marker{Attr: c.Marker.Attribute}
}

// Registry builds a registry holding the configured migrations.
func (c *Config) Registry() (*transform.Registry, error) {
	reg := transform.NewRegistry()
	if err := basic.RegisterRules(reg, c.Migrations); err != nil {
		return nil, errors.Trace(err)
	}
	return reg, nil
}
