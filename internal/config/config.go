// Package config loads settings for the burstid command from a TOML file.
package config

import (
	"bytes"
	"os"

	"github.com/paraglidehq/burstid"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultPath is read when no --config flag is given. It may be absent.
const DefaultPath = ".burstid.toml"

type Config struct {
	Prefix   string `toml:"prefix"`    // address prefix without the dash
	Format   string `toml:"format"`    // output format of the address command
	LogLevel string `toml:"log_level"` // logrus level name
}

func Default() *Config {
	return &Config{
		Prefix:   burstid.Prefix,
		Format:   string(burstid.FormatAddress),
		LogLevel: logrus.InfoLevel.String(),
	}
}

// Load reads path on top of Default. A missing file is not an error unless
// required is set.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !required {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Validate checks that every field names something the command supports.
func (c *Config) Validate() error {
	if _, err := burstid.ParseFormat(c.Format); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log_level")
	}
	for _, r := range c.Prefix {
		if r == '-' || r == ' ' {
			return errors.Errorf("prefix %q must not contain dashes or spaces", c.Prefix)
		}
	}
	return nil
}
