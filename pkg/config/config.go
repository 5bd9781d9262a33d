// Package config reads figure settings from a YAML file.
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config mirrors the command line flags. Zero values mean "not set".
type Config struct {
	Title     string   `yaml:"title"`
	Width     int      `yaml:"width"`
	Height    int      `yaml:"height"`
	Diagonal  string   `yaml:"diagonal"`
	Group     string   `yaml:"group"`
	Bins      int      `yaml:"bins"`
	Columns   []string `yaml:"columns"`
	Delimiter string   `yaml:"delimiter"`
	Output    string   `yaml:"output"`
	// Open is a pointer so an explicit false can be told apart from unset.
	Open *bool `yaml:"open"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "parse yaml")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Width < 0 || c.Height < 0 {
		return errors.New("width and height must not be negative")
	}
	if c.Bins < 0 {
		return errors.New("bins must not be negative")
	}
	if len([]rune(c.Delimiter)) > 1 {
		return errors.Errorf("delimiter must be a single character, got %q", c.Delimiter)
	}
	return nil
}

// DelimiterRune returns the configured delimiter, or 0 when unset.
func (c *Config) DelimiterRune() rune {
	for _, r := range c.Delimiter {
		return r
	}
	return 0
}
