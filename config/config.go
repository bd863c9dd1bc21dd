// Package config loads engine settings from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Window      Window  `yaml:"window"`
	TPS         int     `yaml:"tps"`
	Log         Log     `yaml:"log"`
	Scenes      []Scene `yaml:"scenes"`
	ActiveScene int     `yaml:"active_scene"`
	Debug       Debug   `yaml:"debug"`
}

type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type Log struct {
	Level       string `yaml:"level"`
	Encoding    string `yaml:"encoding"`
	Development bool   `yaml:"development"`
}

// Scene registers an extra scene at startup. Scene 0 always exists and may
// be listed to rename it.
type Scene struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

type Debug struct {
	UI bool `yaml:"ui"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Window: Window{Title: "tessel", Width: 960, Height: 540},
		TPS:    60,
		Log:    Log{Level: "info", Encoding: "console"},
		Scenes: []Scene{{ID: 0, Name: "main"}},
	}
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads and parses a YAML file.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

var ErrInvalid = errors.New("config: invalid")

var levels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks the settings are usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height))
	}
	if c.TPS <= 0 {
		errs = append(errs, fmt.Errorf("%w: tps %d", ErrInvalid, c.TPS))
	}
	if !levels[c.Log.Level] {
		errs = append(errs, fmt.Errorf("%w: log level %q", ErrInvalid, c.Log.Level))
	}
	if c.Log.Encoding != "json" && c.Log.Encoding != "console" {
		errs = append(errs, fmt.Errorf("%w: log encoding %q", ErrInvalid, c.Log.Encoding))
	}

	seen := make(map[int]bool)
	for _, s := range c.Scenes {
		if seen[s.ID] {
			errs = append(errs, fmt.Errorf("%w: scene %d listed twice", ErrInvalid, s.ID))
		}
		seen[s.ID] = true
	}
	if c.ActiveScene != 0 && !seen[c.ActiveScene] {
		errs = append(errs, fmt.Errorf("%w: active scene %d is not listed", ErrInvalid, c.ActiveScene))
	}
	return errors.Join(errs...)
}
